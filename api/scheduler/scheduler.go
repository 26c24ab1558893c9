package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/ukil-legal/ukil-api/databases"
	"github.com/ukil-legal/ukil-api/models"
	templates "github.com/ukil-legal/ukil-api/templates/html"
)

// pendingAge is how long a case request may sit in Pending before its
// advocate gets a reminder.
const pendingAge = 72 * time.Hour

// Scheduler runs the daily pending-request reminder job
type Scheduler struct {
	cron           *cron.Cron
	CRDB           databases.CaseRequestDatabase
	ADB            databases.AdvocateDatabase
	sendgridAPIKey string
}

// NewScheduler creates a new scheduler instance
func NewScheduler(crDB databases.CaseRequestDatabase, aDB databases.AdvocateDatabase, sendgridAPIKey string) *Scheduler {
	return &Scheduler{
		cron:           cron.New(cron.WithLocation(time.UTC)),
		CRDB:           crDB,
		ADB:            aDB,
		sendgridAPIKey: sendgridAPIKey,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Remind advocates about stale pending requests daily at 8 AM UTC
	_, err := s.cron.AddFunc("0 8 * * *", s.remindPendingRequests)
	if err != nil {
		zap.S().Errorw("failed to register pending request reminder job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Pending request reminder scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Pending request reminder scheduler stopped")
}

// remindPendingRequests finds case requests that have been pending longer
// than pendingAge and sends each advocate one reminder email covering all of
// theirs.
func (s *Scheduler) remindPendingRequests() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-pendingAge)
	filter := bson.M{
		"status":      models.StatusPending,
		"requestedAt": bson.M{"$lt": primitive.NewDateTimeFromTime(cutoff)},
	}

	stale, err := s.CRDB.Find(ctx, filter)
	if err != nil {
		zap.S().Errorw("failed to find stale pending case requests", "error", err)
		return
	}

	remindersSent := 0
	for advocateID, requests := range groupByAdvocate(stale) {
		objID, err := primitive.ObjectIDFromHex(advocateID)
		if err != nil {
			// dangling advocate reference, nobody to remind
			continue
		}

		advocate, err := s.ADB.FindOne(ctx, bson.M{"_id": objID})
		if err != nil {
			zap.S().Warnw("failed to resolve advocate for reminder", "advocateId", advocateID, "error", err)
			continue
		}

		if err := s.sendReminderEmail(advocate.Email, advocate.Name, len(requests)); err != nil {
			zap.S().Errorw("failed to send reminder email", "advocateId", advocateID, "error", err)
			continue
		}
		remindersSent++
	}

	zap.S().Infow("Pending request reminder job complete",
		"staleRequests", len(stale),
		"remindersSent", remindersSent,
	)
}

// groupByAdvocate buckets case requests by their advocate reference
func groupByAdvocate(requests []models.CaseRequest) map[string][]models.CaseRequest {
	grouped := make(map[string][]models.CaseRequest)
	for _, request := range requests {
		grouped[request.AdvocateID] = append(grouped[request.AdvocateID], request)
	}
	return grouped
}

func (s *Scheduler) sendReminderEmail(toEmail, toName string, pendingCount int) error {
	from := mail.NewEmail("Ukil Legal Services", "no-reply@ukil-legal.com")
	to := mail.NewEmail(toName, toEmail)
	subject := "You have pending case requests waiting"
	htmlContent := templates.RenderPendingRequestsReminderEmail(toName, pendingCount)
	plainText := "You have pending case requests older than three days. Please sign in to review them."

	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(s.sendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
	return nil
}
