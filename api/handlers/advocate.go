package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ukil-legal/ukil-api/api"
	"github.com/ukil-legal/ukil-api/config"
	"github.com/ukil-legal/ukil-api/databases"
	"github.com/ukil-legal/ukil-api/models"
)

// Advocate exported for testing purposes
type Advocate struct {
	DB   databases.AdvocateDatabase
	CRDB databases.CaseRequestDatabase
	ADB  databases.ArticleDatabase
}

// practiceAreaFacets are the landing-page categories. The key is the
// sanitized label used in the $facet output and the response body.
var practiceAreaFacets = []struct {
	Label string
	Key   string
}{
	{"Criminal Lawyer", "criminalLawyer"},
	{"Civil Litigation", "civilLitigation"},
	{"Family Lawyer", "familyLawyer"},
	{"Corporate Lawyer", "corporateLawyer"},
}

// RegisterAdvocateHandler registers a new advocate. A duplicate email is an
// idempotent rejection, not an error: the existing record stays untouched
// and insertedId comes back null.
func (a Advocate) RegisterAdvocateHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var advocate models.Advocate
	err := json.NewDecoder(r.Body).Decode(&advocate)
	if err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	// check-then-insert; concurrent registrations with the same email can
	// race, there is no store-level unique index
	existingAdvocate, err := a.DB.FindOne(ctx, bson.M{"email": advocate.Email})
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		config.ErrorStatus("failed to get advocate by email", http.StatusInternalServerError, w, err)
		return
	}
	if existingAdvocate != nil {
		b, _ := json.Marshal(models.RegistrationResponse{Message: "advocate already exist!", InsertedID: nil})
		w.WriteHeader(http.StatusOK)
		w.Write(b)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(advocate.Password), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}
	advocate.Password = string(hashedPassword)

	res, err := a.DB.InsertOne(ctx, advocate)
	if err != nil {
		config.ErrorStatus("failed to insert advocate", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(models.RegistrationResponse{InsertedID: res.Decode()})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// AdvocateProfileHandler returns the advocate self-view: the advocate record
// plus their incoming case requests and published articles, both newest
// first. A missing advocate yields empty joins rather than a not-found.
func (a Advocate) AdvocateProfileHandler(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	zap.S().Debugf("email: %v", email)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	advocate, err := a.DB.FindOne(ctx, bson.M{"email": email})
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		config.ErrorStatus("failed to get advocate by email", http.StatusInternalServerError, w, err)
		return
	}
	if advocate == nil {
		// fresh session with no record yet; an empty dashboard, and no
		// querying on an empty advocate reference
		b, err := json.Marshal(models.AdvocateProfileResponse{
			CaseRequests: []models.CaseRequest{},
			Articles:     []models.Article{},
		})
		if err != nil {
			config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write(b)
		return
	}
	advocateID := advocate.ID.Hex()

	caseRequests, err := a.CRDB.Find(ctx, bson.M{"advocateId": advocateID},
		&options.FindOptions{Sort: bson.D{{Key: "requestedAt", Value: -1}}})
	if err != nil {
		config.ErrorStatus("failed to get case requests", http.StatusInternalServerError, w, err)
		return
	}
	if len(caseRequests) == 0 {
		caseRequests = []models.CaseRequest{}
	}

	articles, err := a.ADB.Find(ctx, bson.M{"advocateId": advocateID},
		&options.FindOptions{Sort: bson.D{{Key: "postedAt", Value: -1}}})
	if err != nil {
		config.ErrorStatus("failed to get articles", http.StatusInternalServerError, w, err)
		return
	}
	if len(articles) == 0 {
		articles = []models.Article{}
	}

	b, err := json.Marshal(models.AdvocateProfileResponse{
		Advocate:     advocate,
		CaseRequests: caseRequests,
		Articles:     articles,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// AdvocateDetailHandler returns the public advocate view by id with their
// articles, newest first.
func (a Advocate) AdvocateDetailHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := r.URL.Query().Get("id")

	advocateID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	advocate, err := a.DB.FindOne(ctx, bson.M{"_id": advocateID})
	if err != nil {
		config.ErrorStatus("failed to get advocate by ID", http.StatusNotFound, w, err)
		return
	}

	articles, err := a.ADB.Find(ctx, bson.M{"advocateId": id},
		&options.FindOptions{Sort: bson.D{{Key: "postedAt", Value: -1}}})
	if err != nil {
		config.ErrorStatus("failed to get articles", http.StatusInternalServerError, w, err)
		return
	}
	if len(articles) == 0 {
		articles = []models.Article{}
	}

	b, err := json.Marshal(models.AdvocateDetailResponse{Advocate: advocate, Articles: articles})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// AdvocatesHandler returns the advocate directory filtered by the court and
// practice area facets. A facet is constrained only when provided and not
// the "All" sentinel. Legacy query parameter names from older clients are
// accepted as fallbacks.
func (a Advocate) AdvocatesHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	court := r.URL.Query().Get("court")
	if court == "" {
		court = r.URL.Query().Get("selectedCourt")
	}
	if court == "" {
		court = r.URL.Query().Get("city")
	}
	practiceArea := r.URL.Query().Get("practiceArea")
	if practiceArea == "" {
		practiceArea = r.URL.Query().Get("selectedField")
	}

	filter := bson.M{}
	if court != "" && court != "All" {
		filter["city"] = court
	}
	if practiceArea != "" && practiceArea != "All" {
		filter["practiceArea"] = practiceArea
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	advocates, err := a.DB.Find(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to get advocates", http.StatusInternalServerError, w, err)
		return
	}
	if len(advocates) == 0 {
		advocates = []models.Advocate{}
	}

	b, err := json.Marshal(models.AdvocateListResponse{Count: len(advocates), Advocates: advocates})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// TopAdvocatesByPracticeAreaHandler returns up to three advocates per
// landing-page practice area, most experienced first, in a single $facet
// round trip to the store.
func (a Advocate) TopAdvocatesByPracticeAreaHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	facet := bson.M{}
	for _, f := range practiceAreaFacets {
		facet[f.Key] = []bson.M{
			{"$match": bson.M{"practiceArea": f.Label}},
			{"$sort": bson.M{"yearOfPractice": -1}},
			{"$limit": 3},
		}
	}
	pipeline := []bson.M{{"$facet": facet}}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	cursor, err := a.DB.Aggregate(ctx, pipeline)
	if err != nil {
		config.ErrorStatus("failed to get top advocates", http.StatusInternalServerError, w, err)
		return
	}

	var results []models.TopAdvocatesByPracticeArea
	if err := cursor.Decode(&results); err != nil {
		config.ErrorStatus("failed to decode top advocates", http.StatusInternalServerError, w, err)
		return
	}

	// $facet emits exactly one document
	top := models.TopAdvocatesByPracticeArea{}
	if len(results) > 0 {
		top = results[0]
	}

	b, err := json.Marshal(top)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
