package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ukil-legal/ukil-api/api"
	"github.com/ukil-legal/ukil-api/config"
	"github.com/ukil-legal/ukil-api/databases"
	"github.com/ukil-legal/ukil-api/models"
)

// CaseRequest exported for testing purposes
type CaseRequest struct {
	DB databases.CaseRequestDatabase
}

// CreateCaseRequestHandler records a user requesting an advocate's services.
// The requested-at timestamp and the Pending status are assigned here, never
// taken from the caller.
func (c CaseRequest) CreateCaseRequestHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var caseRequest models.CaseRequest
	err := json.NewDecoder(r.Body).Decode(&caseRequest)
	if err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	caseRequest.Status = models.StatusPending
	caseRequest.RequestedAt = primitive.NewDateTimeFromTime(time.Now())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := c.DB.InsertOne(ctx, caseRequest)
	if err != nil {
		config.ErrorStatus("failed to insert case request", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(models.InsertedResponse{InsertedID: res.Decode()})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
