package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CaseRequest holds the structure for the caseRequests collection in mongo.
// The user is referenced by email (denormalized alongside their display name)
// and the advocate by the hex form of their object id. RequestedAt and Status
// are set server-side at creation.
type CaseRequest struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserName    string             `json:"userName" bson:"userName"`
	Email       string             `json:"email" bson:"email"`
	AdvocateID  string             `json:"advocateId" bson:"advocateId"`
	Heading     string             `json:"heading" bson:"heading"`
	Message     string             `json:"message" bson:"message"`
	Status      string             `json:"status" bson:"status"`
	RequestedAt primitive.DateTime `json:"requestedAt" bson:"requestedAt"`
}

// StatusPending is the lifecycle status assigned to every new case request.
// Other values are set by out-of-band tooling.
const StatusPending = "Pending"

// UserCaseRequest is the flattened row produced by the caseRequests-to-
// advocates lookup pipeline. AdvocateName and AdvocateImage carry fallback
// values when the referenced advocate no longer resolves.
type UserCaseRequest struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id"`
	UserName      string             `json:"userName" bson:"userName"`
	Email         string             `json:"email" bson:"email"`
	AdvocateID    string             `json:"advocateId" bson:"advocateId"`
	Heading       string             `json:"heading" bson:"heading"`
	Message       string             `json:"message" bson:"message"`
	RequestedAt   primitive.DateTime `json:"requestedAt" bson:"requestedAt"`
	Status        string             `json:"status" bson:"status"`
	AdvocateName  string             `json:"advocateName" bson:"advocateName"`
	AdvocateImage string             `json:"advocateImage" bson:"advocateImage"`
}
