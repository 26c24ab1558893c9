package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User holds the structure for the users collection in mongo. Users are
// clients seeking legal help; advocates live in their own collection, so the
// same email may exist once in each.
type User struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Email    string             `json:"email" bson:"email"`
	Number   string             `json:"number" bson:"number"`
	Password string             `json:"password" bson:"password"`
}
