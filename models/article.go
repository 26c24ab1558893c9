package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Article holds the structure for the articles collection in mongo. Articles
// reference their author advocate by the hex form of the advocate object id.
// PostedAt is set server-side at creation.
type Article struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	AdvocateID string             `json:"advocateId" bson:"advocateId"`
	Title      string             `json:"title" bson:"title"`
	Content    string             `json:"content" bson:"content"`
	Image      string             `json:"image" bson:"image"`
	PostedAt   primitive.DateTime `json:"postedAt" bson:"postedAt"`
}
