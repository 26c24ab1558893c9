package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Advocate holds the structure for the advocates collection in mongo. The
// city field doubles as the court facet in the directory filters.
type Advocate struct {
	ID               primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name             string             `json:"name" bson:"name"`
	Email            string             `json:"email" bson:"email"`
	Number           string             `json:"number" bson:"number"`
	Address          string             `json:"address,omitempty" bson:"address,omitempty"`
	City             string             `json:"city,omitempty" bson:"city,omitempty"`
	License          string             `json:"license,omitempty" bson:"license,omitempty"`
	YearOfPractice   int32              `json:"yearOfPractice,omitempty" bson:"yearOfPractice,omitempty"`
	Chamber          string             `json:"chamber,omitempty" bson:"chamber,omitempty"`
	PracticeArea     string             `json:"practiceArea,omitempty" bson:"practiceArea,omitempty"`
	EduQualification string             `json:"eduQualification,omitempty" bson:"eduQualification,omitempty"`
	University       string             `json:"university,omitempty" bson:"university,omitempty"`
	GraduationYear   string             `json:"graduationYear,omitempty" bson:"graduationYear,omitempty"`
	Image            string             `json:"image,omitempty" bson:"image,omitempty"`
	Password         string             `json:"password" bson:"password"`
}
