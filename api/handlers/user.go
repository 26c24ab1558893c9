package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ukil-legal/ukil-api/api"
	"github.com/ukil-legal/ukil-api/config"
	"github.com/ukil-legal/ukil-api/databases"
	"github.com/ukil-legal/ukil-api/models"
)

// User exported for testing purposes
type User struct {
	DB   databases.UserDatabase
	CRDB databases.CaseRequestDatabase
}

// RegisterUserHandler registers a new user. Same duplicate discipline as
// advocate registration: email collisions return insertedId null without
// writing.
func (u User) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var user models.User
	err := json.NewDecoder(r.Body).Decode(&user)
	if err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	existingUser, err := u.DB.FindOne(ctx, bson.M{"email": user.Email})
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		config.ErrorStatus("failed to get user by email", http.StatusInternalServerError, w, err)
		return
	}
	if existingUser != nil {
		b, _ := json.Marshal(models.RegistrationResponse{Message: "user already exist!", InsertedID: nil})
		w.WriteHeader(http.StatusOK)
		w.Write(b)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}
	user.Password = string(hashedPassword)

	res, err := u.DB.InsertOne(ctx, user)
	if err != nil {
		config.ErrorStatus("failed to insert user", http.StatusInternalServerError, w, err)
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

// UserProfileHandler returns the user self-view: the user record plus their
// case requests resolved against the advocate collection, newest first. A
// request whose advocate reference no longer resolves still appears, with
// fallback name and image. Zero rows is a 404: "no requests at all" is
// distinct from "requests with no advocate".
func (u User) UserProfileHandler(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	zap.S().Debugf("email: %v", email)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := u.DB.FindOne(ctx, bson.M{"email": email})
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		config.ErrorStatus("failed to get user by email", http.StatusInternalServerError, w, err)
		return
	}

	// left-join against advocates; an advocateId that does not convert to an
	// object id drops the join (null), never the row
	pipeline := []bson.M{
		{"$match": bson.M{"email": email}},
		{"$sort": bson.M{"requestedAt": -1}},
		{"$addFields": bson.M{
			"advocateObjectId": bson.M{"$convert": bson.M{
				"input":   "$advocateId",
				"to":      "objectId",
				"onError": nil,
				"onNull":  nil,
			}},
		}},
		{"$lookup": bson.M{
			"from":         "advocates",
			"localField":   "advocateObjectId",
			"foreignField": "_id",
			"as":           "advocate",
		}},
		{"$unwind": bson.M{
			"path":                       "$advocate",
			"preserveNullAndEmptyArrays": true,
		}},
		{"$project": bson.M{
			"_id":           1,
			"userName":      1,
			"email":         1,
			"advocateId":    1,
			"heading":       1,
			"message":       1,
			"requestedAt":   1,
			"status":        1,
			"advocateName":  bson.M{"$ifNull": []interface{}{"$advocate.name", "Unknown Advocate"}},
			"advocateImage": bson.M{"$ifNull": []interface{}{"$advocate.image", "No img"}},
		}},
	}

	cursor, err := u.CRDB.Aggregate(ctx, pipeline)
	if err != nil {
		config.ErrorStatus("failed to get case requests", http.StatusInternalServerError, w, err)
		return
	}

	var userRequests []models.UserCaseRequest
	if err := cursor.Decode(&userRequests); err != nil {
		config.ErrorStatus("failed to decode case requests", http.StatusInternalServerError, w, err)
		return
	}

	if len(userRequests) == 0 {
		config.ErrorStatus("no case requests found", http.StatusNotFound, w, fmt.Errorf("no case requests found for %v", email))
		return
	}

	b, err := json.Marshal(models.UserProfileResponse{User: user, UserRequests: userRequests})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
