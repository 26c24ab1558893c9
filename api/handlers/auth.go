package handlers

import (
	"encoding/json"
	"errors"
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

// Auth exported for testing purposes
type Auth struct {
	ADB    databases.AdvocateDatabase
	UDB    databases.UserDatabase
	Tokens api.TokenService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

// LoginHandler resolves an account by email and declared kind, verifies the
// password and issues a session token. The outcome is a tri-state the client
// depends on: unknown account, known account with a wrong password, or a
// token with the stored record.
func (a Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var body loginRequest
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	// "Advocate" selects the advocate collection; any other declared kind
	// falls through to users
	var account interface{}
	var digest string
	if body.UserType == "Advocate" {
		advocate, err := a.ADB.FindOne(ctx, bson.M{"email": body.Email})
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				a.writeUnknownAccount(w, body.Email)
				return
			}
			config.ErrorStatus("failed to get advocate by email", http.StatusInternalServerError, w, err)
			return
		}
		account, digest = advocate, advocate.Password
	} else {
		user, err := a.UDB.FindOne(ctx, bson.M{"email": body.Email})
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				a.writeUnknownAccount(w, body.Email)
				return
			}
			config.ErrorStatus("failed to get user by email", http.StatusInternalServerError, w, err)
			return
		}
		account, digest = user, user.Password
	}

	err = bcrypt.CompareHashAndPassword([]byte(digest), []byte(body.Password))
	if err != nil {
		zap.S().Debugw("invalid pin", "email", body.Email)
		b, _ := json.Marshal(models.LoginInvalidPin{User: true, Pin: false})
		w.WriteHeader(http.StatusOK)
		w.Write(b)
		return
	}

	token, err := a.Tokens.Issue(body.Email)
	if err != nil {
		config.ErrorStatus("failed to issue token", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(models.LoginSuccess{Token: token, User: account})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func (a Auth) writeUnknownAccount(w http.ResponseWriter, email string) {
	zap.S().Debugw("account does not exist", "email", email)
	b, _ := json.Marshal(models.LoginUnknownAccount{User: false})
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
