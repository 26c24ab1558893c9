package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ukil-legal/ukil-api/api"
	"github.com/ukil-legal/ukil-api/config"
	"github.com/ukil-legal/ukil-api/databases"
	"github.com/ukil-legal/ukil-api/models"
)

// Article exported for testing purposes
type Article struct {
	DB databases.ArticleDatabase
}

// CreateArticleHandler publishes an article for an advocate. The posted-at
// timestamp is assigned here, never taken from the caller.
func (a Article) CreateArticleHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var article models.Article
	err := json.NewDecoder(r.Body).Decode(&article)
	if err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	article.PostedAt = primitive.NewDateTimeFromTime(time.Now())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := a.DB.InsertOne(ctx, article)
	if err != nil {
		config.ErrorStatus("failed to insert article", http.StatusInternalServerError, w, err)
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

// ArticlesHandler returns every article. No ordering guarantee.
func (a Article) ArticlesHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	articles, err := a.DB.Find(ctx, bson.D{})
	if err != nil {
		config.ErrorStatus("failed to get articles", http.StatusInternalServerError, w, err)
		return
	}
	if len(articles) == 0 {
		articles = []models.Article{}
	}

	b, err := json.Marshal(models.ArticleListResponse{Articles: articles})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
