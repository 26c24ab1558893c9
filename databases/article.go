package databases

// go generate: mockery --name ArticleDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ukil-legal/ukil-api/models"
)

const articleName = "articles"

// ArticleDatabase contains the methods to use with the article collection
type ArticleDatabase interface {
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Article, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
}

type articleDatabase struct {
	db DatabaseHelper
}

// NewArticleDatabase initializes a new instance of article database with the provided db connection
func NewArticleDatabase(db DatabaseHelper) ArticleDatabase {
	return &articleDatabase{
		db: db,
	}
}

func (a *articleDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Article, error) {
	var articles []models.Article
	cur := a.db.Collection(articleName).Find(ctx, filter, opts...)
	err := cur.Decode(&articles)
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (a *articleDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := a.db.Collection(articleName).InsertOne(ctx, document, opts...)
	return res, err
}
