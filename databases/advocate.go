package databases

// go generate: mockery --name AdvocateDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ukil-legal/ukil-api/models"
)

const advocateName = "advocates"

// AdvocateDatabase contains the methods to use with the advocate collection
type AdvocateDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.Advocate, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Advocate, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	Aggregate(context.Context, interface{}, ...*options.AggregateOptions) (CursorHelper, error)
}

type advocateDatabase struct {
	db DatabaseHelper
}

// NewAdvocateDatabase initializes a new instance of advocate database with the provided db connection
func NewAdvocateDatabase(db DatabaseHelper) AdvocateDatabase {
	return &advocateDatabase{
		db: db,
	}
}

func (a *advocateDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Advocate, error) {
	advocate := &models.Advocate{}
	err := a.db.Collection(advocateName).FindOne(ctx, filter, opts...).Decode(&advocate)
	if err != nil {
		return nil, err
	}
	return advocate, nil
}

func (a *advocateDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Advocate, error) {
	var advocates []models.Advocate
	cur := a.db.Collection(advocateName).Find(ctx, filter, opts...)
	err := cur.Decode(&advocates)
	if err != nil {
		return nil, err
	}
	return advocates, nil
}

func (a *advocateDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := a.db.Collection(advocateName).InsertOne(ctx, document, opts...)
	return res, err
}

func (a *advocateDatabase) Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (CursorHelper, error) {
	return a.db.Collection(advocateName).Aggregate(ctx, pipeline, opts...)
}
