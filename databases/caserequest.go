package databases

// go generate: mockery --name CaseRequestDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ukil-legal/ukil-api/models"
)

const caseRequestName = "caseRequests"

// CaseRequestDatabase contains the methods to use with the case request
// collection. Aggregate backs the user-profile join pipeline.
type CaseRequestDatabase interface {
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.CaseRequest, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	Aggregate(context.Context, interface{}, ...*options.AggregateOptions) (CursorHelper, error)
}

type caseRequestDatabase struct {
	db DatabaseHelper
}

// NewCaseRequestDatabase initializes a new instance of case request database with the provided db connection
func NewCaseRequestDatabase(db DatabaseHelper) CaseRequestDatabase {
	return &caseRequestDatabase{
		db: db,
	}
}

func (c *caseRequestDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.CaseRequest, error) {
	var caseRequests []models.CaseRequest
	cur := c.db.Collection(caseRequestName).Find(ctx, filter, opts...)
	err := cur.Decode(&caseRequests)
	if err != nil {
		return nil, err
	}
	return caseRequests, nil
}

func (c *caseRequestDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := c.db.Collection(caseRequestName).InsertOne(ctx, document, opts...)
	return res, err
}

func (c *caseRequestDatabase) Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (CursorHelper, error) {
	return c.db.Collection(caseRequestName).Aggregate(ctx, pipeline, opts...)
}
