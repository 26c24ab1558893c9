package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ukil-legal/ukil-api/api/handlers"
	"github.com/ukil-legal/ukil-api/databases"
	"github.com/ukil-legal/ukil-api/databases/mocks"
	"github.com/ukil-legal/ukil-api/models"
)

func TestAdvocate_RegisterAdvocateHandlerDuplicateEmail(t *testing.T) {
	body := bytes.NewBufferString(`{"name":"B","email":"b@x.com","number":"2","password":"p","practiceArea":"Criminal Lawyer"}`)
	req, err := http.NewRequest("POST", "/advocate", body)
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	singleResultHelper = &mocks.SingleResultHelper{}

	singleResultHelper.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Advocate)
		(*arg).Email = "b@x.com"
	})
	conn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.(*MockDatabaseHelper).On("Collection", "advocates").Return(conn)

	a := handlers.Advocate{DB: databases.NewAdvocateDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(a.RegisterAdvocateHandler)
	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	expected := `{"message":"advocate already exist!","insertedId":null}`
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: \ngot: %v \nwant: %v", rr.Body.String(), expected)
	}
	conn.(*mocks.CollectionHelper).AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestAdvocate_RegisterAdvocateHandlerSuccess(t *testing.T) {
	body := bytes.NewBufferString(`{"name":"B","email":"b@x.com","number":"2","password":"p","license":"L-42","yearOfPractice":7,"practiceArea":"Criminal Lawyer"}`)
	req, err := http.NewRequest("POST", "/advocate", body)
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper
	var insertOneResultHelper databases.InsertOneResultHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	singleResultHelper = &mocks.SingleResultHelper{}
	insertOneResultHelper = &mocks.InsertOneResultHelper{}

	var insertedAdvocate models.Advocate

	singleResultHelper.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)
	insertOneResultHelper.(*mocks.InsertOneResultHelper).On("Decode").Return("608cafe595eb9dc05379b7f4")
	conn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	conn.(*mocks.CollectionHelper).On("InsertOne", mock.Anything, mock.Anything).Return(insertOneResultHelper, nil).Run(func(args mock.Arguments) {
		insertedAdvocate = args.Get(1).(models.Advocate)
	})
	db.(*MockDatabaseHelper).On("Collection", "advocates").Return(conn)

	a := handlers.Advocate{DB: databases.NewAdvocateDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(a.RegisterAdvocateHandler)
	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	expected := `{"insertedId":"608cafe595eb9dc05379b7f4"}`
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: \ngot: %v \nwant: %v", rr.Body.String(), expected)
	}
	assert.NotEqual(t, "p", insertedAdvocate.Password)
	assert.Equal(t, "Criminal Lawyer", insertedAdvocate.PracticeArea)
}

func TestAdvocate_AdvocateProfileHandlerComposesJoins(t *testing.T) {
	req, err := http.NewRequest("GET", "/advocate?email=b@x.com", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	var db databases.DatabaseHelper
	var advocateConn databases.CollectionHelper
	var caseRequestConn databases.CollectionHelper
	var articleConn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper
	var caseRequestCursor databases.CursorHelper
	var articleCursor databases.CursorHelper

	db = &MockDatabaseHelper{}
	advocateConn = &mocks.CollectionHelper{}
	caseRequestConn = &mocks.CollectionHelper{}
	articleConn = &mocks.CollectionHelper{}
	singleResultHelper = &mocks.SingleResultHelper{}
	caseRequestCursor = &mocks.CursorHelper{}
	articleCursor = &mocks.CursorHelper{}

	advocateID := primitive.NewObjectID()
	singleResultHelper.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Advocate)
		(*arg).ID = advocateID
		(*arg).Email = "b@x.com"
	})
	caseRequestCursor.(*mocks.CursorHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.CaseRequest)
		*arg = []models.CaseRequest{{AdvocateID: advocateID.Hex(), Heading: "Land dispute"}}
	})
	articleCursor.(*mocks.CursorHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Article)
		*arg = []models.Article{{AdvocateID: advocateID.Hex(), Title: "Bail basics"}}
	})

	var caseRequestFilter interface{}
	var caseRequestOpts *options.FindOptions
	var articleOpts *options.FindOptions
	advocateConn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	caseRequestConn.(*mocks.CollectionHelper).On("Find", mock.Anything, mock.Anything, mock.Anything).Return(caseRequestCursor).Run(func(args mock.Arguments) {
		caseRequestFilter = args.Get(1)
		caseRequestOpts = args.Get(2).(*options.FindOptions)
	})
	articleConn.(*mocks.CollectionHelper).On("Find", mock.Anything, mock.Anything, mock.Anything).Return(articleCursor).Run(func(args mock.Arguments) {
		articleOpts = args.Get(2).(*options.FindOptions)
	})
	db.(*MockDatabaseHelper).On("Collection", "advocates").Return(advocateConn)
	db.(*MockDatabaseHelper).On("Collection", "caseRequests").Return(caseRequestConn)
	db.(*MockDatabaseHelper).On("Collection", "articles").Return(articleConn)

	a := handlers.Advocate{
		DB:   databases.NewAdvocateDatabase(db),
		CRDB: databases.NewCaseRequestDatabase(db),
		ADB:  databases.NewArticleDatabase(db),
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(a.AdvocateProfileHandler)
	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	// joins are keyed on the hex form of the advocate id, newest first
	assert.Equal(t, bson.M{"advocateId": advocateID.Hex()}, caseRequestFilter)
	assert.Equal(t, bson.D{{Key: "requestedAt", Value: -1}}, caseRequestOpts.Sort)
	assert.Equal(t, bson.D{{Key: "postedAt", Value: -1}}, articleOpts.Sort)
	assert.Contains(t, rr.Body.String(), `"caseRequests"`)
	assert.Contains(t, rr.Body.String(), `"Land dispute"`)
	assert.Contains(t, rr.Body.String(), `"Bail basics"`)
}

func TestAdvocate_AdvocateProfileHandlerUnknownEmail(t *testing.T) {
	req, err := http.NewRequest("GET", "/advocate?email=nobody@x.com", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	var db databases.DatabaseHelper
	var advocateConn databases.CollectionHelper
	var caseRequestConn databases.CollectionHelper
	var articleConn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper

	db = &MockDatabaseHelper{}
	advocateConn = &mocks.CollectionHelper{}
	caseRequestConn = &mocks.CollectionHelper{}
	articleConn = &mocks.CollectionHelper{}
	singleResultHelper = &mocks.SingleResultHelper{}

	singleResultHelper.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)
	advocateConn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.(*MockDatabaseHelper).On("Collection", "advocates").Return(advocateConn)
	db.(*MockDatabaseHelper).On("Collection", "caseRequests").Return(caseRequestConn)
	db.(*MockDatabaseHelper).On("Collection", "articles").Return(articleConn)

	a := handlers.Advocate{
		DB:   databases.NewAdvocateDatabase(db),
		CRDB: databases.NewCaseRequestDatabase(db),
		ADB:  databases.NewArticleDatabase(db),
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(a.AdvocateProfileHandler)
	handler.ServeHTTP(rr, req)

	// a missing advocate is not an error, just empty joins
	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	expected := `{"advocate":null,"caseRequests":[],"articles":[]}`
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: \ngot: %v \nwant: %v", rr.Body.String(), expected)
	}

	// no advocate record means no join queries; an empty advocateId filter
	// would sweep up orphaned documents
	caseRequestConn.(*mocks.CollectionHelper).AssertNotCalled(t, "Find", mock.Anything, mock.Anything, mock.Anything)
	articleConn.(*mocks.CollectionHelper).AssertNotCalled(t, "Find", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdvocate_RegisterAdvocateHandlerStoreError(t *testing.T) {
	body := bytes.NewBufferString(`{"name":"B","email":"b@x.com","number":"2","password":"p"}`)
	req, err := http.NewRequest("POST", "/advocate", body)
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	singleResultHelper = &mocks.SingleResultHelper{}

	// a store failure on the duplicate check must not read as "no duplicate"
	singleResultHelper.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(errors.New("connection reset"))
	conn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.(*MockDatabaseHelper).On("Collection", "advocates").Return(conn)

	a := handlers.Advocate{DB: databases.NewAdvocateDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(a.RegisterAdvocateHandler)
	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusInternalServerError {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusInternalServerError)
	}
	conn.(*mocks.CollectionHelper).AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestAdvocate_AdvocateDetailHandlerBadID(t *testing.T) {
	req, err := http.NewRequest("GET", "/advocateDetail?id=1234", nil)
	if err != nil {
		t.Fatal(err)
	}

	a := handlers.Advocate{}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(a.AdvocateDetailHandler)
	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusBadRequest)
	}
}

func TestAdvocate_AdvocatesHandlerFacetFilter(t *testing.T) {
	req, err := http.NewRequest("GET", "/advocates?court=All&practiceArea=Criminal+Lawyer", nil)
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var cursorHelper databases.CursorHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	cursorHelper = &mocks.CursorHelper{}

	cursorHelper.(*mocks.CursorHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Advocate)
		*arg = []models.Advocate{
			{Name: "B", PracticeArea: "Criminal Lawyer", City: "Dhaka"},
			{Name: "C", PracticeArea: "Criminal Lawyer", City: "Chittagong"},
		}
	})

	// the "All" sentinel must not constrain the court facet
	conn.(*mocks.CollectionHelper).On("Find", mock.Anything, bson.M{"practiceArea": "Criminal Lawyer"}).Return(cursorHelper)
	db.(*MockDatabaseHelper).On("Collection", "advocates").Return(conn)

	a := handlers.Advocate{DB: databases.NewAdvocateDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(a.AdvocatesHandler)
	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	assert.Contains(t, rr.Body.String(), `"count":2`)
	conn.(*mocks.CollectionHelper).AssertExpectations(t)
}

func TestAdvocate_AdvocatesHandlerNoFacets(t *testing.T) {
	req, err := http.NewRequest("GET", "/advocates", nil)
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var cursorHelper databases.CursorHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	cursorHelper = &mocks.CursorHelper{}

	cursorHelper.(*mocks.CursorHelper).On("Decode", mock.Anything).Return(nil)
	conn.(*mocks.CollectionHelper).On("Find", mock.Anything, bson.M{}).Return(cursorHelper)
	db.(*MockDatabaseHelper).On("Collection", "advocates").Return(conn)

	a := handlers.Advocate{DB: databases.NewAdvocateDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(a.AdvocatesHandler)
	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	expected := `{"count":0,"advocates":[]}`
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: \ngot: %v \nwant: %v", rr.Body.String(), expected)
	}
}

func TestAdvocate_TopAdvocatesByPracticeAreaHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/advocates-by-practice-area", nil)
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var cursorHelper databases.CursorHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	cursorHelper = &mocks.CursorHelper{}

	var pipeline interface{}
	cursorHelper.(*mocks.CursorHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.TopAdvocatesByPracticeArea)
		*arg = []models.TopAdvocatesByPracticeArea{
			{
				CriminalLawyer: []models.Advocate{
					{Name: "B", YearOfPractice: 20},
					{Name: "C", YearOfPractice: 12},
					{Name: "D", YearOfPractice: 5},
				},
				FamilyLawyer: []models.Advocate{{Name: "E", YearOfPractice: 3}},
			},
		}
	})
	conn.(*mocks.CollectionHelper).On("Aggregate", mock.Anything, mock.Anything).Return(cursorHelper, nil).Run(func(args mock.Arguments) {
		pipeline = args.Get(1)
	})
	db.(*MockDatabaseHelper).On("Collection", "advocates").Return(conn)

	a := handlers.Advocate{DB: databases.NewAdvocateDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(a.TopAdvocatesByPracticeAreaHandler)
	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	// one $facet stage carrying a capped, sorted branch per label
	stages, ok := pipeline.([]bson.M)
	if assert.True(t, ok) && assert.Len(t, stages, 1) {
		facet, ok := stages[0]["$facet"].(bson.M)
		if assert.True(t, ok) {
			assert.Len(t, facet, 4)
			branch := facet["criminalLawyer"].([]bson.M)
			assert.Equal(t, bson.M{"$match": bson.M{"practiceArea": "Criminal Lawyer"}}, branch[0])
			assert.Equal(t, bson.M{"$sort": bson.M{"yearOfPractice": -1}}, branch[1])
			assert.Equal(t, bson.M{"$limit": 3}, branch[2])
		}
	}

	var top models.TopAdvocatesByPracticeArea
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &top))
	assert.Len(t, top.CriminalLawyer, 3)
	assert.Len(t, top.FamilyLawyer, 1)
}
