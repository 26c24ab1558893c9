package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/ukil-legal/ukil-api/api"
	"github.com/ukil-legal/ukil-api/api/scheduler"
	"github.com/ukil-legal/ukil-api/config"
	"github.com/ukil-legal/ukil-api/databases"
	"github.com/ukil-legal/ukil-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	tokens := api.TokenService{Secret: []byte(a.Config.SecretKey)}
	m := api.Middleware{Tokens: tokens}

	adv := Advocate{
		DB:   databases.NewAdvocateDatabase(a.dbHelper),
		CRDB: databases.NewCaseRequestDatabase(a.dbHelper),
		ADB:  databases.NewArticleDatabase(a.dbHelper),
	}
	u := User{
		DB:   databases.NewUserDatabase(a.dbHelper),
		CRDB: databases.NewCaseRequestDatabase(a.dbHelper),
	}
	auth := Auth{
		ADB:    databases.NewAdvocateDatabase(a.dbHelper),
		UDB:    databases.NewUserDatabase(a.dbHelper),
		Tokens: tokens,
	}
	cr := CaseRequest{DB: databases.NewCaseRequestDatabase(a.dbHelper)}
	art := Article{DB: databases.NewArticleDatabase(a.dbHelper)}
	cloudinaryHandler := CloudinaryHandler{Config: a.Config}

	r := mux.NewRouter()
	r.Use(api.RequestLogger)

	r.HandleFunc("/", livenessHandler).Methods("GET")
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	r.Handle("/advocate", http.HandlerFunc(adv.RegisterAdvocateHandler)).Methods("POST")
	r.Handle("/advocate", m.Authenticate(http.HandlerFunc(adv.AdvocateProfileHandler))).Methods("GET")
	r.Handle("/advocateDetail", http.HandlerFunc(adv.AdvocateDetailHandler)).Methods("GET")
	r.Handle("/advocates", http.HandlerFunc(adv.AdvocatesHandler)).Methods("GET")
	r.Handle("/advocates-by-practice-area", http.HandlerFunc(adv.TopAdvocatesByPracticeAreaHandler)).Methods("GET")

	r.Handle("/user", http.HandlerFunc(u.RegisterUserHandler)).Methods("POST")
	r.Handle("/user", m.Authenticate(http.HandlerFunc(u.UserProfileHandler))).Methods("GET")

	r.Handle("/login", http.HandlerFunc(auth.LoginHandler)).Methods("POST")

	r.Handle("/caseRequest", http.HandlerFunc(cr.CreateCaseRequestHandler)).Methods("POST")

	r.Handle("/article", http.HandlerFunc(art.CreateArticleHandler)).Methods("POST")
	r.Handle("/articles", http.HandlerFunc(art.ArticlesHandler)).Methods("GET")

	r.Handle("/generate-signature", m.Authenticate(http.HandlerFunc(cloudinaryHandler.GenerateSignature))).Methods("POST")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("ukil-api has connected to the database")

	a.Scheduler = scheduler.NewScheduler(
		databases.NewCaseRequestDatabase(a.dbHelper),
		databases.NewAdvocateDatabase(a.dbHelper),
		a.Config.SendgridAPIKey,
	)
	a.Scheduler.Start()

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func livenessHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "Ukil server is running")
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
