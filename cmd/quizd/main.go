package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/courseloom/quiz-engine/internal/api/http"
	auth "github.com/courseloom/quiz-engine/internal/auth/middleware"
	"github.com/courseloom/quiz-engine/internal/config"
	"github.com/courseloom/quiz-engine/internal/course"
	"github.com/courseloom/quiz-engine/internal/db"
	"github.com/courseloom/quiz-engine/internal/event"
	"github.com/courseloom/quiz-engine/internal/quiz"
	"github.com/courseloom/quiz-engine/internal/rbac"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := quiz.NewSQLStore(dbh, cfg.DBDriver)
	courses := course.NewSQLGateway(dbh)

	opts := []quiz.ServiceOption{}
	if cfg.AMQPURL != "" {
		pub, err := event.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatalf("amqp connect failed: %v", err)
		}
		defer pub.Close()
		opts = append(opts, quiz.WithPublisher(pub))
	} else {
		log.Println("AMQP not configured, attempt events will not be published")
	}
	svc := quiz.NewService(store, courses, opts...)

	// --- Auth ---
	authSvc := auth.NewAuthService(cfg.AuthSecret)
	creds := &auth.LocalCredentials{DB: dbh, AdminUser: cfg.AdminUser, AdminPassHash: cfg.AdminPassHash}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, creds))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))
		pr.Use(auth.AttachRoleFromDB(dbh, cfg.Mode == config.ModeOffline))

		pr.Route("/courses/{courseID}/quizzes", func(qr chi.Router) {
			qr.With(rbac.Require("quiz:create")).
				Post("/", api.CreateQuizHandler(svc))
			qr.With(rbac.Require("quiz:add-question")).
				Post("/{quizID}/questions", api.AddQuestionHandler(svc))
			qr.With(rbac.Require("quiz:view")).
				Get("/{quizID}", api.GetQuizHandler(svc))
			qr.With(rbac.Require("attempt:start")).
				Post("/{quizID}/start", api.StartAttemptHandler(svc))
			qr.With(rbac.RequireAny("attempt:view-own", "attempt:view-all")).
				Get("/{quizID}/attempts", api.ListAttemptsHandler(svc))
		})

		pr.With(rbac.Require("attempt:submit")).
			Post("/quizzes/attempts/{attemptID}/submit", api.SubmitAttemptHandler(svc))
		pr.With(rbac.RequireAny("attempt:view-own", "attempt:view-all")).
			Get("/quizzes/attempts/{attemptID}", api.GetAttemptHandler(svc))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
