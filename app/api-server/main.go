package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/vampi-007/AI-Interviewer/config"
	"github.com/vampi-007/AI-Interviewer/internal/api/handlers"
	"github.com/vampi-007/AI-Interviewer/internal/api/middleware"
	"github.com/vampi-007/AI-Interviewer/internal/api/routes"
	"github.com/vampi-007/AI-Interviewer/internal/cache"
	"github.com/vampi-007/AI-Interviewer/internal/logger"
	"github.com/vampi-007/AI-Interviewer/internal/mailer"
	"github.com/vampi-007/AI-Interviewer/internal/models"
	"github.com/vampi-007/AI-Interviewer/internal/providers/llm"
	"github.com/vampi-007/AI-Interviewer/internal/providers/vapi"
	mongorepo "github.com/vampi-007/AI-Interviewer/internal/repositories/mongo"
	pgrepo "github.com/vampi-007/AI-Interviewer/internal/repositories/postgres"
	"github.com/vampi-007/AI-Interviewer/internal/services"
	"github.com/vampi-007/AI-Interviewer/internal/storage"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	ctx := context.Background()

	// Relational store
	db, err := config.OpenPostgres()
	if err != nil {
		log.WithError(err).Fatal("postgres init failed")
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Resume{},
		&models.Prompt{},
		&models.Interview{},
		&models.InterviewFeedback{},
	); err != nil {
		log.WithError(err).Fatal("schema migration failed")
	}
	log.Info("postgres connected")

	// Session cache
	rdb, err := config.OpenRedis()
	if err != nil {
		log.WithError(err).Fatal("redis init failed")
	}
	defer rdb.Close()
	log.Info("redis connected")

	// Webhook audit trail (optional)
	var events mongorepo.WebhookEventRepository
	if os.Getenv("MONGO_URI") != "" {
		mc, err := config.OpenMongo()
		if err != nil {
			log.WithError(err).Fatal("mongo init failed")
		}
		defer func() { _ = mc.Disconnect(context.Background()) }()

		dbName := os.Getenv("MONGO_DB")
		if dbName == "" {
			dbName = "ai_interviewer"
		}
		events = mongorepo.NewWebhookEventRepo(mc.Database(dbName))
		log.Info("mongo connected")
	}

	// Text-generation provider
	provider, err := llm.NewVertexGemini(ctx,
		os.Getenv("VERTEX_PROJECT_ID"),
		os.Getenv("VERTEX_LOCATION"),
		os.Getenv("VERTEX_MODEL"),
	)
	if err != nil {
		log.WithError(err).Fatal("llm provider init failed")
	}
	defer provider.Close()

	// Voice-interview provider (optional; the client can also start calls
	// directly with the session token)
	var voice *vapi.Client
	if os.Getenv("VAPI_BASE_URL") != "" {
		voice = vapi.NewClient(
			os.Getenv("VAPI_BASE_URL"),
			os.Getenv("VAPI_ORG_ID"),
			os.Getenv("VAPI_PRIVATE_KEY"),
			os.Getenv("VAPI_ASSISTANT_ID"),
		)
	}

	// Resume file storage (optional; uploads fail without it)
	var uploader storage.Uploader
	if bucket := os.Getenv("GCS_BUCKET"); bucket != "" {
		gcs, err := storage.NewGCSUploader(ctx, bucket)
		if err != nil {
			log.WithError(err).Fatal("gcs init failed")
		}
		defer gcs.Close()
		uploader = gcs
	}

	mail := mailer.NewFromEnv()

	sessionCache := cache.NewRedisCache(rdb)
	users := pgrepo.NewUserRepo(db)
	resumes := pgrepo.NewResumeRepo(db)
	prompts := pgrepo.NewPromptRepo(db)
	interviews := pgrepo.NewInterviewRepo(db)
	feedback := pgrepo.NewFeedbackRepo(db)

	sessionSvc := services.NewSessionService(sessionCache, users, prompts, resumes, interviews, events, voice, log)
	feedbackSvc := services.NewFeedbackService(interviews, feedback, users, provider, mail, log)
	promptSvc := services.NewPromptService(prompts, provider, log)
	authSvc := services.NewAuthService(users, mail, os.Getenv("JWT_SECRET"), log)
	resumeSvc := services.NewResumeService(resumes, uploader, log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Auth:      handlers.NewAuthHandler(authSvc),
		Interview: handlers.NewInterviewHandler(sessionSvc),
		Feedback:  handlers.NewFeedbackHandler(feedbackSvc),
		Prompt:    handlers.NewPromptHandler(promptSvc),
		Resume:    handlers.NewResumeHandler(resumeSvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: r}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()
	log.WithField("port", port).Info("server started")

	stop, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	<-stop.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown error")
	}
	log.Info("server stopped")
}
