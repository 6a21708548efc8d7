package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vampi-007/AI-Interviewer/internal/api/handlers"
	"github.com/vampi-007/AI-Interviewer/internal/api/middleware"
)

type Deps struct {
	Auth      *handlers.AuthHandler
	Interview *handlers.InterviewHandler
	Feedback  *handlers.FeedbackHandler
	Prompt    *handlers.PromptHandler
	Resume    *handlers.ResumeHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Public
	r.POST("/auth/register", d.Auth.Register)
	r.POST("/auth/login", d.Auth.Login)
	r.POST("/auth/refresh", d.Auth.Refresh)

	// The provider's end-of-call webhook carries no bearer token; the session
	// token embedded in the payload is the only credential.
	r.POST("/vapi-end-of-call", d.Interview.EndOfCall)

	// The in-call client holds only the session token, not a JWT.
	r.GET("/validate/:session_token", d.Interview.Validate)
	r.POST("/end-interview/:session_token", d.Interview.EndSession)

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth())

	auth.POST("/schedule", d.Interview.Schedule)
	auth.POST("/interview/start", d.Interview.StartCall)
	auth.GET("/interview/:interview_id", d.Interview.GetInterview)

	auth.POST("/feedback/generate", d.Feedback.Generate)
	auth.GET("/feedback/:interview_id", d.Feedback.Get)

	auth.POST("/prompts/generate", d.Prompt.Generate)
	auth.GET("/prompts", d.Prompt.List)
	auth.GET("/prompts/:prompt_id", d.Prompt.Get)
	auth.DELETE("/prompts/:prompt_id", middleware.RequireAdmin(), d.Prompt.Delete)

	auth.POST("/resumes/upload", d.Resume.Upload)
	auth.GET("/resumes/:resume_id", d.Resume.Get)
}
