package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vampi-007/AI-Interviewer/internal/services"
	"github.com/vampi-007/AI-Interviewer/internal/utils"
)

type InterviewHandler struct {
	svc services.SessionService
}

func NewInterviewHandler(svc services.SessionService) *InterviewHandler {
	return &InterviewHandler{svc: svc}
}

type ScheduleRequest struct {
	UserID   string  `json:"user_id" binding:"required"`
	PromptID *string `json:"prompt_id"`
	ResumeID *string `json:"resume_id"`
}

type ScheduleResponse struct {
	Message      string `json:"message"`
	InterviewID  string `json:"interview_id"`
	SessionToken string `json:"session_token"`
}

func (h *InterviewHandler) Schedule(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.Schedule", "invalid request body", err))
		return
	}

	res, err := h.svc.Schedule(c.Request.Context(), services.ScheduleParams{
		UserID:   req.UserID,
		PromptID: req.PromptID,
		ResumeID: req.ResumeID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ScheduleResponse{
		Message:      "Interview scheduled successfully",
		InterviewID:  res.InterviewID,
		SessionToken: res.SessionToken,
	})
}

func (h *InterviewHandler) Validate(c *gin.Context) {
	token := c.Param("session_token")

	pending, err := h.svc.Validate(c.Request.Context(), token)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Session is valid",
		"interview_data": pending,
	})
}

// EndOfCall receives the provider's unauthenticated webhook. Malformed bodies
// and unknown tokens come back 4xx so the provider stops retrying them;
// persistence failures come back 5xx and are safe to retry.
func (h *InterviewHandler) EndOfCall(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.EndOfCall", "failed to read request body", err))
		return
	}

	res, err := h.svc.HandleEndOfCall(c.Request.Context(), body)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":             "success",
		"message":            "Interview data stored successfully",
		"success_evaluation": res.SuccessEvaluation,
	})
}

func (h *InterviewHandler) EndSession(c *gin.Context) {
	token := c.Param("session_token")

	if err := h.svc.End(c.Request.Context(), token); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Interview session ended"})
}

type StartCallRequest struct {
	SessionToken string `json:"session_token" binding:"required"`
}

func (h *InterviewHandler) StartCall(c *gin.Context) {
	var req StartCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.StartCall", "invalid request body", err))
		return
	}

	resp, err := h.svc.StartCall(c.Request.Context(), req.SessionToken)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", resp)
}

func (h *InterviewHandler) GetInterview(c *gin.Context) {
	iv, err := h.svc.GetInterview(c.Request.Context(), c.Param("interview_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, iv)
}
