package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vampi-007/AI-Interviewer/internal/services"
	"github.com/vampi-007/AI-Interviewer/internal/utils"
)

type FeedbackHandler struct {
	svc services.FeedbackService
}

func NewFeedbackHandler(svc services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

type GenerateFeedbackRequest struct {
	InterviewID string `json:"interview_id" binding:"required"`
}

// Generate is not idempotent: a second call creates a second feedback row.
// Callers are expected to check Get first.
func (h *FeedbackHandler) Generate(c *gin.Context) {
	var req GenerateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "FeedbackHandler.Generate", "invalid request body", err))
		return
	}

	fb, err := h.svc.Generate(c.Request.Context(), req.InterviewID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, fb)
}

func (h *FeedbackHandler) Get(c *gin.Context) {
	fb, err := h.svc.GetByInterviewID(c.Request.Context(), c.Param("interview_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, fb)
}
