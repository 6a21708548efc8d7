package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vampi-007/AI-Interviewer/internal/models"
	"github.com/vampi-007/AI-Interviewer/internal/services"
	"github.com/vampi-007/AI-Interviewer/internal/utils"
)

type PromptHandler struct {
	svc services.PromptService
}

func NewPromptHandler(svc services.PromptService) *PromptHandler {
	return &PromptHandler{svc: svc}
}

type GeneratePromptRequest struct {
	TechStack  string `json:"tech_stack" binding:"required"`
	Difficulty string `json:"difficulty"`
}

func (h *PromptHandler) Generate(c *gin.Context) {
	var req GeneratePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "PromptHandler.Generate", "invalid request body", err))
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = string(models.DifficultyMedium)
	}

	prompt, err := h.svc.Generate(c.Request.Context(), req.TechStack, models.Difficulty(req.Difficulty))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, prompt)
}

func (h *PromptHandler) Get(c *gin.Context) {
	prompt, err := h.svc.Get(c.Request.Context(), c.Param("prompt_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, prompt)
}

func (h *PromptHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	prompts, err := h.svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, prompts)
}

func (h *PromptHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("prompt_id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prompt deleted"})
}
