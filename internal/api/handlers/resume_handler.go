package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vampi-007/AI-Interviewer/internal/services"
	"github.com/vampi-007/AI-Interviewer/internal/utils"
)

// 10 MB cap on uploaded resume PDFs.
const maxResumeSize = 10 << 20

type ResumeHandler struct {
	svc services.ResumeService
}

func NewResumeHandler(svc services.ResumeService) *ResumeHandler {
	return &ResumeHandler{svc: svc}
}

func (h *ResumeHandler) Upload(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.Upload", "multipart field 'file' is required", err))
		return
	}
	if file.Size > maxResumeSize {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.Upload", "file exceeds the 10MB limit", nil))
		return
	}

	f, err := file.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "ResumeHandler.Upload", "failed to open uploaded file", err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "ResumeHandler.Upload", "failed to read uploaded file", err))
		return
	}

	resume, err := h.svc.Upload(c.Request.Context(), userID, file.Filename, data)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resume)
}

func (h *ResumeHandler) Get(c *gin.Context) {
	resume, err := h.svc.Get(c.Request.Context(), c.Param("resume_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resume)
}
