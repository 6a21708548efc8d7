package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/vampi-007/AI-Interviewer/internal/models"
	"github.com/vampi-007/AI-Interviewer/internal/pdftext"
	pgrepo "github.com/vampi-007/AI-Interviewer/internal/repositories/postgres"
	"github.com/vampi-007/AI-Interviewer/internal/storage"
	"github.com/vampi-007/AI-Interviewer/internal/utils"
)

type ResumeService interface {
	// Upload ingests a resume PDF: extracts its text, stores the raw file,
	// and persists the resume row referenced later at scheduling time.
	Upload(ctx context.Context, userID, fileName string, data []byte) (*models.Resume, error)
	Get(ctx context.Context, resumeID string) (*models.Resume, error)
}

type resumeData struct {
	FileName string `json:"file_name"`
	FilePath string `json:"file_path"`
	Text     string `json:"text"`
}

type resumeService struct {
	resumes  pgrepo.ResumeRepository
	uploader storage.Uploader
	log      *logrus.Logger
}

func NewResumeService(resumes pgrepo.ResumeRepository, uploader storage.Uploader, log *logrus.Logger) ResumeService {
	return &resumeService{resumes: resumes, uploader: uploader, log: log}
}

func (s *resumeService) Upload(ctx context.Context, userID, fileName string, data []byte) (*models.Resume, error) {
	const op = "ResumeService.Upload"

	if userID == "" || len(data) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and a non-empty file are required", nil)
	}
	if s.uploader == nil {
		return nil, utils.E(utils.CodeInternal, op, "uploader is not configured", nil)
	}

	text, err := pdftext.Extract(data)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "file is not a readable PDF", err)
	}

	resumeID := uuid.NewString()
	objectName := fmt.Sprintf("resumes/%s/%s.pdf", userID, resumeID)
	storedPath, err := s.uploader.Upload(ctx, objectName, "application/pdf", bytes.NewReader(data))
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to upload resume file", err)
	}

	payload, err := json.Marshal(resumeData{FileName: fileName, FilePath: storedPath, Text: text})
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to encode resume data", err)
	}

	row := &models.Resume{
		ResumeID:   resumeID,
		UserID:     userID,
		ResumeData: datatypes.JSON(payload),
		UploadedAt: time.Now().UTC(),
	}
	if err := s.resumes.Insert(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist resume", err)
	}

	s.log.WithFields(logrus.Fields{
		"resume_id": resumeID,
		"user_id":   userID,
	}).Info("resume ingested")
	return row, nil
}

func (s *resumeService) Get(ctx context.Context, resumeID string) (*models.Resume, error) {
	const op = "ResumeService.Get"

	if resumeID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "resume_id is required", nil)
	}
	row, err := s.resumes.GetByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "resume not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load resume", err)
	}
	return row, nil
}
