package services

import (
	"context"
	"io"
	"testing"

	"github.com/vampi-007/AI-Interviewer/internal/models"
	"github.com/vampi-007/AI-Interviewer/internal/utils"
)

type fakeUploader struct {
	objects map[string][]byte
}

func (u *fakeUploader) Upload(_ context.Context, name, _ string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if u.objects == nil {
		u.objects = map[string][]byte{}
	}
	u.objects[name] = data
	return name, nil
}

func (u *fakeUploader) Close() error { return nil }

func TestUploadRejectsNonPDF(t *testing.T) {
	svc := NewResumeService(newFakeResumeRepo(), &fakeUploader{}, testLogger())
	ctx := context.Background()

	if _, err := svc.Upload(ctx, "user-1", "resume.pdf", []byte("plain text, not a pdf")); !wantCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("got %v, want INVALID_ARGUMENT", err)
	}
	if _, err := svc.Upload(ctx, "user-1", "resume.pdf", nil); !wantCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("empty file got %v, want INVALID_ARGUMENT", err)
	}
	if _, err := svc.Upload(ctx, "", "resume.pdf", []byte("x")); !wantCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("missing user got %v, want INVALID_ARGUMENT", err)
	}
}

func TestResumeGet(t *testing.T) {
	resumes := newFakeResumeRepo(&models.Resume{ResumeID: "resume-1", UserID: "user-1"})
	svc := NewResumeService(resumes, &fakeUploader{}, testLogger())
	ctx := context.Background()

	row, err := svc.Get(ctx, "resume-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if row.UserID != "user-1" {
		t.Fatalf("user %q", row.UserID)
	}
	if _, err := svc.Get(ctx, "ghost"); !wantCode(err, utils.CodeNotFound) {
		t.Fatalf("got %v, want NOT_FOUND", err)
	}
}
