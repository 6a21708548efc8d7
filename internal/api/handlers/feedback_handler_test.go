package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/vampi-007/AI-Interviewer/internal/models"
	"github.com/vampi-007/AI-Interviewer/internal/utils"
)

type stubFeedbackService struct {
	genRes *models.InterviewFeedback
	genErr error
	getRes *models.InterviewFeedback
	getErr error
}

func (s *stubFeedbackService) Generate(context.Context, string) (*models.InterviewFeedback, error) {
	return s.genRes, s.genErr
}

func (s *stubFeedbackService) GetByInterviewID(context.Context, string) (*models.InterviewFeedback, error) {
	return s.getRes, s.getErr
}

func feedbackRouter(svc *stubFeedbackService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewFeedbackHandler(svc)
	r := gin.New()
	r.POST("/feedback/generate", h.Generate)
	r.GET("/feedback/:interview_id", h.Get)
	return r
}

func TestGenerateFeedbackEndpoint(t *testing.T) {
	svc := &stubFeedbackService{
		genRes: &models.InterviewFeedback{FeedbackID: "fb-1", InterviewID: "iv-1", OverallScore: 7.5},
	}
	w := doJSON(t, feedbackRouter(svc), http.MethodPost, "/feedback/generate", `{"interview_id": "iv-1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200: %s", w.Code, w.Body.String())
	}

	if w := doJSON(t, feedbackRouter(svc), http.MethodPost, "/feedback/generate", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing interview_id: status %d, want 400", w.Code)
	}
}

func TestGenerateFeedbackEndpointErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"interview missing", utils.E(utils.CodeNotFound, "FeedbackService.Generate", "interview not found", nil), http.StatusNotFound},
		{"transcript missing", utils.E(utils.CodeInvalidArgument, "FeedbackService.Generate", "interview transcript not available", nil), http.StatusBadRequest},
		{"model outage", utils.E(utils.CodeUnavailable, "FeedbackService.Generate", "feedback generation failed", nil), http.StatusServiceUnavailable},
		{"bad model output", utils.E(utils.CodeInternal, "FeedbackService.Generate", "no structured feedback in model response", nil), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := feedbackRouter(&stubFeedbackService{genErr: tc.err})
			if w := doJSON(t, r, http.MethodPost, "/feedback/generate", `{"interview_id": "iv-1"}`); w.Code != tc.want {
				t.Fatalf("status %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestGetFeedbackEndpoint(t *testing.T) {
	svc := &stubFeedbackService{
		getRes: &models.InterviewFeedback{FeedbackID: "fb-1", InterviewID: "iv-1"},
	}
	if w := doJSON(t, feedbackRouter(svc), http.MethodGet, "/feedback/iv-1", ""); w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", w.Code)
	}

	r := feedbackRouter(&stubFeedbackService{
		getErr: utils.E(utils.CodeNotFound, "FeedbackService.GetByInterviewID", "feedback not found for this interview", nil),
	})
	if w := doJSON(t, r, http.MethodGet, "/feedback/ghost", ""); w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}
}
