package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vampi-007/AI-Interviewer/internal/models"
	"github.com/vampi-007/AI-Interviewer/internal/utils"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// fakeCache is an in-memory Cache. Logical expiry lives in the stored value's
// expires_at field, so the fake does not model TTLs.
type fakeCache struct {
	data     map[string][]byte
	getErr   error
	setNXErr error
	setNXHit bool // force SetNXJSON to report a collision
	delErr   error
	delCalls int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *fakeCache) SetNXJSON(_ context.Context, key string, val any, _ time.Duration) (bool, error) {
	if c.setNXErr != nil {
		return false, c.setNXErr
	}
	if c.setNXHit {
		return false, nil
	}
	if _, exists := c.data[key]; exists {
		return false, nil
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return false, err
	}
	c.data[key] = raw
	return true, nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.delCalls++
	if c.delErr != nil {
		return c.delErr
	}
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

type fakeUserRepo struct {
	byID            map[string]*models.User
	setRefreshErr   error
	lastRefreshUser string
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{byID: map[string]*models.User{}}
	for _, u := range users {
		r.byID[u.UserID] = u
	}
	return r
}

func (r *fakeUserRepo) Insert(_ context.Context, u *models.User) error {
	r.byID[u.UserID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID string) (*models.User, error) {
	u, ok := r.byID[userID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(context.Background(), email)
	if errors.Is(err, utils.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeUserRepo) SetRefreshToken(_ context.Context, userID, token string) error {
	if r.setRefreshErr != nil {
		return r.setRefreshErr
	}
	u, ok := r.byID[userID]
	if !ok {
		return utils.ErrNotFound
	}
	u.RefreshToken = token
	r.lastRefreshUser = userID
	return nil
}

type fakePromptRepo struct {
	byID      map[string]*models.Prompt
	insertErr error
	inserted  []*models.Prompt
}

func newFakePromptRepo(prompts ...*models.Prompt) *fakePromptRepo {
	r := &fakePromptRepo{byID: map[string]*models.Prompt{}}
	for _, p := range prompts {
		r.byID[p.PromptID] = p
	}
	return r
}

func (r *fakePromptRepo) Insert(_ context.Context, p *models.Prompt) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.byID[p.PromptID] = p
	r.inserted = append(r.inserted, p)
	return nil
}

func (r *fakePromptRepo) GetByID(_ context.Context, promptID string) (*models.Prompt, error) {
	p, ok := r.byID[promptID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return p, nil
}

func (r *fakePromptRepo) GetByStackAndDifficulty(_ context.Context, techStack string, difficulty models.Difficulty) (*models.Prompt, error) {
	for _, p := range r.byID {
		if p.TechStack == techStack && p.Difficulty == difficulty {
			return p, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakePromptRepo) List(_ context.Context, limit, offset int) ([]models.Prompt, error) {
	out := make([]models.Prompt, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, *p)
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePromptRepo) Delete(_ context.Context, promptID string) error {
	if _, ok := r.byID[promptID]; !ok {
		return utils.ErrNotFound
	}
	delete(r.byID, promptID)
	return nil
}

type fakeResumeRepo struct {
	byID      map[string]*models.Resume
	insertErr error
}

func newFakeResumeRepo(resumes ...*models.Resume) *fakeResumeRepo {
	r := &fakeResumeRepo{byID: map[string]*models.Resume{}}
	for _, rm := range resumes {
		r.byID[rm.ResumeID] = rm
	}
	return r
}

func (r *fakeResumeRepo) Insert(_ context.Context, rm *models.Resume) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.byID[rm.ResumeID] = rm
	return nil
}

func (r *fakeResumeRepo) GetByID(_ context.Context, resumeID string) (*models.Resume, error) {
	rm, ok := r.byID[resumeID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return rm, nil
}

func (r *fakeResumeRepo) LatestByUser(_ context.Context, userID string) (*models.Resume, error) {
	for _, rm := range r.byID {
		if rm.UserID == userID {
			return rm, nil
		}
	}
	return nil, utils.ErrNotFound
}

type fakeInterviewRepo struct {
	byID      map[string]*models.Interview
	insertErr error
}

func newFakeInterviewRepo(rows ...*models.Interview) *fakeInterviewRepo {
	r := &fakeInterviewRepo{byID: map[string]*models.Interview{}}
	for _, iv := range rows {
		r.byID[iv.InterviewID] = iv
	}
	return r
}

func (r *fakeInterviewRepo) Insert(_ context.Context, iv *models.Interview) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	if _, exists := r.byID[iv.InterviewID]; exists {
		return fmt.Errorf("duplicate key value violates unique constraint %q", "interviews_pkey")
	}
	r.byID[iv.InterviewID] = iv
	return nil
}

func (r *fakeInterviewRepo) GetByID(_ context.Context, interviewID string) (*models.Interview, error) {
	iv, ok := r.byID[interviewID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return iv, nil
}

func (r *fakeInterviewRepo) ListByUser(_ context.Context, userID string) ([]models.Interview, error) {
	var out []models.Interview
	for _, iv := range r.byID {
		if iv.UserID == userID {
			out = append(out, *iv)
		}
	}
	return out, nil
}

type fakeFeedbackRepo struct {
	byInterview map[string]*models.InterviewFeedback
	insertErr   error
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{byInterview: map[string]*models.InterviewFeedback{}}
}

func (r *fakeFeedbackRepo) Insert(_ context.Context, fb *models.InterviewFeedback) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.byInterview[fb.InterviewID] = fb
	return nil
}

func (r *fakeFeedbackRepo) GetByInterviewID(_ context.Context, interviewID string) (*models.InterviewFeedback, error) {
	fb, ok := r.byInterview[interviewID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return fb, nil
}

// fakeLLM returns a canned completion and records what it was asked.
type fakeLLM struct {
	out        string
	err        error
	calls      int
	lastSystem string
	lastPrompt string
}

func (f *fakeLLM) Complete(_ context.Context, system, prompt string) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

func (f *fakeLLM) Close() error { return nil }

func wantCode(err error, code utils.Code) bool {
	return err != nil && utils.IsCode(err, code)
}

func strptr(s string) *string { return &s }
