package models

import "time"

// PendingSession lives only in the session cache, from the moment scheduling
// succeeds until the provider reports, the user ends the session, or the TTL
// lapses. It is JSON-serialized under the key "interview:{session_token}".
type PendingSession struct {
	SessionToken string  `json:"session_token"`
	UserID       string  `json:"user_id"`
	InterviewID  string  `json:"interview_id"`
	PromptID     *string `json:"prompt_id,omitempty"`
	ResumeID     *string `json:"resume_id,omitempty"`

	// Mirrors the physical TTL on the cache entry.
	ExpiresAt time.Time `json:"expires_at"`
}
