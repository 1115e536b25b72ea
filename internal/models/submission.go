package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Answer is a student's answer to a single question.
type Answer struct {
	SelectedOption string `json:"selected_option"`
	Rationale      string `json:"rationale"`
}

// AttemptResult is one completed attempt, scored by the caller before
// submission. Result is a percentage of correct answers in [0,100].
type AttemptResult struct {
	AttemptIndex int               `json:"attempt_index"`
	Answers      map[string]Answer `json:"answers"`
	Result       float64           `json:"result"`
	SubmittedAt  time.Time         `json:"submitted_at"`
}

// Submission records a student's attempts against a deployment instance.
// NumberOfAttempts is always derived from the attempt list, never
// supplied independently.
type Submission struct {
	SubmissionID     string         `gorm:"primaryKey;size:36" json:"submission_id"`
	InstanceID       string         `gorm:"size:64;not null;index" json:"instance_id"`
	StudentID        string         `gorm:"size:128;not null" json:"student_id"`
	NumberOfAttempts int            `gorm:"not null" json:"number_of_attempts"`
	Attempts         datatypes.JSON `gorm:"type:json;not null" json:"-"`
	CreatedAt        time.Time      `json:"created_at"`
}

// SetAttempts serializes the attempt list into the JSON storage column
// and keeps NumberOfAttempts consistent with its length.
func (s *Submission) SetAttempts(attempts []AttemptResult) error {
	data, err := json.Marshal(attempts)
	if err != nil {
		return err
	}
	s.Attempts = datatypes.JSON(data)
	s.NumberOfAttempts = len(attempts)
	return nil
}

// AttemptList deserializes the stored attempts into a fresh slice.
func (s Submission) AttemptList() []AttemptResult {
	if len(s.Attempts) == 0 {
		return nil
	}

	var attempts []AttemptResult
	if err := json.Unmarshal(s.Attempts, &attempts); err != nil {
		return nil
	}

	return attempts
}
