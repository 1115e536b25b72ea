package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// ActivityConfig is the full configuration for a quiz/test activity.
// All parameters apply to the whole activity, not per exercise.
type ActivityConfig struct {
	Title                      string     `json:"title"`
	Grade                      int        `json:"grade"`
	Modules                    string     `json:"modules"`
	NumberOfExercises          int        `json:"number_of_exercises"`
	TotalTimeMinutes           int        `json:"total_time_minutes"`
	NumberOfRetries            int        `json:"number_of_retries"`
	RelativeTolerancePct       *float64   `json:"relative_tolerance_pct,omitempty"`
	AbsoluteTolerance          *float64   `json:"absolute_tolerance,omitempty"`
	ShowAnswersAfterSubmission *bool      `json:"show_answers_after_submission,omitempty"`
	ScoringPolicy              *string    `json:"scoring_policy,omitempty"`
	ApprovalThreshold          *float64   `json:"approval_threshold,omitempty"`
	Exercises                  []Exercise `json:"exercises"`
}

// Exercise is a single question within an activity. All fields are mandatory.
type Exercise struct {
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	CorrectOptions string   `json:"correct_options"`
	CorrectAnswer  string   `json:"correct_answer"`
}

// Activity is an immutable quiz/test definition. Instances are created
// exclusively through the builder, which guarantees the stored
// configuration is valid. Activities are never updated in place.
type Activity struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Cfg       datatypes.JSON `gorm:"type:json;not null" json:"cfg"`
	CreatedAt time.Time      `json:"created_at"`
}

// SetConfig serializes the configuration into the JSON storage column.
func (a *Activity) SetConfig(cfg ActivityConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	a.Cfg = datatypes.JSON(data)
	return nil
}

// Config deserializes the stored configuration snapshot. Every call
// decodes a fresh copy, so callers cannot alias the stored document.
func (a Activity) Config() (ActivityConfig, error) {
	var cfg ActivityConfig
	if err := json.Unmarshal(a.Cfg, &cfg); err != nil {
		return ActivityConfig{}, err
	}
	return cfg, nil
}
