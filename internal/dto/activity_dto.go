package dto

import (
	"time"

	"github.com/mrnewton/activity-api/internal/models"
)

// ActivityResponse is the serialized activity with its configuration
// fields inlined, as the API exposes them.
type ActivityResponse struct {
	ActivityID string    `json:"activity_id"`
	CreatedAt  time.Time `json:"created_at"`
	models.ActivityConfig
}

// NewActivityResponse converts a model into a DTO.
func NewActivityResponse(activity models.Activity) (ActivityResponse, error) {
	cfg, err := activity.Config()
	if err != nil {
		return ActivityResponse{}, err
	}

	return ActivityResponse{
		ActivityID:     activity.ID,
		CreatedAt:      activity.CreatedAt,
		ActivityConfig: cfg,
	}, nil
}

// ActivitySummary is the condensed listing entry for an activity.
type ActivitySummary struct {
	ActivityID        string    `json:"activity_id"`
	CreatedAt         time.Time `json:"created_at"`
	Title             string    `json:"title"`
	Grade             int       `json:"grade"`
	NumberOfExercises int       `json:"number_of_exercises"`
}

// ActivityListResponse wraps activity summaries with their count.
type ActivityListResponse struct {
	Count      int               `json:"count"`
	Activities []ActivitySummary `json:"activities"`
}

// NewActivityListResponse converts a slice of models into the listing DTO.
func NewActivityListResponse(activities []models.Activity) (ActivityListResponse, error) {
	summaries := make([]ActivitySummary, 0, len(activities))
	for _, activity := range activities {
		cfg, err := activity.Config()
		if err != nil {
			return ActivityListResponse{}, err
		}

		summaries = append(summaries, ActivitySummary{
			ActivityID:        activity.ID,
			CreatedAt:         activity.CreatedAt,
			Title:             cfg.Title,
			Grade:             cfg.Grade,
			NumberOfExercises: cfg.NumberOfExercises,
		})
	}

	return ActivityListResponse{
		Count:      len(summaries),
		Activities: summaries,
	}, nil
}
