package dto

import (
	"time"

	"github.com/mrnewton/activity-api/internal/models"
)

// AnswerPayload is a student's answer to a single question.
type AnswerPayload struct {
	SelectedOption string `json:"selected_option"`
	Rationale      string `json:"rationale"`
}

// AttemptPayload is one caller-scored attempt supplied whole by the
// frontend. Result is stored as given, without re-scoring.
type AttemptPayload struct {
	AttemptIndex int                      `json:"attempt_index"`
	Answers      map[string]AnswerPayload `json:"answers" validate:"required"`
	Result       float64                  `json:"result"`
	SubmittedAt  time.Time                `json:"submitted_at"`
}

// SubmissionCreateRequest describes the payload for recording a submission.
type SubmissionCreateRequest struct {
	InstanceID string           `json:"instance_id" validate:"required"`
	StudentID  string           `json:"student_id" validate:"required"`
	Attempts   []AttemptPayload `json:"attempts" validate:"required,min=1,dive"`
}

// AttemptModels converts the request attempts into domain values.
func (r SubmissionCreateRequest) AttemptModels() []models.AttemptResult {
	attempts := make([]models.AttemptResult, 0, len(r.Attempts))
	for _, attempt := range r.Attempts {
		answers := make(map[string]models.Answer, len(attempt.Answers))
		for question, answer := range attempt.Answers {
			answers[question] = models.Answer{
				SelectedOption: answer.SelectedOption,
				Rationale:      answer.Rationale,
			}
		}

		attempts = append(attempts, models.AttemptResult{
			AttemptIndex: attempt.AttemptIndex,
			Answers:      answers,
			Result:       attempt.Result,
			SubmittedAt:  attempt.SubmittedAt,
		})
	}

	return attempts
}

// SubmissionResponse is the serialized representation of a submission.
type SubmissionResponse struct {
	SubmissionID     string                 `json:"submission_id"`
	InstanceID       string                 `json:"instance_id"`
	StudentID        string                 `json:"student_id"`
	NumberOfAttempts int                    `json:"number_of_attempts"`
	Attempts         []models.AttemptResult `json:"attempts"`
	CreatedAt        time.Time              `json:"created_at"`
}

// NewSubmissionResponse converts a model into a DTO.
func NewSubmissionResponse(submission models.Submission) SubmissionResponse {
	return SubmissionResponse{
		SubmissionID:     submission.SubmissionID,
		InstanceID:       submission.InstanceID,
		StudentID:        submission.StudentID,
		NumberOfAttempts: submission.NumberOfAttempts,
		Attempts:         submission.AttemptList(),
		CreatedAt:        submission.CreatedAt,
	}
}

// SubmissionListResponse wraps submissions with their count.
type SubmissionListResponse struct {
	Count       int                  `json:"count"`
	Submissions []SubmissionResponse `json:"submissions"`
}

// NewSubmissionListResponse converts a slice of models into the listing DTO.
func NewSubmissionListResponse(submissions []models.Submission) SubmissionListResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewSubmissionResponse(submission))
	}

	return SubmissionListResponse{
		Count:       len(responses),
		Submissions: responses,
	}
}
