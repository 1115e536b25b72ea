package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/mrnewton/activity-api/internal/models"
)

// SubmissionPayload groups the inputs for recording a submission
// through the facade.
type SubmissionPayload struct {
	InstanceID string
	StudentID  string
	Attempts   []models.AttemptResult
}

// InstanceRef identifies a created deployment instance and its URL.
type InstanceRef struct {
	InstanceID string
	URL        string
}

// ActivityFacade is the stable entry point for external consumers of
// the activity component. Every operation forwards to ActivityService
// with identical arguments; the facade holds no validation or business
// rules and must not grow conditional logic. The single carve-out is
// GetActivity, which converts a NotFound failure into a nil result.
type ActivityFacade struct {
	service ActivityService
	logger  zerolog.Logger
}

// NewActivityFacade constructs the facade over the given service.
func NewActivityFacade(service ActivityService, logger zerolog.Logger) *ActivityFacade {
	return &ActivityFacade{
		service: service,
		logger:  logger.With().Str("component", "activity_facade").Logger(),
	}
}

// CreateActivity creates an activity from a JSON configuration.
func (f *ActivityFacade) CreateActivity(ctx context.Context, payload map[string]any) (models.Activity, error) {
	f.logger.Debug().Msg("creating activity")
	return f.service.CreateFromJSON(ctx, payload)
}

// GetActivity returns the activity, or nil when it does not exist. All
// other failures propagate unchanged.
func (f *ActivityFacade) GetActivity(ctx context.Context, activityID string) (*models.Activity, error) {
	activity, err := f.service.GetActivity(ctx, activityID)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}

	return &activity, nil
}

// CreateInstance deploys an activity and returns the instance reference.
func (f *ActivityFacade) CreateInstance(ctx context.Context, activityID string, sessionParams map[string]any) (InstanceRef, error) {
	f.logger.Debug().Str("activity_id", activityID).Msg("creating instance")

	deployment, err := f.service.CreateInstance(ctx, activityID, sessionParams)
	if err != nil {
		return InstanceRef{}, err
	}

	return InstanceRef{
		InstanceID: deployment.InstanceID,
		URL:        deployment.DeployURL,
	}, nil
}

// RecordSubmission stores a student submission.
func (f *ActivityFacade) RecordSubmission(ctx context.Context, payload SubmissionPayload) error {
	f.logger.Debug().Str("instance_id", payload.InstanceID).Msg("recording submission")

	_, err := f.service.RecordSubmission(ctx, payload.InstanceID, payload.StudentID, payload.Attempts)
	return err
}

// GetSubmissionsByActivity flattens the submissions of every instance
// deployed for the activity, in instance listing order.
func (f *ActivityFacade) GetSubmissionsByActivity(ctx context.Context, activityID string) ([]models.Submission, error) {
	instances, err := f.service.GetInstancesForActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}

	all := make([]models.Submission, 0)
	for _, instance := range instances {
		submissions, err := f.service.GetSubmissionsForInstance(ctx, instance.InstanceID)
		if err != nil {
			return nil, err
		}
		all = append(all, submissions...)
	}

	return all, nil
}
