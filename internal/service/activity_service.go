package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mrnewton/activity-api/internal/config"
	"github.com/mrnewton/activity-api/internal/models"
	"github.com/mrnewton/activity-api/internal/repository"
)

const currentSchemaCacheKey = "activity:schema:current"

// Deployment describes a freshly created deployment instance.
type Deployment struct {
	InstanceID       string
	ActivityID       string
	DeployURL        string
	ExpiresInSeconds int64
	ExpiresAt        time.Time
}

// ActivityService owns the activity, instance and submission lifecycle
// rules. Entity construction happens exclusively here (and in the
// builder); repositories only move entities in and out of storage.
type ActivityService interface {
	CreateFromJSON(ctx context.Context, payload map[string]any) (models.Activity, error)
	GetActivity(ctx context.Context, activityID string) (models.Activity, error)
	GetAllActivities(ctx context.Context) ([]models.Activity, error)
	CreateInstance(ctx context.Context, activityID string, sessionParams map[string]any) (Deployment, error)
	GetInstance(ctx context.Context, instanceID string) (models.DeploymentInstance, error)
	GetInstancesForActivity(ctx context.Context, activityID string) ([]models.DeploymentInstance, error)
	RecordSubmission(ctx context.Context, instanceID, studentID string, attempts []models.AttemptResult) (models.Submission, error)
	GetSubmissionsForInstance(ctx context.Context, instanceID string) ([]models.Submission, error)
	GetSubmissionByInstanceAndStudent(ctx context.Context, instanceID, studentID string) (models.Submission, error)
	SaveConfigParamsSchema(ctx context.Context, params []models.ConfigParamDefinition) (models.ConfigParamsSchema, error)
	GetCurrentConfigParamsSchema(ctx context.Context) (models.ConfigParamsSchema, error)
	GetAllConfigParamsSchemas(ctx context.Context) ([]models.ConfigParamsSchema, error)
}

type activityService struct {
	activities    repository.ActivityRepository
	instances     repository.InstanceRepository
	submissions   repository.SubmissionRepository
	schemas       repository.ParamSchemaRepository
	cache         *redis.Client
	cacheTTL      time.Duration
	deployBaseURL string
	instanceTTL   time.Duration
	logger        zerolog.Logger
	now           func() time.Time
	newID         func() string
	newInstanceID func() string
}

// NewActivityService constructs an ActivityService instance. A nil
// cache client disables current-schema caching.
func NewActivityService(
	activities repository.ActivityRepository,
	instances repository.InstanceRepository,
	submissions repository.SubmissionRepository,
	schemas repository.ParamSchemaRepository,
	cache *redis.Client,
	cfg config.Config,
	logger zerolog.Logger,
) ActivityService {
	return &activityService{
		activities:    activities,
		instances:     instances,
		submissions:   submissions,
		schemas:       schemas,
		cache:         cache,
		cacheTTL:      cfg.SchemaCacheTTL,
		deployBaseURL: cfg.DeployBaseURL,
		instanceTTL:   cfg.InstanceTTL,
		logger:        logger.With().Str("component", "activity_service").Logger(),
		now:           time.Now,
		newID:         uuid.NewString,
		newInstanceID: generateInstanceID,
	}
}

// CreateFromJSON builds, validates and persists a new activity. A
// ValidationError from the builder propagates unchanged so callers can
// render the field-level messages.
func (s *activityService) CreateFromJSON(ctx context.Context, payload map[string]any) (models.Activity, error) {
	builder := NewActivityBuilder().WithJSON(payload)
	builder.newID = s.newID
	builder.now = s.now

	activity, err := builder.Build()
	if err != nil {
		return models.Activity{}, err
	}

	if err := s.activities.Create(ctx, &activity); err != nil {
		return models.Activity{}, err
	}

	s.logger.Info().Str("activity_id", activity.ID).Msg("activity created")

	return activity, nil
}

func (s *activityService) GetActivity(ctx context.Context, activityID string) (models.Activity, error) {
	activity, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Activity{}, &NotFoundError{Entity: "activity", ID: activityID}
		}
		return models.Activity{}, err
	}

	return activity, nil
}

func (s *activityService) GetAllActivities(ctx context.Context) ([]models.Activity, error) {
	return s.activities.List(ctx)
}

// CreateInstance deploys an existing activity: it verifies the activity
// reference, stamps the fixed expiration horizon and derives the deploy
// URL from the generated instance identity. The reference is not
// re-checked after creation.
func (s *activityService) CreateInstance(ctx context.Context, activityID string, sessionParams map[string]any) (Deployment, error) {
	if _, err := s.activities.GetByID(ctx, activityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Deployment{}, &NotFoundError{Entity: "activity", ID: activityID}
		}
		return Deployment{}, err
	}

	now := s.now().UTC()
	instance := models.DeploymentInstance{
		InstanceID: s.newInstanceID(),
		ActivityID: activityID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.instanceTTL),
	}

	if sessionParams != nil {
		params := make(datatypes.JSONMap, len(sessionParams))
		for key, value := range sessionParams {
			params[key] = value
		}
		instance.SessionParams = params
	}

	if err := s.instances.Create(ctx, &instance); err != nil {
		return Deployment{}, err
	}

	s.logger.Info().
		Str("instance_id", instance.InstanceID).
		Str("activity_id", activityID).
		Time("expires_at", instance.ExpiresAt).
		Msg("deployment instance created")

	return Deployment{
		InstanceID:       instance.InstanceID,
		ActivityID:       activityID,
		DeployURL:        fmt.Sprintf("%s/instances/%s", s.deployBaseURL, instance.InstanceID),
		ExpiresInSeconds: remainingSeconds(instance.ExpiresAt, now),
		ExpiresAt:        instance.ExpiresAt,
	}, nil
}

func (s *activityService) GetInstance(ctx context.Context, instanceID string) (models.DeploymentInstance, error) {
	instance, err := s.instances.GetByID(ctx, instanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DeploymentInstance{}, &NotFoundError{Entity: "deployment instance", ID: instanceID}
		}
		return models.DeploymentInstance{}, err
	}

	return instance, nil
}

func (s *activityService) GetInstancesForActivity(ctx context.Context, activityID string) ([]models.DeploymentInstance, error) {
	return s.instances.ListByActivity(ctx, activityID)
}

// RecordSubmission stores the caller-scored attempts verbatim. The
// attempt count is always derived from the attempt list.
func (s *activityService) RecordSubmission(ctx context.Context, instanceID, studentID string, attempts []models.AttemptResult) (models.Submission, error) {
	if _, err := s.instances.GetByID(ctx, instanceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Submission{}, &NotFoundError{Entity: "deployment instance", ID: instanceID}
		}
		return models.Submission{}, err
	}

	submission := models.Submission{
		SubmissionID: s.newID(),
		InstanceID:   instanceID,
		StudentID:    studentID,
		CreatedAt:    s.now().UTC(),
	}
	if err := submission.SetAttempts(attempts); err != nil {
		return models.Submission{}, err
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		return models.Submission{}, err
	}

	s.logger.Info().
		Str("submission_id", submission.SubmissionID).
		Str("student_id", studentID).
		Int("attempts", submission.NumberOfAttempts).
		Msg("submission recorded")

	return submission, nil
}

func (s *activityService) GetSubmissionsForInstance(ctx context.Context, instanceID string) ([]models.Submission, error) {
	return s.submissions.ListByInstance(ctx, instanceID)
}

func (s *activityService) GetSubmissionByInstanceAndStudent(ctx context.Context, instanceID, studentID string) (models.Submission, error) {
	submissions, err := s.submissions.ListByInstance(ctx, instanceID)
	if err != nil {
		return models.Submission{}, err
	}

	for _, submission := range submissions {
		if submission.StudentID == studentID {
			return submission, nil
		}
	}

	return models.Submission{}, &NotFoundError{Entity: "submission", ID: instanceID + "/" + studentID}
}

// SaveConfigParamsSchema stores a new schema version as the current one
// and drops the cached copy.
func (s *activityService) SaveConfigParamsSchema(ctx context.Context, params []models.ConfigParamDefinition) (models.ConfigParamsSchema, error) {
	now := s.now().UTC()
	schema := models.ConfigParamsSchema{
		ID:        s.newID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := schema.SetParams(params); err != nil {
		return models.ConfigParamsSchema{}, err
	}

	if err := s.schemas.Save(ctx, &schema); err != nil {
		return models.ConfigParamsSchema{}, err
	}

	s.invalidateSchemaCache(ctx)
	s.logger.Info().Str("schema_id", schema.ID).Msg("parameter schema saved")

	return schema, nil
}

func (s *activityService) GetCurrentConfigParamsSchema(ctx context.Context) (models.ConfigParamsSchema, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, currentSchemaCacheKey).Result(); err == nil {
			var schema models.ConfigParamsSchema
			if unmarshalErr := json.Unmarshal([]byte(cached), &schema); unmarshalErr == nil {
				s.logger.Debug().Str("schema_id", schema.ID).Msg("schema cache hit")
				return schema, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read schema cache")
		}
	}

	schema, err := s.schemas.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ConfigParamsSchema{}, &NotFoundError{Entity: "parameter schema", ID: "current"}
		}
		return models.ConfigParamsSchema{}, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(schema); err == nil {
			if err := s.cache.Set(ctx, currentSchemaCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store schema cache")
			}
		}
	}

	return schema, nil
}

func (s *activityService) GetAllConfigParamsSchemas(ctx context.Context) ([]models.ConfigParamsSchema, error) {
	return s.schemas.List(ctx)
}

func (s *activityService) invalidateSchemaCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, currentSchemaCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate schema cache")
	}
}

func generateInstanceID() string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "inst_" + token[:9]
}

// remainingSeconds computes the seconds left until expiry, floored and
// clamped so it is never negative.
func remainingSeconds(expiresAt, now time.Time) int64 {
	remaining := int64(math.Floor(expiresAt.Sub(now).Seconds()))
	if remaining < 0 {
		return 0
	}
	return remaining
}
