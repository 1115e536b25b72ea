package dto

import (
	"time"

	"github.com/mrnewton/activity-api/internal/models"
	"github.com/mrnewton/activity-api/internal/service"
)

// CreateInstanceRequest describes the payload for deploying an activity.
type CreateInstanceRequest struct {
	ActivityID    string         `json:"activity_id" validate:"required"`
	SessionParams map[string]any `json:"session_params"`
}

// DeploymentResponse is returned after a successful deployment.
type DeploymentResponse struct {
	InstanceID       string    `json:"instance_id"`
	ActivityID       string    `json:"activity_id"`
	DeployURL        string    `json:"deploy_url"`
	ExpiresInSeconds int64     `json:"expires_in_seconds"`
	ExpiresAt        time.Time `json:"expires_at"`
}

// NewDeploymentResponse converts a service deployment into a DTO.
func NewDeploymentResponse(deployment service.Deployment) DeploymentResponse {
	return DeploymentResponse{
		InstanceID:       deployment.InstanceID,
		ActivityID:       deployment.ActivityID,
		DeployURL:        deployment.DeployURL,
		ExpiresInSeconds: deployment.ExpiresInSeconds,
		ExpiresAt:        deployment.ExpiresAt,
	}
}

// InstanceResponse is the serialized representation of a deployment instance.
type InstanceResponse struct {
	InstanceID    string         `json:"instance_id"`
	ActivityID    string         `json:"activity_id"`
	CreatedAt     time.Time      `json:"created_at"`
	ExpiresAt     time.Time      `json:"expires_at"`
	SessionParams map[string]any `json:"session_params,omitempty"`
}

// NewInstanceResponse converts a model into a DTO.
func NewInstanceResponse(instance models.DeploymentInstance) InstanceResponse {
	return InstanceResponse{
		InstanceID:    instance.InstanceID,
		ActivityID:    instance.ActivityID,
		CreatedAt:     instance.CreatedAt,
		ExpiresAt:     instance.ExpiresAt,
		SessionParams: instance.SessionParams,
	}
}

// InstanceSummary is the condensed listing entry for an instance.
type InstanceSummary struct {
	InstanceID string    `json:"instance_id"`
	ActivityID string    `json:"activity_id"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// InstanceListResponse wraps instance summaries with their count.
type InstanceListResponse struct {
	Count     int               `json:"count"`
	Instances []InstanceSummary `json:"instances"`
}

// NewInstanceListResponse converts a slice of models into the listing DTO.
func NewInstanceListResponse(instances []models.DeploymentInstance) InstanceListResponse {
	summaries := make([]InstanceSummary, 0, len(instances))
	for _, instance := range instances {
		summaries = append(summaries, InstanceSummary{
			InstanceID: instance.InstanceID,
			ActivityID: instance.ActivityID,
			CreatedAt:  instance.CreatedAt,
			ExpiresAt:  instance.ExpiresAt,
		})
	}

	return InstanceListResponse{
		Count:     len(summaries),
		Instances: summaries,
	}
}
