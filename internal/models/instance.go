package models

import (
	"time"

	"gorm.io/datatypes"
)

// DeploymentInstance is a time-bounded deployment of an Activity to
// students. The activity reference is checked at creation time only;
// ExpiresAt is informational and not enforced on later reads.
type DeploymentInstance struct {
	InstanceID    string            `gorm:"primaryKey;size:64" json:"instance_id"`
	ActivityID    string            `gorm:"size:36;not null;index" json:"activity_id"`
	CreatedAt     time.Time         `json:"created_at"`
	ExpiresAt     time.Time         `gorm:"not null" json:"expires_at"`
	SessionParams datatypes.JSONMap `gorm:"type:json" json:"session_params,omitempty"`
}
