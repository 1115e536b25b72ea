package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrnewton/activity-api/internal/models"
)

// InstanceRepository defines data operations for deployment instances.
type InstanceRepository interface {
	Create(ctx context.Context, instance *models.DeploymentInstance) error
	GetByID(ctx context.Context, id string) (models.DeploymentInstance, error)
	ListByActivity(ctx context.Context, activityID string) ([]models.DeploymentInstance, error)
}

type instanceRepository struct {
	db *gorm.DB
}

// NewInstanceRepository instantiates the repository.
func NewInstanceRepository(db *gorm.DB) InstanceRepository {
	return &instanceRepository{db: db}
}

func (r *instanceRepository) Create(ctx context.Context, instance *models.DeploymentInstance) error {
	return r.db.WithContext(ctx).Create(instance).Error
}

func (r *instanceRepository) GetByID(ctx context.Context, id string) (models.DeploymentInstance, error) {
	var instance models.DeploymentInstance
	if err := r.db.WithContext(ctx).First(&instance, "instance_id = ?", id).Error; err != nil {
		return models.DeploymentInstance{}, err
	}

	return instance, nil
}

func (r *instanceRepository) ListByActivity(ctx context.Context, activityID string) ([]models.DeploymentInstance, error) {
	var instances []models.DeploymentInstance
	if err := r.db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Order("created_at DESC").
		Find(&instances).Error; err != nil {
		return nil, err
	}

	return instances, nil
}
