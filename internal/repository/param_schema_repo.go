package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrnewton/activity-api/internal/models"
)

// ParamSchemaRepository defines data operations for configuration
// parameter schemas. Save maintains the single-current invariant:
// exactly one schema row is marked current after every save.
type ParamSchemaRepository interface {
	Save(ctx context.Context, schema *models.ConfigParamsSchema) error
	GetCurrent(ctx context.Context) (models.ConfigParamsSchema, error)
	GetByID(ctx context.Context, id string) (models.ConfigParamsSchema, error)
	List(ctx context.Context) ([]models.ConfigParamsSchema, error)
}

type paramSchemaRepository struct {
	db *gorm.DB
}

// NewParamSchemaRepository instantiates the repository.
func NewParamSchemaRepository(db *gorm.DB) ParamSchemaRepository {
	return &paramSchemaRepository{db: db}
}

// Save demotes every current schema and inserts the new one as current
// inside a single transaction.
func (r *paramSchemaRepository) Save(ctx context.Context, schema *models.ConfigParamsSchema) error {
	schema.IsCurrent = true

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ConfigParamsSchema{}).
			Where("is_current = ?", true).
			Update("is_current", false).Error; err != nil {
			return err
		}

		return tx.Create(schema).Error
	})
}

func (r *paramSchemaRepository) GetCurrent(ctx context.Context) (models.ConfigParamsSchema, error) {
	var schema models.ConfigParamsSchema
	if err := r.db.WithContext(ctx).First(&schema, "is_current = ?", true).Error; err != nil {
		return models.ConfigParamsSchema{}, err
	}

	return schema, nil
}

func (r *paramSchemaRepository) GetByID(ctx context.Context, id string) (models.ConfigParamsSchema, error) {
	var schema models.ConfigParamsSchema
	if err := r.db.WithContext(ctx).First(&schema, "id = ?", id).Error; err != nil {
		return models.ConfigParamsSchema{}, err
	}

	return schema, nil
}

func (r *paramSchemaRepository) List(ctx context.Context) ([]models.ConfigParamsSchema, error) {
	var schemas []models.ConfigParamsSchema
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&schemas).Error; err != nil {
		return nil, err
	}

	return schemas, nil
}
