package dto

import (
	"time"

	"github.com/mrnewton/activity-api/internal/models"
)

// ParamDefinitionPayload describes one configuration parameter in a
// schema update request.
type ParamDefinitionPayload struct {
	Name        string   `json:"name" validate:"required"`
	Type        string   `json:"type" validate:"required"`
	Description string   `json:"description"`
	Items       string   `json:"items"`
	Enum        []string `json:"enum"`
}

// UpdateParamsRequest describes the payload for replacing the current
// parameter schema.
type UpdateParamsRequest struct {
	Params []ParamDefinitionPayload `json:"params" validate:"required,min=1,dive"`
}

// ParamModels converts the request parameters into domain values.
func (r UpdateParamsRequest) ParamModels() []models.ConfigParamDefinition {
	params := make([]models.ConfigParamDefinition, 0, len(r.Params))
	for _, param := range r.Params {
		params = append(params, models.ConfigParamDefinition{
			Name:        param.Name,
			Type:        param.Type,
			Description: param.Description,
			Items:       param.Items,
			Enum:        param.Enum,
		})
	}

	return params
}

// ParamsResponse carries the parameter descriptors of the current schema.
type ParamsResponse struct {
	Params []models.ConfigParamDefinition `json:"params"`
}

// SchemaSavedResponse is returned after a schema update.
type SchemaSavedResponse struct {
	SchemaID  string                         `json:"schema_id"`
	UpdatedAt time.Time                      `json:"updated_at"`
	Params    []models.ConfigParamDefinition `json:"params"`
}

// NewSchemaSavedResponse converts a model into the update response DTO.
func NewSchemaSavedResponse(schema models.ConfigParamsSchema) SchemaSavedResponse {
	return SchemaSavedResponse{
		SchemaID:  schema.ID,
		UpdatedAt: schema.UpdatedAt,
		Params:    schema.ParamList(),
	}
}
