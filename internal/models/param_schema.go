package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// ConfigParamDefinition describes a single activity configuration parameter.
type ConfigParamDefinition struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Items       string   `json:"items,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

// ConfigParamsSchema is one version of the advertised activity parameter
// shape. At most one row carries IsCurrent at a time; saving a new schema
// demotes all previous versions inside a single transaction.
type ConfigParamsSchema struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Params    datatypes.JSON `gorm:"type:json;not null" json:"params"`
	IsCurrent bool           `gorm:"not null;index" json:"is_current"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// SetParams serializes the parameter descriptors into the JSON column.
func (s *ConfigParamsSchema) SetParams(params []ConfigParamDefinition) error {
	data, err := json.Marshal(params)
	if err != nil {
		return err
	}
	s.Params = datatypes.JSON(data)
	return nil
}

// ParamList deserializes the stored parameter descriptors.
func (s ConfigParamsSchema) ParamList() []ConfigParamDefinition {
	if len(s.Params) == 0 {
		return nil
	}

	var params []ConfigParamDefinition
	if err := json.Unmarshal(s.Params, &params); err != nil {
		return nil
	}

	return params
}
