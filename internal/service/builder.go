package service

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mrnewton/activity-api/internal/models"
)

// ActivityBuilder is the only construction path for activities. It
// accumulates up to three configuration layers and merges them with
// priority overrides > json-supplied > defaults before validating.
type ActivityBuilder struct {
	payload   map[string]any
	defaults  map[string]any
	overrides map[string]any
	newID     func() string
	now       func() time.Time
}

// NewActivityBuilder returns an empty builder.
func NewActivityBuilder() *ActivityBuilder {
	return &ActivityBuilder{
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// WithJSON sets the caller-supplied configuration layer, replacing any
// previous one wholesale.
func (b *ActivityBuilder) WithJSON(payload map[string]any) *ActivityBuilder {
	b.payload = copyLayer(payload)
	return b
}

// WithDefaults sets the lowest-priority layer, replacing any previous one.
func (b *ActivityBuilder) WithDefaults(defaults map[string]any) *ActivityBuilder {
	b.defaults = copyLayer(defaults)
	return b
}

// WithOverrides sets the highest-priority layer, replacing any previous one.
func (b *ActivityBuilder) WithOverrides(overrides map[string]any) *ActivityBuilder {
	b.overrides = copyLayer(overrides)
	return b
}

// Validate merges the configured layers and runs the merged candidate
// through the activity validators without building anything.
func (b *ActivityBuilder) Validate() ValidationResult {
	return ValidateActivityConfig(b.merged())
}

// Build validates the merged configuration and, on success, returns a
// new Activity with a fresh identity and timestamp. An invalid
// configuration yields a ValidationError carrying the full result.
func (b *ActivityBuilder) Build() (models.Activity, error) {
	merged := b.merged()

	result := ValidateActivityConfig(merged)
	if !result.IsValid() {
		return models.Activity{}, &ValidationError{Result: result}
	}

	cfg, err := decodeConfig(merged)
	if err != nil {
		return models.Activity{}, err
	}

	activity := models.Activity{
		ID:        b.newID(),
		CreatedAt: b.now().UTC(),
	}
	if err := activity.SetConfig(cfg); err != nil {
		return models.Activity{}, err
	}

	return activity, nil
}

// BuildSafe is the non-failing variant of Build for validation
// problems: an invalid configuration returns the ValidationResult
// instead of an error. Any other failure is returned unchanged.
func (b *ActivityBuilder) BuildSafe() (models.Activity, *ValidationResult, error) {
	activity, err := b.Build()
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return models.Activity{}, &validationErr.Result, nil
		}
		return models.Activity{}, nil, err
	}

	return activity, nil, nil
}

// merged overlays the layers key-wise; later layers win on conflicting
// keys, non-overlapping keys pass through.
func (b *ActivityBuilder) merged() map[string]any {
	merged := make(map[string]any, len(b.defaults)+len(b.payload)+len(b.overrides))
	for _, layer := range []map[string]any{b.defaults, b.payload, b.overrides} {
		for key, value := range layer {
			merged[key] = value
		}
	}
	return merged
}

func decodeConfig(merged map[string]any) (models.ActivityConfig, error) {
	data, err := json.Marshal(merged)
	if err != nil {
		return models.ActivityConfig{}, err
	}

	var cfg models.ActivityConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return models.ActivityConfig{}, err
	}

	return cfg, nil
}

func copyLayer(layer map[string]any) map[string]any {
	if layer == nil {
		return nil
	}
	copied := make(map[string]any, len(layer))
	for key, value := range layer {
		copied[key] = value
	}
	return copied
}
