package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBuilderMergePrecedence(t *testing.T) {
	builder := NewActivityBuilder().
		WithDefaults(map[string]any{"a": 1, "b": 2}).
		WithJSON(map[string]any{"b": 3, "c": 4}).
		WithOverrides(map[string]any{"c": 5})

	merged := builder.merged()

	require.Equal(t, map[string]any{"a": 1, "b": 3, "c": 5}, merged)
}

func TestBuilderLayersReplaceWholesale(t *testing.T) {
	builder := NewActivityBuilder().
		WithDefaults(map[string]any{"a": 1, "b": 2}).
		WithDefaults(map[string]any{"c": 3})

	require.Equal(t, map[string]any{"c": 3}, builder.merged())
}

func TestBuilderBuildProducesConfiguredActivity(t *testing.T) {
	builder := NewActivityBuilder().
		WithDefaults(map[string]any{"scoring_policy": "linear"}).
		WithJSON(validCandidate()).
		WithOverrides(map[string]any{"scoring_policy": "non-linear"})

	activity, err := builder.Build()
	require.NoError(t, err)
	require.NotEmpty(t, activity.ID)
	require.False(t, activity.CreatedAt.IsZero())

	cfg, err := activity.Config()
	require.NoError(t, err)
	require.Equal(t, "Kinematics review", cfg.Title)
	require.Equal(t, 12, cfg.Grade)
	require.Len(t, cfg.Exercises, 2)
	require.NotNil(t, cfg.ScoringPolicy)
	require.Equal(t, "non-linear", *cfg.ScoringPolicy)
}

func TestBuilderBuildAllocatesUniqueIdentities(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		activity, err := NewActivityBuilder().WithJSON(validCandidate()).Build()
		require.NoError(t, err)
		require.False(t, seen[activity.ID], "identity reused: %s", activity.ID)
		seen[activity.ID] = true
	}
}

func TestBuilderBuildFailsWithFullValidationResult(t *testing.T) {
	candidate := validCandidate()
	candidate["grade"] = 9
	delete(candidate, "title")

	_, err := NewActivityBuilder().WithJSON(candidate).Build()
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.Equal(t, []string{"school grade must be 10, 11 or 12"}, validationErr.Result.Errors["grade"])
	require.Equal(t, []string{"activity title is required"}, validationErr.Result.Errors["title"])
}

func TestBuilderBuildSafeReturnsValidationResult(t *testing.T) {
	candidate := validCandidate()
	candidate["grade"] = 9

	activity, result, err := NewActivityBuilder().WithJSON(candidate).BuildSafe()
	require.NoError(t, err)
	require.Empty(t, activity.ID)
	require.NotNil(t, result)
	require.Equal(t, []string{"school grade must be 10, 11 or 12"}, result.Errors["grade"])
}

func TestBuilderBuildSafeSuccess(t *testing.T) {
	activity, result, err := NewActivityBuilder().WithJSON(validCandidate()).BuildSafe()
	require.NoError(t, err)
	require.Nil(t, result)
	require.NotEmpty(t, activity.ID)
}

func TestBuilderValidateDoesNotBuild(t *testing.T) {
	builder := NewActivityBuilder().WithJSON(validCandidate())
	builder.now = func() time.Time { t.Fatal("validate must not allocate a timestamp"); return time.Time{} }

	result := builder.Validate()
	require.True(t, result.IsValid())
}

func TestBuilderInputMapsAreCopied(t *testing.T) {
	payload := validCandidate()
	builder := NewActivityBuilder().WithJSON(payload)

	payload["grade"] = 9

	require.True(t, builder.Validate().IsValid())
}
