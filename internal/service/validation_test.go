package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func validCandidate() map[string]any {
	return map[string]any{
		"title":               "Kinematics review",
		"grade":               12,
		"modules":             "Mechanics",
		"number_of_exercises": 2,
		"total_time_minutes":  30,
		"number_of_retries":   1,
		"exercises": []any{
			map[string]any{
				"question":        "What is the SI unit of force?",
				"options":         []any{"Newton", "Joule", "Watt"},
				"correct_options": "A",
				"correct_answer":  "Newton",
			},
			map[string]any{
				"question":        "What is the acceleration of gravity on Earth?",
				"options":         []any{"9.8 m/s^2", "1.6 m/s^2"},
				"correct_options": "A",
				"correct_answer":  "9.8 m/s^2",
			},
		},
	}
}

func TestValidateActivityConfigAcceptsValidCandidate(t *testing.T) {
	result := ValidateActivityConfig(validCandidate())

	require.True(t, result.IsValid())
	require.Empty(t, result.Errors)
}

func TestValidateActivityConfigRequiredFields(t *testing.T) {
	cases := []struct {
		field   string
		message string
	}{
		{"title", "activity title is required"},
		{"grade", "school grade is required"},
		{"modules", "at least one thematic module must be selected"},
		{"number_of_exercises", "number of exercises is required"},
		{"total_time_minutes", "total activity time is required"},
		{"number_of_retries", "number of retries is required"},
		{"exercises", "at least one exercise must be added to the activity"},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			candidate := validCandidate()
			delete(candidate, tc.field)

			result := ValidateActivityConfig(candidate)

			require.False(t, result.IsValid())
			require.Equal(t, []string{tc.message}, result.Errors[tc.field])
			require.Len(t, result.Errors, 1)
		})
	}
}

func TestValidateActivityConfigGradeRange(t *testing.T) {
	for _, grade := range []int{9, 13, 1, -10} {
		candidate := validCandidate()
		candidate["grade"] = grade

		result := ValidateActivityConfig(candidate)

		require.Equal(t, []string{"school grade must be 10, 11 or 12"}, result.Errors["grade"])
	}

	for _, grade := range []int{10, 11, 12} {
		candidate := validCandidate()
		candidate["grade"] = grade

		result := ValidateActivityConfig(candidate)

		require.NotContains(t, result.Errors, "grade")
	}
}

func TestValidateActivityConfigTitleLength(t *testing.T) {
	candidate := validCandidate()
	candidate["title"] = strings.Repeat("a", 201)

	result := ValidateActivityConfig(candidate)

	require.Equal(t, []string{"activity title must not exceed 200 characters"}, result.Errors["title"])
}

func TestValidateActivityConfigNumericRules(t *testing.T) {
	candidate := validCandidate()
	candidate["number_of_exercises"] = 0
	candidate["total_time_minutes"] = 12.5
	candidate["number_of_retries"] = -1

	result := ValidateActivityConfig(candidate)

	require.Equal(t, []string{"number of exercises must be greater than 0"}, result.Errors["number_of_exercises"])
	require.Equal(t, []string{"total activity time must be a whole number of minutes"}, result.Errors["total_time_minutes"])
	require.Equal(t, []string{"number of retries must not be negative"}, result.Errors["number_of_retries"])
}

func TestValidateActivityConfigRetriesZeroIsValid(t *testing.T) {
	candidate := validCandidate()
	candidate["number_of_retries"] = 0

	result := ValidateActivityConfig(candidate)

	require.NotContains(t, result.Errors, "number_of_retries")
}

func TestValidateActivityConfigOptionalFields(t *testing.T) {
	candidate := validCandidate()
	candidate["relative_tolerance_pct"] = 120
	candidate["absolute_tolerance"] = -0.5
	candidate["show_answers_after_submission"] = "yes"
	candidate["scoring_policy"] = "exponential"
	candidate["approval_threshold"] = 1.5

	result := ValidateActivityConfig(candidate)

	require.Equal(t, []string{"relative tolerance must be between 0 and 100"}, result.Errors["relative_tolerance_pct"])
	require.Equal(t, []string{"absolute tolerance must not be negative"}, result.Errors["absolute_tolerance"])
	require.Equal(t, []string{"show answers after submission must be a boolean value"}, result.Errors["show_answers_after_submission"])
	require.Equal(t, []string{`scoring policy must be "linear" or "non-linear"`}, result.Errors["scoring_policy"])
	require.Equal(t, []string{"approval threshold must be between 0 and 1 (for example 0.5 for 50%)"}, result.Errors["approval_threshold"])
}

func TestValidateActivityConfigOptionalFieldsValid(t *testing.T) {
	candidate := validCandidate()
	candidate["relative_tolerance_pct"] = 5.0
	candidate["absolute_tolerance"] = 0.01
	candidate["show_answers_after_submission"] = true
	candidate["scoring_policy"] = "non-linear"
	candidate["approval_threshold"] = 0.5

	result := ValidateActivityConfig(candidate)

	require.True(t, result.IsValid())
}

func TestValidateActivityConfigEmptyExercises(t *testing.T) {
	candidate := validCandidate()
	candidate["exercises"] = []any{}

	result := ValidateActivityConfig(candidate)

	require.Equal(t, []string{"at least one exercise must be added to the activity"}, result.Errors["exercises"])
}

func TestValidateActivityConfigExerciseMessagesCarryPosition(t *testing.T) {
	candidate := validCandidate()
	candidate["exercises"] = []any{
		map[string]any{
			"question":        "Valid question?",
			"options":         []any{"A", "B"},
			"correct_options": "A",
			"correct_answer":  "A",
		},
		map[string]any{
			"question":        "   ",
			"options":         []any{},
			"correct_options": "",
			"correct_answer":  "A",
		},
	}

	result := ValidateActivityConfig(candidate)

	require.Equal(t, []string{
		"exercise 2 must include a question",
		"exercise 2 must include at least one answer option",
		"exercise 2 must define correct_options",
	}, result.Errors["exercises"])
}

func TestValidateActivityConfigExerciseOptionTypes(t *testing.T) {
	candidate := validCandidate()
	candidate["exercises"] = []any{
		map[string]any{
			"question":        "Pick one",
			"options":         []any{"A", 2},
			"correct_options": "A",
			"correct_answer":  "A",
		},
		"not an exercise",
	}

	result := ValidateActivityConfig(candidate)

	require.Equal(t, []string{
		"exercise 1 answer options must be text",
		"exercise 2 is invalid",
	}, result.Errors["exercises"])
}

func TestValidateActivityConfigReportsAllFieldsInOnePass(t *testing.T) {
	result := ValidateActivityConfig(map[string]any{})

	require.False(t, result.IsValid())
	for _, field := range []string{
		"title", "grade", "modules", "number_of_exercises",
		"total_time_minutes", "number_of_retries", "exercises",
	} {
		require.Contains(t, result.Errors, field)
	}
}

func TestValidateActivityConfigRejectsNumericStrings(t *testing.T) {
	candidate := validCandidate()
	candidate["grade"] = "12"

	result := ValidateActivityConfig(candidate)

	require.Equal(t, []string{"school grade is required"}, result.Errors["grade"])
}
