package service

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// ValidationResult aggregates the outcome of validating a candidate
// activity configuration: every violated rule contributes one message
// under its field key.
type ValidationResult struct {
	Errors map[string][]string `json:"errors"`
}

// IsValid reports whether no field collected any error message.
func (r ValidationResult) IsValid() bool {
	for _, messages := range r.Errors {
		if len(messages) > 0 {
			return false
		}
	}
	return true
}

// ValidateActivityConfig checks a candidate configuration against every
// field rule independently. A failure in one field never suppresses the
// checks on another; the result carries all violations found in one pass.
func ValidateActivityConfig(candidate map[string]any) ValidationResult {
	errs := map[string][]string{}
	add := func(field, message string) {
		errs[field] = append(errs[field], message)
	}

	if title, ok := stringValue(candidate["title"]); !ok || strings.TrimSpace(title) == "" {
		add("title", "activity title is required")
	} else if utf8.RuneCountInString(title) > 200 {
		add("title", "activity title must not exceed 200 characters")
	}

	if grade, ok := numberValue(candidate["grade"]); !ok {
		add("grade", "school grade is required")
	} else if grade != 10 && grade != 11 && grade != 12 {
		add("grade", "school grade must be 10, 11 or 12")
	}

	if modules, ok := stringValue(candidate["modules"]); !ok || strings.TrimSpace(modules) == "" {
		add("modules", "at least one thematic module must be selected")
	}

	if count, ok := numberValue(candidate["number_of_exercises"]); !ok {
		add("number_of_exercises", "number of exercises is required")
	} else if count <= 0 {
		add("number_of_exercises", "number of exercises must be greater than 0")
	} else if !isWholeNumber(count) {
		add("number_of_exercises", "number of exercises must be a whole number")
	}

	if minutes, ok := numberValue(candidate["total_time_minutes"]); !ok {
		add("total_time_minutes", "total activity time is required")
	} else if minutes <= 0 {
		add("total_time_minutes", "total activity time must be greater than 0 minutes")
	} else if !isWholeNumber(minutes) {
		add("total_time_minutes", "total activity time must be a whole number of minutes")
	}

	// Zero is a valid retry count, so presence is checked explicitly.
	if raw, present := candidate["number_of_retries"]; !present || raw == nil {
		add("number_of_retries", "number of retries is required")
	} else if retries, ok := numberValue(raw); !ok {
		add("number_of_retries", "number of retries must be a numeric value")
	} else if retries < 0 {
		add("number_of_retries", "number of retries must not be negative")
	} else if !isWholeNumber(retries) {
		add("number_of_retries", "number of retries must be a whole number")
	}

	if raw, present := candidate["relative_tolerance_pct"]; present && raw != nil {
		if tolerance, ok := numberValue(raw); !ok {
			add("relative_tolerance_pct", "relative tolerance must be a numeric value")
		} else if tolerance < 0 || tolerance > 100 {
			add("relative_tolerance_pct", "relative tolerance must be between 0 and 100")
		}
	}

	if raw, present := candidate["absolute_tolerance"]; present && raw != nil {
		if tolerance, ok := numberValue(raw); !ok {
			add("absolute_tolerance", "absolute tolerance must be a numeric value")
		} else if tolerance < 0 {
			add("absolute_tolerance", "absolute tolerance must not be negative")
		}
	}

	if raw, present := candidate["show_answers_after_submission"]; present && raw != nil {
		if _, ok := raw.(bool); !ok {
			add("show_answers_after_submission", "show answers after submission must be a boolean value")
		}
	}

	if raw, present := candidate["scoring_policy"]; present && raw != nil {
		if policy, ok := stringValue(raw); !ok || strings.TrimSpace(policy) == "" {
			add("scoring_policy", "scoring policy must be a non-empty string")
		} else if policy != "linear" && policy != "non-linear" {
			add("scoring_policy", `scoring policy must be "linear" or "non-linear"`)
		}
	}

	if raw, present := candidate["approval_threshold"]; present && raw != nil {
		if threshold, ok := numberValue(raw); !ok {
			add("approval_threshold", "approval threshold must be a numeric value")
		} else if threshold < 0 || threshold > 1 {
			add("approval_threshold", "approval threshold must be between 0 and 1 (for example 0.5 for 50%)")
		}
	}

	if exercises, ok := candidate["exercises"].([]any); !ok || len(exercises) == 0 {
		add("exercises", "at least one exercise must be added to the activity")
	} else if messages := validateExercises(exercises); len(messages) > 0 {
		errs["exercises"] = messages
	}

	return ValidationResult{Errors: errs}
}

// validateExercises checks every exercise independently and tags each
// message with the exercise's 1-based position.
func validateExercises(exercises []any) []string {
	var messages []string

	for i, raw := range exercises {
		position := i + 1

		exercise, ok := raw.(map[string]any)
		if !ok {
			messages = append(messages, fmt.Sprintf("exercise %d is invalid", position))
			continue
		}

		if question, ok := stringValue(exercise["question"]); !ok || strings.TrimSpace(question) == "" {
			messages = append(messages, fmt.Sprintf("exercise %d must include a question", position))
		}

		switch options := exercise["options"].(type) {
		case nil:
			messages = append(messages, fmt.Sprintf("exercise %d must include answer options", position))
		case []any:
			if len(options) == 0 {
				messages = append(messages, fmt.Sprintf("exercise %d must include at least one answer option", position))
			} else {
				for _, option := range options {
					if _, ok := option.(string); !ok {
						messages = append(messages, fmt.Sprintf("exercise %d answer options must be text", position))
						break
					}
				}
			}
		default:
			messages = append(messages, fmt.Sprintf("exercise %d must include a valid list of answer options", position))
		}

		if value, ok := stringValue(exercise["correct_options"]); !ok || strings.TrimSpace(value) == "" {
			messages = append(messages, fmt.Sprintf("exercise %d must define correct_options", position))
		}

		if value, ok := stringValue(exercise["correct_answer"]); !ok || strings.TrimSpace(value) == "" {
			messages = append(messages, fmt.Sprintf("exercise %d must define correct_answer", position))
		}
	}

	return messages
}

func stringValue(raw any) (string, bool) {
	value, ok := raw.(string)
	return value, ok
}

// numberValue accepts the numeric shapes a decoded JSON document can
// carry. Strings are never coerced.
func numberValue(raw any) (float64, bool) {
	switch value := raw.(type) {
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int32:
		return float64(value), true
	case int64:
		return float64(value), true
	case json.Number:
		parsed, err := value.Float64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func isWholeNumber(value float64) bool {
	return value == math.Trunc(value)
}
