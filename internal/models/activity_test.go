package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestActivityConfigRoundTrip(t *testing.T) {
	policy := "linear"
	cfg := ActivityConfig{
		Title:             "Kinematics review",
		Grade:             11,
		Modules:           "Mechanics",
		NumberOfExercises: 1,
		TotalTimeMinutes:  30,
		NumberOfRetries:   2,
		ScoringPolicy:     &policy,
		Exercises: []Exercise{
			{Question: "What is the SI unit of force?", Options: []string{"Newton", "Joule"}, CorrectOptions: "A", CorrectAnswer: "Newton"},
		},
	}

	activity := Activity{ID: "a-1", CreatedAt: time.Now().UTC()}
	require.NoError(t, activity.SetConfig(cfg))

	restored, err := activity.Config()
	require.NoError(t, err)
	require.Equal(t, cfg, restored)
}

func TestActivityConfigReturnsFreshCopy(t *testing.T) {
	activity := Activity{ID: "a-1"}
	require.NoError(t, activity.SetConfig(ActivityConfig{
		Title:     "Original",
		Exercises: []Exercise{{Question: "Q1"}},
	}))

	first, err := activity.Config()
	require.NoError(t, err)

	first.Title = "Mutated"
	first.Exercises[0].Question = "Changed"

	second, err := activity.Config()
	require.NoError(t, err)
	require.Equal(t, "Original", second.Title)
	require.Equal(t, "Q1", second.Exercises[0].Question)
}

func TestSubmissionAttemptCountFollowsList(t *testing.T) {
	submission := Submission{SubmissionID: "s-1"}

	require.NoError(t, submission.SetAttempts([]AttemptResult{{Result: 50}, {Result: 80}, {Result: 100}}))
	require.Equal(t, 3, submission.NumberOfAttempts)

	require.NoError(t, submission.SetAttempts(nil))
	require.Equal(t, 0, submission.NumberOfAttempts)
	require.Nil(t, submission.AttemptList())
}
