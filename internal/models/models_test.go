package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"pending":     StatusPending,
		" Done ":      StatusCompleted,
		"en-progreso": StatusInProgress,
		"eliminada":   StatusDeleted,
		"in-progress": StatusInProgress,
	}
	for input, want := range cases {
		got, err := ParseStatus(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseStatus("archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestParsePriority(t *testing.T) {
	got, err := ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPriority, got)

	got, err = ParsePriority("P1")
	require.NoError(t, err)
	assert.Equal(t, PriorityP1, got)

	got, err = ParsePriority("3")
	require.NoError(t, err)
	assert.Equal(t, PriorityP3, got)

	_, err = ParsePriority("high")
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestTaskHasTag(t *testing.T) {
	task := Task{Tags: []string{"Trabajo"}}
	assert.True(t, task.HasTag("trabajo"))
	assert.False(t, task.HasTag("casa"))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "In progress", StatusInProgress.Label())
	assert.Equal(t, "Priority 1", PriorityP1.Label())
	assert.Equal(t, "Priority 4", Priority("").Label())
}
