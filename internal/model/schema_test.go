package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResumeMap(t *testing.T) {
	valid := map[string]any{
		"name":   "Ada Lovelace",
		"title":  "Engineer",
		"skills": []any{"Go", "Math"},
		"projects": []any{
			map[string]any{"name": "Engine", "description": "notes"},
		},
	}
	assert.NoError(t, ValidateResumeMap(valid))
}

func TestValidateResumeMapMissingName(t *testing.T) {
	err := ValidateResumeMap(map[string]any{"title": "Engineer"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}

func TestValidateResumeMapWrongTypes(t *testing.T) {
	err := ValidateResumeMap(map[string]any{
		"name":   "Ada",
		"skills": "Go, Math", // must be an array
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skills")
}

func TestValidateResumeMapProjectNeedsName(t *testing.T) {
	err := ValidateResumeMap(map[string]any{
		"name":     "Ada",
		"projects": []any{map[string]any{"description": "no name"}},
	})
	assert.Error(t, err)
}
