package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTokens_UnknownModelFallsBackToRunes(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens("llama3", ""))
	assert.Equal(t, 5, EstimateTokens("llama3", "안녕하세요"))
	// второй вызов идет через кэш
	assert.Equal(t, 3, EstimateTokens("llama3", "abc"))
}
