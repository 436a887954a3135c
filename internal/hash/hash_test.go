package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncatedSHA256(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty string", input: ""},
		{name: "markdown", input: "# Pad Thai\n\n## Ingredients\n- noodles"},
		{name: "width prefixed", input: "80:# Tacos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, TruncatedSHA256(tt.input), IDLength)
		})
	}
}

func TestTruncatedSHA256_Deterministic(t *testing.T) {
	assert.Equal(t, TruncatedSHA256("same input"), TruncatedSHA256("same input"))
	assert.Equal(t, TruncatedSHA256("same input"), TruncatedSHA256Bytes([]byte("same input")))
}

func TestTruncatedSHA256_DifferentInputs(t *testing.T) {
	assert.NotEqual(t, TruncatedSHA256("40:# Tacos"), TruncatedSHA256("80:# Tacos"))
}
