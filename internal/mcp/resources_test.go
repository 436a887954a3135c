package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecipeURI(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		wantID  string
		wantErr bool
	}{
		{name: "valid", uri: "dishdeck://recipe/private-123", wantID: "private-123"},
		{name: "invalid scheme", uri: "http://recipe/private-123", wantErr: true},
		{name: "empty id", uri: "dishdeck://recipe/", wantErr: true},
		{name: "nested path", uri: "dishdeck://recipe/a/b", wantErr: true},
		{name: "wrong prefix", uri: "dishdeck://dish/a", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := parseRecipeURI(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestHandleRecipeResource(t *testing.T) {
	s, _ := setupServer(t)
	seedRecipes(t, s)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "dishdeck://recipe/private-1"

	contents, err := s.handleRecipeResource(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "text/markdown", text.MIMEType)
	assert.Contains(t, text.Text, "# Green Curry")
	assert.Contains(t, text.Text, "curry paste")

	req.Params.URI = "dishdeck://recipe/missing"
	_, err = s.handleRecipeResource(context.Background(), req)
	assert.Error(t, err)
}
