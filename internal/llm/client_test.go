package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiClient_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), DefaultConfig(), "")
	assert.ErrorIs(t, err, ErrAPIKeyRequired)
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{Provider: "openai"}, "key")
	assert.Error(t, err)
}

func TestExtractTextFromResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("Hello, "), genai.Text("world")}},
		}},
	}

	text, err := extractTextFromResponse(resp)

	require.NoError(t, err)
	assert.Equal(t, "Hello, world", text)
}

func TestExtractTextFromResponse_Empty(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"nil response", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"no content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
		{"no text parts", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}},
		}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractTextFromResponse(tt.resp)
			if !errors.Is(err, ErrNoText) {
				t.Errorf("extractTextFromResponse() error = %v, want ErrNoText", err)
			}
		})
	}
}
