package llm

import (
	"context"
	"strings"

	vertexgenai "cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/iterator"
)

type VertexGemini struct {
	client *vertexgenai.Client
	model  *vertexgenai.GenerativeModel
}

func NewVertexGemini(ctx context.Context, projectID, location, modelName string) (*VertexGemini, error) {
	c, err := vertexgenai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	m := c.GenerativeModel(modelName)
	return &VertexGemini{client: c, model: m}, nil
}

func (v *VertexGemini) Close() error { return v.client.Close() }

// withSystemInstruction returns a per-call copy of the model. The shared
// model must never be written: concurrent requests carry different system
// prompts, and a shared write would bleed one caller's instruction into
// another's stream.
func withSystemInstruction(m *vertexgenai.GenerativeModel, system string) vertexgenai.GenerativeModel {
	mc := *m
	if system != "" {
		mc.SystemInstruction = &vertexgenai.Content{
			Parts: []vertexgenai.Part{vertexgenai.Text(system)},
		}
	}
	return mc
}

func (v *VertexGemini) Complete(ctx context.Context, system, prompt string) (string, error) {
	m := withSystemInstruction(v.model, system)

	var sb strings.Builder
	it := m.GenerateContentStream(ctx, vertexgenai.Text(prompt))
	for {
		resp, err := it.Next()
		if err == iterator.Done {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}

		for _, cand := range resp.Candidates {
			if cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				if t, ok := part.(vertexgenai.Text); ok && string(t) != "" {
					sb.WriteString(string(t))
				}
			}
		}
	}
}
