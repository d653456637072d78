// Package rewriting implements the text-rewrite collaborator boundary:
// three fixed request shapes against a generative-text service, each
// requesting a schema-constrained JSON response that is validated before
// any of it touches the resume record.
package rewriting

import (
	"context"
	"encoding/json"

	"github.com/google/generative-ai-go/genai"

	"github.com/Ragbaje/FrameMe/internal/llm"
	"github.com/Ragbaje/FrameMe/internal/prompts"
	"github.com/Ragbaje/FrameMe/internal/schemas"
)

const promptFile = "rewrite.json"

// Response schemas sent with every request so the provider constrains
// its own decoding; the gojsonschema pass below is the local authority.
var (
	stringArraySchema = &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}
	profileObjectSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"profile": {Type: genai.TypeString},
		},
		Required: []string{"profile"},
	}
)

// Rewriter runs the three rewrite operations against an LLM client.
type Rewriter struct {
	client llm.Client
}

// NewRewriter wraps an existing LLM client. The caller owns the client's
// lifetime.
func NewRewriter(client llm.Client) *Rewriter {
	return &Rewriter{client: client}
}

// New creates a Rewriter backed by a Gemini client.
func New(ctx context.Context, apiKey string) (*Rewriter, error) {
	if apiKey == "" {
		return nil, &APICallError{Message: "API key is required"}
	}
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, &APICallError{Message: "failed to create LLM client", Cause: err}
	}
	return &Rewriter{client: client}, nil
}

// Close releases the underlying client.
func (r *Rewriter) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// RewriteBullets turns rough experience notes into 3-4 professional CV
// bullet points. The record is untouched unless the full array validates.
func (r *Rewriter) RewriteBullets(ctx context.Context, notes string) ([]string, error) {
	prompt := prompts.Format(prompts.MustGet(promptFile, "bullet_rewrite"), map[string]string{"Text": notes})

	raw, err := r.client.GenerateJSON(ctx, prompt, stringArraySchema, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Message: "bullet rewrite request failed", Cause: err}
	}

	return decodeStringArray(schemas.BulletRewrite, raw)
}

// RewriteProfile turns rough notes into a single professional summary
// string (the prompt targets 40-60 words; the length is not enforced).
func (r *Rewriter) RewriteProfile(ctx context.Context, text string) (string, error) {
	prompt := prompts.Format(prompts.MustGet(promptFile, "profile_rewrite"), map[string]string{"Text": text})

	raw, err := r.client.GenerateJSON(ctx, prompt, profileObjectSchema, llm.TierStandard)
	if err != nil {
		return "", &APICallError{Message: "profile rewrite request failed", Cause: err}
	}

	if err := schemas.Validate(schemas.ProfileRewrite, []byte(raw)); err != nil {
		return "", &ShapeError{Message: "profile rewrite response", Cause: err}
	}

	var resp struct {
		Profile string `json:"profile"`
	}
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return "", &ShapeError{Message: "profile rewrite response", Cause: err}
	}
	return resp.Profile, nil
}

// SuggestSkills extracts 5-7 skill labels from an experience description.
func (r *Rewriter) SuggestSkills(ctx context.Context, description string) ([]string, error) {
	prompt := prompts.Format(prompts.MustGet(promptFile, "skill_suggestions"), map[string]string{"Text": description})

	raw, err := r.client.GenerateJSON(ctx, prompt, stringArraySchema, llm.TierLite)
	if err != nil {
		return nil, &APICallError{Message: "skill suggestion request failed", Cause: err}
	}

	return decodeStringArray(schemas.SkillSuggestions, raw)
}

func decodeStringArray(schemaName, raw string) ([]string, error) {
	if err := schemas.Validate(schemaName, []byte(raw)); err != nil {
		return nil, &ShapeError{Message: schemaName + " response", Cause: err}
	}

	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, &ShapeError{Message: schemaName + " response", Cause: err}
	}
	return items, nil
}
