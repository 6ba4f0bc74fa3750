package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const extractSystemPrompt = `You extract professional skills from resume text.
Respond with a JSON array of lower-case skill names and nothing else.
Example: ["python", "sql", "project management"]`

// Config configures the OpenAI-backed resume collaborator.
type Config struct {
	BaseURL string        `envconfig:"BASE_URL" split_words:"true"`
	APIKey  string        `envconfig:"API_KEY" split_words:"true"`
	Model   string        `envconfig:"MODEL" split_words:"true" default:"gpt-4o-mini"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
}

// Enabled reports whether the collaborator is configured at all. A missing
// key simply disables the richer extraction.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// OpenAIExtractor asks a chat model for the skills mentioned in a resume.
// Callers must treat any error as "no extra skills": the keyword layer is the
// source of truth and this collaborator only enriches it.
type OpenAIExtractor struct {
	client  *openaisdk.Client
	model   string
	timeout time.Duration
}

func NewOpenAIExtractor(cfg Config) (*OpenAIExtractor, error) {
	if !cfg.Enabled() {
		return nil, errors.New("openai api key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
	}
	if trimmed := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}

	client := openaisdk.NewClient(opts...)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIExtractor{
		client:  &client,
		model:   strings.TrimSpace(cfg.Model),
		timeout: timeout,
	}, nil
}

func (e *OpenAIExtractor) Extract(ctx context.Context, resumeText string) ([]string, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	completion, err := e.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(e.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(extractSystemPrompt),
			openaisdk.UserMessage(resumeText),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("resume extraction call: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("resume extraction returned no choices")
	}

	return parseSkillArray(completion.Choices[0].Message.Content)
}

// parseSkillArray tolerates code fences and surrounding prose around the JSON
// array.
func parseSkillArray(content string) ([]string, error) {
	content = strings.TrimSpace(content)

	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in model output: %q", content)
	}

	var skills []string
	if err := json.Unmarshal([]byte(content[start:end+1]), &skills); err != nil {
		return nil, fmt.Errorf("decode skill array: %w", err)
	}

	out := skills[:0]
	for _, s := range skills {
		if trimmed := strings.ToLower(strings.TrimSpace(s)); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out, nil
}
