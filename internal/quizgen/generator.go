package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/quizmind/internal/grading"
	"github.com/abhisek/quizmind/internal/llm"
)

// Generator produces validated quizzes.
type Generator interface {
	Generate(ctx context.Context, in Input) (*Quiz, error)
}

// LLMGenerator implements Generator on an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

type quizOutput struct {
	Questions []grading.Question `json:"questions"`
}

// Generate asks the model for a quiz and runs the validator chain on it.
func (g *LLMGenerator) Generate(ctx context.Context, in Input) (*Quiz, error) {
	in.Topic = strings.TrimSpace(in.Topic)
	if in.Topic == "" {
		return nil, errors.New("topic is required")
	}
	if _, err := ParseDifficulty(string(in.Difficulty)); err != nil {
		return nil, err
	}

	req := llm.UserPrompt(systemPrompt, buildUserMessage(in))
	req.Schema = QuizSchema
	req.MaxTokens = g.config.MaxTokens
	req.Temperature = g.config.Temperature

	resp, err := g.provider.Generate(llm.WithPurpose(ctx, llm.PurposeQuizGen), req)
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}

	var out quizOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse quiz: %w", err)
	}

	quiz := &Quiz{
		Topic:      in.Topic,
		Difficulty: in.Difficulty,
		Questions:  out.Questions,
	}
	for _, v := range g.config.Validators {
		if verr := v.Validate(quiz, in); verr != nil {
			return nil, verr
		}
	}
	return quiz, nil
}
