package service

import (
	"context"
	"fmt"

	"trustlens-be/internal/pkg/logger"
	"trustlens-be/pkg/llm"
)

type nopLogger struct{}

func newNopLogger() logger.ILogger { return nopLogger{} }

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// stubJudge answers every prompt with a fixed reply, or fails when err is set.
type stubJudge struct {
	reply string
	err   error
	calls int
}

func (s *stubJudge) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubJudge) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

// stubEmbedder maps exact texts to fixed vectors so similarity scores in
// pipeline tests are known in advance.
type stubEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (s *stubEmbedder) Generate(ctx context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	vec, ok := s.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no stub vector for text %q", text)
	}
	return vec, nil
}
