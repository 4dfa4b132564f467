package predictor

import (
	"context"
	"sync"
)

// scriptedLLM replays canned replies in order and records every prompt.
type scriptedLLM struct {
	mu      sync.Mutex
	replies []string
	err     error
	prompts []string
}

func (s *scriptedLLM) Complete(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	if len(s.replies) == 0 {
		return "", nil
	}
	reply := s.replies[0]
	if len(s.replies) > 1 {
		s.replies = s.replies[1:]
	}
	return reply, nil
}

func (s *scriptedLLM) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

func newTestSession(t interface{ Fatalf(string, ...any) }, llm LLMClient, opts ...Option) *Session {
	p, err := NewPredictor(llm, opts...)
	if err != nil {
		t.Fatalf("NewPredictor: %v", err)
	}
	return NewSession("test", p)
}
