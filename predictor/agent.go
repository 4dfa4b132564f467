package predictor

import (
	"context"
	"errors"
	"log"
	"strings"
)

// Predictor sends prompts to the model and turns replies into verdicts.
type Predictor struct {
	llm     LLMClient
	mode    VerdictMode
	logger  *log.Logger
	verbose bool
}

// Option customises a Predictor.
type Option func(*Predictor)

// WithVerdictMode overrides positional verdict extraction.
func WithVerdictMode(mode VerdictMode) Option {
	return func(p *Predictor) { p.mode = mode }
}

// WithLogger sets the logger; verbose enables info logs.
func WithLogger(logger *log.Logger, verbose bool) Option {
	return func(p *Predictor) {
		if logger != nil {
			p.logger = logger
		}
		p.verbose = verbose
	}
}

func NewPredictor(llm LLMClient, opts ...Option) (*Predictor, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	p := &Predictor{llm: llm, mode: VerdictPositional, logger: log.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// run makes one blocking call. A failed call still yields a verdict: the error text.
func (p *Predictor) run(ctx context.Context, kind, prompt string) Outcome {
	p.infof("[predict] sending %s prompt (%d bytes)", kind, len(prompt))
	raw, err := p.llm.Complete(ctx, prompt)
	if err != nil {
		p.logger.Printf("[predict] %s call failed: %v", kind, err)
		return Outcome{Prompt: prompt, Verdict: ErrorVerdict(err), Err: err}
	}
	verdict := ExtractVerdict(raw, p.mode)
	p.infof("[predict] %s verdict=%q", kind, verdict)
	return Outcome{Prompt: prompt, Raw: strings.TrimSpace(raw), Verdict: verdict}
}

func (p *Predictor) infof(format string, args ...interface{}) {
	if !p.verbose {
		return
	}
	p.logger.Printf("[INFO] "+format, args...)
}
