// Package rewrite turns extracted document chunks into plain language
// through a remote completion service, bounded by a fixed-size concurrency
// gate. See docs/ARCHITECTURE § Rewrite.
package rewrite

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/semaphore"

	"github.com/jmcdice/plainify/internal/markdown"
	"github.com/jmcdice/plainify/pkg/types"
)

const (
	// DefaultMaxConcurrent bounds simultaneous rewrite calls.
	DefaultMaxConcurrent = 5

	// DefaultMaxOutputTokens caps the length of one rewritten chunk.
	DefaultMaxOutputTokens = 4096

	// DefaultTemperature keeps rewrites close to the source text.
	DefaultTemperature = 0.3
)

// Rewriter submits one instruction-plus-text prompt to a completion service
// and returns the rewritten text. Implementations are transport only; the
// Processor owns prompt construction. Tests supply a fake.
type Rewriter interface {
	Rewrite(ctx context.Context, prompt string) (string, error)
}

// NewRewriter returns the Rewriter for the configured backend. An empty
// backend selects claude.
func NewRewriter(cfg types.RewriteConfig) (Rewriter, error) {
	switch cfg.Backend {
	case types.RewriteOpenAI:
		return &OpenAIRewriter{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxOutputTokens,
			Temperature: cfg.Temperature,
		}, nil
	case types.RewriteClaude, "":
		return &ClaudeRewriter{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxOutputTokens,
			Temperature: cfg.Temperature,
		}, nil
	default:
		return nil, fmt.Errorf("unknown rewrite backend %q", cfg.Backend)
	}
}

// Processor fans chunks out to a Rewriter. A counting gate bounds how many
// external calls are in flight at once; a permit is held for the duration of
// exactly one call and released on every exit path. Waiters block until a
// permit frees up, with no fairness guarantee beyond eventual progress.
type Processor struct {
	rewriter Rewriter
	gate     *semaphore.Weighted
	log      *log.Logger
}

// NewProcessor creates a Processor allowing at most maxConcurrent in-flight
// rewrite calls. maxConcurrent <= 0 applies the default; a nil logger
// discards output.
func NewProcessor(r Rewriter, maxConcurrent int, logger *log.Logger) *Processor {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Processor{
		rewriter: r,
		gate:     semaphore.NewWeighted(int64(maxConcurrent)),
		log:      logger,
	}
}

// Process rewrites one chunk. It never returns an error to the caller: every
// failure is logged with the chunk index and a content excerpt, and the
// empty-string sentinel comes back so a single bad chunk cannot sink the
// batch. A result that does not look like Markdown is logged as a warning
// and used anyway.
func (p *Processor) Process(ctx context.Context, index int, chunk string) string {
	if err := p.gate.Acquire(ctx, 1); err != nil {
		p.log.Error("rewrite permit not acquired", "chunk", index, "err", err)
		return ""
	}
	defer p.gate.Release(1)

	prompt, err := renderPrompt(chunk)
	if err != nil {
		p.log.Error("prompt rendering failed", "chunk", index, "err", err)
		return ""
	}

	out, err := p.rewriter.Rewrite(ctx, prompt)
	if err != nil {
		p.log.Error("chunk rewrite failed", "chunk", index, "excerpt", excerpt(chunk), "err", err)
		return ""
	}

	if err := markdown.Validate(out); err != nil {
		p.log.Warn("rewritten chunk failed markdown check", "chunk", index, "err", err)
	}

	return out
}

// ProcessAll dispatches every chunk concurrently and gathers results into a
// slice indexed like the input, so final document order never depends on
// completion order. Failed chunks hold the empty string.
func (p *Processor) ProcessAll(ctx context.Context, chunks []string) []string {
	results := make([]string, len(chunks))

	var wg sync.WaitGroup
	for i, c := range chunks {
		wg.Add(1)
		go func(i int, c string) {
			defer wg.Done()
			results[i] = p.Process(ctx, i, c)
		}(i, c)
	}
	wg.Wait()

	return results
}

// excerpt returns a short whitespace-collapsed prefix of the chunk for
// failure logs.
func excerpt(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= 80 {
		return s
	}
	return s[:77] + "..."
}
