// Package pipeline coordinates the end-to-end conversion of one PDF into a
// plain-language Markdown document: validate paths, extract structure,
// preserve the extraction on disk, chunk, rewrite concurrently, reassemble,
// write. See docs/ARCHITECTURE § Pipeline.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jmcdice/plainify/internal/chunk"
	"github.com/jmcdice/plainify/internal/convert"
	"github.com/jmcdice/plainify/pkg/types"
)

// Sentinel errors for the pipeline's failure classes. Callers test with
// errors.Is to pick an exit path; chunk-level rewrite failures are not
// errors at this level and only surface in the report.
var (
	// ErrSetup reports an unusable input or output path.
	ErrSetup = errors.New("setup failed")

	// ErrConversion reports a structural extraction failure.
	ErrConversion = errors.New("conversion failed")

	// ErrEmptyDocument reports a source with no extractable text.
	ErrEmptyDocument = errors.New("document has no extractable text")

	// ErrOutputWrite reports a failure handling a result file.
	ErrOutputWrite = errors.New("output write failed")
)

// ChunkProcessor rewrites a batch of chunks, returning one result per input
// chunk in input order. Failed chunks come back as empty strings.
type ChunkProcessor interface {
	ProcessAll(ctx context.Context, chunks []string) []string
}

// Runner executes the conversion pipeline. Collaborators are injected so
// the full sequence runs in tests without containers or network calls.
type Runner struct {
	Extractor convert.Extractor
	Processor ChunkProcessor
	Chunking  types.ChunkingConfig
	Log       *log.Logger
}

// Run converts inputPath into plain-language Markdown at outputPath. The
// structural extraction is written next to the output with an "_original"
// suffix before any rewriting starts, so the faithful text survives even if
// every rewrite call fails.
func (r *Runner) Run(ctx context.Context, inputPath, outputPath string) (*Report, error) {
	start := time.Now()

	logger := r.Log
	if logger == nil {
		logger = log.New(io.Discard)
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading input %s: %w", ErrSetup, inputPath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: input %s is a directory", ErrSetup, inputPath)
	}

	outDir := filepath.Dir(outputPath)
	dirInfo, err := os.Stat(outDir)
	if err != nil {
		return nil, fmt.Errorf("%w: output directory %s: %w", ErrSetup, outDir, err)
	}
	if !dirInfo.IsDir() {
		return nil, fmt.Errorf("%w: output parent %s is not a directory", ErrSetup, outDir)
	}

	logger.Info("extracting document structure", "input", inputPath)
	original, err := r.Extractor.Extract(inputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConversion, inputPath, err)
	}
	if strings.TrimSpace(original) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, inputPath)
	}

	intermediatePath := IntermediatePath(outputPath)
	if err := os.WriteFile(intermediatePath, []byte(original), 0o644); err != nil {
		return nil, fmt.Errorf("%w: preserving extraction at %s: %w", ErrOutputWrite, intermediatePath, err)
	}
	logger.Info("preserved structural extraction", "path", intermediatePath)

	// Round-trip through disk: the rewrite stage consumes exactly what was
	// preserved, not an in-memory copy that could drift from it.
	data, err := os.ReadFile(intermediatePath)
	if err != nil {
		return nil, fmt.Errorf("%w: re-reading %s: %w", ErrOutputWrite, intermediatePath, err)
	}

	chunks := chunk.Split(string(data), r.Chunking.MaxChunkSize)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, inputPath)
	}
	logger.Info("rewriting in plain language", "chunks", len(chunks))

	results := r.Processor.ProcessAll(ctx, chunks)

	failed := 0
	for _, res := range results {
		if strings.TrimSpace(res) == "" {
			failed++
		}
	}
	if failed > 0 {
		logger.Warn("some chunks were not rewritten and are absent from the output",
			"failed", failed, "total", len(chunks))
	}

	doc := assemble(results)
	if err := os.WriteFile(outputPath, []byte(doc), 0o644); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOutputWrite, outputPath, err)
	}
	logger.Info("wrote plain-language document", "path", outputPath)

	return &Report{
		Input:           inputPath,
		Output:          outputPath,
		Intermediate:    intermediatePath,
		Chunks:          len(chunks),
		RewrittenChunks: len(chunks) - failed,
		FailedChunks:    failed,
		DurationSeconds: time.Since(start).Seconds(),
	}, nil
}

// IntermediatePath derives the companion path that preserves the structural
// extraction: the output path with "_original" appended to its stem.
func IntermediatePath(outputPath string) string {
	ext := filepath.Ext(outputPath)
	return strings.TrimSuffix(outputPath, ext) + "_original" + ext
}

// newlineRuns matches the blank-line pileups left when rewritten chunks end
// in their own trailing newlines.
var newlineRuns = regexp.MustCompile(`\n{3,}`)

// assemble joins rewritten chunks into the final document. Empty sentinel
// results are dropped, survivors are separated by blank lines, and runs of
// three or more newlines collapse to one blank line.
func assemble(results []string) string {
	kept := make([]string, 0, len(results))
	for _, res := range results {
		trimmed := strings.TrimSpace(res)
		if trimmed == "" {
			continue
		}
		kept = append(kept, trimmed)
	}
	doc := strings.Join(kept, "\n\n")
	return newlineRuns.ReplaceAllString(doc, "\n\n")
}
