// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Report summarizes one pipeline run for operators who want more than the
// log stream: which files were produced and how many chunks made it through
// the rewrite stage.
type Report struct {
	Input           string  `json:"input" yaml:"input"`
	Output          string  `json:"output" yaml:"output"`
	Intermediate    string  `json:"intermediate" yaml:"intermediate"`
	Chunks          int     `json:"chunks" yaml:"chunks"`
	RewrittenChunks int     `json:"rewritten_chunks" yaml:"rewritten_chunks"`
	FailedChunks    int     `json:"failed_chunks" yaml:"failed_chunks"`
	DurationSeconds float64 `json:"duration_seconds" yaml:"duration_seconds"`
}

// HasFailures reports whether any chunk fell back to the empty sentinel.
func (r *Report) HasFailures() bool {
	return r.FailedChunks > 0
}

// WriteReport marshals the report as YAML to path.
func WriteReport(r *Report, path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
