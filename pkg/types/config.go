package types

// ExtractionBackend identifies the PDF structural-extraction tool.
type ExtractionBackend string

const (
	// ExtractMarkitdown pipes the PDF through the markitdown container image.
	ExtractMarkitdown ExtractionBackend = "markitdown"
	// ExtractMuPDF reads the PDF natively through the MuPDF bindings.
	ExtractMuPDF ExtractionBackend = "mupdf"
)

// RewriteBackend identifies the completion service used to simplify text.
type RewriteBackend string

const (
	// RewriteClaude uses the Anthropic Messages API.
	RewriteClaude RewriteBackend = "claude"
	// RewriteOpenAI uses an OpenAI-compatible chat completions API.
	RewriteOpenAI RewriteBackend = "openai"
)

// ConversionConfig holds settings for the structural-extraction stage.
type ConversionConfig struct {
	// Backend selects the extraction tool: markitdown or mupdf.
	Backend ExtractionBackend `json:"backend" yaml:"backend"`
}

// ChunkingConfig holds settings for splitting extracted text.
type ChunkingConfig struct {
	// MaxChunkSize is the soft cap on chunk length in bytes (default 7000).
	// A single sentence longer than the cap becomes its own oversized chunk.
	MaxChunkSize int `json:"max_chunk_size" yaml:"max_chunk_size"`
}

// RewriteConfig holds settings for the plain-language rewrite stage.
type RewriteConfig struct {
	// Backend selects the completion service: claude or openai.
	Backend RewriteBackend `json:"backend" yaml:"backend"`

	// Model is the model identifier for the selected backend. Empty selects
	// the backend's default.
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the selected backend.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxConcurrent bounds the number of simultaneous rewrite calls (default 5).
	MaxConcurrent int `json:"max_concurrent" yaml:"max_concurrent"`

	// MaxOutputTokens caps the length of each rewritten chunk. The service
	// truncates past the cap; truncation is accepted, not retried.
	MaxOutputTokens int `json:"max_output_tokens" yaml:"max_output_tokens"`

	// Temperature is the sampling-randomness control for the rewrite calls.
	// Low-to-moderate values keep the rewrite close to the source text.
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

// PipelineConfig groups all stage configurations for one run.
type PipelineConfig struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	Chunking   ChunkingConfig   `json:"chunking" yaml:"chunking"`
	Rewrite    RewriteConfig    `json:"rewrite" yaml:"rewrite"`

	// ReportPath, when set, is where the run report YAML is written.
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty"`
}
