// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the plainify CLI, which converts a
// PDF into plain-language Markdown.
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmcdice/plainify/internal/chunk"
	"github.com/jmcdice/plainify/internal/rewrite"
	"github.com/jmcdice/plainify/internal/secrets"
	"github.com/jmcdice/plainify/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command; the pipeline runs directly on it rather than
// behind a subcommand, since converting one document is the whole job.
var rootCmd = &cobra.Command{
	Use:   "plainify <input.pdf> <output.md>",
	Short: "Convert a PDF into plain-language Markdown",
	Long: fmt.Sprintf(`plainify converts a PDF document into Markdown a general reader can follow.
The document structure is extracted first (headings, lists, paragraphs) and
preserved next to the output with an "_original" suffix; the text is then
rewritten chunk by chunk through a language model, with technical terms
replaced or explained in passing.

The rewrite stage needs an API key: %s for the claude backend
(the default) or %s for openai. Keys can be exported directly or
kept in a .env file in the working directory.`,
		secrets.EnvVar(types.RewriteClaude), secrets.EnvVar(types.RewriteOpenAI)),
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runPipeline,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return secrets.LoadDotenv(".env")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./plainify.yaml or ~/.config/plainify/config.yaml)")

	rootCmd.Flags().String("extraction-backend", string(types.ExtractMarkitdown), "structural extraction backend: markitdown or mupdf")
	rootCmd.Flags().String("rewrite-backend", string(types.RewriteClaude), "rewrite backend: claude or openai")
	rootCmd.Flags().String("model", "", "model name (empty = backend default)")
	rootCmd.Flags().Int("max-chunk-size", chunk.DefaultMaxChunkSize, "maximum chunk size in bytes")
	rootCmd.Flags().Int("max-concurrent", rewrite.DefaultMaxConcurrent, "maximum concurrent rewrite calls")
	rootCmd.Flags().Int("max-output-tokens", rewrite.DefaultMaxOutputTokens, "token cap per rewritten chunk")
	rootCmd.Flags().Float64("temperature", rewrite.DefaultTemperature, "sampling temperature for rewrites")
	rootCmd.Flags().String("report", "", "write a YAML run report to this path")
	rootCmd.Flags().BoolP("verbose", "v", false, "log at debug level")

	for _, name := range []string{
		"extraction-backend", "rewrite-backend", "model",
		"max-chunk-size", "max-concurrent", "max-output-tokens",
		"temperature", "report",
	} {
		if err := viper.BindPFlag(name, rootCmd.Flags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("plainify")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "plainify"))
		}
	}

	viper.SetEnvPrefix("PLAINIFY")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
