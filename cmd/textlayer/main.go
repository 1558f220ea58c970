package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/textlayer"
	"github.com/tsawler/textlayer/corpus"
)

var (
	verbose         bool
	cacheConfigPath string
)

var rootCmd = &cobra.Command{
	Use:   "textlayer",
	Short: "Search and inspect the text layer of paginated documents",
	Long: `textlayer extracts positioned text from structured-text JSON and hOCR
documents, indexes it through a tiered cache, and offers search, page
rendering, and an interactive terminal viewer over the result.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureLogging()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cacheConfigPath, "cache", "", "cache configuration file (TOML)")
}

func configureLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadCacheConfig resolves the effective cache configuration: the --cache
// file when given, the memory-only defaults otherwise.
func loadCacheConfig() (corpus.CacheConfig, error) {
	if cacheConfigPath == "" {
		return corpus.DefaultCacheConfig(), nil
	}
	return corpus.LoadCacheConfig(cacheConfigPath)
}

// openDocument opens a session over a document file with the effective
// cache configuration applied.
func openDocument(path string, opts ...textlayer.Option) (*textlayer.Session, error) {
	config, err := loadCacheConfig()
	if err != nil {
		return nil, err
	}
	return textlayer.Open(path, append([]textlayer.Option{textlayer.WithCacheConfig(config)}, opts...)...)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
