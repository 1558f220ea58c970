package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsawler/textlayer/corpus"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the persistent text cache",
	Long:  `Inspect, evict, or configure the local SQLite cache of extracted text.`,
}

var cacheShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List cached documents",
	RunE:  runCacheShow,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [doc-id]",
	Short: "Evict one document, or everything",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCacheClear,
}

var cacheInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a cache configuration file with the persistent tier enabled",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCacheInit,
}

func init() {
	cacheCmd.AddCommand(cacheShowCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheInitCmd)
	rootCmd.AddCommand(cacheCmd)
}

// openPersistentTier opens the SQLite tier at the configured path, whether
// or not the tier is enabled for sessions.
func openPersistentTier() (*corpus.SQLiteTier, error) {
	config, err := loadCacheConfig()
	if err != nil {
		return nil, err
	}
	if config.Persistent.Path == "" {
		return nil, errors.New("no persistent cache path configured")
	}
	return corpus.NewSQLiteTier(config.Persistent.Path)
}

func runCacheShow(cmd *cobra.Command, args []string) error {
	tier, err := openPersistentTier()
	if err != nil {
		return err
	}
	defer tier.Close()

	stats, err := tier.Documents(cmd.Context())
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		cmd.Println("Cache is empty.")
		return nil
	}

	for _, stat := range stats {
		cmd.Printf("%s  %d page(s)  updated %s\n",
			stat.DocID, stat.Pages, stat.UpdatedAt.Format(time.RFC3339))
	}
	cmd.Printf("\nTotal: %d document(s)\n", len(stats))
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	tier, err := openPersistentTier()
	if err != nil {
		return err
	}
	defer tier.Close()

	if len(args) == 1 {
		if err := tier.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		cmd.Printf("Evicted %s\n", args[0])
		return nil
	}

	if err := tier.Clear(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Cache cleared.")
	return nil
}

func runCacheInit(cmd *cobra.Command, args []string) error {
	path := cacheConfigPath
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		path = "textlayer.toml"
	}

	config := corpus.DefaultCacheConfig()
	config.Persistent.Enabled = true
	if err := corpus.SaveCacheConfig(path, config); err != nil {
		return err
	}
	cmd.Printf("Wrote %s\n", path)
	return nil
}
