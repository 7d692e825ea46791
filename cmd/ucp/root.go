// Part of the ucp CLI - this file wires the persistent flags and
// document load/save helpers shared by every subcommand.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/Antonio7098/unified-content-protocol-sub002/config"
	"github.com/Antonio7098/unified-content-protocol-sub002/idalloc"
	"github.com/Antonio7098/unified-content-protocol-sub002/logging"
	"github.com/Antonio7098/unified-content-protocol-sub002/serialize"
	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

var (
	docPath    string
	configFile string
	verbose    bool
	dryRun     bool
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:           "ucp",
	Short:         "Unified Content Protocol CLI",
	Long:          "ucp runs Unified Content Language programs against a document and validates, snapshots, and describes it.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cmd.Flags(), configFile)
		if err != nil {
			return err
		}
		cfg = loaded
		logging.Configure(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&docPath, "doc", "d", "", "path to document JSON file (required)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show detailed output")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "preview changes without writing the document back")
	_ = rootCmd.MarkPersistentFlagRequired("doc")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(snapshotCmd)
}

// loadDocument reads docPath, decodes it, and builds an allocator
// whose block counter starts past every id already in the document.
func loadDocument() (*ucm.Document, *idalloc.Allocator, error) {
	if docPath == "" {
		return nil, nil, fmt.Errorf("--doc is required")
	}
	data, err := os.ReadFile(docPath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", docPath, err)
	}
	doc, err := serialize.Unmarshal(data)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding %s: %w", docPath, err)
	}
	alloc := idalloc.New()
	alloc.Advance(highestBlockSuffix(doc))
	return doc, alloc, nil
}

func highestBlockSuffix(doc *ucm.Document) uint64 {
	var max uint64
	for id := range doc.Blocks {
		suffix := strings.TrimPrefix(string(id), types.PrefixBlock)
		if n, err := strconv.ParseUint(suffix, 10, 64); err == nil && n > max {
			max = n
		}
	}
	return max
}

// saveDocument writes doc back to docPath under an exclusive file
// lock, guarding against a concurrent ucp process writing the same
// path.
func saveDocument(doc *ucm.Document) error {
	if dryRun {
		return nil
	}
	data, err := serialize.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	lock := flock.New(docPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("locking %s: %w", docPath, err)
	}
	if !locked {
		return fmt.Errorf("document %s is locked by another process", docPath)
	}
	defer func() { _ = lock.Unlock() }()

	return os.WriteFile(docPath, data, 0o644)
}

func exitWithCode(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	if ucpErr, ok := err.(*types.Error); ok {
		os.Exit(ucpErr.Code.ExitCode())
	}
	os.Exit(1)
}
