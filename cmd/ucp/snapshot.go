// Snapshot subcommands persist named document copies as on-disk JSON
// files rather than going through snapshot.Manager: each ucp invocation
// is a fresh process, so there is no long-lived manager to hold an
// in-memory snapshot store across commands. snapshot.Diff is reused
// as-is once both sides are loaded back into memory.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Antonio7098/unified-content-protocol-sub002/serialize"
	"github.com/Antonio7098/unified-content-protocol-sub002/snapshot"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

var snapshotDir string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "manage on-disk point-in-time document copies",
}

var snapshotCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "save a copy of the current document under name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, _, err := loadDocument()
		if err != nil {
			return err
		}
		data, err := serialize.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encoding snapshot: %w", err)
		}
		if err := os.MkdirAll(snapshotDir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", snapshotDir, err)
		}
		path := snapshotPath(args[0])
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved snapshot %q to %s\n", args[0], path)
		return nil
	},
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "list saved snapshots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := os.ReadDir(snapshotDir)
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", snapshotDir, err)
		}
		var names []string
		for _, e := range entries {
			if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
				names = append(names, e.Name()[:len(e.Name())-len(".json")])
			}
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

var snapshotDiffCmd = &cobra.Command{
	Use:   "diff <a> <b>",
	Short: "diff two saved snapshots",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadSnapshotFile(args[0])
		if err != nil {
			return err
		}
		b, err := loadSnapshotFile(args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), snapshot.Diff(a, b))
		return nil
	},
}

func init() {
	snapshotCmd.PersistentFlags().StringVar(&snapshotDir, "snapshot-dir", ".ucp/snapshots", "directory holding saved snapshots")
	snapshotCmd.AddCommand(snapshotCreateCmd, snapshotListCmd, snapshotDiffCmd)
}

func snapshotPath(name string) string {
	return filepath.Join(snapshotDir, name+".json")
}

func loadSnapshotFile(name string) (*ucm.Document, error) {
	path := snapshotPath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %q: %w", name, err)
	}
	doc, err := serialize.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("decoding snapshot %q: %w", name, err)
	}
	return doc, nil
}
