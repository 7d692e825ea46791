package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Antonio7098/unified-content-protocol-sub002/snapshot"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucl"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucl/exec"
)

var runCmd = &cobra.Command{
	Use:   "run <script.ucl>",
	Short: "execute a UCL script against the document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		doc, alloc, err := loadDocument()
		if err != nil {
			return err
		}

		astDoc, err := ucl.Parse(string(source))
		if err != nil {
			return err
		}

		executor := exec.NewExecutor(doc, alloc, snapshot.NewManager(cfg.SnapshotCap))
		outcomes, err := executor.Run(astDoc)
		for _, o := range outcomes {
			if o.Err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL  %s: %v\n", o.Description, o.Err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK    %s\n", o.Description)
		}
		if err != nil {
			return err
		}

		return saveDocument(executor.Doc)
	},
}
