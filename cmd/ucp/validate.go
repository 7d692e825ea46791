package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Antonio7098/unified-content-protocol-sub002/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "run the structural, referential, resource, and semantic checks over the document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, _, err := loadDocument()
		if err != nil {
			return err
		}

		result := validation.NewPipeline().Validate(doc)
		for _, issue := range result.Issues {
			out := cmd.OutOrStdout()
			if issue.Severity == validation.SeverityError {
				out = os.Stderr
			}
			if issue.BlockID != "" {
				fmt.Fprintf(out, "%-7s %-20s %s (block %s)\n", issue.Severity, issue.Code, issue.Message, issue.BlockID)
				continue
			}
			fmt.Fprintf(out, "%-7s %-20s %s\n", issue.Severity, issue.Code, issue.Message)
		}

		if !result.Valid() {
			os.Exit(12)
		}
		return nil
	},
}
