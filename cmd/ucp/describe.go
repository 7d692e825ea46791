package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Antonio7098/unified-content-protocol-sub002/context"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "print the document's structure with short block ids",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, _, err := loadDocument()
		if err != nil {
			return err
		}
		proj := context.BuildProjection(doc)
		fmt.Fprint(cmd.OutOrStdout(), proj.Describe(doc))
		return nil
	},
}
