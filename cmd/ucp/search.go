package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Antonio7098/unified-content-protocol-sub002/search"
)

var searchMaxResults int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "find blocks whose text matches query, most relevant first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, _, err := loadDocument()
		if err != nil {
			return err
		}
		results := search.NewEngine(doc).Search(args[0], searchMaxResults)
		for _, r := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "%.2f  %s\n", r.Score, r.ID)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchMaxResults, "max-results", 10, "maximum number of results to print")
	rootCmd.AddCommand(searchCmd)
}
