package main

import (
	"fmt"

	"github.com/lmoureaux/addresstable/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCountCmd())
}

func newCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count <table> [path]",
		Short: "Count the registers in a table or subtree",
		Long: `The count command loads an address table and prints the number of
registers in it, or in the subtree at the given dotted path.

Example:
  regtool count gem_amc.xml
  regtool count gem_amc.xml OH.OH`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 2 {
				path = args[1]
			}
			return runCount(args[0], path)
		},
	}
}

func runCount(tablePath, subtree string) error {
	printVerbose("Loading address table: %s\n", tablePath)
	root, err := table.Load(tablePath)
	if err != nil {
		return fmt.Errorf("failed to load table: %w", err)
	}
	node, err := root.At(subtree)
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", subtree, err)
	}

	n := node.NumLeaves()
	if jsonOut {
		return printJSON(map[string]int{"registers": n})
	}
	printInfo("%d\n", n)
	return nil
}
