package main

import (
	"fmt"

	"github.com/lmoureaux/addresstable/reg"
	"github.com/lmoureaux/addresstable/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newAddressesCmd())
}

func newAddressesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "addresses <table> [path]",
		Short: "List register addresses in traversal order",
		Long: `The addresses command loads an address table and prints the address of
every register in declaration order, optionally restricted to the subtree at
the given dotted path.

Example:
  regtool addresses gem_amc.xml
  regtool addresses gem_amc.xml OH --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 2 {
				path = args[1]
			}
			return runAddresses(args[0], path)
		},
	}
}

func runAddresses(tablePath, subtree string) error {
	printVerbose("Loading address table: %s\n", tablePath)
	root, err := table.Load(tablePath)
	if err != nil {
		return fmt.Errorf("failed to load table: %w", err)
	}
	node, err := root.At(subtree)
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", subtree, err)
	}

	addrs := reg.Addresses(node)
	if jsonOut {
		hex := make([]string, len(addrs))
		for i, a := range addrs {
			hex[i] = fmt.Sprintf("0x%08x", a)
		}
		return printJSON(hex)
	}
	for _, a := range addrs {
		printInfo("0x%08x\n", a)
	}
	return nil
}
