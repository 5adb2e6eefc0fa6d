package main

import (
	"fmt"
	"strconv"

	"github.com/lmoureaux/addresstable/reg"
	"github.com/lmoureaux/addresstable/table"
	"github.com/spf13/cobra"
)

type registerRow struct {
	Path       string `json:"path"`
	Address    string `json:"address"`
	Mask       string `json:"mask"`
	Permission string `json:"permission"`
}

func init() {
	rootCmd.AddCommand(newDumpCmd())
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <table>",
		Short: "List every register in an address table",
		Long: `The dump command loads an address table and lists every register with its
resolved address, mask and permissions, arrays expanded.

Example:
  regtool dump gem_amc.xml
  regtool dump gem_amc.yml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args[0])
		},
	}
}

func runDump(tablePath string) error {
	printVerbose("Loading address table: %s\n", tablePath)
	root, err := table.Load(tablePath)
	if err != nil {
		return fmt.Errorf("failed to load table: %w", err)
	}

	var rows []registerRow
	collectRows(root, "", &rows)

	if jsonOut {
		return printJSON(rows)
	}
	for _, r := range rows {
		printInfo("%-50s %s mask %s (%s)\n", r.Path, r.Address, r.Mask, r.Permission)
	}
	return nil
}

// collectRows expands the schema, arrays included, into one row per
// register in traversal order.
func collectRows(n *reg.Node, path string, rows *[]registerRow) {
	if r, ok := n.Register(); ok {
		*rows = append(*rows, registerRow{
			Path:       path,
			Address:    fmt.Sprintf("0x%08x", r.Addr),
			Mask:       fmt.Sprintf("0x%08x", r.Mask),
			Permission: r.Access().String(),
		})
		return
	}
	for _, f := range n.Fields() {
		collectRows(f.Node, joinPath(path, f.Name), rows)
	}
	if n.Elem() != nil {
		for i := 0; i < n.Len(); i++ {
			seg := strconv.Itoa(i)
			sub, err := n.At(seg)
			if err != nil {
				continue
			}
			collectRows(sub, joinPath(path, seg), rows)
		}
	}
}

func joinPath(base, seg string) string {
	if base == "" {
		return seg
	}
	return base + "." + seg
}
