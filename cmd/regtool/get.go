package main

import (
	"fmt"

	"github.com/lmoureaux/addresstable/reg"
	"github.com/lmoureaux/addresstable/table"
	"github.com/spf13/cobra"
)

var (
	getImage string
	getBase  string
)

func init() {
	cmd := newGetCmd()
	cmd.Flags().StringVar(&getImage, "image", "", "Device memory image file (required)")
	cmd.Flags().StringVar(&getBase, "base", "0x0", "Device address of the first image word")
	_ = cmd.MarkFlagRequired("image")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <table> <path>",
		Short: "Read a register from a device memory image",
		Long: `The get command resolves a register by dotted path and performs a masked
read against a memory image file.

Example:
  regtool get gem_amc.xml OH.OH.0.PULSE --image mem.bin
  regtool get gem_amc.xml DAQ.CONTROL --image mem.bin --base 0x1000`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args[0], args[1])
		},
	}
}

func runGet(tablePath, regPath string) error {
	printVerbose("Loading address table: %s\n", tablePath)
	root, err := table.Load(tablePath)
	if err != nil {
		return fmt.Errorf("failed to load table: %w", err)
	}
	r, err := root.Find(regPath)
	if err != nil {
		return fmt.Errorf("failed to resolve register: %w", err)
	}

	base, err := parseWord(getBase)
	if err != nil {
		return err
	}
	mem, _, err := loadImage(getImage, base)
	if err != nil {
		return err
	}

	acc, err := reg.NewDevice(mem).Accessor(r)
	if err != nil {
		return fmt.Errorf("failed to build accessor: %w", err)
	}
	value, err := acc.Read()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", regPath, err)
	}

	if jsonOut {
		return printJSON(map[string]string{
			"path":    regPath,
			"address": fmt.Sprintf("0x%08x", r.Addr),
			"value":   fmt.Sprintf("0x%x", value),
		})
	}
	printInfo("0x%x\n", value)
	return nil
}
