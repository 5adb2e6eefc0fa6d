package main

import (
	"fmt"
	"strconv"

	"github.com/lmoureaux/addresstable/reg"
	"github.com/lmoureaux/addresstable/table"
	"github.com/spf13/cobra"
)

var (
	setImage string
	setBase  string
)

func init() {
	cmd := newSetCmd()
	cmd.Flags().StringVar(&setImage, "image", "", "Device memory image file (required)")
	cmd.Flags().StringVar(&setBase, "base", "0x0", "Device address of the first image word")
	_ = cmd.MarkFlagRequired("image")
	rootCmd.AddCommand(cmd)
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <table> <path> <value>",
		Short: "Write a register in a device memory image",
		Long: `The set command resolves a register by dotted path and performs a masked
write against a memory image file. Bits outside the register's mask are
preserved.

Example:
  regtool set gem_amc.xml OH.OH.0.PULSE 5 --image mem.bin
  regtool set gem_amc.xml DAQ.CONTROL 0xdeadbeef --image mem.bin`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args[0], args[1], args[2])
		},
	}
}

func runSet(tablePath, regPath, valueArg string) error {
	printVerbose("Loading address table: %s\n", tablePath)
	root, err := table.Load(tablePath)
	if err != nil {
		return fmt.Errorf("failed to load table: %w", err)
	}
	r, err := root.Find(regPath)
	if err != nil {
		return fmt.Errorf("failed to resolve register: %w", err)
	}
	value, err := parseWord(valueArg)
	if err != nil {
		return err
	}

	base, err := parseWord(setBase)
	if err != nil {
		return err
	}
	mem, size, err := loadImage(setImage, base)
	if err != nil {
		return err
	}

	acc, err := reg.NewDevice(mem).Accessor(r)
	if err != nil {
		return fmt.Errorf("failed to build accessor: %w", err)
	}
	if err := acc.Write(value); err != nil {
		return fmt.Errorf("failed to write %s: %w", regPath, err)
	}

	if err := saveImage(setImage, mem, base, size); err != nil {
		return err
	}
	printVerbose("Wrote 0x%x to %s (0x%08x)\n", value, regPath, r.Addr)
	return nil
}

// parseWord parses a 32-bit CLI number; 0x and 0b prefixes are accepted.
func parseWord(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("bad number %q: %w", s, err)
	}
	return uint32(v), nil
}
