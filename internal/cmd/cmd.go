// SPDX-FileCopyrightText: 2026 Tim Matussek
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/timmatussek/osrun/internal/gdb"
	"github.com/timmatussek/osrun/internal/qemu"
)

const name = "osrun"

// IO provides input and output streams for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewCommand creates the root command operating on the given [Config].
//
// The flag defaults are the current values of cfg, so defaults overlaid from
// the local config file stay in effect unless a flag is given explicitly.
func NewCommand(cfg *Config, streams IO) *cobra.Command {
	root := &cobra.Command{
		Use:   name,
		Short: "Build the OS image and boot it in QEMU",
		Long: "osrun builds the OS image and boots it in the QEMU system\n" +
			"emulator. With a debug port set, a GDB bootstrap script is\n" +
			"written and the emulator halts at reset, waiting for a\n" +
			"debugger to attach.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.CPUOverridden = cmd.Flags().Changed("cpu")

			if cfg.DebugPort != "" {
				err := gdb.ValidatePort(cfg.DebugPort)
				if err != nil {
					return &UsageError{err: err}
				}
			}

			// An explicitly given boot image must be valid before any
			// external step runs. The default image is resolved later,
			// once the builder had the chance to create it.
			if cmd.Flags().Changed("file") {
				_, err := qemu.ResolveBootMedia(cfg.Image)
				if err != nil {
					return err
				}
			}

			return run(cmd.Context(), cfg, streams)
		},
	}

	root.SetOut(streams.Stdout)
	root.SetErr(streams.Stderr)

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{err: err}
	})

	flags := root.Flags()
	flags.StringVarP(
		&cfg.Image,
		"file", "f",
		cfg.Image,
		"path to the boot image file (.iso or .img)",
	)
	flags.VarP(
		&cfg.Machine,
		"machine", "m",
		"machine profile to emulate: pc, pc-kvm",
	)
	flags.StringVarP(
		&cfg.Memory,
		"ram", "r",
		cfg.Memory,
		"guest memory as quantity string",
	)
	flags.StringVarP(
		&cfg.CPU,
		"cpu", "c",
		cfg.CPU,
		"CPU model for the guest",
	)
	flags.StringVarP(
		&cfg.DebugPort,
		"debug", "d",
		cfg.DebugPort,
		"enable the GDB stub on this TCP port",
	)

	return root
}
