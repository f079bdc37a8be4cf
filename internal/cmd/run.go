// SPDX-FileCopyrightText: 2026 Tim Matussek
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/timmatussek/osrun/internal/gdb"
	"github.com/timmatussek/osrun/internal/qemu"
)

// Run is the main entry point for the CLI command. It returns the process
// exit code.
func Run(ctx context.Context, args []string, streams IO) int {
	setupLogging(streams.Stderr, os.Getenv("OSRUN_DEBUG") != "")

	cfg := defaultConfig()

	err := applyLocalConfig(os.DirFS("."), localConfigFile, &cfg)
	if err != nil {
		slog.Error(err.Error())
		return 1
	}

	root := NewCommand(&cfg, streams)
	root.SetArgs(args)

	err = root.ExecuteContext(ctx)
	if err != nil {
		return handleRunError(root, streams, err)
	}

	return 0
}

func handleRunError(root *cobra.Command, streams IO, err error) int {
	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(streams.Stderr, err.Error())
		fmt.Fprint(streams.Stderr, root.UsageString())

		return 1
	}

	slog.Error(err.Error())

	// Failures of the emulator or the image builder propagate the failing
	// step's exit status unmodified.
	var cmdErr *qemu.CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode > 0 {
		return cmdErr.ExitCode
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}

	return 1
}

// run executes the launch pipeline: resolve and validate the configuration,
// build the image, probe the emulator version, assemble the command, launch.
// Every failure is fatal. There are no retries.
func run(ctx context.Context, cfg *Config, streams IO) error {
	if cfg.DebugPort != "" {
		session := gdb.Session{Port: cfg.DebugPort}

		path, err := session.Write(os.TempDir())
		if err != nil {
			return err
		}

		slog.Info("Wrote GDB bootstrap script",
			slog.String("path", path),
			slog.String("port", cfg.DebugPort))
	}

	if cfg.Machine == qemu.MachinePCKVM && !qemu.KVMAvailable() {
		slog.Warn("KVM device not accessible, the emulator may fail to start")
	}

	err := buildImage(ctx, streams)
	if err != nil {
		return fmt.Errorf("build image: %w", err)
	}

	// The default boot image may not exist until the builder has run, so
	// media resolution follows the build. An explicitly given file is
	// already validated at flag time.
	bootArgs, err := qemu.ResolveBootMedia(cfg.Image)
	if err != nil {
		return err
	}

	slog.Debug("Resolved boot media",
		slog.String("file", cfg.Image))

	version, err := qemu.ProbeVersion(ctx, emulatorBin)
	if err != nil {
		return err
	}

	audio := qemu.AudioVariantFor(version)

	slog.Debug("Probed emulator version",
		slog.String("version", version.String()),
		slog.String("audio", string(audio)))

	spec := qemu.CommandSpec{
		Executable: emulatorBin,
		Firmware:   firmwarePath,
		Machine:    cfg.Machine,
		Memory:     cfg.Memory,
		CPU:        cfg.CPU,
		BootArgs:   bootArgs,
		Audio:      audio,
		DebugPort:  cfg.DebugPort,
	}

	if cfg.CPUOverridden {
		slog.Debug("Using user supplied CPU model",
			slog.String("cpu", cfg.CPU))
	}

	slog.Debug("Emulator command",
		slog.String("command", spec.String()))

	if launchDetached(cfg.DebugPort) {
		pid, err := spec.StartDetached()
		if err != nil {
			return err
		}

		slog.Info("Emulator detached",
			slog.Int("pid", pid))

		return nil
	}

	return spec.Run(ctx, streams.Stdin, streams.Stdout, streams.Stderr)
}

// launchDetached reports whether the emulator runs as a detached background
// process. Only the default GDB port detaches, so a debugger client can
// attach from the same interactive session. Any other port blocks in the
// foreground.
func launchDetached(debugPort string) bool {
	return debugPort == gdb.DefaultPort
}

// buildImage invokes the external image builder script with no arguments and
// inherited streams. It runs unconditionally before every launch.
func buildImage(ctx context.Context, streams IO) error {
	cmd := exec.CommandContext(ctx, builderScript)
	cmd.Stdin = streams.Stdin
	cmd.Stdout = streams.Stdout
	cmd.Stderr = streams.Stderr

	return cmd.Run()
}
