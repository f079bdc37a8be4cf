// SPDX-FileCopyrightText: 2026 Tim Matussek
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"
)

// CommandSpec defines the parameters for a single emulator invocation.
//
// It is a pure value. [CommandSpec.Args] compiles the same argument list for
// the same spec every time.
type CommandSpec struct {
	// Path to the qemu-system binary.
	Executable string

	// Path to the firmware image loaded before the boot device.
	Firmware string

	// Machine profile to use. Empty means no machine argument at all.
	Machine MachineProfile

	// Memory for the machine as quantity string, like "128M".
	Memory string

	// CPU model to use.
	CPU string

	// Boot device arguments as returned by [ResolveBootMedia].
	BootArgs Arguments

	// Audio setup as selected by [AudioVariantFor].
	Audio AudioVariant

	// TCP port for the GDB remote stub. If set, the emulator halts at reset
	// and listens on this port.
	DebugPort string
}

// Args compiles the argument list for the emulator command.
//
// The order is fixed: machine, memory, CPU, firmware, the baseline set, boot
// device, audio, GDB stub. The stub arguments must come last.
func (s *CommandSpec) Args() Arguments {
	a := Arguments{}

	if s.Machine != "" {
		a.Add(ArgMachine(s.Machine.Clause()))
	}

	a.Add(
		ArgMemory(s.Memory),
		ArgCPU(s.CPU),
		ArgBios(s.Firmware),
		ArgSerial("stdio"),
		ArgVGA("std"),
	)

	a.Add(s.BootArgs...)
	a.Add(s.Audio.Args()...)

	if s.DebugPort != "" {
		a.Add(
			UniqueArg("S"),
			ArgGdb("tcp::"+s.DebugPort),
		)
	}

	return a
}

// String returns the complete command line for logging and inspection.
func (s *CommandSpec) String() string {
	args, err := s.Args().Build()
	if err != nil {
		return s.Executable
	}

	return strings.Join(append([]string{s.Executable}, args...), " ")
}

// Run executes the emulator command in the foreground and blocks until it
// exits.
//
// A non-zero exit status is returned as [CommandError] carrying the
// emulator's exit code unmodified.
func (s *CommandSpec) Run(
	ctx context.Context,
	stdin io.Reader,
	stdout, stderr io.Writer,
) error {
	args, err := s.Args().Build()
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, s.Executable, args...)
	cmd.Stdin = stdin

	outPipe, err := cmd.StdoutPipe()
	if err != nil {
		return &CommandError{Err: err, ExitCode: -1}
	}

	errPipe, err := cmd.StderrPipe()
	if err != nil {
		return &CommandError{Err: err, ExitCode: -1}
	}

	if err := cmd.Start(); err != nil {
		return &CommandError{Err: fmt.Errorf("start: %w", err), ExitCode: -1}
	}

	outputGroup := errgroup.Group{}
	outputGroup.Go(func() error {
		_, err := io.Copy(stdout, outPipe)
		return err
	})
	outputGroup.Go(func() error {
		_, err := io.Copy(stderr, errPipe)
		return err
	})

	copyErr := outputGroup.Wait()

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &CommandError{Err: err, ExitCode: exitErr.ExitCode()}
		}

		return &CommandError{Err: fmt.Errorf("wait: %w", err), ExitCode: -1}
	}

	if copyErr != nil {
		return &CommandError{Err: copyErr, ExitCode: -1}
	}

	return nil
}

// StartDetached executes the emulator command as a detached background
// process and returns its PID immediately.
//
// The process gets its own session, so it outlives the calling process. Its
// eventual exit status is not observed.
func (s *CommandSpec) StartDetached() (int, error) {
	args, err := s.Args().Build()
	if err != nil {
		return 0, err
	}

	cmd := exec.Command(s.Executable, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}

	if err := cmd.Start(); err != nil {
		return 0, &CommandError{Err: fmt.Errorf("start: %w", err), ExitCode: -1}
	}

	pid := cmd.Process.Pid
	_ = cmd.Process.Release()

	return pid, nil
}
