// SPDX-FileCopyrightText: 2026 Tim Matussek
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import "errors"

var (
	// ErrMediaUnsupported is returned for boot image files with a file name
	// suffix that maps to no known boot device type.
	ErrMediaUnsupported = errors.New("unsupported boot media type")

	// ErrMediaNotFound is returned if the boot image file does not exist.
	ErrMediaNotFound = errors.New("boot media file not found")

	// ErrMachineUnknown is returned for unrecognized machine profile names.
	ErrMachineUnknown = errors.New("unknown machine profile")

	// ErrVersionUnknown is returned if no version token is found in the
	// emulator's version output.
	ErrVersionUnknown = errors.New("no version found in output")

	// ErrVersionInvalid is returned for version strings that are not a
	// sequence of dot separated numbers.
	ErrVersionInvalid = errors.New("invalid version string")
)

// ArgumentError indicates an issue with a compiled argument list.
type ArgumentError struct {
	msg string
}

// Error implements the [error] interface.
func (e *ArgumentError) Error() string {
	return "argument error: " + e.msg
}

// Is implements the [errors.Is] interface.
func (*ArgumentError) Is(other error) bool {
	_, ok := other.(*ArgumentError)
	return ok
}

// CommandError wraps any error occurred during emulator execution. ExitCode
// carries the emulator's exit status so callers can propagate it unmodified.
type CommandError struct {
	Err      error
	ExitCode int
}

// Error implements the [error] interface.
func (e *CommandError) Error() string {
	return "qemu: " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*CommandError) Is(other error) bool {
	_, ok := other.(*CommandError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *CommandError) Unwrap() error {
	return e.Err
}
