// SPDX-FileCopyrightText: 2026 Tim Matussek
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package gdb emits the GDB bootstrap script for remote debugging of the
// emulator's GDB stub.
package gdb

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// DefaultPort is GDB's default remote debugging port. A session on this port
// is expected to be driven by a debugger client attaching from the same
// interactive session, so the emulator is launched detached for it.
const DefaultPort = "1234"

// ErrPortInvalid is returned for strings that are not a well-formed TCP port.
var ErrPortInvalid = errors.New("invalid debug port")

// ValidatePort checks that the given string is a well-formed TCP port.
func ValidatePort(port string) error {
	num, err := strconv.Atoi(port)
	if err != nil || num < 1 || num > 65535 {
		return fmt.Errorf("%w: %s", ErrPortInvalid, port)
	}

	return nil
}

// Session describes a remote debugging session against the emulator's GDB
// stub on localhost.
type Session struct {
	// TCP port the emulator's GDB stub listens on.
	Port string
}

// Script returns the deterministic bootstrap script content for the session.
func (s *Session) Script() []byte {
	script := "set architecture i386:x86-64\n" +
		"set disassembly-flavor intel\n" +
		"target remote 127.0.0.1:" + s.Port + "\n"

	return []byte(script)
}

// ScriptPath returns the script location inside dir, namespaced by the
// invoking user's numeric id.
//
// The path is a shared per-user resource. Concurrent invocations by the same
// user overwrite each other's script.
func (s *Session) ScriptPath(dir string) string {
	return filepath.Join(dir, fmt.Sprintf("osrun-gdbinit-%d", os.Getuid()))
}

// Write writes the bootstrap script into dir and returns the generated path.
func (s *Session) Write(dir string) (string, error) {
	path := s.ScriptPath(dir)

	err := os.WriteFile(path, s.Script(), 0o644)
	if err != nil {
		return "", fmt.Errorf("write gdb script: %w", err)
	}

	return path, nil
}
