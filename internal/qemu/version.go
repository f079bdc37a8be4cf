// SPDX-FileCopyrightText: 2026 Tim Matussek
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// Version is an ordered sequence of numeric version components.
type Version []int

var versionPattern = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)+`)

// ParseVersion parses a dot separated version string into a [Version].
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")

	version := make(Version, len(parts))

	for idx, part := range parts {
		num, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrVersionInvalid, s)
		}

		version[idx] = num
	}

	return version, nil
}

// String implements [fmt.Stringer].
func (v Version) String() string {
	parts := make([]string, len(v))
	for idx, num := range v {
		parts[idx] = strconv.Itoa(num)
	}

	return strings.Join(parts, ".")
}

// Compare compares the versions component-wise. The shorter sequence is
// padded with zeros. It returns -1, 0 or 1 if v is lower than, equal to or
// greater than other.
func (v Version) Compare(other Version) int {
	for idx := 0; idx < max(len(v), len(other)); idx++ {
		a, b := 0, 0

		if idx < len(v) {
			a = v[idx]
		}

		if idx < len(other) {
			b = other[idx]
		}

		if a != b {
			if a < b {
				return -1
			}

			return 1
		}
	}

	return 0
}

// ProbeVersion queries the given emulator binary for its version and returns
// the semantic version component of the reported version string.
//
// Any failure to invoke the binary or to find a version token in its output
// is returned as is. There are no retries.
func ProbeVersion(ctx context.Context, executable string) (Version, error) {
	out, err := exec.CommandContext(ctx, executable, "--version").Output()
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", executable, err)
	}

	token := versionPattern.FindString(string(out))
	if token == "" {
		return nil, fmt.Errorf("%w: %q", ErrVersionUnknown, string(out))
	}

	return ParseVersion(token)
}
