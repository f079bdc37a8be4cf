// SPDX-FileCopyrightText: 2026 Tim Matussek
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

// UsageError wraps errors caused by a malformed invocation, like unknown
// flags or ill-formed flag values.
type UsageError struct {
	err error
}

func (e *UsageError) Error() string {
	return e.err.Error()
}

func (e *UsageError) Is(other error) bool {
	_, ok := other.(*UsageError)
	return ok
}

func (e *UsageError) Unwrap() error {
	return e.err
}
