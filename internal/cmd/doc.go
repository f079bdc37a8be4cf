// SPDX-FileCopyrightText: 2026 Tim Matussek
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd provides the CLI command entry point for osrun. It handles flag
// parsing, the launch pipeline, error handling, and output handling.
package cmd
