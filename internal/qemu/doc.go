// SPDX-FileCopyrightText: 2026 Tim Matussek
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package qemu provides utilities for composing and running the QEMU system
// emulator command that boots the OS image. It expects the required QEMU
// binary to be present on the system.
//
// A [CommandSpec] describes the complete invocation. Its argument list is
// compiled in a fixed order since QEMU's own argument parsing is
// order-sensitive for some pairs, e.g. the GDB stub arguments must follow the
// boot device and audio arguments.
package qemu
