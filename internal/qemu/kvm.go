// SPDX-FileCopyrightText: 2026 Tim Matussek
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import "golang.org/x/sys/unix"

// KVMAvailable checks if the KVM device is present and accessible for the
// invoking user.
func KVMAvailable() bool {
	return unix.Access("/dev/kvm", unix.R_OK|unix.W_OK) == nil
}
