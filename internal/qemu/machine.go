// SPDX-FileCopyrightText: 2026 Tim Matussek
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import "slices"

const (
	// MachinePC is the default PC machine with software emulation only.
	MachinePC MachineProfile = "pc"
	// MachinePCKVM is the PC machine with KVM hardware acceleration. Check
	// [KVMAvailable] before using it.
	MachinePCKVM MachineProfile = "pc-kvm"
)

// MachineProfile selects the emulated machine and its acceleration mode.
type MachineProfile string

func (p *MachineProfile) isKnown() bool {
	knownProfiles := []MachineProfile{
		MachinePC,
		MachinePCKVM,
	}

	return slices.Contains(knownProfiles, *p)
}

// String implements [fmt.Stringer].
func (p *MachineProfile) String() string {
	if !p.isKnown() {
		return ""
	}

	return string(*p)
}

// Set implements [flag.Value].
func (p *MachineProfile) Set(s string) error {
	profile := MachineProfile(s)

	if !profile.isKnown() {
		return ErrMachineUnknown
	}

	*p = profile

	return nil
}

// Type implements [github.com/spf13/pflag.Value].
func (*MachineProfile) Type() string {
	return "profile"
}

// MarshalText implements [encoding.TextMarshaler].
func (p MachineProfile) MarshalText() ([]byte, error) {
	s := p.String()
	if s == "" {
		return nil, ErrMachineUnknown
	}

	return []byte(s), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (p *MachineProfile) UnmarshalText(text []byte) error {
	return p.Set(string(text))
}

// Clause returns the value for the QEMU machine argument.
func (p *MachineProfile) Clause() string {
	if *p == MachinePCKVM {
		return "pc,accel=kvm"
	}

	return "pc"
}
