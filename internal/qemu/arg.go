// SPDX-FileCopyrightText: 2026 Tim Matussek
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"slices"
	"strings"
)

// Argument is a QEMU argument with or without value.
//
// Its name might be marked to be unique in an [Arguments] list.
type Argument struct {
	name          string
	value         string
	nonUniqueName bool
}

// Name returns the name of the [Argument].
func (a *Argument) Name() string {
	return a.name
}

// Value returns the value of the [Argument].
func (a *Argument) Value() string {
	return a.value
}

// String returns the argument the way it appears on the command line.
func (a *Argument) String() string {
	s := "-" + a.name
	if a.value != "" {
		s += " " + a.value
	}

	return s
}

// Equal compares the [Argument]s.
//
// If the name is marked unique, only names are compared. Otherwise name and
// value are compared.
func (a *Argument) Equal(b Argument) bool {
	if a.name != b.name {
		return false
	}

	if a.nonUniqueName {
		return a.value == b.value
	}

	return true
}

// WithValue returns a constructor function that takes a single value and
// returns a new [Argument] with the name of the receiver argument and the
// value passed to the constructor function.
func (a Argument) WithValue() func(string) Argument {
	return func(s string) Argument {
		a := a
		a.value = s

		return a
	}
}

// UniqueArg returns a new [Argument] with the given name that is marked as
// unique and so can be used in [Arguments] only once.
func UniqueArg(name string) Argument {
	return Argument{
		name: name,
	}
}

// RepeatableArg returns a new [Argument] with the given name that is not
// unique and so can be used in [Arguments] multiple times.
func RepeatableArg(name string) Argument {
	return Argument{
		name:          name,
		nonUniqueName: true,
	}
}

var (
	// Machine type. Repeatable since QEMU merges the properties of all
	// machine arguments, which the audio setup relies on.
	ArgMachine = RepeatableArg("machine").WithValue()
	// Guest memory as quantity string, like "128M".
	ArgMemory = UniqueArg("m").WithValue()
	// CPU model, depends on the machine type used.
	ArgCPU = UniqueArg("cpu").WithValue()
	// Path to the firmware image loaded before the boot device.
	ArgBios = UniqueArg("bios").WithValue()
	// Serial console device.
	ArgSerial = RepeatableArg("serial").WithValue()
	// VGA display device.
	ArgVGA = UniqueArg("vga").WithValue()
	// Boot order selection.
	ArgBoot = UniqueArg("boot").WithValue()
	// Path to an optical boot image.
	ArgCdrom = UniqueArg("cdrom").WithValue()
	// Block device definition.
	ArgDrive = RepeatableArg("drive").WithValue()
	// Host audio backend definition.
	ArgAudiodev = RepeatableArg("audiodev").WithValue()
	// Legacy host audio device selection, removed in QEMU 5.
	ArgSoundhw = UniqueArg("soundhw").WithValue()
	// GDB remote stub listening address.
	ArgGdb = UniqueArg("gdb").WithValue()
)

// Arguments is a list of [Argument]s.
//
// Once all [Argument]s are added, call [Arguments.Build] to compile the
// complete QEMU argument string slice.
type Arguments []Argument

// Add adds the given [Argument]s to the list.
func (a *Arguments) Add(e ...Argument) {
	*a = append(*a, e...)
}

// Build compiles the [Argument]s into a slice of strings which can be used
// with [os/exec.Command].
//
// It returns an error if any name uniqueness constraint of any [Argument] is
// violated.
func (a Arguments) Build() ([]string, error) {
	s := make([]string, 0, len(a))

	for idx, e := range a {
		if slices.ContainsFunc(a[idx+1:], e.Equal) {
			return nil, &ArgumentError{msg: "colliding args: " + e.name}
		}

		s = append(s, "-"+e.name)

		if e.value != "" {
			s = append(s, e.value)
		}
	}

	return s, nil
}

// String returns the arguments the way they appear on the command line.
// Uniqueness constraints are not checked.
func (a Arguments) String() string {
	s := make([]string, len(a))
	for idx, e := range a {
		s[idx] = e.String()
	}

	return strings.Join(s, " ")
}
