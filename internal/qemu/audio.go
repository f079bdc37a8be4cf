// SPDX-FileCopyrightText: 2026 Tim Matussek
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

const (
	// AudioLegacy is the soundhw based PC speaker setup that QEMU removed
	// with version 5.
	AudioLegacy AudioVariant = "legacy"
	// AudioModern is the audiodev based PC speaker setup available since
	// QEMU 5.0.0.
	AudioModern AudioVariant = "modern"
)

// AudioVariant selects how the guest's PC speaker is wired to the host.
type AudioVariant string

// minModernAudio is the first QEMU version that requires the audiodev setup.
var minModernAudio = Version{5, 0, 0}

// AudioVariantFor returns the [AudioVariant] supported by the given emulator
// version. Versions below 5.0.0 get [AudioLegacy], 5.0.0 and above get
// [AudioModern].
func AudioVariantFor(v Version) AudioVariant {
	if v.Compare(minModernAudio) < 0 {
		return AudioLegacy
	}

	return AudioModern
}

// Args returns the audio [Arguments] for the variant. An unset variant emits
// no audio arguments.
func (a AudioVariant) Args() Arguments {
	switch a {
	case AudioLegacy:
		return Arguments{
			ArgSoundhw("pcspk"),
		}
	case AudioModern:
		return Arguments{
			ArgAudiodev("id=audio0,driver=sdl"),
			ArgMachine("pcspk-audiodev=audio0"),
		}
	default:
		return nil
	}
}
