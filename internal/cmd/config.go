// SPDX-FileCopyrightText: 2026 Tim Matussek
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/timmatussek/osrun/internal/qemu"
)

const (
	emulatorBin   = "qemu-system-x86_64"
	firmwarePath  = "/usr/share/ovmf/x64/OVMF.fd"
	builderScript = "./build.sh"

	defaultImage  = "os.img"
	defaultMemory = "128M"
	defaultCPU    = "qemu64"

	localConfigFile = ".osrun.yaml"
)

// Config is the resolved launch configuration. It is created with defaults,
// optionally overlaid with the local config file, finalized by the flag
// values, and then threaded through the launch pipeline as a value.
type Config struct {
	// Path to the boot image file.
	Image string

	// Machine profile to emulate.
	Machine qemu.MachineProfile

	// Guest memory as quantity string, like "128M".
	Memory string

	// CPU model for the guest.
	CPU string

	// CPUOverridden is true only if the user supplied the cpu flag.
	CPUOverridden bool

	// TCP port for the GDB stub. Empty disables remote debugging.
	DebugPort string
}

func defaultConfig() Config {
	return Config{
		Image:   defaultImage,
		Machine: qemu.MachinePC,
		Memory:  defaultMemory,
		CPU:     defaultCPU,
	}
}

// localConfig is the optional per-project defaults file. All keys are
// optional. Explicit flags override its values.
type localConfig struct {
	Image   string `yaml:"image"`
	Machine string `yaml:"machine"`
	RAM     string `yaml:"ram"`
	CPU     string `yaml:"cpu"`
}

// applyLocalConfig overlays defaults from the local config file onto cfg. A
// missing file is fine and leaves cfg untouched.
func applyLocalConfig(fsys fs.FS, file string, cfg *Config) error {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("read %s: %w", file, err)
	}

	var local localConfig

	err = yaml.Unmarshal(data, &local)
	if err != nil {
		return fmt.Errorf("parse %s: %w", file, err)
	}

	if local.Image != "" {
		cfg.Image = local.Image
	}

	if local.Machine != "" {
		err := cfg.Machine.Set(local.Machine)
		if err != nil {
			return fmt.Errorf("parse %s: %w: %s", file, err, local.Machine)
		}
	}

	if local.RAM != "" {
		cfg.Memory = local.RAM
	}

	if local.CPU != "" {
		cfg.CPU = local.CPU
	}

	return nil
}
