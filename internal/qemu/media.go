// SPDX-FileCopyrightText: 2026 Tim Matussek
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ResolveBootMedia classifies the boot image file by its name suffix and
// returns the boot device [Arguments] for it.
//
// ".iso" files boot as optical media, ".img" files as raw IDE disks. The file
// must exist. The missing file check takes precedence over suffix
// classification, so a missing file is reported as [ErrMediaNotFound] even if
// its suffix is unknown.
func ResolveBootMedia(path string) (Arguments, error) {
	_, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMediaNotFound, path)
		}

		return nil, fmt.Errorf("stat boot media: %w", err)
	}

	switch filepath.Ext(path) {
	case ".iso":
		return Arguments{
			ArgBoot("d"),
			ArgCdrom(path),
		}, nil
	case ".img":
		return Arguments{
			ArgDrive("format=raw,if=ide,file=" + path),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrMediaUnsupported, path)
	}
}
