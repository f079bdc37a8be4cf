// SPDX-FileCopyrightText: 2026 Tim Matussek
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timmatussek/osrun/internal/qemu"
)

func createMediaFile(t *testing.T, name string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("boot"), 0o644))

	return path
}

func TestResolveBootMedia(t *testing.T) {
	t.Run("iso", func(t *testing.T) {
		path := createMediaFile(t, "os.iso")

		args, err := qemu.ResolveBootMedia(path)
		require.NoError(t, err)

		assert.Equal(t, qemu.Arguments{
			qemu.ArgBoot("d"),
			qemu.ArgCdrom(path),
		}, args)
	})

	t.Run("img", func(t *testing.T) {
		path := createMediaFile(t, "os.img")

		args, err := qemu.ResolveBootMedia(path)
		require.NoError(t, err)

		assert.Equal(t, qemu.Arguments{
			qemu.ArgDrive("format=raw,if=ide,file=" + path),
		}, args)
	})

	t.Run("unknown suffix", func(t *testing.T) {
		path := createMediaFile(t, "os.qcow2")

		_, err := qemu.ResolveBootMedia(path)
		require.ErrorIs(t, err, qemu.ErrMediaUnsupported)
	})

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.img")

		_, err := qemu.ResolveBootMedia(path)
		require.ErrorIs(t, err, qemu.ErrMediaNotFound)
	})

	t.Run("missing file wins over unknown suffix", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.qcow2")

		_, err := qemu.ResolveBootMedia(path)
		require.ErrorIs(t, err, qemu.ErrMediaNotFound)
	})
}
