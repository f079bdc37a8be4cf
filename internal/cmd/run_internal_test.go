// SPDX-FileCopyrightText: 2026 Tim Matussek
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timmatussek/osrun/internal/gdb"
	"github.com/timmatussek/osrun/internal/qemu"
)

// chdir switches the working directory for the duration of the test. The
// pipeline resolves the builder script and the default image relative to it.
func chdir(t *testing.T, dir string) {
	t.Helper()

	orig, err := os.Getwd()
	require.NoError(t, err)

	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(orig))
	})
}

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o755))

	return path
}

// fakeEmulatorOnPath puts a stand-in emulator binary on PATH that answers
// the version probe and echoes any other invocation's arguments.
func fakeEmulatorOnPath(t *testing.T, dir string) {
	t.Helper()

	writeScript(t, dir, "qemu-system-x86_64",
		"#!/bin/sh\n"+
			"if [ \"$1\" = \"--version\" ]; then\n"+
			"  echo \"QEMU emulator version 6.0.0\"\n"+
			"  exit 0\n"+
			"fi\n"+
			"echo \"$@\"\n")

	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestRunPipeline(t *testing.T) {
	t.Run("foreground with defaults", func(t *testing.T) {
		dir := t.TempDir()
		chdir(t, dir)

		writeScript(t, dir, "build.sh",
			"#!/bin/sh\ntouch os.img\necho built\n")
		fakeEmulatorOnPath(t, dir)

		cfg := defaultConfig()
		streams, stdout, _ := testIO()

		err := run(context.Background(), &cfg, streams)
		require.NoError(t, err)

		out := stdout.String()
		assert.Contains(t, out, "built")
		assert.Contains(t, out, "-machine pc")
		assert.Contains(t, out, "-m 128M")
		assert.Contains(t, out, "-cpu qemu64")
		assert.Contains(t, out, "-drive format=raw,if=ide,file=os.img")
		assert.Contains(t, out, "-audiodev id=audio0,driver=sdl")
		assert.NotContains(t, out, "-gdb")
	})

	t.Run("detached on default debug port", func(t *testing.T) {
		dir := t.TempDir()
		chdir(t, dir)

		writeScript(t, dir, "build.sh",
			"#!/bin/sh\ntouch os.img\necho built\n")
		fakeEmulatorOnPath(t, dir)

		cfg := defaultConfig()
		cfg.DebugPort = gdb.DefaultPort

		streams, stdout, _ := testIO()

		err := run(context.Background(), &cfg, streams)
		require.NoError(t, err)

		// The emulator runs detached, so its output is not captured.
		out := stdout.String()
		assert.Contains(t, out, "built")
		assert.NotContains(t, out, "-gdb")

		session := gdb.Session{Port: gdb.DefaultPort}
		path := session.ScriptPath(os.TempDir())
		t.Cleanup(func() { _ = os.Remove(path) })

		script, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(script), "target remote 127.0.0.1:1234")
	})
}

func TestRunBuildsBeforeMediaResolution(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	// The builder runs but leaves no image behind, so media resolution
	// must fail after it, not before.
	writeScript(t, dir, "build.sh", "#!/bin/sh\necho built\n")
	fakeEmulatorOnPath(t, dir)

	cfg := defaultConfig()
	streams, stdout, _ := testIO()

	err := run(context.Background(), &cfg, streams)
	require.ErrorIs(t, err, qemu.ErrMediaNotFound)
	assert.Contains(t, stdout.String(), "built")
}

func TestExplicitFileValidatedBeforeBuild(t *testing.T) {
	tests := []struct {
		name    string
		image   string
		create  bool
		wantErr error
	}{
		{
			name:    "missing boot media",
			image:   "missing.img",
			wantErr: qemu.ErrMediaNotFound,
		},
		{
			name:    "unsupported boot media",
			image:   "os.qcow2",
			create:  true,
			wantErr: qemu.ErrMediaUnsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			chdir(t, dir)

			writeScript(t, dir, "build.sh",
				"#!/bin/sh\ntouch built.marker\n")

			if tt.create {
				path := filepath.Join(dir, tt.image)
				require.NoError(t,
					os.WriteFile(path, []byte("boot"), 0o644))
			}

			cfg := defaultConfig()
			streams, _, _ := testIO()

			root := NewCommand(&cfg, streams)
			root.SetArgs([]string{"-f", tt.image})

			err := root.Execute()
			require.ErrorIs(t, err, tt.wantErr)

			// The builder never ran.
			assert.NoFileExists(t,
				filepath.Join(dir, "built.marker"))
		})
	}
}
