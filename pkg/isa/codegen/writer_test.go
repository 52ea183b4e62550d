package codegen

import (
	"bytes"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:generate mockgen -write_package_comment=false -package=$GOPACKAGE -destination=mock_writer_test.go github.com/Manu343726/isagen/pkg/isa/codegen Writer

func testArtifacts() []Artifact {
	return []Artifact{
		{Name: "opcode.h", Content: []byte("enum\n")},
		{Name: "opcode_name_map.h", Content: []byte("map\n")},
		{Name: "opcode_lookup.cpp", Content: []byte("lookup\n")},
	}
}

func TestDirWriter_WritesAllArtifacts(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := &DirWriter{Fs: fs, Dir: "out/generated"}

	require.NoError(t, WriteAll(w, testArtifacts()))

	for _, artifact := range testArtifacts() {
		content, err := afero.ReadFile(fs, "out/generated/"+artifact.Name)
		require.NoError(t, err)
		assert.Equal(t, artifact.Content, content)
	}
}

func TestDirWriter_OverwritesExistingFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "generated/opcode.h", []byte("a much longer stale content\n"), 0o644))

	w := &DirWriter{Fs: fs, Dir: "generated"}
	require.NoError(t, w.WriteArtifact(Artifact{Name: "opcode.h", Content: []byte("fresh\n")}))

	content, err := afero.ReadFile(fs, "generated/opcode.h")
	require.NoError(t, err)
	assert.Equal(t, "fresh\n", string(content))
}

func TestDirWriter_ReadOnlyFilesystemFails(t *testing.T) {
	w := &DirWriter{Fs: afero.NewReadOnlyFs(afero.NewMemMapFs()), Dir: "generated"}

	err := WriteAll(w, testArtifacts())
	assert.Error(t, err)
	assert.ErrorContains(t, err, "writing opcode.h")
}

func TestWriteAll_WritesInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := NewMockWriter(ctrl)
	artifacts := testArtifacts()

	gomock.InOrder(
		w.EXPECT().WriteArtifact(artifacts[0]).Return(nil),
		w.EXPECT().WriteArtifact(artifacts[1]).Return(nil),
		w.EXPECT().WriteArtifact(artifacts[2]).Return(nil),
	)

	assert.NoError(t, WriteAll(w, artifacts))
}

func TestWriteAll_StopsAtFirstError(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := NewMockWriter(ctrl)
	artifacts := testArtifacts()
	diskFull := errors.New("disk full")

	gomock.InOrder(
		w.EXPECT().WriteArtifact(artifacts[0]).Return(nil),
		w.EXPECT().WriteArtifact(artifacts[1]).Return(diskFull),
	)

	err := WriteAll(w, artifacts)
	assert.ErrorIs(t, err, diskFull)
	assert.ErrorContains(t, err, "writing opcode_name_map.h")
}

func TestStreamWriter_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	w := &StreamWriter{Out: &buf}

	require.NoError(t, WriteAll(w, testArtifacts()[:2]))

	assert.Equal(t, "// ---- opcode.h ----\nenum\n\n// ---- opcode_name_map.h ----\nmap\n\n", buf.String())
}
