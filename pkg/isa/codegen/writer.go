package codegen

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/Manu343726/isagen/pkg/utils"
	"github.com/spf13/afero"
)

// Receives the generated artifacts
type Writer interface {
	WriteArtifact(artifact Artifact) error
}

// Writes artifacts as files of an output directory. Existing files are overwritten
type DirWriter struct {
	Fs  afero.Fs
	Dir string
}

// Returns a writer that writes artifacts into a directory of the OS filesystem
func NewDirWriter(dir string) *DirWriter {
	return &DirWriter{
		Fs:  afero.NewOsFs(),
		Dir: dir,
	}
}

func (w *DirWriter) WriteArtifact(artifact Artifact) error {
	if err := w.Fs.MkdirAll(w.Dir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(w.Dir, artifact.Name)

	if err := afero.WriteFile(w.Fs, path, artifact.Content, 0o644); err != nil {
		return err
	}

	slog.Info("wrote artifact", "path", path, "bytes", len(artifact.Content))
	return nil
}

// Writes all artifacts one after another into an io.Writer, each one preceded by a
// banner with its name. Meant for previewing generated code in a terminal
type StreamWriter struct {
	Out       io.Writer
	Highlight bool
}

func (w *StreamWriter) WriteArtifact(artifact Artifact) error {
	content := string(artifact.Content)

	if w.Highlight {
		content = utils.HighlightCode(content, artifact.Language)
	}

	_, err := fmt.Fprintf(w.Out, "// ---- %v ----\n%v\n", artifact.Name, content)
	return err
}

// Writes the artifacts in order, stopping at the first error.
// Artifacts written before the failure are left as they are
func WriteAll(w Writer, artifacts []Artifact) error {
	for _, artifact := range artifacts {
		if err := w.WriteArtifact(artifact); err != nil {
			return fmt.Errorf("writing %v: %w", artifact.Name, err)
		}
	}

	return nil
}
