package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dm/mistinfo/internal/model"
)

var errNilSnapshot = errors.New("nil snapshot")

// Format names an output artifact.
type Format string

const (
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// FileResult records what happened to one output file.
type FileResult struct {
	Format Format
	Path   string
	Size   int64
	Err    error
}

// Outcome collects the per-file results of WriteAll.
type Outcome struct {
	Files []FileResult
}

// Err joins the per-file errors, or returns nil if every write succeeded.
func (o Outcome) Err() error {
	var errs []error
	for _, f := range o.Files {
		if f.Err != nil {
			errs = append(errs, fmt.Errorf("%s report %s: %w", f.Format, f.Path, f.Err))
		}
	}
	return errors.Join(errs...)
}

// WriteJSON writes the whole snapshot to path as indented JSON and returns
// the number of bytes written.
func WriteJSON(path string, snap *model.Snapshot) (int64, error) {
	if snap == nil {
		return 0, errNilSnapshot
	}
	return writeFile(path, func(w io.Writer) error {
		return Encode(w, snap)
	})
}

// WriteHTML writes the readable report for snap to path.
func WriteHTML(path string, snap *model.Snapshot) (int64, error) {
	if snap == nil {
		return 0, errNilSnapshot
	}
	return writeFile(path, func(w io.Writer) error {
		return renderHTML(w, snap)
	})
}

// WriteAll writes the JSON report to jsonPath and the HTML report next to
// it. Both writes are attempted regardless of the other's outcome; failures
// are returned in the Outcome and never abort.
func WriteAll(snap *model.Snapshot, jsonPath string) Outcome {
	htmlPath := HTMLPath(jsonPath)

	var out Outcome
	n, err := WriteJSON(jsonPath, snap)
	out.Files = append(out.Files, FileResult{Format: FormatJSON, Path: jsonPath, Size: n, Err: err})

	n, err = WriteHTML(htmlPath, snap)
	out.Files = append(out.Files, FileResult{Format: FormatHTML, Path: htmlPath, Size: n, Err: err})

	return out
}

// Read loads a JSON report written by WriteJSON.
func Read(path string) (*model.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	snap := model.NewSnapshot()
	if err := snap.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return snap, nil
}

// countingWriter tracks how many bytes reach the underlying writer.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// writeFile renders into a temp file beside path and renames it into place,
// so a failed write never leaves a truncated report behind. The temp file is
// closed and removed on every error path.
func writeFile(path string, render func(io.Writer) error) (n int64, err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	f, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("create: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	cw := &countingWriter{w: f}
	bw := bufio.NewWriter(cw)
	if err = render(bw); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	if err = bw.Flush(); err != nil {
		return 0, fmt.Errorf("write: %w", err)
	}
	if err = f.Chmod(0o644); err != nil {
		return 0, fmt.Errorf("chmod: %w", err)
	}
	if err = f.Close(); err != nil {
		return 0, fmt.Errorf("close: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return 0, fmt.Errorf("rename: %w", err)
	}
	return cw.n, nil
}
