// Package dataset reads and writes batches of labeled classifier scores.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4/v4"

	auc "github.com/jamesainslie/go-auc"
)

// Format identifies an on-disk encoding.
type Format int

const (
	// Text is one "label,score" record per line with optional "# Key: value"
	// header lines.
	Text Format = iota
	// Proto is a single protobuf-encoded Dataset message.
	Proto
)

// ErrUnknownFormat is returned for file extensions with no known encoding.
var ErrUnknownFormat = errors.New("dataset: unknown file format")

// Header contains metadata describing where the scores came from.
type Header struct {
	Source      string
	Model       string
	Description string
}

// Dataset is a named batch of samples.
type Dataset struct {
	Name    string // filename without extensions
	Header  Header
	Samples []auc.Sample[float64]
}

// Positives returns the number of positive samples.
func (d *Dataset) Positives() int {
	n := 0
	for _, s := range d.Samples {
		if s.Label {
			n++
		}
	}
	return n
}

// FormatOf infers the encoding of path from its extension. A trailing ".lz4"
// marks an lz4 frame around the inner encoding.
func FormatOf(path string) (format Format, compressed bool, err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".lz4" {
		compressed = true
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}

	switch ext {
	case ".csv", ".tsv", ".txt":
		return Text, compressed, nil
	case ".pb", ".bin":
		return Proto, compressed, nil
	default:
		return 0, false, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// BaseName returns the file name of path without its extensions, the default
// dataset name.
func BaseName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".lz4")
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load reads a dataset file, choosing the encoding from its extension.
func Load(path string) (*Dataset, error) {
	format, compressed, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if compressed {
		r = lz4.NewReader(f)
	}

	d, err := Read(r, format)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", filepath.Base(path), err)
	}
	d.Name = BaseName(path)
	return d, nil
}

// Read decodes a dataset in the given format.
func Read(r io.Reader, format Format) (*Dataset, error) {
	switch format {
	case Text:
		return readText(r)
	case Proto:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read dataset: %w", err)
		}
		return unmarshalProto(data)
	default:
		return nil, ErrUnknownFormat
	}
}

// Write encodes d in the given format.
func Write(w io.Writer, format Format, d *Dataset) error {
	switch format {
	case Text:
		return writeText(w, d)
	case Proto:
		if _, err := w.Write(marshalProto(d)); err != nil {
			return fmt.Errorf("write dataset: %w", err)
		}
		return nil
	default:
		return ErrUnknownFormat
	}
}

// Save writes d to path, choosing the encoding from its extension.
func Save(path string, d *Dataset) (err error) {
	format, compressed, err := FormatOf(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	if !compressed {
		return Write(f, format, d)
	}

	zw := lz4.NewWriter(f)
	if err := Write(zw, format, d); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush lz4 frame: %w", err)
	}
	return nil
}
