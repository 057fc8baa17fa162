// Package compfile reads and writes comparison files: two trigger poses and
// the path collections recorded between them.
//
// Every file opens with a length-prefixed version string. The version picks
// the decoder; older schemas are migrated into the current model on load.
// Files are always written in the current schema.
package compfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ghostline/recorder/internal/collider"
	"github.com/ghostline/recorder/internal/model"
)

const (
	// CurrentVersion is the schema written by Encode.
	CurrentVersion = "0.5"
	// LegacyVersion is the single-segment schema that predates segments.
	LegacyVersion = "0.4"

	// Extension identifies comparison files, without the leading dot.
	Extension = "gcomp"
)

var (
	// ErrDecode is returned when bytes do not match a known schema.
	ErrDecode = errors.New("comparison file decode failed")
	// ErrUnknownVersion is returned for a readable header naming no known schema.
	ErrUnknownVersion = fmt.Errorf("%w: unknown version", ErrDecode)
)

// File is the persisted comparison bundle.
type File struct {
	// Version is the schema the file was read from.
	Version     string
	Triggers    [2]collider.Snapshot
	Collections []*model.PathCollection
}

type decodeFunc func(d *decoder, f *File)

var decoders = map[string]decodeFunc{
	CurrentVersion: decodeCurrent,
	LegacyVersion:  decodeLegacy,
}

// Versions lists the schema versions Decode understands.
func Versions() []string {
	out := make([]string, 0, len(decoders))
	for v := range decoders {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Encode writes f to w in the current schema.
func Encode(w io.Writer, f *File) error {
	e := &encoder{w: w}
	e.str(CurrentVersion)
	encodeTriggers(e, f.Triggers)

	e.length(len(f.Collections))
	for _, c := range f.Collections {
		e.id(c.ID)
		e.str(c.Name)
		e.length(len(c.Paths))
		for _, p := range c.Paths {
			encodePath(e, p)
		}
	}
	return e.err
}

func encodeTriggers(e *encoder, triggers [2]collider.Snapshot) {
	for _, t := range triggers {
		e.vec3(t.Position)
		e.vec3(t.Rotation)
		e.vec3(t.Size)
	}
}

func encodePath(e *encoder, p *model.Path) {
	e.id(p.ID)
	e.length(len(p.Times))
	for _, t := range p.Times {
		e.duration(t)
	}
	e.length(len(p.Segments))
	for _, s := range p.Segments {
		e.length(len(s))
		for _, v := range s {
			e.vec3(v)
		}
	}
}

// Decode reads a comparison file of any supported version.
func Decode(r io.Reader) (*File, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading comparison file: %w", err)
	}

	d := &decoder{b: raw}
	version := d.str()
	if d.err != nil {
		return nil, d.err
	}
	decode, ok := decoders[version]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownVersion, version)
	}

	f := &File{Version: version}
	decode(d, f)
	if err := d.finish(); err != nil {
		return nil, fmt.Errorf("version %s: %w", version, err)
	}
	return f, nil
}

func decodeTriggers(d *decoder, f *File) {
	for i := range f.Triggers {
		f.Triggers[i] = collider.Snapshot{
			Position: d.vec3(),
			Rotation: d.vec3(),
			Size:     d.vec3(),
		}
	}
}

func decodeCurrent(d *decoder, f *File) {
	decodeTriggers(d, f)

	// smallest collection: id, empty name, empty path list
	n := d.length(16 + 8 + 8)
	for i := 0; i < n && d.err == nil; i++ {
		c := &model.PathCollection{ID: d.id(), Name: d.str()}
		count := d.length(16 + 8 + 8)
		for j := 0; j < count && d.err == nil; j++ {
			c.Paths = append(c.Paths, decodePath(d))
		}
		f.Collections = append(f.Collections, c)
	}
}

func decodePath(d *decoder) *model.Path {
	p := &model.Path{ID: d.id()}
	nt := d.length(durationSize)
	for i := 0; i < nt && d.err == nil; i++ {
		p.Times = append(p.Times, d.duration())
	}
	ns := d.length(8)
	for i := 0; i < ns && d.err == nil; i++ {
		p.Segments = append(p.Segments, model.Segment(d.points()))
	}
	return p
}

// Save writes f to path in the current schema.
func Save(path string, f *File) error {
	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		return fmt.Errorf("encoding comparison file: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing comparison file: %w", err)
	}
	return nil
}

// Load reads the comparison file at path.
func Load(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening comparison file: %w", err)
	}
	defer fh.Close()

	f, err := Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return f, nil
}

// WithExtension appends the comparison extension to path unless present.
func WithExtension(path string) string {
	if HasExtension(path) {
		return path
	}
	return path + "." + Extension
}

// HasExtension reports whether path names a comparison file.
func HasExtension(path string) bool {
	return strings.EqualFold(filepath.Ext(path), "."+Extension)
}
