// Package snapshot persists galaxies as plain JSON documents.
//
// The snapshot is a flat, self-contained file: every system, planet, and
// rail inline, no references to external storage. That keeps generated
// settings diffable, versionable, and portable between tools.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spindlespace/spindle/pkg/universe"
)

// =============================================================================
// Snapshot Serialization API
// =============================================================================

// Marshal converts a galaxy to JSON bytes.
// Systems and rails are sorted by ID for deterministic output.
func Marshal(g *universe.Galaxy) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes a galaxy to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(g *universe.Galaxy, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTo(g, f)
}

// Write writes a galaxy as JSON to an io.Writer.
// Use Marshal for in-memory serialization or WriteFile for files.
func Write(g *universe.Galaxy, w io.Writer) error {
	return writeTo(g, w)
}

// ReadFile reads a JSON file and returns the decoded galaxy.
// Returns assembly errors for snapshots with duplicate or empty ids.
func ReadFile(path string) (*universe.Galaxy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readFrom(f)
}

// Read decodes a JSON galaxy from an io.Reader.
// Use ReadFile for files or pass bytes.NewReader for in-memory data.
func Read(r io.Reader) (*universe.Galaxy, error) {
	return readFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeTo(g *universe.Galaxy, w io.Writer) error {
	out := FromGalaxy(g)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readFrom(r io.Reader) (*universe.Galaxy, error) {
	var doc Galaxy
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToGalaxy(doc)
}
