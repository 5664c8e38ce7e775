// Copyright (c) 2026 Registrar Team
// Registrar - school records manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package backup reads and writes Zstandard-compressed JSON snapshots of
// the record store.
package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/toeirei/registrar/internal/model"
)

// Extension is appended to backup file names that lack it.
const Extension = ".zst"

// DefaultFilename returns registrar-backup-YYYY-MM-DD.json.zst for the date of now.
func DefaultFilename(now time.Time) string {
	return fmt.Sprintf("registrar-backup-%s.json%s", now.Format("2006-01-02"), Extension)
}

// Write encodes snap as indented JSON through a zstd encoder.
func Write(w io.Writer, snap model.Snapshot) (err error) {
	if snap.SchemaVersion == 0 {
		snap.SchemaVersion = model.SnapshotSchemaVersion
	}
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("could not create zstd writer: %w", err)
	}
	defer func() {
		if cerr := zw.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("could not flush zstd writer: %w", cerr)
		}
	}()

	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("could not encode json to zstd writer: %w", err)
	}
	return nil
}

// Read decodes a snapshot written by Write. Snapshots from a newer schema
// are rejected.
func Read(r io.Reader) (model.Snapshot, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("could not create zstd reader: %w", err)
	}
	defer zr.Close()

	var snap model.Snapshot
	if err := json.NewDecoder(zr).Decode(&snap); err != nil {
		return model.Snapshot{}, fmt.Errorf("could not decode json from zstd reader: %w", err)
	}
	if snap.SchemaVersion < 1 || snap.SchemaVersion > model.SnapshotSchemaVersion {
		return model.Snapshot{}, fmt.Errorf("unsupported backup schema version %d", snap.SchemaVersion)
	}
	return snap, nil
}
