// Copyright (c) 2026 Registrar Team
// Registrar - school records manager
// This source code is licensed under the MIT license found in the LICENSE file.
package model

// SnapshotSchemaVersion is bumped whenever the Snapshot layout changes.
const SnapshotSchemaVersion = 1

// Snapshot is a point-in-time copy of every record in the store. It is the
// payload of backups and the input of SQL exports.
type Snapshot struct {
	// SchemaVersion helps in handling format changes during restore.
	SchemaVersion int `json:"schema_version"`

	Students    []Student    `json:"students"`
	Courses     []Course     `json:"courses"`
	Enrollments []Enrollment `json:"enrollments"`
}
