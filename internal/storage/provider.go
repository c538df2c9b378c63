// Package storage defines the vault file-system abstraction.
package storage

import "time"

// Provider is the interface for vault file operations. All paths are
// relative to the vault root.
type Provider interface {
	// List returns metadata for every .md file under dir.
	List(dir string) ([]FileInfo, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path, creating parent
	// directories as needed.
	Write(path string, content []byte) error
	// Exists reports whether path names an existing file or directory.
	Exists(path string) (bool, error)
	// Delete removes the file at path.
	Delete(path string) error
}

// FileInfo describes one vault file found by List. Path is relative to
// the vault root and always uses forward slashes.
type FileInfo struct {
	Path      string
	Size      int64
	Checksum  string
	UpdatedAt time.Time
}
