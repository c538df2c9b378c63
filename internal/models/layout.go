package models

import (
	"path/filepath"
	"strings"
)

// DefaultGTDFolder is the folder name holding the managed GTD files
// inside a vault.
const DefaultGTDFolder = "gtd"

// VaultLayout is pure path arithmetic over a vault root and its GTD
// folder. It performs no I/O; listing and reading belong to the vault
// services.
type VaultLayout struct {
	Root   string
	Folder string
}

// NewVaultLayout builds a layout for the given vault root. An empty
// folder name falls back to DefaultGTDFolder.
func NewVaultLayout(root, folder string) VaultLayout {
	if folder == "" {
		folder = DefaultGTDFolder
	}
	return VaultLayout{Root: root, Folder: folder}
}

// GTDPath returns the managed folder path.
func (l VaultLayout) GTDPath() string { return filepath.Join(l.Root, l.Folder) }

// InboxPath returns the capture file path.
func (l VaultLayout) InboxPath() string { return filepath.Join(l.GTDPath(), "inbox.md") }

// ProjectsPath returns the projects file path.
func (l VaultLayout) ProjectsPath() string { return filepath.Join(l.GTDPath(), "projects.md") }

// NextActionsPath returns the next-actions file path.
func (l VaultLayout) NextActionsPath() string { return filepath.Join(l.GTDPath(), "next-actions.md") }

// WaitingForPath returns the waiting-for file path.
func (l VaultLayout) WaitingForPath() string { return filepath.Join(l.GTDPath(), "waiting-for.md") }

// SomedayMaybePath returns the someday-maybe file path.
func (l VaultLayout) SomedayMaybePath() string { return filepath.Join(l.GTDPath(), "someday-maybe.md") }

// ContextsDir returns the directory holding per-context files.
func (l VaultLayout) ContextsDir() string { return filepath.Join(l.GTDPath(), "contexts") }

// ContextFilePath returns the path of one context file, e.g. "@calls".
func (l VaultLayout) ContextFilePath(name string) string {
	return filepath.Join(l.ContextsDir(), name+".md")
}

// StandardFiles returns the five standard GTD file paths in workflow
// order.
func (l VaultLayout) StandardFiles() []string {
	return []string{
		l.InboxPath(),
		l.ProjectsPath(),
		l.NextActionsPath(),
		l.WaitingForPath(),
		l.SomedayMaybePath(),
	}
}

// IsManaged reports whether p sits under the GTD folder. Paths must be
// rooted the same way as the layout's Root.
func (l VaultLayout) IsManaged(p string) bool {
	rel, err := filepath.Rel(l.GTDPath(), p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
