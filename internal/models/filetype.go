package models

import (
	"path"
	"path/filepath"
	"strings"
)

// FileType is the document's role in the GTD workflow, determined from
// its path.
type FileType string

const (
	FileTypeInbox        FileType = "inbox"
	FileTypeProjects     FileType = "projects"
	FileTypeNextActions  FileType = "next-actions"
	FileTypeWaitingFor   FileType = "waiting-for"
	FileTypeSomedayMaybe FileType = "someday-maybe"
	FileTypeContext      FileType = "context"
	FileTypeUnknown      FileType = "unknown"
)

// String returns the role as its wire/display form.
func (t FileType) String() string { return string(t) }

// ParseFileType maps a role string onto a FileType. The second return is
// false for strings outside the recognized set.
func ParseFileType(s string) (FileType, bool) {
	switch FileType(s) {
	case FileTypeInbox, FileTypeProjects, FileTypeNextActions,
		FileTypeWaitingFor, FileTypeSomedayMaybe, FileTypeContext, FileTypeUnknown:
		return FileType(s), true
	}
	return FileTypeUnknown, false
}

// DetectFileType classifies a vault path. Exact base names win; anything
// under a contexts directory is a context file; everything else is
// unknown.
func DetectFileType(p string) FileType {
	slashed := filepath.ToSlash(p)
	switch path.Base(slashed) {
	case "inbox.md":
		return FileTypeInbox
	case "projects.md":
		return FileTypeProjects
	case "next-actions.md":
		return FileTypeNextActions
	case "waiting-for.md":
		return FileTypeWaitingFor
	case "someday-maybe.md":
		return FileTypeSomedayMaybe
	}
	for _, part := range strings.Split(slashed, "/") {
		if part == "contexts" {
			return FileTypeContext
		}
	}
	return FileTypeUnknown
}
