package resource

import (
	"net/url"
	"slices"
	"strings"

	"github.com/merrow/gtdvault/internal/apperr"
)

// FilesRef identifies a parsed files or content URI. FileType is empty
// when the URI carries no filter segment.
type FilesRef struct {
	VaultPath string
	FileType  string
}

// FileRef identifies a parsed single-file URI. FilePath is relative to
// the vault unless the URI embedded an absolute path.
type FileRef struct {
	VaultPath string
	FilePath  string
}

// ParseFilesURI parses gtd://{vault_path}/files and
// gtd://{vault_path}/files/{file_type}.
func ParseFilesURI(uri string) (*FilesRef, error) {
	return parseListURI(uri, "files")
}

// ParseContentURI parses gtd://{vault_path}/content and
// gtd://{vault_path}/content/{file_type}.
func ParseContentURI(uri string) (*FilesRef, error) {
	return parseListURI(uri, "content")
}

// ParseFileURI parses gtd://{vault_path}/file/{file_path}. The file path
// keeps every segment after the file keyword, slashes included.
func ParseFileURI(uri string) (*FileRef, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, apperr.Invalidf("resource: parse uri %s", uri)
	}
	if u.Scheme != "gtd" {
		return nil, apperr.Invalidf("resource: uri scheme %q, expected gtd", u.Scheme)
	}

	if u.Host != "" {
		keyword, filePath, ok := strings.Cut(strings.Trim(u.Path, "/"), "/")
		if !ok || keyword != "file" || filePath == "" {
			return nil, apperr.Invalidf("resource: bad file uri %s", uri)
		}
		return &FileRef{VaultPath: u.Host, FilePath: filePath}, nil
	}

	// Absolute vault paths land in the URI path, so everything before
	// the first file segment is the vault.
	segs := splitSegments(u.Path)
	if len(segs) < 3 {
		return nil, apperr.Invalidf("resource: uri %s is missing components", uri)
	}
	i := slices.Index(segs, "file")
	if i < 0 {
		return nil, apperr.Invalidf("resource: uri %s is missing the file segment", uri)
	}
	if i+1 >= len(segs) {
		return nil, apperr.Invalidf("resource: uri %s is missing a file path", uri)
	}
	return &FileRef{
		VaultPath: "/" + strings.Join(segs[:i], "/"),
		FilePath:  strings.Join(segs[i+1:], "/"),
	}, nil
}

func parseListURI(uri, keyword string) (*FilesRef, error) {
	vaultPath, parts, err := splitResourceURI(uri, keyword)
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 || parts[0] != keyword {
		return nil, apperr.Invalidf("resource: uri %s is missing the %s segment", uri, keyword)
	}
	switch len(parts) {
	case 1:
		return &FilesRef{VaultPath: vaultPath}, nil
	case 2:
		return &FilesRef{VaultPath: vaultPath, FileType: parts[1]}, nil
	}
	return nil, apperr.Invalidf("resource: bad %s uri %s", keyword, uri)
}

func splitResourceURI(uri, keyword string) (string, []string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", nil, apperr.Invalidf("resource: parse uri %s", uri)
	}
	if u.Scheme != "gtd" {
		return "", nil, apperr.Invalidf("resource: uri scheme %q, expected gtd", u.Scheme)
	}
	if u.Host != "" {
		return u.Host, splitSegments(u.Path), nil
	}
	segs := splitSegments(u.Path)
	if len(segs) < 2 {
		return "", nil, apperr.Invalidf("resource: uri %s is missing a vault path", uri)
	}
	i := slices.Index(segs, keyword)
	if i < 0 {
		return "", nil, apperr.Invalidf("resource: uri %s is missing the %s segment", uri, keyword)
	}
	return "/" + strings.Join(segs[:i], "/"), segs[i:], nil
}

func splitSegments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
