// Package vault provides the GTD vault services: reading and listing
// parsed documents, scaffolding the folder structure, inbox capture,
// and strict header checks.
package vault

import (
	"context"

	"github.com/merrow/gtdvault/internal/apperr"
	"github.com/merrow/gtdvault/internal/models"
	"github.com/merrow/gtdvault/internal/parser"
	"github.com/merrow/gtdvault/internal/storage"
)

// Summary aggregates counts across every readable file in the vault.
type Summary struct {
	TotalFiles  int            `json:"total_files"`
	TotalTasks  int            `json:"total_tasks"`
	TotalLinks  int            `json:"total_links"`
	FilesByType map[string]int `json:"files_by_type"`
	TasksByType map[string]int `json:"tasks_by_type"`
}

// Reader reads and parses GTD files through a storage provider.
type Reader struct {
	store  storage.Provider
	layout models.VaultLayout
}

// NewReader creates a reader over the given provider. The layout must
// produce provider-relative paths, so its Root is normally empty.
func NewReader(store storage.Provider, layout models.VaultLayout) *Reader {
	return &Reader{store: store, layout: layout}
}

// ReadFile reads and parses one vault file. The path is relative to the
// vault root and must sit under the GTD folder.
func (r *Reader) ReadFile(_ context.Context, path string) (*models.Document, error) {
	ok, err := r.store.Exists(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFoundf("vault: file %s", path)
	}
	if !r.layout.IsManaged(path) {
		return nil, apperr.Invalidf("vault: %s is outside the %s folder", path, r.layout.Folder)
	}
	data, err := r.store.Read(path)
	if err != nil {
		return nil, err
	}
	return parser.Parse(data, path), nil
}

// ListFiles returns every parseable GTD file: the standard files in
// workflow order, then the context files sorted by path. Files that
// cannot be read are skipped. A non-empty filter keeps only documents
// with that role.
func (r *Reader) ListFiles(ctx context.Context, filter models.FileType) ([]*models.Document, error) {
	var docs []*models.Document
	for _, p := range r.layout.StandardFiles() {
		ok, err := r.store.Exists(p)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		doc, err := r.ReadFile(ctx, p)
		if err != nil {
			continue
		}
		docs = append(docs, doc)
	}

	contextsDir := r.layout.ContextsDir()
	ok, err := r.store.Exists(contextsDir)
	if err != nil {
		return nil, err
	}
	if ok {
		infos, err := r.store.List(contextsDir)
		if err != nil {
			return nil, err
		}
		for _, info := range infos {
			doc, err := r.ReadFile(ctx, info.Path)
			if err != nil {
				continue
			}
			docs = append(docs, doc)
		}
	}

	if filter == "" {
		return docs, nil
	}
	filtered := docs[:0]
	for _, doc := range docs {
		if doc.Role == filter {
			filtered = append(filtered, doc)
		}
	}
	return filtered, nil
}

// Summary computes vault-wide file, task and link counts keyed by role.
func (r *Reader) Summary(ctx context.Context) (*Summary, error) {
	docs, err := r.ListFiles(ctx, "")
	if err != nil {
		return nil, err
	}
	s := &Summary{
		TotalFiles:  len(docs),
		FilesByType: make(map[string]int),
		TasksByType: make(map[string]int),
	}
	for _, doc := range docs {
		role := doc.Role.String()
		s.TotalTasks += len(doc.Tasks)
		s.TotalLinks += len(doc.Links)
		s.FilesByType[role]++
		s.TasksByType[role] += len(doc.Tasks)
	}
	return s, nil
}
