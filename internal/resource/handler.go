// Package resource resolves gtd:// URIs into the JSON payload shapes
// served by the MCP resources.
package resource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/merrow/gtdvault/internal/apperr"
	"github.com/merrow/gtdvault/internal/models"
	"github.com/merrow/gtdvault/internal/storage"
	"github.com/merrow/gtdvault/internal/vault"
)

// Handler builds resource payloads for vaults addressed by gtd:// URIs.
// Vault paths arrive per request, so readers are constructed on demand.
type Handler struct {
	folder string
}

// NewHandler creates a handler. An empty folder name falls back to the
// default GTD folder.
func NewHandler(folder string) *Handler {
	if folder == "" {
		folder = models.DefaultGTDFolder
	}
	return &Handler{folder: folder}
}

// Files returns the metadata-only listing for a vault, filtered by file
// type when fileType is non-empty.
func (h *Handler) Files(ctx context.Context, vaultPath, fileType string) (*FilesResponse, error) {
	abs, reader, err := h.openVault(vaultPath)
	if err != nil {
		return nil, err
	}
	docs, err := reader.ListFiles(ctx, models.FileType(fileType))
	if err != nil {
		return nil, err
	}
	summary, err := reader.Summary(ctx)
	if err != nil {
		return nil, err
	}

	resp := &FilesResponse{
		Status:    "success",
		Files:     make([]FileSummary, 0, len(docs)),
		Summary:   summary,
		VaultPath: vaultPath,
	}
	for _, doc := range docs {
		resp.Files = append(resp.Files, FileSummary{
			FilePath:  filepath.Join(abs, doc.Path),
			FileType:  doc.Role.String(),
			TaskCount: len(doc.Tasks),
			LinkCount: len(doc.Links),
		})
	}
	if !h.hasStructure(abs) {
		resp.Suggestion = SetupSuggestion
	}
	return resp, nil
}

// File returns the full detail for one vault file. filePath may be
// vault-relative or absolute, but must stay inside the vault.
func (h *Handler) File(ctx context.Context, vaultPath, filePath string) (*FileResponse, error) {
	abs, reader, err := h.openVault(vaultPath)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(filePath) == "" {
		return nil, apperr.Invalidf("resource: file path is empty")
	}
	rel := filePath
	if filepath.IsAbs(filePath) {
		rel, err = filepath.Rel(abs, filePath)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil, apperr.Invalidf("resource: file %s is outside vault %s", filePath, vaultPath)
		}
	}
	doc, err := reader.ReadFile(ctx, rel)
	if err != nil {
		return nil, err
	}
	detail := newFileDetail(abs, doc)
	return &FileResponse{Status: "success", File: &detail, VaultPath: vaultPath}, nil
}

// Content returns the full-content aggregate for a vault, filtered by
// file type when fileType is non-empty.
func (h *Handler) Content(ctx context.Context, vaultPath, fileType string) (*ContentResponse, error) {
	abs, reader, err := h.openVault(vaultPath)
	if err != nil {
		return nil, err
	}
	docs, err := reader.ListFiles(ctx, models.FileType(fileType))
	if err != nil {
		return nil, err
	}
	summary, err := reader.Summary(ctx)
	if err != nil {
		return nil, err
	}

	resp := &ContentResponse{
		Status:    "success",
		Files:     make([]FileContent, 0, len(docs)),
		Summary:   summary,
		VaultPath: vaultPath,
	}
	for _, doc := range docs {
		resp.Files = append(resp.Files, FileContent{
			FileDetail: newFileDetail(abs, doc),
			TaskCount:  len(doc.Tasks),
			LinkCount:  len(doc.Links),
		})
	}
	if !h.hasStructure(abs) {
		resp.Suggestion = SetupSuggestion
	}
	return resp, nil
}

// openVault validates the vault path and builds a reader over it.
func (h *Handler) openVault(vaultPath string) (string, *vault.Reader, error) {
	if strings.TrimSpace(vaultPath) == "" {
		return "", nil, apperr.Invalidf("resource: vault path is empty")
	}
	abs, err := filepath.Abs(vaultPath)
	if err != nil {
		return "", nil, fmt.Errorf("resource: resolve vault path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", nil, apperr.NotFoundf("resource: vault directory %s", vaultPath)
	}
	store, err := storage.NewFS(abs)
	if err != nil {
		return "", nil, err
	}
	return abs, vault.NewReader(store, models.NewVaultLayout("", h.folder)), nil
}

// hasStructure reports whether the vault already carries its GTD folder.
func (h *Handler) hasStructure(vaultDir string) bool {
	info, err := os.Stat(filepath.Join(vaultDir, h.folder))
	return err == nil && info.IsDir()
}

func newFileDetail(vaultDir string, doc *models.Document) FileDetail {
	detail := FileDetail{
		FilePath:    filepath.Join(vaultDir, doc.Path),
		FileType:    doc.Role.String(),
		Content:     doc.Content,
		Frontmatter: newFrontmatterPayload(doc.Meta),
		Tasks:       make([]TaskPayload, 0, len(doc.Tasks)),
		Links:       make([]LinkPayload, 0, len(doc.Links)),
	}
	for _, task := range doc.Tasks {
		detail.Tasks = append(detail.Tasks, newTaskPayload(task))
	}
	for _, link := range doc.Links {
		detail.Links = append(detail.Links, newLinkPayload(link))
	}
	return detail
}
