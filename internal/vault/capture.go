package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/merrow/gtdvault/internal/apperr"
	"github.com/merrow/gtdvault/internal/models"
	"github.com/merrow/gtdvault/internal/parser"
	"github.com/merrow/gtdvault/internal/storage"
)

const (
	// maxItemRunes caps a single captured item after cleaning.
	maxItemRunes = 500
	// maxInboxBytes guards against rewriting a runaway inbox file.
	maxInboxBytes = 1 << 20
)

// CaptureReport describes one successful inbox capture.
type CaptureReport struct {
	Status     string `json:"status"`
	ItemText   string `json:"item_text"`
	FilePath   string `json:"file_path"`
	LineNumber int    `json:"line_number"`
	TaskCount  int    `json:"task_count"`
}

// Capture appends one item to the vault's inbox as an untagged checkbox,
// creating the vault and the inbox file from the standard template when
// missing. Contexts and tags are deliberately left for the clarify
// phase. The previous content is backed up for the duration of the write
// and restored if the write fails.
func Capture(vaultPath, folder, text string) (*CaptureReport, error) {
	if strings.TrimSpace(vaultPath) == "" {
		return nil, apperr.Invalidf("vault: vault path is empty")
	}
	item := cleanItemText(text)
	if item == "" {
		return nil, apperr.Invalidf("vault: capture text is empty")
	}
	if n := utf8.RuneCountInString(item); n > maxItemRunes {
		return nil, apperr.Invalidf("vault: capture text is %d characters, limit is %d", n, maxItemRunes)
	}

	abs, err := filepath.Abs(vaultPath)
	if err != nil {
		return nil, fmt.Errorf("vault: resolve path: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("vault: create vault directory: %w", err)
	}
	store, err := storage.NewFS(abs)
	if err != nil {
		return nil, err
	}

	layout := models.NewVaultLayout("", folder)
	inboxPath := layout.InboxPath()
	ok, err := store.Exists(inboxPath)
	if err != nil {
		return nil, err
	}
	if !ok {
		if err := store.Write(inboxPath, []byte(gtdTemplates["inbox.md"])); err != nil {
			return nil, fmt.Errorf("vault: create inbox: %w", err)
		}
	}

	current, err := store.Read(inboxPath)
	if err != nil {
		return nil, fmt.Errorf("vault: read inbox: %w", err)
	}
	if len(current) > maxInboxBytes {
		return nil, apperr.Invalidf("vault: inbox exceeds %d bytes", maxInboxBytes)
	}

	entry := fmt.Sprintf("- [ ] %s <!-- captured: %s -->", item, time.Now().Format(time.RFC3339))
	lines, lineNumber := insertEntry(strings.Split(string(current), "\n"), entry)
	updated := strings.Join(lines, "\n")
	if !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	if len(updated) > maxInboxBytes {
		return nil, apperr.Invalidf("vault: inbox would exceed %d bytes", maxInboxBytes)
	}

	backupPath := strings.TrimSuffix(inboxPath, ".md") + ".bak"
	if err := store.Write(backupPath, current); err != nil {
		return nil, fmt.Errorf("vault: back up inbox: %w", err)
	}
	if err := store.Write(inboxPath, []byte(updated)); err != nil {
		// Best-effort restore; the backup stays behind if this fails too.
		if restoreErr := store.Write(inboxPath, current); restoreErr == nil {
			_ = store.Delete(backupPath)
		}
		return nil, fmt.Errorf("vault: write inbox: %w", err)
	}
	_ = store.Delete(backupPath)

	doc := parser.Parse([]byte(updated), inboxPath)
	return &CaptureReport{
		Status:     "success",
		ItemText:   item,
		FilePath:   filepath.Join(abs, inboxPath),
		LineNumber: lineNumber,
		TaskCount:  len(doc.Tasks),
	}, nil
}

// cleanItemText flattens the item to a single trimmed line.
func cleanItemText(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

// insertEntry places entry in the inbox lines and returns the new slice
// with the entry's 1-based line number. New entries land right under the
// Quick Capture heading, above earlier ones; without the heading a fresh
// section is appended after the last non-blank line.
func insertEntry(lines []string, entry string) ([]string, int) {
	if i, ok := quickCaptureAt(lines); ok {
		return slices.Insert(lines, i, entry), i + 1
	}
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	section := []string{"", "## Quick Capture", "", entry}
	if end == 0 {
		section = section[1:]
	}
	return slices.Insert(lines, end, section...), end + len(section)
}

// quickCaptureAt returns the insertion index under the Quick Capture
// heading: the first blank or open-checkbox line after it, or the line
// directly below when neither follows.
func quickCaptureAt(lines []string) (int, bool) {
	for i, line := range lines {
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "## quick capture", "# quick capture":
		default:
			continue
		}
		for j := i + 1; j < len(lines); j++ {
			s := strings.TrimSpace(lines[j])
			if s == "" || strings.HasPrefix(s, "- [ ]") {
				return j, true
			}
		}
		return i + 1, true
	}
	return 0, false
}
