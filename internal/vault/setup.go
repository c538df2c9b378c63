package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/merrow/gtdvault/internal/apperr"
	"github.com/merrow/gtdvault/internal/models"
	"github.com/merrow/gtdvault/internal/storage"
)

// gtdTemplates holds the starter content for the five standard files,
// keyed by base name.
var gtdTemplates = map[string]string{
	"inbox.md": `---
status: active
---

# Inbox

## Quick Capture

Capture everything here first, then process and organize.

`,
	"projects.md": `---
status: active
---

# Projects

## Active Projects

Projects with defined outcomes that require multiple steps.

`,
	"next-actions.md": `---
status: active
---

# Next Actions

## By Context

Context-organized actionable tasks that can be done immediately.

`,
	"waiting-for.md": `---
status: active
---

# Waiting For

## Delegated Items

Items waiting for someone else's response or action.

`,
	"someday-maybe.md": `---
status: someday
---

# Someday / Maybe

## Future Possibilities

Items that might be done someday but are not committed to now.

`,
}

// contextFiles lists the starter context files in creation order.
var contextFiles = []struct {
	name    string
	title   string
	context string
}{
	{"@calls", "📞 Calls Context", "calls"},
	{"@computer", "💻 Computer Context", "computer"},
	{"@errands", "🚗 Errands Context", "errands"},
	{"@home", "🏠 Home Context", "home"},
}

// contextFileContent renders a context file with an Obsidian Tasks query
// scoped to the context's @-mention.
func contextFileContent(title, context string) string {
	return fmt.Sprintf(`---
context: %s
---

# %s

`+"```tasks\nnot done\ndescription includes @%s\nsort by due\n```\n", context, title, context)
}

// SetupReport describes what a Setup run created versus found in place.
type SetupReport struct {
	Status         string   `json:"status"`
	VaultPath      string   `json:"vault_path"`
	Created        []string `json:"created"`
	AlreadyExisted []string `json:"already_existed"`
}

// Setup scaffolds the GTD structure inside the vault at vaultPath,
// creating the vault directory itself when missing. It never overwrites:
// every file and folder is created only if absent, and the report lists
// both groups. Status is "already_exists" when a run created nothing.
func Setup(vaultPath, folder string) (*SetupReport, error) {
	if strings.TrimSpace(vaultPath) == "" {
		return nil, apperr.Invalidf("vault: vault path is empty")
	}
	abs, err := filepath.Abs(vaultPath)
	if err != nil {
		return nil, fmt.Errorf("vault: resolve path: %w", err)
	}

	report := &SetupReport{Status: "success", VaultPath: abs}
	if _, err := os.Stat(abs); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("vault: stat vault directory: %w", err)
		}
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return nil, fmt.Errorf("vault: create vault directory: %w", err)
		}
		report.Created = append(report.Created, abs)
	}

	store, err := storage.NewFS(abs)
	if err != nil {
		return nil, err
	}
	layout := models.NewVaultLayout("", folder)

	// Record the folders up front; writing the files below creates any
	// that are missing.
	for _, dir := range []string{layout.GTDPath(), layout.ContextsDir()} {
		ok, err := store.Exists(dir)
		if err != nil {
			return nil, err
		}
		rel := filepath.ToSlash(dir) + "/"
		if ok {
			report.AlreadyExisted = append(report.AlreadyExisted, rel)
		} else {
			report.Created = append(report.Created, rel)
		}
	}

	for _, p := range layout.StandardFiles() {
		if err := scaffoldFile(store, p, gtdTemplates[filepath.Base(p)], report); err != nil {
			return nil, err
		}
	}
	for _, cf := range contextFiles {
		p := layout.ContextFilePath(cf.name)
		if err := scaffoldFile(store, p, contextFileContent(cf.title, cf.context), report); err != nil {
			return nil, err
		}
	}

	if len(report.Created) == 0 {
		report.Status = "already_exists"
	}
	return report, nil
}

// scaffoldFile writes content to p only when nothing exists there yet,
// updating the report either way.
func scaffoldFile(store storage.Provider, p, content string, report *SetupReport) error {
	ok, err := store.Exists(p)
	if err != nil {
		return err
	}
	rel := filepath.ToSlash(p)
	if ok {
		report.AlreadyExisted = append(report.AlreadyExisted, rel)
		return nil
	}
	if err := store.Write(p, []byte(content)); err != nil {
		return fmt.Errorf("vault: write %s: %w", rel, err)
	}
	report.Created = append(report.Created, rel)
	return nil
}
