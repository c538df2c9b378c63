// Package parser turns raw vault markdown into structured GTD documents:
// YAML header metadata, checkbox tasks with their inline markers, and links.
package parser

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/merrow/gtdvault/internal/models"
)

var titleRe = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// Header date fields accept a plain day, full timestamps with either
// separator, and a minute-precision timestamp.
var metaDateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// Parse decodes one vault file into a Document. It never fails: a broken
// header, bad dates, and stray markers all degrade to defaults so a damaged
// file still yields a usable Document.
func Parse(content []byte, path string) *models.Document {
	raw := string(content)
	meta, body, offset := splitHeader(raw)
	role := models.DetectFileType(path)

	tasks := ExtractTasks(body, role)
	for i := range tasks {
		tasks[i].LineNumber += offset
	}
	links := ExtractLinks(body)
	for i := range links {
		links[i].LineNumber += offset
	}

	return &models.Document{
		Path:       path,
		Title:      deriveTitle(body, path),
		Content:    body,
		RawContent: raw,
		Role:       role,
		Meta:       meta,
		Tasks:      tasks,
		Links:      links,
	}
}

// splitHeader separates the YAML header (between --- delimiter lines at the
// top of the file) from the body and reports how many raw lines the header
// consumed. At most one blank line after the closing delimiter is dropped,
// so the body is always a byte suffix of the input. A missing closing
// delimiter or undecodable YAML turns the whole input into body.
func splitHeader(raw string) (models.Metadata, string, int) {
	lines := strings.Split(raw, "\n")
	if !isHeaderDelim(lines[0]) {
		return models.Metadata{}, raw, 0
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if isHeaderDelim(lines[i]) {
			closing = i
			break
		}
	}
	if closing < 0 {
		return models.Metadata{}, raw, 0
	}

	var fm map[string]any
	block := strings.Join(lines[1:closing], "\n")
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return models.Metadata{}, raw, 0
	}

	skip := closing + 1
	if skip < len(lines) && strings.TrimRight(lines[skip], "\r") == "" {
		skip++
	}
	return decodeMetadata(fm), strings.Join(lines[skip:], "\n"), skip
}

func isHeaderDelim(line string) bool {
	return strings.TrimRight(line, " \t\r") == "---"
}

// decodeMetadata maps raw header fields onto Metadata. Recognized keys with
// the wrong shape are preserved under Extra instead of being dropped.
func decodeMetadata(fm map[string]any) models.Metadata {
	var meta models.Metadata
	for key, raw := range fm {
		switch key {
		case "outcome":
			meta.Outcome = metaString(&meta, key, raw)
		case "status":
			meta.Status = metaString(&meta, key, raw)
		case "area":
			meta.Area = metaString(&meta, key, raw)
		case "review_date":
			meta.ReviewDate = metaDate(&meta, key, raw)
		case "created_date":
			meta.CreatedDate = metaDate(&meta, key, raw)
		case "completed_date":
			meta.CompletedDate = metaDate(&meta, key, raw)
		case "tags":
			meta.Tags = metaTags(&meta, key, raw)
		default:
			putExtra(&meta, key, raw)
		}
	}
	return meta
}

func metaString(meta *models.Metadata, key string, raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	}
	putExtra(meta, key, raw)
	return ""
}

func metaDate(meta *models.Metadata, key string, raw any) *time.Time {
	switch v := raw.(type) {
	case nil:
		return nil
	case time.Time:
		return &v
	case string:
		if v == "" {
			return nil
		}
		for _, layout := range metaDateLayouts {
			if ts, err := time.Parse(layout, v); err == nil {
				return &ts
			}
		}
	}
	putExtra(meta, key, raw)
	return nil
}

func metaTags(meta *models.Metadata, key string, raw any) []string {
	if raw == nil {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		putExtra(meta, key, raw)
		return nil
	}
	var tags []string
	for _, item := range list {
		switch v := item.(type) {
		case string:
			tags = append(tags, v)
		case bool, int, int64, uint64, float64:
			tags = append(tags, fmt.Sprint(v))
		}
	}
	return tags
}

func putExtra(meta *models.Metadata, key string, raw any) {
	if meta.Extra == nil {
		meta.Extra = map[string]models.MetaValue{}
	}
	meta.Extra[key] = models.MetaFromAny(raw)
}

// deriveTitle returns the first H1 heading of the body, or the file name
// without its extension when the body has none.
func deriveTitle(body, path string) string {
	if m := titleRe.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1])
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
