package parser

import (
	"regexp"
	"strings"

	"github.com/merrow/gtdvault/internal/models"
)

var markdownLinkRe = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)

// ExtractLinks collects @context mentions, wikilinks, and markdown links
// from body. Results are grouped per line in that order; line numbers
// count from 1 relative to body.
func ExtractLinks(body string) []models.Link {
	var links []models.Link
	for n, line := range strings.Split(body, "\n") {
		num := n + 1

		for _, m := range contextRe.FindAllStringSubmatch(line, -1) {
			links = append(links, models.Link{
				Text:       m[1],
				Target:     "@" + m[1],
				LineNumber: num,
			})
		}

		for _, m := range wikilinkRe.FindAllStringSubmatch(line, -1) {
			target := strings.TrimSpace(m[1])
			if target == "" {
				continue
			}
			text := target
			if head, alias, ok := strings.Cut(target, "|"); ok {
				target = strings.TrimSpace(head)
				text = strings.TrimSpace(alias)
			}
			if text == "" {
				continue
			}
			links = append(links, models.Link{
				Text:       text,
				Target:     target,
				LineNumber: num,
			})
		}

		for _, m := range markdownLinkRe.FindAllStringSubmatch(line, -1) {
			text, target := m[1], m[2]
			if text == "" || target == "" {
				continue
			}
			links = append(links, models.Link{
				Text:       text,
				Target:     target,
				IsExternal: isExternalURL(target),
				LineNumber: num,
			})
		}
	}
	return links
}

// isExternalURL reports whether target leaves the vault. Only explicit
// http and https URLs count; every other target is a vault reference.
func isExternalURL(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}
