package parser

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/merrow/gtdvault/internal/models"
)

// Checkbox lines follow the Obsidian Tasks shape: optional indentation, a
// dash, a single-character status marker in brackets, then the task text.
var checkboxRe = regexp.MustCompile(`^(\s*)- \[(.)\] (.+)$`)

// Inline marker patterns. Contexts and tags use Obsidian's word rules,
// projects reuse the wikilink syntax.
var (
	contextRe  = regexp.MustCompile(`@([\p{L}\p{N}_]+)`)
	wikilinkRe = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
	tagRe      = regexp.MustCompile(`#([\p{L}\p{N}_-]+)`)
	energyRe   = regexp.MustCompile(`🔥|💪|🚶`)
	priorityRe = regexp.MustCompile(`⏫|🔼|🔽`)
)

// Glyphs whose payloads are scanned by hand. The stopwatch includes a
// variation selector, so it is two runes long.
const (
	timeGlyph      = "⏱️"
	delegateGlyph  = "👤"
	dueGlyph       = "📅"
	scheduledGlyph = "⏳"
	startGlyph     = "🛫"
	doneGlyph      = "✅"
	recurGlyph     = "🔁"
)

var markerGlyphs = []string{
	timeGlyph, delegateGlyph, dueGlyph, scheduledGlyph, startGlyph,
	doneGlyph, recurGlyph, "🔥", "💪", "🚶", "⏫", "🔼", "🔽",
}

var dateTokenRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// ExtractTasks decodes every recognized checkbox task in body. Line numbers
// count from 1 relative to body. Inbox files recognize every checkbox item;
// all other files require a #task tag on the line.
func ExtractTasks(body string, role models.FileType) []models.Task {
	if strings.TrimSpace(body) == "" {
		return nil
	}

	var tasks []models.Task
	for n, line := range strings.Split(body, "\n") {
		m := checkboxRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		t := decodeTask(m[3])
		if role != models.FileTypeInbox && !hasTaskTag(t.Tags) {
			continue
		}
		t.IsCompleted = m[2] == "x" || m[2] == "X"
		t.RawText = line
		t.LineNumber = n + 1
		tasks = append(tasks, t)
	}
	return tasks
}

func hasTaskTag(tags []string) bool {
	for _, tag := range tags {
		if strings.EqualFold(tag, "#task") {
			return true
		}
	}
	return false
}

// span marks a half-open byte range of recognized marker text.
type span struct {
	start, end int
}

// decodeTask pulls every inline marker out of checkbox content. Matchers
// run in a fixed order and collect byte spans; the clean text is whatever
// survives once all spans are cut and whitespace collapses. The first
// occurrence wins for single-valued fields, but every occurrence is cut.
func decodeTask(content string) models.Task {
	var t models.Task
	var cut []span

	for i, m := range contextRe.FindAllStringIndex(content, -1) {
		cut = append(cut, span{m[0], m[1]})
		if i == 0 {
			t.Context = content[m[0]:m[1]]
		}
	}
	for i, m := range wikilinkRe.FindAllStringSubmatchIndex(content, -1) {
		cut = append(cut, span{m[0], m[1]})
		if i == 0 {
			name := content[m[2]:m[3]]
			if p := strings.IndexByte(name, '|'); p >= 0 {
				name = name[:p]
			}
			t.Project = strings.TrimSpace(name)
		}
	}
	for i, m := range energyRe.FindAllStringIndex(content, -1) {
		cut = append(cut, span{m[0], m[1]})
		if i == 0 {
			t.Energy = content[m[0]:m[1]]
		}
	}
	t.TimeEstimate = scanTime(content, &cut)
	t.DelegatedTo = scanPhrase(content, delegateGlyph, true, &cut)
	t.DueDate = scanDate(content, dueGlyph, &cut)
	t.ScheduledDate = scanDate(content, scheduledGlyph, &cut)
	t.StartDate = scanDate(content, startGlyph, &cut)
	t.DoneDate = scanDate(content, doneGlyph, &cut)
	for i, m := range priorityRe.FindAllStringIndex(content, -1) {
		cut = append(cut, span{m[0], m[1]})
		if i == 0 {
			t.Priority = content[m[0]:m[1]]
		}
	}
	t.Recurrence = scanPhrase(content, recurGlyph, false, &cut)
	for _, m := range tagRe.FindAllStringIndex(content, -1) {
		cut = append(cut, span{m[0], m[1]})
		t.Tags = append(t.Tags, content[m[0]:m[1]])
	}

	t.Text = stripSpans(content, cut)
	return t
}

// scanTime decodes stopwatch estimates. Attached digits or a single space
// plus an all-digit token carry the value. An attached non-numeric token
// is cut together with the glyph; a spaced non-numeric token survives.
func scanTime(content string, cut *[]span) *int {
	var est *int
	i := 0
	for {
		j := strings.Index(content[i:], timeGlyph)
		if j < 0 {
			return est
		}
		start := i + j
		end := start + len(timeGlyph)
		if d := digitRun(content, end); d > end {
			if n, err := strconv.Atoi(content[end:d]); err == nil && est == nil {
				est = &n
			}
			end = d
		} else if t := tokenEnd(content, end); t > end {
			end = t
		} else if end < len(content) && content[end] == ' ' {
			if t := tokenEnd(content, end+1); t > end+1 && digitRun(content, end+1) == t {
				if n, err := strconv.Atoi(content[end+1 : t]); err == nil && est == nil {
					est = &n
				}
				end = t
			}
		}
		*cut = append(*cut, span{start, end})
		i = end
	}
}

// scanDate decodes one dated marker class. The payload must sit directly
// against the glyph and name a real calendar day; a malformed payload
// token is cut along with the glyph and leaves the field unset.
func scanDate(content, glyph string, cut *[]span) *time.Time {
	var date *time.Time
	i := 0
	for {
		j := strings.Index(content[i:], glyph)
		if j < 0 {
			return date
		}
		start := i + j
		end := start + len(glyph)
		if m := dateTokenRe.FindString(content[end:]); m != "" {
			if ts, err := time.Parse("2006-01-02", m); err == nil && date == nil {
				date = &ts
			}
			end += len(m)
		} else if t := tokenEnd(content, end); t > end {
			end = t
		}
		*cut = append(*cut, span{start, end})
		i = end
	}
}

// scanPhrase decodes free-text payloads: delegate names and recurrence
// phrases. The payload runs token by token until the line ends or a token
// opens another marker. Delegates may put one space between glyph and
// name; a recurrence phrase must attach directly or the glyph stays put.
func scanPhrase(content, glyph string, spaceOK bool, cut *[]span) string {
	var phrase string
	i := 0
	for {
		j := strings.Index(content[i:], glyph)
		if j < 0 {
			return phrase
		}
		start := i + j
		gEnd := start + len(glyph)
		payload := gEnd
		if spaceOK && payload < len(content) && content[payload] == ' ' {
			payload++
		}
		end := payloadEnd(content, payload)
		switch {
		case end > payload:
			if phrase == "" {
				phrase = content[payload:end]
			}
			*cut = append(*cut, span{start, end})
		case spaceOK:
			// marker with an empty name: cut the glyph alone
			*cut = append(*cut, span{start, gEnd})
			end = gEnd
		default:
			end = gEnd
		}
		i = end
	}
}

// payloadEnd walks tokens starting exactly at i, stopping before a token
// that opens another marker. Returns i when no payload starts there.
func payloadEnd(s string, i int) int {
	if i >= len(s) {
		return i
	}
	if r, _ := utf8.DecodeRuneInString(s[i:]); unicode.IsSpace(r) {
		return i
	}
	end := i
	for {
		tStart, tEnd := nextToken(s, end)
		if tStart == tEnd || startsMarker(s[tStart:tEnd]) {
			return end
		}
		end = tEnd
	}
}

// startsMarker reports whether a token opens an inline marker.
func startsMarker(tok string) bool {
	if strings.HasPrefix(tok, "[[") {
		return true
	}
	if len(tok) > 1 {
		r, _ := utf8.DecodeRuneInString(tok[1:])
		if tok[0] == '@' && isWordRune(r) {
			return true
		}
		if tok[0] == '#' && (isWordRune(r) || r == '-') {
			return true
		}
	}
	for _, g := range markerGlyphs {
		if strings.HasPrefix(tok, g) {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// nextToken returns the bounds of the first whitespace-delimited token at
// or after i. An empty token (start == end) means end of string.
func nextToken(s string, i int) (int, int) {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	start := i
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return start, i
}

func digitRun(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

func tokenEnd(s string, i int) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

// stripSpans cuts every span out of s, collapses whitespace runs to single
// spaces, and trims. Overlapping spans are tolerated.
func stripSpans(s string, spans []span) string {
	if len(spans) > 0 {
		sorted := make([]span, len(spans))
		copy(sorted, spans)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].start < sorted[j].start })

		var b strings.Builder
		pos := 0
		for _, sp := range sorted {
			if sp.start > pos {
				b.WriteString(s[pos:sp.start])
			}
			if sp.end > pos {
				pos = sp.end
			}
		}
		if pos < len(s) {
			b.WriteString(s[pos:])
		}
		s = b.String()
	}
	return strings.Join(strings.Fields(s), " ")
}
