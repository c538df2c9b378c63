package models

import "testing"

func TestDetectFileType(t *testing.T) {
	cases := []struct {
		path string
		want FileType
	}{
		{"gtd/inbox.md", FileTypeInbox},
		{"gtd/projects.md", FileTypeProjects},
		{"gtd/next-actions.md", FileTypeNextActions},
		{"gtd/waiting-for.md", FileTypeWaitingFor},
		{"gtd/someday-maybe.md", FileTypeSomedayMaybe},
		{"vault/gtd/inbox.md", FileTypeInbox},
		{"inbox.md", FileTypeInbox},
		{"gtd/contexts/@calls.md", FileTypeContext},
		{"gtd/contexts/@home.md", FileTypeContext},
		{"gtd/contexts/deep/more.md", FileTypeContext},
		{"gtd/contexts/errands.md", FileTypeContext},
		{"gtd/reference.md", FileTypeUnknown},
		{"notes/meeting.md", FileTypeUnknown},
		{"random.md", FileTypeUnknown},
		{"", FileTypeUnknown},
	}
	for _, tc := range cases {
		if got := DetectFileType(tc.path); got != tc.want {
			t.Errorf("DetectFileType(%q) = %s, want %s", tc.path, got, tc.want)
		}
	}
}

func TestDetectFileType_NameBeatsContextsFolder(t *testing.T) {
	// An exact standard name wins even inside a contexts directory.
	if got := DetectFileType("gtd/contexts/inbox.md"); got != FileTypeInbox {
		t.Errorf("got %s, want %s", got, FileTypeInbox)
	}
}

func TestParseFileType(t *testing.T) {
	for _, s := range []string{
		"inbox", "projects", "next-actions", "waiting-for",
		"someday-maybe", "context", "unknown",
	} {
		ft, ok := ParseFileType(s)
		if !ok || ft.String() != s {
			t.Errorf("ParseFileType(%q) = %s, %v", s, ft, ok)
		}
	}

	if _, ok := ParseFileType("reference"); ok {
		t.Error("reference is not a recognized role")
	}
	ft, ok := ParseFileType("")
	if ok || ft != FileTypeUnknown {
		t.Errorf("ParseFileType(\"\") = %s, %v; want unknown, false", ft, ok)
	}
}
