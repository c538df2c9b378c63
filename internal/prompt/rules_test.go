package prompt

import (
	"slices"
	"testing"
)

func TestSuggestContexts(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single match", "Call the dentist", []string{"@calls"}},
		{"two contexts", "Call dentist and buy milk", []string{"@calls", "@errands"}},
		{"table order wins", "Email the plumber then call them back", []string{"@calls", "@computer"}},
		{"one hit per context", "buy groceries at the store and shop for shoes", []string{"@errands"}},
		{"no match", "xyzzy", nil},
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"case insensitive", "CALL MOM", []string{"@calls"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestContexts(tt.text)
			if !slices.Equal(got, tt.want) {
				t.Errorf("SuggestContexts(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestValidCategory(t *testing.T) {
	for _, category := range []string{"next-action", "project", "waiting-for", "someday-maybe", "reference", "trash"} {
		if !ValidCategory(category) {
			t.Errorf("ValidCategory(%q) = false", category)
		}
	}
	for _, category := range []string{"inbox", "Next-Action", "next action", ""} {
		if ValidCategory(category) {
			t.Errorf("ValidCategory(%q) = true", category)
		}
	}
}

func TestValidContext(t *testing.T) {
	for _, context := range []string{"@home", "@computer", "@calls", "@phone", "@errands", "@office", "@agenda", "@waiting", "@anywhere"} {
		if !ValidContext(context) {
			t.Errorf("ValidContext(%q) = false", context)
		}
	}
	for _, context := range []string{"@gym", "home", ""} {
		if ValidContext(context) {
			t.Errorf("ValidContext(%q) = true", context)
		}
	}
}

func TestDetectors(t *testing.T) {
	if !DetectTwoMinute("just a quick note to self") {
		t.Error("DetectTwoMinute missed an obvious quick task")
	}
	if DetectTwoMinute("renovate the bathroom") {
		t.Error("DetectTwoMinute fired without indicators")
	}

	if !DetectProject("plan the product launch") {
		t.Error("DetectProject missed a planning item")
	}
	if DetectProject("buy milk") {
		t.Error("DetectProject fired without indicators")
	}

	if !DetectDelegation("waiting for legal to respond") {
		t.Error("DetectDelegation missed a waiting item")
	}
	if DetectDelegation("buy milk") {
		t.Error("DetectDelegation fired without indicators")
	}
}

func TestPriorityHint(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"urgent: renew passport", "high"},
		{"nice to have for the den", "low"},
		{"standard maintenance sweep", "medium"},
		{"urgent but nice to have", "high"},
		{"someday soon", "low"},
		{"renew passport", ""},
	}
	for _, tt := range tests {
		if got := PriorityHint(tt.text); got != tt.want {
			t.Errorf("PriorityHint(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestTimeHint(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"five minutes of filing", "quick"},
		{"block out two hours", "medium"},
		{"a week of gutting drywall", "long"},
		{"renew passport", ""},
	}
	for _, tt := range tests {
		if got := TimeHint(tt.text); got != tt.want {
			t.Errorf("TimeHint(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestAnalyzeItem(t *testing.T) {
	hints := AnalyzeItem("Urgent: quickly email the launch plan to the team")

	if !slices.Contains(hints.Contexts, "@computer") {
		t.Errorf("contexts = %v, want @computer", hints.Contexts)
	}
	if !hints.TwoMinute {
		t.Error("two-minute hint = false, want true")
	}
	if !hints.Project {
		t.Error("project hint = false, want true")
	}
	if hints.Delegation {
		t.Error("delegation hint = true, want false")
	}
	if hints.Priority != "high" {
		t.Errorf("priority = %q, want high", hints.Priority)
	}
	if hints.Time != "quick" {
		t.Errorf("time = %q, want quick", hints.Time)
	}

	empty := AnalyzeItem("")
	if len(empty.Contexts) != 0 || empty.TwoMinute || empty.Priority != "" {
		t.Errorf("AnalyzeItem(\"\") = %+v, want zero hints", empty)
	}
}

func TestMethodology(t *testing.T) {
	m := Methodology()

	if len(m.ClarifyingQuestions) != 10 {
		t.Errorf("clarifying questions = %d, want 10", len(m.ClarifyingQuestions))
	}
	if len(m.ContextDefinitions) != 9 {
		t.Errorf("context definitions = %d, want 9", len(m.ContextDefinitions))
	}
	if _, ok := m.ContextDefinitions["@anywhere"]; !ok {
		t.Error("missing @anywhere definition")
	}
	if len(m.CategoryDescriptions) != 6 {
		t.Errorf("category descriptions = %d, want 6", len(m.CategoryDescriptions))
	}
	if len(m.Phases) != 5 {
		t.Errorf("phases = %d, want 5", len(m.Phases))
	}
	if m.DecisionTree == "" || m.QuickReference == "" {
		t.Error("decision tree or quick reference empty")
	}
	if len(m.PriorityIndicators["high"]) == 0 || len(m.TimeIndicators["long"]) == 0 {
		t.Error("indicator tables empty")
	}

	m.ContextPatterns["@calls"][0] = "mutated"
	m.PriorityIndicators["high"][0] = "mutated"
	fresh := Methodology()
	if fresh.ContextPatterns["@calls"][0] != "call" {
		t.Error("context patterns shared between Methodology calls")
	}
	if fresh.PriorityIndicators["high"][0] != "urgent" {
		t.Error("priority indicators shared between Methodology calls")
	}
}
