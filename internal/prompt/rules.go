// Package prompt holds the GTD prompt library: the static methodology
// rules that guide client-side reasoning, the core prompt builders, and
// a registry the MCP server serves them from. The rules are keyword
// patterns only; the actual analysis happens in the LLM client.
package prompt

import (
	"maps"
	"slices"
	"strings"
)

// Categories accepted during clarification. Unlike vault file roles,
// this set includes project: clarification may promote an item before
// any file exists for it.
var validCategories = map[string]bool{
	"next-action":   true,
	"project":       true,
	"waiting-for":   true,
	"someday-maybe": true,
	"reference":     true,
	"trash":         true,
}

// ClarifyingQuestions are the core questions of the clarify phase.
var ClarifyingQuestions = []string{
	"What is this item about?",
	"Is this actionable? (Can you visualize yourself doing something about it?)",
	"If actionable: What's the successful outcome or purpose?",
	"If actionable: What's the very next physical action required?",
	"What context or tool is needed for this action?",
	"How much time will this action take?",
	"What energy level is required?",
	"Am I the right person to do this, or should it be delegated?",
	"If not actionable: Is this reference material, someday/maybe, or trash?",
	"Does this relate to any existing projects or areas of focus?",
}

// CategoryDescriptions explains each clarify category for prompt text.
var CategoryDescriptions = map[string]string{
	"next-action":   "A single, specific physical action that can be completed in one session. Must be concrete and doable.",
	"project":       "A desired outcome requiring multiple actions. Has a clear definition of 'done' and needs planning.",
	"waiting-for":   "Actions delegated to others or pending external factors. Track what you're waiting to receive.",
	"someday-maybe": "Things you might want to do someday but are not committed to right now. Future possibilities.",
	"reference":     "Information that might be useful later but requires no action. Keep for potential future reference.",
	"trash":         "Items with no value that can be discarded. Neither actionable nor worth keeping as reference.",
}

// ContextDefinitions explains each GTD context for prompt text.
var ContextDefinitions = map[string]string{
	"@home":     "Actions that can only be done at home or require home resources",
	"@computer": "Actions requiring a computer, internet, or digital tools",
	"@calls":    "Actions requiring phone calls or voice conversations",
	"@phone":    "Actions that can be done on a mobile phone (calls, texts, mobile apps)",
	"@errands":  "Actions to do while out and about (shopping, banking, etc.)",
	"@office":   "Actions that require being at the office or workplace",
	"@agenda":   "Items to discuss with specific people during meetings",
	"@waiting":  "Items delegated to others or waiting on external factors",
	"@anywhere": "Actions that can be done in any location (thinking, reading, etc.)",
}

// PhaseDescriptions explains the five GTD workflow phases.
var PhaseDescriptions = map[string]string{
	"capture":  "Collect and gather all inputs and commitments in trusted external systems",
	"clarify":  "Process captured items to determine what they mean and what action is required",
	"organize": "Sort and categorize clarified items into appropriate lists and folders",
	"reflect":  "Review your system regularly to maintain perspective and make choices",
	"engage":   "Make choices about actions to take based on context, time, and energy",
}

// DecisionTree is the full inbox processing decision tree embedded in
// clarification prompts.
const DecisionTree = `GTD Decision Tree for Inbox Processing:

1. IS IT ACTIONABLE?
   │
   ├─ NO → Non-Actionable Items:
   │   ├─ Reference: Useful information for future
   │   ├─ Someday/Maybe: Might want to do later
   │   └─ Trash: No value, discard
   │
   └─ YES → Actionable Items:
       │
       ├─ 2. WHAT'S THE OUTCOME?
       │   ├─ Multiple actions needed → PROJECT
       │   └─ Single action → Continue to 3
       │
       ├─ 3. WHAT'S THE NEXT ACTION?
       │   ├─ Takes less than 2 minutes → DO IT NOW
       │   └─ Takes more than 2 minutes → Continue to 4
       │
       └─ 4. WHO DOES IT?
           ├─ Someone else → DELEGATE → Waiting For
           └─ You → NEXT ACTION (with appropriate context)

Key Principles:
- Be specific about physical actions (not outcomes)
- One item = one next action (break down complex items)
- Every actionable item needs a context (@home, @computer, etc.)
- Projects need clear outcomes and support material
- Waiting For items need follow-up dates and responsible parties`

// QuickReference is the condensed category cheat sheet for fast
// categorization prompts.
const QuickReference = `Quick GTD Categories:
• Next Action: Single specific action you can complete
• Project: Outcome requiring multiple actions
• Waiting For: Delegated or pending external factors
• Someday/Maybe: Future possibilities, not committed
• Reference: Info to keep, no action needed
• Trash: No value, discard

Common Contexts:
@calls @computer @home @office @errands @anywhere`

// contextPatterns maps contexts to their trigger keywords. Order
// matters: suggestions come back in this order.
var contextPatterns = []struct {
	context  string
	keywords []string
}{
	{"@calls", []string{
		"call", "phone", "dial", "contact", "reach out", "speak with",
		"discuss with", "talk to", "ring", "telephone", "voicemail",
		"conference call", "zoom", "meeting call",
	}},
	{"@computer", []string{
		"email", "write", "code", "research", "analyze", "review", "type",
		"document", "spreadsheet", "presentation", "website", "online",
		"internet", "browse", "download", "upload", "backup", "design",
		"edit", "format", "calculate", "database", "software",
	}},
	{"@home", []string{
		"home", "house", "family", "personal", "weekend", "evening",
		"kitchen", "garden", "yard", "garage", "basement", "attic",
		"laundry", "cleaning", "maintenance", "repair", "organize closet",
	}},
	{"@office", []string{
		"office", "work", "workplace", "meeting", "colleague", "boss",
		"conference room", "desk", "team", "department", "business hours",
		"during work", "at work",
	}},
	{"@errands", []string{
		"buy", "pick up", "shop", "store", "bank", "post office",
		"pharmacy", "grocery", "mall", "shopping", "purchase", "get",
		"collect", "return", "exchange", "drop off", "deliver",
		"gas station", "dry cleaner", "library",
	}},
	{"@phone", []string{
		"text", "sms", "mobile", "smartphone", "app", "notification",
		"mobile app", "check phone", "mobile call", "cell phone",
	}},
	{"@anywhere", []string{
		"think", "brainstorm", "consider", "reflect", "meditate", "plan",
		"read", "review notes", "ponder", "contemplate", "decide",
	}},
}

// twoMinuteIndicators hint that an action fits the two-minute rule.
var twoMinuteIndicators = []string{
	"quick", "simple", "just", "quickly", "brief", "short", "fast",
	"immediately", "rapid", "swift", "instant", "moment", "second",
	"minute", "easy", "straightforward",
}

// projectIndicators hint that an item needs multiple actions.
var projectIndicators = []string{
	"project", "initiative", "implement", "develop", "create", "build",
	"design", "plan", "organize", "establish", "set up", "launch",
	"complete", "finish", "multiple", "several", "various", "many",
	"comprehensive", "full", "entire", "whole", "system", "process",
	"workflow", "procedure", "program", "campaign", "strategy",
}

// delegationPatterns hint that an item belongs on the waiting-for list.
var delegationPatterns = []string{
	"waiting", "pending", "assigned", "delegated", "asked", "requested",
	"depends on", "blocked by", "waiting for", "expecting",
	"anticipating", "scheduled", "follow up", "check with", "remind",
	"chase", "waiting to hear", "pending response", "outstanding",
}

// priorityIndicators keyed by priority level.
var priorityIndicators = map[string][]string{
	"high":   {"urgent", "asap", "immediately", "critical", "emergency", "priority", "important"},
	"medium": {"soon", "timely", "reasonable", "normal", "standard"},
	"low":    {"someday", "eventually", "when possible", "low priority", "nice to have"},
}

// timeIndicators keyed by rough effort bucket.
var timeIndicators = map[string][]string{
	"quick":  {"minute", "minutes", "quick", "fast", "brief", "short"},
	"medium": {"hour", "hours", "session", "morning", "afternoon"},
	"long":   {"day", "days", "week", "weeks", "month", "months", "long term"},
}

// ValidCategory reports whether category is a clarify-phase category.
func ValidCategory(category string) bool {
	return validCategories[category]
}

// ValidContext reports whether context is a defined GTD context.
func ValidContext(context string) bool {
	_, ok := ContextDefinitions[context]
	return ok
}

// SuggestContexts returns the contexts whose keywords appear in text,
// in pattern-table order. One keyword hit claims a context; matching is
// plain lowercase substring search, nothing smarter.
func SuggestContexts(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	lower := strings.ToLower(text)
	var suggested []string
	for _, p := range contextPatterns {
		for _, keyword := range p.keywords {
			if strings.Contains(lower, keyword) {
				suggested = append(suggested, p.context)
				break
			}
		}
	}
	return suggested
}

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// DetectTwoMinute reports whether text hints at a two-minute task.
func DetectTwoMinute(text string) bool {
	return containsAny(text, twoMinuteIndicators)
}

// DetectProject reports whether text hints at multi-step work.
func DetectProject(text string) bool {
	return containsAny(text, projectIndicators)
}

// DetectDelegation reports whether text hints at delegated or blocked
// work.
func DetectDelegation(text string) bool {
	return containsAny(text, delegationPatterns)
}

// PriorityHint returns "high", "medium" or "low" when text carries a
// priority keyword, otherwise "". High and low outrank medium so that
// "important but standard" resolves high.
func PriorityHint(text string) string {
	for _, level := range []string{"high", "low", "medium"} {
		if containsAny(text, priorityIndicators[level]) {
			return level
		}
	}
	return ""
}

// TimeHint returns "quick", "medium" or "long" when text carries a
// duration keyword, otherwise "".
func TimeHint(text string) string {
	for _, bucket := range []string{"quick", "medium", "long"} {
		if containsAny(text, timeIndicators[bucket]) {
			return bucket
		}
	}
	return ""
}

// MethodologyContext bundles the static rule material for prompt
// generation and MCP clients that want the raw tables.
type MethodologyContext struct {
	ClarifyingQuestions  []string            `json:"clarifying_questions"`
	DecisionTree         string              `json:"decision_tree"`
	QuickReference       string              `json:"quick_reference"`
	ContextPatterns      map[string][]string `json:"context_patterns"`
	CategoryDescriptions map[string]string   `json:"category_descriptions"`
	ContextDefinitions   map[string]string   `json:"context_definitions"`
	Phases               map[string]string   `json:"gtd_phases"`
	TwoMinuteIndicators  []string            `json:"two_minute_indicators"`
	ProjectIndicators    []string            `json:"project_indicators"`
	DelegationPatterns   []string            `json:"delegation_patterns"`
	PriorityIndicators   map[string][]string `json:"priority_indicators"`
	TimeIndicators       map[string][]string `json:"time_indicators"`
}

// Methodology returns a fresh context bag. Maps and slices are copies;
// callers can extend them without touching the tables here.
func Methodology() MethodologyContext {
	patterns := make(map[string][]string, len(contextPatterns))
	for _, p := range contextPatterns {
		patterns[p.context] = slices.Clone(p.keywords)
	}
	return MethodologyContext{
		ClarifyingQuestions:  slices.Clone(ClarifyingQuestions),
		DecisionTree:         DecisionTree,
		QuickReference:       QuickReference,
		ContextPatterns:      patterns,
		CategoryDescriptions: maps.Clone(CategoryDescriptions),
		ContextDefinitions:   maps.Clone(ContextDefinitions),
		Phases:               maps.Clone(PhaseDescriptions),
		TwoMinuteIndicators:  slices.Clone(twoMinuteIndicators),
		ProjectIndicators:    slices.Clone(projectIndicators),
		DelegationPatterns:   slices.Clone(delegationPatterns),
		PriorityIndicators:   cloneKeyed(priorityIndicators),
		TimeIndicators:       cloneKeyed(timeIndicators),
	}
}

func cloneKeyed(m map[string][]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for key, list := range m {
		out[key] = slices.Clone(list)
	}
	return out
}

// ItemHints carries the static keyword signals found in one item.
type ItemHints struct {
	Contexts   []string `json:"contexts"`
	TwoMinute  bool     `json:"two_minute_task"`
	Project    bool     `json:"project_indicators"`
	Delegation bool     `json:"delegation_indicators"`
	Priority   string   `json:"priority_hint,omitempty"`
	Time       string   `json:"time_hint,omitempty"`
}

// AnalyzeItem runs every keyword detector over text and returns the
// combined hints.
func AnalyzeItem(text string) ItemHints {
	return ItemHints{
		Contexts:   SuggestContexts(text),
		TwoMinute:  DetectTwoMinute(text),
		Project:    DetectProject(text),
		Delegation: DetectDelegation(text),
		Priority:   PriorityHint(text),
		Time:       TimeHint(text),
	}
}
