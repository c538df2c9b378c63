package prompt

import (
	"fmt"
	"strings"
)

// DefaultContexts is offered when a caller does not pass a context list.
var DefaultContexts = []string{"@home", "@computer", "@calls", "@errands", "@office"}

// DefaultBatchLimit caps how many items one batch prompt takes on.
const DefaultBatchLimit = 20

const inboxClarificationSteps = `
## GTD Clarification Process

Follow these steps to properly categorize this item:

### 1. Actionability Assessment
- **Is this actionable?** Does it require any action from me?
- **If not actionable:** Categorize as Reference (save for later) or Trash (delete)
- **If actionable:** Continue to step 2

### 2. Outcome Definition
- **What successful outcome would look like?** Be specific
- **Is this a single action or multiple steps?**
- **If single action:** It's a Next Action
- **If multiple steps:** It's a Project (outcome + next action)

### 3. Time Assessment
- **Can this be done in 2 minutes or less?** If yes, recommend doing it now
- **If longer:** Proceed with categorization

### 4. Category Assignment
Choose the most appropriate GTD category:
- **Next Action:** Single physical action ready to be done
- **Project:** Outcome requiring multiple steps (extract first next action)
- **Waiting For:** Delegated or dependent on others
- **Someday/Maybe:** Not committed to doing now but might later
- **Reference:** Information to keep for future use

### 5. Context Assignment
If it's a Next Action, assign appropriate context:
- **@calls:** Requires making phone calls
- **@computer:** Requires computer/internet
- **@home:** Can only be done at home
- **@errands:** Done while out running errands
- **@office:** Requires being at the office

### 6. Project Association
If relevant to existing projects, identify which project this supports.
`

const inboxClarificationContract = `
## Required Response Format

Provide your analysis in this JSON structure:

` + "```json\n" + `{
  "item": %q,
  "actionable": true/false,
  "category": "next-action" | "project" | "waiting-for" | "someday-maybe" | "reference" | "trash",
  "suggested_text": "Improved clear action description",
  "context": "@context" or null,
  "creates_new_project": true/false,
  "new_project": {
    "project_name": "Clear project name",
    "outcome": "Specific successful outcome",
    "first_next_action": "First physical action",
    "context": "@context",
    "reasoning": "Why this needs to be a project"
  } or null,
  "associates_existing_project": true/false,
  "existing_project": {
    "project_name": "Existing project name",
    "relevance_score": 0.0-1.0,
    "reasoning": "Why this relates to this project",
    "suggested_action": "Specific action to add"
  } or null,
  "confidence": "high" | "medium" | "low",
  "reasoning": "Step-by-step explanation of categorization decision",
  "time_estimate": minutes_to_complete or null,
  "energy_level": "high" | "medium" | "low" or null,
  "delegated_to": "person_name" or null
}
` + "```" + `

Focus on clarity, actionability, and proper GTD methodology. Provide detailed
reasoning for your categorization decisions.`

// InboxClarification builds the full clarify-phase prompt for a single
// captured item. Pass nil contexts to offer the default set.
func InboxClarification(item string, existingProjects, contexts []string) string {
	if len(contexts) == 0 {
		contexts = DefaultContexts
	}
	var b strings.Builder
	b.WriteString("# GTD Inbox Clarification\n\n")
	b.WriteString("Analyze this captured inbox item following David Allen's GTD methodology:\n\n")
	fmt.Fprintf(&b, "**Inbox Item:** %q\n", item)
	b.WriteString(bulletSection("Existing Projects for Association", existingProjects))
	b.WriteString(bulletSection("Available GTD Contexts", contexts))
	b.WriteString(inboxClarificationSteps)
	fmt.Fprintf(&b, inboxClarificationContract, item)
	return b.String()
}

const quickCategorizeTemplate = `# Quick GTD Categorization

Quickly categorize this simple inbox item:

**Item:** %q

## Fast Assessment Rules

1. **Obvious Actions:** If it's clearly a single action, categorize as Next Action with context
2. **Clear References:** If it's obviously information to save, mark as Reference
3. **Simple Delegations:** If it's waiting on someone specific, mark as Waiting For
4. **Future Ideas:** If it's clearly a someday/maybe item, categorize accordingly
5. **Complex Items:** If unclear or complex, recommend using full inbox_clarification

## Quick Response Format

` + "```json\n" + `{
  "item": %q,
  "actionable": true/false,
  "category": "next-action" | "project" | "waiting-for" | "someday-maybe" | "reference" | "trash",
  "suggested_text": "Clear action if needed",
  "context": "@context" or null,
  "confidence": "high" | "medium" | "low",
  "reasoning": "Brief explanation",
  "time_estimate": minutes or null,
  "needs_full_analysis": true/false
}
` + "```" + `

If needs_full_analysis is true, recommend using the full inbox_clarification
prompt instead.`

// QuickCategorize builds the streamlined prompt for clear-cut items.
func QuickCategorize(item string) string {
	return fmt.Sprintf(quickCategorizeTemplate, item, item)
}

const batchStrategy = `
## Batch Processing Strategy

### 1. Pattern Recognition
- **Group Similar Items:** Identify items that relate to the same project or theme
- **Common Contexts:** Notice items requiring the same context (@calls, @computer, etc.)
- **Delegation Patterns:** Identify items waiting on the same person
- **Project Indicators:** Spot items that suggest new projects

### 2. Efficiency Guidelines
- **Process Similar Items Together:** Group by context or project for consistency
- **Identify Project Clusters:** Multiple related items may indicate a new project
- **Batch Context Assignment:** Assign contexts consistently across similar items
- **Standard Processing:** Use same quality standards as individual processing

### 3. Grouping Logic
Create logical groups based on:
- **Project Relevance:** Items supporting the same outcome
- **Context Similarity:** Items requiring the same physical context
- **Theme Coherence:** Items related to the same area of responsibility
- **Processing Order:** Dependencies between items
`

const batchContract = `
## Required Response Format

` + "```json\n" + `{
  "categorizations": [
    {
      "item": "Original item text",
      "actionable": true/false,
      "category": "next-action" | "project" | "waiting-for" | "someday-maybe" | "reference" | "trash",
      "suggested_text": "Improved description",
      "context": "@context" or null,
      "creates_new_project": true/false,
      "new_project": { ... } or null,
      "associates_existing_project": true/false,
      "existing_project": { ... } or null,
      "confidence": "high" | "medium" | "low",
      "reasoning": "Categorization explanation",
      "time_estimate": minutes or null,
      "energy_level": "high" | "medium" | "low" or null
    }
  ],
  "groups": [
    {
      "items": ["item1", "item2", "item3"],
      "group_type": "project" | "context" | "theme",
      "description": "What groups these items",
      "suggested_project": "Project name if applicable",
      "processing_order": [0, 1, 2]
    }
  ],
  "processing_summary": "Overview of batch processing results and patterns identified"
}
` + "```" + `

Focus on efficiency, consistency, and identifying natural groupings while
maintaining GTD quality standards.`

// BatchProcessInbox builds the batch clarify prompt. Items beyond
// maxItems are dropped; maxItems <= 0 means DefaultBatchLimit.
func BatchProcessInbox(items, existingProjects []string, maxItems int) string {
	if maxItems <= 0 {
		maxItems = DefaultBatchLimit
	}
	if len(items) > maxItems {
		items = items[:maxItems]
	}

	var b strings.Builder
	b.WriteString("# GTD Batch Inbox Processing\n\n")
	fmt.Fprintf(&b, "Process these %d inbox items efficiently following GTD methodology:\n\n", len(items))
	b.WriteString("## Items to Process\n")
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	b.WriteString(bulletSection("Existing Projects", existingProjects))
	b.WriteString(batchStrategy)
	b.WriteString(batchContract)
	return b.String()
}

func bulletSection(header string, items []string) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n### " + header + "\n")
	for _, item := range items {
		b.WriteString("- " + item + "\n")
	}
	return b.String()
}

// RegisterCore adds the three core clarify prompts to the registry.
func RegisterCore(r *Registry) error {
	infos := []Info{
		{
			Name:        "inbox_clarification",
			Description: "Analyzes inbox items and suggests GTD categorization with reasoning",
			Phase:       PhaseClarify,
			Frequency:   FrequencyHigh,
			Tags:        []string{"core", "inbox", "categorization"},
			Arguments: []Argument{
				{Name: "inbox_item", Type: "string", Description: "The captured thought or item text to process", Required: true},
				{Name: "existing_projects", Type: "list", Description: "Current project names, one per line, for association"},
				{Name: "common_contexts", Type: "list", Description: "Available GTD contexts, one per line; defaults to the standard five"},
			},
			ReturnHint: "Categorization",
			Examples: []string{
				"Process captured thought: 'Schedule dentist appointment'",
				"Categorize meeting note: 'Discuss Q4 budget with finance team'",
			},
		},
		{
			Name:        "quick_categorize",
			Description: "Fast categorization for obvious inbox items requiring minimal analysis",
			Phase:       PhaseClarify,
			Frequency:   FrequencyHigh,
			Tags:        []string{"core", "quick", "categorization"},
			Arguments: []Argument{
				{Name: "inbox_item", Type: "string", Description: "The simple captured item to quickly categorize", Required: true},
			},
			ReturnHint: "Categorization",
			Examples: []string{
				"Quick process: 'Buy milk'",
				"Simple task: 'Call John about meeting'",
			},
		},
		{
			Name:        "batch_process_inbox",
			Description: "Process multiple inbox items efficiently with grouping and consistency",
			Phase:       PhaseClarify,
			Frequency:   FrequencyMedium,
			Tags:        []string{"core", "batch", "inbox"},
			Arguments: []Argument{
				{Name: "inbox_items", Type: "list", Description: "Captured items to process, one per line", Required: true},
				{Name: "existing_projects", Type: "list", Description: "Current project names, one per line"},
				{Name: "max_items", Type: "int", Description: "Cap on items per batch; defaults to 20"},
			},
			ReturnHint: "BatchProcessingResult",
			Examples: []string{
				"Process 15 meeting notes from today",
				"Batch categorize weekly email captures",
			},
		},
	}
	for _, info := range infos {
		if err := r.Register(info); err != nil {
			return err
		}
	}
	return nil
}
