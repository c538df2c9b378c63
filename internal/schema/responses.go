// Package schema defines the structured response shapes exchanged with
// LLM clients during inbox clarification, plus opt-in strict checks for
// document metadata. Everything here validates with ozzo-validation;
// the parser itself stays lenient.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Category is the clarify-phase disposition of an inbox item.
type Category string

const (
	CategoryNextAction   Category = "next-action"
	CategoryWaitingFor   Category = "waiting-for"
	CategorySomedayMaybe Category = "someday-maybe"
	CategoryReference    Category = "reference"
	CategoryTrash        Category = "trash"
)

// Confidence grades how certain a categorization suggestion is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Context is one of the standard GTD action contexts.
type Context string

const (
	ContextHome     Context = "@home"
	ContextComputer Context = "@computer"
	ContextCalls    Context = "@calls"
	ContextErrands  Context = "@errands"
	ContextOffice   Context = "@office"
	ContextPhone    Context = "@phone"
	ContextAgenda   Context = "@agenda"
	ContextWaiting  Context = "@waiting"
)

func categoryRule() validation.Rule {
	return validation.In(CategoryNextAction, CategoryWaitingFor, CategorySomedayMaybe, CategoryReference, CategoryTrash)
}

func confidenceRule() validation.Rule {
	return validation.In(ConfidenceHigh, ConfidenceMedium, ConfidenceLow)
}

func contextRule() validation.Rule {
	return validation.In(ContextHome, ContextComputer, ContextCalls, ContextErrands, ContextOffice, ContextPhone, ContextAgenda, ContextWaiting)
}

// notBlank rejects strings that are empty once trimmed. Required alone
// lets whitespace-only values through.
var notBlank = validation.By(func(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
})

// InboxItem is a single captured thought handed to the clarify prompts.
type InboxItem struct {
	Text         string     `json:"text"`
	LineNumber   int        `json:"line_number,omitempty"`
	CapturedDate *time.Time `json:"captured_date,omitempty"`
	Source       string     `json:"source,omitempty"`
}

// Validate validates the inbox item.
func (i InboxItem) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Text, validation.Required, notBlank, validation.RuneLength(1, 500)),
	)
}

// NewProject proposes promoting an inbox item into a fresh project.
type NewProject struct {
	ProjectName     string  `json:"project_name"`
	Outcome         string  `json:"outcome"`
	FirstNextAction string  `json:"first_next_action"`
	Context         Context `json:"context,omitempty"`
	Reasoning       string  `json:"reasoning"`
}

// Validate validates the new project proposal.
func (p NewProject) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ProjectName, validation.Required, notBlank),
		validation.Field(&p.Outcome, validation.Required, notBlank),
		validation.Field(&p.FirstNextAction, validation.Required, notBlank),
		validation.Field(&p.Context, contextRule()),
		validation.Field(&p.Reasoning, validation.Required, notBlank),
	)
}

// ExistingProject links an inbox item to a project already on the list.
type ExistingProject struct {
	ProjectName     string  `json:"project_name"`
	RelevanceScore  float64 `json:"relevance_score"`
	Reasoning       string  `json:"reasoning"`
	SuggestedAction string  `json:"suggested_action,omitempty"`
}

// Validate validates the existing project association.
func (p ExistingProject) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ProjectName, validation.Required, notBlank),
		validation.Field(&p.RelevanceScore, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&p.Reasoning, validation.Required, notBlank),
	)
}

// Categorization is the clarify-phase decision for one inbox item.
type Categorization struct {
	Item          string   `json:"item"`
	Actionable    bool     `json:"actionable"`
	Category      Category `json:"category,omitempty"`
	SuggestedText string   `json:"suggested_text,omitempty"`
	Context       Context  `json:"context,omitempty"`

	CreatesNewProject bool        `json:"creates_new_project"`
	NewProject        *NewProject `json:"new_project,omitempty"`

	AssociatesExistingProject bool             `json:"associates_existing_project"`
	ExistingProject           *ExistingProject `json:"existing_project,omitempty"`

	Confidence   Confidence `json:"confidence"`
	Reasoning    string     `json:"reasoning"`
	TimeEstimate *int       `json:"time_estimate,omitempty"`
	EnergyLevel  string     `json:"energy_level,omitempty"`
	DelegatedTo  string     `json:"delegated_to,omitempty"`
}

// Validate validates the categorization, including the consistency of
// the project relationship flags.
func (c Categorization) Validate() error {
	if err := validation.ValidateStruct(&c,
		validation.Field(&c.Item, validation.Required, notBlank),
		validation.Field(&c.Category, categoryRule()),
		validation.Field(&c.Context, contextRule()),
		validation.Field(&c.NewProject),
		validation.Field(&c.ExistingProject),
		validation.Field(&c.Confidence, validation.Required, confidenceRule()),
		validation.Field(&c.Reasoning, validation.Required, notBlank),
		validation.Field(&c.TimeEstimate, validation.By(timeEstimateRange)),
	); err != nil {
		return err
	}
	return c.validateProjectRelationships()
}

func (c Categorization) validateProjectRelationships() error {
	if c.CreatesNewProject && c.NewProject == nil {
		return fmt.Errorf("schema: new_project is required when creates_new_project is true")
	}
	if !c.CreatesNewProject && c.NewProject != nil {
		return fmt.Errorf("schema: new_project must be omitted when creates_new_project is false")
	}
	if c.AssociatesExistingProject && c.ExistingProject == nil {
		return fmt.Errorf("schema: existing_project is required when associates_existing_project is true")
	}
	if !c.AssociatesExistingProject && c.ExistingProject != nil {
		return fmt.Errorf("schema: existing_project must be omitted when associates_existing_project is false")
	}
	if c.CreatesNewProject && c.AssociatesExistingProject {
		return fmt.Errorf("schema: an item cannot both create a project and join an existing one")
	}
	return nil
}

// timeEstimateRange allows nil, otherwise 1..480 minutes.
func timeEstimateRange(value any) error {
	v, ok := value.(*int)
	if !ok || v == nil {
		return nil
	}
	if *v < 1 || *v > 480 {
		return errors.New("must be between 1 and 480 minutes")
	}
	return nil
}

// ItemGroup clusters related inbox items for batch processing.
type ItemGroup struct {
	Items            []InboxItem `json:"items"`
	GroupType        string      `json:"group_type"`
	Description      string      `json:"description"`
	SuggestedProject string      `json:"suggested_project,omitempty"`
	ProcessingOrder  []int       `json:"processing_order,omitempty"`
}

// Validate validates the group. ProcessingOrder, when present, must be
// a permutation of the item indices.
func (g ItemGroup) Validate() error {
	if err := validation.ValidateStruct(&g,
		validation.Field(&g.Items, validation.Required, validation.Length(1, 20)),
		validation.Field(&g.GroupType, validation.Required, notBlank),
		validation.Field(&g.Description, validation.Required, notBlank),
	); err != nil {
		return err
	}
	if len(g.ProcessingOrder) == 0 {
		return nil
	}
	if len(g.ProcessingOrder) != len(g.Items) {
		return fmt.Errorf("schema: processing_order has %d entries for %d items", len(g.ProcessingOrder), len(g.Items))
	}
	seen := make([]bool, len(g.Items))
	for _, idx := range g.ProcessingOrder {
		if idx < 0 || idx >= len(g.Items) || seen[idx] {
			return fmt.Errorf("schema: processing_order must be a permutation of the item indices")
		}
		seen[idx] = true
	}
	return nil
}

// BatchProcessingResult is the aggregate clarify response for a batch
// of inbox items.
type BatchProcessingResult struct {
	Categorizations   []Categorization `json:"categorizations"`
	Groups            []ItemGroup      `json:"groups,omitempty"`
	ProcessingSummary string           `json:"processing_summary"`
}

// Validate validates the batch result. Groups must not share items and
// cannot reference more items than the batch categorized.
func (b BatchProcessingResult) Validate() error {
	if err := validation.ValidateStruct(&b,
		validation.Field(&b.Categorizations, validation.Required),
		validation.Field(&b.Groups),
		validation.Field(&b.ProcessingSummary, validation.Required, notBlank),
	); err != nil {
		return err
	}
	seen := make(map[string]bool)
	total := 0
	for _, g := range b.Groups {
		total += len(g.Items)
		for _, item := range g.Items {
			if seen[item.Text] {
				return fmt.Errorf("schema: item %q appears in more than one group", item.Text)
			}
			seen[item.Text] = true
		}
	}
	if total > len(b.Categorizations) {
		return fmt.Errorf("schema: groups hold %d items but only %d were categorized", total, len(b.Categorizations))
	}
	return nil
}

// Decode unmarshals data into T and validates the result. It is the
// strict entry point for LLM responses coming back over the wire.
func Decode[T validation.Validatable](data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("schema: decode: %w", err)
	}
	if err := v.Validate(); err != nil {
		return v, fmt.Errorf("schema: validate: %w", err)
	}
	return v, nil
}
