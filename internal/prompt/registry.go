package prompt

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// notBlankString rejects strings that are empty once trimmed.
var notBlankString = validation.By(func(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
})

// GTD workflow phases a prompt can belong to.
const (
	PhaseCapture  = "capture"
	PhaseClarify  = "clarify"
	PhaseOrganize = "organize"
	PhaseReflect  = "reflect"
	PhaseEngage   = "engage"
)

// Expected usage frequencies.
const (
	FrequencyHigh   = "high"
	FrequencyMedium = "medium"
	FrequencyLow    = "low"
)

// Argument describes one prompt argument.
type Argument struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

// Info describes one registered prompt: what it does, where it sits in
// the GTD workflow, and how clients should call it.
type Info struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Phase       string     `json:"gtd_phase"`
	Frequency   string     `json:"usage_frequency"`
	Tags        []string   `json:"tags"`
	Arguments   []Argument `json:"arguments,omitempty"`
	ReturnHint  string     `json:"return_hint,omitempty"`
	Examples    []string   `json:"examples,omitempty"`
}

// Validate validates the prompt info.
func (i Info) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.Required, notBlankString),
		validation.Field(&i.Description, validation.Required, notBlankString),
		validation.Field(&i.Phase, validation.Required, validation.In(PhaseCapture, PhaseClarify, PhaseOrganize, PhaseReflect, PhaseEngage)),
		validation.Field(&i.Frequency, validation.Required, validation.In(FrequencyHigh, FrequencyMedium, FrequencyLow)),
		validation.Field(&i.Tags, validation.Required),
	)
}

// Registry holds prompts by name and preserves registration order so
// listings stay deterministic.
type Registry struct {
	prompts map[string]Info
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{prompts: map[string]Info{}}
}

// Register adds a prompt. It rejects invalid infos and duplicate names.
func (r *Registry) Register(info Info) error {
	if err := info.Validate(); err != nil {
		return fmt.Errorf("prompt: register %q: %w", info.Name, err)
	}
	if _, ok := r.prompts[info.Name]; ok {
		return fmt.Errorf("prompt: %q is already registered", info.Name)
	}
	r.prompts[info.Name] = info
	r.order = append(r.order, info.Name)
	return nil
}

// Get returns the prompt registered under name.
func (r *Registry) Get(name string) (Info, bool) {
	info, ok := r.prompts[name]
	return info, ok
}

// Has reports whether a prompt with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.prompts[name]
	return ok
}

// Len returns the number of registered prompts.
func (r *Registry) Len() int {
	return len(r.prompts)
}

// All returns every prompt in registration order.
func (r *Registry) All() []Info {
	out := make([]Info, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.prompts[name])
	}
	return out
}

// ByPhase returns the prompts for one GTD phase, in registration order.
func (r *Registry) ByPhase(phase string) []Info {
	return r.filter(func(info Info) bool { return info.Phase == phase })
}

// ByFrequency returns the prompts with the given usage frequency, in
// registration order.
func (r *Registry) ByFrequency(frequency string) []Info {
	return r.filter(func(info Info) bool { return info.Frequency == frequency })
}

// ByTag returns the prompts carrying the given tag, in registration
// order.
func (r *Registry) ByTag(tag string) []Info {
	return r.filter(func(info Info) bool {
		for _, t := range info.Tags {
			if t == tag {
				return true
			}
		}
		return false
	})
}

func (r *Registry) filter(keep func(Info) bool) []Info {
	var out []Info
	for _, name := range r.order {
		if info := r.prompts[name]; keep(info) {
			out = append(out, info)
		}
	}
	return out
}
