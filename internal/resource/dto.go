package resource

import (
	"time"

	"github.com/merrow/gtdvault/internal/models"
	"github.com/merrow/gtdvault/internal/vault"
)

// SetupSuggestion is attached to listing responses for vaults that have
// no GTD folder yet.
const SetupSuggestion = "No GTD structure found in this vault. " +
	"Use the setup_gtd_vault tool to create the GTD folder structure: " +
	"setup_gtd_vault(vault_path)"

// TaskPayload is the wire form of one task.
type TaskPayload struct {
	Description    string   `json:"description"`
	Completed      bool     `json:"completed"`
	CompletionDate *string  `json:"completion_date"`
	Context        string   `json:"context"`
	Project        string   `json:"project"`
	Energy         string   `json:"energy"`
	TimeEstimate   *int     `json:"time_estimate"`
	DelegatedTo    string   `json:"delegated_to"`
	Tags           []string `json:"tags"`
	Priority       string   `json:"priority"`
	DueDate        *string  `json:"due_date"`
	ScheduledDate  *string  `json:"scheduled_date"`
	StartDate      *string  `json:"start_date"`
	RawText        string   `json:"raw_text"`
	LineNumber     int      `json:"line_number"`
}

// LinkPayload is the wire form of one link. Type is "external" for
// http(s) targets and "wikilink" for everything else, context mentions
// included.
type LinkPayload struct {
	Type       string `json:"type"`
	Text       string `json:"text"`
	Target     string `json:"target"`
	IsExternal bool   `json:"is_external"`
	LineNumber int    `json:"line_number"`
}

// FrontmatterPayload is the wire form of a document header.
type FrontmatterPayload struct {
	Outcome       string         `json:"outcome"`
	Status        string         `json:"status"`
	Area          string         `json:"area"`
	ReviewDate    *string        `json:"review_date"`
	CreatedDate   *string        `json:"created_date"`
	CompletedDate *string        `json:"completed_date"`
	Tags          []string       `json:"tags"`
	Extra         map[string]any `json:"extra"`
}

// FileSummary is one entry of a metadata-only files listing.
type FileSummary struct {
	FilePath  string `json:"file_path"`
	FileType  string `json:"file_type"`
	TaskCount int    `json:"task_count"`
	LinkCount int    `json:"link_count"`
}

// FileDetail is one file with parsed content.
type FileDetail struct {
	FilePath    string             `json:"file_path"`
	FileType    string             `json:"file_type"`
	Content     string             `json:"content"`
	Frontmatter FrontmatterPayload `json:"frontmatter"`
	Tasks       []TaskPayload      `json:"tasks"`
	Links       []LinkPayload      `json:"links"`
}

// FileContent is a detail entry in the content aggregate, with counts.
type FileContent struct {
	FileDetail
	TaskCount int `json:"task_count"`
	LinkCount int `json:"link_count"`
}

// FilesResponse answers the files listing resources.
type FilesResponse struct {
	Status     string         `json:"status"`
	Files      []FileSummary  `json:"files"`
	Summary    *vault.Summary `json:"summary"`
	VaultPath  string         `json:"vault_path"`
	Suggestion string         `json:"suggestion,omitempty"`
}

// FileResponse answers the single-file resource.
type FileResponse struct {
	Status    string      `json:"status"`
	File      *FileDetail `json:"file"`
	VaultPath string      `json:"vault_path"`
}

// ContentResponse answers the content aggregate resources.
type ContentResponse struct {
	Status     string         `json:"status"`
	Files      []FileContent  `json:"files"`
	Summary    *vault.Summary `json:"summary"`
	VaultPath  string         `json:"vault_path"`
	Suggestion string         `json:"suggestion,omitempty"`
}

// ErrorResponse is the error envelope resources return instead of
// protocol-level failures.
type ErrorResponse struct {
	Status    string `json:"status"`
	Error     string `json:"error"`
	VaultPath string `json:"vault_path"`
}

// NewError shapes err into the resource error envelope.
func NewError(vaultPath string, err error) *ErrorResponse {
	return &ErrorResponse{Status: "error", Error: err.Error(), VaultPath: vaultPath}
}

func newTaskPayload(task models.Task) TaskPayload {
	return TaskPayload{
		Description:    task.Text,
		Completed:      task.IsCompleted,
		CompletionDate: isoDate(task.DoneDate),
		Context:        task.Context,
		Project:        task.Project,
		Energy:         task.Energy,
		TimeEstimate:   task.TimeEstimate,
		DelegatedTo:    task.DelegatedTo,
		Tags:           normTags(task.Tags),
		Priority:       task.Priority,
		DueDate:        isoDate(task.DueDate),
		ScheduledDate:  isoDate(task.ScheduledDate),
		StartDate:      isoDate(task.StartDate),
		RawText:        task.RawText,
		LineNumber:     task.LineNumber,
	}
}

func newLinkPayload(link models.Link) LinkPayload {
	kind := "wikilink"
	if link.IsExternal {
		kind = "external"
	}
	return LinkPayload{
		Type:       kind,
		Text:       link.Text,
		Target:     link.Target,
		IsExternal: link.IsExternal,
		LineNumber: link.LineNumber,
	}
}

func newFrontmatterPayload(meta models.Metadata) FrontmatterPayload {
	extra := make(map[string]any, len(meta.Extra))
	for k, v := range meta.Extra {
		extra[k] = v.ToAny()
	}
	return FrontmatterPayload{
		Outcome:       meta.Outcome,
		Status:        meta.Status,
		Area:          meta.Area,
		ReviewDate:    isoDate(meta.ReviewDate),
		CreatedDate:   isoDate(meta.CreatedDate),
		CompletedDate: isoDate(meta.CompletedDate),
		Tags:          normTags(meta.Tags),
		Extra:         extra,
	}
}

// isoDate renders an optional timestamp as RFC 3339, keeping nil as
// JSON null.
func isoDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// normTags keeps empty tag sets as [] on the wire.
func normTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
