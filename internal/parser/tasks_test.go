package parser

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/merrow/gtdvault/internal/models"
)

func extractOne(t *testing.T, body string, role models.FileType) models.Task {
	t.Helper()
	tasks := ExtractTasks(body, role)
	if len(tasks) != 1 {
		t.Fatalf("len(tasks) = %d, want 1 (body %q)", len(tasks), body)
	}
	return tasks[0]
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestExtractTasks_SimpleUncompleted(t *testing.T) {
	task := extractOne(t, "- [ ] Buy groceries #task", models.FileTypeUnknown)

	if task.Text != "Buy groceries" {
		t.Errorf("text = %q, want %q", task.Text, "Buy groceries")
	}
	if task.IsCompleted {
		t.Error("task should not be completed")
	}
	if task.RawText != "- [ ] Buy groceries #task" {
		t.Errorf("raw text = %q", task.RawText)
	}
	if task.LineNumber != 1 {
		t.Errorf("line = %d, want 1", task.LineNumber)
	}
	if !slices.Contains(task.Tags, "#task") {
		t.Errorf("tags = %v, want #task present", task.Tags)
	}
}

func TestExtractTasks_SimpleCompleted(t *testing.T) {
	task := extractOne(t, "- [x] Buy groceries #task", models.FileTypeUnknown)

	if !task.IsCompleted {
		t.Error("task should be completed")
	}
	if task.Text != "Buy groceries" {
		t.Errorf("text = %q, want %q", task.Text, "Buy groceries")
	}
}

func TestExtractTasks_CheckboxWithoutTagIgnored(t *testing.T) {
	body := strings.Join([]string{
		"- [ ] Regular checkbox item",
		"- [x] Another checkbox item",
		"- [ ] Buy groceries #task",
		"- [ ] Meeting notes checklist item",
	}, "\n")

	tasks := ExtractTasks(body, models.FileTypeProjects)
	if len(tasks) != 1 {
		t.Fatalf("len(tasks) = %d, want 1", len(tasks))
	}
	if tasks[0].Text != "Buy groceries" {
		t.Errorf("text = %q, want %q", tasks[0].Text, "Buy groceries")
	}
}

func TestExtractTasks_InboxRecognizesEveryCheckbox(t *testing.T) {
	body := strings.Join([]string{
		"- [ ] Call dentist",
		"- [ ] Buy groceries @errands",
		"- Meeting notes from client call",
		"- [ ] Review budget report @computer",
		"- [x] Completed task",
	}, "\n")

	tasks := ExtractTasks(body, models.FileTypeInbox)
	if len(tasks) != 4 {
		t.Fatalf("len(tasks) = %d, want 4", len(tasks))
	}
	if tasks[0].Text != "Call dentist" {
		t.Errorf("text = %q", tasks[0].Text)
	}
	if tasks[1].Context != "@errands" {
		t.Errorf("context = %q, want @errands", tasks[1].Context)
	}
	if !tasks[3].IsCompleted {
		t.Error("last task should be completed")
	}
}

func TestExtractTasks_Context(t *testing.T) {
	task := extractOne(t, "- [ ] Call dentist about appointment @calls #task", models.FileTypeUnknown)

	if task.Text != "Call dentist about appointment" {
		t.Errorf("text = %q", task.Text)
	}
	if task.Context != "@calls" {
		t.Errorf("context = %q, want @calls", task.Context)
	}
}

func TestExtractTasks_FirstContextWins(t *testing.T) {
	task := extractOne(t, "- [ ] Pick up package @errands @home #task", models.FileTypeUnknown)

	if task.Context != "@errands" {
		t.Errorf("context = %q, want @errands", task.Context)
	}
	// Both mentions are cut from the clean text.
	if task.Text != "Pick up package" {
		t.Errorf("text = %q, want %q", task.Text, "Pick up package")
	}
}

func TestExtractTasks_ProjectLink(t *testing.T) {
	task := extractOne(t, "- [ ] Review budget [[Home Renovation]] #task", models.FileTypeUnknown)

	if task.Text != "Review budget" {
		t.Errorf("text = %q", task.Text)
	}
	if task.Project != "Home Renovation" {
		t.Errorf("project = %q, want %q", task.Project, "Home Renovation")
	}
}

func TestExtractTasks_ProjectAliasKeepsTarget(t *testing.T) {
	task := extractOne(t, "- [ ] Install shelving [[Home Depot|Hardware Store]] #task", models.FileTypeUnknown)

	if task.Project != "Home Depot" {
		t.Errorf("project = %q, want %q", task.Project, "Home Depot")
	}
}

func TestExtractTasks_UnclosedProjectLinkStaysInText(t *testing.T) {
	body := "- [ ] Task with malformed metadata ⏱️abc [[unclosed link @incomplete #task"
	task := extractOne(t, body, models.FileTypeUnknown)

	if task.Project != "" {
		t.Errorf("project = %q, want empty", task.Project)
	}
	if task.TimeEstimate != nil {
		t.Errorf("time estimate = %v, want nil", *task.TimeEstimate)
	}
	if task.Context != "@incomplete" {
		t.Errorf("context = %q, want @incomplete", task.Context)
	}
	// The broken wikilink survives; the bad stopwatch payload does not.
	if task.Text != "Task with malformed metadata [[unclosed link" {
		t.Errorf("text = %q", task.Text)
	}
	if task.RawText != body {
		t.Errorf("raw text = %q", task.RawText)
	}
}

func TestExtractTasks_Energy(t *testing.T) {
	task := extractOne(t, "- [ ] Write quarterly report 🔥 #task", models.FileTypeUnknown)

	if task.Energy != "🔥" {
		t.Errorf("energy = %q, want 🔥", task.Energy)
	}
	if task.Text != "Write quarterly report" {
		t.Errorf("text = %q", task.Text)
	}
}

func TestExtractTasks_TimeEstimateAttached(t *testing.T) {
	task := extractOne(t, "- [ ] Review document ⏱️30 #task", models.FileTypeUnknown)

	if task.TimeEstimate == nil || *task.TimeEstimate != 30 {
		t.Fatalf("time estimate = %v, want 30", task.TimeEstimate)
	}
	if task.Text != "Review document" {
		t.Errorf("text = %q", task.Text)
	}
}

func TestExtractTasks_TimeEstimateSpaced(t *testing.T) {
	task := extractOne(t, "- [ ] Plan sprint ⏱️ 45 #task", models.FileTypeUnknown)

	if task.TimeEstimate == nil || *task.TimeEstimate != 45 {
		t.Fatalf("time estimate = %v, want 45", task.TimeEstimate)
	}
	if task.Text != "Plan sprint" {
		t.Errorf("text = %q", task.Text)
	}
}

func TestExtractTasks_TimeEstimateBadAttachedPayload(t *testing.T) {
	task := extractOne(t, "- [ ] Declutter desk ⏱️abc #task", models.FileTypeUnknown)

	if task.TimeEstimate != nil {
		t.Errorf("time estimate = %v, want nil", *task.TimeEstimate)
	}
	// The glyph and its broken payload are cut together.
	if task.Text != "Declutter desk" {
		t.Errorf("text = %q", task.Text)
	}
}

func TestExtractTasks_TimeEstimateSpacedNonNumericSurvives(t *testing.T) {
	task := extractOne(t, "- [ ] Declutter desk surface ⏱️ 30m #task", models.FileTypeUnknown)

	if task.TimeEstimate != nil {
		t.Errorf("time estimate = %v, want nil", *task.TimeEstimate)
	}
	// Only the glyph is cut; the token was never recognized as a payload.
	if task.Text != "Declutter desk surface 30m" {
		t.Errorf("text = %q", task.Text)
	}
}

func TestExtractTasks_DelegateAttached(t *testing.T) {
	task := extractOne(t, "- [ ] Get approval from manager 👤John #task", models.FileTypeUnknown)

	if task.DelegatedTo != "John" {
		t.Errorf("delegated to = %q, want John", task.DelegatedTo)
	}
	if task.Text != "Get approval from manager" {
		t.Errorf("text = %q", task.Text)
	}
}

func TestExtractTasks_DelegateSpacedMultiWord(t *testing.T) {
	task := extractOne(t, "- [ ] Delivery of new desk 👤 Furniture Store #task", models.FileTypeUnknown)

	if task.DelegatedTo != "Furniture Store" {
		t.Errorf("delegated to = %q, want %q", task.DelegatedTo, "Furniture Store")
	}
	if task.Text != "Delivery of new desk" {
		t.Errorf("text = %q", task.Text)
	}
}

func TestExtractTasks_DelegateStopsAtMarker(t *testing.T) {
	task := extractOne(t, "- [ ] Chase invoice 👤Ana Maria 📅2025-04-01 #task", models.FileTypeUnknown)

	if task.DelegatedTo != "Ana Maria" {
		t.Errorf("delegated to = %q, want %q", task.DelegatedTo, "Ana Maria")
	}
	if task.DueDate == nil || !task.DueDate.Equal(day(2025, time.April, 1)) {
		t.Errorf("due date = %v, want 2025-04-01", task.DueDate)
	}
	if task.Text != "Chase invoice" {
		t.Errorf("text = %q", task.Text)
	}
}

func TestExtractTasks_DelegateEmptyName(t *testing.T) {
	task := extractOne(t, "- [ ] Hand off report 👤 @calls #task", models.FileTypeUnknown)

	if task.DelegatedTo != "" {
		t.Errorf("delegated to = %q, want empty", task.DelegatedTo)
	}
	if task.Context != "@calls" {
		t.Errorf("context = %q, want @calls", task.Context)
	}
	if task.Text != "Hand off report" {
		t.Errorf("text = %q", task.Text)
	}
}

func TestExtractTasks_DueDate(t *testing.T) {
	task := extractOne(t, "- [ ] Submit tax forms 📅2024-04-15 #task", models.FileTypeUnknown)

	if task.DueDate == nil || !task.DueDate.Equal(day(2024, time.April, 15)) {
		t.Fatalf("due date = %v, want 2024-04-15", task.DueDate)
	}
	if task.Text != "Submit tax forms" {
		t.Errorf("text = %q", task.Text)
	}
}

func TestExtractTasks_ScheduledDate(t *testing.T) {
	task := extractOne(t, "- [ ] Team meeting ⏳2024-03-20 #task", models.FileTypeUnknown)

	if task.ScheduledDate == nil || !task.ScheduledDate.Equal(day(2024, time.March, 20)) {
		t.Fatalf("scheduled date = %v, want 2024-03-20", task.ScheduledDate)
	}
}

func TestExtractTasks_StartDate(t *testing.T) {
	task := extractOne(t, "- [ ] Begin project planning 🛫2024-02-01 #task", models.FileTypeUnknown)

	if task.StartDate == nil || !task.StartDate.Equal(day(2024, time.February, 1)) {
		t.Fatalf("start date = %v, want 2024-02-01", task.StartDate)
	}
}

func TestExtractTasks_DoneDate(t *testing.T) {
	task := extractOne(t, "- [x] Finish presentation ✅2024-01-15 #task", models.FileTypeUnknown)

	if !task.IsCompleted {
		t.Error("task should be completed")
	}
	if task.DoneDate == nil || !task.DoneDate.Equal(day(2024, time.January, 15)) {
		t.Fatalf("done date = %v, want 2024-01-15", task.DoneDate)
	}
}

func TestExtractTasks_InvalidDateUnsetButCut(t *testing.T) {
	task := extractOne(t, "- [ ] Task with invalid date 📅invalid-date #task", models.FileTypeUnknown)

	if task.DueDate != nil {
		t.Errorf("due date = %v, want nil", task.DueDate)
	}
	if task.Text != "Task with invalid date" {
		t.Errorf("text = %q", task.Text)
	}
	if !strings.Contains(task.RawText, "📅invalid-date") {
		t.Errorf("raw text lost the payload: %q", task.RawText)
	}
}

func TestExtractTasks_ImpossibleCalendarDateUnset(t *testing.T) {
	task := extractOne(t, "- [ ] Renew passport 📅2025-13-45 #task", models.FileTypeUnknown)

	if task.DueDate != nil {
		t.Errorf("due date = %v, want nil", task.DueDate)
	}
	if task.Text != "Renew passport" {
		t.Errorf("text = %q", task.Text)
	}
}

func TestExtractTasks_Priority(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{"- [ ] Critical bug fix ⏫ #task", "⏫"},
		{"- [ ] Update documentation 🔼 #task", "🔼"},
		{"- [ ] Clean desk 🔽 #task", "🔽"},
	}
	for _, tc := range cases {
		task := extractOne(t, tc.line, models.FileTypeUnknown)
		if task.Priority != tc.want {
			t.Errorf("priority = %q, want %q (line %q)", task.Priority, tc.want, tc.line)
		}
	}
}

func TestExtractTasks_RecurrenceAttached(t *testing.T) {
	task := extractOne(t, "- [ ] Water plants 🔁every week #task", models.FileTypeUnknown)

	if task.Recurrence != "every week" {
		t.Errorf("recurrence = %q, want %q", task.Recurrence, "every week")
	}
	if task.Text != "Water plants" {
		t.Errorf("text = %q", task.Text)
	}
}

func TestExtractTasks_RecurrenceStopsAtMarker(t *testing.T) {
	task := extractOne(t, "- [ ] Review finances 🔁every 3 months 📅2025-06-01 #task", models.FileTypeUnknown)

	if task.Recurrence != "every 3 months" {
		t.Errorf("recurrence = %q, want %q", task.Recurrence, "every 3 months")
	}
	if task.DueDate == nil || !task.DueDate.Equal(day(2025, time.June, 1)) {
		t.Errorf("due date = %v, want 2025-06-01", task.DueDate)
	}
}

func TestExtractTasks_RecurrenceDetachedGlyphStays(t *testing.T) {
	task := extractOne(t, "- [ ] Water plants 🔁 every week #task", models.FileTypeUnknown)

	if task.Recurrence != "" {
		t.Errorf("recurrence = %q, want empty", task.Recurrence)
	}
	// Without an attached phrase the glyph is not a marker at all.
	if task.Text != "Water plants 🔁 every week" {
		t.Errorf("text = %q", task.Text)
	}
}

func TestExtractTasks_TagsOrderedWithDuplicates(t *testing.T) {
	task := extractOne(t, "- [ ] Review code #task #work #urgent #work", models.FileTypeUnknown)

	want := []string{"#task", "#work", "#urgent", "#work"}
	if !slices.Equal(task.Tags, want) {
		t.Errorf("tags = %v, want %v", task.Tags, want)
	}
	if task.Text != "Review code" {
		t.Errorf("text = %q", task.Text)
	}
}

func TestExtractTasks_TaskTagCaseInsensitive(t *testing.T) {
	for _, body := range []string{
		"- [ ] Test task #task",
		"- [ ] Test task #Task",
		"- [ ] Test task #TASK",
		"- [ ] Test task #tAsK",
	} {
		task := extractOne(t, body, models.FileTypeUnknown)
		if task.Text != "Test task" {
			t.Errorf("text = %q (body %q)", task.Text, body)
		}
	}
}

func TestExtractTasks_TaskTagMustMatchWholeTag(t *testing.T) {
	tasks := ExtractTasks("- [ ] Join the #taskforce", models.FileTypeProjects)
	if len(tasks) != 0 {
		t.Errorf("len(tasks) = %d, want 0 (#taskforce is not #task)", len(tasks))
	}
}

func TestExtractTasks_TaskTagPositionFlexible(t *testing.T) {
	for _, body := range []string{
		"- [ ] #task Test task with tag at beginning",
		"- [ ] Test task with tag in middle #task in middle",
		"- [ ] Test task with tag at end #task",
	} {
		tasks := ExtractTasks(body, models.FileTypeUnknown)
		if len(tasks) != 1 {
			t.Fatalf("len(tasks) = %d, want 1 (body %q)", len(tasks), body)
		}
		if !slices.Contains(tasks[0].Tags, "#task") {
			t.Errorf("tags = %v, want #task present", tasks[0].Tags)
		}
	}
}

func TestExtractTasks_ComplexLine(t *testing.T) {
	body := "- [ ] Prepare presentation [[Client Meeting]] @office 🔥 ⏱️120 📅2024-06-15 #task #work #important"
	task := extractOne(t, body, models.FileTypeUnknown)

	if task.Text != "Prepare presentation" {
		t.Errorf("text = %q", task.Text)
	}
	if task.Project != "Client Meeting" {
		t.Errorf("project = %q", task.Project)
	}
	if task.Context != "@office" {
		t.Errorf("context = %q", task.Context)
	}
	if task.Energy != "🔥" {
		t.Errorf("energy = %q", task.Energy)
	}
	if task.TimeEstimate == nil || *task.TimeEstimate != 120 {
		t.Errorf("time estimate = %v, want 120", task.TimeEstimate)
	}
	if task.DueDate == nil || !task.DueDate.Equal(day(2024, time.June, 15)) {
		t.Errorf("due date = %v, want 2024-06-15", task.DueDate)
	}
	want := []string{"#task", "#work", "#important"}
	if !slices.Equal(task.Tags, want) {
		t.Errorf("tags = %v, want %v", task.Tags, want)
	}
	if task.RawText != body {
		t.Errorf("raw text = %q", task.RawText)
	}
}

func TestExtractTasks_LineNumbers(t *testing.T) {
	body := strings.Join([]string{
		"## Today's Tasks",
		"",
		"- [ ] Morning standup @office #task",
		"- [x] Send email to client ✅2024-01-10 #task",
		"- [ ] Grocery shopping @errands #personal",
		"- [ ] Non-task checkbox item",
		"",
		"Some other text that's not a task.",
		"",
		"- [ ] Call dentist [[Health Maintenance]] 👤receptionist #task #waiting",
	}, "\n")

	tasks := ExtractTasks(body, models.FileTypeUnknown)
	if len(tasks) != 3 {
		t.Fatalf("len(tasks) = %d, want 3", len(tasks))
	}

	if tasks[0].Text != "Morning standup" || tasks[0].LineNumber != 3 {
		t.Errorf("task 0 = %q at line %d, want Morning standup at 3", tasks[0].Text, tasks[0].LineNumber)
	}
	if !tasks[1].IsCompleted || tasks[1].LineNumber != 4 {
		t.Errorf("task 1 completed=%v line=%d, want completed at 4", tasks[1].IsCompleted, tasks[1].LineNumber)
	}
	if tasks[1].DoneDate == nil || !tasks[1].DoneDate.Equal(day(2024, time.January, 10)) {
		t.Errorf("task 1 done date = %v", tasks[1].DoneDate)
	}
	if tasks[2].LineNumber != 10 {
		t.Errorf("task 2 line = %d, want 10", tasks[2].LineNumber)
	}
	if tasks[2].Project != "Health Maintenance" || tasks[2].DelegatedTo != "receptionist" {
		t.Errorf("task 2 project = %q, delegated = %q", tasks[2].Project, tasks[2].DelegatedTo)
	}
	wantTags := []string{"#task", "#waiting"}
	if !slices.Equal(tasks[2].Tags, wantTags) {
		t.Errorf("task 2 tags = %v, want %v", tasks[2].Tags, wantTags)
	}
}

func TestExtractTasks_IndentedTasks(t *testing.T) {
	body := strings.Join([]string{
		"- [ ] Main project task #task",
		"  - [ ] Subtask one @calls #task",
		"    - [ ] Sub-subtask with details #task",
		"  - [ ] Regular checklist item without task tag",
	}, "\n")

	tasks := ExtractTasks(body, models.FileTypeUnknown)
	if len(tasks) != 3 {
		t.Fatalf("len(tasks) = %d, want 3", len(tasks))
	}
	if tasks[0].Text != "Main project task" {
		t.Errorf("task 0 text = %q", tasks[0].Text)
	}
	if tasks[1].Text != "Subtask one" || tasks[1].Context != "@calls" {
		t.Errorf("task 1 = %q context %q", tasks[1].Text, tasks[1].Context)
	}
	if tasks[2].Text != "Sub-subtask with details" {
		t.Errorf("task 2 text = %q", tasks[2].Text)
	}
}

func TestExtractTasks_CheckboxMarkerGrid(t *testing.T) {
	body := strings.Join([]string{
		"- [ ] Regular uncompleted #task",
		"- [x] Regular completed #task",
		"- [X] Capital X completed #task",
		"- [/] In progress #task",
		"- [>] Forwarded #task",
		"- [<] Scheduled #task",
		"- [!] Important #task",
		"- [-] Cancelled #task",
		"- [?] Question #task",
	}, "\n")

	tasks := ExtractTasks(body, models.FileTypeUnknown)
	if len(tasks) != 9 {
		t.Fatalf("len(tasks) = %d, want 9", len(tasks))
	}
	if tasks[0].IsCompleted {
		t.Error("space marker should not be completed")
	}
	if !tasks[1].IsCompleted || !tasks[2].IsCompleted {
		t.Error("x and X markers should be completed")
	}
	for i := 3; i < 9; i++ {
		if tasks[i].IsCompleted {
			t.Errorf("marker line %d should not be completed", i+1)
		}
	}
}

func TestExtractTasks_MalformedCheckboxesSkipped(t *testing.T) {
	body := strings.Join([]string{
		"- [ Malformed #task",
		"- [] Empty #task",
		"- [ ] Valid #task",
		"- [ ]",
	}, "\n")

	tasks := ExtractTasks(body, models.FileTypeUnknown)
	if len(tasks) != 1 {
		t.Fatalf("len(tasks) = %d, want 1", len(tasks))
	}
	if tasks[0].Text != "Valid" {
		t.Errorf("text = %q, want Valid", tasks[0].Text)
	}
}

func TestExtractTasks_EmptyInput(t *testing.T) {
	if tasks := ExtractTasks("", models.FileTypeInbox); len(tasks) != 0 {
		t.Errorf("empty input: len(tasks) = %d, want 0", len(tasks))
	}
	if tasks := ExtractTasks("   \n\n   ", models.FileTypeInbox); len(tasks) != 0 {
		t.Errorf("whitespace input: len(tasks) = %d, want 0", len(tasks))
	}
}

func TestExtractTasks_ProseWithoutTasks(t *testing.T) {
	body := strings.Join([]string{
		"# Project Notes",
		"",
		"This is some regular markdown content.",
		"",
		"- [ ] Regular checklist item",
		"- [x] Completed checklist item",
		"",
		"1. Numbered list item",
		"2. Another numbered item",
	}, "\n")

	if tasks := ExtractTasks(body, models.FileTypeProjects); len(tasks) != 0 {
		t.Errorf("len(tasks) = %d, want 0", len(tasks))
	}
}

func TestExtractTasks_UnicodeContextAndTags(t *testing.T) {
	task := extractOne(t, "- [ ] Llamar al médico @llamadas #tarea-médica #task", models.FileTypeUnknown)

	if task.Context != "@llamadas" {
		t.Errorf("context = %q, want @llamadas", task.Context)
	}
	want := []string{"#tarea-médica", "#task"}
	if !slices.Equal(task.Tags, want) {
		t.Errorf("tags = %v, want %v", task.Tags, want)
	}
	if task.Text != "Llamar al médico" {
		t.Errorf("text = %q", task.Text)
	}
}
