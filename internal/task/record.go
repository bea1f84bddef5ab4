package task

import (
	"encoding/json"
	"time"

	"github.com/twiced-technology-gmbh/taskdeck/internal/date"
)

// Record is the persisted JSON shape of a Task.
type Record struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Status       string   `json:"status"`
	CreatedAt    string   `json:"createdAt"`
	DueDate      *string  `json:"dueDate"`
	ProjectID    string   `json:"projectId,omitempty"`
	LastModified string   `json:"lastModified"`
	Priority     string   `json:"priority"`
	Tags         []string `json:"tags"`
}

// Record returns the persisted representation of t.
func (t *Task) Record() Record {
	r := Record{
		ID:           t.id,
		Title:        t.title,
		Description:  t.description,
		Status:       t.status,
		CreatedAt:    date.ISO(t.createdAt),
		ProjectID:    t.projectID,
		LastModified: date.ISO(t.lastModified),
		Priority:     t.priority,
		Tags:         t.Tags(),
	}
	if t.dueDate != nil {
		due := date.ISO(*t.dueDate)
		r.DueDate = &due
	}
	return r
}

// MarshalJSON implements json.Marshaler using Record.
func (t *Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Record())
}

// FromRecord rebuilds a Task from its persisted form. Every field goes
// through the same validation as New, so records that no longer satisfy
// the invariants are rejected. The stored id and timestamps are kept when
// present; missing ones are minted fresh.
func FromRecord(r Record) (*Task, error) {
	t := blank()
	if r.ID != "" {
		t.id = r.ID
	}
	if err := t.SetTitle(r.Title); err != nil {
		return nil, err
	}

	d := Data{
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		ProjectID:   r.ProjectID,
		Tags:        r.Tags,
	}
	if r.DueDate != nil {
		d.DueDate = *r.DueDate
	}
	if err := t.apply(d); err != nil {
		return nil, err
	}

	createdAt, err := restoreTimestamp("createdAt", r.CreatedAt, t.createdAt)
	if err != nil {
		return nil, err
	}
	lastModified, err := restoreTimestamp("lastModified", r.LastModified, t.lastModified)
	if err != nil {
		return nil, err
	}
	t.createdAt = createdAt
	t.lastModified = lastModified
	return t, nil
}

// restoreTimestamp parses a stored timestamp, falling back to def when the
// field was never written.
func restoreTimestamp(field, value string, def time.Time) (time.Time, error) {
	if value == "" {
		return def, nil
	}
	ts, err := date.ParseISO(value)
	if err != nil {
		return time.Time{}, InvalidDate(field, value, err)
	}
	return ts, nil
}
