package project

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/twiced-technology-gmbh/taskdeck/internal/date"
	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

// Record is the persisted JSON shape of a Project, tasks embedded.
type Record struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Status       string        `json:"status"`
	Color        string        `json:"color"`
	Owner        string        `json:"owner,omitempty"`
	CreatedAt    string        `json:"createdAt"`
	LastModified string        `json:"lastModified"`
	Tasks        []task.Record `json:"tasks"`
}

// Record returns the persisted representation of p.
func (p *Project) Record() Record {
	return Record{
		ID:           p.id,
		Name:         p.name,
		Description:  p.description,
		Status:       p.status,
		Color:        p.color,
		Owner:        p.owner,
		CreatedAt:    date.ISO(p.createdAt),
		LastModified: date.ISO(p.lastModified),
		Tasks:        p.tasks.Records(),
	}
}

// MarshalJSON implements json.Marshaler using Record.
func (p *Project) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Record())
}

// FromRecord rebuilds a Project and its tasks from the persisted form.
// Identity and timestamps are kept; any field or task that fails
// validation aborts the restore.
func FromRecord(r Record) (*Project, error) {
	p := blank()
	if r.ID != "" {
		p.id = r.ID
	}
	if err := p.SetName(r.Name); err != nil {
		return nil, err
	}
	if err := p.apply(Data{
		Description: r.Description,
		Status:      r.Status,
		Color:       r.Color,
		Owner:       r.Owner,
	}); err != nil {
		return nil, err
	}

	for i, tr := range r.Tasks {
		t, err := task.FromRecord(tr)
		if err != nil {
			return nil, fmt.Errorf("task %d of project %q: %w", i, p.name, err)
		}
		if err := p.tasks.Add(t); err != nil {
			return nil, fmt.Errorf("task %d of project %q: %w", i, p.name, err)
		}
	}

	var err error
	if p.createdAt, err = restoreTimestamp("createdAt", r.CreatedAt, p.createdAt); err != nil {
		return nil, err
	}
	if p.lastModified, err = restoreTimestamp("lastModified", r.LastModified, p.lastModified); err != nil {
		return nil, err
	}
	return p, nil
}

func restoreTimestamp(field, value string, def time.Time) (time.Time, error) {
	if value == "" {
		return def, nil
	}
	ts, err := date.ParseISO(value)
	if err != nil {
		return time.Time{}, task.InvalidDate(field, value, err)
	}
	return ts, nil
}
