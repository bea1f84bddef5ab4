package task

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

const fileMode = 0o600

// frontmatter is the YAML header of an exported task file. The
// description travels as the markdown body.
type frontmatter struct {
	ID           string   `yaml:"id"`
	Title        string   `yaml:"title"`
	Status       string   `yaml:"status"`
	Priority     string   `yaml:"priority"`
	DueDate      *string  `yaml:"dueDate,omitempty"`
	Tags         []string `yaml:"tags,flow,omitempty"`
	ProjectID    string   `yaml:"projectId,omitempty"`
	CreatedAt    string   `yaml:"createdAt"`
	LastModified string   `yaml:"lastModified"`
}

// MarshalMarkdown renders t as a markdown document with YAML frontmatter.
func MarshalMarkdown(t *Task) ([]byte, error) {
	r := t.Record()
	fm, err := yaml.Marshal(frontmatter{
		ID:           r.ID,
		Title:        r.Title,
		Status:       r.Status,
		Priority:     r.Priority,
		DueDate:      r.DueDate,
		Tags:         r.Tags,
		ProjectID:    r.ProjectID,
		CreatedAt:    r.CreatedAt,
		LastModified: r.LastModified,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fm)
	buf.WriteString("---\n")
	if r.Description != "" {
		buf.WriteString("\n")
		buf.WriteString(r.Description)
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// UnmarshalMarkdown parses a document produced by MarshalMarkdown. The
// result is validated like any other restored task.
func UnmarshalMarkdown(data []byte) (*Task, error) {
	head, body, err := splitFrontmatter(data)
	if err != nil {
		return nil, err
	}

	var fm frontmatter
	if err := yaml.Unmarshal(head, &fm); err != nil {
		return nil, fmt.Errorf("parsing frontmatter: %w", err)
	}

	return FromRecord(Record{
		ID:           fm.ID,
		Title:        fm.Title,
		Description:  body,
		Status:       fm.Status,
		CreatedAt:    fm.CreatedAt,
		DueDate:      fm.DueDate,
		ProjectID:    fm.ProjectID,
		LastModified: fm.LastModified,
		Priority:     fm.Priority,
		Tags:         fm.Tags,
	})
}

// ReadFile parses a task markdown file.
func ReadFile(path string) (*Task, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path chosen by the caller
	if err != nil {
		return nil, fmt.Errorf("reading task file: %w", err)
	}
	t, err := UnmarshalMarkdown(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return t, nil
}

// WriteFile writes t to path as markdown.
func WriteFile(path string, t *Task) error {
	data, err := MarshalMarkdown(t)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, fileMode)
}

// splitFrontmatter splits a markdown file into YAML frontmatter and body.
// The file must start with "---\n".
func splitFrontmatter(data []byte) ([]byte, string, error) {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")

	if !strings.HasPrefix(content, "---\n") {
		return nil, "", errors.New("file does not start with YAML frontmatter (---)")
	}

	rest := content[4:]
	idx := strings.Index(rest, "\n---\n")
	if idx < 0 {
		if strings.HasSuffix(rest, "\n---") {
			idx = len(rest) - len("\n---")
		} else {
			return nil, "", errors.New("unclosed frontmatter (missing closing ---)")
		}
	}

	fm := rest[:idx]
	body := ""
	closingEnd := idx + len("\n---\n")
	if closingEnd < len(rest) {
		body = strings.TrimSpace(rest[closingEnd:])
	}

	return []byte(fm), body, nil
}
