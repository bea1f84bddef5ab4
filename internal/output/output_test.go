package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/twiced-technology-gmbh/taskdeck/internal/board"
	"github.com/twiced-technology-gmbh/taskdeck/internal/project"
	"github.com/twiced-technology-gmbh/taskdeck/internal/storage"
	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

func init() {
	DisableColor()
}

func sample(t *testing.T) (*project.Project, *task.Task) {
	t.Helper()
	p, err := project.New(project.Data{Name: "Website", Owner: "ana"})
	if err != nil {
		t.Fatal(err)
	}
	tk, err := task.New(task.Data{
		Title:       "Design homepage",
		Description: "Hero and footer",
		Tags:        []string{"design"},
		DueDate:     "2020-01-01",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := p.AddTask(tk); err != nil {
		t.Fatal(err)
	}
	return p, tk
}

func TestDetect(t *testing.T) {
	t.Setenv("TASKDECK_OUTPUT", "")
	if Detect(true, false, true) != FormatJSON {
		t.Fatalf("--json wins over --compact")
	}
	if Detect(false, false, false) != FormatTable {
		t.Fatalf("default is table")
	}
	t.Setenv("TASKDECK_OUTPUT", "compact")
	if Detect(false, false, false) != FormatCompact {
		t.Fatalf("environment selects compact")
	}
	t.Setenv("TASKDECK_OUTPUT", "bogus")
	if Detect(false, false, false) != FormatTable {
		t.Fatalf("unknown environment value falls back to table")
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat(" JSON ") != FormatJSON {
		t.Fatalf("names are case-insensitive")
	}
	if ParseFormat("oneline") != FormatCompact {
		t.Fatalf("oneline is an alias for compact")
	}
	if got := ParseFormat("yaml").String(); got != "auto" {
		t.Fatalf("ParseFormat(yaml) = %s, want auto", got)
	}
}

func TestTaskTable(t *testing.T) {
	_, tk := sample(t)
	var buf bytes.Buffer
	TaskTable(&buf, []*task.Task{tk}, func(time.Duration) string { return "196" })

	out := buf.String()
	for _, want := range []string{"ID", "STATUS", tk.ID()[:8], "pending", "Design homepage", "design", "2020-01-01 overdue"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}

func TestTaskDetailRendersPlainDescription(t *testing.T) {
	_, tk := sample(t)
	var buf bytes.Buffer
	TaskDetail(&buf, tk, "Website")

	out := buf.String()
	if !strings.Contains(out, "Project:") || !strings.Contains(out, "Hero and footer") {
		t.Fatalf("detail output incomplete:\n%s", out)
	}
	if !strings.Contains(out, "Overdue") {
		t.Fatalf("expected overdue remaining time:\n%s", out)
	}
}

func TestProjectTableAndCompact(t *testing.T) {
	p, _ := sample(t)
	var buf bytes.Buffer
	ProjectTable(&buf, []*project.Project{p})
	if !strings.Contains(buf.String(), "Website") || !strings.Contains(buf.String(), "0/1") {
		t.Fatalf("unexpected project table:\n%s", buf.String())
	}

	buf.Reset()
	ProjectCompact(&buf, []*project.Project{p})
	if got := strings.TrimSpace(buf.String()); got != "Website [active/blue] 1 tasks @ana" {
		t.Fatalf("unexpected compact line %q", got)
	}
}

func TestSearchAndOverview(t *testing.T) {
	p, tk := sample(t)
	var buf bytes.Buffer
	SearchCompact(&buf, []storage.SearchResult{{ProjectName: "Website", Task: tk}})
	if !strings.HasPrefix(buf.String(), "Website: ") {
		t.Fatalf("search line must start with project name: %q", buf.String())
	}

	buf.Reset()
	OverviewCompact(&buf, board.Summary([]*project.Project{p}, time.Now()))
	if !strings.Contains(buf.String(), "1 projects (1 tasks)") || !strings.Contains(buf.String(), "(1 overdue)") {
		t.Fatalf("unexpected overview:\n%s", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("abcdefghijkl", 8); got != "abcde..." {
		t.Fatalf("got %q", got)
	}
}
