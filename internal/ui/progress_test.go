package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"cardgen/internal/driver"
)

func apply(m tea.Model, evs ...driver.Event) *progressModel {
	for _, ev := range evs {
		m, _ = m.Update(eventMsg(ev))
	}
	return m.(*progressModel)
}

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan driver.Event)
	m := apply(NewProgressModel("cards", []string{"a.zig"}, events, nil),
		driver.Event{File: "b.zig", Stage: driver.StageLoad, Status: driver.StatusQueued},
		driver.Event{File: "a.zig", Stage: driver.StageParse, Status: driver.StatusWorking},
		driver.Event{File: "b.zig", Stage: driver.StageRender, Status: driver.StatusCached},
		driver.Event{Stage: driver.StageWrite, Status: driver.StatusWorking},
	)
	if len(m.items) != 2 {
		t.Fatalf("items = %+v", m.items)
	}
	if m.items[0].status != "parsing" || m.items[1].status != "cached" {
		t.Errorf("statuses = %q, %q", m.items[0].status, m.items[1].status)
	}
	if m.finished != 1 {
		t.Errorf("finished = %d", m.finished)
	}
	view := m.View()
	for _, want := range []string{"cards [1/2]", "(writing)", "a.zig", "b.zig"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestProgressModelFinishedCountedOnce(t *testing.T) {
	m := apply(NewProgressModel("cards", []string{"a.zig"}, nil, nil),
		driver.Event{File: "a.zig", Stage: driver.StageRender, Status: driver.StatusDone},
		driver.Event{File: "a.zig", Stage: driver.StageRender, Status: driver.StatusDone},
	)
	if m.finished != 1 {
		t.Errorf("finished = %d, want 1", m.finished)
	}
}

func TestProgressModelCancel(t *testing.T) {
	calls := 0
	var m tea.Model = NewProgressModel("cards", nil, nil, func() { calls++ })
	for range 2 {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	}
	if calls != 1 {
		t.Errorf("cancel called %d times", calls)
	}
	if !strings.Contains(m.View(), "cancelling") {
		t.Errorf("view:\n%s", m.View())
	}
}

func TestProgressModelListensUntilClosed(t *testing.T) {
	events := make(chan driver.Event)
	close(events)
	m := NewProgressModel("cards", nil, events, nil).(*progressModel)
	if _, ok := m.listenForEvent()().(doneMsg); !ok {
		t.Fatal("closed channel must yield doneMsg")
	}
}

func TestVisibleItemsLimit(t *testing.T) {
	files := make([]string, 20)
	for i := range files {
		files[i] = fmt.Sprintf("f%02d.zig", i)
	}
	m := apply(NewProgressModel("cards", files, nil, nil),
		driver.Event{File: "f19.zig", Stage: driver.StageDiff, Status: driver.StatusWorking},
	)
	vis := m.visibleItems()
	if len(vis) != maxVisibleItems || vis[0].path != "f19.zig" {
		t.Fatalf("visible = %+v", vis)
	}
	if !strings.Contains(m.View(), "8 more") {
		t.Errorf("view:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"std/mem.zig", 20, "std/mem.zig"},
		{"std/array_list.zig", 10, "std/..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
