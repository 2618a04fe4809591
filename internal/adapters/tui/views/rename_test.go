package views

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"shoebox/internal/domain"
)

func TestCountLabeled(t *testing.T) {
	tests := []struct {
		name   string
		photos []domain.Photo
		want   int
	}{
		{"empty", nil, 0},
		{
			"none labeled",
			[]domain.Photo{{Path: "a.jpg"}, {Path: "b.jpg"}},
			0,
		},
		{
			"blank labels do not count",
			[]domain.Photo{{Path: "a.jpg", Label: "   "}, {Path: "b.jpg", Label: "Beach"}},
			1,
		},
		{
			"all labeled",
			[]domain.Photo{{Path: "a.jpg", Label: "Beach"}, {Path: "b.jpg", Label: "Party"}},
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countLabeled(tt.photos); got != tt.want {
				t.Errorf("countLabeled = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRenameModel_SetRequestResets(t *testing.T) {
	m := NewRenameModel(nil, 4, 260)
	m.state = RenameDone
	m.result = &domain.RenamingResult{TotalFiles: 3, FilesRenamed: 3}
	m.err = errors.New("stale")
	m.SetMessage("stale", true)

	photos := []domain.Photo{{Path: "a.jpg", Label: "Beach"}}
	m.SetRequest("/pics/2020 Summer", photos, true)

	if m.state != RenameConfirming {
		t.Errorf("state = %v, want RenameConfirming", m.state)
	}
	if m.folderPath != "/pics/2020 Summer" || !m.withPrefix {
		t.Error("request fields not set")
	}
	if len(m.photos) != 1 {
		t.Errorf("got %d photos, want 1", len(m.photos))
	}
	if m.result != nil || m.err != nil || m.Message != "" {
		t.Error("previous run state should be cleared")
	}
}

func TestRenameModel_CancelReturnsToPhotos(t *testing.T) {
	m := NewRenameModel(nil, 4, 260)
	m.SetRequest("/pics", []domain.Photo{{Path: "a.jpg", Label: "Beach"}}, true)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(BackToPhotosMsg); !ok {
		t.Errorf("got %T, want BackToPhotosMsg", cmd())
	}
	if m.state != RenameConfirming {
		t.Errorf("state = %v, cancel should not change it", m.state)
	}
}

func TestRenameModel_ConfirmStartsRun(t *testing.T) {
	m := NewRenameModel(nil, 4, 260)
	m.SetRequest("/pics", []domain.Photo{{Path: "a.jpg", Label: "Beach"}}, true)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if m.state != RenameRunning {
		t.Errorf("state = %v, want RenameRunning", m.state)
	}
	if cmd == nil {
		t.Error("expected the batch command to be scheduled")
	}
}

func TestRenameModel_DoneMessageSetsState(t *testing.T) {
	t.Run("result present", func(t *testing.T) {
		m := NewRenameModel(nil, 4, 260)
		m.state = RenameRunning

		m.Update(renameDoneMsg{result: &domain.RenamingResult{TotalFiles: 3, FilesRenamed: 2}})
		if m.state != RenameDone {
			t.Errorf("state = %v, want RenameDone", m.state)
		}
	})

	t.Run("batch never ran", func(t *testing.T) {
		m := NewRenameModel(nil, 4, 260)
		m.state = RenameRunning

		m.Update(renameDoneMsg{err: errors.New("folder vanished")})
		if m.state != RenameFailed {
			t.Errorf("state = %v, want RenameFailed", m.state)
		}
	})
}

func TestRenameModel_AnyKeyAfterDoneReloads(t *testing.T) {
	m := NewRenameModel(nil, 4, 260)
	m.state = RenameDone
	m.result = &domain.RenamingResult{TotalFiles: 1, FilesRenamed: 1}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(ReloadPhotosMsg); !ok {
		t.Errorf("got %T, want ReloadPhotosMsg", cmd())
	}
}

func TestRenameModel_ViewConfirming(t *testing.T) {
	m := NewRenameModel(nil, 4, 260)
	m.SetRequest("/pics/2020 Summer", []domain.Photo{
		{Path: "a.jpg", Label: "Beach"},
		{Path: "b.jpg", Label: "Party"},
		{Path: "c.jpg"},
	}, true)

	view := m.View()
	if !contains(view, "/pics/2020 Summer") {
		t.Error("view should show the folder")
	}
	if !contains(view, "2 labeled of 3") {
		t.Error("view should show the labeled count")
	}
	if !contains(view, "1 files without a label are left untouched") {
		t.Error("view should warn about unlabeled files")
	}
	if !contains(view, "Rename these files?") {
		t.Error("view should ask for confirmation")
	}
}

func TestRenameModel_ViewDoneWithErrors(t *testing.T) {
	m := NewRenameModel(nil, 4, 260)
	m.state = RenameDone
	m.result = &domain.RenamingResult{
		TotalFiles:   5,
		FilesRenamed: 3,
		Errors: []string{
			"a.jpg: permission denied",
			"b.jpg: permission denied",
		},
	}

	view := m.View()
	if !contains(view, "Renamed 3 of 5 files") {
		t.Error("view should summarize the batch")
	}
	if !contains(view, "2 failures:") {
		t.Error("view should count the failures")
	}
	if !contains(view, "a.jpg: permission denied") {
		t.Error("view should list failure messages")
	}
}
