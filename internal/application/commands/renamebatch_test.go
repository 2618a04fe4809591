package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"shoebox/internal/application"
	"shoebox/internal/domain"
)

func TestRenameFolderCommand_Validate(t *testing.T) {
	cmd := NewRenameFolderCommand(newFakeFS(), application.NewGate(1), "", nil, RenameOptions{})
	err := cmd.Validate()
	if err == nil {
		t.Fatal("expected error for empty base path, got nil")
	}
	if !contains(err.Error(), "base path is required") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRenameFolder_OrdersByDateAndAssignsPrefixes(t *testing.T) {
	fs := newFakeFS("/photos/a.jpg", "/photos/b.jpg", "/photos/c.jpg")
	fs.setBirth("/photos/c.jpg", time.Date(2019, 12, 1, 0, 0, 0, 0, time.UTC))

	photos := []domain.Photo{
		{Path: "a.jpg", Label: "March", TakenAt: timePtr(time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC))},
		{Path: "b.jpg", Label: "January", TakenAt: timePtr(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))},
		{Path: "c.jpg", Label: "December"}, // taken date unknown, sorts by creation time
	}

	cmd := NewRenameFolderCommand(fs, application.NewGate(4), "/photos", photos, RenameOptions{AddSortPrefix: true})
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.TotalFiles != 3 || result.FilesRenamed != 3 {
		t.Errorf("expected 3/3 renamed, got %d/%d", result.FilesRenamed, result.TotalFiles)
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}

	for _, want := range []string{
		"/photos/1. December.jpg",
		"/photos/2. January.jpg",
		"/photos/3. March.jpg",
	} {
		if !fs.Exists(want) {
			t.Errorf("expected %s, have %v", want, fs.paths())
		}
	}
}

func TestRenameFolder_SkipsUnlabeledPhotos(t *testing.T) {
	fs := newFakeFS("/photos/a.jpg", "/photos/b.jpg", "/photos/IMG_9.jpg")
	photos := []domain.Photo{
		{Path: "a.jpg", Label: "Alpha"},
		{Path: "b.jpg", Label: "Beta"},
		{Path: "IMG_9.jpg"},
	}

	cmd := NewRenameFolderCommand(fs, application.NewGate(2), "/photos", photos, RenameOptions{})
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.TotalFiles != 2 {
		t.Errorf("unlabeled photos must not count, got total %d", result.TotalFiles)
	}
	if !fs.Exists("/photos/IMG_9.jpg") {
		t.Error("unlabeled photo must keep its name")
	}
}

func TestRenameFolder_PartialFailureCollectsErrors(t *testing.T) {
	var photos []domain.Photo
	var paths []string
	for i := 0; i < 10; i++ {
		path := fmt.Sprintf("/photos/IMG_%d.jpg", i)
		paths = append(paths, path)
		photos = append(photos, domain.Photo{
			Path:  fmt.Sprintf("IMG_%d.jpg", i),
			Label: fmt.Sprintf("Label %d", i),
		})
	}
	fs := newFakeFS(paths...)
	fs.moveErr["/photos/IMG_4.jpg"] = errors.New("device busy")

	cmd := NewRenameFolderCommand(fs, application.NewGate(8), "/photos", photos, RenameOptions{})
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.TotalFiles != 10 {
		t.Errorf("expected total 10, got %d", result.TotalFiles)
	}
	if result.FilesRenamed != 9 {
		t.Errorf("expected 9 renamed, got %d", result.FilesRenamed)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected one error, got %v", result.Errors)
	}
	if !contains(result.Errors[0], "IMG_4.jpg") {
		t.Errorf("error should name the failed file: %s", result.Errors[0])
	}
	if !fs.Exists("/photos/IMG_4.jpg") {
		t.Error("failed item must keep its original name")
	}
}

func TestRenameFolder_SecondRunIsNoop(t *testing.T) {
	fs := newFakeFS("/photos/a.jpg", "/photos/b.jpg")
	first := []domain.Photo{
		{Path: "a.jpg", Label: "Beach", TakenAt: timePtr(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))},
		{Path: "b.jpg", Label: "Sunset", TakenAt: timePtr(time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC))},
	}

	result, err := NewRenameFolderCommand(fs, application.NewGate(2), "/photos", first, RenameOptions{AddSortPrefix: true}).Execute(context.Background())
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if result.FilesRenamed != 2 {
		t.Fatalf("first run should rename both, got %d", result.FilesRenamed)
	}

	// A rescan of the folder sees the new names with the same metadata.
	second := []domain.Photo{
		{Path: "1. Beach.jpg", Label: "Beach", TakenAt: first[0].TakenAt},
		{Path: "2. Sunset.jpg", Label: "Sunset", TakenAt: first[1].TakenAt},
	}

	result, err = NewRenameFolderCommand(fs, application.NewGate(2), "/photos", second, RenameOptions{AddSortPrefix: true}).Execute(context.Background())
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if result.FilesRenamed != 0 {
		t.Errorf("second run must be a no-op, got %d renames", result.FilesRenamed)
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if !fs.Exists("/photos/1. Beach.jpg") || !fs.Exists("/photos/2. Sunset.jpg") {
		t.Errorf("names must be unchanged, have %v", fs.paths())
	}
}

func TestRenameFolder_IdenticalLabelsGetUniqueNames(t *testing.T) {
	const n = 40
	var photos []domain.Photo
	var paths []string
	for i := 0; i < n; i++ {
		path := fmt.Sprintf("/photos/IMG_%02d.jpg", i)
		paths = append(paths, path)
		photos = append(photos, domain.Photo{
			Path:  fmt.Sprintf("IMG_%02d.jpg", i),
			Label: "Party",
		})
	}
	fs := newFakeFS(paths...)

	cmd := NewRenameFolderCommand(fs, application.NewGate(n), "/photos", photos, RenameOptions{})
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("colliding labels must not produce errors: %v", result.Errors)
	}
	if result.FilesRenamed != n {
		t.Errorf("expected %d renames, got %d", n, result.FilesRenamed)
	}

	want := map[string]bool{"/photos/Party.jpg": true}
	for i := 1; i < n; i++ {
		want[fmt.Sprintf("/photos/Party (%d).jpg", i)] = true
	}
	got := fs.paths()
	if len(got) != n {
		t.Fatalf("expected %d files, got %d: %v", n, len(got), got)
	}
	for _, p := range got {
		if !want[p] {
			t.Errorf("unexpected final path %s", p)
		}
	}
}

func TestRenameFolderPlan_PreviewsWithoutMoving(t *testing.T) {
	fs := newFakeFS("/photos/a.jpg", "/photos/b.jpg", "/photos/c.jpg", "/photos/skip.jpg")
	photos := []domain.Photo{
		{Path: "a.jpg", Label: "Party", TakenAt: timePtr(time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC))},
		{Path: "b.jpg", Label: "Party", TakenAt: timePtr(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))},
		{Path: "c.jpg", Label: "Beach", TakenAt: timePtr(time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC))},
		{Path: "skip.jpg"},
	}

	cmd := NewRenameFolderCommand(fs, application.NewGate(2), "/photos", photos, RenameOptions{})
	plan, err := cmd.Plan()
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	want := []string{
		"/photos/Party.jpg",
		"/photos/Beach.jpg",
		"/photos/Party (1).jpg",
	}
	if len(plan) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(plan))
	}
	for i, entry := range plan {
		if entry.NewPath != want[i] {
			t.Errorf("entry %d: expected %s, got %s", i, want[i], entry.NewPath)
		}
		if !entry.Renamed {
			t.Errorf("entry %d should be marked as a change", i)
		}
	}

	for _, p := range []string{"/photos/a.jpg", "/photos/b.jpg", "/photos/c.jpg", "/photos/skip.jpg"} {
		if !fs.Exists(p) {
			t.Errorf("planning must not touch disk, lost %s", p)
		}
	}
}

func TestRenameFolderPlan_KeepsCorrectNames(t *testing.T) {
	fs := newFakeFS("/photos/1. Beach.jpg")
	photos := []domain.Photo{
		{Path: "1. Beach.jpg", Label: "Beach"},
	}

	cmd := NewRenameFolderCommand(fs, application.NewGate(1), "/photos", photos, RenameOptions{AddSortPrefix: true})
	plan, err := cmd.Plan()
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(plan) != 1 {
		t.Fatalf("expected one entry, got %d", len(plan))
	}
	if plan[0].Renamed {
		t.Errorf("correctly named photo must plan as no-op, got %s", plan[0].NewPath)
	}
}

func TestRenameFolder_CancelledContextReturnsPartialResult(t *testing.T) {
	fs := newFakeFS("/photos/a.jpg", "/photos/b.jpg")
	photos := []domain.Photo{
		{Path: "a.jpg", Label: "Alpha"},
		{Path: "b.jpg", Label: "Beta"},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gate := application.NewGate(1)
	// Saturate the gate so the first acquire has to wait on the context.
	if err := gate.Acquire(context.Background()); err != nil {
		t.Fatalf("setup acquire failed: %v", err)
	}

	result, err := NewRenameFolderCommand(fs, gate, "/photos", photos, RenameOptions{}).Execute(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result == nil {
		t.Fatal("a partial result must still be returned")
	}
	if result.TotalFiles != 2 {
		t.Errorf("expected total 2, got %d", result.TotalFiles)
	}
	if result.FilesRenamed != 0 {
		t.Errorf("no renames should have happened, got %d", result.FilesRenamed)
	}
}
