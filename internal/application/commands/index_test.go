package commands

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"shoebox/internal/application"
	"shoebox/internal/domain"
)

type fakeLibrary struct {
	entries map[string][]domain.FileEntry
	err     error
}

func (f *fakeLibrary) ListMediaFiles(dir string) ([]domain.FileEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries[dir], nil
}

func (f *fakeLibrary) Subfolders(dir string) ([]string, error) { return nil, nil }

func (f *fakeLibrary) BuildTree(root string, maxDepth int) (*domain.FolderNode, error) {
	return nil, nil
}

func (f *fakeLibrary) LoadChildren(node *domain.FolderNode) error { return nil }

type fakeReader struct {
	mu       sync.Mutex
	sections map[string][]domain.MetadataSection
	errs     map[string]error
	calls    map[string]int
}

func newFakeReader() *fakeReader {
	return &fakeReader{
		sections: make(map[string][]domain.MetadataSection),
		errs:     make(map[string]error),
		calls:    make(map[string]int),
	}
}

func (f *fakeReader) ReadMetadata(ctx context.Context, path string) ([]domain.MetadataSection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[path]++
	if err := f.errs[path]; err != nil {
		return nil, err
	}
	return f.sections[path], nil
}

func (f *fakeReader) Close() error { return nil }

func (f *fakeReader) callCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]domain.Derivation
	stores  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]domain.Derivation)}
}

func cacheKey(path string, size int64, modTime time.Time) string {
	return fmt.Sprintf("%s|%d|%d", path, size, modTime.Unix())
}

func (f *fakeCache) Lookup(path string, size int64, modTime time.Time) (*domain.Derivation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.entries[cacheKey(path, size, modTime)]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (f *fakeCache) Store(path string, size int64, modTime time.Time, d domain.Derivation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[cacheKey(path, size, modTime)] = d
	f.stores++
	return nil
}

func (f *fakeCache) Prune(olderThan time.Time) (int64, error) { return 0, nil }

func (f *fakeCache) Clear() error { return nil }

func (f *fakeCache) Close() error { return nil }

func xmpLabelSection(label string) domain.MetadataSection {
	return domain.MetadataSection{
		Name:  domain.SectionXMP,
		Props: map[string]string{"Iptc4xmpExt:ArtworkContentDescription": label},
	}
}

func exifLabelSection(description string) domain.MetadataSection {
	return domain.MetadataSection{
		Name: domain.SectionExifIFD0,
		Tags: map[string]domain.TagValue{
			"Image Description": {Raw: description, Description: description},
		},
	}
}

func TestIndexFolderCommand_Validate(t *testing.T) {
	cmd := NewIndexFolderCommand(&fakeLibrary{}, newFakeReader(), nil, application.NewGate(1), "")
	err := cmd.Validate()
	if err == nil {
		t.Fatal("expected error for empty directory, got nil")
	}
	if !contains(err.Error(), "directory is required") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestIndexFolder_DerivesLabelsAndDates(t *testing.T) {
	library := &fakeLibrary{entries: map[string][]domain.FileEntry{
		"/photos": {
			{Path: "b.jpg", Size: 10},
			{Path: "a.jpg", Size: 20},
		},
	}}
	reader := newFakeReader()
	reader.sections["/photos/a.jpg"] = []domain.MetadataSection{exifLabelSection("Beach")}
	reader.sections["/photos/b.jpg"] = []domain.MetadataSection{{
		Name: domain.SectionXMP,
		Props: map[string]string{
			"Iptc4xmpExt:ArtworkContentDescription": "Sunset",
			"xmp:CreateDate":                        "2020-01-02T10:30:00",
		},
	}}

	cmd := NewIndexFolderCommand(library, reader, nil, application.NewGate(4), "/photos")
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(result.Photos) != 2 {
		t.Fatalf("expected 2 photos, got %d", len(result.Photos))
	}
	// Photos come back sorted by path regardless of completion order.
	if result.Photos[0].Path != "a.jpg" || result.Photos[1].Path != "b.jpg" {
		t.Errorf("unexpected order: %s, %s", result.Photos[0].Path, result.Photos[1].Path)
	}
	if result.Photos[0].Label != "Beach" {
		t.Errorf("unexpected label for a.jpg: %q", result.Photos[0].Label)
	}
	if result.Photos[1].Label != "Sunset" {
		t.Errorf("unexpected label for b.jpg: %q", result.Photos[1].Label)
	}
	wantTaken := time.Date(2020, 1, 2, 10, 30, 0, 0, time.UTC)
	if result.Photos[1].TakenAt == nil || !result.Photos[1].TakenAt.Equal(wantTaken) {
		t.Errorf("unexpected taken date for b.jpg: %v", result.Photos[1].TakenAt)
	}
}

func TestIndexFolder_UnreadableFileStaysUnlabeled(t *testing.T) {
	library := &fakeLibrary{entries: map[string][]domain.FileEntry{
		"/photos": {{Path: "corrupt.jpg"}},
	}}
	reader := newFakeReader()
	reader.errs["/photos/corrupt.jpg"] = errors.New("truncated file")

	cmd := NewIndexFolderCommand(library, reader, nil, application.NewGate(1), "/photos")
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Unreadable != 1 {
		t.Errorf("expected 1 unreadable file, got %d", result.Unreadable)
	}
	if len(result.Errors) != 0 {
		t.Errorf("unreadable files are not errors: %v", result.Errors)
	}
	if len(result.Photos) != 1 || result.Photos[0].HasLabel() {
		t.Errorf("expected one unlabeled photo, got %+v", result.Photos)
	}
}

func TestIndexFolder_AmbiguousSectionsReported(t *testing.T) {
	library := &fakeLibrary{entries: map[string][]domain.FileEntry{
		"/photos": {{Path: "weird.jpg"}},
	}}
	reader := newFakeReader()
	reader.sections["/photos/weird.jpg"] = []domain.MetadataSection{
		exifLabelSection("One"),
		exifLabelSection("Two"),
	}

	cmd := NewIndexFolderCommand(library, reader, nil, application.NewGate(1), "/photos")
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected one derivation error, got %v", result.Errors)
	}
	if !contains(result.Errors[0], "weird.jpg") {
		t.Errorf("error should name the file: %s", result.Errors[0])
	}
	if len(result.Photos) != 1 || result.Photos[0].HasLabel() {
		t.Errorf("the failed photo stays unlabeled, got %+v", result.Photos)
	}
}

func TestIndexFolder_CacheHitSkipsReader(t *testing.T) {
	modTime := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	library := &fakeLibrary{entries: map[string][]domain.FileEntry{
		"/photos": {{Path: "a.jpg", Size: 512, ModTime: modTime}},
	}}
	reader := newFakeReader()
	cache := newFakeCache()
	taken := time.Date(2019, 7, 4, 0, 0, 0, 0, time.UTC)
	if err := cache.Store("/photos/a.jpg", 512, modTime, domain.Derivation{Label: "Fireworks", TakenAt: &taken}); err != nil {
		t.Fatalf("seed store failed: %v", err)
	}

	cmd := NewIndexFolderCommand(library, reader, cache, application.NewGate(1), "/photos")
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.FromCache != 1 {
		t.Errorf("expected one cache hit, got %d", result.FromCache)
	}
	if reader.callCount("/photos/a.jpg") != 0 {
		t.Error("reader must not run on a cache hit")
	}
	if result.Photos[0].Label != "Fireworks" {
		t.Errorf("cached label not applied: %q", result.Photos[0].Label)
	}
	if result.Photos[0].TakenAt == nil || !result.Photos[0].TakenAt.Equal(taken) {
		t.Errorf("cached taken date not applied: %v", result.Photos[0].TakenAt)
	}
}

func TestIndexFolder_CacheMissStoresDerivation(t *testing.T) {
	modTime := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	library := &fakeLibrary{entries: map[string][]domain.FileEntry{
		"/photos": {{Path: "a.jpg", Size: 512, ModTime: modTime}},
	}}
	reader := newFakeReader()
	reader.sections["/photos/a.jpg"] = []domain.MetadataSection{xmpLabelSection("Beach")}
	cache := newFakeCache()

	cmd := NewIndexFolderCommand(library, reader, cache, application.NewGate(1), "/photos")
	if _, err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if cache.stores != 1 {
		t.Fatalf("expected one store, got %d", cache.stores)
	}
	d, err := cache.Lookup("/photos/a.jpg", 512, modTime)
	if err != nil || d == nil {
		t.Fatalf("stored derivation not found: %v, %v", d, err)
	}
	if d.Label != "Beach" {
		t.Errorf("unexpected cached label: %q", d.Label)
	}
}

func TestIndexFolder_ProgressReportsEveryFile(t *testing.T) {
	library := &fakeLibrary{entries: map[string][]domain.FileEntry{
		"/photos": {{Path: "a.jpg"}, {Path: "b.jpg"}, {Path: "c.jpg"}},
	}}
	reader := newFakeReader()

	cmd := NewIndexFolderCommand(library, reader, nil, application.NewGate(3), "/photos")
	var mu sync.Mutex
	var dones []int
	cmd.OnProgress = func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		if total != 3 {
			t.Errorf("unexpected total %d", total)
		}
		dones = append(dones, done)
	}

	if _, err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(dones) != 3 {
		t.Fatalf("expected 3 progress calls, got %d", len(dones))
	}
	for i, done := range dones {
		if done != i+1 {
			t.Errorf("progress out of order: %v", dones)
			break
		}
	}
}

func TestIndexFolder_ListFailureFailsTheCall(t *testing.T) {
	boom := errors.New("mount gone")
	library := &fakeLibrary{err: boom}

	cmd := NewIndexFolderCommand(library, newFakeReader(), nil, application.NewGate(1), "/photos")
	_, err := cmd.Execute(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped list error, got %v", err)
	}
	if !contains(err.Error(), "failed to list media files") {
		t.Errorf("unexpected message: %v", err)
	}
}
