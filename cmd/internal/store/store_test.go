package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sorta/cmd/internal/domain/entity"
	"sorta/cmd/internal/domain/events"
	"sorta/cmd/internal/domain/sqlite"
	"sorta/cmd/internal/domain/sqlite/repository"
	"sorta/cmd/internal/media"
	"sorta/cmd/internal/seed"
	"sorta/cmd/internal/utils/uid"
	"testing"
	"time"

	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	uid.Init(1)
	os.Exit(m.Run())
}

type noopMedia struct{}

func (noopMedia) Delete(string) error { return nil }

type stubSyncer struct {
	connected bool
	err       error
	calls     chan *entity.Note
}

func (s *stubSyncer) Connected() bool { return s.connected }

func (s *stubSyncer) SyncNote(_ context.Context, note *entity.Note) (string, error) {
	if s.calls != nil {
		s.calls <- note
	}
	if s.err != nil {
		return "", s.err
	}
	return "page-1", nil
}

// failingNoteRepo injects storage faults after the store has loaded.
type failingNoteRepo struct {
	NoteRepository
	failSave   bool
	failDelete bool
}

func (f *failingNoteRepo) Save(note *entity.Note) error {
	if f.failSave {
		return errors.New("disk full")
	}
	return f.NoteRepository.Save(note)
}

func (f *failingNoteRepo) Delete(id string) error {
	if f.failDelete {
		return errors.New("disk full")
	}
	return f.NoteRepository.Delete(id)
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := sqlite.Init(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return db
}

func newTestStore(t *testing.T, db *gorm.DB) *Store {
	t.Helper()

	s, err := New(repository.NewNoteRepository(db), repository.NewCategoryRepository(db), noopMedia{}, events.NewBus())
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}
	return s
}

func seedCategories(t *testing.T, s *Store, ids ...string) {
	t.Helper()

	categories := make([]*entity.Category, len(ids))
	for i, id := range ids {
		categories[i] = &entity.Category{ID: id, Name: id, Emoji: "📝", Color: "#6B7280"}
	}
	if err := s.ReplaceCategories(categories); err != nil {
		t.Fatalf("failed to seed categories: %v", err)
	}
}

func TestCreateNote_DurabilityRoundTrip(t *testing.T) {
	db := openTestDB(t)
	s := newTestStore(t, db)
	seedCategories(t, s, "notiz", "arbeit")

	attachments := []entity.MediaAttachment{
		{ID: "a1", Type: entity.MediaAudio, URI: "/tmp/a1.m4a", Filename: "a1.m4a", Size: 123, Duration: 4.2},
		{ID: "a2", Type: entity.MediaImage, URI: "/tmp/a2.jpg", Filename: "a2.jpg", Size: 456, Width: 300, Height: 200},
	}

	created, err := s.CreateNote("hello", []string{"arbeit", "notiz"}, entity.PriorityHigh, attachments)
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}
	if created.ID == "" || created.Timestamp == "" {
		t.Fatal("id and timestamp must be assigned by the store")
	}

	// A fresh store over the same durable layer must see the same note.
	reloaded := newTestStore(t, db)
	notes := reloaded.Notes()
	if len(notes) != 1 {
		t.Fatalf("got %d notes after reload, want 1", len(notes))
	}

	got := notes[0]
	if got.ID != created.ID || got.Timestamp != created.Timestamp {
		t.Errorf("id/timestamp changed across reload: %+v vs %+v", got, created)
	}
	if got.Content != "hello" || got.Priority != entity.PriorityHigh {
		t.Errorf("content/priority changed across reload: %+v", got)
	}
	if len(got.Categories) != 2 || got.Categories[0] != "arbeit" || got.Categories[1] != "notiz" {
		t.Errorf("category order not preserved: %v", got.Categories)
	}
	if len(got.Attachments) != 2 || got.Attachments[0] != attachments[0] || got.Attachments[1] != attachments[1] {
		t.Errorf("attachments changed across reload: %+v", got.Attachments)
	}
}

func TestCreateNote_Validation(t *testing.T) {
	db := openTestDB(t)
	s := newTestStore(t, db)
	seedCategories(t, s, "notiz")

	tests := []struct {
		name        string
		content     string
		categories  []string
		priority    entity.Priority
		attachments []entity.MediaAttachment
		wantErr     error
	}{
		{name: "no categories", content: "x", wantErr: ErrNoCategories},
		{name: "empty note", categories: []string{"notiz"}, wantErr: ErrEmptyNote},
		{name: "unknown category", content: "x", categories: []string{"nope"}, wantErr: ErrUnknownCategory},
		{name: "bad priority", content: "x", categories: []string{"notiz"}, priority: "urgent", wantErr: ErrInvalidPriority},
		{
			name:        "attachment instead of content",
			categories:  []string{"notiz"},
			attachments: []entity.MediaAttachment{{ID: "a", Type: entity.MediaImage, URI: "/x", Filename: "x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateNote(tt.content, tt.categories, tt.priority, tt.attachments)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("CreateNote failed: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateNote_DefaultsPriority(t *testing.T) {
	db := openTestDB(t)
	s := newTestStore(t, db)
	seedCategories(t, s, "notiz")

	note, err := s.CreateNote("x", []string{"notiz"}, "", nil)
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}
	if note.Priority != entity.PriorityMedium {
		t.Errorf("got priority %q, want medium", note.Priority)
	}
}

func TestNotes_NewestFirst(t *testing.T) {
	db := openTestDB(t)
	s := newTestStore(t, db)
	seedCategories(t, s, "notiz")

	var ids []string
	for _, content := range []string{"one", "two", "three", "four"} {
		note, err := s.CreateNote(content, []string{"notiz"}, "", nil)
		if err != nil {
			t.Fatalf("CreateNote failed: %v", err)
		}
		ids = append(ids, note.ID)
	}

	notes := s.Notes()
	if len(notes) != len(ids) {
		t.Fatalf("got %d notes, want %d", len(notes), len(ids))
	}

	// Newest first; equal timestamps fall back to reverse creation order.
	for i, note := range notes {
		if want := ids[len(ids)-1-i]; note.ID != want {
			t.Errorf("position %d: got %s, want %s", i, note.ID, want)
		}
	}
	for i := 1; i < len(notes); i++ {
		if notes[i].Timestamp > notes[i-1].Timestamp {
			t.Errorf("timestamps not descending at %d: %s > %s", i, notes[i].Timestamp, notes[i-1].Timestamp)
		}
	}
}

func TestCreateNote_DurableFailureLeavesMemoryUntouched(t *testing.T) {
	db := openTestDB(t)
	noteRepo := &failingNoteRepo{NoteRepository: repository.NewNoteRepository(db)}

	s, err := New(noteRepo, repository.NewCategoryRepository(db), noopMedia{}, events.NewBus())
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}
	seedCategories(t, s, "notiz")

	if _, err := s.CreateNote("ok", []string{"notiz"}, "", nil); err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	noteRepo.failSave = true
	before := len(s.Notes())

	_, err = s.CreateNote("broken", []string{"notiz"}, "", nil)
	if !errors.Is(err, ErrDurableWrite) {
		t.Fatalf("got %v, want ErrDurableWrite", err)
	}
	if after := len(s.Notes()); after != before {
		t.Errorf("in-memory collection changed on failed write: %d -> %d", before, after)
	}
}

func TestDeleteNote_DurableFailureLeavesMemoryUntouched(t *testing.T) {
	db := openTestDB(t)
	noteRepo := &failingNoteRepo{NoteRepository: repository.NewNoteRepository(db)}

	s, err := New(noteRepo, repository.NewCategoryRepository(db), noopMedia{}, events.NewBus())
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}
	seedCategories(t, s, "notiz")

	note, err := s.CreateNote("keep me", []string{"notiz"}, "", nil)
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	noteRepo.failDelete = true
	if err := s.DeleteNote(note.ID); !errors.Is(err, ErrDurableWrite) {
		t.Fatalf("got %v, want ErrDurableWrite", err)
	}
	if len(s.Notes()) != 1 {
		t.Error("note vanished from memory although the durable delete failed")
	}
}

func TestDeleteNote_UnknownIDIsSuccess(t *testing.T) {
	db := openTestDB(t)
	s := newTestStore(t, db)
	seedCategories(t, s, "notiz")

	if _, err := s.CreateNote("x", []string{"notiz"}, "", nil); err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	before := len(s.Notes())
	if err := s.DeleteNote("no-such-id"); err != nil {
		t.Fatalf("deleting an unknown id must succeed, got %v", err)
	}
	if len(s.Notes()) != before {
		t.Error("collection changed on unknown-id delete")
	}
}

func TestDeleteNote_RemovesAttachmentFiles(t *testing.T) {
	db := openTestDB(t)

	mediaStore, err := media.NewStore(filepath.Join(t.TempDir(), "media"))
	if err != nil {
		t.Fatalf("failed to init media store: %v", err)
	}

	s, err := New(repository.NewNoteRepository(db), repository.NewCategoryRepository(db), mediaStore, events.NewBus())
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}
	seedCategories(t, s, "notiz")

	source := filepath.Join(t.TempDir(), "capture.bin")
	if err := os.WriteFile(source, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}

	first, err := mediaStore.Save(source, entity.MediaAudio)
	if err != nil {
		t.Fatalf("failed to save media: %v", err)
	}
	second, err := mediaStore.Save(source, entity.MediaImage)
	if err != nil {
		t.Fatalf("failed to save media: %v", err)
	}

	note, err := s.CreateNote("", []string{"notiz"}, "", []entity.MediaAttachment{*first, *second})
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	if err := s.DeleteNote(note.ID); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}

	for _, uri := range []string{first.URI, second.URI} {
		if _, err := os.Stat(uri); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("attachment file %s still exists after note deletion", uri)
		}
	}
}

func TestUpdateNote_MergesOnlyProvidedFields(t *testing.T) {
	db := openTestDB(t)
	s := newTestStore(t, db)
	seedCategories(t, s, "notiz", "arbeit")

	note, err := s.CreateNote("original", []string{"notiz"}, entity.PriorityLow, nil)
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	content := "edited"
	priority := entity.PriorityHigh
	updated, err := s.UpdateNote(note.ID, NotePatch{Content: &content, Priority: &priority})
	if err != nil {
		t.Fatalf("UpdateNote failed: %v", err)
	}

	if updated.Content != "edited" || updated.Priority != entity.PriorityHigh {
		t.Errorf("patch not applied: %+v", updated)
	}
	if updated.ID != note.ID || updated.Timestamp != note.Timestamp {
		t.Error("id and timestamp must be immutable")
	}
	if len(updated.Categories) != 1 || updated.Categories[0] != "notiz" {
		t.Errorf("untouched categories changed: %v", updated.Categories)
	}

	// The merged note must be the durable one.
	reloaded := newTestStore(t, db)
	if got := reloaded.Notes()[0]; got.Content != "edited" || got.Priority != entity.PriorityHigh {
		t.Errorf("merge not durable: %+v", got)
	}
}

func TestUpdateNote_UnknownID(t *testing.T) {
	db := openTestDB(t)
	s := newTestStore(t, db)

	if _, err := s.UpdateNote("missing", NotePatch{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestCreateNote_RemoteFailureIsIsolated(t *testing.T) {
	db := openTestDB(t)
	s := newTestStore(t, db)
	seedCategories(t, s, "notiz")

	syncer := &stubSyncer{
		connected: true,
		err:       errors.New("notion is down"),
		calls:     make(chan *entity.Note, 1),
	}
	s.SetSyncer(syncer)

	note, err := s.CreateNote("test", []string{"notiz"}, entity.PriorityMedium, nil)
	if err != nil {
		t.Fatalf("CreateNote must not fail on remote errors: %v", err)
	}
	if len(s.Notes()) != 1 {
		t.Fatal("note missing from local collection")
	}

	// Exactly one attempt, no retry.
	select {
	case synced := <-syncer.calls:
		if synced.ID != note.ID {
			t.Errorf("synced wrong note: %s", synced.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected one sync attempt")
	}
	select {
	case <-syncer.calls:
		t.Fatal("unexpected second sync attempt")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCreateNote_NoSyncWhenDisconnected(t *testing.T) {
	db := openTestDB(t)
	s := newTestStore(t, db)
	seedCategories(t, s, "notiz")

	syncer := &stubSyncer{connected: false, calls: make(chan *entity.Note, 1)}
	s.SetSyncer(syncer)

	if _, err := s.CreateNote("offline", []string{"notiz"}, "", nil); err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	select {
	case <-syncer.calls:
		t.Fatal("sync attempted while disconnected")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestReplaceCategories_Wholesale(t *testing.T) {
	db := openTestDB(t)
	s := newTestStore(t, db)
	seedCategories(t, s, "a", "b", "c", "d", "e")

	next := []*entity.Category{
		{ID: "x", Name: "X", Emoji: "❌", Color: "#000000"},
		{ID: "y", Name: "Y", Emoji: "✅", Color: "#111111"},
		{ID: "z", Name: "Z", Emoji: "📝", Color: "#222222"},
	}
	if err := s.ReplaceCategories(next); err != nil {
		t.Fatalf("ReplaceCategories failed: %v", err)
	}

	reloaded := newTestStore(t, db)
	got := reloaded.Categories()
	if len(got) != 3 {
		t.Fatalf("got %d categories after reload, want 3", len(got))
	}
	for _, category := range got {
		if category.ID != "x" && category.ID != "y" && category.ID != "z" {
			t.Errorf("stale category survived the replace: %s", category.ID)
		}
	}
}

func TestEndToEnd_SeedCreateDelete(t *testing.T) {
	db := openTestDB(t)
	s := newTestStore(t, db)

	if len(s.Categories()) != 0 {
		t.Fatal("fresh store must start with zero categories")
	}

	if err := s.ReplaceCategories(seed.DefaultCategories()); err != nil {
		t.Fatalf("seeding failed: %v", err)
	}
	if len(s.Categories()) != 18 {
		t.Fatalf("got %d categories, want 18", len(s.Categories()))
	}

	note, err := s.CreateNote("Buy milk", []string{"einkaufen"}, entity.PriorityLow, nil)
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}
	if len(s.Notes()) != 1 {
		t.Fatalf("got %d notes, want 1", len(s.Notes()))
	}

	if err := s.DeleteNote(note.ID); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}
	if len(s.Notes()) != 0 {
		t.Fatalf("got %d notes after delete, want 0", len(s.Notes()))
	}
}

func TestMutations_PublishEvents(t *testing.T) {
	db := openTestDB(t)
	bus := events.NewBus()

	var seen []events.Type
	bus.Subscribe(func(event events.Event) {
		seen = append(seen, event.GetType())
	})

	s, err := New(repository.NewNoteRepository(db), repository.NewCategoryRepository(db), noopMedia{}, bus)
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}
	seedCategories(t, s, "notiz")

	note, err := s.CreateNote("x", []string{"notiz"}, "", nil)
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}
	content := "y"
	if _, err := s.UpdateNote(note.ID, NotePatch{Content: &content}); err != nil {
		t.Fatalf("UpdateNote failed: %v", err)
	}
	if err := s.DeleteNote(note.ID); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}

	want := []events.Type{
		events.TypeCategoriesReplaced,
		events.TypeNoteCreated,
		events.TypeNoteUpdated,
		events.TypeNoteDeleted,
	}
	if len(seen) != len(want) {
		t.Fatalf("got %d events, want %d: %v", len(seen), len(want), seen)
	}
	for i, eventType := range want {
		if seen[i] != eventType {
			t.Errorf("event %d: got %s, want %s", i, seen[i], eventType)
		}
	}
}
