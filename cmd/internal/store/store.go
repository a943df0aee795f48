package store

import (
	"context"
	"errors"
	"fmt"
	"sorta/cmd/internal/domain/entity"
	"sorta/cmd/internal/domain/events"
	"sorta/cmd/internal/utils"
	"sorta/cmd/internal/utils/uid"
	"sync"
	"time"

	"github.com/labstack/gommon/log"
)

var (
	// ErrNotFound reports a mutation referencing an unknown note id.
	// Deletes treat unknown ids as success and never return it.
	ErrNotFound = errors.New("note not found")

	// ErrDurableWrite wraps storage-engine failures. When it is returned
	// the in-memory state still matches what was last durably committed.
	ErrDurableWrite = errors.New("durable write failed")

	ErrNoCategories    = errors.New("note needs at least one category")
	ErrEmptyNote       = errors.New("note needs content or an attachment")
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrUnknownCategory is checked at write time only: deleting a
	// category later never cascades into existing notes.
	ErrUnknownCategory = errors.New("unknown category")
)

type NoteRepository interface {
	FindAll() ([]*entity.Note, error)
	Save(note *entity.Note) error
	Delete(id string) error
}

type CategoryRepository interface {
	FindAll() ([]*entity.Category, error)
	ReplaceAll(categories []*entity.Category) error
}

// RemoteSyncer propagates freshly created notes to the remote workspace.
// The store only consults it once per creation and never retries.
type RemoteSyncer interface {
	Connected() bool
	SyncNote(ctx context.Context, note *entity.Note) (string, error)
}

// MediaDeleter removes attachment files during note deletion cleanup.
type MediaDeleter interface {
	Delete(uri string) error
}

// Store is the single source of truth for notes and categories. It keeps
// an in-memory view that always matches durable storage: every mutation
// writes durably first and touches memory only on success.
//
// A single mutex serializes all mutations, so the durable-write-then-
// memory-update sequence of one mutation never interleaves with another.
type Store struct {
	mu       sync.Mutex
	noteRepo NoteRepository
	catRepo  CategoryRepository
	media    MediaDeleter
	bus      *events.Bus
	syncer   RemoteSyncer

	notes      []*entity.Note // newest first
	categories []*entity.Category
}

// New opens the store over the given durable layer and loads all notes
// (newest first) and categories into memory. Seeding an empty category
// set is the caller's job, not the store's.
func New(noteRepo NoteRepository, catRepo CategoryRepository, media MediaDeleter, bus *events.Bus) (*Store, error) {
	notes, err := noteRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("store: load notes: %w", err)
	}

	categories, err := catRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("store: load categories: %w", err)
	}

	return &Store{
		noteRepo:   noteRepo,
		catRepo:    catRepo,
		media:      media,
		bus:        bus,
		notes:      notes,
		categories: categories,
	}, nil
}

// SetSyncer installs (or removes, with nil) the remote propagation path.
// Reconfiguration swaps the whole instance rather than mutating a shared
// client in place.
func (s *Store) SetSyncer(syncer RemoteSyncer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncer = syncer
}

// Notes returns a snapshot of the in-memory collection, newest first.
func (s *Store) Notes() []*entity.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]*entity.Note, len(s.notes))
	copy(snapshot, s.notes)
	return snapshot
}

func (s *Store) Categories() []*entity.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]*entity.Category, len(s.categories))
	copy(snapshot, s.categories)
	return snapshot
}

// CreateNote assigns a fresh id and creation timestamp, writes the note
// durably, prepends it to the in-memory collection and, if a connected
// syncer is installed, fires exactly one background propagation attempt.
// The caller never waits on (or hears about) the remote outcome.
func (s *Store) CreateNote(content string, categoryIDs []string, priority entity.Priority, attachments []entity.MediaAttachment) (*entity.Note, error) {
	s.mu.Lock()
	note, err := s.createNoteLocked(content, categoryIDs, priority, attachments)
	syncer := s.syncer
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}

	s.bus.Publish(&events.NoteCreated{Note: note})

	if syncer != nil && syncer.Connected() {
		go s.propagate(syncer, note)
	}
	return note, nil
}

func (s *Store) createNoteLocked(content string, categoryIDs []string, priority entity.Priority, attachments []entity.MediaAttachment) (*entity.Note, error) {
	if len(categoryIDs) == 0 {
		return nil, ErrNoCategories
	}
	if content == "" && len(attachments) == 0 {
		return nil, ErrEmptyNote
	}
	if priority == "" {
		priority = entity.PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
	}
	if err := s.checkCategoriesLocked(categoryIDs); err != nil {
		return nil, err
	}

	note := &entity.Note{
		ID:          uid.Generate(),
		Content:     content,
		Categories:  categoryIDs,
		Timestamp:   utils.NowISO(),
		Priority:    priority,
		Attachments: attachments,
	}

	if err := s.noteRepo.Save(note); err != nil {
		log.Errorf("failed to save note: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrDurableWrite, err)
	}

	// Prepend keeps newest-first order; ties on equal timestamps resolve
	// to reverse creation order for free.
	s.notes = append([]*entity.Note{note}, s.notes...)
	return note, nil
}

// NotePatch carries the fields UpdateNote may merge onto an existing
// note. Nil fields are left untouched; id and timestamp are immutable.
type NotePatch struct {
	Content     *string
	Categories  []string
	Priority    *entity.Priority
	Attachments []entity.MediaAttachment
}

// UpdateNote merges the patch onto the stored note, writes the merged row
// durably and only then swaps it into the in-memory collection. Unknown
// ids return ErrNotFound.
func (s *Store) UpdateNote(id string, patch NotePatch) (*entity.Note, error) {
	s.mu.Lock()
	note, err := s.updateNoteLocked(id, patch)
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}

	s.bus.Publish(&events.NoteUpdated{Note: note})
	return note, nil
}

func (s *Store) updateNoteLocked(id string, patch NotePatch) (*entity.Note, error) {
	idx := s.indexOfLocked(id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	merged := *s.notes[idx]
	if patch.Content != nil {
		merged.Content = *patch.Content
	}
	if patch.Categories != nil {
		if len(patch.Categories) == 0 {
			return nil, ErrNoCategories
		}
		if err := s.checkCategoriesLocked(patch.Categories); err != nil {
			return nil, err
		}
		merged.Categories = patch.Categories
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, *patch.Priority)
		}
		merged.Priority = *patch.Priority
	}
	if patch.Attachments != nil {
		merged.Attachments = patch.Attachments
	}

	if err := s.noteRepo.Save(&merged); err != nil {
		log.Errorf("failed to update note: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrDurableWrite, err)
	}

	s.notes[idx] = &merged
	return &merged, nil
}

// DeleteNote removes the note durably, then from memory, then deletes its
// attachment files. Unknown ids are success, not an error.
//
// Files go last: a crash between the row delete and the file deletes can
// only orphan files, never leave a durable row pointing at nothing.
// Cleanup failures are logged and do not undo the deletion.
func (s *Store) DeleteNote(id string) error {
	s.mu.Lock()
	attachments, deleted, err := s.deleteNoteLocked(id)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if !deleted {
		return nil
	}

	s.bus.Publish(&events.NoteDeleted{NoteID: id})

	for _, attachment := range attachments {
		if err := s.media.Delete(attachment.URI); err != nil {
			log.Errorf("failed to delete attachment file: %v", err)
		}
	}
	return nil
}

func (s *Store) deleteNoteLocked(id string) ([]entity.MediaAttachment, bool, error) {
	idx := s.indexOfLocked(id)
	if idx < 0 {
		return nil, false, nil
	}

	note := s.notes[idx]
	if err := s.noteRepo.Delete(id); err != nil {
		log.Errorf("failed to delete note: %v", err)
		return nil, false, fmt.Errorf("%w: %w", ErrDurableWrite, err)
	}

	s.notes = append(s.notes[:idx], s.notes[idx+1:]...)
	return note.Attachments, true, nil
}

// ReplaceCategories swaps the whole category set. The durable replace is
// transactional; the in-memory set changes only after it commits.
func (s *Store) ReplaceCategories(categories []*entity.Category) error {
	s.mu.Lock()
	err := s.replaceCategoriesLocked(categories)
	s.mu.Unlock()

	if err != nil {
		return err
	}

	s.bus.Publish(&events.CategoriesReplaced{Categories: categories})
	return nil
}

func (s *Store) replaceCategoriesLocked(categories []*entity.Category) error {
	if err := s.catRepo.ReplaceAll(categories); err != nil {
		log.Errorf("failed to replace categories: %v", err)
		return fmt.Errorf("%w: %w", ErrDurableWrite, err)
	}

	s.categories = make([]*entity.Category, len(categories))
	copy(s.categories, categories)
	return nil
}

func (s *Store) indexOfLocked(id string) int {
	for i, note := range s.notes {
		if note.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) checkCategoriesLocked(ids []string) error {
	for _, id := range ids {
		if !s.hasCategoryLocked(id) {
			return fmt.Errorf("%w: %q", ErrUnknownCategory, id)
		}
	}
	return nil
}

func (s *Store) hasCategoryLocked(id string) bool {
	for _, category := range s.categories {
		if category.ID == id {
			return true
		}
	}
	return false
}

// propagate is the fire-and-forget remote path. At most one attempt per
// created note; failures are logged and never reach the creator.
func (s *Store) propagate(syncer RemoteSyncer, note *entity.Note) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("panic during note sync: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pageID, err := syncer.SyncNote(ctx, note)
	if err != nil {
		log.Errorf("failed to sync note %s: %v", note.ID, err)
		return
	}
	log.Infof("note %s synced to notion: %s", note.ID, pageID)
}
