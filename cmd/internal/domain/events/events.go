package events

import "sorta/cmd/internal/domain/entity"

type Type string

const (
	TypeNoteCreated        Type = "NOTE_CREATED"
	TypeNoteUpdated        Type = "NOTE_UPDATED"
	TypeNoteDeleted        Type = "NOTE_DELETED"
	TypeCategoriesReplaced Type = "CATEGORIES_REPLACED"
)

type Event interface {
	GetType() Type
}

// NoteCreated carries the full note as committed to storage.
type NoteCreated struct {
	Note *entity.Note
}

func (e *NoteCreated) GetType() Type {
	return TypeNoteCreated
}

// NoteUpdated carries the merged note after a patch.
type NoteUpdated struct {
	Note *entity.Note
}

func (e *NoteUpdated) GetType() Type {
	return TypeNoteUpdated
}

// NoteDeleted carries only the note id.
type NoteDeleted struct {
	NoteID string
}

func (e *NoteDeleted) GetType() Type {
	return TypeNoteDeleted
}

// CategoriesReplaced carries the new full category set.
type CategoriesReplaced struct {
	Categories []*entity.Category
}

func (e *CategoriesReplaced) GetType() Type {
	return TypeCategoriesReplaced
}
