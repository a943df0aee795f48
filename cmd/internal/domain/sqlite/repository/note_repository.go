package repository

import (
	"errors"
	"sorta/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultNoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *DefaultNoteRepository {
	return &DefaultNoteRepository{db: db}
}

// FindAll returns every note ordered newest-first. ISO-8601 UTC strings
// sort lexicographically in time order, so the text column is enough.
func (d *DefaultNoteRepository) FindAll() ([]*entity.Note, error) {
	var notes []*entity.Note
	err := d.db.Order("timestamp DESC").Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (d *DefaultNoteRepository) FindByID(id string) (*entity.Note, error) {
	var note entity.Note
	err := d.db.First(&note, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (d *DefaultNoteRepository) Save(note *entity.Note) error {
	return d.db.Save(note).Error
}

func (d *DefaultNoteRepository) Delete(id string) error {
	return d.db.Delete(&entity.Note{}, "id = ?", id).Error
}
