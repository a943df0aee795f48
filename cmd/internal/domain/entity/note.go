package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Note is the canonical on-device representation of a captured note.
//
// Categories and Attachments are serialized into single text columns
// (ordered JSON arrays) to mirror the mobile client's schema, instead
// of being normalized into join tables.
type Note struct {
	ID          string         `gorm:"primaryKey"`
	Content     string         `gorm:"not null"`
	Categories  CategoryIDs    `gorm:"not null;type:text"`
	Timestamp   string         `gorm:"not null"` // ISO-8601, UTC, assigned once at creation
	Priority    Priority       `gorm:"not null;default:medium"`
	Attachments AttachmentList `gorm:"type:text"`
}

// CategoryIDs is an ordered list of category ids, stored as a JSON array.
// Order is the user's selection order and must survive the round trip.
type CategoryIDs []string

func (c CategoryIDs) Value() (driver.Value, error) {
	data, err := json.Marshal([]string(c))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (c *CategoryIDs) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return json.Unmarshal([]byte(v), c)
	case []byte:
		return json.Unmarshal(v, c)
	case nil:
		*c = nil
		return nil
	default:
		return fmt.Errorf("categories: cannot scan %T", src)
	}
}

// AttachmentList holds the note's media references, stored as a JSON array.
// A note without attachments stores NULL rather than an empty array.
type AttachmentList []MediaAttachment

func (a AttachmentList) Value() (driver.Value, error) {
	if len(a) == 0 {
		return nil, nil
	}
	data, err := json.Marshal([]MediaAttachment(a))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (a *AttachmentList) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return json.Unmarshal([]byte(v), a)
	case []byte:
		return json.Unmarshal(v, a)
	case nil:
		*a = nil
		return nil
	default:
		return fmt.Errorf("attachments: cannot scan %T", src)
	}
}
