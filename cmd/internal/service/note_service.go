package service

import (
	"sorta/cmd/internal/contract"
	"sorta/cmd/internal/domain/entity"
	"sorta/cmd/internal/store"
	"sorta/cmd/internal/utils"
	"sorta/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
)

// LocalStore is the slice of the store the note service needs.
type LocalStore interface {
	Notes() []*entity.Note
	CreateNote(content string, categories []string, priority entity.Priority, attachments []entity.MediaAttachment) (*entity.Note, error)
	UpdateNote(id string, patch store.NotePatch) (*entity.Note, error)
	DeleteNote(id string) error
}

type DefaultNoteService struct {
	Store    LocalStore
	Validate *validator.Validate
}

func NewNoteService(localStore LocalStore, validate *validator.Validate) *DefaultNoteService {
	return &DefaultNoteService{
		Store:    localStore,
		Validate: validate,
	}
}

func (n *DefaultNoteService) GetAllNotes() []*contract.NoteResponse {
	notes := n.Store.Notes()

	resp := make([]*contract.NoteResponse, len(notes))
	for i, note := range notes {
		resp[i] = toNoteResponse(note)
	}
	return resp
}

func (n *DefaultNoteService) CreateNote(req *contract.NoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	note, err := n.Store.CreateNote(
		req.Content,
		req.Categories,
		entity.Priority(req.Priority),
		toEntityAttachments(req.Attachments),
	)
	if err != nil {
		return nil, toAPIError(err)
	}
	return toNoteResponse(note), nil
}

func (n *DefaultNoteService) UpdateNote(noteID string, req *contract.UpdateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	patch := store.NotePatch{
		Content:    req.Content,
		Categories: req.Categories,
	}
	if req.Priority != nil {
		priority := entity.Priority(*req.Priority)
		patch.Priority = &priority
	}
	if req.Attachments != nil {
		patch.Attachments = toEntityAttachments(req.Attachments)
	}

	note, err := n.Store.UpdateNote(noteID, patch)
	if err != nil {
		return nil, toAPIError(err)
	}
	return toNoteResponse(note), nil
}

func (n *DefaultNoteService) DeleteNote(noteID string) apierror.ErrorResponse {
	if err := n.Store.DeleteNote(noteID); err != nil {
		return toAPIError(err)
	}
	return nil
}

func toNoteResponse(note *entity.Note) *contract.NoteResponse {
	return &contract.NoteResponse{
		ID:          note.ID,
		Content:     note.Content,
		Categories:  note.Categories,
		Timestamp:   note.Timestamp,
		Priority:    string(note.Priority),
		Attachments: toAttachmentPayloads(note.Attachments),
	}
}

func toAttachmentPayloads(attachments []entity.MediaAttachment) []contract.AttachmentPayload {
	if len(attachments) == 0 {
		return nil
	}

	payloads := make([]contract.AttachmentPayload, len(attachments))
	for i, a := range attachments {
		payloads[i] = contract.AttachmentPayload{
			ID:       a.ID,
			Type:     string(a.Type),
			URI:      a.URI,
			Filename: a.Filename,
			Size:     a.Size,
			Duration: a.Duration,
			Width:    a.Width,
			Height:   a.Height,
		}
	}
	return payloads
}

func toEntityAttachments(payloads []contract.AttachmentPayload) []entity.MediaAttachment {
	if len(payloads) == 0 {
		return nil
	}

	attachments := make([]entity.MediaAttachment, len(payloads))
	for i, p := range payloads {
		attachments[i] = entity.MediaAttachment{
			ID:       p.ID,
			Type:     entity.MediaType(p.Type),
			URI:      p.URI,
			Filename: p.Filename,
			Size:     p.Size,
			Duration: p.Duration,
			Width:    p.Width,
			Height:   p.Height,
		}
	}
	return attachments
}
