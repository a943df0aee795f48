package contract

type NoteResponse struct {
	ID          string              `json:"id"`
	Content     string              `json:"content"`
	Categories  []string            `json:"categories"`
	Timestamp   string              `json:"timestamp"`
	Priority    string              `json:"priority"`
	Attachments []AttachmentPayload `json:"attachments,omitempty"`
}

type NoteRequest struct {
	Content     string              `json:"content" validate:"max=1000000"`
	Categories  []string            `json:"categories" validate:"required,min=1,max=50,nodupes,dive,required,nospaces"`
	Priority    string              `json:"priority" validate:"omitempty,oneof=low medium high"`
	Attachments []AttachmentPayload `json:"attachments" validate:"omitempty,dive"`
}

type UpdateNoteRequest struct {
	Content     *string             `json:"content" validate:"omitempty,max=1000000"`
	Categories  []string            `json:"categories" validate:"omitempty,min=1,max=50,nodupes,dive,required,nospaces"`
	Priority    *string             `json:"priority" validate:"omitempty,oneof=low medium high"`
	Attachments []AttachmentPayload `json:"attachments" validate:"omitempty,dive"`
}

// AttachmentPayload is an attachment reference as produced by the media
// upload endpoint and echoed back on note creation.
type AttachmentPayload struct {
	ID       string  `json:"id" validate:"required"`
	Type     string  `json:"type" validate:"required,oneof=audio image"`
	URI      string  `json:"uri" validate:"required"`
	Filename string  `json:"filename" validate:"required"`
	Size     int64   `json:"size,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Width    int     `json:"width,omitempty"`
	Height   int     `json:"height,omitempty"`
}
