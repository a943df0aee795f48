package service

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sorta/cmd/internal/contract"
	"sorta/cmd/internal/domain/entity"
	"sorta/cmd/internal/media"
	"sorta/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

type DefaultMediaService struct {
	Media *media.Store
}

func NewMediaService(mediaStore *media.Store) *DefaultMediaService {
	return &DefaultMediaService{Media: mediaStore}
}

// SaveMedia copies an uploaded capture into durable media storage and
// returns the attachment reference. The copy completes before the
// response is produced, so the reference is safe to embed in a note.
func (m *DefaultMediaService) SaveMedia(fileHeader *multipart.FileHeader, mediaType string, duration float64) (*contract.AttachmentPayload, apierror.ErrorResponse) {
	mt := entity.MediaType(mediaType)
	if !mt.Valid() {
		return nil, apierror.InvalidMediaType
	}

	if fileHeader.Size > contract.MaxMediaFileSizeBytes {
		return nil, apierror.NewSimple(413, "Media file exceeds %d bytes", contract.MaxMediaFileSizeBytes)
	}

	sourcePath, cleanup, apierr := spoolUpload(fileHeader)
	if apierr != nil {
		return nil, apierr
	}
	defer cleanup()

	attachment, err := m.Media.Save(sourcePath, mt)
	if err != nil {
		log.Errorf("failed to save media file: %v", err)
		return nil, apierror.InternalServerError
	}

	if mt == entity.MediaAudio {
		attachment.Duration = duration
	}

	return &contract.AttachmentPayload{
		ID:       attachment.ID,
		Type:     string(attachment.Type),
		URI:      attachment.URI,
		Filename: attachment.Filename,
		Size:     attachment.Size,
		Duration: attachment.Duration,
		Width:    attachment.Width,
		Height:   attachment.Height,
	}, nil
}

// DeleteMedia removes a file that was saved during composition but never
// made it into a note.
func (m *DefaultMediaService) DeleteMedia(uri string) apierror.ErrorResponse {
	if err := m.Media.Delete(uri); err != nil {
		log.Errorf("failed to delete media file: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

// spoolUpload writes the multipart upload to a temp file so the media
// store can consume it through its path-based interface.
func spoolUpload(fileHeader *multipart.FileHeader) (string, func(), apierror.ErrorResponse) {
	file, err := fileHeader.Open()
	if err != nil {
		log.Errorf("failed to open upload: %v", err)
		return "", nil, apierror.InternalServerError
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "sorta-upload-*"+filepath.Ext(fileHeader.Filename))
	if err != nil {
		log.Errorf("failed to create temp file: %v", err)
		return "", nil, apierror.InternalServerError
	}

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		log.Errorf("failed to spool upload: %v", err)
		return "", nil, apierror.InternalServerError
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		log.Errorf("failed to spool upload: %v", err)
		return "", nil, apierror.InternalServerError
	}

	cleanup := func() {
		_ = os.Remove(tmp.Name())
	}
	return tmp.Name(), cleanup, nil
}
