package handler

import (
	"mime/multipart"
	"net/http"
	"sorta/cmd/internal/contract"
	"sorta/cmd/internal/utils/apierror"
	"strconv"

	"github.com/labstack/echo/v4"
)

type MediaService interface {
	SaveMedia(fileHeader *multipart.FileHeader, mediaType string, duration float64) (*contract.AttachmentPayload, apierror.ErrorResponse)
	DeleteMedia(uri string) apierror.ErrorResponse
}

type DefaultMediaRoute struct {
	MediaService MediaService
}

func NewMediaDefault(mediaService MediaService) *DefaultMediaRoute {
	return &DefaultMediaRoute{MediaService: mediaService}
}

// UploadMedia accepts a multipart form with the capture under "file",
// its kind under "type" and, for audio, an optional "duration" seconds
// value measured by the recorder.
func (m *DefaultMediaRoute) UploadMedia(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MissingFileError)
	}

	duration, _ := strconv.ParseFloat(c.FormValue("duration"), 64)

	attachment, apierr := m.MediaService.SaveMedia(fileHeader, c.FormValue("type"), duration)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, attachment)
}

func (m *DefaultMediaRoute) DeleteMedia(c echo.Context) error {
	var req contract.DeleteMediaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}
	if req.URI == "" {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	if apierr := m.MediaService.DeleteMedia(req.URI); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}
