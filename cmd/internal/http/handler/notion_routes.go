package handler

import (
	"context"
	"net/http"
	"sorta/cmd/internal/contract"
	"sorta/cmd/internal/utils"
	"sorta/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// UserIDHeader carries the caller's user id; identity itself is handled
// outside this service.
const UserIDHeader = "X-User-ID"

type NotionConnector interface {
	Connect(ctx context.Context, userID, apiKey, databaseID string) (bool, error)
	Disconnect(ctx context.Context, userID string) error
	Connected() bool
	TestConnection(ctx context.Context) bool
}

type DefaultNotionRoute struct {
	Notion   NotionConnector
	Validate *validator.Validate
}

func NewNotionDefault(notion NotionConnector, validate *validator.Validate) *DefaultNotionRoute {
	return &DefaultNotionRoute{
		Notion:   notion,
		Validate: validate,
	}
}

func (n *DefaultNotionRoute) Connect(c echo.Context) error {
	userID := c.Request().Header.Get(UserIDHeader)
	if userID == "" {
		return c.JSON(http.StatusBadRequest, apierror.MissingUserIDError)
	}

	var req contract.NotionConnectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	utils.Sanitize(&req)
	if valerr := n.Validate.Struct(&req); valerr != nil {
		apierr := apierror.FromValidationError(valerr)
		return c.JSON(apierr.Code(), apierr)
	}

	ok, err := n.Notion.Connect(c.Request().Context(), userID, req.APIKey, req.DatabaseID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
	}
	if !ok {
		return c.JSON(http.StatusBadRequest, apierror.InvalidCredsError)
	}

	return c.JSON(http.StatusOK, &contract.NotionStatusResponse{Connected: true})
}

func (n *DefaultNotionRoute) Disconnect(c echo.Context) error {
	userID := c.Request().Header.Get(UserIDHeader)
	if userID == "" {
		return c.JSON(http.StatusBadRequest, apierror.MissingUserIDError)
	}

	if err := n.Notion.Disconnect(c.Request().Context(), userID); err != nil {
		return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
	}
	return c.NoContent(http.StatusNoContent)
}

// Status runs an on-demand connection test; this is the only place
// remote availability is ever reported to the user.
func (n *DefaultNotionRoute) Status(c echo.Context) error {
	connected := n.Notion.Connected() && n.Notion.TestConnection(c.Request().Context())
	return c.JSON(http.StatusOK, &contract.NotionStatusResponse{Connected: connected})
}
