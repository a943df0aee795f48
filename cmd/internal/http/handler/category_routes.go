package handler

import (
	"net/http"
	"sorta/cmd/internal/contract"
	"sorta/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type CategoryService interface {
	GetCategories() []*contract.CategoryResponse
	ReplaceCategories(req *contract.ReplaceCategoriesRequest) apierror.ErrorResponse
}

type DefaultCategoryRoute struct {
	CategoryService CategoryService
}

func NewCategoryDefault(categoryService CategoryService) *DefaultCategoryRoute {
	return &DefaultCategoryRoute{CategoryService: categoryService}
}

func (h *DefaultCategoryRoute) GetCategories(c echo.Context) error {
	categories := h.CategoryService.GetCategories()

	resp := echo.Map{"categories": categories}
	return c.JSON(http.StatusOK, &resp)
}

func (h *DefaultCategoryRoute) ReplaceCategories(c echo.Context) error {
	var req contract.ReplaceCategoriesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	if apierr := h.CategoryService.ReplaceCategories(&req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}
