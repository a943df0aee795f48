package service

import (
	"sorta/cmd/internal/contract"
	"sorta/cmd/internal/domain/entity"
	"sorta/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
)

type CategoryStore interface {
	Categories() []*entity.Category
	ReplaceCategories(categories []*entity.Category) error
}

type DefaultCategoryService struct {
	Store    CategoryStore
	Validate *validator.Validate
}

func NewCategoryService(categoryStore CategoryStore, validate *validator.Validate) *DefaultCategoryService {
	return &DefaultCategoryService{
		Store:    categoryStore,
		Validate: validate,
	}
}

func (c *DefaultCategoryService) GetCategories() []*contract.CategoryResponse {
	categories := c.Store.Categories()

	resp := make([]*contract.CategoryResponse, len(categories))
	for i, category := range categories {
		resp[i] = &contract.CategoryResponse{
			ID:    category.ID,
			Name:  category.Name,
			Emoji: category.Emoji,
			Color: category.Color,
		}
	}
	return resp
}

func (c *DefaultCategoryService) ReplaceCategories(req *contract.ReplaceCategoriesRequest) apierror.ErrorResponse {
	if valerr := c.Validate.Struct(req); valerr != nil {
		return apierror.FromValidationError(valerr)
	}

	categories := make([]*entity.Category, len(req.Categories))
	for i, cat := range req.Categories {
		categories[i] = &entity.Category{
			ID:    cat.ID,
			Name:  cat.Name,
			Emoji: cat.Emoji,
			Color: cat.Color,
		}
	}

	if err := c.Store.ReplaceCategories(categories); err != nil {
		return toAPIError(err)
	}
	return nil
}
