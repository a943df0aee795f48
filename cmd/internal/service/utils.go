package service

import (
	"errors"
	"net/http"
	"sorta/cmd/internal/store"
	"sorta/cmd/internal/utils/apierror"
)

// toAPIError maps store errors onto API responses. Anything unrecognized
// is a durable-layer failure and stays a 500: the store has already
// logged the underlying cause.
func toAPIError(err error) apierror.ErrorResponse {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apierror.NotFoundError
	case errors.Is(err, store.ErrNoCategories):
		return apierror.NoCategoriesError
	case errors.Is(err, store.ErrEmptyNote):
		return apierror.EmptyNoteError
	case errors.Is(err, store.ErrUnknownCategory):
		return apierror.NewSimple(http.StatusBadRequest, "Note references an unknown category")
	case errors.Is(err, store.ErrInvalidPriority):
		return apierror.NewSimple(http.StatusBadRequest, "Priority must be low, medium or high")
	default:
		return apierror.InternalServerError
	}
}
