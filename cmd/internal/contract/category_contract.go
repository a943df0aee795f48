package contract

type CategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

type CategoryRequest struct {
	ID    string `json:"id" validate:"required,min=1,max=40,nospaces"`
	Name  string `json:"name" validate:"required,min=1,max=60"`
	Emoji string `json:"emoji" validate:"required"`
	Color string `json:"color" validate:"required"`
}

// ReplaceCategoriesRequest swaps the whole category set; there is no
// per-category upsert.
type ReplaceCategoriesRequest struct {
	Categories []CategoryRequest `json:"categories" validate:"required,min=1,max=100,dive"`
}
