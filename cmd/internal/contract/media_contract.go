package contract

const MaxMediaFileSizeBytes = 30 * 1024 * 1024

type DeleteMediaRequest struct {
	URI string `json:"uri" validate:"required"`
}
