package contract

type NotionConnectRequest struct {
	APIKey     string `json:"api_key" validate:"required,nospaces"`
	DatabaseID string `json:"database_id" validate:"required,nospaces"`
}

type NotionStatusResponse struct {
	Connected bool `json:"connected"`
}
