package entity

type MediaType string

const (
	MediaAudio MediaType = "audio"
	MediaImage MediaType = "image"
)

func (m MediaType) Valid() bool {
	return m == MediaAudio || m == MediaImage
}

// MediaAttachment references a binary payload already copied into the
// app-private media directory. URI points at the durable copy, never at
// the original capture location. Duration applies to audio, Width and
// Height to images.
type MediaAttachment struct {
	ID       string    `json:"id"`
	Type     MediaType `json:"type"`
	URI      string    `json:"uri"`
	Filename string    `json:"filename"`
	Size     int64     `json:"size,omitempty"`
	Duration float64   `json:"duration,omitempty"`
	Width    int       `json:"width,omitempty"`
	Height   int       `json:"height,omitempty"`
}
