package media

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sorta/cmd/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

// Store copies capture files into the app-private media directory and
// hands out stable references. It owns no state beyond the filesystem.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("media: init directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save copies the file at sourcePath into durable storage and returns the
// attachment reference. The copy is synchronous: only after Save returns
// may the attachment be embedded in a note.
func (s *Store) Save(sourcePath string, mediaType entity.MediaType) (*entity.MediaAttachment, error) {
	if !mediaType.Valid() {
		return nil, fmt.Errorf("media: unknown type %q", mediaType)
	}

	ext := ".jpg"
	if mediaType == entity.MediaAudio {
		ext = ".m4a"
	}

	filename := uuid.NewString() + ext
	destPath := filepath.Join(s.dir, filename)

	size, err := copyFile(sourcePath, destPath)
	if err != nil {
		return nil, fmt.Errorf("media: save %q: %w", sourcePath, err)
	}

	attachment := &entity.MediaAttachment{
		ID:       uuid.NewString(),
		Type:     mediaType,
		URI:      destPath,
		Filename: filename,
		Size:     size,
	}

	if mediaType == entity.MediaImage {
		if w, h, derr := imageDimensions(destPath); derr == nil {
			attachment.Width = w
			attachment.Height = h
		}
	}
	return attachment, nil
}

// Delete removes the file behind the given reference. A missing file is
// success: the reference is gone either way.
func (s *Store) Delete(uri string) error {
	err := os.Remove(uri)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("media: delete %q: %w", uri, err)
	}
	return nil
}

func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}

	size, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		// Do not leave a truncated copy behind
		if rmerr := os.Remove(dst); rmerr != nil {
			log.Errorf("failed to remove partial media file: %v", rmerr)
		}
		return 0, err
	}
	return size, out.Close()
}

func imageDimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
