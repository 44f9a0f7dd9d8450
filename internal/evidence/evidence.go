// Package evidence holds the single file a user has attached during a session.
// Attachments are never persisted and their contents are not parsed.
package evidence

import (
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/comigor/casehelper-go/internal/config"
	"github.com/comigor/casehelper-go/internal/logger"
)

var (
	ErrNoAttachment = errors.New("evidence: nothing attached")
	ErrNotImage     = errors.New("evidence: attachment is not an image")
)

// Attachment references one user-selected file.
type Attachment struct {
	ID        string
	Path      string
	Name      string
	MediaType string
}

// IsImage reports whether the declared media type is an image.
func (a Attachment) IsImage() bool {
	return strings.HasPrefix(a.MediaType, "image/")
}

func (a Attachment) String() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.MediaType)
}

// Holder keeps at most one attachment; each selection replaces the last.
type Holder struct {
	mu            sync.Mutex
	current       *Attachment
	previewWidth  int
	previewHeight int
}

func NewHolder(cfg config.EvidenceConfig) *Holder {
	h := &Holder{previewWidth: cfg.PreviewWidth, previewHeight: cfg.PreviewHeight}
	if h.previewWidth <= 0 {
		h.previewWidth = 200
	}
	if h.previewHeight <= 0 {
		h.previewHeight = 200
	}
	return h
}

// Select detects the media type of the file at path and makes it the current
// attachment.
func (h *Holder) Select(path string) (Attachment, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("detect media type: %w", err)
	}
	a := Attachment{
		ID:        uuid.NewString(),
		Path:      path,
		Name:      filepath.Base(path),
		MediaType: mt.String(),
	}

	h.mu.Lock()
	h.current = &a
	h.mu.Unlock()

	logger.L.Info("evidence attached", "id", a.ID, "name", a.Name, "media_type", a.MediaType)
	return a, nil
}

// Current returns the attachment, if any.
func (h *Holder) Current() (Attachment, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return Attachment{}, false
	}
	return *h.current, true
}

// Clear drops the attachment.
func (h *Holder) Clear() {
	h.mu.Lock()
	h.current = nil
	h.mu.Unlock()
}

// Preview writes a PNG thumbnail of the current image attachment to w.
func (h *Holder) Preview(w io.Writer) (image.Rectangle, error) {
	a, ok := h.Current()
	if !ok {
		return image.Rectangle{}, ErrNoAttachment
	}
	if !a.IsImage() {
		return image.Rectangle{}, ErrNotImage
	}
	img, err := imaging.Open(a.Path, imaging.AutoOrientation(true))
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("open image: %w", err)
	}
	thumb := imaging.Fit(img, h.previewWidth, h.previewHeight, imaging.Lanczos)
	if err := imaging.Encode(w, thumb, imaging.PNG); err != nil {
		return image.Rectangle{}, fmt.Errorf("encode preview: %w", err)
	}
	return thumb.Bounds(), nil
}
