package photo

import (
	"net/http"
	"time"

	"github.com/campusbook/room-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound    = apperror.New(http.StatusNotFound, "photo not found")
	ErrNotAnImage  = apperror.New(http.StatusBadRequest, "uploaded file is not an image")
	ErrNoThumbnail = apperror.New(http.StatusNotFound, "thumbnail not available")
)

// Photo is an uploaded picture of a room.
type Photo struct {
	ID            string    `json:"id"`
	RoomID        int       `json:"room_id"`
	Filename      string    `json:"filename"`
	StoragePath   string    `json:"-"`
	ThumbnailPath *string   `json:"-"`
	ContentType   string    `json:"content_type"`
	Size          int64     `json:"size"`
	CreatedAt     time.Time `json:"created_at"`
}

// URL returns the public URL for a photo by id.
func URL(id string) string {
	return "/v1/photos/" + id
}

// ThumbnailURL returns the public URL for a photo's thumbnail by id.
func ThumbnailURL(id string) string {
	return "/v1/photos/" + id + "/thumbnail"
}
