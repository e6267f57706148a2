package photo

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbook/room-booking-backend/internal/pkg/storage"
	"github.com/campusbook/room-booking-backend/internal/room"
)

type stubRooms struct{}

func (stubRooms) RoomByID(id int) (*room.Room, error) {
	if id != 1 {
		return nil, room.ErrNotFound
	}
	return &room.Room{ID: 1, Location: "Lassonde", Number: "101", Capacity: 4, Status: room.StatusOperable}, nil
}

func newTestService(t *testing.T) Service {
	t.Helper()
	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewService(NewMemoryRepository(), local, stubRooms{})
}

// uploadHeader builds a multipart file header carrying a real PNG.
func uploadHeader(t *testing.T, filename, contentType string) *multipart.FileHeader {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 400, 300))
	var content bytes.Buffer
	require.NoError(t, png.Encode(&content, img))

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="photo"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	parsed, err := multipart.NewReader(&form, mw.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	require.Len(t, parsed.File["photo"], 1)
	return parsed.File["photo"][0]
}

func TestUploadAndDownload(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	p, err := svc.Upload(ctx, 1, uploadHeader(t, "door.png", "image/png"))
	require.NoError(t, err)
	assert.Equal(t, 1, p.RoomID)
	assert.Equal(t, "door.png", p.Filename)
	assert.NotNil(t, p.ThumbnailPath)

	t.Run("download original", func(t *testing.T) {
		stream, got, err := svc.Download(ctx, p.ID)
		require.NoError(t, err)
		defer stream.Close()

		data, err := io.ReadAll(stream)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
		assert.Equal(t, "image/png", got.ContentType)
	})

	t.Run("download thumbnail", func(t *testing.T) {
		stream, _, err := svc.DownloadThumbnail(ctx, p.ID)
		require.NoError(t, err)
		defer stream.Close()

		// Thumbnails are re-encoded as JPEG and fitted into the 200px box.
		cfg, err := jpeg.DecodeConfig(stream)
		require.NoError(t, err)
		assert.LessOrEqual(t, cfg.Width, 200)
		assert.LessOrEqual(t, cfg.Height, 200)
	})

	t.Run("list by room", func(t *testing.T) {
		photos, err := svc.ListByRoom(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, photos, 1)
	})

	t.Run("delete removes metadata", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, p.ID))
		_, err := svc.Get(ctx, p.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUploadValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	t.Run("unknown room rejected", func(t *testing.T) {
		_, err := svc.Upload(ctx, 99, uploadHeader(t, "door.png", "image/png"))
		assert.ErrorIs(t, err, room.ErrNotFound)
	})

	t.Run("non-image content rejected", func(t *testing.T) {
		_, err := svc.Upload(ctx, 1, uploadHeader(t, "notes.txt", "text/plain"))
		assert.ErrorIs(t, err, ErrNotAnImage)
	})
}
