package storage

import (
	"Streamify/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	now := time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)
	key := ObjectKey("Streamify_Videotube", KindVideo, "Xy7kq0LmN3pA", ".mp4", now)
	assert.Equal(t, "Streamify_Videotube/video/2024/03/07/Xy7kq0LmN3pA.mp4", key)
}

func TestCheckKey(t *testing.T) {
	folder := "Streamify_Videotube"

	assert.NoError(t, checkKey(folder, "Streamify_Videotube/image/2024/03/07/a.png", KindImage))

	for _, id := range []string{
		"",
		"Streamify_Videotube/video/2024/03/07/a.mp4",
		"other/image/2024/03/07/a.png",
		"Streamify_Videotube/image/../video/a.mp4",
	} {
		assert.ErrorIs(t, checkKey(folder, id, KindImage), ErrForeignObject, id)
	}
}

func TestParseDuration(t *testing.T) {
	d, err := ParseDuration(`{"streams":[],"format":{"filename":"a.mp4","duration":"12.480000"}}`)
	require.NoError(t, err)
	assert.InDelta(t, 12.48, d, 1e-9)

	_, err = ParseDuration(`{"format":{}}`)
	assert.Error(t, err)
}

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/a/b.png", joinURL("https://cdn.example.com/", "a/b.png"))
}

func TestNewStoreRejectsUnknownDriver(t *testing.T) {
	_, err := NewStore(&config.Storage{Driver: "s3"})
	assert.Error(t, err)

	_, err = NewStore(&config.Storage{Driver: config.StorageDriverOss})
	assert.Error(t, err)
}
