package upload

import (
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsAllowed(t *testing.T) {
	for _, ct := range []string{
		"image/png",
		"image/jpeg",
		"application/pdf",
		"application/msword",
		"audio/webm",
		"audio/wav",
	} {
		require.True(t, IsAllowed(ct), ct)
	}

	for _, ct := range []string{
		"image/gif",
		"video/mp4",
		"text/html",
		"application/x-sh",
		"",
	} {
		require.False(t, IsAllowed(ct), ct)
	}
}

func TestClassify(t *testing.T) {
	cases := map[string]string{
		"image/png":          "image",
		"image/jpeg":         "image",
		"audio/webm":         "audio",
		"audio/mpeg":         "audio",
		"application/pdf":    "document",
		"application/msword": "document",
	}
	for ct, want := range cases {
		require.Equal(t, want, Classify(ct), ct)
	}
}

func TestTargetName(t *testing.T) {
	header := &multipart.FileHeader{Filename: "holiday.PNG"}
	name := TargetName(header)
	require.True(t, strings.HasSuffix(name, ".PNG"))
	require.NotEqual(t, name, TargetName(header), "names must not collide")
}

func TestPublicURL(t *testing.T) {
	require.Equal(t, "/uploads/123.png", PublicURL("123.png"))
}
