package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackingURL(t *testing.T) {
	assert.Equal(t, "https://qr.example.jp/t/abc123", TrackingURL("https://qr.example.jp/", "abc123"))
	assert.Equal(t, "https://qr.example.jp/t/abc123", TrackingURL("https://qr.example.jp", "abc123"))
}

func TestPNG(t *testing.T) {
	data, err := PNG("https://qr.example.jp/t/abc123", 256)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())
}

func TestPNGClampsSize(t *testing.T) {
	data, err := PNG("x", 1)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, MinSize, img.Bounds().Dx())

	_, err = PNG("", 256)
	assert.Error(t, err)
}
