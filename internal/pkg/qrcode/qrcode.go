package qrcode

import (
	"fmt"
	"strings"

	goqrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultSize = 512
	MinSize     = 128
	MaxSize     = 2048
)

// TrackingURL is the address encoded into a channel's QR image.
func TrackingURL(publicBaseURL, code string) string {
	return strings.TrimRight(publicBaseURL, "/") + "/t/" + code
}

// PNG renders content as a square PNG. Out of range sizes are clamped.
// Medium recovery leaves room for a clinic logo printed over the center.
func PNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("qr content is empty")
	}
	size = min(max(size, MinSize), MaxSize)
	png, err := goqrcode.Encode(content, goqrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}
