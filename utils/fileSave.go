package utils

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

var SupportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// SaveImageWithThumb stores the uploaded image under dir and writes a JPEG
// thumbnail of the given width next to it in dir/thumb. Returns the stored
// file name and the thumbnail name.
func SaveImageWithThumb(file multipart.File, header *multipart.FileHeader, dir string, thumbWidth int) (string, string, error) {
	buf, err := io.ReadAll(file)
	if err != nil {
		return "", "", fmt.Errorf("failed to read file: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return "", "", fmt.Errorf("failed to decode image %q: %w", header.Filename, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}

	name := GenerateRandomString(12) + filepath.Ext(header.Filename)
	origPath := filepath.Join(dir, name)
	if err := os.WriteFile(origPath, buf, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to save image to %q: %w", origPath, err)
	}

	thumbDir := filepath.Join(dir, "thumb")
	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		return name, "", err
	}

	thumbImg := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	thumbName := name[:len(name)-len(filepath.Ext(name))] + ".jpg"
	thumbPath := filepath.Join(thumbDir, thumbName)
	out, err := os.Create(thumbPath)
	if err != nil {
		return name, "", fmt.Errorf("failed to create thumbnail file %q: %w", thumbPath, err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, thumbImg, &jpeg.Options{Quality: 85}); err != nil {
		return name, "", fmt.Errorf("failed to encode thumbnail JPEG: %w", err)
	}

	return name, thumbName, nil
}
