package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// ImageService processes uploaded event and merchandise images and
// stores the original plus sized variants.
type ImageService struct {
	storage StorageServiceInterface
}

// NewImageService creates a new image service
func NewImageService(storage StorageServiceInterface) *ImageService {
	return &ImageService{storage: storage}
}

// ImageVariantConfig defines one sized rendition of an uploaded image
type ImageVariantConfig struct {
	Name   string
	Width  int
	Height int
}

var imageVariants = []ImageVariantConfig{
	{Name: "thumbnail", Width: 150, Height: 150},
	{Name: "medium", Width: 400, Height: 300},
	{Name: "large", Width: 800, Height: 600},
}

// ImageUploadResult describes a stored image and its variants
type ImageUploadResult struct {
	KeyPrefix string         `json:"key_prefix"`
	URL       string         `json:"url"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Variants  []ImageVariant `json:"variants"`
}

// ImageVariant is one stored rendition of an image
type ImageVariant struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Key    string `json:"key"`
	URL    string `json:"url"`
}

const maxImageBytes = 10 << 20 // 10 MB

// UploadImage validates, processes, and stores an image with its variants
func (s *ImageService) UploadImage(ctx context.Context, reader io.Reader, filename string) (*ImageUploadResult, error) {
	data, err := io.ReadAll(io.LimitReader(reader, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image exceeds maximum size of %d bytes", maxImageBytes)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if format != "jpeg" && format != "png" {
		return nil, fmt.Errorf("unsupported image format: %s", format)
	}

	keyPrefix := generateImageKey(filename)
	bounds := img.Bounds()

	originalKey := fmt.Sprintf("%s/original.%s", keyPrefix, format)
	originalURL, err := s.uploadEncoded(ctx, originalKey, img, format)
	if err != nil {
		return nil, fmt.Errorf("failed to upload original image: %w", err)
	}

	result := &ImageUploadResult{
		KeyPrefix: keyPrefix,
		URL:       originalURL,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
	}

	for _, config := range imageVariants {
		resized := imaging.Fit(img, config.Width, config.Height, imaging.Lanczos)

		variantKey := fmt.Sprintf("%s/%s.%s", keyPrefix, config.Name, format)
		variantURL, err := s.uploadEncoded(ctx, variantKey, resized, format)
		if err != nil {
			log.Printf("Failed to create image variant %s: %v", config.Name, err)
			continue
		}

		variantBounds := resized.Bounds()
		result.Variants = append(result.Variants, ImageVariant{
			Name:   config.Name,
			Width:  variantBounds.Dx(),
			Height: variantBounds.Dy(),
			Key:    variantKey,
			URL:    variantURL,
		})
	}

	return result, nil
}

// DeleteImage removes an image and all of its variants
func (s *ImageService) DeleteImage(ctx context.Context, keyPrefix string, format string) error {
	keys := []string{fmt.Sprintf("%s/original.%s", keyPrefix, format)}
	for _, config := range imageVariants {
		keys = append(keys, fmt.Sprintf("%s/%s.%s", keyPrefix, config.Name, format))
	}

	var firstErr error
	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

func (s *ImageService) uploadEncoded(ctx context.Context, key string, img image.Image, format string) (string, error) {
	var buf bytes.Buffer

	switch format {
	case "jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
			return "", fmt.Errorf("failed to encode jpeg: %w", err)
		}
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return "", fmt.Errorf("failed to encode png: %w", err)
		}
	default:
		return "", fmt.Errorf("unsupported image format: %s", format)
	}

	contentType := "image/" + format
	return s.storage.Upload(ctx, key, bytes.NewReader(buf.Bytes()), contentType, int64(buf.Len()))
}

func generateImageKey(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.ToLower(strings.ReplaceAll(base, " ", "-"))
	if base == "" || base == "." {
		base = "image"
	}

	return fmt.Sprintf("images/%s/%s-%s", time.Now().Format("2006/01"), base, uuid.NewString()[:8])
}
