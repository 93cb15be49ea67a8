// Package storage guarda en disco las imágenes de productos subidas desde el panel.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/zonekids/zonekids-api/internal/domain"
	"github.com/zonekids/zonekids-api/pkg/logger"
)

// PublicPrefix ruta desde la que el servidor expone los archivos guardados.
const PublicPrefix = "/uploads/"

// allowedTypes tipos aceptados y la extensión con que se guardan.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/avif": ".avif",
}

// StoredImage resultado de guardar una imagen.
type StoredImage struct {
	URL         string
	FileName    string
	ContentType string
	Size        int64
}

// ImageStore almacenamiento local. El tipo se detecta por contenido, no por la extensión
// ni el Content-Type que envía el cliente.
type ImageStore struct {
	dir      string
	maxBytes int64
	log      *logger.Logger
}

// NewImageStore crea el directorio si no existe.
func NewImageStore(dir string, maxBytes int64, log *logger.Logger) (*ImageStore, error) {
	if log == nil {
		log = logger.Nop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	return &ImageStore{dir: dir, maxBytes: maxBytes, log: log.Named("uploads")}, nil
}

// Dir directorio físico (para montar el estático).
func (s *ImageStore) Dir() string { return s.dir }

// Save valida y guarda la imagen como <uuid><ext>. Tipo no permitido, vacío o
// mayor a maxBytes -> domain.ErrInvalidFile.
func (s *ImageStore) Save(_ context.Context, originalName string, r io.Reader) (*StoredImage, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("leer archivo: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: archivo vacío", domain.ErrInvalidFile)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: supera el máximo de %d MB", domain.ErrInvalidFile, s.maxBytes/(1024*1024))
	}

	mt := mimetype.Detect(data)
	ext, ok := allowedTypes[mt.String()]
	if !ok {
		return nil, fmt.Errorf("%w: tipo %s no permitido", domain.ErrInvalidFile, mt.String())
	}

	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return nil, fmt.Errorf("guardar archivo: %w", err)
	}

	s.log.Info().Str("archivo", name).Str("original", originalName).Str("tipo", mt.String()).Int("bytes", len(data)).Msg("imagen guardada")
	return &StoredImage{
		URL:         PublicPrefix + name,
		FileName:    name,
		ContentType: mt.String(),
		Size:        int64(len(data)),
	}, nil
}

// SaveBytes atajo para contenido ya leído.
func (s *ImageStore) SaveBytes(ctx context.Context, originalName string, data []byte) (*StoredImage, error) {
	return s.Save(ctx, originalName, bytes.NewReader(data))
}
