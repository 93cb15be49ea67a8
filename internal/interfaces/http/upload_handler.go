package http

import (
	"context"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/zonekids/zonekids-api/internal/application/dto"
	"github.com/zonekids/zonekids-api/internal/infrastructure/storage"
)

// maxImagesPerUpload tope de archivos por petición (un producto lleva hasta 3 imágenes).
const maxImagesPerUpload = 3

type imageSaver interface {
	Save(ctx context.Context, originalName string, r io.Reader) (*storage.StoredImage, error)
}

// UploadHandler subida de imágenes de productos.
type UploadHandler struct {
	store imageSaver
}

// NewUploadHandler construye el handler.
func NewUploadHandler(store imageSaver) *UploadHandler {
	return &UploadHandler{store: store}
}

// UploadOne godoc
// @Summary      Subir una imagen
// @Description  jpeg, png, gif, webp o avif; máximo 10MB. El tipo se detecta por contenido.
// @Tags         upload
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        imagen  formData  file  true  "Imagen"
// @Success      201  {object}  dto.APIResponse{data=dto.UploadResponse}
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/v1/upload/imagen [post]
func (h *UploadHandler) UploadOne(c *fiber.Ctx) error {
	fh, err := c.FormFile("imagen")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("MISSING_FILE", "campo 'imagen' requerido"))
	}
	out, err := h.save(c.UserContext(), fh)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out, "Imagen subida"))
}

// UploadMany godoc
// @Summary      Subir varias imágenes
// @Tags         upload
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        imagenes  formData  file  true  "Hasta 3 imágenes"
// @Success      201  {object}  dto.APIResponse{data=dto.UploadManyResponse}
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/v1/upload/imagenes [post]
func (h *UploadHandler) UploadMany(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("MISSING_FILE", "se esperaba multipart/form-data"))
	}
	files := form.File["imagenes"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("MISSING_FILE", "campo 'imagenes' requerido"))
	}
	if len(files) > maxImagesPerUpload {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("TOO_MANY_FILES", "máximo 3 imágenes por producto"))
	}
	resp := dto.UploadManyResponse{
		Files: make([]dto.UploadResponse, 0, len(files)),
		URLs:  make([]string, 0, len(files)),
	}
	for _, fh := range files {
		out, err := h.save(c.UserContext(), fh)
		if err != nil {
			return writeError(c, err)
		}
		resp.Files = append(resp.Files, *out)
		resp.URLs = append(resp.URLs, out.URL)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(resp, "Imágenes subidas"))
}

func (h *UploadHandler) save(ctx context.Context, fh *multipart.FileHeader) (*dto.UploadResponse, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := h.store.Save(ctx, fh.Filename, f)
	if err != nil {
		return nil, err
	}
	return &dto.UploadResponse{URL: img.URL, FileName: img.FileName, ContentType: img.ContentType, Size: img.Size}, nil
}
