package handlers

import (
	"io"
	"net/http"
	"path"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/samssiams/Protecture-sub000/internal/middleware"
	"github.com/samssiams/Protecture-sub000/pkg/logger"
	"github.com/samssiams/Protecture-sub000/pkg/storage"
)

const maxUploadBytes = 10 << 20 // 10 MB

// UploadHandler receives image uploads, watermarks them and writes them to
// the configured storage backend
type UploadHandler struct {
	storage       storage.StorageService
	watermarkText string
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(store storage.StorageService, watermarkText string) *UploadHandler {
	return &UploadHandler{
		storage:       store,
		watermarkText: watermarkText,
	}
}

// RegisterUploadRoutes registers upload-related routes; suspend gates the write
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group, suspend echo.MiddlewareFunc) {
	g.POST("/upload/image", h.UploadImage, suspend)
}

// UploadImage handles a multipart image upload under the "image" field
func (h *UploadHandler) UploadImage(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing image file")
	}
	if fileHeader.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "Image exceeds the 10MB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read upload")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read upload")
	}
	if len(data) > maxUploadBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "Image exceeds the 10MB limit")
	}

	contentType := http.DetectContentType(data)
	if contentType != "image/jpeg" && contentType != "image/png" {
		return echo.NewHTTPError(http.StatusBadRequest, "Only JPEG and PNG images are accepted")
	}

	processed, outType, err := storage.ProcessImage(data, h.watermarkText)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Could not decode image")
	}

	ext := ".jpg"
	if outType == "image/png" {
		ext = ".png"
	}
	filename := uuid.NewString() + ext

	url, err := h.storage.SaveFile(filename, processed, outType)
	if err != nil {
		logger.Sugar.Errorw("failed to store image", "user", claims.UserID, "file", filename, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store image")
	}

	logger.Sugar.Infow("image stored", "user", claims.UserID, "file", path.Base(url))

	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}
