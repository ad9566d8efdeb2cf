package controller

import (
	"net/http"

	apperrors "github.com/adiprakosa/kasirpos/internal/errors"
	"github.com/adiprakosa/kasirpos/internal/middleware"
	"github.com/adiprakosa/kasirpos/internal/storage"
	"github.com/gin-gonic/gin"
)

const maxImageSize = 5 * 1024 * 1024 // 5MB

var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
}

type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(storage *storage.S3Storage) *UploadController {
	return &UploadController{storage: storage}
}

// UploadImage stores a product image and returns its URL (admin)
// POST /api/v1/upload/image
func (ctrl *UploadController) UploadImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Image file is required")
		return
	}

	if err := ctrl.storage.ValidateFileSize(fileHeader.Size, maxImageSize); err != nil {
		log.Warn("Upload rejected: file too large", map[string]interface{}{
			"filename": fileHeader.Filename,
			"size":     fileHeader.Size,
		})
		apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "Image must be 5MB or smaller")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := ctrl.storage.ValidateContentType(contentType, allowedImageTypes); err != nil {
		log.Warn("Upload rejected: invalid content type", map[string]interface{}{
			"filename":     fileHeader.Filename,
			"content_type": contentType,
		})
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only JPEG, PNG, and WebP images are allowed")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", err, map[string]interface{}{
			"filename": fileHeader.Filename,
		})
		apperrors.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	result, err := ctrl.storage.Upload(c.Request.Context(), file, fileHeader.Filename, contentType, "products")
	if err != nil {
		log.Error("Failed to upload image", err, map[string]interface{}{
			"filename": fileHeader.Filename,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to store image")
		return
	}

	log.Info("Image uploaded", map[string]interface{}{
		"key": result.Key,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Image uploaded successfully",
		"upload":  result,
	})
}
