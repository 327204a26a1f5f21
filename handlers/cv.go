package handlers

import (
	"bytes"
	"errors"
	"folio/logger"
	"folio/models"
	"folio/storage"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GetCV returns the current CV with a resolved download URL.
func GetCV(db CVStore, files storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		doc, err := db.CurrentCV(ctx)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "no cv uploaded"})
				return
			}
			respondError(c, err, "failed to get cv")
			return
		}

		if doc.URL, err = files.URL(ctx, doc.StorageKey); err != nil {
			respondError(c, err, "failed to resolve cv url")
			return
		}
		c.JSON(http.StatusOK, doc)
	}
}

// UploadCV accepts a multipart "file" field holding a PDF, stores it and
// points the CV slot at it. Anything that is not a PDF is rejected before
// storage is touched.
func UploadCV(db CVStore, files storage.Store, maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

		header, err := c.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}

		f, err := header.Open()
		if err != nil {
			respondError(c, err, "failed to read upload")
			return
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			respondError(c, err, "failed to read upload")
			return
		}
		if !mimetype.Detect(data).Is(models.PDFContentType) {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "only PDF files are accepted"})
			return
		}

		ctx := c.Request.Context()
		key := "cv/" + uuid.NewString() + ".pdf"
		if err := files.Put(ctx, key, bytes.NewReader(data), int64(len(data)), models.PDFContentType); err != nil {
			respondError(c, err, "failed to store cv")
			return
		}

		doc, err := db.ReplaceCV(ctx, models.CVDocument{
			StorageKey:  key,
			Filename:    filepath.Base(header.Filename),
			ContentType: models.PDFContentType,
			Size:        int64(len(data)),
		})
		if err != nil {
			respondError(c, err, "failed to save cv")
			return
		}

		if doc.URL, err = files.URL(ctx, key); err != nil {
			respondError(c, err, "failed to resolve cv url")
			return
		}

		logger.FromGin(c).Info("cv replaced", zap.String("key", key), zap.Int64("size", doc.Size))
		c.JSON(http.StatusCreated, doc)
	}
}
