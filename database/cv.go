package database

import (
	"context"
	"fmt"
	"folio/models"

	"go.uber.org/zap"
)

// CurrentCV returns the CV slot, or ErrNotFound if nothing was ever uploaded.
// The URL field is left empty; resolving it is the storage layer's job.
func (db *DB) CurrentCV(ctx context.Context) (*models.CVDocument, error) {
	var doc models.CVDocument
	err := db.Pool.QueryRow(ctx, `
		SELECT storage_key, filename, content_type, size, uploaded_at
		FROM cv_documents
		WHERE slot = 1
	`).Scan(&doc.StorageKey, &doc.Filename, &doc.ContentType, &doc.Size, &doc.UploadedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("cv: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cv: %w", err)
	}
	return &doc, nil
}

// ReplaceCV points the single CV slot at a newly stored document.
// The previous reference is overwritten; there is no history.
func (db *DB) ReplaceCV(ctx context.Context, doc models.CVDocument) (*models.CVDocument, error) {
	var out models.CVDocument
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO cv_documents (slot, storage_key, filename, content_type, size, uploaded_at)
		VALUES (1, $1, $2, $3, $4, NOW())
		ON CONFLICT (slot) DO UPDATE
		SET storage_key = EXCLUDED.storage_key,
			filename = EXCLUDED.filename,
			content_type = EXCLUDED.content_type,
			size = EXCLUDED.size,
			uploaded_at = EXCLUDED.uploaded_at
		RETURNING storage_key, filename, content_type, size, uploaded_at
	`, doc.StorageKey, doc.Filename, doc.ContentType, doc.Size).
		Scan(&out.StorageKey, &out.Filename, &out.ContentType, &out.Size, &out.UploadedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to replace cv: %w", err)
	}

	db.logger.Info("Replaced CV", zap.String("key", out.StorageKey), zap.Int64("size", out.Size))
	return &out, nil
}
