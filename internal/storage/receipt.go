package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"mealbox/internal/billing"

	"go.uber.org/zap"
)

// Uploader is satisfied by *R2Client.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// ReceiptArchive writes every generated bill as JSON to the bucket.
type ReceiptArchive struct {
	uploader Uploader
	logger   *zap.SugaredLogger
}

func NewReceiptArchive(uploader Uploader, logger *zap.SugaredLogger) *ReceiptArchive {
	return &ReceiptArchive{uploader: uploader, logger: logger}
}

func ReceiptKey(b *billing.Bill) string {
	return fmt.Sprintf("receipts/%s/%s.json", b.OwnerID, b.ID)
}

func (a *ReceiptArchive) Archive(ctx context.Context, b *billing.Bill) error {
	body, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode receipt %s: %w", b.ID, err)
	}

	url, err := a.uploader.Upload(ctx, ReceiptKey(b), bytes.NewReader(body), "application/json")
	if err != nil {
		return err
	}

	a.logger.Debugw("receipt archived", "bill_id", b.ID, "url", url)
	return nil
}
