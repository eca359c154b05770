// Package worker processes queued transaction ingest messages. Every
// message flows through the same service path as an HTTP create, so the
// queue cannot introduce records the API would reject.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"finsight/internal/amqp"
	"finsight/internal/core"
	applog "finsight/internal/log"
	"finsight/internal/services"
)

// IngestWorker writes queued transactions through the transaction service
type IngestWorker struct {
	service *services.TransactionService
}

func NewIngestWorker(service *services.TransactionService) *IngestWorker {
	return &IngestWorker{service: service}
}

// HandleIngestMessage processes a single transaction ingest message
func (w *IngestWorker) HandleIngestMessage(ctx context.Context, msg *amqp.TransactionIngestMessage) error {
	if strings.TrimSpace(msg.Owner) == "" {
		return core.NewValidationError("owner")
	}

	created, err := w.service.Create(ctx, msg.Owner, services.CreateTransactionRequest{
		Date:        msg.Date,
		Amount:      msg.Amount,
		Category:    msg.Category,
		Status:      msg.Status,
		UserProfile: msg.UserProfile,
	})
	if err != nil {
		applog.NewStructuredLogger(applog.FromContext(ctx)).LogError(ctx,
			"Failed to ingest transaction", err,
			applog.ComponentWorker, applog.OpIngest,
			applog.LogFields{applog.FieldOwner: msg.Owner})
		return fmt.Errorf("ingest transaction: %w", err)
	}

	slog.InfoContext(ctx, "Ingested transaction",
		"transaction_id", created.ID,
		"owner", created.Owner,
		"amount_cents", created.Amount.Cents)

	return nil
}
