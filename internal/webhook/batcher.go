package webhook

import (
	"context"

	"go.uber.org/zap"
)

// MaxBatchSize is the maximum number of messages submitted per batch.
const MaxBatchSize = 10

// QueueMessage is the batched, at-least-once-delivered unit handed to the
// processor. Consumers must not assume ordering across messages.
type QueueMessage struct {
	TenantID  string `json:"tenantId"`
	InvoiceID string `json:"invoiceId"`
}

// BatchSender submits one bounded batch of queue messages.
type BatchSender interface {
	SendBatch(ctx context.Context, messages []QueueMessage) error
}

// Batcher groups relevant events into batches of at most MaxBatchSize and
// submits them. A failed submission is logged and does not roll back or block
// sibling batches; partial delivery is an accepted failure mode.
type Batcher struct {
	sender BatchSender
	logger *zap.Logger
}

// NewBatcher creates a batcher over the given sender.
func NewBatcher(sender BatchSender, logger *zap.Logger) *Batcher {
	return &Batcher{sender: sender, logger: logger}
}

// Dispatch filters the events, batches the resulting queue messages and
// submits each batch as soon as it fills, flushing any remainder at the end.
// It returns the number of messages successfully submitted.
func (b *Batcher) Dispatch(ctx context.Context, events []Event) int {
	batch := make([]QueueMessage, 0, MaxBatchSize)
	submitted := 0

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := b.sender.SendBatch(ctx, batch); err != nil {
			b.logger.Error("Failed to submit batch",
				zap.Int("size", len(batch)),
				zap.Error(err))
		} else {
			submitted += len(batch)
			b.logger.Info("Submitted batch", zap.Int("size", len(batch)))
		}
		batch = make([]QueueMessage, 0, MaxBatchSize)
	}

	for _, event := range events {
		if !event.Relevant() {
			continue
		}
		batch = append(batch, QueueMessage{
			TenantID:  event.TenantID,
			InvoiceID: event.ResourceID,
		})
		if len(batch) == MaxBatchSize {
			flush()
		}
	}
	flush()

	return submitted
}
