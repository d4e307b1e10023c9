package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// SQSAPI is the slice of the SQS client the sender uses.
type SQSAPI interface {
	SendMessageBatch(ctx context.Context, params *sqs.SendMessageBatchInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageBatchOutput, error)
}

// SQSSender submits message batches to a single SQS queue. Entry IDs are the
// batch-scoped ordinal, which is all the batch API needs for uniqueness.
type SQSSender struct {
	client   SQSAPI
	queueURL string
}

// NewSQSSender creates a sender for the given queue.
func NewSQSSender(client SQSAPI, queueURL string) *SQSSender {
	return &SQSSender{client: client, queueURL: queueURL}
}

// SendBatch submits one batch. Partial failures inside the batch surface as a
// single error; SQS has already accepted the successful entries at that point.
func (s *SQSSender) SendBatch(ctx context.Context, messages []QueueMessage) error {
	entries := make([]types.SendMessageBatchRequestEntry, len(messages))
	for i, message := range messages {
		body, err := json.Marshal(message)
		if err != nil {
			return fmt.Errorf("failed to marshal queue message: %w", err)
		}
		entries[i] = types.SendMessageBatchRequestEntry{
			Id:          aws.String(strconv.Itoa(i)),
			MessageBody: aws.String(string(body)),
		}
	}

	out, err := s.client.SendMessageBatch(ctx, &sqs.SendMessageBatchInput{
		QueueUrl: aws.String(s.queueURL),
		Entries:  entries,
	})
	if err != nil {
		return fmt.Errorf("failed to send message batch to SQS: %w", err)
	}
	if len(out.Failed) > 0 {
		return fmt.Errorf("%d of %d messages failed to enqueue", len(out.Failed), len(messages))
	}
	return nil
}
