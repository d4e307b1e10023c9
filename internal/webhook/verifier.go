// Package webhook verifies inbound accounting webhooks and batches the
// relevant events onto the queue.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// SignatureHeader is the request header carrying the claimed HMAC signature.
const SignatureHeader = "x-xero-signature"

// Event types the pipeline cares about; anything else is discarded before
// batching.
const (
	EventTypeCreate = "CREATE"
	EventTypeUpdate = "UPDATE"
	EventTypeDelete = "DELETE"
)

// Event is one entry of the webhook envelope. It only lives for the duration
// of a single webhook invocation.
type Event struct {
	EventType  string `json:"eventType"`
	TenantID   string `json:"tenantId"`
	ResourceID string `json:"resourceId"`
}

// Relevant reports whether this event type feeds the pipeline.
func (e Event) Relevant() bool {
	switch e.EventType {
	case EventTypeCreate, EventTypeUpdate, EventTypeDelete:
		return true
	default:
		return false
	}
}

// Envelope is the JSON body of a webhook request.
type Envelope struct {
	Events []Event `json:"events"`
}

// ComputeSignature computes the base64-encoded HMAC-SHA256 of the raw body.
func ComputeSignature(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares the claimed signature against the one computed
// from the raw body and the shared secret, in constant time.
func VerifySignature(body []byte, signature, secret string) bool {
	expected := ComputeSignature(body, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ParseEnvelope decodes the webhook body. It must only be called after the
// signature has been verified.
func ParseEnvelope(body []byte) (*Envelope, error) {
	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("invalid JSON format: %w", err)
	}
	return &envelope, nil
}
