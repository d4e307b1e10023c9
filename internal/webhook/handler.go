package webhook

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler terminates the inbound webhook HTTP surface: signature check,
// envelope parse, batch dispatch. Once verification and parsing succeed the
// response is always 200, whatever happens to individual batch submissions.
type Handler struct {
	secret  string
	batcher *Batcher
	logger  *zap.Logger
}

// NewHandler creates a webhook handler with the shared signing secret.
func NewHandler(secret string, batcher *Batcher, logger *zap.Logger) *Handler {
	return &Handler{secret: secret, batcher: batcher, logger: logger}
}

// HandleWebhook processes one webhook POST.
func (h *Handler) HandleWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Error("Failed to read webhook body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	signature := c.GetHeader(SignatureHeader)
	if !VerifySignature(body, signature, h.secret) {
		h.logger.Warn("Invalid webhook signature detected")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	envelope, err := ParseEnvelope(body)
	if err != nil {
		h.logger.Warn("Malformed webhook body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON format"})
		return
	}

	submitted := h.batcher.Dispatch(c.Request.Context(), envelope.Events)
	h.logger.Info("Webhook accepted",
		zap.Int("events", len(envelope.Events)),
		zap.Int("submitted", submitted))

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}
