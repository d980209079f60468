// Package stripewebhooks records the outcome of checkout sessions on the
// user row (billing customer and subscription ids). This is glue around the
// billing provider's events, not part of the catalog engine.
package stripewebhooks

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"fitclub-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxBodyBytes = 65536

type Handler struct {
	db             *gorm.DB
	endpointSecret string
	log            *zap.Logger
}

func NewHandler(db *gorm.DB, endpointSecret string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{db: db, endpointSecret: endpointSecret, log: log}
}

// POST /webhook
func (h *Handler) Handle(c *gin.Context) {
	if h.endpointSecret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret not configured"})
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.endpointSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		h.log.Warn("stripe signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse session"})
			return
		}
		if err := h.handleCheckoutCompleted(&session); err != nil {
			h.log.Error("checkout.session.completed not applied", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	default:
		// Unhandled event types are acknowledged so Stripe stops retrying.
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

func (h *Handler) handleCheckoutCompleted(session *stripe.CheckoutSession) error {
	userID, err := strconv.ParseUint(session.ClientReferenceID, 10, 32)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if session.Customer != nil && session.Customer.ID != "" {
		updates["stripe_customer_id"] = session.Customer.ID
	}
	if session.Subscription != nil && session.Subscription.ID != "" {
		updates["subscription_id"] = session.Subscription.ID
		updates["stripe_subscription_status"] = "active"
	}
	if len(updates) == 0 {
		return nil
	}

	return h.db.Model(&users.User{}).
		Where("id = ?", uint(userID)).
		Updates(updates).Error
}
