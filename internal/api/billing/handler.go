// Package billing holds the checkout and self-service portal call-throughs.
// Each is one Stripe call plus the user-to-customer mapping; the catalog
// engine is not involved.
package billing

import (
	"net/http"

	"fitclub-backend/internal/domain/catalog"
	"fitclub-backend/internal/domain/users"
	"fitclub-backend/internal/infra/stripebilling"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	db     *gorm.DB
	stripe *stripebilling.Client
	appURL string
}

func NewHandler(db *gorm.DB, stripe *stripebilling.Client, appURL string) *Handler {
	return &Handler{db: db, stripe: stripe, appURL: appURL}
}

// POST /create-checkout-session
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var body struct {
		PriceID string `json:"price_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.PriceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid price_id"})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	// Allow-list: only prices the catalog knows about.
	var pkg catalog.Package
	if err := h.db.Where("stripe_price_id = ?", body.PriceID).First(&pkg).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown package/price_id"})
		return
	}

	var user users.User
	if err := h.db.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	// Ensure the billing customer exists and is remembered.
	if user.StripeCustomerID == nil || *user.StripeCustomerID == "" {
		customerID, err := h.stripe.CreateCustomer(c.Request.Context(), user.Email, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create billing customer"})
			return
		}
		if err := h.db.Model(&users.User{}).
			Where("id = ?", user.ID).
			Update("stripe_customer_id", customerID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store billing customer"})
			return
		}
		user.StripeCustomerID = &customerID
	}

	url, err := h.stripe.CreateCheckoutSession(c.Request.Context(), stripebilling.CheckoutInput{
		CustomerID:   *user.StripeCustomerID,
		PriceID:      body.PriceID,
		Subscription: pkg.IsSubscription(),
		UserID:       user.ID,
		SuccessURL:   h.appURL + "/account",
		CancelURL:    h.appURL + "/account?canceled=1",
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// POST /billing-portal
func (h *Handler) CreateBillingPortal(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var user users.User
	if err := h.db.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}
	if user.StripeCustomerID == nil || *user.StripeCustomerID == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "No billing customer yet (purchase first)"})
		return
	}

	url, err := h.stripe.CreateBillingPortal(c.Request.Context(), *user.StripeCustomerID, h.appURL+"/account")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create billing portal session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
