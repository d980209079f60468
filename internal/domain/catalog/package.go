package catalog

import "time"

const (
	PaymentModeSubscription = "subscription"
	PaymentModeOneTime      = "one_time"
)

// Package is a sellable bundle of videos. Its billing counterpart (a Stripe
// product plus a default price) is created lazily on first sync; the two
// stripe_* columns stay NULL until then and are set together.
type Package struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Title       *string `json:"title,omitempty"`
	Description string  `gorm:"type:text" json:"description"`
	PriceEUR    float64 `gorm:"column:price_eur;not null" json:"price_eur"`

	CourseID uint    `gorm:"not null;index" json:"course_id"`
	Course   *Course `json:"course,omitempty"`

	StripeProductID *string `gorm:"column:stripe_product_id;uniqueIndex:idx_packages_stripe_product_id" json:"stripe_product_id,omitempty"`
	StripePriceID   *string `gorm:"column:stripe_price_id" json:"stripe_price_id,omitempty"`

	PaymentMode string  `gorm:"type:varchar(20);not null;default:'one_time'" json:"payment_mode"`
	Badge       string  `json:"badge,omitempty"`
	ImageURL    *string `gorm:"column:image_url" json:"image_url,omitempty"`

	Videos []Video `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE;" json:"videos,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BillingIDs is the synced half of the package's billing state.
type BillingIDs struct {
	ProductID string
	PriceID   string
}

// Billing reports whether the package has been synchronized to the billing
// provider. ok is false exactly when the package has never been synced; a
// price id without a product id (or vice versa) never occurs because both
// columns are written in the same insert/update.
func (p *Package) Billing() (BillingIDs, bool) {
	if p.StripeProductID == nil || p.StripePriceID == nil {
		return BillingIDs{}, false
	}
	return BillingIDs{ProductID: *p.StripeProductID, PriceID: *p.StripePriceID}, true
}

func (p *Package) IsSubscription() bool {
	return p.PaymentMode == PaymentModeSubscription
}
