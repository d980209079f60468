package users

import "time"

type User struct {
	ID       uint    `gorm:"primaryKey"`
	Name     string
	Email    string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password *string `gorm:""`
	Role     string  `gorm:"type:varchar(20);not null;default:'user'"`

	// Billing customer mapping. Written by the checkout glue, read by the
	// billing-portal call-through. The catalog engine never touches these.
	StripeCustomerID         *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_users_stripe_customer_id"`
	SubscriptionID           *string `gorm:"column:subscription_id;uniqueIndex:idx_users_subscription_id"`
	StripeSubscriptionStatus *string `gorm:"column:stripe_subscription_status"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
