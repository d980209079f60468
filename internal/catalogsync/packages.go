package catalogsync

import (
	"context"
	"errors"
	"fmt"

	"fitclub-backend/internal/domain/catalog"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreatePackageInput struct {
	Name        string
	Title       *string
	Description string
	Price       float64
	CourseID    uint
	Badge       string
	PaymentMode string
	Image       *ImageUpload
}

// CreatePackage creates the billing product and price first, then persists
// the catalog row with both ids attached. A billing failure aborts before
// anything is written; a store failure after billing succeeded orphans the
// billing objects (accepted, not retried). The image is best-effort: a
// failed upload produces a row without an image, not an error.
func (s *Service) CreatePackage(ctx context.Context, actor Actor, in CreatePackageInput) (*catalog.Package, error) {
	if !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}
	if err := validatePackageInput(in.Name, in.Price); err != nil {
		return nil, err
	}
	if in.PaymentMode != catalog.PaymentModeSubscription && in.PaymentMode != catalog.PaymentModeOneTime {
		return nil, fmt.Errorf("%w: payment mode must be %q or %q",
			ErrInvalidInput, catalog.PaymentModeSubscription, catalog.PaymentModeOneTime)
	}

	productID, err := s.billing.CreateProduct(ctx, in.Name, in.Description)
	if err = s.sideEffect(Fatal, "stripe", "create product", err); err != nil {
		return nil, err
	}

	recurring := in.PaymentMode == catalog.PaymentModeSubscription
	priceID, err := s.billing.CreatePrice(ctx, productID, MinorUnits(in.Price), s.currency, recurring)
	if err = s.sideEffect(Fatal, "stripe", "create price", err); err != nil {
		return nil, err
	}

	var imageURL *string
	if in.Image != nil {
		url, err := s.blobs.Put(ctx, blobKey(in.Image.Filename), in.Image.ContentType, in.Image.Data)
		if err != nil {
			_ = s.sideEffect(BestEffort, "storage", "put image", err, zap.String("package", in.Name))
		} else {
			imageURL = &url
		}
	}

	pkg := &catalog.Package{
		Name:            in.Name,
		Title:           in.Title,
		Description:     in.Description,
		PriceEUR:        in.Price,
		CourseID:        in.CourseID,
		StripeProductID: &productID,
		StripePriceID:   &priceID,
		PaymentMode:     in.PaymentMode,
		Badge:           in.Badge,
		ImageURL:        imageURL,
	}
	if err := s.store.CreatePackage(ctx, pkg); err != nil {
		// Billing objects created above are orphaned here. Known gap.
		s.log.Error("package insert failed after billing sync",
			zap.String("stripe_product_id", productID), zap.Error(err))
		return nil, fmt.Errorf("persist package: %w", err)
	}

	return pkg, nil
}

type UpdatePackageInput struct {
	Name        string
	Title       *string
	Description string
	Price       float64
	Badge       string
	RemoveImage bool
	Image       *ImageUpload
}

// UpdatePackage pushes name/description to the billing product and mints a
// new price only when the numeric price changed (prices are immutable;
// re-creating on every save would leak objects). All row fields are written
// in a single update after the external calls resolve, so a billing failure
// leaves the catalog untouched.
func (s *Service) UpdatePackage(ctx context.Context, actor Actor, id uint, in UpdatePackageInput) (*catalog.Package, error) {
	if !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}
	if err := validatePackageInput(in.Name, in.Price); err != nil {
		return nil, err
	}

	pkg, err := s.store.GetPackage(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load package: %w", err)
	}

	if ids, synced := pkg.Billing(); synced {
		err := s.billing.UpdateProduct(ctx, ids.ProductID, in.Name, in.Description)
		if err = s.sideEffect(Fatal, "stripe", "update product", err); err != nil {
			return nil, err
		}

		if MinorUnits(in.Price) != MinorUnits(pkg.PriceEUR) {
			newPriceID, err := s.billing.CreatePrice(ctx, ids.ProductID, MinorUnits(in.Price), s.currency, pkg.IsSubscription())
			if err = s.sideEffect(Fatal, "stripe", "create price", err); err != nil {
				return nil, err
			}
			err = s.billing.SetDefaultPrice(ctx, ids.ProductID, newPriceID)
			if err = s.sideEffect(Fatal, "stripe", "set default price", err); err != nil {
				return nil, err
			}
			pkg.StripePriceID = &newPriceID
		}
	}

	if (in.RemoveImage || in.Image != nil) && pkg.ImageURL != nil {
		err := s.blobs.Remove(ctx, *pkg.ImageURL)
		_ = s.sideEffect(BestEffort, "storage", "remove image", err, zap.Uint("package_id", pkg.ID))
		pkg.ImageURL = nil
	}
	if in.Image != nil {
		url, err := s.blobs.Put(ctx, blobKey(in.Image.Filename), in.Image.ContentType, in.Image.Data)
		if err != nil {
			_ = s.sideEffect(BestEffort, "storage", "put image", err, zap.Uint("package_id", pkg.ID))
		} else {
			pkg.ImageURL = &url
		}
	}

	pkg.Name = in.Name
	pkg.Title = in.Title
	pkg.Description = in.Description
	pkg.PriceEUR = in.Price
	pkg.Badge = in.Badge

	if err := s.store.SavePackage(ctx, pkg); err != nil {
		return nil, fmt.Errorf("persist package: %w", err)
	}
	return pkg, nil
}

func validatePackageInput(name string, price float64) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if price <= 0 {
		return fmt.Errorf("%w: price must be greater than zero", ErrInvalidInput)
	}
	return nil
}
