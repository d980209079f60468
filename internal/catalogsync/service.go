// Package catalogsync is the synchronization engine: it applies catalog
// mutations while keeping the billing provider and the video host in step.
// Consistency is best-effort: billing failures abort before anything is
// persisted, compensating deletes are logged and swallowed.
package catalogsync

import (
	"context"
	"io"
	"math"
	"path/filepath"
	"time"

	"fitclub-backend/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Billing wraps the billing provider's product/price objects. Prices are
// immutable on the provider side: a price change means a new price object
// and a repointed product default, never an update in place.
type Billing interface {
	CreateProduct(ctx context.Context, name, description string) (string, error)
	UpdateProduct(ctx context.Context, productID, name, description string) error
	CreatePrice(ctx context.Context, productID string, amountMinor int64, currency string, recurring bool) (string, error)
	SetDefaultPrice(ctx context.Context, productID, priceID string) error
}

// VideoHost wraps the video host's asset API.
type VideoHost interface {
	CreateAsset(ctx context.Context, title string) (string, error)
	DeleteAsset(ctx context.Context, assetID string) error
}

// BlobStore holds package images. Put returns the public URL the catalog row
// stores; Remove takes that URL back.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Remove(ctx context.Context, publicURL string) error
}

// Actor identifies the caller of a mutation. Every entry point checks the
// administrator role first; nothing is touched on failure.
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) IsAdmin() bool { return a.Role == "admin" }

type Service struct {
	store    *store.Store
	billing  Billing
	videos   VideoHost
	blobs    BlobStore
	currency string
	log      *zap.Logger
}

func New(st *store.Store, billing Billing, videos VideoHost, blobs BlobStore, currency string, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:    st,
		billing:  billing,
		videos:   videos,
		blobs:    blobs,
		currency: currency,
		log:      log,
	}
}

// ImageUpload is a not-yet-read image payload from a multipart form.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

// MinorUnits converts a two-decimal price to billing minor units (cents).
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// sideEffect applies the failure policy for one external call. Fatal errors
// come back wrapped as *UpstreamError; best-effort errors are logged and
// reported as nil so the mutation continues.
func (s *Service) sideEffect(mode Mode, system, op string, err error, fields ...zap.Field) error {
	if err == nil {
		return nil
	}
	if mode == BestEffort {
		s.log.Warn("best-effort call failed",
			append([]zap.Field{zap.String("system", system), zap.String("op", op), zap.Error(err)}, fields...)...)
		return nil
	}
	return &UpstreamError{System: system, Op: op, Err: err}
}

// blobKey builds a collision-resistant storage name for an uploaded image:
// timestamp, random suffix, original extension.
func blobKey(filename string) string {
	ext := filepath.Ext(filename)
	return "packages/" + time.Now().UTC().Format("20060102150405") + "-" + uuid.NewString()[:8] + ext
}
