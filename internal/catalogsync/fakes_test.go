package catalogsync

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"fitclub-backend/database"
	"fitclub-backend/internal/domain/catalog"
	"fitclub-backend/internal/store"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testStore(t *testing.T) (*store.Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	course := catalog.Course{Name: "Functional Training", Slug: "functional-training"}
	require.NoError(t, db.Create(&course).Error)

	return store.New(db), db
}

type fakeBilling struct {
	mu sync.Mutex

	productSeq int
	priceSeq   int

	CreateProductCalls int
	UpdateProductCalls int
	CreatePriceCalls   int
	SetDefaultCalls    int

	Products     map[string]string // product id -> name
	Prices       []string          // price ids in creation order
	DefaultPrice map[string]string // product id -> default price id

	LastPriceAmount    int64
	LastPriceCurrency  string
	LastPriceRecurring bool

	FailCreateProduct error
	FailUpdateProduct error
	FailCreatePrice   error
	FailSetDefault    error
}

func newFakeBilling() *fakeBilling {
	return &fakeBilling{
		Products:     map[string]string{},
		DefaultPrice: map[string]string{},
	}
}

func (f *fakeBilling) CreateProduct(ctx context.Context, name, description string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateProductCalls++
	if f.FailCreateProduct != nil {
		return "", f.FailCreateProduct
	}
	f.productSeq++
	id := fmt.Sprintf("prod_%d", f.productSeq)
	f.Products[id] = name
	return id, nil
}

func (f *fakeBilling) UpdateProduct(ctx context.Context, productID, name, description string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateProductCalls++
	if f.FailUpdateProduct != nil {
		return f.FailUpdateProduct
	}
	f.Products[productID] = name
	return nil
}

func (f *fakeBilling) CreatePrice(ctx context.Context, productID string, amountMinor int64, currency string, recurring bool) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreatePriceCalls++
	if f.FailCreatePrice != nil {
		return "", f.FailCreatePrice
	}
	f.priceSeq++
	id := fmt.Sprintf("price_%d", f.priceSeq)
	f.Prices = append(f.Prices, id)
	f.LastPriceAmount = amountMinor
	f.LastPriceCurrency = currency
	f.LastPriceRecurring = recurring
	return id, nil
}

func (f *fakeBilling) SetDefaultPrice(ctx context.Context, productID, priceID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SetDefaultCalls++
	if f.FailSetDefault != nil {
		return f.FailSetDefault
	}
	f.DefaultPrice[productID] = priceID
	return nil
}

func (f *fakeBilling) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.CreateProductCalls + f.UpdateProductCalls + f.CreatePriceCalls + f.SetDefaultCalls
}

type fakeVideoHost struct {
	assetSeq int

	CreateCalls int
	DeleteCalls int

	Created []string
	Deleted []string

	FailCreate error
	FailDelete error
}

func (f *fakeVideoHost) CreateAsset(ctx context.Context, title string) (string, error) {
	f.CreateCalls++
	if f.FailCreate != nil {
		return "", f.FailCreate
	}
	f.assetSeq++
	id := fmt.Sprintf("guid-%d", f.assetSeq)
	f.Created = append(f.Created, id)
	return id, nil
}

func (f *fakeVideoHost) DeleteAsset(ctx context.Context, assetID string) error {
	f.DeleteCalls++
	if f.FailDelete != nil {
		return f.FailDelete
	}
	f.Deleted = append(f.Deleted, assetID)
	return nil
}

type fakeBlobs struct {
	PutCalls    int
	RemoveCalls int

	PutKeys []string
	Removed []string

	FailPut    error
	FailRemove error
}

func (f *fakeBlobs) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	f.PutCalls++
	if f.FailPut != nil {
		return "", f.FailPut
	}
	if body != nil {
		_, _ = io.Copy(io.Discard, body)
	}
	f.PutKeys = append(f.PutKeys, key)
	return "https://cdn.test/" + key, nil
}

func (f *fakeBlobs) Remove(ctx context.Context, publicURL string) error {
	f.RemoveCalls++
	if f.FailRemove != nil {
		return f.FailRemove
	}
	f.Removed = append(f.Removed, publicURL)
	return nil
}

type fixture struct {
	svc     *Service
	db      *gorm.DB
	billing *fakeBilling
	videos  *fakeVideoHost
	blobs   *fakeBlobs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, db := testStore(t)
	billing := newFakeBilling()
	videos := &fakeVideoHost{}
	blobs := &fakeBlobs{}
	return &fixture{
		svc:     New(st, billing, videos, blobs, "eur", nil),
		db:      db,
		billing: billing,
		videos:  videos,
		blobs:   blobs,
	}
}

var admin = Actor{UserID: 1, Role: "admin"}

func testImage() *ImageUpload {
	return &ImageUpload{
		Filename:    "cover.jpg",
		ContentType: "image/jpeg",
		Data:        strings.NewReader("jpeg-bytes"),
	}
}
