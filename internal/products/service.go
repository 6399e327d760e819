// Package products instantiates the collection pattern for the product
// catalog and carries the product-specific rules: SKU normalization,
// validation and the active-flag bulk toggle.
package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/example/wathera-admin/internal/collection"
	"github.com/example/wathera-admin/internal/domain"
	"github.com/example/wathera-admin/internal/remote"
	"github.com/example/wathera-admin/internal/signal"
	"github.com/example/wathera-admin/internal/storage"
	"github.com/example/wathera-admin/internal/view"
)

// ErrBusy reports that a create is already in flight. A second submission is
// rejected rather than queued, matching the form's single submit guard.
var ErrBusy = errors.New("a submission is already in progress")

type Service struct {
	col      *collection.Collection[domain.Product]
	inFlight atomic.Bool
	now      func() time.Time
}

// New wires the product collection over the given store and hub. The remote
// client may be nil, which disables the fetch fallback.
func New(store storage.Store, hub *signal.Hub, client *remote.Client) *Service {
	opts := []collection.Option[domain.Product]{
		collection.WithLegacyKey[domain.Product](storage.KeyProductDataLegacy),
		collection.WithSample(domain.SampleProducts),
		collection.WithValidator(func(p *domain.Product) error { return p.Validate() }),
	}
	if client != nil {
		opts = append(opts, collection.WithRemote[domain.Product](client.FetchProducts))
	}
	return &Service{
		col: collection.New(store, hub, storage.KeyProducts, opts...),
		now: time.Now,
	}
}

func (s *Service) Collection() *collection.Collection[domain.Product] { return s.col }

func (s *Service) Subscribe(fn func()) *signal.Subscription { return s.col.Subscribe(fn) }

// Create validates the form input and appends the new product.
func (s *Service) Create(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return domain.Product{}, ErrBusy
	}
	defer s.inFlight.Store(false)

	p, err := domain.NewProduct(in, s.now())
	if err != nil {
		return domain.Product{}, err
	}
	if err := s.col.Create(ctx, p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// Patch merges a partial JSON document into one product. The SKU is
// re-normalized in the same write so a patched SKU keeps the uppercase
// invariant.
func (s *Service) Patch(ctx context.Context, id string, patch []byte) error {
	return s.col.Modify(ctx, id, func(p *domain.Product) error {
		if err := json.Unmarshal(patch, p); err != nil {
			return fmt.Errorf("apply patch: %w", err)
		}
		p.SKU = domain.NormalizeSKU(p.SKU)
		return nil
	})
}

func (s *Service) Delete(ctx context.Context, id string) (int, error) {
	return s.col.DeleteOne(ctx, id)
}

func (s *Service) DeleteMany(ctx context.Context, ids []string) (int, error) {
	return s.col.DeleteMany(ctx, ids)
}

// SetActive flips the active flag across all listed products in one write.
func (s *Service) SetActive(ctx context.Context, ids []string, active bool) (int, error) {
	return s.col.BulkUpdate(ctx, ids, func(p *domain.Product) {
		p.Active = active
	})
}

// List derives the visible table window from the full catalog.
func (s *Service) List(ctx context.Context, criteria view.Criteria) view.Result[domain.Product] {
	return view.Apply(s.col.Load(ctx), Accessor, criteria)
}

// Overview computes the KPI cards from the full catalog regardless of any
// active filters.
func (s *Service) Overview(ctx context.Context) view.ProductMetrics {
	return view.ProductOverview(s.col.Load(ctx))
}

func (s *Service) Clear(ctx context.Context) error {
	return s.col.Clear(ctx)
}

// Accessor exposes the sortable and filterable product columns to the view
// layer.
func Accessor(p domain.Product, field string) (view.Value, bool) {
	switch field {
	case "productName":
		return view.StringValue(p.Name), true
	case "sku":
		return view.StringValue(p.SKU), true
	case "category":
		return view.StringValue(p.Category), true
	case "price":
		return view.NumberValue(p.Price), true
	case "stockQuantity":
		return view.NumberValue(float64(p.StockQuantity)), true
	case "createdAt":
		return view.StringValue(p.CreatedAt), true
	case "satisfaction":
		return view.NumberValue(float64(p.Satisfaction)), true
	case "deliveryProgress":
		return view.NumberValue(float64(p.DeliveryProgress)), true
	case "active":
		return view.StringValue(strconv.FormatBool(p.Active)), true
	}
	return view.Value{}, false
}
