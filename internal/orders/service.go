// Package orders instantiates the collection pattern for the order book.
// Orders embed denormalized product snapshots taken at creation time; editing
// a product later never rewrites a historical order.
package orders

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/example/wathera-admin/internal/collection"
	"github.com/example/wathera-admin/internal/domain"
	"github.com/example/wathera-admin/internal/remote"
	"github.com/example/wathera-admin/internal/signal"
	"github.com/example/wathera-admin/internal/storage"
	"github.com/example/wathera-admin/internal/view"
)

var ErrBusy = errors.New("a submission is already in progress")

// Catalog supplies the live products an order snapshots its line items from.
type Catalog interface {
	Collection() *collection.Collection[domain.Product]
}

type Service struct {
	col      *collection.Collection[domain.Order]
	catalog  Catalog
	inFlight atomic.Bool
	now      func() time.Time
}

func New(store storage.Store, hub *signal.Hub, client *remote.Client, catalog Catalog) *Service {
	opts := []collection.Option[domain.Order]{
		collection.WithLegacyKey[domain.Order](storage.KeyOrderDataLegacy),
		collection.WithSample(domain.SampleOrders),
		collection.WithValidator(validateOrder),
	}
	if client != nil {
		opts = append(opts, collection.WithRemote[domain.Order](client.FetchOrders))
	}
	return &Service{
		col:     collection.New(store, hub, storage.KeyOrders, opts...),
		catalog: catalog,
		now:     time.Now,
	}
}

// validateOrder checks the invariants and re-derives the total so it can
// never drift from the line items, whatever mutation produced the record.
func validateOrder(o *domain.Order) error {
	o.TotalAmount = domain.ComputeOrderTotal(o.Items)
	return o.Validate()
}

func (s *Service) Collection() *collection.Collection[domain.Order] { return s.col }

func (s *Service) Subscribe(fn func()) *signal.Subscription { return s.col.Subscribe(fn) }

// Create builds an order from the form input against the live catalog and
// appends it. Line items snapshot the product's price and summary at this
// moment; the total is the sum over the snapshots.
func (s *Service) Create(ctx context.Context, in domain.OrderInput) (domain.Order, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return domain.Order{}, ErrBusy
	}
	defer s.inFlight.Store(false)

	catalog := s.catalog.Collection().Load(ctx)
	o, err := domain.NewOrder(in, catalog, s.now())
	if err != nil {
		return domain.Order{}, err
	}
	if err := s.col.Create(ctx, o); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

// Patch merges a partial JSON document into one order. The validator re-derives
// the total, so a patch touching line items can never leave a stale amount.
func (s *Service) Patch(ctx context.Context, id string, patch []byte) error {
	return s.col.Patch(ctx, id, patch)
}

func (s *Service) Delete(ctx context.Context, id string) (int, error) {
	return s.col.DeleteOne(ctx, id)
}

func (s *Service) DeleteMany(ctx context.Context, ids []string) (int, error) {
	return s.col.DeleteMany(ctx, ids)
}

// SetDeliveryStatus moves all listed orders to the given status in one write.
func (s *Service) SetDeliveryStatus(ctx context.Context, ids []string, status domain.DeliveryStatus) (int, error) {
	if !status.Valid() {
		return 0, &domain.FieldError{Field: "deliveryStatus", Message: "unknown delivery status"}
	}
	return s.col.BulkUpdate(ctx, ids, func(o *domain.Order) {
		o.DeliveryStatus = status
		if status == domain.DeliveryDelivered {
			o.DeliveryProgress = 100
		}
	})
}

func (s *Service) List(ctx context.Context, criteria view.Criteria) view.Result[domain.Order] {
	return view.Apply(s.col.Load(ctx), Accessor, criteria)
}

func (s *Service) Overview(ctx context.Context) view.OrderMetrics {
	return view.OrderOverview(s.col.Load(ctx))
}

func (s *Service) Clear(ctx context.Context) error {
	return s.col.Clear(ctx)
}

// Accessor exposes the sortable and filterable order columns to the view layer.
func Accessor(o domain.Order, field string) (view.Value, bool) {
	switch field {
	case "orderId":
		return view.StringValue(o.Code), true
	case "clientName":
		return view.StringValue(o.ClientName), true
	case "paymentStatus":
		return view.StringValue(string(o.PaymentStatus)), true
	case "deliveryStatus":
		return view.StringValue(string(o.DeliveryStatus)), true
	case "totalAmount":
		return view.NumberValue(o.TotalAmount), true
	case "createdAt":
		return view.StringValue(o.CreatedAt), true
	case "orderDate":
		return view.StringValue(o.OrderDate), true
	case "expectedDeliveryDate":
		return view.StringValue(o.ExpectedDeliveryDate), true
	case "customerFeedback":
		return view.NumberValue(float64(o.CustomerFeedback)), true
	case "deliveryProgress":
		return view.NumberValue(float64(o.DeliveryProgress)), true
	}
	return view.Value{}, false
}
