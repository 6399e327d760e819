package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	ErrUnknownProduct   = errors.New("unknown product in order")
	ErrInsufficientStock = errors.New("requested quantity exceeds available stock")
	ErrEmptyOrder       = errors.New("order has no line items")
)

// PaymentStatus is the settlement state of an order.
type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "paid"
	PaymentPending  PaymentStatus = "pending"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPaid, PaymentPending, PaymentRefunded:
		return true
	}
	return false
}

// DeliveryStatus is the fulfilment state of an order.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryShipped   DeliveryStatus = "shipped"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryCanceled  DeliveryStatus = "canceled"
)

func (s DeliveryStatus) Valid() bool {
	switch s {
	case DeliveryPending, DeliveryShipped, DeliveryDelivered, DeliveryCanceled:
		return true
	}
	return false
}

// ProductSummary is the denormalized product snapshot embedded in a line item.
// It is copied from the live product at add time and never updated afterwards,
// so historical orders keep the values the product had when it was sold.
type ProductSummary struct {
	Name     string `json:"productName"`
	SKU      string `json:"sku"`
	Category string `json:"category"`
}

// OrderItem is one line item: a product reference plus a unit price snapshot.
type OrderItem struct {
	ProductID string         `json:"productId"`
	Quantity  int            `json:"quantity"`
	Price     float64        `json:"price"`
	Product   ProductSummary `json:"product"`
}

// Order is one order record. JSON field names match the stored wire shape;
// the line items live under the legacy "products" field.
type Order struct {
	ID                   string         `json:"id"`
	Code                 string         `json:"orderId"`
	ClientName           string         `json:"clientName"`
	DeliveryAddress      string         `json:"deliveryAddress"`
	PaymentStatus        PaymentStatus  `json:"paymentStatus"`
	DeliveryStatus       DeliveryStatus `json:"deliveryStatus"`
	ExpectedDeliveryDate string         `json:"expectedDeliveryDate"`
	TotalAmount          float64        `json:"totalAmount"`
	CreatedAt            string         `json:"createdAt"`
	OrderDate            string         `json:"orderDate"`
	Items                []OrderItem    `json:"products"`
	CustomerFeedback     int            `json:"customerFeedback,omitempty"`
	DeliveryProgress     int            `json:"deliveryProgress,omitempty"`
}

func (o Order) RecordID() string { return o.ID }

// NewOrderCode derives a human-readable order code from a timestamp,
// e.g. ORD-LRW3K9X2.
func NewOrderCode(t time.Time) string {
	return "ORD-" + strings.ToUpper(strconv.FormatInt(t.UnixMilli(), 36))
}

// ComputeOrderTotal returns the sum over the line items of price x quantity,
// rounded to cents. The order total is always recomputed from its inputs and
// never mutated independently.
func ComputeOrderTotal(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return math.Round(total*100) / 100
}

// Validate checks the order invariants.
func (o *Order) Validate() error {
	if strings.TrimSpace(o.ClientName) == "" {
		return &FieldError{Field: "clientName", Message: "client name is required"}
	}
	if strings.TrimSpace(o.DeliveryAddress) == "" {
		return &FieldError{Field: "deliveryAddress", Message: "delivery address is required"}
	}
	if !o.PaymentStatus.Valid() {
		return &FieldError{Field: "paymentStatus", Message: "payment status must be paid, pending or refunded"}
	}
	if !o.DeliveryStatus.Valid() {
		return &FieldError{Field: "deliveryStatus", Message: "delivery status must be pending, shipped, delivered or canceled"}
	}
	if len(o.Items) == 0 {
		return ErrEmptyOrder
	}
	for _, item := range o.Items {
		if item.Quantity < 1 {
			return &FieldError{Field: "quantity", Message: "quantity must be at least 1"}
		}
		if item.Price < 0 {
			return &FieldError{Field: "price", Message: "line item price must not be negative"}
		}
	}
	if o.CustomerFeedback != 0 && (o.CustomerFeedback < 1 || o.CustomerFeedback > 5) {
		return &FieldError{Field: "customerFeedback", Message: "customer feedback must be between 1 and 5"}
	}
	if o.DeliveryProgress < 0 || o.DeliveryProgress > 100 {
		return &FieldError{Field: "deliveryProgress", Message: "delivery progress must be between 0 and 100"}
	}
	return nil
}

// OrderItemInput is one requested line item before the product snapshot is taken.
type OrderItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderInput is the validated output of the order form.
type OrderInput struct {
	ClientName           string           `json:"clientName"`
	DeliveryAddress      string           `json:"deliveryAddress"`
	PaymentStatus        PaymentStatus    `json:"paymentStatus"`
	DeliveryStatus       DeliveryStatus   `json:"deliveryStatus"`
	ExpectedDeliveryDate string           `json:"expectedDeliveryDate"`
	Items                []OrderItemInput `json:"products"`
	CustomerFeedback     int              `json:"customerFeedback"`
	DeliveryProgress     int              `json:"deliveryProgress"`
}

// NewOrder builds an Order from form input against the live product catalog.
// Each line item snapshots the product's current price and summary fields, the
// quantity is bounded by available stock, and the total is derived from the
// snapshots.
func NewOrder(in OrderInput, catalog []Product, now time.Time) (Order, error) {
	if len(in.Items) == 0 {
		return Order{}, ErrEmptyOrder
	}

	byID := make(map[string]Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	items := make([]OrderItem, 0, len(in.Items))
	for _, req := range in.Items {
		p, ok := byID[req.ProductID]
		if !ok {
			return Order{}, ErrUnknownProduct
		}
		if req.Quantity < 1 {
			return Order{}, &FieldError{Field: "quantity", Message: "quantity must be at least 1"}
		}
		if req.Quantity > p.StockQuantity {
			return Order{}, ErrInsufficientStock
		}
		items = append(items, OrderItem{
			ProductID: p.ID,
			Quantity:  req.Quantity,
			Price:     p.Price,
			Product: ProductSummary{
				Name:     p.Name,
				SKU:      p.SKU,
				Category: p.Category,
			},
		})
	}

	o := Order{
		ID:                   NewRecordID(),
		Code:                 NewOrderCode(now),
		ClientName:           strings.TrimSpace(in.ClientName),
		DeliveryAddress:      strings.TrimSpace(in.DeliveryAddress),
		PaymentStatus:        in.PaymentStatus,
		DeliveryStatus:       in.DeliveryStatus,
		ExpectedDeliveryDate: in.ExpectedDeliveryDate,
		TotalAmount:          ComputeOrderTotal(items),
		CreatedAt:            now.UTC().Format(time.RFC3339),
		OrderDate:            now.Format("2006-01-02"),
		Items:                items,
		CustomerFeedback:     in.CustomerFeedback,
		DeliveryProgress:     in.DeliveryProgress,
	}
	if err := o.Validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}
