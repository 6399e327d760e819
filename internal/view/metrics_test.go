package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/wathera-admin/internal/domain"
)

func TestOrderOverview_SampleBook(t *testing.T) {
	m := OrderOverview(domain.SampleOrders())

	assert.Equal(t, 5, m.TotalOrders)
	assert.Equal(t, 20.0, m.DeliveredPercentage)
	// One pending plus two shipped orders.
	assert.Equal(t, 3, m.PendingDeliveries)
	// (5+4+3+1+4)/5 = 3.4
	assert.Equal(t, 3.4, m.AverageSatisfaction)
}

func TestOrderOverview_Empty(t *testing.T) {
	m := OrderOverview(nil)

	assert.Equal(t, 0, m.TotalOrders)
	assert.Equal(t, 0.0, m.DeliveredPercentage)
	assert.Equal(t, 0.0, m.AverageSatisfaction)
}

func TestProductOverview_SampleCatalog(t *testing.T) {
	m := ProductOverview(domain.SampleProducts())

	assert.Equal(t, 5, m.TotalProducts)
	assert.Equal(t, 4, m.ActiveCount)
	assert.Equal(t, 1, m.OutOfStock)
	// The chair has 8 in stock, below the threshold of 10.
	assert.Equal(t, 1, m.LowStock)
	assert.Equal(t, []string{"Clothing", "Electronics", "Furniture"}, m.Categories)
}

func TestDashboard_RevenueSumsOrderTotals(t *testing.T) {
	stats := Dashboard(domain.SampleProducts(), domain.SampleOrders())

	assert.Equal(t, 1, stats.TotalUsers)
	assert.Equal(t, 5, stats.TotalProducts)
	assert.Equal(t, 5, stats.TotalOrders)
	// 299.97 + 549.98 + 89.97 + 129.99 + 174.97
	assert.Equal(t, 1244.88, stats.TotalRevenue)
}
