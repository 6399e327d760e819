package view

import (
	"math"
	"sort"

	"github.com/example/wathera-admin/internal/domain"
)

// Overview metrics are always computed from the full collection, never from a
// filtered view: filters narrow the visible rows, not the KPI cards.

// OrderMetrics mirrors the order list overview cards.
type OrderMetrics struct {
	TotalOrders         int     `json:"totalOrders"`
	DeliveredPercentage float64 `json:"deliveredPercentage"`
	PendingDeliveries   int     `json:"pendingDeliveries"`
	AverageSatisfaction float64 `json:"averageSatisfaction"`
}

func OrderOverview(orders []domain.Order) OrderMetrics {
	m := OrderMetrics{TotalOrders: len(orders)}
	if len(orders) == 0 {
		return m
	}

	delivered := 0
	feedbackSum := 0
	for _, o := range orders {
		switch o.DeliveryStatus {
		case domain.DeliveryDelivered:
			delivered++
		case domain.DeliveryPending, domain.DeliveryShipped:
			m.PendingDeliveries++
		}
		feedbackSum += o.CustomerFeedback
	}
	m.DeliveredPercentage = float64(delivered) / float64(len(orders)) * 100
	avg := float64(feedbackSum) / float64(len(orders))
	m.AverageSatisfaction = math.Round(avg*10) / 10
	return m
}

// ProductMetrics mirrors the product table overview cards.
type ProductMetrics struct {
	TotalProducts int      `json:"totalProducts"`
	ActiveCount   int      `json:"activeCount"`
	OutOfStock    int      `json:"outOfStock"`
	LowStock      int      `json:"lowStock"`
	Categories    []string `json:"categories"`
}

const lowStockThreshold = 10

func ProductOverview(products []domain.Product) ProductMetrics {
	m := ProductMetrics{TotalProducts: len(products)}
	seen := make(map[string]bool)
	for _, p := range products {
		if p.Active {
			m.ActiveCount++
		}
		switch {
		case p.StockQuantity == 0:
			m.OutOfStock++
		case p.StockQuantity < lowStockThreshold:
			m.LowStock++
		}
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			m.Categories = append(m.Categories, p.Category)
		}
	}
	sort.Strings(m.Categories)
	return m
}

// DashboardStats mirrors the dashboard landing page counters.
type DashboardStats struct {
	TotalUsers    int     `json:"totalUsers"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalProducts int     `json:"totalProducts"`
	TotalOrders   int     `json:"totalOrders"`
}

func Dashboard(products []domain.Product, orders []domain.Order) DashboardStats {
	stats := DashboardStats{
		// Single-admin system: the signed-in admin is the only user.
		TotalUsers:    1,
		TotalProducts: len(products),
		TotalOrders:   len(orders),
	}
	for _, o := range orders {
		stats.TotalRevenue += o.TotalAmount
	}
	stats.TotalRevenue = math.Round(stats.TotalRevenue*100) / 100
	return stats
}
