package domain

// SampleProducts returns the seed catalog used when the store has no product
// collection yet.
func SampleProducts() []Product {
	return []Product{
		{
			ID:               "1",
			Name:             "Wireless Bluetooth Headphones",
			SKU:              "AUDIO-001",
			Category:         "Electronics",
			Price:            129.99,
			StockQuantity:    60,
			Description:      "High-quality wireless headphones with noise cancellation",
			Active:           true,
			CreatedAt:        "2024-01-15",
			Satisfaction:     4,
			DeliveryProgress: 85,
			SalesData:        []int{12, 19, 8, 15, 22, 18, 25},
		},
		{
			ID:               "2",
			Name:             "Ergonomic Office Chair",
			SKU:              "FURN-001",
			Category:         "Furniture",
			Price:            299.99,
			StockQuantity:    8,
			Description:      "Comfortable ergonomic chair for office use",
			Active:           true,
			CreatedAt:        "2024-01-10",
			Satisfaction:     5,
			DeliveryProgress: 45,
			SalesData:        []int{5, 8, 12, 6, 9, 11, 7},
		},
		{
			ID:               "3",
			Name:             "Cotton T-Shirt",
			SKU:              "CLOTH-001",
			Category:         "Clothing",
			Price:            24.99,
			StockQuantity:    120,
			Description:      "100% cotton comfortable t-shirt",
			Active:           true,
			CreatedAt:        "2024-01-20",
			Satisfaction:     3,
			DeliveryProgress: 100,
			SalesData:        []int{45, 38, 52, 48, 61, 55, 49},
		},
		{
			ID:               "4",
			Name:             "Smartphone Case",
			SKU:              "ACC-001",
			Category:         "Electronics",
			Price:            19.99,
			StockQuantity:    0,
			Description:      "Protective case for smartphones",
			Active:           false,
			CreatedAt:        "2024-01-05",
			Satisfaction:     2,
			DeliveryProgress: 0,
			SalesData:        []int{0, 0, 0, 0, 0, 0, 0},
		},
		{
			ID:               "5",
			Name:             "Desk Lamp",
			SKU:              "FURN-002",
			Category:         "Furniture",
			Price:            49.99,
			StockQuantity:    55,
			Description:      "LED desk lamp with adjustable brightness",
			Active:           true,
			CreatedAt:        "2024-01-12",
			Satisfaction:     4,
			DeliveryProgress: 90,
			SalesData:        []int{8, 12, 6, 14, 10, 13, 9},
		},
	}
}

// SampleOrders returns the seed order book used when the store has no order
// collection yet.
func SampleOrders() []Order {
	return []Order{
		{
			ID:                   "1",
			Code:                 "ORD-001",
			ClientName:           "John Smith",
			DeliveryAddress:      "123 Main St, New York, NY 10001",
			PaymentStatus:        PaymentPaid,
			DeliveryStatus:       DeliveryDelivered,
			ExpectedDeliveryDate: "2024-01-20",
			TotalAmount:          299.97,
			CreatedAt:            "2024-01-15T10:30:00Z",
			OrderDate:            "2024-01-15",
			Items: []OrderItem{
				{
					ProductID: "1",
					Quantity:  2,
					Price:     129.99,
					Product:   ProductSummary{Name: "Wireless Bluetooth Headphones", SKU: "AUDIO-001", Category: "Electronics"},
				},
				{
					ProductID: "3",
					Quantity:  1,
					Price:     24.99,
					Product:   ProductSummary{Name: "Cotton T-Shirt", SKU: "CLOTH-001", Category: "Clothing"},
				},
			},
			CustomerFeedback: 5,
			DeliveryProgress: 100,
		},
		{
			ID:                   "2",
			Code:                 "ORD-002",
			ClientName:           "Sarah Johnson",
			DeliveryAddress:      "456 Oak Ave, Los Angeles, CA 90210",
			PaymentStatus:        PaymentPending,
			DeliveryStatus:       DeliveryShipped,
			ExpectedDeliveryDate: "2024-01-25",
			TotalAmount:          549.98,
			CreatedAt:            "2024-01-16T14:20:00Z",
			OrderDate:            "2024-01-16",
			Items: []OrderItem{
				{
					ProductID: "2",
					Quantity:  1,
					Price:     299.99,
					Product:   ProductSummary{Name: "Ergonomic Office Chair", SKU: "FURN-001", Category: "Furniture"},
				},
				{
					ProductID: "5",
					Quantity:  1,
					Price:     49.99,
					Product:   ProductSummary{Name: "Desk Lamp", SKU: "FURN-002", Category: "Furniture"},
				},
			},
			CustomerFeedback: 4,
			DeliveryProgress: 75,
		},
		{
			ID:                   "3",
			Code:                 "ORD-003",
			ClientName:           "Mike Chen",
			DeliveryAddress:      "789 Pine Rd, Chicago, IL 60601",
			PaymentStatus:        PaymentPaid,
			DeliveryStatus:       DeliveryPending,
			ExpectedDeliveryDate: "2024-01-30",
			TotalAmount:          89.97,
			CreatedAt:            "2024-01-17T09:15:00Z",
			OrderDate:            "2024-01-17",
			Items: []OrderItem{
				{
					ProductID: "3",
					Quantity:  3,
					Price:     24.99,
					Product:   ProductSummary{Name: "Cotton T-Shirt", SKU: "CLOTH-001", Category: "Clothing"},
				},
			},
			CustomerFeedback: 3,
			DeliveryProgress: 25,
		},
		{
			ID:                   "4",
			Code:                 "ORD-004",
			ClientName:           "Emily Davis",
			DeliveryAddress:      "321 Elm St, Miami, FL 33101",
			PaymentStatus:        PaymentRefunded,
			DeliveryStatus:       DeliveryCanceled,
			ExpectedDeliveryDate: "2024-01-22",
			TotalAmount:          129.99,
			CreatedAt:            "2024-01-14T16:45:00Z",
			OrderDate:            "2024-01-14",
			Items: []OrderItem{
				{
					ProductID: "1",
					Quantity:  1,
					Price:     129.99,
					Product:   ProductSummary{Name: "Wireless Bluetooth Headphones", SKU: "AUDIO-001", Category: "Electronics"},
				},
			},
			CustomerFeedback: 1,
			DeliveryProgress: 0,
		},
		{
			ID:                   "5",
			Code:                 "ORD-005",
			ClientName:           "David Wilson",
			DeliveryAddress:      "654 Maple Dr, Seattle, WA 98101",
			PaymentStatus:        PaymentPaid,
			DeliveryStatus:       DeliveryShipped,
			ExpectedDeliveryDate: "2024-01-28",
			TotalAmount:          174.97,
			CreatedAt:            "2024-01-18T11:20:00Z",
			OrderDate:            "2024-01-18",
			Items: []OrderItem{
				{
					ProductID: "5",
					Quantity:  2,
					Price:     49.99,
					Product:   ProductSummary{Name: "Desk Lamp", SKU: "FURN-002", Category: "Furniture"},
				},
				{
					ProductID: "3",
					Quantity:  3,
					Price:     24.99,
					Product:   ProductSummary{Name: "Cotton T-Shirt", SKU: "CLOTH-001", Category: "Clothing"},
				},
			},
			CustomerFeedback: 4,
			DeliveryProgress: 60,
		},
	}
}
