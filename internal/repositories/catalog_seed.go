package repositories

import "ngcommerce/internal/models"

// DefaultCatalog returns the demo storefront's product fixture. Listing
// order here is the catalog's stable display order.
func DefaultCatalog() []models.Product {
	return []models.Product{
		{
			ID:            "1",
			Slug:          "quantum-core-laptop",
			Name:          "Quantum Core Laptop",
			Description:   "The future of computing in your hands. Features a 16-core processor, 32GB RAM, and a stunning 4K display.",
			Price:         1499.99,
			StockQuantity: 15,
			Category:      "Laptops",
			Image:         "https://picsum.photos/seed/laptop/600/400",
		},
		{
			ID:            "2",
			Slug:          "nebula-smartphone",
			Name:          "Nebula Smartphone",
			Description:   "A stellar camera and an all-day battery life make this the only phone you'll ever need.",
			Price:         899.00,
			StockQuantity: 30,
			Category:      "Smartphones",
			Image:         "https://picsum.photos/seed/phone/600/400",
		},
		{
			ID:            "3",
			Slug:          "aether-wireless-headphones",
			Name:          "Aether Wireless Headphones",
			Description:   "Crystal clear audio with industry-leading noise cancellation. Immerse yourself in sound.",
			Price:         249.50,
			StockQuantity: 50,
			Category:      "Audio",
			Image:         "https://picsum.photos/seed/headphones/600/400",
		},
		{
			ID:            "4",
			Slug:          "chronos-smartwatch",
			Name:          "Chronos Smartwatch",
			Description:   "Track your fitness, manage notifications, and stay connected. All from your wrist.",
			Price:         199.99,
			StockQuantity: 42,
			Category:      "Wearables",
			Image:         "https://picsum.photos/seed/watch/600/400",
		},
		{
			ID:            "5",
			Slug:          "nova-4k-monitor",
			Name:          "Nova 4K Monitor",
			Description:   "Experience breathtaking clarity and color accuracy with this 27-inch professional monitor.",
			Price:         650.00,
			StockQuantity: 22,
			Category:      "Monitors",
			Image:         "https://picsum.photos/seed/monitor/600/400",
		},
		{
			ID:            "6",
			Slug:          "ergoflow-mechanical-keyboard",
			Name:          "ErgoFlow Mechanical Keyboard",
			Description:   "Type faster and more comfortably with responsive tactile switches and customizable backlighting.",
			Price:         129.99,
			StockQuantity: 60,
			Category:      "Peripherals",
			Image:         "https://picsum.photos/seed/keyboard/600/400",
		},
	}
}

// DefaultFeaturedSlugs returns the curated featured subset in display order.
func DefaultFeaturedSlugs() []string {
	return []string{
		"aether-wireless-headphones",
		"quantum-core-laptop",
		"chronos-smartwatch",
	}
}
