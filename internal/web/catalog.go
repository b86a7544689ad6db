package web

// Gadget is a showcase item on the home page. The catalog is hardcoded
// display data, it never touches the store.
type Gadget struct {
	Name   string
	Price  float64
	Img    string
	Badge  string
	Rating float64
}

// Plan is a subscription plan on the pricing page. Display only, there
// is no payment processing.
type Plan struct {
	Name     string
	Price    float64
	Features []string
	Color    string
	Popular  bool
}

func catalog() []Gadget {
	return []Gadget{
		{Name: "SmartPhone X12 Pro", Price: 4_599_000, Img: "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=400&q=80", Badge: "New", Rating: 4.8},
		{Name: "AirBuds Neo", Price: 899_000, Img: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&q=80", Badge: "Top Seller", Rating: 4.6},
		{Name: "4K UltraTab", Price: 3_299_000, Img: "https://images.unsplash.com/photo-1544244015-0df4b3ffc6b0?w=400&q=80", Badge: "Discount", Rating: 4.7},
		{Name: "SmartWatch Series 9", Price: 1_450_000, Img: "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=400&q=80", Badge: "Trending", Rating: 4.9},
		{Name: "NoiseCam 360", Price: 2_100_000, Img: "https://images.unsplash.com/photo-1516035069371-29a1b244cc32?w=400&q=80", Badge: "New", Rating: 4.5},
		{Name: "PowerHub Pro", Price: 650_000, Img: "https://images.unsplash.com/photo-1583394838336-acd977736f90?w=400&q=80", Badge: "Popular", Rating: 4.4},
	}
}

func plans() []Plan {
	return []Plan{
		{Name: "Free", Price: 0, Features: []string{"5 tasks", "Basic catalog", "Email support"}, Color: "secondary"},
		{Name: "Pro", Price: 79_000, Features: []string{"Unlimited tasks", "Marketplace access", "24/7 support", "Analytics panel"}, Color: "primary", Popular: true},
		{Name: "Business", Price: 199_000, Features: []string{"Everything in Pro", "API access", "Dedicated manager", "SLA guarantee"}, Color: "dark"},
	}
}
