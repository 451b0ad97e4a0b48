package model

// Product is a marketplace listing. SellerID is only populated on
// resources the API scopes to an owner; ownership itself is enforced
// server-side.
type Product struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	PictureURL  string  `json:"picture_url"`
	Description string  `json:"description"`
	SellerID    string  `json:"seller_id,omitempty"`
}

// Analytics are the aggregate counters behind GET /products/analytics.
type Analytics struct {
	TotalProducts          int `json:"total_products"`
	TotalSellingProducts   int `json:"total_selling_products"`
	TotalSoldProducts      int `json:"total_sold_products"`
	TotalPurchasedProducts int `json:"total_purchased_products"`
}
