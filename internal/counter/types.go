package counter

// Order is the wire shape the counter API returns. Orders are created
// server-side (direct create or CSV import) and are read-only here.
type Order struct {
	ID               int64   `json:"id"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Subtotal         float64 `json:"subtotal"`
	CompositeTaxRate float64 `json:"composite_tax_rate"`
	TaxAmount        float64 `json:"tax_amount"`
	TotalAmount      float64 `json:"total_amount"`
	Timestamp        string  `json:"timestamp"`
	StateRate        float64 `json:"state_rate"`
	CountyRate       float64 `json:"county_rate"`
	CityRate         float64 `json:"city_rate"`
	SpecialRates     float64 `json:"special_rates"`
	State            string  `json:"state"`
	County           string  `json:"county"`
	City             string  `json:"city"`
}

type ListResponse struct {
	Count       int     `json:"count"`
	NumPages    int     `json:"num_pages"`
	CurrentPage int     `json:"current_page"`
	Results     []Order `json:"results"`
}

type CreateOrderInput struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Subtotal  float64 `json:"subtotal"`
	// Timestamp is optional; when empty the API stamps the order itself.
	Timestamp string `json:"timestamp,omitempty"`
}

type CreateOrderResponse struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
}

type ImportResponse struct {
	Message string `json:"message"`
}
