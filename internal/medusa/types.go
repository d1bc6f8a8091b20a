package medusa

// Record shapes mirror the commerce service's store API.

type Product struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Handle       string    `json:"handle"`
	Description  *string   `json:"description"`
	Thumbnail    *string   `json:"thumbnail"`
	Variants     []Variant `json:"variants"`
	Images       []Image   `json:"images"`
	CollectionID *string   `json:"collection_id"`
	CreatedAt    string    `json:"created_at"`
	UpdatedAt    string    `json:"updated_at"`
}

type Variant struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	SKU               *string  `json:"sku"`
	Prices            []Price  `json:"prices"`
	InventoryQuantity int      `json:"inventory_quantity"`
	Options           []Option `json:"options"`
}

type Price struct {
	ID           string `json:"id"`
	CurrencyCode string `json:"currency_code"`
	Amount       int64  `json:"amount"`
}

type Image struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type Option struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

type Cart struct {
	ID            string     `json:"id"`
	Items         []CartItem `json:"items"`
	RegionID      string     `json:"region_id"`
	Subtotal      int64      `json:"subtotal"`
	TaxTotal      int64      `json:"tax_total"`
	ShippingTotal int64      `json:"shipping_total"`
	Total         int64      `json:"total"`
	CreatedAt     string     `json:"created_at"`
	UpdatedAt     string     `json:"updated_at"`
}

type CartItem struct {
	ID          string   `json:"id"`
	CartID      string   `json:"cart_id"`
	VariantID   string   `json:"variant_id"`
	Variant     *Variant `json:"variant,omitempty"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Thumbnail   *string  `json:"thumbnail"`
	Quantity    int      `json:"quantity"`
	UnitPrice   int64    `json:"unit_price"`
	Subtotal    int64    `json:"subtotal"`
	Total       int64    `json:"total"`
}

type Customer struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone"`
	CreatedAt string  `json:"created_at"`
}

type Order struct {
	ID                string        `json:"id"`
	DisplayID         int           `json:"display_id"`
	Status            string        `json:"status"`
	FulfillmentStatus string        `json:"fulfillment_status"`
	PaymentStatus     string        `json:"payment_status"`
	Items             []OrderItem   `json:"items"`
	Subtotal          int64         `json:"subtotal"`
	TaxTotal          int64         `json:"tax_total"`
	ShippingTotal     int64         `json:"shipping_total"`
	Total             int64         `json:"total"`
	CreatedAt         string        `json:"created_at"`
	ShippingAddress   *Address      `json:"shipping_address"`
	Fulfillments      []Fulfillment `json:"fulfillments"`
}

type OrderItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Thumbnail   *string  `json:"thumbnail"`
	Quantity    int      `json:"quantity"`
	UnitPrice   int64    `json:"unit_price"`
	Subtotal    int64    `json:"subtotal"`
	Total       int64    `json:"total"`
	Variant     *Variant `json:"variant,omitempty"`
}

type Address struct {
	ID          string  `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Phone       *string `json:"phone"`
	Address1    string  `json:"address_1"`
	Address2    *string `json:"address_2"`
	City        string  `json:"city"`
	Province    *string `json:"province"`
	PostalCode  *string `json:"postal_code"`
	CountryCode string  `json:"country_code"`
}

type Fulfillment struct {
	ID              string         `json:"id"`
	TrackingNumbers []string       `json:"tracking_numbers"`
	TrackingLinks   []TrackingLink `json:"tracking_links"`
	CreatedAt       string         `json:"created_at"`
}

type TrackingLink struct {
	URL string `json:"url"`
}

type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterData struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone,omitempty"`
}

type productsResponse struct {
	Products []Product `json:"products"`
}

type productResponse struct {
	Product Product `json:"product"`
}

type cartResponse struct {
	Cart Cart `json:"cart"`
}

type customerResponse struct {
	Customer Customer `json:"customer"`
}

type ordersResponse struct {
	Orders []Order `json:"orders"`
}

type orderResponse struct {
	Order Order `json:"order"`
}
