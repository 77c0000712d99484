package upstream

import (
	"encoding/json"
	"time"

	"github.com/agrovia/agroexport-web/pkg/enums"
	"github.com/agrovia/agroexport-web/pkg/types"
	"github.com/shopspring/decimal"
)

// PriceRange is the vendor-declared min/max unit price for a product.
type PriceRange struct {
	Min      decimal.Decimal `json:"min"`
	Max      decimal.Decimal `json:"max"`
	Currency enums.Currency  `json:"currency"`
}

// Product mirrors the catalog entry served by the marketplace API.
type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Unit        string           `json:"unit"`
	MinOrderQty int              `json:"min_order_qty"`
	QuickQtys   []int            `json:"quick_qtys,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	PriceRange  *PriceRange      `json:"price_range,omitempty"`
	VendorID    string           `json:"vendor_id"`
	Available   bool             `json:"available"`
	ImageURL    *string          `json:"image_url,omitempty"`
}

// Contact is the customer contact block on a quote request.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// OrderItem is one priced line of an order.
type OrderItem struct {
	ProductID string          `json:"product_id,omitempty"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Order is the server-owned order record.
type Order struct {
	ID                  string            `json:"id"`
	OrderNumber         string            `json:"order_number"`
	Status              enums.OrderStatus `json:"status"`
	Customer            Contact           `json:"customer"`
	DeliveryAddress     types.Address     `json:"delivery_address"`
	Items               []OrderItem       `json:"items"`
	Subtotal            decimal.Decimal   `json:"subtotal"`
	TaxAmount           decimal.Decimal   `json:"tax_amount"`
	Total               decimal.Decimal   `json:"total"`
	Currency            enums.Currency    `json:"currency"`
	QuotedPrice         *decimal.Decimal  `json:"quoted_price,omitempty"`
	DeliveryTime        *string           `json:"delivery_time,omitempty"`
	AdminNotes          *string           `json:"admin_notes,omitempty"`
	SpecialRequirements *string           `json:"special_requirements,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	QuotedAt            *time.Time        `json:"quoted_at,omitempty"`
	ConfirmedAt         *time.Time        `json:"confirmed_at,omitempty"`
}

// CreateOrderRequest is the quote-request payload sent to /orders/create.
type CreateOrderRequest struct {
	Customer            Contact         `json:"customer"`
	DeliveryAddress     types.Address   `json:"delivery_address"`
	Items               []OrderItem     `json:"items"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	TaxAmount           decimal.Decimal `json:"tax_amount"`
	Total               decimal.Decimal `json:"total"`
	Currency            enums.Currency  `json:"currency"`
	SpecialRequirements string          `json:"special_requirements,omitempty"`
}

// OrderCreated is the server acknowledgement for a new quote request.
type OrderCreated struct {
	OrderNumber    string          `json:"order_number"`
	EstimatedTotal decimal.Decimal `json:"estimated_total"`
	Currency       enums.Currency  `json:"currency"`
}

// QuoteRequest attaches an admin price quote to an order.
type QuoteRequest struct {
	Price        decimal.Decimal `json:"price"`
	DeliveryTime string          `json:"delivery_time,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// OrderUpdate carries admin field updates for PUT /orders/:id.
type OrderUpdate struct {
	Status     *enums.OrderStatus `json:"status,omitempty"`
	AdminNotes *string            `json:"admin_notes,omitempty"`
}

// OrderStats is the aggregate block behind the admin dashboard header.
type OrderStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Quoted    int `json:"quoted"`
	Confirmed int `json:"confirmed"`
	Delivered int `json:"delivered"`
	Cancelled int `json:"cancelled"`
}

// Vendor mirrors the supplier record served by the marketplace API.
type Vendor struct {
	ID              string             `json:"id"`
	BusinessName    string             `json:"business_name"`
	ContactPerson   string             `json:"contact_person"`
	Email           string             `json:"email"`
	Phone           string             `json:"phone"`
	Address         types.Address      `json:"address"`
	Specializations []string           `json:"specializations"`
	Status          enums.VendorStatus `json:"status"`
	Verified        bool               `json:"verified"`
	CreatedAt       time.Time          `json:"created_at"`
}

// VendorRegistration is the self-registration payload.
type VendorRegistration struct {
	BusinessName    string        `json:"business_name"`
	ContactPerson   string        `json:"contact_person"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	Password        string        `json:"password"`
	Address         types.Address `json:"address"`
	Specializations []string      `json:"specializations"`
}

// Session is the token plus profile snapshot issued by a login endpoint.
// The profile is kept opaque; this tier only stores and replays it.
type Session struct {
	Token   string          `json:"token"`
	Profile json.RawMessage `json:"profile,omitempty"`
}

// SignupStatus reports whether the single admin account already exists.
type SignupStatus struct {
	SignupAllowed bool `json:"signup_allowed"`
}
