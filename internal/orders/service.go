package orders

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/agrovia/agroexport-web/internal/pricing"
	"github.com/agrovia/agroexport-web/pkg/enums"
	pkgerrors "github.com/agrovia/agroexport-web/pkg/errors"
	"github.com/agrovia/agroexport-web/pkg/logger"
	"github.com/agrovia/agroexport-web/pkg/upstream"
)

// marketplaceAPI is the slice of the upstream client this service consumes.
type marketplaceAPI interface {
	CreateOrder(ctx context.Context, req upstream.CreateOrderRequest) (*upstream.OrderCreated, error)
	ConfirmOrder(ctx context.Context, orderNumber, email string) (*upstream.Order, error)
	GetOrder(ctx context.Context, token, orderID string) (*upstream.Order, error)
	ListOrders(ctx context.Context, token string) ([]upstream.Order, error)
	OrderStats(ctx context.Context, token string) (*upstream.OrderStats, error)
	QuoteOrder(ctx context.Context, token, orderID string, req upstream.QuoteRequest) (*upstream.Order, error)
	UpdateOrder(ctx context.Context, token, orderID string, req upstream.OrderUpdate) (*upstream.Order, error)
}

// Service runs the quote-to-order pipeline and the admin order surface.
type Service interface {
	CreateQuoteRequest(ctx context.Context, input QuoteRequestInput) (*QuoteRequestResult, error)
	Confirm(ctx context.Context, input ConfirmInput) (*upstream.Order, error)
	Get(ctx context.Context, token, orderID string) (*upstream.Order, error)
	List(ctx context.Context, token string) ([]upstream.Order, error)
	Stats(ctx context.Context, token string) (*upstream.OrderStats, error)
	SubmitQuote(ctx context.Context, token, orderID string, input QuoteInput, local *upstream.Order) (*upstream.Order, error)
	UpdateStatus(ctx context.Context, token, orderID string, status enums.OrderStatus) (*upstream.Order, error)
}

type service struct {
	api  marketplaceAPI
	logg *logger.Logger
}

// NewService builds the order service against the marketplace client.
func NewService(api marketplaceAPI, logg *logger.Logger) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("marketplace api client required")
	}
	return &service{api: api, logg: logg}, nil
}

// CreateQuoteRequest validates the form, prices the selection and submits the
// order. Validation failures surface per-field before any network call.
func (s *service) CreateQuoteRequest(ctx context.Context, input QuoteRequestInput) (*QuoteRequestResult, error) {
	if fields := validateQuoteRequest(input); len(fields) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "please correct the highlighted fields").WithDetails(fields)
	}

	totals := pricing.Calculate(input.Items)

	req := upstream.CreateOrderRequest{
		Customer:            input.Contact,
		DeliveryAddress:     input.Address,
		Subtotal:            totals.Subtotal,
		TaxAmount:           totals.Tax,
		Total:               totals.Total,
		Currency:            totals.Currency,
		SpecialRequirements: strings.TrimSpace(input.SpecialRequirements),
	}
	for _, item := range totals.Items {
		req.Items = append(req.Items, upstream.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Category:  item.Category,
			Unit:      item.Unit,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}

	created, err := s.api.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithOrderNumber(ctx, created.OrderNumber), "quote request submitted")
	}

	return &QuoteRequestResult{
		OrderNumber:    created.OrderNumber,
		EstimatedTotal: created.EstimatedTotal,
		Currency:       created.Currency.OrDefault(),
		Totals:         totals,
	}, nil
}

// Confirm lets the customer accept a quoted order by number and email.
func (s *service) Confirm(ctx context.Context, input ConfirmInput) (*upstream.Order, error) {
	fields := map[string]string{}
	if strings.TrimSpace(input.OrderNumber) == "" {
		fields["order_number"] = "is required"
	}
	if !validEmail(input.Email) {
		fields["email"] = "must be a valid email"
	}
	if len(fields) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "please correct the highlighted fields").WithDetails(fields)
	}
	return s.api.ConfirmOrder(ctx, strings.TrimSpace(input.OrderNumber), strings.TrimSpace(input.Email))
}

func (s *service) Get(ctx context.Context, token, orderID string) (*upstream.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	return s.api.GetOrder(ctx, token, orderID)
}

func (s *service) List(ctx context.Context, token string) ([]upstream.Order, error) {
	return s.api.ListOrders(ctx, token)
}

func (s *service) Stats(ctx context.Context, token string) (*upstream.OrderStats, error) {
	return s.api.OrderStats(ctx, token)
}

// SubmitQuote attaches an admin price quote and reconciles the server's
// answer against the local list entry. Server fields always win.
func (s *service) SubmitQuote(ctx context.Context, token, orderID string, input QuoteInput, local *upstream.Order) (*upstream.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !input.Price.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quote price must be positive").
			WithDetails(map[string]string{"price": "must be a positive number"})
	}

	quoted, err := s.api.QuoteOrder(ctx, token, orderID, upstream.QuoteRequest{
		Price:        input.Price,
		DeliveryTime: strings.TrimSpace(input.DeliveryTime),
		Notes:        strings.TrimSpace(input.Notes),
	})
	if err != nil {
		return nil, err
	}

	merged := Reconcile(quoted, local)
	return &merged, nil
}

// UpdateStatus sets an order status. Transition legality is a server-side
// policy; the frontend only constrains input to known statuses.
func (s *service) UpdateStatus(ctx context.Context, token, orderID string, status enums.OrderStatus) (*upstream.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", status))
	}
	return s.api.UpdateOrder(ctx, token, orderID, upstream.OrderUpdate{Status: &status})
}

func validateQuoteRequest(input QuoteRequestInput) map[string]string {
	fields := map[string]string{}

	if strings.TrimSpace(input.Contact.Name) == "" {
		fields["name"] = "is required"
	}
	if !validEmail(input.Contact.Email) {
		fields["email"] = "must be a valid email"
	}
	if strings.TrimSpace(input.Contact.Phone) == "" {
		fields["phone"] = "is required"
	}
	for _, name := range input.Address.MissingFields() {
		fields[name] = "is required"
	}

	selected := 0
	for _, item := range input.Items {
		if item.Quantity > 0 {
			selected++
		}
	}
	if selected == 0 {
		fields["products"] = "select at least one product"
	}

	return fields
}

func validEmail(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}
	_, err := mail.ParseAddress(trimmed)
	return err == nil
}

// FieldErrors extracts the per-field messages carried by a validation error,
// whether produced locally or decoded from an upstream 4xx answer.
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	fields := map[string]string{}

	if typed := pkgerrors.As(err); typed != nil {
		if details, ok := typed.Details().(map[string]string); ok {
			for k, v := range details {
				fields[k] = v
			}
		}
	}

	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		for k, v := range apiErr.FieldErrors() {
			fields[k] = v
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}
