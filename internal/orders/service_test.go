package orders

import (
	"context"
	"testing"

	"github.com/agrovia/agroexport-web/internal/pricing"
	"github.com/agrovia/agroexport-web/pkg/enums"
	pkgerrors "github.com/agrovia/agroexport-web/pkg/errors"
	"github.com/agrovia/agroexport-web/pkg/types"
	"github.com/agrovia/agroexport-web/pkg/upstream"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type stubAPI struct {
	createCalls   int
	lastCreate    upstream.CreateOrderRequest
	createResp    *upstream.OrderCreated
	createErr     error
	confirmCalls  int
	confirmResp   *upstream.Order
	confirmErr    error
	quoteCalls    int
	lastQuote     upstream.QuoteRequest
	quoteResp     *upstream.Order
	quoteErr      error
	updateCalls   int
	lastUpdate    upstream.OrderUpdate
	updateResp    *upstream.Order
	updateErr     error
	listResp      []upstream.Order
	statsResp     *upstream.OrderStats
	getResp       *upstream.Order
	lastToken     string
	lastOrderID   string
	lastConfirmNo string
}

func (s *stubAPI) CreateOrder(ctx context.Context, req upstream.CreateOrderRequest) (*upstream.OrderCreated, error) {
	s.createCalls++
	s.lastCreate = req
	return s.createResp, s.createErr
}

func (s *stubAPI) ConfirmOrder(ctx context.Context, orderNumber, email string) (*upstream.Order, error) {
	s.confirmCalls++
	s.lastConfirmNo = orderNumber
	return s.confirmResp, s.confirmErr
}

func (s *stubAPI) GetOrder(ctx context.Context, token, orderID string) (*upstream.Order, error) {
	s.lastToken = token
	s.lastOrderID = orderID
	return s.getResp, nil
}

func (s *stubAPI) ListOrders(ctx context.Context, token string) ([]upstream.Order, error) {
	s.lastToken = token
	return s.listResp, nil
}

func (s *stubAPI) OrderStats(ctx context.Context, token string) (*upstream.OrderStats, error) {
	s.lastToken = token
	return s.statsResp, nil
}

func (s *stubAPI) QuoteOrder(ctx context.Context, token, orderID string, req upstream.QuoteRequest) (*upstream.Order, error) {
	s.quoteCalls++
	s.lastToken = token
	s.lastOrderID = orderID
	s.lastQuote = req
	return s.quoteResp, s.quoteErr
}

func (s *stubAPI) UpdateOrder(ctx context.Context, token, orderID string, req upstream.OrderUpdate) (*upstream.Order, error) {
	s.updateCalls++
	s.lastOrderID = orderID
	s.lastUpdate = req
	return s.updateResp, s.updateErr
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func validInput() QuoteRequestInput {
	return QuoteRequestInput{
		Contact: upstream.Contact{Name: "Ama Mensah", Email: "ama@example.com", Phone: "+233200000000"},
		Address: types.Address{Street: "12 Harbor Rd", City: "Tema", State: "Greater Accra", Country: "Ghana", Zip: "00233"},
		Items: []pricing.Item{
			{ProductID: "p1", Name: "Cashew Nuts", Quantity: 5, UnitPrice: decPtr("100")},
			{ProductID: "p2", Name: "Shea Butter", Quantity: 2, Range: &upstream.PriceRange{Min: dec("10"), Max: dec("20"), Currency: enums.CurrencyUSD}},
		},
	}
}

func TestCreateQuoteRequestSubmitsPricedOrder(t *testing.T) {
	api := &stubAPI{createResp: &upstream.OrderCreated{
		OrderNumber:    "ORD-000123",
		EstimatedTotal: dec("625.4"),
		Currency:       enums.CurrencyUSD,
	}}
	svc, err := NewService(api, nil)
	require.NoError(t, err)

	result, err := svc.CreateQuoteRequest(context.Background(), validInput())
	require.NoError(t, err)
	require.Equal(t, 1, api.createCalls)
	require.Equal(t, "ORD-000123", result.OrderNumber)

	require.True(t, api.lastCreate.Subtotal.Equal(dec("530")))
	require.True(t, api.lastCreate.TaxAmount.Equal(dec("95.4")))
	require.True(t, api.lastCreate.Total.Equal(dec("625.4")))
	require.Len(t, api.lastCreate.Items, 2)
	require.True(t, api.lastCreate.Items[1].UnitPrice.Equal(dec("15")))
}

func TestCreateQuoteRequestBlocksOnMissingEmail(t *testing.T) {
	api := &stubAPI{}
	svc, _ := NewService(api, nil)

	input := validInput()
	input.Contact.Email = ""
	_, err := svc.CreateQuoteRequest(context.Background(), input)

	require.Error(t, err)
	require.Equal(t, 0, api.createCalls, "no network call may be issued")
	fields := FieldErrors(err)
	require.Contains(t, fields, "email")
}

func TestCreateQuoteRequestBlocksOnMissingAddressSubfield(t *testing.T) {
	api := &stubAPI{}
	svc, _ := NewService(api, nil)

	input := validInput()
	input.Address.Zip = ""
	_, err := svc.CreateQuoteRequest(context.Background(), input)

	require.Error(t, err)
	require.Equal(t, 0, api.createCalls)
	require.Contains(t, FieldErrors(err), "zip")
}

func TestCreateQuoteRequestBlocksOnEmptySelection(t *testing.T) {
	api := &stubAPI{}
	svc, _ := NewService(api, nil)

	input := validInput()
	for i := range input.Items {
		input.Items[i].Quantity = 0
	}
	_, err := svc.CreateQuoteRequest(context.Background(), input)

	require.Error(t, err)
	require.Equal(t, 0, api.createCalls)
	require.Contains(t, FieldErrors(err), "products")
}

func TestCreateQuoteRequestMergesUpstreamFieldErrors(t *testing.T) {
	api := &stubAPI{createErr: pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
		WithDetails(map[string]string{"phone": "is invalid"})}
	svc, _ := NewService(api, nil)

	_, err := svc.CreateQuoteRequest(context.Background(), validInput())
	require.Error(t, err)
	require.Equal(t, "is invalid", FieldErrors(err)["phone"])
}

func TestConfirmValidatesInput(t *testing.T) {
	api := &stubAPI{}
	svc, _ := NewService(api, nil)

	_, err := svc.Confirm(context.Background(), ConfirmInput{OrderNumber: "", Email: "not-an-email"})
	require.Error(t, err)
	require.Equal(t, 0, api.confirmCalls)
	fields := FieldErrors(err)
	require.Contains(t, fields, "order_number")
	require.Contains(t, fields, "email")
}

func TestSubmitQuoteRequiresPositivePrice(t *testing.T) {
	api := &stubAPI{}
	svc, _ := NewService(api, nil)

	_, err := svc.SubmitQuote(context.Background(), "tok", "o1", QuoteInput{Price: dec("0")}, nil)
	require.Error(t, err)
	require.Equal(t, 0, api.quoteCalls)
}

func TestSubmitQuoteReconcilesServerResponse(t *testing.T) {
	local := &upstream.Order{
		ID:          "o1",
		OrderNumber: "ORD-000123",
		Status:      enums.OrderStatusPending,
		Customer:    upstream.Contact{Name: "Ama"},
	}
	api := &stubAPI{quoteResp: &upstream.Order{
		ID:          "o1",
		QuotedPrice: decPtr("250.00"),
	}}
	svc, _ := NewService(api, nil)

	merged, err := svc.SubmitQuote(context.Background(), "tok", "o1", QuoteInput{Price: dec("250.00")}, local)
	require.NoError(t, err)
	require.Equal(t, enums.OrderStatusQuoted, merged.Status)
	require.True(t, merged.QuotedPrice.Equal(dec("250.00")))
	require.Equal(t, "ORD-000123", merged.OrderNumber)
	require.Equal(t, "Ama", merged.Customer.Name)
	require.True(t, api.lastQuote.Price.Equal(dec("250.00")))
}

func TestSubmitQuoteKeepsServerStatusWhenPresent(t *testing.T) {
	local := &upstream.Order{ID: "o1", Status: enums.OrderStatusPending}
	api := &stubAPI{quoteResp: &upstream.Order{ID: "o1", Status: enums.OrderStatusConfirmed}}
	svc, _ := NewService(api, nil)

	merged, err := svc.SubmitQuote(context.Background(), "tok", "o1", QuoteInput{Price: dec("10")}, local)
	require.NoError(t, err)
	require.Equal(t, enums.OrderStatusConfirmed, merged.Status, "server status must never be overridden")
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	api := &stubAPI{}
	svc, _ := NewService(api, nil)

	_, err := svc.UpdateStatus(context.Background(), "tok", "o1", enums.OrderStatus("archived"))
	require.Error(t, err)
	require.Equal(t, 0, api.updateCalls)
}

func TestUpdateStatusSendsKnownStatus(t *testing.T) {
	api := &stubAPI{updateResp: &upstream.Order{ID: "o1", Status: enums.OrderStatusShipped}}
	svc, _ := NewService(api, nil)

	order, err := svc.UpdateStatus(context.Background(), "tok", "o1", enums.OrderStatusShipped)
	require.NoError(t, err)
	require.Equal(t, enums.OrderStatusShipped, order.Status)
	require.NotNil(t, api.lastUpdate.Status)
	require.Equal(t, enums.OrderStatusShipped, *api.lastUpdate.Status)
}
