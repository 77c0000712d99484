package orders

import (
	"github.com/agrovia/agroexport-web/pkg/enums"
	"github.com/agrovia/agroexport-web/pkg/upstream"
)

// Reconcile merges the server's order record over the local list entry.
// Precedence rule: server fields always win; local values only fill gaps the
// server left empty. After a quote submission a server record with no status
// falls back to "quoted", never the other way around.
func Reconcile(server, local *upstream.Order) upstream.Order {
	if server == nil && local == nil {
		return upstream.Order{}
	}
	if server == nil {
		return *local
	}

	merged := *server
	if local == nil {
		if merged.Status == "" {
			merged.Status = enums.OrderStatusQuoted
		}
		return merged
	}

	if merged.ID == "" {
		merged.ID = local.ID
	}
	if merged.OrderNumber == "" {
		merged.OrderNumber = local.OrderNumber
	}
	if merged.Status == "" {
		merged.Status = enums.OrderStatusQuoted
	}
	if merged.Customer == (upstream.Contact{}) {
		merged.Customer = local.Customer
	}
	if len(merged.Items) == 0 {
		merged.Items = local.Items
	}
	if merged.Currency == "" {
		merged.Currency = local.Currency
	}
	if merged.QuotedPrice == nil {
		merged.QuotedPrice = local.QuotedPrice
	}
	if merged.DeliveryTime == nil {
		merged.DeliveryTime = local.DeliveryTime
	}
	if merged.AdminNotes == nil {
		merged.AdminNotes = local.AdminNotes
	}
	if merged.SpecialRequirements == nil {
		merged.SpecialRequirements = local.SpecialRequirements
	}
	if merged.CreatedAt.IsZero() {
		merged.CreatedAt = local.CreatedAt
	}
	if merged.QuotedAt == nil {
		merged.QuotedAt = local.QuotedAt
	}
	if merged.ConfirmedAt == nil {
		merged.ConfirmedAt = local.ConfirmedAt
	}
	return merged
}

// PatchList replaces the matching entry in a fetched order list with the
// reconciled record, matching by ID first and order number second.
func PatchList(list []upstream.Order, merged upstream.Order) []upstream.Order {
	for i := range list {
		if (merged.ID != "" && list[i].ID == merged.ID) ||
			(merged.OrderNumber != "" && list[i].OrderNumber == merged.OrderNumber) {
			list[i] = merged
			return list
		}
	}
	return list
}
