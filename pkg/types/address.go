package types

import "strings"

// Address is the delivery address attached to quote requests. Every subfield
// is required before an order may be submitted.
type Address struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Country string `json:"country" validate:"required"`
	Zip     string `json:"zip" validate:"required"`
}

// MissingFields lists the empty subfields by their wire names.
func (a Address) MissingFields() []string {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	check("street", a.Street)
	check("city", a.City)
	check("state", a.State)
	check("country", a.Country)
	check("zip", a.Zip)
	return missing
}

// Oneline renders the address for message payloads and invoice headers.
func (a Address) Oneline() string {
	parts := make([]string, 0, 5)
	for _, part := range []string{a.Street, a.City, a.State, a.Zip, a.Country} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ", ")
}
