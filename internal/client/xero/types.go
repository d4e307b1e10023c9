package xero

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Invoice types as reported by the accounting API. ACCREC is a receivable
// invoice; ACCPAY (and anything else) is treated as a bill/purchase order.
const (
	TypeAccountsReceivable = "ACCREC"
	TypeAccountsPayable    = "ACCPAY"
)

// Contact is the counterparty attached to an invoice.
type Contact struct {
	ContactID     string `json:"ContactID"`
	ContactStatus string `json:"ContactStatus"`
	Name          string `json:"Name"`
	EmailAddress  string `json:"EmailAddress"`
	IsSupplier    bool   `json:"IsSupplier"`
	IsCustomer    bool   `json:"IsCustomer"`
}

// Invoice is the canonical record fetched from the accounting API. The same
// shape covers both receivable invoices and payable bills; Type discriminates.
type Invoice struct {
	Type          string  `json:"Type"`
	InvoiceID     string  `json:"InvoiceID"`
	InvoiceNumber string  `json:"InvoiceNumber"`
	Date          Date    `json:"Date"`
	Status        string  `json:"Status"`
	Contact       Contact `json:"Contact"`
	AmountDue     float64 `json:"AmountDue"`
	AmountPaid    float64 `json:"AmountPaid"`
	SubTotal      float64 `json:"SubTotal"`
	TotalTax      float64 `json:"TotalTax"`
	Total         float64 `json:"Total"`
	SentToContact bool    `json:"SentToContact"`
}

type invoicesEnvelope struct {
	Invoices []Invoice `json:"Invoices"`
}

// tokenResponse is the OAuth token endpoint response body.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// msDateRe matches the legacy .NET serialized date the API emits,
// e.g. /Date(1672531200000+0000)/. The embedded millisecond timestamp is
// absolute; the trailing offset only carries display information.
var msDateRe = regexp.MustCompile(`^/Date\((-?\d+)(?:[+-]\d{4})?\)/$`)

// Date wraps time.Time to decode the API's /Date(ms+offset)/ strings.
type Date struct {
	time.Time
}

// UnmarshalJSON parses either the /Date(ms)/ form or a plain RFC 3339 string.
// An unrecognized value leaves the date zero rather than failing the whole
// invoice decode.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date is not a JSON string: %w", err)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	if m := msDateRe.FindStringSubmatch(s); m != nil {
		ms, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid millisecond timestamp in %q: %w", s, err)
		}
		d.Time = time.UnixMilli(ms).UTC()
		return nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t.UTC()
		return nil
	}

	d.Time = time.Time{}
	return nil
}

// MarshalJSON emits RFC 3339 so dates survive the executor boundary.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return json.Marshal(d.Format(time.RFC3339))
}
