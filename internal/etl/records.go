// Package etl reconciles fetched accounting records against the relational
// store through the remote query executor: classify, project, then
// check-then-write keyed on the record's natural key.
package etl

import (
	"time"

	"xero-etl/internal/client/xero"
)

// Record is a fetched record projected into exactly one of the two target
// shapes. The type tag is inspected once, at construction; everything
// downstream goes through this interface without re-checking it.
type Record interface {
	// NaturalKey is the externally issued identifier used for existence checks.
	NaturalKey() string
	// Table names the target table, for logging.
	Table() string

	existsQuery() (string, []interface{})
	insertQuery() (string, []interface{})
	updateQuery() (string, []interface{})
}

// NewRecord projects an invoice fetched from the API into its persistence
// shape. ACCREC is a receivable invoice; every other type (ACCPAY bills,
// purchase orders) lands in the bills table, matching upstream behavior.
func NewRecord(tenantID string, invoice *xero.Invoice) Record {
	if invoice.Type == xero.TypeAccountsReceivable {
		return &InvoiceRecord{
			InvoiceID:     invoice.InvoiceID,
			InvoiceNumber: invoice.InvoiceNumber,
			Date:          invoice.Date.Time,
			AmountDue:     invoice.AmountDue,
			AmountPaid:    invoice.AmountPaid,
			SendToContact: invoice.Contact.EmailAddress,
			Name:          invoice.Contact.Name,
			IsSupplier:    invoice.Contact.IsSupplier,
			IsCustomer:    invoice.Contact.IsCustomer,
			Subtotal:      invoice.SubTotal,
			TotalTax:      invoice.TotalTax,
			Total:         invoice.Total,
			Status:        invoice.Status,
			TenantID:      tenantID,
		}
	}
	return &BillRecord{
		PoID:          invoice.InvoiceID,
		PoNumber:      invoice.InvoiceNumber,
		Date:          invoice.Date.Time,
		SentToContact: invoice.SentToContact,
		Name:          invoice.Contact.Name,
		ContactID:     invoice.Contact.ContactID,
		ContactStatus: invoice.Contact.ContactStatus,
		ContactMail:   invoice.Contact.EmailAddress,
		Subtotal:      invoice.SubTotal,
		TotalTax:      invoice.TotalTax,
		Total:         invoice.Total,
		Status:        invoice.Status,
		TenantID:      tenantID,
	}
}

// InvoiceRecord is the receivable projection, keyed by invoice_id.
type InvoiceRecord struct {
	InvoiceID     string
	InvoiceNumber string
	Date          time.Time
	AmountDue     float64
	AmountPaid    float64
	SendToContact string
	Name          string
	IsSupplier    bool
	IsCustomer    bool
	Subtotal      float64
	TotalTax      float64
	Total         float64
	Status        string
	TenantID      string
}

func (r *InvoiceRecord) NaturalKey() string { return r.InvoiceID }
func (r *InvoiceRecord) Table() string      { return "etl_xero_invoices" }

func (r *InvoiceRecord) existsQuery() (string, []interface{}) {
	return `SELECT invoice_number FROM etl_xero_invoices WHERE invoice_id = $1 LIMIT 1;`,
		[]interface{}{r.InvoiceID}
}

func (r *InvoiceRecord) insertQuery() (string, []interface{}) {
	query := `INSERT INTO etl_xero_invoices
		(invoice_id, invoice_number, "date", amount_due, amount_paid, send_to_contact, "name",
		 is_supplier, is_customer, subtotal, total_tax, total, xero_status, tenant_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`
	return query, []interface{}{
		r.InvoiceID, r.InvoiceNumber, r.Date, r.AmountDue, r.AmountPaid,
		r.SendToContact, r.Name, r.IsSupplier, r.IsCustomer,
		r.Subtotal, r.TotalTax, r.Total, r.Status, r.TenantID,
	}
}

func (r *InvoiceRecord) updateQuery() (string, []interface{}) {
	query := `UPDATE etl_xero_invoices
		SET "date" = $1, amount_due = $2, amount_paid = $3, send_to_contact = $4,
		    "name" = $5, is_supplier = $6, is_customer = $7, subtotal = $8,
		    total_tax = $9, total = $10, xero_status = $11
		WHERE invoice_id = $12;`
	return query, []interface{}{
		r.Date, r.AmountDue, r.AmountPaid, r.SendToContact, r.Name,
		r.IsSupplier, r.IsCustomer, r.Subtotal, r.TotalTax, r.Total,
		r.Status, r.InvoiceID,
	}
}

// BillRecord is the payable projection, keyed by po_id.
type BillRecord struct {
	PoID          string
	PoNumber      string
	Date          time.Time
	SentToContact bool
	Name          string
	ContactID     string
	ContactStatus string
	ContactMail   string
	Subtotal      float64
	TotalTax      float64
	Total         float64
	Status        string
	TenantID      string
}

func (r *BillRecord) NaturalKey() string { return r.PoID }
func (r *BillRecord) Table() string      { return "etl_xero_bills" }

func (r *BillRecord) existsQuery() (string, []interface{}) {
	return `SELECT po_number FROM etl_xero_bills WHERE po_id = $1 LIMIT 1;`,
		[]interface{}{r.PoID}
}

func (r *BillRecord) insertQuery() (string, []interface{}) {
	query := `INSERT INTO etl_xero_bills
		(po_id, po_number, "date", send_to_contact, "name", contact_id, contact_status,
		 subtotal, total_tax, total, xero_status, tenant_id, contact_mail_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`
	return query, []interface{}{
		r.PoID, r.PoNumber, r.Date, r.SentToContact, r.Name,
		r.ContactID, r.ContactStatus, r.Subtotal, r.TotalTax, r.Total,
		r.Status, r.TenantID, r.ContactMail,
	}
}

func (r *BillRecord) updateQuery() (string, []interface{}) {
	query := `UPDATE etl_xero_bills
		SET "date" = $1, send_to_contact = $2, "name" = $3, contact_id = $4,
		    contact_status = $5, subtotal = $6, total_tax = $7, total = $8,
		    xero_status = $9, contact_mail_id = $10
		WHERE po_id = $11;`
	return query, []interface{}{
		r.Date, r.SentToContact, r.Name, r.ContactID, r.ContactStatus,
		r.Subtotal, r.TotalTax, r.Total, r.Status, r.ContactMail, r.PoID,
	}
}
