package dto

// SearchResponse groups cross-entity matches for one query string
type SearchResponse struct {
	Query     string              `json:"query"`
	Customers []*CustomerResponse `json:"customers"`
	Invoices  []*InvoiceResponse  `json:"invoices"`
	Tickets   []*TicketResponse   `json:"tickets"`
}
