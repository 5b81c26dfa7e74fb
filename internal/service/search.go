package service

import (
	"context"
	"strings"

	"github.com/netbill/netbill/internal/api/dto"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/types"
	"github.com/samber/lo"
)

const searchResultLimit = 10

// SearchService looks a query string up across customers, invoices and
// tickets and returns grouped hits
type SearchService interface {
	Search(ctx context.Context, query string) (*dto.SearchResponse, error)
}

type searchService struct {
	ServiceParams
}

func NewSearchService(params ServiceParams) SearchService {
	return &searchService{ServiceParams: params}
}

func (s *searchService) Search(ctx context.Context, query string) (*dto.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, ierr.NewError("query too short").
			WithHint("Search query must be at least 2 characters").
			Mark(ierr.ErrValidation)
	}

	resp := &dto.SearchResponse{
		Query:     query,
		Customers: []*dto.CustomerResponse{},
		Invoices:  []*dto.InvoiceResponse{},
		Tickets:   []*dto.TicketResponse{},
	}

	custFilter := types.NewCustomerFilter()
	custFilter.QueryFilter.Limit = lo.ToPtr(searchResultLimit)
	custFilter.Search = query
	customers, err := s.CustomerRepo.List(ctx, custFilter)
	if err != nil {
		return nil, err
	}
	resp.Customers = dto.NewListCustomersResponse(customers, len(customers)).Items

	invFilter := types.NewInvoiceFilter()
	invFilter.QueryFilter.Limit = lo.ToPtr(searchResultLimit)
	invFilter.InvoiceNumber = query
	invoices, err := s.InvoiceRepo.List(ctx, invFilter)
	if err != nil {
		return nil, err
	}
	resp.Invoices = dto.NewListInvoicesResponse(invoices, len(invoices)).Items

	ticketFilter := types.NewTicketFilter()
	ticketFilter.QueryFilter.Limit = lo.ToPtr(searchResultLimit)
	ticketFilter.Search = query
	tickets, err := s.TicketRepo.List(ctx, ticketFilter)
	if err != nil {
		return nil, err
	}
	resp.Tickets = dto.NewListTicketsResponse(tickets, len(tickets)).Items

	return resp, nil
}
