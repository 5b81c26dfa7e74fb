package service

import (
	"context"

	"github.com/netbill/netbill/internal/api/dto"
	"github.com/netbill/netbill/internal/domain/customer"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/types"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, req *dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error)
	UpdateCustomer(ctx context.Context, id string, req *dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	DeleteCustomer(ctx context.Context, id string) error
	ListCustomers(ctx context.Context, filter *types.CustomerFilter) (*dto.ListCustomersResponse, error)
}

type customerService struct {
	ServiceParams
}

func NewCustomerService(params ServiceParams) CustomerService {
	return &customerService{ServiceParams: params}
}

func (s *customerService) CreateCustomer(ctx context.Context, req *dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := &customer.Customer{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		Tags:          req.Tags,
		PortalEnabled: req.PortalEnabled,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}

	if err := s.CustomerRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	return dto.NewCustomerResponse(c), nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewCustomerResponse(c), nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id string, req *dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Tags != nil {
		c.Tags = *req.Tags
	}
	if req.PortalEnabled != nil {
		c.PortalEnabled = *req.PortalEnabled
	}

	if err := s.CustomerRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	return dto.NewCustomerResponse(c), nil
}

// DeleteCustomer soft deletes the customer. Deletion is blocked while the
// customer still has active subscriptions.
func (s *customerService) DeleteCustomer(ctx context.Context, id string) error {
	if _, err := s.CustomerRepo.Get(ctx, id); err != nil {
		return err
	}

	active, err := s.SubscriptionRepo.CountActiveByCustomerID(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return ierr.NewError("customer has active subscriptions").
			WithHintf("Customer has %d active subscriptions; terminate them first", active).
			WithReportableDetails(map[string]any{"customer_id": id, "active_subscriptions": active}).
			Mark(ierr.ErrInvalidOperation)
	}

	return s.CustomerRepo.Delete(ctx, id)
}

func (s *customerService) ListCustomers(ctx context.Context, filter *types.CustomerFilter) (*dto.ListCustomersResponse, error) {
	if filter == nil {
		filter = types.NewCustomerFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid filter").
			Mark(ierr.ErrValidation)
	}

	customers, err := s.CustomerRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.CustomerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewListCustomersResponse(customers, total), nil
}
