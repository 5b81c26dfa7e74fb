package service

import (
	"testing"

	"github.com/netbill/netbill/internal/api/dto"
	"github.com/netbill/netbill/internal/domain/customer"
	"github.com/netbill/netbill/internal/domain/user"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/testutil"
	"github.com/netbill/netbill/internal/types"
	"github.com/stretchr/testify/suite"
)

type TicketServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  TicketService
	testData struct {
		customer *customer.Customer
		agent    *user.User
	}
}

func TestTicketService(t *testing.T) {
	suite.Run(t, new(TicketServiceSuite))
}

func (s *TicketServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewTicketService(newServiceParams(&s.BaseServiceTestSuite))
	s.setupTestData()
}

func (s *TicketServiceSuite) setupTestData() {
	ctx := s.GetContext()
	stores := s.GetStores()

	s.testData.customer = &customer.Customer{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:      "Dana Reyes",
		Email:     "dana@example.com",
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.NoError(stores.CustomerRepo.Create(ctx, s.testData.customer))

	s.testData.agent = &user.User{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Email:     "agent@acme.example",
		Name:      "Agent Smith",
		Role:      types.UserRoleStaff,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.NoError(stores.UserRepo.Create(ctx, s.testData.agent))
}

func (s *TicketServiceSuite) createTicket() *dto.TicketResponse {
	resp, err := s.service.CreateTicket(s.GetContext(), &dto.CreateTicketRequest{
		CustomerID: s.testData.customer.ID,
		Subject:    "No connectivity since this morning",
	})
	s.Require().NoError(err)
	return resp
}

func (s *TicketServiceSuite) TestCreateTicketDefaults() {
	resp := s.createTicket()
	s.NotEmpty(resp.TicketNumber)
	s.Equal(types.TicketStatusOpen.String(), resp.TicketStatus)
	s.Equal(types.TicketPriorityMedium.String(), resp.Priority)
}

func (s *TicketServiceSuite) TestCreateTicketUnknownCustomer() {
	_, err := s.service.CreateTicket(s.GetContext(), &dto.CreateTicketRequest{
		CustomerID: "cust_missing",
		Subject:    "Hello",
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *TicketServiceSuite) TestReplyToTicket() {
	created := s.createTicket()

	resp, err := s.service.ReplyToTicket(s.GetContext(), created.ID, &dto.ReplyTicketRequest{
		Body: "We are looking into it.",
	})
	s.NoError(err)
	s.Len(resp.Replies, 1)
	s.Equal(string(types.TicketAuthorTypeStaff), resp.Replies[0].AuthorType)

	got, err := s.service.GetTicket(s.GetContext(), created.ID)
	s.NoError(err)
	s.Len(got.Replies, 1, "replies are returned with the thread")
}

func (s *TicketServiceSuite) TestReplyAsPortalCustomer() {
	created := s.createTicket()

	portalCtx := types.SetCustomerID(s.GetContext(), s.testData.customer.ID)
	resp, err := s.service.ReplyToTicket(portalCtx, created.ID, &dto.ReplyTicketRequest{
		Body: "Still down over here.",
	})
	s.NoError(err)
	s.Equal(string(types.TicketAuthorTypeCustomer), resp.Replies[0].AuthorType)
	s.Equal(s.testData.customer.ID, resp.Replies[0].AuthorID)
}

func (s *TicketServiceSuite) TestReplyToClosedTicketRejected() {
	created := s.createTicket()

	_, err := s.service.UpdateTicketStatus(s.GetContext(), created.ID,
		&dto.UpdateTicketStatusRequest{TicketStatus: types.TicketStatusClosed})
	s.NoError(err)

	_, err = s.service.ReplyToTicket(s.GetContext(), created.ID, &dto.ReplyTicketRequest{
		Body: "One more thing",
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *TicketServiceSuite) TestUpdateTicketStatusTransitions() {
	created := s.createTicket()

	resp, err := s.service.UpdateTicketStatus(s.GetContext(), created.ID,
		&dto.UpdateTicketStatusRequest{TicketStatus: types.TicketStatusResolved})
	s.NoError(err)
	s.Equal(types.TicketStatusResolved.String(), resp.TicketStatus)

	// resolved tickets can be reopened
	resp, err = s.service.UpdateTicketStatus(s.GetContext(), created.ID,
		&dto.UpdateTicketStatusRequest{TicketStatus: types.TicketStatusOpen})
	s.NoError(err)
	s.Equal(types.TicketStatusOpen.String(), resp.TicketStatus)

	// closed is terminal
	_, err = s.service.UpdateTicketStatus(s.GetContext(), created.ID,
		&dto.UpdateTicketStatusRequest{TicketStatus: types.TicketStatusClosed})
	s.NoError(err)
	_, err = s.service.UpdateTicketStatus(s.GetContext(), created.ID,
		&dto.UpdateTicketStatusRequest{TicketStatus: types.TicketStatusOpen})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *TicketServiceSuite) TestAssignTicketMovesToInProgress() {
	created := s.createTicket()

	resp, err := s.service.AssignTicket(s.GetContext(), created.ID, &dto.AssignTicketRequest{
		AssignedTo: s.testData.agent.ID,
	})
	s.NoError(err)
	s.Require().NotNil(resp.AssignedTo)
	s.Equal(s.testData.agent.ID, *resp.AssignedTo)
	s.Equal(types.TicketStatusInProgress.String(), resp.TicketStatus)
}

func (s *TicketServiceSuite) TestAssignTicketUnknownUser() {
	created := s.createTicket()

	_, err := s.service.AssignTicket(s.GetContext(), created.ID, &dto.AssignTicketRequest{
		AssignedTo: "user_missing",
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *TicketServiceSuite) TestListTicketsByStatusAndAssignee() {
	first := s.createTicket()
	s.createTicket()

	_, err := s.service.AssignTicket(s.GetContext(), first.ID, &dto.AssignTicketRequest{
		AssignedTo: s.testData.agent.ID,
	})
	s.NoError(err)

	filter := types.NewTicketFilter()
	filter.AssignedTo = s.testData.agent.ID
	resp, err := s.service.ListTickets(s.GetContext(), filter)
	s.NoError(err)
	s.Equal(1, resp.Total)
	s.Equal(first.ID, resp.Items[0].ID)

	filter = types.NewTicketFilter()
	filter.TicketStatus = []types.TicketStatus{types.TicketStatusOpen}
	resp, err = s.service.ListTickets(s.GetContext(), filter)
	s.NoError(err)
	s.Equal(1, resp.Total)
}
