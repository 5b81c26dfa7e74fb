package service

import (
	"testing"

	"github.com/netbill/netbill/internal/api/dto"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/testutil"
	"github.com/netbill/netbill/internal/types"
	"github.com/stretchr/testify/suite"
)

type TenantServiceSuite struct {
	testutil.BaseServiceTestSuite
	service TenantService
}

func TestTenantService(t *testing.T) {
	suite.Run(t, new(TenantServiceSuite))
}

func (s *TenantServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewTenantService(newServiceParams(&s.BaseServiceTestSuite))
}

func (s *TenantServiceSuite) register(slug string) *dto.RegisterTenantResponse {
	resp, err := s.service.Register(s.GetContext(), &dto.RegisterTenantRequest{
		Name:       "Acme Broadband",
		Slug:       slug,
		OwnerEmail: "owner@acme.example",
		OwnerName:  "Pat Owner",
	})
	s.Require().NoError(err)
	return resp
}

func (s *TenantServiceSuite) TestRegisterCreatesOwnerAndSettings() {
	resp := s.register("acme")

	s.Equal("acme", resp.Tenant.Slug)
	s.Equal(string(types.UserRoleOwner), resp.Owner.Role)
	s.Equal("owner@acme.example", resp.Owner.Email)

	// registration seeds the default settings under the new tenant
	tenantCtx := types.SetTenantID(s.GetContext(), resp.Tenant.ID)
	stored, err := s.GetStores().SettingsRepo.List(tenantCtx)
	s.NoError(err)
	s.Len(stored, len(types.GetDefaultSettings()))

	owner, err := s.GetStores().UserRepo.GetByEmail(tenantCtx, "owner@acme.example")
	s.NoError(err)
	s.Equal(resp.Owner.ID, owner.ID)
	s.Equal(owner.ID, owner.CreatedBy, "the owner is self-created")
}

func (s *TenantServiceSuite) TestRegisterDuplicateSlug() {
	s.register("acme")

	_, err := s.service.Register(s.GetContext(), &dto.RegisterTenantRequest{
		Name:       "Other ISP",
		Slug:       "acme",
		OwnerEmail: "other@other.example",
		OwnerName:  "Other Owner",
	})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *TenantServiceSuite) TestRegisterNormalizesSlug() {
	resp, err := s.service.Register(s.GetContext(), &dto.RegisterTenantRequest{
		Name:       "Acme Broadband",
		Slug:       "  acme  ",
		OwnerEmail: "Owner@Acme.example",
		OwnerName:  "Pat Owner",
	})
	s.NoError(err)
	s.Equal("acme", resp.Tenant.Slug)
	s.Equal("owner@acme.example", resp.Owner.Email)
}

func (s *TenantServiceSuite) TestGetBySlug() {
	created := s.register("acme")

	resp, err := s.service.GetBySlug(s.GetContext(), "acme")
	s.NoError(err)
	s.Equal(created.Tenant.ID, resp.ID)

	_, err = s.service.GetBySlug(s.GetContext(), "nope")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *TenantServiceSuite) TestUpdateBranding() {
	created := s.register("acme")
	ctx := types.SetTenantID(s.GetContext(), created.Tenant.ID)

	resp, err := s.service.UpdateBranding(ctx, &dto.UpdateBrandingRequest{
		Branding: types.Document{"logo_url": "https://cdn.acme.example/logo.png"},
	})
	s.NoError(err)
	s.Equal("https://cdn.acme.example/logo.png", resp.Branding["logo_url"])
}
