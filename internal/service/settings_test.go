package service

import (
	"testing"

	"github.com/netbill/netbill/internal/api/dto"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/testutil"
	"github.com/netbill/netbill/internal/types"
	"github.com/stretchr/testify/suite"
)

type SettingsServiceSuite struct {
	testutil.BaseServiceTestSuite
	service SettingsService
}

func TestSettingsService(t *testing.T) {
	suite.Run(t, new(SettingsServiceSuite))
}

func (s *SettingsServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewSettingsService(newServiceParams(&s.BaseServiceTestSuite))
}

func (s *SettingsServiceSuite) TestGetSettingFallsBackToDefault() {
	resp, err := s.service.GetSetting(s.GetContext(), types.SettingKeyInvoiceConfig.String())
	s.NoError(err)
	s.Equal("INV", resp.Value["prefix"])
}

func (s *SettingsServiceSuite) TestGetSettingUnknownKey() {
	_, err := s.service.GetSetting(s.GetContext(), "not_a_key")
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *SettingsServiceSuite) TestUpdateSettingPersists() {
	value := types.Document{
		"prefix":           "ACME",
		"number_format":    "{PREFIX}-{YEAR}{MONTH}-{SEQ}",
		"sequence_padding": 5,
		"due_days":         30,
		"timezone":         "UTC",
	}
	resp, err := s.service.UpdateSetting(s.GetContext(), types.SettingKeyInvoiceConfig.String(),
		&dto.UpdateSettingRequest{Value: value})
	s.NoError(err)
	s.Equal("ACME", resp.Value["prefix"])

	got, err := s.service.GetSetting(s.GetContext(), types.SettingKeyInvoiceConfig.String())
	s.NoError(err)
	s.Equal("ACME", got.Value["prefix"])
}

func (s *SettingsServiceSuite) TestUpdateSettingRejectsInvalidSchema() {
	cases := []types.Document{
		// missing the sequence placeholder
		{"prefix": "INV", "number_format": "fixed", "sequence_padding": 4, "due_days": 15},
		// padding out of range
		{"prefix": "INV", "number_format": "{SEQ}", "sequence_padding": 99, "due_days": 15},
		// due days out of range
		{"prefix": "INV", "number_format": "{SEQ}", "sequence_padding": 4, "due_days": 0},
		// empty prefix
		{"prefix": " ", "number_format": "{SEQ}", "sequence_padding": 4, "due_days": 15},
	}

	for _, value := range cases {
		_, err := s.service.UpdateSetting(s.GetContext(), types.SettingKeyInvoiceConfig.String(),
			&dto.UpdateSettingRequest{Value: value})
		s.Error(err)
		s.True(ierr.IsValidation(err))
	}
}

func (s *SettingsServiceSuite) TestUpdateEmailConfigRequiresFromAddress() {
	_, err := s.service.UpdateSetting(s.GetContext(), types.SettingKeyEmailConfig.String(),
		&dto.UpdateSettingRequest{Value: types.Document{"enabled": true, "from_address": ""}})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	_, err = s.service.UpdateSetting(s.GetContext(), types.SettingKeyEmailConfig.String(),
		&dto.UpdateSettingRequest{Value: types.Document{"enabled": true, "from_address": "billing@acme.example"}})
	s.NoError(err)
}

func (s *SettingsServiceSuite) TestGetInvoiceConfig() {
	cfg, err := s.service.GetInvoiceConfig(s.GetContext())
	s.NoError(err)
	s.Equal("INV", cfg.Prefix)
	s.Equal(4, cfg.SequencePadding)
	s.Equal(types.DefaultInvoiceDueDays, cfg.DueDays)

	_, err = s.service.UpdateSetting(s.GetContext(), types.SettingKeyInvoiceConfig.String(),
		&dto.UpdateSettingRequest{Value: types.Document{
			"prefix":           "ACME",
			"number_format":    "{PREFIX}-{TENANT}-{YEAR}{MONTH}-{SEQ}",
			"sequence_padding": 6,
			"due_days":         30,
		}})
	s.NoError(err)

	cfg, err = s.service.GetInvoiceConfig(s.GetContext())
	s.NoError(err)
	s.Equal("ACME", cfg.Prefix)
	s.Equal(6, cfg.SequencePadding)
	s.Equal(30, cfg.DueDays)
}

func (s *SettingsServiceSuite) TestSeedDefaultsIsIdempotent() {
	s.NoError(s.service.SeedDefaults(s.GetContext()))
	s.NoError(s.service.SeedDefaults(s.GetContext()))

	stored, err := s.service.ListSettings(s.GetContext())
	s.NoError(err)
	s.Len(stored, len(types.GetDefaultSettings()))
}
