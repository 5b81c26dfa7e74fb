package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatInvoiceNumber(t *testing.T) {
	period := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("default format", func(t *testing.T) {
		cfg := DefaultInvoiceConfig()
		assert.Equal(t, "INV-202501-0001", cfg.FormatInvoiceNumber("acme", period, 1))
		assert.Equal(t, "INV-202501-0042", cfg.FormatInvoiceNumber("acme", period, 42))
	})

	t.Run("tenant placeholder uppercased", func(t *testing.T) {
		cfg := DefaultInvoiceConfig()
		cfg.NumberFormat = "{PREFIX}-{TENANT}-{YEAR}{MONTH}-{SEQ}"
		assert.Equal(t, "INV-ACME-202501-0007", cfg.FormatInvoiceNumber("acme", period, 7))
	})

	t.Run("padding overflows gracefully", func(t *testing.T) {
		cfg := DefaultInvoiceConfig()
		assert.Equal(t, "INV-202501-12345", cfg.FormatInvoiceNumber("acme", period, 12345))
	})

	t.Run("custom prefix and padding", func(t *testing.T) {
		cfg := InvoiceConfig{
			Prefix:          "BILL",
			NumberFormat:    "{PREFIX}/{YEAR}/{SEQ}",
			SequencePadding: 6,
		}
		assert.Equal(t, "BILL/2025/000009", cfg.FormatInvoiceNumber("acme", period, 9))
	})
}

func TestValidateInvoiceConfig(t *testing.T) {
	valid := map[string]interface{}{
		"prefix":           "INV",
		"number_format":    "{PREFIX}-{SEQ}",
		"sequence_padding": 4,
		"due_days":         15,
	}
	assert.NoError(t, ValidateInvoiceConfig(valid))

	cases := []struct {
		name  string
		mutate func(m map[string]interface{})
	}{
		{"missing prefix", func(m map[string]interface{}) { delete(m, "prefix") }},
		{"empty prefix", func(m map[string]interface{}) { m["prefix"] = "  " }},
		{"format without seq", func(m map[string]interface{}) { m["number_format"] = "INV-{YEAR}" }},
		{"padding too small", func(m map[string]interface{}) { m["sequence_padding"] = 2 }},
		{"padding too large", func(m map[string]interface{}) { m["sequence_padding"] = 9 }},
		{"due days zero", func(m map[string]interface{}) { m["due_days"] = 0 }},
		{"due days too large", func(m map[string]interface{}) { m["due_days"] = 120 }},
		{"prefix wrong type", func(m map[string]interface{}) { m["prefix"] = 7 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			value := map[string]interface{}{}
			for k, v := range valid {
				value[k] = v
			}
			tc.mutate(value)
			assert.Error(t, ValidateInvoiceConfig(value))
		})
	}
}

func TestInvoiceConfigFromDocument(t *testing.T) {
	t.Run("nil falls back to defaults", func(t *testing.T) {
		cfg := InvoiceConfigFromDocument(nil)
		assert.Equal(t, DefaultInvoiceConfig(), cfg)
	})

	t.Run("json numbers are accepted", func(t *testing.T) {
		cfg := InvoiceConfigFromDocument(map[string]interface{}{
			"prefix":           "ACME",
			"sequence_padding": float64(6),
			"due_days":         float64(30),
		})
		assert.Equal(t, "ACME", cfg.Prefix)
		assert.Equal(t, 6, cfg.SequencePadding)
		assert.Equal(t, 30, cfg.DueDays)
		assert.Equal(t, DefaultInvoiceConfig().NumberFormat, cfg.NumberFormat)
	})
}

func TestValidateSettingValue(t *testing.T) {
	assert.Error(t, ValidateSettingValue(SettingKeyInvoiceConfig.String(), nil))
	assert.Error(t, ValidateSettingValue("unknown", map[string]interface{}{}))
	assert.NoError(t, ValidateSettingValue(SettingKeyPortalConfig.String(), map[string]interface{}{
		"enabled": true,
	}))

	assert.Error(t, ValidateSettingValue(SettingKeyEmailConfig.String(), map[string]interface{}{
		"enabled": true, "from_address": "",
	}))
	assert.NoError(t, ValidateSettingValue(SettingKeyEmailConfig.String(), map[string]interface{}{
		"enabled": false,
	}))
}

func TestDefaultSettingsAreValid(t *testing.T) {
	for key, def := range GetDefaultSettings() {
		assert.NoError(t, ValidateSettingValue(key.String(), def.DefaultValue),
			"default for %s must pass its own schema", key)
	}
}
