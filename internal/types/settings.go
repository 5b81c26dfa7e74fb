package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type SettingKey string

const (
	SettingKeyInvoiceConfig SettingKey = "invoice_config"
	SettingKeyTaxConfig     SettingKey = "tax_config"
	SettingKeyEmailConfig   SettingKey = "email_config"
	SettingKeySMSConfig     SettingKey = "sms_config"
	SettingKeyPortalConfig  SettingKey = "portal_config"
)

func (s SettingKey) String() string {
	return string(s)
}

// Invoice number template placeholders. The template is expanded when an
// invoice number is generated; {SEQ} is replaced by the zero-padded value of
// the tenant's monthly sequence counter.
const (
	PlaceholderPrefix = "{PREFIX}"
	PlaceholderTenant = "{TENANT}"
	PlaceholderYear   = "{YEAR}"
	PlaceholderMonth  = "{MONTH}"
	PlaceholderSeq    = "{SEQ}"
)

// DefaultSettingValue represents a default setting configuration
type DefaultSettingValue struct {
	Key          SettingKey             `json:"key"`
	DefaultValue map[string]interface{} `json:"default_value"`
	Description  string                 `json:"description"`
	Required     bool                   `json:"required"`
}

// GetDefaultSettings returns the default settings configuration for all setting keys
func GetDefaultSettings() map[SettingKey]DefaultSettingValue {
	return map[SettingKey]DefaultSettingValue{
		SettingKeyInvoiceConfig: {
			Key: SettingKeyInvoiceConfig,
			DefaultValue: map[string]interface{}{
				"prefix":           "INV",
				"number_format":    "{PREFIX}-{YEAR}{MONTH}-{SEQ}",
				"sequence_padding": 4,
				"due_days":         DefaultInvoiceDueDays,
				"timezone":         "UTC",
			},
			Description: "Configuration for invoice numbering and due dates",
			Required:    true,
		},
		SettingKeyTaxConfig: {
			Key: SettingKeyTaxConfig,
			DefaultValue: map[string]interface{}{
				"tax_label":        "VAT",
				"tax_inclusive":    false,
				"default_tax_rate": 0,
			},
			Description: "Tenant level tax presentation defaults",
			Required:    true,
		},
		SettingKeyEmailConfig: {
			Key: SettingKeyEmailConfig,
			DefaultValue: map[string]interface{}{
				"enabled":      false,
				"from_address": "",
				"reply_to":     "",
			},
			Description: "Invoice email dispatch configuration",
			Required:    false,
		},
		SettingKeySMSConfig: {
			Key: SettingKeySMSConfig,
			DefaultValue: map[string]interface{}{
				"enabled":   false,
				"sender_id": "",
			},
			Description: "Invoice SMS dispatch configuration",
			Required:    false,
		},
		SettingKeyPortalConfig: {
			Key: SettingKeyPortalConfig,
			DefaultValue: map[string]interface{}{
				"enabled":          true,
				"allow_tickets":    true,
				"show_fup_details": false,
			},
			Description: "Customer self service portal toggles",
			Required:    false,
		},
	}
}

// IsValidSettingKey checks if a setting key is valid
func IsValidSettingKey(key string) bool {
	_, exists := GetDefaultSettings()[SettingKey(key)]
	return exists
}

// ValidateSettingValue validates a setting value based on its key
func ValidateSettingValue(key string, value map[string]interface{}) error {
	if value == nil {
		return errors.New("value cannot be nil")
	}

	switch SettingKey(key) {
	case SettingKeyInvoiceConfig:
		return ValidateInvoiceConfig(value)
	case SettingKeyTaxConfig:
		return ValidateTaxConfig(value)
	case SettingKeyEmailConfig:
		return ValidateEmailConfig(value)
	case SettingKeySMSConfig:
		return ValidateSMSConfig(value)
	case SettingKeyPortalConfig:
		return nil
	default:
		return fmt.Errorf("unknown setting key: %s", key)
	}
}

// ValidateInvoiceConfig validates invoice configuration settings
func ValidateInvoiceConfig(value map[string]interface{}) error {
	prefixRaw, exists := value["prefix"]
	if !exists {
		return errors.New("invoice_config: 'prefix' is required")
	}
	prefix, ok := prefixRaw.(string)
	if !ok {
		return fmt.Errorf("invoice_config: 'prefix' must be a string, got %T", prefixRaw)
	}
	if strings.TrimSpace(prefix) == "" {
		return errors.New("invoice_config: 'prefix' cannot be empty")
	}

	formatRaw, exists := value["number_format"]
	if !exists {
		return errors.New("invoice_config: 'number_format' is required")
	}
	format, ok := formatRaw.(string)
	if !ok {
		return fmt.Errorf("invoice_config: 'number_format' must be a string, got %T", formatRaw)
	}
	if !strings.Contains(format, PlaceholderSeq) {
		return fmt.Errorf("invoice_config: 'number_format' must contain %s", PlaceholderSeq)
	}

	if padding, err := intFromConfig(value, "sequence_padding"); err != nil {
		return fmt.Errorf("invoice_config: %w", err)
	} else if padding < 3 || padding > 8 {
		return errors.New("invoice_config: 'sequence_padding' must be between 3 and 8")
	}

	if dueDays, err := intFromConfig(value, "due_days"); err != nil {
		return fmt.Errorf("invoice_config: %w", err)
	} else if dueDays < 1 || dueDays > 90 {
		return errors.New("invoice_config: 'due_days' must be between 1 and 90")
	}

	return nil
}

// ValidateTaxConfig validates tax configuration settings
func ValidateTaxConfig(value map[string]interface{}) error {
	if labelRaw, exists := value["tax_label"]; exists {
		if _, ok := labelRaw.(string); !ok {
			return fmt.Errorf("tax_config: 'tax_label' must be a string, got %T", labelRaw)
		}
	}
	if rateRaw, exists := value["default_tax_rate"]; exists {
		rate, ok := toFloat(rateRaw)
		if !ok {
			return fmt.Errorf("tax_config: 'default_tax_rate' must be a number, got %T", rateRaw)
		}
		if rate < 0 || rate > 100 {
			return errors.New("tax_config: 'default_tax_rate' must be between 0 and 100")
		}
	}
	return nil
}

// ValidateEmailConfig validates email dispatch configuration
func ValidateEmailConfig(value map[string]interface{}) error {
	enabledRaw, exists := value["enabled"]
	if !exists {
		return errors.New("email_config: 'enabled' is required")
	}
	enabled, ok := enabledRaw.(bool)
	if !ok {
		return fmt.Errorf("email_config: 'enabled' must be a boolean, got %T", enabledRaw)
	}
	if enabled {
		from, _ := value["from_address"].(string)
		if strings.TrimSpace(from) == "" {
			return errors.New("email_config: 'from_address' is required when enabled")
		}
	}
	return nil
}

// ValidateSMSConfig validates SMS dispatch configuration
func ValidateSMSConfig(value map[string]interface{}) error {
	enabledRaw, exists := value["enabled"]
	if !exists {
		return errors.New("sms_config: 'enabled' is required")
	}
	enabled, ok := enabledRaw.(bool)
	if !ok {
		return fmt.Errorf("sms_config: 'enabled' must be a boolean, got %T", enabledRaw)
	}
	if enabled {
		sender, _ := value["sender_id"].(string)
		if strings.TrimSpace(sender) == "" {
			return errors.New("sms_config: 'sender_id' is required when enabled")
		}
	}
	return nil
}

// InvoiceConfig is the typed view of the invoice_config setting
type InvoiceConfig struct {
	Prefix          string `json:"prefix"`
	NumberFormat    string `json:"number_format"`
	SequencePadding int    `json:"sequence_padding"`
	DueDays         int    `json:"due_days"`
	Timezone        string `json:"timezone"`
}

// DefaultInvoiceConfig returns the built-in invoice numbering configuration
func DefaultInvoiceConfig() InvoiceConfig {
	return InvoiceConfig{
		Prefix:          "INV",
		NumberFormat:    "{PREFIX}-{YEAR}{MONTH}-{SEQ}",
		SequencePadding: 4,
		DueDays:         DefaultInvoiceDueDays,
		Timezone:        "UTC",
	}
}

// InvoiceConfigFromDocument parses the stored invoice_config payload, falling
// back to defaults for missing fields.
func InvoiceConfigFromDocument(value map[string]interface{}) InvoiceConfig {
	cfg := DefaultInvoiceConfig()
	if value == nil {
		return cfg
	}
	if prefix, ok := value["prefix"].(string); ok && prefix != "" {
		cfg.Prefix = prefix
	}
	if format, ok := value["number_format"].(string); ok && format != "" {
		cfg.NumberFormat = format
	}
	if padding, err := intFromConfig(value, "sequence_padding"); err == nil {
		cfg.SequencePadding = padding
	}
	if dueDays, err := intFromConfig(value, "due_days"); err == nil {
		cfg.DueDays = dueDays
	}
	if tz, ok := value["timezone"].(string); ok && tz != "" {
		cfg.Timezone = tz
	}
	return cfg
}

// FormatInvoiceNumber expands the number format template for the given tenant
// slug, billing month and sequence value.
func (c InvoiceConfig) FormatInvoiceNumber(tenantSlug string, period time.Time, seq int64) string {
	padded := fmt.Sprintf("%0*d", c.SequencePadding, seq)
	replacer := strings.NewReplacer(
		PlaceholderPrefix, c.Prefix,
		PlaceholderTenant, strings.ToUpper(tenantSlug),
		PlaceholderYear, period.Format("2006"),
		PlaceholderMonth, period.Format("01"),
		PlaceholderSeq, padded,
	)
	return replacer.Replace(c.NumberFormat)
}

func intFromConfig(value map[string]interface{}, key string) (int, error) {
	raw, exists := value[key]
	if !exists {
		return 0, fmt.Errorf("'%s' is required", key)
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("'%s' must be a whole number", key)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("'%s' must be a number, got %T", key, raw)
	}
}

func toFloat(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
