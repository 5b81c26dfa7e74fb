package settings

import (
	"github.com/netbill/netbill/internal/types"
)

// Setting is one per-tenant configuration document, keyed by a known
// SettingKey. Values are schema validated on read and write rather than
// parsed lazily on access.
type Setting struct {
	ID    string         `db:"id" json:"id"`
	Key   string         `db:"key" json:"key"`
	Value types.Document `db:"value" json:"value"`
	types.BaseModel
}
