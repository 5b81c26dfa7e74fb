package customer

import (
	"github.com/netbill/netbill/internal/types"
)

// Customer represents a subscriber of the ISP
type Customer struct {
	ID            string         `db:"id" json:"id"`
	Name          string         `db:"name" json:"name"`
	Email         string         `db:"email" json:"email"`
	Phone         string         `db:"phone" json:"phone"`
	Address       types.Document `db:"address" json:"address"`
	Tags          types.Tags     `db:"tags" json:"tags"`
	PortalEnabled bool           `db:"portal_enabled" json:"portal_enabled"`
	types.BaseModel
}

// HasContact reports whether the customer has a stored contact for the given
// channel ("email" or "sms")
func (c *Customer) HasContact(channel string) bool {
	switch channel {
	case "email":
		return c.Email != ""
	case "sms":
		return c.Phone != ""
	default:
		return false
	}
}
