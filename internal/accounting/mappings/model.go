// Package mappings binds document kinds to the account roles each
// posting needs. The engine never embeds concrete account codes; the
// mapping is injected at construction time.
package mappings

import "fmt"

// DocumentKind discriminates the voucher types the engine can post.
type DocumentKind string

const (
	KindPurchase DocumentKind = "PURCHASE"
	KindSale     DocumentKind = "SALE"
	KindPayment  DocumentKind = "PAYMENT"
)

// Validate rejects kinds outside the closed set.
func (k DocumentKind) Validate() error {
	switch k {
	case KindPurchase, KindSale, KindPayment:
		return nil
	default:
		return fmt.Errorf("mappings: unknown document kind %q", string(k))
	}
}

// Role names the accounting function an account plays in a posting.
type Role string

const (
	RoleInventory   Role = "INVENTORY"
	RoleInputVAT    Role = "INPUT_VAT"
	RolePayable     Role = "PAYABLE"
	RoleReceivable  Role = "RECEIVABLE"
	RoleRevenue     Role = "REVENUE"
	RoleOutputVAT   Role = "OUTPUT_VAT"
	RoleCostOfGoods Role = "COST_OF_GOODS"
)

// Mapping resolves roles to account codes for one document kind.
type Mapping map[Role]string
