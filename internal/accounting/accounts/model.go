package accounts

// Type classifies an account in the chart of accounts.
type Type string

const (
	TypeAsset     Type = "ASSET"
	TypeLiability Type = "LIABILITY"
	TypeEquity    Type = "EQUITY"
	TypeRevenue   Type = "REVENUE"
	TypeExpense   Type = "EXPENSE"
)

// Side identifies the debit or credit column of a posting.
type Side string

const (
	SideDebit  Side = "DEBIT"
	SideCredit Side = "CREDIT"
)

// Account is immutable reference data owned by the external chart of
// accounts. NormalSide is the side on which the balance is
// conventionally positive.
type Account struct {
	Code       string
	Name       string
	Type       Type
	NormalSide Side
}

// DebitNormal reports whether a positive balance sits in the debit column.
func (a Account) DebitNormal() bool {
	return a.NormalSide == SideDebit
}
