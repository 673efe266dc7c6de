package enums

// TransactionType tags a balance-affecting event.
type TransactionType string

const (
	TransactionTypePurchase TransactionType = "purchase"
	TransactionTypeTopUp    TransactionType = "topup"
)

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypePurchase, TransactionTypeTopUp:
		return true
	}
	return false
}

func (t TransactionType) String() string {
	return string(t)
}
