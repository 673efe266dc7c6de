package ledger

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/bookverse/bookverse-backend/pkg/db/models"
	"github.com/bookverse/bookverse-backend/pkg/enums"
)

// NewPurchaseTransaction builds the ledger entry for a completed checkout.
// The amount is negative: the ledger records balance deltas, and a purchase
// debits the profile.
func NewPurchaseTransaction(userID uuid.UUID, totalCents int64, itemCount int) *models.Transaction {
	return &models.Transaction{
		UserID:      userID,
		AmountCents: -totalCents,
		Type:        enums.TransactionTypePurchase,
		Description: PurchaseDescription(itemCount),
	}
}

// PurchaseDescription renders the user-facing ledger line, singular and
// plural: "Compra de 1 livro(s)".
func PurchaseDescription(itemCount int) string {
	return fmt.Sprintf("Compra de %d livro(s)", itemCount)
}
