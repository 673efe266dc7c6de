package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookverse/bookverse-backend/pkg/currency"
	"github.com/bookverse/bookverse-backend/pkg/db/models"
)

// TransactionDTO is the API shape of one ledger entry. Amount keeps its sign:
// purchases are negative.
type TransactionDTO struct {
	ID              uuid.UUID `json:"id"`
	AmountCents     int64     `json:"amount"`
	AmountFormatted string    `json:"amount_formatted"`
	Type            string    `json:"type"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
}

func FromModel(transaction *models.Transaction) *TransactionDTO {
	if transaction == nil {
		return nil
	}
	return &TransactionDTO{
		ID:              transaction.ID,
		AmountCents:     transaction.AmountCents,
		AmountFormatted: currency.FormatBRL(transaction.AmountCents),
		Type:            transaction.Type.String(),
		Description:     transaction.Description,
		CreatedAt:       transaction.CreatedAt,
	}
}

func FromModels(transactions []models.Transaction) []TransactionDTO {
	out := make([]TransactionDTO, 0, len(transactions))
	for i := range transactions {
		out = append(out, *FromModel(&transactions[i]))
	}
	return out
}
