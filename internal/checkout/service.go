package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookverse/bookverse-backend/internal/cart"
	"github.com/bookverse/bookverse-backend/internal/ledger"
	"github.com/bookverse/bookverse-backend/internal/orders"
	"github.com/bookverse/bookverse-backend/internal/wallet"
	"github.com/bookverse/bookverse-backend/pkg/currency"
	"github.com/bookverse/bookverse-backend/pkg/db/models"
	"github.com/bookverse/bookverse-backend/pkg/enums"
	apperrors "github.com/bookverse/bookverse-backend/pkg/errors"
	"github.com/bookverse/bookverse-backend/pkg/logger"
	"github.com/bookverse/bookverse-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Result summarizes a completed checkout.
type Result struct {
	OrderID          uuid.UUID `json:"order_id"`
	ItemCount        int       `json:"item_count"`
	TotalCents       int64     `json:"total"`
	TotalFormatted   string    `json:"total_formatted"`
	BalanceCents     int64     `json:"balance"`
	BalanceFormatted string    `json:"balance_formatted"`
}

// InsufficientFundsDetails spells out the shortfall on a rejected checkout.
type InsufficientFundsDetails struct {
	RequiredCents  int64  `json:"required"`
	AvailableCents int64  `json:"available"`
	ShortfallCents int64  `json:"shortfall"`
	Required       string `json:"required_formatted"`
	Available      string `json:"available_formatted"`
	Shortfall      string `json:"shortfall_formatted"`
}

// Service executes checkout orchestration.
type Service interface {
	Execute(ctx context.Context, userID uuid.UUID) (*Result, error)
}

type service struct {
	tx        txRunner
	cartSvc   cart.Service
	profiles  wallet.Repository
	orders    orders.Repository
	ledger    ledger.Repository
	publisher wallet.Publisher
	metrics   *metrics.CheckoutMetrics
	logg      *logger.Logger
}

// NewService builds the checkout service.
func NewService(
	tx txRunner,
	cartSvc cart.Service,
	profiles wallet.Repository,
	ordersRepo orders.Repository,
	ledgerRepo ledger.Repository,
	publisher wallet.Publisher,
	checkoutMetrics *metrics.CheckoutMetrics,
	logg *logger.Logger,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if cartSvc == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profile repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if ledgerRepo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("balance publisher required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		tx:        tx,
		cartSvc:   cartSvc,
		profiles:  profiles,
		orders:    ordersRepo,
		ledger:    ledgerRepo,
		publisher: publisher,
		metrics:   checkoutMetrics,
		logg:      logg,
	}, nil
}

// Execute runs the checkout for the user's current cart. Preconditions are
// checked in a fixed order so every rejection is distinct: missing user, empty
// cart, unreadable profile, insufficient balance. The cart emptiness check
// happens before any database access. All writes happen in one transaction;
// the debit is conditional on the balance still covering the total, so a
// concurrent spend rolls the whole sequence back instead of overdrawing.
func (s *service) Execute(ctx context.Context, userID uuid.UUID) (*Result, error) {
	if userID == uuid.Nil {
		return nil, s.reject("unauthenticated", apperrors.New(apperrors.CodeUnauthorized, "login required"))
	}

	current, err := s.cartSvc.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current.IsEmpty() {
		return nil, s.reject("empty_cart", apperrors.New(apperrors.CodeValidation, "cart is empty"))
	}

	profile, err := s.profiles.FindProfileByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.reject("no_profile", apperrors.New(apperrors.CodeNotFound, "profile not found"))
		}
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "loading profile")
	}

	total := current.TotalPriceCents()
	if profile.BalanceCents < total {
		return nil, s.reject("insufficient_funds", insufficientFunds(total, profile.BalanceCents))
	}

	itemCount := current.TotalItemCount()
	var result *Result
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		profiles := s.profiles.WithTx(tx)
		ordersRepo := s.orders.WithTx(tx)
		ledgerRepo := s.ledger.WithTx(tx)

		debited, err := profiles.DebitBalance(ctx, userID, total)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeDependency, err, "debiting balance")
		}
		if !debited {
			// A concurrent spend drained the balance between the read
			// above and this update.
			fresh, err := profiles.FindProfileByID(ctx, userID)
			if err != nil {
				return apperrors.Wrap(apperrors.CodeDependency, err, "re-reading balance")
			}
			return insufficientFunds(total, fresh.BalanceCents)
		}

		order := &models.Order{
			UserID:     userID,
			TotalCents: total,
			Status:     enums.OrderStatusCompleted,
		}
		if err := ordersRepo.CreateOrder(ctx, order); err != nil {
			return apperrors.Wrap(apperrors.CodeDependency, err, "creating order")
		}

		items := make([]models.OrderItem, 0, current.Len())
		for _, line := range current.Items() {
			items = append(items, models.OrderItem{
				OrderID:        order.ID,
				BookID:         line.ID,
				Quantity:       line.Quantity,
				UnitPriceCents: line.PriceCents,
			})
		}
		if err := ordersRepo.CreateOrderItems(ctx, items); err != nil {
			return apperrors.Wrap(apperrors.CodeDependency, err, "creating order items")
		}

		if err := ledgerRepo.Create(ctx, ledger.NewPurchaseTransaction(userID, total, itemCount)); err != nil {
			return apperrors.Wrap(apperrors.CodeDependency, err, "recording transaction")
		}

		fresh, err := profiles.FindProfileByID(ctx, userID)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeDependency, err, "reading settled balance")
		}

		result = &Result{
			OrderID:          order.ID,
			ItemCount:        itemCount,
			TotalCents:       total,
			TotalFormatted:   currency.FormatBRL(total),
			BalanceCents:     fresh.BalanceCents,
			BalanceFormatted: currency.FormatBRL(fresh.BalanceCents),
		}
		return nil
	})
	if err != nil {
		if typed := apperrors.As(err); typed != nil && typed.Code() == apperrors.CodeInsufficientFunds {
			return nil, s.reject("insufficient_funds", err)
		}
		s.metrics.IncFailed()
		return nil, err
	}

	// The order is committed; cleanup failures are logged, not surfaced.
	if err := s.cartSvc.Clear(ctx, userID); err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("clearing cart after checkout: %v", err))
	}
	if err := s.publisher.PublishBalance(ctx, userID, result.BalanceCents); err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("publishing balance after checkout: %v", err))
	}
	s.metrics.IncCompleted(result.TotalCents)

	return result, nil
}

func (s *service) reject(reason string, err error) error {
	s.metrics.IncRejected(reason)
	return err
}

func insufficientFunds(requiredCents, availableCents int64) error {
	shortfall := requiredCents - availableCents
	return apperrors.New(apperrors.CodeInsufficientFunds, "insufficient balance").
		WithDetails(InsufficientFundsDetails{
			RequiredCents:  requiredCents,
			AvailableCents: availableCents,
			ShortfallCents: shortfall,
			Required:       currency.FormatBRL(requiredCents),
			Available:      currency.FormatBRL(availableCents),
			Shortfall:      currency.FormatBRL(shortfall),
		})
}
