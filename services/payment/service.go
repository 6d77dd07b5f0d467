package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"

	userRepo "melodia/database/repository/user"
	"melodia/models"
	"melodia/utils"
)

var ErrUserNotFound = errors.New("user not found")

// PaymentService creates tuition payment intents. Marking a student paid
// stays a manual admin action; the intent just collects the money.
type PaymentService interface {
	CreateTuitionIntent(ctx context.Context, userID string) (*models.TuitionIntent, error)
}

// DefaultPaymentService is the Stripe-backed PaymentService.
type DefaultPaymentService struct {
	Users    userRepo.Repository
	Amount   int64 // smallest currency unit
	Currency string
}

func (s *DefaultPaymentService) CreateTuitionIntent(ctx context.Context, userID string) (*models.TuitionIntent, error) {
	logger := utils.GetLogger()

	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(s.Amount),
		Currency: stripe.String(s.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("userId", user.ID)
	params.AddMetadata("authUid", user.AuthUID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	logger.Info("Tuition payment intent created",
		zap.String("userId", user.ID),
		zap.String("intentId", pi.ID))
	return &models.TuitionIntent{
		IntentID:     pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       s.Amount,
		Currency:     s.Currency,
	}, nil
}
