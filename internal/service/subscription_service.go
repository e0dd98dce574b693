package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/gutoberny/BernyFlow/internal/dto"
	"github.com/gutoberny/BernyFlow/internal/infra"
	"github.com/gutoberny/BernyFlow/internal/model"
	"github.com/gutoberny/BernyFlow/internal/repository"
)

// PaymentGateway abstracts the Mercado Pago client so tests can stub it.
type PaymentGateway interface {
	CreatePreference(ctx context.Context, pref infra.PreferenceRequest) (*infra.PreferenceResponse, error)
	GetPayment(ctx context.Context, paymentID string) (*infra.Payment, error)
}

type SubscriptionService interface {
	Checkout(ctx context.Context, companyID uuid.UUID) (*dto.CheckoutResponse, error)
	HandleWebhook(ctx context.Context, n dto.WebhookNotification) error
	Status(ctx context.Context, companyID uuid.UUID) (*dto.SubscriptionStatus, error)
}

type subscriptionService struct {
	companies   repository.CompanyRepository
	gateway     PaymentGateway
	breaker     *infra.CircuitBreaker
	frontendURL string
	webhookURL  string
}

func NewSubscriptionService(
	companies repository.CompanyRepository,
	gateway PaymentGateway,
	breaker *infra.CircuitBreaker,
	frontendURL, webhookURL string,
) SubscriptionService {
	return &subscriptionService{
		companies:   companies,
		gateway:     gateway,
		breaker:     breaker,
		frontendURL: frontendURL,
		webhookURL:  webhookURL,
	}
}

var proPlanPrice = decimal.NewFromInt(197)

// Checkout creates a hosted payment preference for the PRO upgrade. The
// company id rides in external_reference so the webhook can resolve the
// paying tenant later.
func (s *subscriptionService) Checkout(ctx context.Context, companyID uuid.UUID) (*dto.CheckoutResponse, error) {
	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		return nil, asNotFound(err)
	}

	pref := infra.PreferenceRequest{
		Items: []infra.PreferenceItem{{
			Title:      "BernyFlow Pro Plan",
			Quantity:   1,
			UnitPrice:  proPlanPrice,
			CurrencyID: "BRL",
		}},
		ExternalReference: companyID.String(),
		BackURLs: infra.BackURLs{
			Success: s.frontendURL + "/subscription/success",
			Failure: s.frontendURL + "/subscription/failure",
			Pending: s.frontendURL + "/subscription/pending",
		},
		AutoReturn:      "approved",
		NotificationURL: s.webhookURL,
	}

	var resp *infra.PreferenceResponse
	err := s.execute(func() error {
		var gwErr error
		resp, gwErr = s.gateway.CreatePreference(ctx, pref)
		return gwErr
	})
	if err != nil {
		return nil, err
	}
	return &dto.CheckoutResponse{PreferenceID: resp.ID, InitPoint: resp.InitPoint}, nil
}

// HandleWebhook processes a Mercado Pago IPN. Non-payment notifications and
// non-approved payments are acknowledged without action; webhooks must never
// error on content we simply do not care about, or the gateway retries
// forever.
func (s *subscriptionService) HandleWebhook(ctx context.Context, n dto.WebhookNotification) error {
	if n.Type != "payment" || n.Data.ID == "" {
		return nil
	}

	var payment *infra.Payment
	err := s.execute(func() error {
		var gwErr error
		payment, gwErr = s.gateway.GetPayment(ctx, n.Data.ID)
		return gwErr
	})
	if err != nil {
		return err
	}

	if payment.Status != "approved" {
		log.Info().Str("payment_id", n.Data.ID).Str("status", payment.Status).
			Msg("webhook: payment not approved, ignoring")
		return nil
	}

	companyID, err := uuid.Parse(payment.ExternalReference)
	if err != nil {
		log.Warn().Str("external_reference", payment.ExternalReference).
			Msg("webhook: unparseable external reference")
		return nil
	}

	if err := s.companies.UpdatePlan(ctx, companyID, model.PlanPro); err != nil {
		return err
	}
	log.Info().Str("company_id", companyID.String()).Msg("company upgraded to PRO")
	return nil
}

func (s *subscriptionService) Status(ctx context.Context, companyID uuid.UUID) (*dto.SubscriptionStatus, error) {
	c, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, asNotFound(err)
	}
	return &dto.SubscriptionStatus{
		Plan:   string(c.Plan),
		Active: c.Plan == model.PlanPro,
	}, nil
}

func (s *subscriptionService) execute(fn func() error) error {
	if s.breaker == nil {
		return fn()
	}
	return s.breaker.Execute(fn)
}
