package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"menfem/internal/models/db_models"
	"menfem/internal/models/response_models"
	"menfem/internal/repositories"
	"menfem/pkg/utils"
)

// Viewer is the resolved identity a request carries into every policy and
// query call. A zero Viewer (or nil) is an anonymous visitor.
type Viewer struct {
	AccountID    *uuid.UUID
	Subscription *db_models.Subscription
	Purchased    map[uuid.UUID]struct{}
}

func (v *Viewer) HasActiveSubscription() bool {
	return v != nil && v.Subscription.IsActive()
}

func (v *Viewer) HasPurchased(contentItemID uuid.UUID) bool {
	if v == nil {
		return false
	}
	_, ok := v.Purchased[contentItemID]
	return ok
}

type AccessReason string

const (
	ReasonOK              AccessReason = "ok"
	ReasonNotFound        AccessReason = "not_found"
	ReasonPremiumRequired AccessReason = "premium_required"
)

type AccessDecision struct {
	Visible bool
	Reason  AccessReason
}

// CanView decides visibility for one item. Pure, never errors: missing auth
// or subscription data is "no access", not a failure.
//
// Order of rules: unpublished items are invisible to everyone on the public
// path; published non-premium items are visible to anyone; published premium
// items need a signed-in viewer with an active subscription or a completed
// purchase of that exact item.
func CanView(item *db_models.ContentItem, viewer *Viewer) bool {
	return CanViewDetail(item, viewer).Visible
}

// CanViewDetail is CanView plus the reason, so callers can render a paywall
// teaser for premium denials while unpublished items stay indistinguishable
// from missing ones.
func CanViewDetail(item *db_models.ContentItem, viewer *Viewer) AccessDecision {
	if item == nil || !item.IsPublished {
		return AccessDecision{Visible: false, Reason: ReasonNotFound}
	}
	if !item.IsPremium {
		return AccessDecision{Visible: true, Reason: ReasonOK}
	}
	if viewer == nil || viewer.AccountID == nil {
		return AccessDecision{Visible: false, Reason: ReasonPremiumRequired}
	}
	if viewer.HasActiveSubscription() || viewer.HasPurchased(item.ID) {
		return AccessDecision{Visible: true, Reason: ReasonOK}
	}
	return AccessDecision{Visible: false, Reason: ReasonPremiumRequired}
}

type AccessServiceInterface interface {
	// ResolveViewer loads the subscription and completed purchases for an
	// account. A nil accountID resolves to an anonymous viewer with no lookups.
	ResolveViewer(ctx context.Context, accountID *uuid.UUID) (*Viewer, error)

	// GetAccess answers the blanket premium-access question for one account.
	GetAccess(ctx context.Context, accountID *uuid.UUID) (*response_models.AccessResponse, error)
}

type AccessService struct {
	subscriptionRepo repositories.SubscriptionRepository
	purchaseRepo     repositories.PurchaseRepository
}

func NewAccessService(
	subscriptionRepo repositories.SubscriptionRepository,
	purchaseRepo repositories.PurchaseRepository) AccessServiceInterface {
	return &AccessService{
		subscriptionRepo: subscriptionRepo,
		purchaseRepo:     purchaseRepo,
	}
}

func (s *AccessService) ResolveViewer(ctx context.Context, accountID *uuid.UUID) (*Viewer, error) {
	if accountID == nil {
		return &Viewer{}, nil
	}

	sub, err := s.subscriptionRepo.FindByAccountID(ctx, *accountID)
	if err != nil {
		log.Printf("Error loading subscription for %s: %v", accountID, err)
		return nil, utils.ErrDatabaseError
	}

	purchases, err := s.purchaseRepo.ListCompletedByAccount(ctx, *accountID)
	if err != nil {
		log.Printf("Error loading purchases for %s: %v", accountID, err)
		return nil, utils.ErrDatabaseError
	}

	purchased := make(map[uuid.UUID]struct{}, len(purchases))
	for _, p := range purchases {
		purchased[p.ContentItemID] = struct{}{}
	}

	return &Viewer{
		AccountID:    accountID,
		Subscription: sub,
		Purchased:    purchased,
	}, nil
}

func (s *AccessService) GetAccess(ctx context.Context, accountID *uuid.UUID) (*response_models.AccessResponse, error) {
	if accountID == nil {
		return &response_models.AccessResponse{HasAccess: false}, nil
	}

	sub, err := s.subscriptionRepo.FindByAccountID(ctx, *accountID)
	if err != nil {
		log.Printf("Error loading subscription for %s: %v", accountID, err)
		return nil, utils.ErrDatabaseError
	}
	if sub == nil {
		return &response_models.AccessResponse{HasAccess: false}, nil
	}

	return &response_models.AccessResponse{
		HasAccess: sub.IsActive(),
		Subscription: &response_models.SubscriptionResponse{
			Status:   string(sub.Status),
			PlanCode: sub.Plan.Code,
			StartsAt: sub.StartsAt,
			EndsAt:   sub.EndsAt,
		},
	}, nil
}
