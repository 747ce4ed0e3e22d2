package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menfem/internal/models/db_models"
)

type fakeSubscriptionRepo struct {
	sub   *db_models.Subscription
	err   error
	calls int
}

func (f *fakeSubscriptionRepo) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*db_models.Subscription, error) {
	f.calls++
	return f.sub, f.err
}

type fakePurchaseRepo struct {
	purchases []db_models.Purchase
	count     int64
	err       error
	calls     int
}

func (f *fakePurchaseRepo) FindCompleted(ctx context.Context, accountID, contentItemID uuid.UUID) (*db_models.Purchase, error) {
	f.calls++
	for i := range f.purchases {
		if f.purchases[i].ContentItemID == contentItemID {
			return &f.purchases[i], f.err
		}
	}
	return nil, f.err
}

func (f *fakePurchaseRepo) ListCompletedByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Purchase, error) {
	f.calls++
	return f.purchases, f.err
}

func (f *fakePurchaseRepo) CountCompletedForContent(ctx context.Context, contentItemID uuid.UUID) (int64, error) {
	f.calls++
	return f.count, f.err
}

func publishedItem(premium bool) *db_models.ContentItem {
	at := int64(1700000000)
	return &db_models.ContentItem{
		BaseModel:   db_models.BaseModel{ID: uuid.New()},
		Kind:        db_models.KindArticle,
		Slug:        "test-item",
		Title:       "Test Item",
		IsPublished: true,
		IsPremium:   premium,
		PublishedAt: &at,
	}
}

func subscribedViewer(status db_models.SubscriptionStatus) *Viewer {
	id := uuid.New()
	return &Viewer{
		AccountID:    &id,
		Subscription: &db_models.Subscription{AccountID: id, Status: status},
	}
}

func TestCanViewDetail_MissingItem(t *testing.T) {
	d := CanViewDetail(nil, subscribedViewer(db_models.SubStatusActive))
	assert.False(t, d.Visible)
	assert.Equal(t, ReasonNotFound, d.Reason)
}

func TestCanViewDetail_UnpublishedInvisibleToEveryone(t *testing.T) {
	item := publishedItem(false)
	item.IsPublished = false

	for name, viewer := range map[string]*Viewer{
		"nil viewer": nil,
		"anonymous":  {},
		"subscriber": subscribedViewer(db_models.SubStatusActive),
	} {
		d := CanViewDetail(item, viewer)
		assert.False(t, d.Visible, name)
		assert.Equal(t, ReasonNotFound, d.Reason, name)
	}
}

func TestCanViewDetail_FreeContentVisibleToAnyone(t *testing.T) {
	item := publishedItem(false)

	assert.True(t, CanView(item, nil))
	assert.True(t, CanView(item, &Viewer{}))
	assert.True(t, CanView(item, subscribedViewer(db_models.SubStatusCanceled)))
}

func TestCanViewDetail_PremiumDeniedWithoutEntitlement(t *testing.T) {
	item := publishedItem(true)

	cases := map[string]*Viewer{
		"nil viewer":           nil,
		"anonymous":            {},
		"inactive sub":         subscribedViewer(db_models.SubStatusInactive),
		"canceled sub":         subscribedViewer(db_models.SubStatusCanceled),
		"past due sub":         subscribedViewer(db_models.SubStatusPastDue),
		"no sub, no purchases": func() *Viewer { id := uuid.New(); return &Viewer{AccountID: &id} }(),
	}
	for name, viewer := range cases {
		d := CanViewDetail(item, viewer)
		assert.False(t, d.Visible, name)
		assert.Equal(t, ReasonPremiumRequired, d.Reason, name)
	}
}

func TestCanViewDetail_PremiumVisibleWithActiveSubscription(t *testing.T) {
	d := CanViewDetail(publishedItem(true), subscribedViewer(db_models.SubStatusActive))
	assert.True(t, d.Visible)
	assert.Equal(t, ReasonOK, d.Reason)
}

func TestCanViewDetail_PremiumVisibleWithCompletedPurchase(t *testing.T) {
	item := publishedItem(true)
	id := uuid.New()
	viewer := &Viewer{
		AccountID: &id,
		Purchased: map[uuid.UUID]struct{}{item.ID: {}},
	}

	d := CanViewDetail(item, viewer)
	assert.True(t, d.Visible)
	assert.Equal(t, ReasonOK, d.Reason)
}

func TestCanViewDetail_PurchaseOfOtherItemDoesNotUnlock(t *testing.T) {
	item := publishedItem(true)
	id := uuid.New()
	viewer := &Viewer{
		AccountID: &id,
		Purchased: map[uuid.UUID]struct{}{uuid.New(): {}},
	}

	d := CanViewDetail(item, viewer)
	assert.False(t, d.Visible)
	assert.Equal(t, ReasonPremiumRequired, d.Reason)
}

func TestCanView_AgreesWithCanViewDetail(t *testing.T) {
	items := []*db_models.ContentItem{nil, publishedItem(false), publishedItem(true)}
	viewers := []*Viewer{nil, {}, subscribedViewer(db_models.SubStatusActive)}

	for _, item := range items {
		for _, viewer := range viewers {
			assert.Equal(t, CanViewDetail(item, viewer).Visible, CanView(item, viewer))
		}
	}
}

func TestResolveViewer_AnonymousSkipsLookups(t *testing.T) {
	subs := &fakeSubscriptionRepo{}
	purchases := &fakePurchaseRepo{}
	svc := NewAccessService(subs, purchases)

	viewer, err := svc.ResolveViewer(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, viewer.AccountID)
	assert.Zero(t, subs.calls)
	assert.Zero(t, purchases.calls)
}

func TestResolveViewer_LoadsSubscriptionAndPurchases(t *testing.T) {
	accountID := uuid.New()
	itemID := uuid.New()
	subs := &fakeSubscriptionRepo{sub: &db_models.Subscription{
		AccountID: accountID,
		Status:    db_models.SubStatusActive,
	}}
	purchases := &fakePurchaseRepo{purchases: []db_models.Purchase{
		{AccountID: accountID, ContentItemID: itemID, Status: db_models.PurchaseCompleted},
	}}
	svc := NewAccessService(subs, purchases)

	viewer, err := svc.ResolveViewer(context.Background(), &accountID)
	require.NoError(t, err)
	assert.True(t, viewer.HasActiveSubscription())
	assert.True(t, viewer.HasPurchased(itemID))
	assert.False(t, viewer.HasPurchased(uuid.New()))
}

func TestGetAccess_NilAccountNeverLooksUp(t *testing.T) {
	subs := &fakeSubscriptionRepo{}
	svc := NewAccessService(subs, &fakePurchaseRepo{})

	access, err := svc.GetAccess(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, access.HasAccess)
	assert.Zero(t, subs.calls)
}

func TestGetAccess_ActiveSubscription(t *testing.T) {
	accountID := uuid.New()
	subs := &fakeSubscriptionRepo{sub: &db_models.Subscription{
		AccountID: accountID,
		Status:    db_models.SubStatusActive,
		Plan:      db_models.Plan{Code: "member_monthly"},
		StartsAt:  100,
		EndsAt:    200,
	}}
	svc := NewAccessService(subs, &fakePurchaseRepo{})

	access, err := svc.GetAccess(context.Background(), &accountID)
	require.NoError(t, err)
	assert.True(t, access.HasAccess)
	require.NotNil(t, access.Subscription)
	assert.Equal(t, "member_monthly", access.Subscription.PlanCode)
}

func TestGetAccess_InactiveSubscription(t *testing.T) {
	accountID := uuid.New()
	subs := &fakeSubscriptionRepo{sub: &db_models.Subscription{
		AccountID: accountID,
		Status:    db_models.SubStatusCanceled,
	}}
	svc := NewAccessService(subs, &fakePurchaseRepo{})

	access, err := svc.GetAccess(context.Background(), &accountID)
	require.NoError(t, err)
	assert.False(t, access.HasAccess)
}
