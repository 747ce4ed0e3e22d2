package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/payOSHQ/payos-lib-golang"
	"gorm.io/gorm"

	dbm "menfem/internal/models/db_models"
	"menfem/internal/models/response_models"
	"menfem/internal/repositories"
	"menfem/pkg/utils"
)

type PayOSConfig struct {
	ClientID     string
	ApiKey       string
	ChecksumKey  string // secret used to sign webhooks
	ReturnURL    string // e.g. https://menfem.com/pay/return
	CancelURL    string // e.g. https://menfem.com/pay/cancel
	ProviderName string // "payos" (stored on Transaction.Provider)
}

// Metadata keys on Transaction deciding what the webhook grants.
const (
	checkoutKindPlan    = "plan"
	checkoutKindContent = "content"
)

type PaymentService interface {
	// ListPlans returns the active plans, cheapest first.
	ListPlans(ctx context.Context) ([]response_models.PlanResponse, error)

	// CreateCheckoutForPlan starts a subscription purchase.
	CreateCheckoutForPlan(ctx context.Context, accountID uuid.UUID, planCode string) (*response_models.CreateCheckoutResponse, error)

	// CreateCheckoutForContent starts a one-off purchase of a single premium
	// item, granting access independent of any subscription.
	CreateCheckoutForContent(ctx context.Context, accountID, contentItemID uuid.UUID) (*response_models.CreateCheckoutResponse, error)

	HandleWebhook(c *gin.Context)
}

type paymentService struct {
	db       *gorm.DB
	planRepo repositories.PlanRepository
	cfg      PayOSConfig
}

func NewPaymentService(db *gorm.DB, planRepo repositories.PlanRepository, cfg PayOSConfig) (PaymentService, error) {
	if cfg.ClientID == "" || cfg.ApiKey == "" || cfg.ChecksumKey == "" {
		return nil, errors.New("missing payOS credentials")
	}
	return &paymentService{db: db, planRepo: planRepo, cfg: cfg}, nil
}

func (p *paymentService) ListPlans(ctx context.Context) ([]response_models.PlanResponse, error) {
	plans, err := p.planRepo.GetAllActive(ctx)
	if err != nil {
		log.Printf("Error listing plans: %v", err)
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.PlanResponse, 0, len(plans))
	for _, plan := range plans {
		out = append(out, response_models.PlanResponse{
			Code:       plan.Code,
			Name:       plan.Name,
			Period:     string(plan.Period),
			PriceMinor: plan.PriceMinor,
			Currency:   plan.Currency,
			TrialDays:  plan.TrialDays,
		})
	}
	return out, nil
}

type checkoutMeta struct {
	Kind          string     `json:"kind"` // "plan" | "content"
	PlanID        uuid.UUID  `json:"plan_id,omitempty"`
	PlanCode      string     `json:"plan_code,omitempty"`
	ContentItemID *uuid.UUID `json:"content_item_id,omitempty"`
}

func (p *paymentService) CreateCheckoutForPlan(ctx context.Context, accountID uuid.UUID, planCode string) (*response_models.CreateCheckoutResponse, error) {
	plan, err := p.planRepo.FindActiveByCode(ctx, planCode)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}

	if plan.PriceMinor <= 0 {
		return nil, fmt.Errorf("plan %s is not billable (amount=%d)", planCode, plan.PriceMinor)
	}

	meta := checkoutMeta{Kind: checkoutKindPlan, PlanID: plan.ID, PlanCode: plan.Code}
	description := fmt.Sprintf("Subscription %s", plan.Code)
	itemName := fmt.Sprintf("%s (%s)", plan.Name, plan.Code)

	return p.createCheckout(ctx, accountID, plan.PriceMinor, plan.Currency, description, itemName, nil, meta)
}

func (p *paymentService) CreateCheckoutForContent(ctx context.Context, accountID, contentItemID uuid.UUID) (*response_models.CreateCheckoutResponse, error) {
	var item dbm.ContentItem
	if err := p.db.WithContext(ctx).
		First(&item, "id = ?", contentItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrContentNotFound
		}
		return nil, err
	}

	if !item.IsPremium || item.PriceMinor <= 0 {
		return nil, utils.ErrContentNotForSale
	}

	var existing int64
	if err := p.db.WithContext(ctx).Model(&dbm.Purchase{}).
		Where("account_id = ? AND content_item_id = ? AND status = ?",
			accountID, contentItemID, dbm.PurchaseCompleted).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, utils.ErrAlreadyPurchased
	}

	meta := checkoutMeta{Kind: checkoutKindContent, ContentItemID: &item.ID}
	description := fmt.Sprintf("Purchase %s", item.Slug)

	return p.createCheckout(ctx, accountID, item.PriceMinor, item.Currency, description, item.Title, &item.ID, meta)
}

func (p *paymentService) createCheckout(
	ctx context.Context,
	accountID uuid.UUID,
	amount int64,
	currency string,
	description string,
	itemName string,
	contentItemID *uuid.UUID,
	meta checkoutMeta) (*response_models.CreateCheckoutResponse, error) {

	// payOS expects an int64 order code; unix seconds + short random keeps it
	// within range while making collisions unlikely.
	orderCode := time.Now().Unix()%1_000_000_000 + int64(rand.Intn(9000)+1000)

	// Pending Transaction first: ProviderTxnID links the local record to the
	// provider order for webhook idempotency.
	txn := &dbm.Transaction{
		AccountID:     accountID,
		ContentItemID: contentItemID,
		AmountMinor:   amount,
		Currency:      strings.ToUpper(currency),
		Status:        dbm.TxnStatusPending,
		Provider:      p.cfg.ProviderName,
		ProviderTxnID: fmt.Sprintf("payos:%d", orderCode),
		Metadata:      jsonRaw(meta),
	}

	if err := p.db.WithContext(ctx).Create(txn).Error; err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	if err := payos.Key(p.cfg.ClientID, p.cfg.ApiKey, p.cfg.ChecksumKey); err != nil {
		return nil, fmt.Errorf("payos client init: %w", err)
	}

	body := payos.CheckoutRequestType{
		OrderCode:   orderCode,
		Amount:      int(amount),
		Items:       []payos.Item{{Name: itemName, Price: int(amount), Quantity: 1}},
		Description: description,
		CancelUrl:   p.cfg.CancelURL,
		ReturnUrl:   p.cfg.ReturnURL,
	}

	resp, err := payos.CreatePaymentLink(body)
	if err != nil {
		_ = p.db.WithContext(ctx).Model(txn).
			Updates(map[string]interface{}{"status": dbm.TxnStatusFailed})
		return nil, fmt.Errorf("payos create link: %w", err)
	}

	return &response_models.CreateCheckoutResponse{
		OrderCode:    orderCode,
		Amount:       amount,
		PaymentURL:   resp.CheckoutUrl,
		ProviderName: p.cfg.ProviderName,
	}, nil
}

func (p *paymentService) HandleWebhook(c *gin.Context) {
	if err := payos.Key(p.cfg.ClientID, p.cfg.ApiKey, p.cfg.ChecksumKey); err != nil {
		log.Printf("webhook: payos key init failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment provider unavailable"})
		return
	}

	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("webhook: error reading body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	var body payos.WebhookType
	if err := json.Unmarshal(rawBody, &body); err != nil {
		log.Printf("webhook: error parsing payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload"})
		return
	}

	data, payosErr := payos.VerifyPaymentWebhookData(body)
	if payosErr != nil {
		log.Printf("webhook: verification failed: %v", payosErr)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Failed to verify webhook data"})
		return
	}

	orderCode := data.OrderCode
	if err := p.settleOrder(orderCode); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Ack 200 to avoid a retry storm, but log for investigation.
			log.Printf("webhook: transaction not found for order %d", orderCode)
			c.JSON(http.StatusOK, gin.H{"message": "ignored"})
			return
		}
		log.Printf("webhook: failed to process order %d: %v", orderCode, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// settleOrder marks the local transaction paid and grants what was bought.
// Idempotency: a transaction already in paid state is never processed twice,
// so the first delivered webhook wins and retries are no-ops.
func (p *paymentService) settleOrder(orderCode int64) error {
	providerTxn := fmt.Sprintf("payos:%d", orderCode)

	var txn dbm.Transaction
	if err := p.db.Where("provider_txn_id = ?", providerTxn).First(&txn).Error; err != nil {
		return err
	}

	if txn.Status == dbm.TxnStatusPaid {
		return nil
	}

	now := time.Now().Unix()
	return p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&txn).Updates(map[string]interface{}{
			"status":  dbm.TxnStatusPaid,
			"paid_at": now,
		}).Error; err != nil {
			return err
		}
		return p.grantEntitlement(tx, &txn)
	})
}

// grantEntitlement runs inside the webhook transaction and dispatches on the
// checkout metadata: plan checkouts activate the subscription, content
// checkouts complete the purchase row.
func (p *paymentService) grantEntitlement(tx *gorm.DB, txn *dbm.Transaction) error {
	var m checkoutMeta
	if err := json.Unmarshal(txn.Metadata, &m); err != nil {
		return fmt.Errorf("missing checkout info in transaction metadata")
	}

	switch m.Kind {
	case checkoutKindPlan:
		return p.activateSubscription(tx, txn, m)
	case checkoutKindContent:
		return p.completePurchase(tx, txn, m)
	default:
		return fmt.Errorf("unknown checkout kind %q", m.Kind)
	}
}

func (p *paymentService) activateSubscription(tx *gorm.DB, txn *dbm.Transaction, m checkoutMeta) error {
	var plan dbm.Plan
	if err := tx.Where("id = ? AND is_active = TRUE", m.PlanID).First(&plan).Error; err != nil {
		return fmt.Errorf("plan not found while activating: %w", err)
	}

	now := time.Now()
	starts := now

	// One subscription row per account: an existing active auto-renewing
	// subscription extends from its current end instead of overlapping.
	var current dbm.Subscription
	err := tx.Where("account_id = ?", txn.AccountID).First(&current).Error
	haveCurrent := err == nil
	if haveCurrent && current.Status == dbm.SubStatusActive && current.AutoRenew && current.EndsAt > now.Unix() {
		starts = time.Unix(current.EndsAt, 0)
	}

	var ends time.Time
	switch plan.Period {
	case dbm.PeriodYear:
		ends = starts.AddDate(1, 0, 0)
	default:
		ends = starts.AddDate(0, 1, 0)
	}

	fields := map[string]interface{}{
		"plan_id":    plan.ID,
		"status":     dbm.SubStatusActive,
		"starts_at":  starts.Unix(),
		"ends_at":    ends.Unix(),
		"auto_renew": true,
		"provider":   p.cfg.ProviderName,
		"metadata": jsonRaw(map[string]any{
			"activated_by_txn": txn.ID,
			"amount_minor":     txn.AmountMinor,
			"currency":         txn.Currency,
		}),
	}

	if haveCurrent {
		if err := tx.Model(&current).Updates(fields).Error; err != nil {
			return err
		}
		return tx.Model(txn).Update("subscription_id", current.ID).Error
	}

	sub := dbm.Subscription{
		AccountID:     txn.AccountID,
		PlanID:        plan.ID,
		Status:        dbm.SubStatusActive,
		StartsAt:      starts.Unix(),
		EndsAt:        ends.Unix(),
		AutoRenew:     true,
		Provider:      p.cfg.ProviderName,
		ProviderSubID: txn.ProviderTxnID,
		Metadata: jsonRaw(map[string]any{
			"activated_by_txn": txn.ID,
			"amount_minor":     txn.AmountMinor,
			"currency":         txn.Currency,
		}),
	}
	if err := tx.Create(&sub).Error; err != nil {
		return err
	}
	return tx.Model(txn).Update("subscription_id", sub.ID).Error
}

func (p *paymentService) completePurchase(tx *gorm.DB, txn *dbm.Transaction, m checkoutMeta) error {
	if m.ContentItemID == nil {
		return fmt.Errorf("content checkout without content_item_id")
	}
	now := time.Now().Unix()

	var existing dbm.Purchase
	err := tx.Where("account_id = ? AND content_item_id = ?", txn.AccountID, *m.ContentItemID).
		First(&existing).Error
	if err == nil {
		return tx.Model(&existing).Updates(map[string]interface{}{
			"status":          dbm.PurchaseCompleted,
			"purchased_at":    now,
			"provider":        p.cfg.ProviderName,
			"provider_txn_id": txn.ProviderTxnID,
		}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return tx.Create(&dbm.Purchase{
		AccountID:     txn.AccountID,
		ContentItemID: *m.ContentItemID,
		Status:        dbm.PurchaseCompleted,
		PurchasedAt:   &now,
		Provider:      p.cfg.ProviderName,
		ProviderTxnID: txn.ProviderTxnID,
	}).Error
}

func jsonRaw(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}
