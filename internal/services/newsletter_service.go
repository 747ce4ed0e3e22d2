package services

import (
	"context"
	"log"
	"time"

	"menfem/internal/models/db_models"
	"menfem/internal/models/request_models"
	"menfem/internal/models/response_models"
	"menfem/internal/repositories"
	mem "menfem/pkg/memcache"
	"menfem/pkg/utils"
)

// DigestRecentCount is N in "featured plus the next N most recent".
const DigestRecentCount = 5

const confirmTokenTTL = 48 * time.Hour

type NewsletterServiceInterface interface {
	Subscribe(ctx context.Context, req request_models.SubscribeRequest) error
	ConfirmSubscription(ctx context.Context, token string) error
	Unsubscribe(ctx context.Context, email string) error

	// SelectDigest is deterministic for a given repository state and
	// reference date: featured is the newest eligible article published
	// strictly before the date, recent the next N, newest first.
	SelectDigest(ctx context.Context, referenceDate time.Time) (*response_models.DigestResponse, error)

	// SendDigest selects, renders and delivers one issue, then records the
	// included items so the next selection skips them.
	SendDigest(ctx context.Context, referenceDate time.Time) (*response_models.DigestSendReport, error)
}

type NewsletterService struct {
	contentRepo    repositories.ContentRepository
	newsletterRepo repositories.NewsletterRepository
	mailService    IMailService
	tokens         mem.ActionTokenStore
	baseURL        string
}

func NewNewsletterService(
	contentRepo repositories.ContentRepository,
	newsletterRepo repositories.NewsletterRepository,
	mailService IMailService,
	tokens mem.ActionTokenStore,
	baseURL string) NewsletterServiceInterface {
	return &NewsletterService{
		contentRepo:    contentRepo,
		newsletterRepo: newsletterRepo,
		mailService:    mailService,
		tokens:         tokens,
		baseURL:        baseURL,
	}
}

func (s *NewsletterService) Subscribe(ctx context.Context, req request_models.SubscribeRequest) error {
	existing, err := s.newsletterRepo.FindSubscriberByEmail(ctx, req.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil && existing.Confirmed {
		return utils.ErrAlreadySubscribed
	}

	if existing == nil {
		if err := s.newsletterRepo.CreateSubscriber(ctx, &db_models.NewsletterSubscriber{
			Email: req.Email,
		}); err != nil {
			log.Printf("Error creating subscriber %q: %v", req.Email, err)
			return utils.ErrDatabaseError
		}
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return utils.ErrDatabaseError
	}
	s.tokens.Set(token, req.Email, confirmTokenTTL)

	if err := s.mailService.SendMailToConfirmSubscription(req.Email, token); err != nil {
		log.Printf("Error sending confirmation to %q: %v", req.Email, err)
		return utils.ErrMailSendFailed
	}
	return nil
}

func (s *NewsletterService) ConfirmSubscription(ctx context.Context, token string) error {
	email := s.tokens.Consume(token)
	if email == "" {
		return utils.ErrInvalidToken
	}
	if err := s.newsletterRepo.ConfirmSubscriber(ctx, email, utils.NowUnixSeconds()); err != nil {
		log.Printf("Error confirming subscriber %q: %v", email, err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) error {
	existing, err := s.newsletterRepo.FindSubscriberByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrNotSubscribed
	}
	if err := s.newsletterRepo.UnsubscribeByEmail(ctx, email, utils.NowUnixSeconds()); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// selectItems returns featured first, then the recent set in publishedAt
// descending order.
func (s *NewsletterService) selectItems(ctx context.Context, referenceDate time.Time) ([]db_models.ContentItem, error) {
	candidates, err := s.contentRepo.ListDigestCandidates(
		ctx, db_models.KindArticle, referenceDate.Unix(), DigestRecentCount+1)
	if err != nil {
		log.Printf("Error selecting digest candidates: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if len(candidates) == 0 {
		return nil, utils.ErrNothingToSend
	}
	return candidates, nil
}

func (s *NewsletterService) SelectDigest(ctx context.Context, referenceDate time.Time) (*response_models.DigestResponse, error) {
	items, err := s.selectItems(ctx, referenceDate)
	if err != nil {
		return nil, err
	}

	resp := &response_models.DigestResponse{
		Featured: toContentResponse(&items[0], nil),
	}
	for i := 1; i < len(items); i++ {
		resp.Recent = append(resp.Recent, toContentResponse(&items[i], nil))
	}
	return resp, nil
}

func (s *NewsletterService) SendDigest(ctx context.Context, referenceDate time.Time) (*response_models.DigestSendReport, error) {
	items, err := s.selectItems(ctx, referenceDate)
	if err != nil {
		return nil, err
	}
	featured := items[0]

	data := DigestEmailData{
		Subject:         "This week on MENFEM: " + featured.Title,
		FeaturedTitle:   featured.Title,
		FeaturedSummary: featured.Summary,
		FeaturedURL:     s.baseURL + "/content/" + featured.Slug,
		Year:            time.Now().Year(),
	}
	for i := 1; i < len(items); i++ {
		data.Recent = append(data.Recent, DigestEmailItem{
			Title:   items[i].Title,
			Summary: items[i].Summary,
			URL:     s.baseURL + "/content/" + items[i].Slug,
		})
	}

	html, err := s.mailService.RenderDigest(data)
	if err != nil {
		log.Printf("Error rendering digest: %v", err)
		return nil, utils.ErrMailSendFailed
	}

	subscribers, err := s.newsletterRepo.ListConfirmed(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if len(subscribers) == 0 {
		// Recording here would mark the selection as sent with no recipients,
		// permanently excluding it from future digests.
		return nil, utils.ErrNothingToSend
	}

	sent, failed := 0, 0
	for _, sub := range subscribers {
		if err := s.mailService.SendDigest(sub.Email, data.Subject, html); err != nil {
			log.Printf("Error sending digest to %q: %v", sub.Email, err)
			failed++
			continue
		}
		sent++
	}

	if sent == 0 && failed > 0 {
		// Nothing went out; leave the history untouched so the next run
		// retries the same selection.
		return nil, utils.ErrMailSendFailed
	}

	record := &db_models.DigestRecord{
		Subject:     data.Subject,
		SentAt:      utils.NowUnixSeconds(),
		SentCount:   sent,
		FailedCount: failed,
	}
	digestItems := make([]db_models.DigestItem, 0, len(items))
	for i := range items {
		digestItems = append(digestItems, db_models.DigestItem{
			ContentItemID: items[i].ID,
			Featured:      i == 0,
		})
	}
	if err := s.newsletterRepo.RecordDigest(ctx, record, digestItems); err != nil {
		log.Printf("Error recording digest: %v", err)
		return nil, utils.ErrDatabaseError
	}

	return &response_models.DigestSendReport{
		DigestID:    record.ID.String(),
		Subject:     record.Subject,
		SentCount:   sent,
		FailedCount: failed,
	}, nil
}
