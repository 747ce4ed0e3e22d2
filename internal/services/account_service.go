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

const (
	verifyTokenTTL = 24 * time.Hour
	resetTokenTTL  = 30 * time.Minute
)

type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, req request_models.SignUpRequest) error
	Login(ctx context.Context, req request_models.LoginRequest) (*response_models.LoginResponse, error)
	VerifyEmail(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req request_models.ResetPasswordRequest) error
	GetAccount(ctx context.Context, id string) (*response_models.AccountResponse, error)
}

type AccountService struct {
	accountRepo   repositories.AccountRepository
	accessService AccessServiceInterface
	mailService   IMailService
	tokens        mem.ActionTokenStore
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	accessService AccessServiceInterface,
	mailService IMailService,
	tokens mem.ActionTokenStore) AccountServiceInterface {
	return &AccountService{
		accountRepo:   accountRepo,
		accessService: accessService,
		mailService:   mailService,
		tokens:        tokens,
	}
}

func (a *AccountService) CreateAccount(ctx context.Context, req request_models.SignUpRequest) error {
	existing, err := a.accountRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return utils.ErrEmailAlreadyExists
	}

	var username *string
	if req.Username != "" {
		taken, err := a.accountRepo.FindByUsername(ctx, req.Username)
		if err != nil {
			return utils.ErrDatabaseError
		}
		if taken != nil {
			return utils.ErrUsernameTaken
		}
		username = &req.Username
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	newAccount := &db_models.Account{
		Name:         req.DisplayName,
		Email:        req.Email,
		Username:     username,
		PasswordHash: hashedPassword,
		Role:         "user",
	}

	if err := a.accountRepo.InsertTx(ctx, newAccount); err != nil {
		return utils.ErrDatabaseError
	}

	// Verification mail is best-effort; the account exists either way and the
	// token can be re-issued.
	token, err := utils.GenerateSecureToken(32)
	if err == nil {
		a.tokens.Set(token, req.Email, verifyTokenTTL)
		if err := a.mailService.SendMailToVerifyEmail(req.Email, token); err != nil {
			log.Printf("Error sending verification mail to %q: %v", req.Email, err)
		}
	}

	return nil
}

func (a *AccountService) Login(ctx context.Context, req request_models.LoginRequest) (*response_models.LoginResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, req.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID, account.Role)
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	access, err := a.accessService.GetAccess(ctx, &account.ID)
	if err != nil {
		// Login still succeeds when the access lookup fails; premium state
		// is advisory on this response.
		log.Printf("Error resolving access for %s: %v", account.ID, err)
		access = &response_models.AccessResponse{HasAccess: false}
	}

	return &response_models.LoginResponse{
		Token:      token,
		HasPremium: access.HasAccess,
	}, nil
}

func (a *AccountService) VerifyEmail(ctx context.Context, token string) error {
	email := a.tokens.Consume(token)
	if email == "" {
		return utils.ErrInvalidToken
	}
	if err := a.accountRepo.MarkEmailVerified(ctx, email); err != nil {
		log.Printf("Error marking %q verified: %v", email, err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (a *AccountService) ForgotPassword(ctx context.Context, email string) error {
	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		// Same outcome as success so the endpoint cannot be used to probe
		// which emails exist.
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return utils.ErrDatabaseError
	}
	a.tokens.Set(token, email, resetTokenTTL)

	if err := a.mailService.SendMailToResetPassword(email, token); err != nil {
		log.Printf("Error sending reset mail to %q: %v", email, err)
		return utils.ErrMailSendFailed
	}
	return nil
}

func (a *AccountService) ResetPassword(ctx context.Context, req request_models.ResetPasswordRequest) error {
	email := a.tokens.Consume(req.Token)
	if email == "" {
		return utils.ErrInvalidToken
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if err := a.accountRepo.UpdatePasswordHash(ctx, email, hashed); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (a *AccountService) GetAccount(ctx context.Context, id string) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindById(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	return &response_models.AccountResponse{
		ID:            account.ID.String(),
		Email:         account.Email,
		Username:      account.Username,
		Name:          account.Name,
		EmailVerified: account.EmailVerified,
		Role:          account.Role,
	}, nil
}
