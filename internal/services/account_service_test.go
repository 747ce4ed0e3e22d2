package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menfem/internal/models/db_models"
	"menfem/internal/models/request_models"
	mem "menfem/pkg/memcache"
	"menfem/pkg/utils"
)

type fakeAccountRepo struct {
	byEmail    map[string]*db_models.Account
	byUsername map[string]*db_models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		byEmail:    map[string]*db_models.Account{},
		byUsername: map[string]*db_models.Account{},
	}
}

func (f *fakeAccountRepo) InsertTx(ctx context.Context, account *db_models.Account) error {
	account.ID = uuid.New()
	f.byEmail[account.Email] = account
	if account.Username != nil {
		f.byUsername[*account.Username] = account
	}
	return nil
}

func (f *fakeAccountRepo) FindById(ctx context.Context, id string) (*db_models.Account, error) {
	for _, a := range f.byEmail {
		if a.ID.String() == id {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	return f.byEmail[email], nil
}

func (f *fakeAccountRepo) FindByUsername(ctx context.Context, username string) (*db_models.Account, error) {
	return f.byUsername[username], nil
}

func (f *fakeAccountRepo) MarkEmailVerified(ctx context.Context, email string) error {
	if a, ok := f.byEmail[email]; ok {
		a.EmailVerified = true
	}
	return nil
}

func (f *fakeAccountRepo) UpdatePasswordHash(ctx context.Context, email string, hash string) error {
	if a, ok := f.byEmail[email]; ok {
		a.PasswordHash = hash
	}
	return nil
}

func newAccountServiceForTest(repo *fakeAccountRepo, subs *fakeSubscriptionRepo, tokens mem.ActionTokenStore) AccountServiceInterface {
	access := NewAccessService(subs, &fakePurchaseRepo{})
	return NewAccountService(repo, access, &fakeMailService{}, tokens)
}

func signUp(t *testing.T, svc AccountServiceInterface, email, password string) {
	t.Helper()
	require.NoError(t, svc.CreateAccount(context.Background(), request_models.SignUpRequest{
		Email:    email,
		Password: password,
	}))
}

func TestCreateAccount_DuplicateEmailRejected(t *testing.T) {
	svc := newAccountServiceForTest(newFakeAccountRepo(), &fakeSubscriptionRepo{}, mem.NewActionTokens())

	signUp(t, svc, "one@menfem.test", "password123")
	err := svc.CreateAccount(context.Background(), request_models.SignUpRequest{
		Email:    "one@menfem.test",
		Password: "different456",
	})
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
}

func TestCreateAccount_DuplicateUsernameRejected(t *testing.T) {
	svc := newAccountServiceForTest(newFakeAccountRepo(), &fakeSubscriptionRepo{}, mem.NewActionTokens())

	require.NoError(t, svc.CreateAccount(context.Background(), request_models.SignUpRequest{
		Email:    "a@menfem.test",
		Username: "marcus",
		Password: "password123",
	}))
	err := svc.CreateAccount(context.Background(), request_models.SignUpRequest{
		Email:    "b@menfem.test",
		Username: "marcus",
		Password: "password123",
	})
	assert.ErrorIs(t, err, utils.ErrUsernameTaken)
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	svc := newAccountServiceForTest(newFakeAccountRepo(), &fakeSubscriptionRepo{}, mem.NewActionTokens())
	signUp(t, svc, "user@menfem.test", "password123")

	_, errWrong := svc.Login(context.Background(), request_models.LoginRequest{
		Email: "user@menfem.test", Password: "not-the-password",
	})
	_, errUnknown := svc.Login(context.Background(), request_models.LoginRequest{
		Email: "ghost@menfem.test", Password: "password123",
	})

	assert.ErrorIs(t, errWrong, utils.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, utils.ErrInvalidCredentials)
}

func TestLogin_ReturnsTokenAndPremiumFlag(t *testing.T) {
	repo := newFakeAccountRepo()
	subs := &fakeSubscriptionRepo{}
	svc := newAccountServiceForTest(repo, subs, mem.NewActionTokens())
	signUp(t, svc, "member@menfem.test", "password123")

	resp, err := svc.Login(context.Background(), request_models.LoginRequest{
		Email: "member@menfem.test", Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.False(t, resp.HasPremium)

	// With an active subscription the flag flips.
	subs.sub = &db_models.Subscription{
		AccountID: repo.byEmail["member@menfem.test"].ID,
		Status:    db_models.SubStatusActive,
	}
	resp, err = svc.Login(context.Background(), request_models.LoginRequest{
		Email: "member@menfem.test", Password: "password123",
	})
	require.NoError(t, err)
	assert.True(t, resp.HasPremium)
}

func TestVerifyEmail_ConsumesToken(t *testing.T) {
	repo := newFakeAccountRepo()
	tokens := mem.NewActionTokens()
	svc := newAccountServiceForTest(repo, &fakeSubscriptionRepo{}, tokens)
	signUp(t, svc, "verify@menfem.test", "password123")

	tokens.Set("verify-token", "verify@menfem.test", time.Minute)
	require.NoError(t, svc.VerifyEmail(context.Background(), "verify-token"))
	assert.True(t, repo.byEmail["verify@menfem.test"].EmailVerified)

	// Single use.
	assert.ErrorIs(t, svc.VerifyEmail(context.Background(), "verify-token"), utils.ErrInvalidToken)
}

func TestForgotPassword_UnknownEmailStaysSilent(t *testing.T) {
	svc := newAccountServiceForTest(newFakeAccountRepo(), &fakeSubscriptionRepo{}, mem.NewActionTokens())
	assert.NoError(t, svc.ForgotPassword(context.Background(), "ghost@menfem.test"))
}

func TestResetPassword_RoundTrip(t *testing.T) {
	repo := newFakeAccountRepo()
	tokens := mem.NewActionTokens()
	svc := newAccountServiceForTest(repo, &fakeSubscriptionRepo{}, tokens)
	signUp(t, svc, "reset@menfem.test", "oldpassword1")

	tokens.Set("reset-token", "reset@menfem.test", time.Minute)
	require.NoError(t, svc.ResetPassword(context.Background(), request_models.ResetPasswordRequest{
		Token:       "reset-token",
		NewPassword: "newpassword1",
	}))

	_, err := svc.Login(context.Background(), request_models.LoginRequest{
		Email: "reset@menfem.test", Password: "oldpassword1",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), request_models.LoginRequest{
		Email: "reset@menfem.test", Password: "newpassword1",
	})
	assert.NoError(t, err)
}

func TestGetAccount_Missing(t *testing.T) {
	svc := newAccountServiceForTest(newFakeAccountRepo(), &fakeSubscriptionRepo{}, mem.NewActionTokens())
	_, err := svc.GetAccount(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, utils.ErrAccountNotFound)
}
