package application

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	repo "github.com/oksasatya/go-account-service/internal/domain/repository"
	"github.com/oksasatya/go-account-service/pkg/helpers"
)

// memStore is an in-memory AccountStore with the same uniqueness and
// not-found semantics as the Mongo implementation.
type memStore struct {
	mu       sync.Mutex
	accounts map[string]*entity.Account
}

func newMemStore() *memStore {
	return &memStore{accounts: map[string]*entity.Account{}}
}

func clone(a *entity.Account) *entity.Account {
	c := *a
	if a.OTP != nil {
		otp := *a.OTP
		c.OTP = &otp
	}
	if a.OTPExpires != nil {
		exp := *a.OTPExpires
		c.OTPExpires = &exp
	}
	return &c
}

func (s *memStore) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Email == email {
			return clone(a), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (s *memStore) FindByMobile(_ context.Context, mobile string) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Mobile == mobile {
			return clone(a), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (s *memStore) FindByID(_ context.Context, id string) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[id]; ok {
		return clone(a), nil
	}
	return nil, repo.ErrNotFound
}

func (s *memStore) Insert(_ context.Context, a *entity.Account) error {
	if err := a.CheckOTPState(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.accounts {
		if existing.Email == a.Email || existing.Mobile == a.Mobile {
			return repo.ErrDuplicateKey
		}
	}
	a.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	s.accounts[a.ID.Hex()] = clone(a)
	return nil
}

func (s *memStore) UpdateByID(_ context.Context, id string, fields map[string]interface{}) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	for k, v := range fields {
		val, _ := v.(string)
		switch k {
		case "name":
			a.Name = val
		case "mobile":
			a.Mobile = val
		case "dob":
			a.DOB = val
		case "gender":
			a.Gender = val
		case "address":
			a.Address = val
		}
	}
	a.UpdatedAt = time.Now().UTC()
	return clone(a), nil
}

func (s *memStore) Save(_ context.Context, a *entity.Account) error {
	if err := a.CheckOTPState(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[a.ID.Hex()]; !ok {
		return repo.ErrNotFound
	}
	a.UpdatedAt = time.Now().UTC()
	s.accounts[a.ID.Hex()] = clone(a)
	return nil
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

var _ repo.AccountStore = (*memStore)(nil)

func newTestService(store *memStore) *Service {
	jwt := helpers.NewJWTManager("service-test-secret", time.Hour)
	return NewService(store, jwt, nil, time.Hour, bcrypt.MinCost)
}

func aliceInput() SignupInput {
	return SignupInput{
		Name:     "Alice Doe",
		Mobile:   "9876543210",
		Email:    "a@b.com",
		DOB:      "1990-01-01",
		Gender:   "female",
		Address:  "1 Main St",
		Password: "secret1",
	}
}

func TestSignupHashesPasswordAndArmsOTP(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	a, otp, err := svc.Signup(context.Background(), aliceInput())
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", a.Password)
	assert.True(t, helpers.CompareHashAndPassword(a.Password, "secret1"))

	require.Len(t, otp, 6)
	n, err := strconv.Atoi(otp)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 100000)
	assert.LessOrEqual(t, n, 999999)

	stored, err := store.FindByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.True(t, stored.HasPendingOTP())
	assert.Equal(t, otp, *stored.OTP)
	assert.True(t, stored.OTPExpires.After(time.Now()))
}

func TestSignupDuplicateEmail(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	_, _, err := svc.Signup(context.Background(), aliceInput())
	require.NoError(t, err)

	dup := aliceInput()
	dup.Mobile = "9876543211"
	_, _, err = svc.Signup(context.Background(), dup)
	assert.ErrorIs(t, err, ErrAccountExists)
	assert.Equal(t, 1, store.count(), "no record created on duplicate signup")
}

func TestSignupDuplicateMobile(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	_, _, err := svc.Signup(context.Background(), aliceInput())
	require.NoError(t, err)

	dup := aliceInput()
	dup.Email = "other@b.com"
	_, _, err = svc.Signup(context.Background(), dup)
	assert.ErrorIs(t, err, ErrAccountExists)
	assert.Equal(t, 1, store.count())
}

func TestVerifyOTPIssuesTokenAndPreventsReplay(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	a, otp, err := svc.Signup(context.Background(), aliceInput())
	require.NoError(t, err)

	token, _, err := svc.VerifyOTP(context.Background(), "9876543210", otp)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.JWT.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, a.ID.Hex(), claims.UserID)

	stored, err := store.FindByMobile(context.Background(), "9876543210")
	require.NoError(t, err)
	assert.False(t, stored.HasPendingOTP(), "otp state cleared after use")

	// Same code again must fail: no replay.
	_, _, err = svc.VerifyOTP(context.Background(), "9876543210", otp)
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestVerifyOTPFailures(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	_, otp, err := svc.Signup(context.Background(), aliceInput())
	require.NoError(t, err)

	_, _, err = svc.VerifyOTP(context.Background(), "0000000000", otp)
	assert.ErrorIs(t, err, ErrInvalidMobileOrOTP)

	_, _, err = svc.VerifyOTP(context.Background(), "9876543210", "000000")
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestVerifyOTPExpired(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	_, otp, err := svc.Signup(context.Background(), aliceInput())
	require.NoError(t, err)

	// Force the pending code past its window.
	stored, err := store.FindByMobile(context.Background(), "9876543210")
	require.NoError(t, err)
	stored.SetOTP(otp, time.Now().Add(-time.Second))
	require.NoError(t, store.Save(context.Background(), stored))

	_, _, err = svc.VerifyOTP(context.Background(), "9876543210", otp)
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestLoginEnumerationSafe(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	_, _, err := svc.Signup(context.Background(), aliceInput())
	require.NoError(t, err)

	_, _, _, wrongPwd := svc.Login(context.Background(), "a@b.com", "wrongpass")
	_, _, _, unknown := svc.Login(context.Background(), "nobody@b.com", "secret1")

	assert.ErrorIs(t, wrongPwd, ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
	assert.Equal(t, wrongPwd, unknown, "wrong password and unknown email are indistinguishable")
}

func TestLoginSuccess(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	a, _, err := svc.Signup(context.Background(), aliceInput())
	require.NoError(t, err)

	got, token, exp, err := svc.Login(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))
}

func TestForgotAndResetPassword(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	_, signupOTP, err := svc.Signup(context.Background(), aliceInput())
	require.NoError(t, err)
	_, _, err = svc.VerifyOTP(context.Background(), "9876543210", signupOTP)
	require.NoError(t, err)

	resetOTP, err := svc.ForgotPassword(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.Len(t, resetOTP, 6)

	require.NoError(t, svc.ResetPassword(context.Background(), "a@b.com", resetOTP, "newsecret"))

	// Old password no longer works; the new one does.
	_, _, _, err = svc.Login(context.Background(), "a@b.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, _, err = svc.Login(context.Background(), "a@b.com", "newsecret")
	assert.NoError(t, err)

	// Reset cleared the pending state; the code cannot be reused.
	err = svc.ResetPassword(context.Background(), "a@b.com", resetOTP, "another1")
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc := newTestService(newMemStore())

	_, err := svc.ForgotPassword(context.Background(), "nobody@b.com")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestResetPasswordUnknownEmail(t *testing.T) {
	svc := newTestService(newMemStore())

	err := svc.ResetPassword(context.Background(), "nobody@b.com", "123456", "newsecret")
	assert.ErrorIs(t, err, ErrInvalidEmailOrOTP)
}

func TestUpdateProfilePartial(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	a, _, err := svc.Signup(context.Background(), aliceInput())
	require.NoError(t, err)

	name := "Alice Smith"
	updated, err := svc.UpdateProfile(context.Background(), a.ID.Hex(), UpdateProfileInput{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Alice Smith", updated.Name)
	assert.Equal(t, "9876543210", updated.Mobile, "unspecified fields untouched")
	assert.Equal(t, "a@b.com", updated.Email)
}

func TestUpdateProfileUnknownID(t *testing.T) {
	svc := newTestService(newMemStore())

	name := "Alice Smith"
	_, err := svc.UpdateProfile(context.Background(), primitive.NewObjectID().Hex(), UpdateProfileInput{Name: &name})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
