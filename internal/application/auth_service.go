package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	repo "github.com/oksasatya/go-account-service/internal/domain/repository"
	"github.com/oksasatya/go-account-service/pkg/helpers"
)

// Sentinel errors for the credential lifecycle. Lookup misses and bad
// credentials deliberately collapse into the same error per flow so the
// API cannot be used to enumerate registered accounts.
var (
	ErrAccountExists      = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidMobileOrOTP = errors.New("invalid mobile number or otp")
	ErrInvalidOTP         = errors.New("invalid otp")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidEmailOrOTP  = errors.New("invalid email or otp")
	ErrAccountNotFound    = errors.New("account not found")
)

// Service orchestrates signup, OTP verification, login, password reset and
// profile update on top of the account store.
type Service struct {
	Store      repo.AccountStore
	JWT        *helpers.JWTManager
	Logger     *logrus.Logger
	OTPTTL     time.Duration
	BcryptCost int
}

func NewService(store repo.AccountStore, jwt *helpers.JWTManager, logger *logrus.Logger, otpTTL time.Duration, bcryptCost int) *Service {
	if otpTTL <= 0 {
		otpTTL = time.Hour
	}
	return &Service{
		Store:      store,
		JWT:        jwt,
		Logger:     logger,
		OTPTTL:     otpTTL,
		BcryptCost: bcryptCost,
	}
}

type SignupInput struct {
	Name     string
	Mobile   string
	Email    string
	DOB      string
	Gender   string
	Address  string
	Password string
}

// Signup registers a new unverified account with a pending OTP and returns
// the generated code for the transport layer to hand off.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*entity.Account, string, error) {
	if _, err := s.Store.FindByEmail(ctx, in.Email); err == nil {
		return nil, "", ErrAccountExists
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, "", s.storeErr("signup lookup failed", err)
	}

	hash, err := helpers.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return nil, "", err
	}
	otp, err := helpers.GenOTPCode()
	if err != nil {
		return nil, "", err
	}

	a := &entity.Account{
		Name:     in.Name,
		Mobile:   in.Mobile,
		Email:    in.Email,
		DOB:      in.DOB,
		Gender:   in.Gender,
		Address:  in.Address,
		Password: hash,
	}
	a.SetOTP(otp, time.Now().Add(s.OTPTTL))

	if err := s.Store.Insert(ctx, a); err != nil {
		if errors.Is(err, repo.ErrDuplicateKey) {
			return nil, "", ErrAccountExists
		}
		return nil, "", s.storeErr("signup insert failed", err)
	}
	return a, otp, nil
}

// VerifyOTP confirms a pending signup. The stored code is cleared before the
// session token is issued, so the same code cannot be replayed.
func (s *Service) VerifyOTP(ctx context.Context, mobile, code string) (string, time.Time, error) {
	a, err := s.Store.FindByMobile(ctx, mobile)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", time.Time{}, ErrInvalidMobileOrOTP
		}
		return "", time.Time{}, s.storeErr("verify-otp lookup failed", err)
	}
	if !a.HasPendingOTP() || !helpers.VerifyOTPCode(code, *a.OTP, *a.OTPExpires) {
		return "", time.Time{}, ErrInvalidOTP
	}

	a.ClearOTP()
	if err := s.Store.Save(ctx, a); err != nil {
		return "", time.Time{}, s.storeErr("verify-otp save failed", err)
	}
	return s.JWT.GenerateToken(a.ID.Hex())
}

// Login authenticates by email and password and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (*entity.Account, string, time.Time, error) {
	a, err := s.Store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, s.storeErr("login lookup failed", err)
	}
	if !helpers.CompareHashAndPassword(a.Password, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	token, exp, err := s.JWT.GenerateToken(a.ID.Hex())
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return a, token, exp, nil
}

// ForgotPassword re-arms the account with a fresh OTP for the reset flow.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	a, err := s.Store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrInvalidEmail
		}
		return "", s.storeErr("forgot-password lookup failed", err)
	}
	otp, err := helpers.GenOTPCode()
	if err != nil {
		return "", err
	}
	a.SetOTP(otp, time.Now().Add(s.OTPTTL))
	if err := s.Store.Save(ctx, a); err != nil {
		return "", s.storeErr("forgot-password save failed", err)
	}
	return otp, nil
}

// ResetPassword replaces the password after OTP proof and clears the
// pending state.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	a, err := s.Store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrInvalidEmailOrOTP
		}
		return s.storeErr("reset-password lookup failed", err)
	}
	if !a.HasPendingOTP() || !helpers.VerifyOTPCode(code, *a.OTP, *a.OTPExpires) {
		return ErrInvalidOTP
	}

	hash, err := helpers.HashPassword(newPassword, s.BcryptCost)
	if err != nil {
		return err
	}
	a.Password = hash
	a.ClearOTP()
	if err := s.Store.Save(ctx, a); err != nil {
		return s.storeErr("reset-password save failed", err)
	}
	return nil
}

type UpdateProfileInput struct {
	Name    *string
	Mobile  *string
	DOB     *string
	Gender  *string
	Address *string
}

// UpdateProfile applies the provided fields to the account identified by the
// token subject id.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.Account, error) {
	fields := map[string]interface{}{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Mobile != nil {
		fields["mobile"] = *in.Mobile
	}
	if in.DOB != nil {
		fields["dob"] = *in.DOB
	}
	if in.Gender != nil {
		fields["gender"] = *in.Gender
	}
	if in.Address != nil {
		fields["address"] = *in.Address
	}

	a, err := s.Store.UpdateByID(ctx, userID, fields)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, s.storeErr("profile update failed", err)
	}
	return a, nil
}

// storeErr logs the storage fault server-side and passes it up untouched;
// handlers turn anything non-sentinel into a generic 500.
func (s *Service) storeErr(msg string, err error) error {
	if s.Logger != nil {
		s.Logger.WithError(err).Error(msg)
	}
	return err
}
