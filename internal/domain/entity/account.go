package entity

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account is the aggregate root for the user domain.
// Passwords are stored as bcrypt hashes in Password field.
type Account struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Mobile   string             `bson:"mobile" json:"mobile"`
	Email    string             `bson:"email" json:"email"`
	DOB      string             `bson:"dob" json:"dob"`
	Gender   string             `bson:"gender" json:"gender"`
	Address  string             `bson:"address" json:"address"`
	Password string             `bson:"password" json:"-"`

	// OTP and OTPExpires are set together while a verification or
	// password reset is pending, and cleared together once it resolves.
	OTP        *string    `bson:"otp,omitempty" json:"-"`
	OTPExpires *time.Time `bson:"otpExpires,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}

// ErrOTPStateInvalid reports a half-set otp/otpExpires pair reaching the
// persistence boundary.
var ErrOTPStateInvalid = errors.New("otp and otpExpires must be set together")

// SetOTP puts the account into a pending-verification state.
func (a *Account) SetOTP(code string, expiresAt time.Time) {
	a.OTP = &code
	a.OTPExpires = &expiresAt
}

// ClearOTP resolves the pending state. Callers clear after any successful
// OTP use so a code cannot be replayed.
func (a *Account) ClearOTP() {
	a.OTP = nil
	a.OTPExpires = nil
}

func (a *Account) HasPendingOTP() bool {
	return a.OTP != nil && a.OTPExpires != nil
}

// CheckOTPState enforces the set-together invariant; the store calls this
// before every write.
func (a *Account) CheckOTPState() error {
	if (a.OTP == nil) != (a.OTPExpires == nil) {
		return ErrOTPStateInvalid
	}
	return nil
}
