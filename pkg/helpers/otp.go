package helpers

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

// OTP helpers

const otpMin = 100000

// GenOTPCode generates a secure random 6-digit OTP code in [100000, 999999].
func GenOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+otpMin, 10), nil
}

// VerifyOTPCode reports whether candidate matches the stored code and the
// code has not expired. Validity ends at expiresAt exactly: a check at the
// expiry instant fails. Clearing the stored code after a successful check is
// the caller's job.
func VerifyOTPCode(candidate, stored string, expiresAt time.Time) bool {
	return candidate != "" && candidate == stored && time.Now().Before(expiresAt)
}
