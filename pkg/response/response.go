package response

// Response bodies for the account API. Shapes are part of the public
// contract, so they live here rather than inline in handlers.

// Message is the generic {msg} body used for most outcomes.
type Message struct {
	Msg string `json:"msg"`
}

// Signup carries the registration acknowledgement plus the issued OTP.
// Returning the OTP in the body stands in for an SMS/email delivery channel
// and must not survive into a production deployment unchanged.
type Signup struct {
	Msg string `json:"msg"`
	OTP string `json:"otp"`
}

// Token is returned by OTP verification.
type Token struct {
	Token string `json:"token"`
}

// Login is returned by a successful login.
type Login struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

// ForgotPassword carries the re-issued OTP (same delivery caveat as Signup).
type ForgotPassword struct {
	Msg string `json:"msg"`
	OTP string `json:"otp"`
}

// Status is the {success,message} body used by the user-profile surface.
type Status struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Profile wraps the updated account.
type Profile struct {
	Success bool        `json:"success"`
	User    interface{} `json:"user"`
}
