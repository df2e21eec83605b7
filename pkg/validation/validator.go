package validation

import (
	"errors"
	"io"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Field rules for account data. All rules are checked independently; the
// caller receives every violation at once, joined in declaration order.

var (
	dobPattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
)

var genders = []string{"male", "female", "other"}

// SignupFields is the field bag validated on registration.
type SignupFields struct {
	Name     string `json:"name" binding:"required,min=3,max=50"`
	Mobile   string `json:"mobile" binding:"required,len=10,numeric"`
	Email    string `json:"email" binding:"required,emailish"`
	DOB      string `json:"dob" binding:"required,dobfmt"`
	Gender   string `json:"gender" binding:"required,gender"`
	Address  string `json:"address" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// messages maps each field to its single user-facing violation message.
var messages = map[string]string{
	"name":     "Name must be between 3 and 50 characters",
	"mobile":   "Mobile number must be 10 digits long",
	"email":    "Invalid email format",
	"dob":      "Invalid date of birth format. Use YYYY-MM-DD",
	"gender":   "Invalid gender",
	"address":  "Address is required",
	"password": "Password must be at least 6 characters long",
}

// Init configures the global validator used by Gin's binding.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Apply(v)
	}
}

// Apply registers the tag-name function and custom rules on a validator
// instance. Exposed so tests can validate against a fresh instance.
func Apply(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("emailish", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("dobfmt", func(fl validator.FieldLevel) bool {
		return dobPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, g := range genders {
			if strings.EqualFold(s, g) {
				return true
			}
		}
		return false
	})
}

// JoinMessages converts a binding error into the single joined message the
// API returns. Violations keep field declaration order.
func JoinMessages(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, io.EOF) {
		return "Request body cannot be empty!"
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			if m, ok := messages[fe.Field()]; ok {
				msgs = append(msgs, m)
			} else {
				msgs = append(msgs, fe.Field()+" is invalid")
			}
		}
		return strings.Join(msgs, ", ")
	}
	return "Invalid request body"
}

// Field pairs a field name with its optionally-supplied value, preserving
// the caller's ordering.
type Field struct {
	Name  string
	Value *string
}

// EmptyProvided returns the names of fields that were supplied but empty.
// Absent fields are fine: profile updates are partial.
func EmptyProvided(fields []Field) []string {
	var empty []string
	for _, f := range fields {
		if f.Value != nil && strings.TrimSpace(*f.Value) == "" {
			empty = append(empty, f.Name)
		}
	}
	return empty
}
