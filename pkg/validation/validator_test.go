package validation

import (
	"io"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	Apply(v)
	return v
}

func validFields() SignupFields {
	return SignupFields{
		Name:     "Alice Doe",
		Mobile:   "9876543210",
		Email:    "a@b.com",
		DOB:      "1990-01-01",
		Gender:   "female",
		Address:  "1 Main St",
		Password: "secret1",
	}
}

func TestSignupFieldsValid(t *testing.T) {
	v := newValidator(t)
	assert.NoError(t, v.Struct(validFields()))
}

func TestSignupFieldsCollectsAllViolations(t *testing.T) {
	v := newValidator(t)

	err := v.Struct(SignupFields{})
	require.Error(t, err)

	// Every rule is reported, joined in declaration order.
	assert.Equal(t,
		"Name must be between 3 and 50 characters, "+
			"Mobile number must be 10 digits long, "+
			"Invalid email format, "+
			"Invalid date of birth format. Use YYYY-MM-DD, "+
			"Invalid gender, "+
			"Address is required, "+
			"Password must be at least 6 characters long",
		JoinMessages(err))
}

func TestSignupFieldsPerRule(t *testing.T) {
	v := newValidator(t)

	cases := []struct {
		name   string
		mutate func(*SignupFields)
		want   string
	}{
		{"name too short", func(f *SignupFields) { f.Name = "Al" }, "Name must be between 3 and 50 characters"},
		{"mobile too short", func(f *SignupFields) { f.Mobile = "12345" }, "Mobile number must be 10 digits long"},
		{"mobile not digits", func(f *SignupFields) { f.Mobile = "98765x3210" }, "Mobile number must be 10 digits long"},
		{"email without at", func(f *SignupFields) { f.Email = "ab.com" }, "Invalid email format"},
		{"dob wrong layout", func(f *SignupFields) { f.DOB = "01-01-1990" }, "Invalid date of birth format. Use YYYY-MM-DD"},
		{"gender unknown", func(f *SignupFields) { f.Gender = "unknown" }, "Invalid gender"},
		{"password too short", func(f *SignupFields) { f.Password = "abc12" }, "Password must be at least 6 characters long"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validFields()
			tc.mutate(&f)
			err := v.Struct(f)
			require.Error(t, err)
			assert.Equal(t, tc.want, JoinMessages(err))
		})
	}
}

func TestGenderCaseInsensitive(t *testing.T) {
	v := newValidator(t)

	for _, g := range []string{"male", "Male", "FEMALE", "Other", "other"} {
		f := validFields()
		f.Gender = g
		assert.NoError(t, v.Struct(f), "gender %q should be accepted", g)
	}
}

func TestJoinMessagesEmptyBody(t *testing.T) {
	assert.Equal(t, "Request body cannot be empty!", JoinMessages(io.EOF))
	assert.Empty(t, JoinMessages(nil))
}

func TestEmptyProvided(t *testing.T) {
	name := "Alice"
	blank := ""
	spaces := "   "

	got := EmptyProvided([]Field{
		{Name: "name", Value: &name},
		{Name: "mobile", Value: &blank},
		{Name: "dob", Value: nil},
		{Name: "gender", Value: &spaces},
	})
	assert.Equal(t, []string{"mobile", "gender"}, got)

	assert.Nil(t, EmptyProvided([]Field{{Name: "name", Value: &name}}))
	assert.Nil(t, EmptyProvided(nil))
}
