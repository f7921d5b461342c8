package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupPayload struct {
	Name     string `json:"name" binding:"required,min=2,max=50,alphaspace"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,userpwd"`
	Age      *int   `json:"age" binding:"omitempty,gte=0,lte=150"`
}

func engine(t *testing.T) *validator.Validate {
	t.Helper()
	Init()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	return v
}

func TestValidPayload(t *testing.T) {
	v := engine(t)
	age := 30
	err := v.Struct(signupPayload{Name: "John Doe", Email: "john@example.com", Password: "Password123", Age: &age})
	assert.NoError(t, err)
}

func TestFieldErrorsUseJSONNames(t *testing.T) {
	v := engine(t)
	err := v.Struct(signupPayload{Name: "J0hn!", Email: "not-an-email", Password: "short"})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
	assert.Equal(t, "must be a valid email address", details["email"])
	assert.Equal(t, "can only contain letters and spaces", details["name"])
}

func TestPasswordRule(t *testing.T) {
	v := engine(t)
	cases := []struct {
		password string
		ok       bool
	}{
		{"Password123", true},
		{"alllowercase1", false},
		{"ALLUPPERCASE1", false},
		{"NoDigitsHere", false},
		{"Ab1", false},
	}
	for _, tc := range cases {
		err := v.Struct(signupPayload{Name: "John Doe", Email: "john@example.com", Password: tc.password})
		if tc.ok {
			assert.NoError(t, err, "password %q", tc.password)
		} else {
			assert.Error(t, err, "password %q", tc.password)
		}
	}
}

func TestAgeBounds(t *testing.T) {
	v := engine(t)
	for _, tc := range []struct {
		age int
		ok  bool
	}{
		{0, true},
		{150, true},
		{-1, false},
		{151, false},
	} {
		age := tc.age
		err := v.Struct(signupPayload{Name: "John Doe", Email: "john@example.com", Password: "Password123", Age: &age})
		if tc.ok {
			assert.NoError(t, err, "age %d", tc.age)
		} else {
			assert.Error(t, err, "age %d", tc.age)
		}
	}
}

func TestToDetailsFallbacks(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(assert.AnError))
}
