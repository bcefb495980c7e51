package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"rideauth/internal/domain"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// SignupRequest is the input of Signup.
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email,emaildomain"`
	Password  string `json:"password" validate:"required,min=6,maxbytes=72"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone" validate:"required,phone"`
	Role      string `json:"role" validate:"omitempty,oneof=rider driver"`
}

// SigninRequest is the input of Signin.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email,emaildomain"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest is the input of UpdateProfile. At least one field
// must be present.
type UpdateProfileRequest struct {
	FirstName      *string `json:"firstName" validate:"omitnil,min=1"`
	LastName       *string `json:"lastName" validate:"omitnil,min=1"`
	Phone          *string `json:"phone" validate:"omitnil,phone"`
	ProfilePicture *string `json:"profilePicture" validate:"omitnil,url"`
}

// ProfileUpdate converts the request into a domain update.
func (r UpdateProfileRequest) ProfileUpdate() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Phone:          r.Phone,
		ProfilePicture: r.ProfilePicture,
	}
}

// Validator checks request structs and renders the first failure as a
// client-facing message.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator with the custom rules registered.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	// bcrypt only accepts passwords up to 72 bytes, whatever their rune count.
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})
	_ = v.RegisterValidation("emaildomain", func(fl validator.FieldLevel) bool {
		return hasDomainSuffix(fl.Field().String())
	})
	return &Validator{validate: v}
}

// hasDomainSuffix reports whether the domain of email has at least two
// non-empty labels, so "a@x.com" passes and "a@x" does not.
func hasDomainSuffix(email string) bool {
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return false
	}
	labels := strings.Split(email[at+1:], ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if label == "" {
			return false
		}
	}
	return true
}

// ValidateSignup validates req and applies the default role.
func (v *Validator) ValidateSignup(req *SignupRequest) error {
	if err := v.check(req); err != nil {
		return err
	}
	if req.Role == "" {
		req.Role = string(domain.RoleRider)
	}
	return nil
}

// ValidateSignin validates req.
func (v *Validator) ValidateSignin(req *SigninRequest) error {
	return v.check(req)
}

// ValidateUpdateProfile validates req and rejects an empty update.
func (v *Validator) ValidateUpdateProfile(req *UpdateProfileRequest) error {
	if req.ProfileUpdate().IsEmpty() {
		return &ValidationError{Message: "at least one of firstName, lastName, phone or profilePicture is required"}
	}
	return v.check(req)
}

func (v *Validator) check(req any) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}
	first := fieldErrs[0]
	return &ValidationError{Field: first.Field(), Message: message(first)}
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "email", "emaildomain":
		return fmt.Sprintf("%q must be a valid email", field)
	case "min":
		if fe.Kind() == reflect.String && fe.Param() == "1" {
			return fmt.Sprintf("%q is not allowed to be empty", field)
		}
		return fmt.Sprintf("%q length must be at least %s characters long", field, fe.Param())
	case "maxbytes":
		return fmt.Sprintf("%q length must be less than or equal to %s bytes long", field, fe.Param())
	case "phone":
		return fmt.Sprintf("%q must be exactly 10 digits", field)
	case "oneof":
		return fmt.Sprintf("%q must be one of [%s]", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url":
		return fmt.Sprintf("%q must be a valid uri", field)
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}
