package validation

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
)

var personNamePattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// FieldError is one violated rule on one form field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

// Rule pairs a validator tag with the message shown when it fails.
type Rule struct {
	Tag     string
	Message string
}

// Validator evaluates rules with go-playground/validator and reports every
// failing rule, not only the first one per field.
type Validator struct {
	v *validator.Validate
}

// New configures the validator.
// - Registers the personname tag (letters and spaces).
// - Registers the pwdbytes tag (byte length, not rune count).
// - Registers alias tags for common semantics.
func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("pwdbytes", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	})
	// Aliases for common semantics
	v.RegisterAlias("pwdmix", "containsany=ABCDEFGHIJKLMNOPQRSTUVWXYZ,containsany=abcdefghijklmnopqrstuvwxyz,containsany=0123456789")
	v.RegisterAlias("pwd", "min=8")
	return &Validator{v: v}
}

// Checker accumulates violations across fields.
type Checker struct {
	v    *validator.Validate
	errs error
}

func (v *Validator) Check() *Checker {
	return &Checker{v: v.v}
}

// Field runs every rule against value and records each failure.
func (c *Checker) Field(name string, value any, rules ...Rule) *Checker {
	for _, r := range rules {
		if err := c.v.Var(value, r.Tag); err != nil {
			c.Fail(name, r.Message)
		}
	}
	return c
}

// Equal records message unless value equals other.
func (c *Checker) Equal(name string, value, other any, message string) *Checker {
	if err := c.v.VarWithValue(value, other, "eqfield"); err != nil {
		c.Fail(name, message)
	}
	return c
}

// Fail records a violation decided by the caller.
func (c *Checker) Fail(name, message string) *Checker {
	c.errs = multierr.Append(c.errs, &FieldError{Field: name, Message: message})
	return c
}

// Err returns nil when no rule failed.
func (c *Checker) Err() error { return c.errs }

// Fields flattens err into its field violations, in the order recorded.
func Fields(err error) []FieldError {
	if err == nil {
		return nil
	}
	all := multierr.Errors(err)
	out := make([]FieldError, 0, len(all))
	for _, e := range all {
		var fe *FieldError
		if errors.As(e, &fe) {
			out = append(out, *fe)
		}
	}
	return out
}
