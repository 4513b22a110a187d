package validators

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register adds the custom tags to gin's validator so they can be used in
// binding struct tags. Safe to call more than once.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}

	if err := v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return PasswordValidator(fl.Field().String()) == nil
	}); err != nil {
		return err
	}

	return v.RegisterValidation("mail", func(fl validator.FieldLevel) bool {
		return EmailValidator(fl.Field().String()) == nil
	})
}

// InvalidField returns the name of the first field that failed validation in
// the same casing the JSON body uses, or an empty string if err isn't a
// validation error
func InvalidField(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return ""
	}

	f := verrs[0].Field()
	if f == "" {
		return ""
	}

	return strings.ToLower(f[:1]) + f[1:]
}
