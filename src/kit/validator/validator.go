package validator

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

var addressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("eth_addr_hex", func(fl validator.FieldLevel) bool {
			value, ok := fl.Field().Interface().(string)
			if !ok {
				return false
			}
			return addressPattern.MatchString(value)
		})
	})
	return validate
}

// Verify validates v against its struct tags.
func Verify(v interface{}) error {
	return instance().Struct(v)
}
