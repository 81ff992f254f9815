package api

import (
	"errors"  // Registration failure
	"reflect" // Struct tag access
	"strings" // Tag parsing
	"sync"    // One-time registration

	"creditline/internal/domain" // Status vocabulary

	"github.com/gin-gonic/gin/binding"       // Gin's validator hook
	"github.com/go-playground/validator/v10" // Validation engine
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators adds the custom binding rules to gin's validator. It
// also makes validation errors report JSON field names. Safe to call more
// than once; every call returns the first outcome.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		registerErr = v.RegisterValidation("appstatus", validStatus)
	})
	return registerErr
}

// validStatus accepts only members of the status vocabulary
func validStatus(fl validator.FieldLevel) bool {
	return domain.Status(fl.Field().String()).Valid()
}
