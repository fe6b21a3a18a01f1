package server

import (
	"reflect"
	"strings"
	"sync"

	"charscope/internal/charclass"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidations adds the custom tags used by request structs to gin's
// validator engine and reports field names by their JSON key.
func registerValidations() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(jsonFieldName)
			_ = v.RegisterValidation("notblank", notBlank)
		}
	})
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

// notBlank fails for strings made only of whitespace.
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimFunc(fl.Field().String(), charclass.IsWhitespace) != ""
}
