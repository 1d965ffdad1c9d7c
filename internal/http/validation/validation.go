// Package validation binds form posts and turns validator failures into
// per-field messages keyed by the form field name.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldErrors maps form field -> message. "_" holds a form-level message.
type FieldErrors map[string]string

var once sync.Once

// Bind decodes the request into dst and validates it. It returns nil when the
// input is acceptable; dst is filled as far as decoding got either way.
func Bind(c *gin.Context, dst any) FieldErrors {
	once.Do(useFormNames)
	if err := c.ShouldBind(dst); err != nil {
		return fieldErrors(err)
	}
	return nil
}

// useFormNames makes validator report fields by their form tag so messages
// line up with the inputs that produced them.
func useFormNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"form", "json"} {
			name, _, _ := strings.Cut(f.Tag.Get(key), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return strings.ToLower(f.Name)
	})
}

func fieldErrors(err error) FieldErrors {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return FieldErrors{"_": "The submitted form is invalid."}
	}
	out := make(FieldErrors, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = message(fe.Tag(), fe.Param())
	}
	return out
}

func message(tag, param string) string {
	switch tag {
	case "required":
		return "This field is required."
	case "oneof":
		return "Choose one of: " + strings.ReplaceAll(param, " ", ", ") + "."
	case "min":
		return "Must be at least " + param + " characters."
	case "max":
		return "Must be at most " + param + " characters."
	default:
		return "Invalid value."
	}
}
