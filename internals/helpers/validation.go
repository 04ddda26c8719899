package helper

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator. Field errors are keyed by the
// json name and decimal amounts are compared as numbers, so tags like
// gt=0 work on decimal.Decimal.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			switch d := field.Interface().(type) {
			case decimal.Decimal:
				f, _ := d.Float64()
				return f
			case decimal.NullDecimal:
				if !d.Valid {
					return nil
				}
				f, _ := d.Decimal.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{}, decimal.NullDecimal{})
		validate = v
	})
	return validate
}

// FieldErrors flattens validator errors into json field → messages.
func FieldErrors(err error) map[string][]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		msg := fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		out[fe.Field()] = append(out[fe.Field()], msg)
	}
	return out
}

// ValidationError answers 422 for validator errors and 400 otherwise.
func ValidationError(c *fiber.Ctx, err error) error {
	fields := FieldErrors(err)
	if fields == nil {
		return JsonError(c, fiber.StatusBadRequest, "invalid input")
	}
	return JsonValidationError(c, "validation failed", fields)
}

// BindAndValidate parses the body into dst and validates it. On failure the
// error response has already been written and the returned error is the
// handler's return value.
func BindAndValidate(c *fiber.Ctx, dst any) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := Validator().Struct(dst); err != nil {
		return false, ValidationError(c, err)
	}
	return true, nil
}
