package devbackend

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// fieldErrors is the serializer error body: field name to messages.
type fieldErrors map[string][]string

type payloadValidator struct {
	v *validator.Validate
}

func newPayloadValidator() *payloadValidator {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	return &payloadValidator{v: v}
}

// check validates payload and renders failures the way the serializers do.
func (p *payloadValidator) check(payload any) fieldErrors {
	err := p.v.Struct(payload)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fieldErrors{"non_field_errors": {err.Error()}}
	}
	out := fieldErrors{}
	for _, fe := range ve {
		out[fe.Field()] = append(out[fe.Field()], serializerMessage(fe))
	}
	return out
}

func serializerMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		return "This field may not be blank."
	case "max":
		return "Ensure this field has no more than " + fe.Param() + " characters."
	case "gte":
		return "Ensure this value is greater than or equal to " + fe.Param() + "."
	case "lt":
		return "Ensure that there are no more than 8 digits in total."
	case "email":
		return "Enter a valid email address."
	default:
		return "Invalid value."
	}
}

type loginPayload struct {
	Username *string `json:"username" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

type refreshPayload struct {
	Refresh *string `json:"refresh" validate:"required"`
}

type registerPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type profilePayload struct {
	Username        string `json:"username"         validate:"omitempty,max=150"`
	FirstName       string `json:"first_name"       validate:"omitempty,max=150"`
	LastName        string `json:"last_name"        validate:"omitempty,max=150"`
	Email           string `json:"email"            validate:"omitempty,email"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type productPayload struct {
	Name         *string          `json:"name"          validate:"required,min=1,max=200"`
	Price        *decimal.Decimal `json:"price"         validate:"required,lt=1000000"`
	Quantity     *int             `json:"quantity"      validate:"required,gte=0"`
	SoldQuantity *int             `json:"sold_quantity" validate:"omitempty,gte=0"`
	Category     *int64           `json:"category"`
}

type categoryPayload struct {
	Name        *string `json:"name"        validate:"required,min=1,max=100"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"        validate:"omitempty,max=50"`
}
