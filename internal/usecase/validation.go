package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	domainErrors "github.com/polkiloo/deeshop/internal/domain/errors"
	"github.com/polkiloo/deeshop/internal/domain/model"
)

// MessageOrderDataMissing is the client-facing message for rejected orders.
const MessageOrderDataMissing = "Order data missing!"

// newValidator returns a validator reporting json field names and knowing
// the shop's enumerations.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
		return model.OrderStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		return model.PaymentMethod(fl.Field().String()).Valid()
	})
	return v
}

// fieldErrors converts validator output to domain validation details.
// Any other error is returned unchanged in the second result.
func fieldErrors(err error) ([]domainErrors.ValidationDetail, error) {
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	details := make([]domainErrors.ValidationDetail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, domainErrors.ValidationDetail{Field: fieldPath(fe), Message: describe(fe)})
	}
	return details, nil
}

// fieldPath drops the top-level struct name: "CreateOrderInput.cartItems" -> "cartItems".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "order_status":
		return "is not a known order status"
	case "payment_method":
		return "is not a supported payment method"
	default:
		return "is invalid"
	}
}
