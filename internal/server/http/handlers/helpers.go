package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/deeshop/internal/domain/errors"
	"github.com/polkiloo/deeshop/internal/domain/model"
	"github.com/polkiloo/deeshop/internal/server/http/dto"
	"github.com/polkiloo/deeshop/internal/server/http/middleware"
)

const (
	messageInternalError  = "Internal server error"
	messagePaymentFailed  = "Failed to process payment"
	messageBadCredentials = "Invalid email or password"
	messageUserExists     = "Email has already been registered"
	messageOutOfStock     = "Insufficient stock for one or more items"
	messageForbidden      = "Not authorized"
	messageNotFound       = "Not found"
)

// CurrentPrincipal extracts the authenticated caller from context.
func CurrentPrincipal(c *gin.Context) model.Principal {
	p, _ := middleware.Principal(c)
	return p
}

// errorMessages overrides the default text for a sentinel on one endpoint.
type errorMessages map[error]string

// respondError maps domain errors to status codes. Unexpected errors are
// attached to the context for the request logger and never leak to clients.
func respondError(c *gin.Context, err error, overrides errorMessages) {
	if ve, ok := domainErrors.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: ve.Message, Details: ve.Details})
		return
	}

	status, message := http.StatusInternalServerError, messageInternalError
	var sentinel error
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		status, message, sentinel = http.StatusNotFound, messageNotFound, domainErrors.ErrNotFound
	case errors.Is(err, domainErrors.ErrForbidden):
		status, message, sentinel = http.StatusForbidden, messageForbidden, domainErrors.ErrForbidden
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		status, message, sentinel = http.StatusUnauthorized, messageBadCredentials, domainErrors.ErrInvalidCredentials
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		status, message, sentinel = http.StatusConflict, messageUserExists, domainErrors.ErrAlreadyExists
	case errors.Is(err, domainErrors.ErrInsufficientStock):
		status, message, sentinel = http.StatusConflict, messageOutOfStock, domainErrors.ErrInsufficientStock
	case errors.Is(err, domainErrors.ErrPaymentProcessing):
		_ = c.Error(err)
		status, message = http.StatusInternalServerError, messagePaymentFailed
	default:
		_ = c.Error(err)
	}
	if custom, ok := overrides[sentinel]; ok {
		message = custom
	}
	c.JSON(status, dto.MessageResponse{Message: message})
}

func toDomainAddress(a dto.ShippingAddress) model.ShippingAddress {
	return model.ShippingAddress{
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		Country:    a.Country,
		PostalCode: a.PostalCode,
		Name:       a.Name,
		Phone:      a.Phone,
	}
}

func toAddressResponse(a model.ShippingAddress) dto.ShippingAddress {
	return dto.ShippingAddress{
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		Country:    a.Country,
		PostalCode: a.PostalCode,
		Name:       a.Name,
		Phone:      a.Phone,
	}
}

func toDomainCoupon(c *dto.Coupon) *model.Coupon {
	if c == nil {
		return nil
	}
	return &model.Coupon{Name: c.Name, Discount: decimal.NewFromFloat(c.Discount)}
}

func toCouponResponse(c *model.Coupon) *dto.Coupon {
	if c == nil {
		return nil
	}
	return &dto.Coupon{Name: c.Name, Discount: c.Discount.InexactFloat64()}
}
