package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/deeshop/internal/domain/model"
	"github.com/polkiloo/deeshop/internal/server/http/dto"
	"github.com/polkiloo/deeshop/internal/usecase"
)

// PaymentHandler integrates the card provider and the redirect gateway.
type PaymentHandler struct {
	facade PaymentFacade
}

func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// CreateIntent handles POST /api/orders/create-payment-intent.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req dto.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid payment request"})
		return
	}

	items := make([]model.PaymentItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.PaymentItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	intent, err := h.facade.CreateCardPayment(c.Request.Context(), usecase.CardPaymentInput{
		Items:       items,
		Shipping:    toDomainAddress(req.Shipping),
		Description: req.Description,
		Coupon:      toDomainCoupon(req.Coupon),
	})
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, dto.PaymentIntentResponse{ClientSecret: intent.ClientSecret})
}

// FlutterwaveResponse handles GET /api/orders/response, the gateway's return URL.
func (h *PaymentHandler) FlutterwaveResponse(c *gin.Context) {
	target := h.facade.PaymentRedirect(c.Request.Context(), c.Query("transaction_id"), c.Query("status"))
	c.Redirect(http.StatusFound, target)
}
