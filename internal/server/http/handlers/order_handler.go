package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/deeshop/internal/domain/errors"
	"github.com/polkiloo/deeshop/internal/domain/model"
	"github.com/polkiloo/deeshop/internal/server/http/dto"
	"github.com/polkiloo/deeshop/internal/usecase"
)

var orderErrors = errorMessages{
	domainErrors.ErrNotFound:  "Order not found!",
	domainErrors.ErrForbidden: "You are not authorized to view order!",
}

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: usecase.MessageOrderDataMissing})
		return
	}

	in, err := toCreateOrderInput(req)
	if err != nil {
		respondError(c, err, orderErrors)
		return
	}

	if _, err := h.facade.PlaceOrder(c.Request.Context(), CurrentPrincipal(c), in); err != nil {
		respondError(c, err, orderErrors)
		return
	}

	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Your order has been created!"})
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentPrincipal(c))
	if err != nil {
		respondError(c, err, orderErrors)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), CurrentPrincipal(c), c.Param("id"))
	if err != nil {
		respondError(c, err, orderErrors)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// UpdateStatus handles PATCH /api/orders/:id.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Please add an order status"})
		return
	}

	if err := h.facade.UpdateOrderStatus(c.Request.Context(), c.Param("id"), model.OrderStatus(req.OrderStatus)); err != nil {
		respondError(c, err, orderErrors)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "The order status has been updated!"})
}

func toCreateOrderInput(req dto.CreateOrderRequest) (usecase.CreateOrderInput, error) {
	in := usecase.CreateOrderInput{
		OrderDate:     req.OrderDate,
		OrderTime:     req.OrderTime,
		Amount:        req.OrderAmount,
		Status:        model.OrderStatus(req.OrderStatus),
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
		Coupon:        toDomainCoupon(req.Coupon),
	}
	if req.ShippingAddress != nil {
		addr := toDomainAddress(*req.ShippingAddress)
		in.ShippingAddress = &addr
	}

	var details []domainErrors.ValidationDetail
	for i, item := range req.CartItems {
		id, err := uuid.Parse(item.ProductID)
		if err != nil {
			details = append(details, domainErrors.ValidationDetail{
				Field: fmt.Sprintf("cartItems[%d].productId", i), Message: "is not a valid product id",
			})
			continue
		}
		in.CartItems = append(in.CartItems, model.CartItem{
			ProductID: id,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	if len(details) > 0 {
		return in, domainErrors.NewValidationError(usecase.MessageOrderDataMissing, details...)
	}
	return in, nil
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	items := make([]dto.CartItemResponse, 0, len(o.CartItems))
	for _, item := range o.CartItems {
		items = append(items, dto.CartItemResponse{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price.InexactFloat64(),
		})
	}
	return dto.OrderResponse{
		ID:              o.ID.String(),
		User:            o.UserID,
		OrderDate:       o.OrderDate,
		OrderTime:       o.OrderTime,
		OrderAmount:     o.Amount.InexactFloat64(),
		OrderStatus:     string(o.Status),
		CartItems:       items,
		ShippingAddress: toAddressResponse(o.ShippingAddress),
		PaymentMethod:   string(o.PaymentMethod),
		Coupon:          toCouponResponse(o.Coupon),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
