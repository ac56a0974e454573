package handlers

import (
	"net/http"
	"time"

	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PlaceOrderRequest struct {
	RestaurantID    uint               `json:"restaurant_id" binding:"required"`
	TotalPrice      int                `json:"total_price" binding:"required"`
	DeliveryAddress string             `json:"delivery_address" binding:"required"`
	DeliveryTime    *time.Time         `json:"delivery_time"`
	Items           []models.OrderLine `json:"items"`
}

type OrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UserOrdersHandler returns the caller's own orders: 401 without a
// session, 404 when none exist.
func UserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := middleware.CurrentPrincipal(c)
		orders, err := models.ListUserOrders(db, p.UserID)
		if err != nil {
			fail(c, err)
			return
		}
		if len(orders) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "No orders found for this user"})
			return
		}
		summaries := make([]models.OrderSummary, 0, len(orders))
		for _, o := range orders {
			summaries = append(summaries, o.Summary())
		}
		c.JSON(http.StatusOK, gin.H{"user_id": p.UserID, "orders": summaries})
	}
}

// PlaceOrderHandler creates an order for the calling client. The initial
// status is always Pending; the caller cannot choose it.
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := middleware.CurrentPrincipal(c)
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Missing inputs required"})
			return
		}
		order := models.Order{
			UserID:          p.UserID,
			RestaurantID:    req.RestaurantID,
			TotalPrice:      req.TotalPrice,
			DeliveryAddress: req.DeliveryAddress,
		}
		if req.DeliveryTime != nil {
			order.DeliveryTime = *req.DeliveryTime
		}
		if err := models.CreateOrder(db, &order, req.Items); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// UpdateOrderStatusHandler lets a restaurant owner complete or cancel a
// pending order.
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req OrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Missing inputs required"})
			return
		}
		order, err := models.UpdateOrderStatus(db, id, req.Status)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, order.Summary())
	}
}
