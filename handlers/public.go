package handlers

import (
	"net/http"
	"strconv"

	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false
	}
	return uint(id), true
}

// ListRestaurantsHandler returns all restaurants as summaries, without
// nested menus or orders.
func ListRestaurantsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurants, err := models.ListRestaurants(db)
		if err != nil {
			fail(c, err)
			return
		}
		summaries := make([]models.RestaurantSummary, 0, len(restaurants))
		for _, r := range restaurants {
			summaries = append(summaries, r.Summary())
		}
		c.JSON(http.StatusOK, summaries)
	}
}

// GetRestaurantHandler returns a single restaurant summary.
func GetRestaurantHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		restaurant, err := models.FindRestaurant(db, id)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, restaurant.Summary())
	}
}

// GetMenuHandler returns the menu items of a restaurant.
func GetMenuHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		restaurant, err := models.FindRestaurant(db, id)
		if err != nil {
			fail(c, err)
			return
		}
		items, err := models.ListMenuItems(db, restaurant.ID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"restaurant_id":   restaurant.ID,
			"restaurant_name": restaurant.Name,
			"menu_items":      items,
		})
	}
}

// RestaurantOrdersHandler returns the orders placed at a restaurant.
func RestaurantOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		restaurant, err := models.FindRestaurant(db, id)
		if err != nil {
			fail(c, err)
			return
		}
		orders, err := models.ListRestaurantOrders(db, restaurant.ID)
		if err != nil {
			fail(c, err)
			return
		}
		summaries := make([]models.OrderSummary, 0, len(orders))
		for _, o := range orders {
			summaries = append(summaries, o.Summary())
		}
		c.JSON(http.StatusOK, gin.H{
			"restaurant_id":   restaurant.ID,
			"restaurant_name": restaurant.Name,
			"orders":          summaries,
		})
	}
}
