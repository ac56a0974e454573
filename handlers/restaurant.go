package handlers

import (
	"net/http"

	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateRestaurantRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Cuisine string `json:"cuisine"`
	Menu    string `json:"menu"`
	Rating  string `json:"rating"`
	Reviews string `json:"reviews"`
}

type CreateMenuItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int    `json:"price" binding:"required"`
	Image       string `json:"image" binding:"required"`
}

// CreateRestaurantHandler creates a restaurant. Restaurant-owner only,
// enforced by the route's role gate.
func CreateRestaurantHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRestaurantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Missing inputs required"})
			return
		}
		restaurant := models.Restaurant{
			Name:    req.Name,
			Address: req.Address,
			Cuisine: req.Cuisine,
			Menu:    req.Menu,
			Rating:  req.Rating,
			Reviews: req.Reviews,
		}
		if err := models.CreateRestaurant(db, &restaurant); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, restaurant.Summary())
	}
}

// UpdateRestaurantHandler applies a partial update: only fields present in
// the body change, everything else keeps its prior value.
func UpdateRestaurantHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var patch models.RestaurantPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request body"})
			return
		}
		restaurant, err := models.UpdateRestaurant(db, id, patch)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, restaurant.Summary())
	}
}

// DeleteRestaurantHandler removes a restaurant and its whole subtree.
func DeleteRestaurantHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := models.DeleteRestaurant(db, id); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// CreateMenuItemHandler adds an item to a restaurant's menu.
func CreateMenuItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req CreateMenuItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Missing inputs required"})
			return
		}
		item := models.MenuItem{
			RestaurantID: id,
			Name:         req.Name,
			Description:  req.Description,
			Price:        req.Price,
			Image:        req.Image,
		}
		if err := models.CreateMenuItem(db, &item); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// UpdateMenuItemHandler applies a partial update to a menu item. Invariant
// violations abort the write, leaving the stored row unchanged.
func UpdateMenuItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var patch models.MenuItemPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request body"})
			return
		}
		item, err := models.UpdateMenuItem(db, id, patch)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DeleteMenuItemHandler removes a menu item and its order items.
func DeleteMenuItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := models.DeleteMenuItem(db, id); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
