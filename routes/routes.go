package routes

import (
	"food-ordering-api/auth"
	"food-ordering-api/handlers"
	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes registers the full HTTP surface. Every request passes the
// session middleware; role gates are applied per route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, sessions auth.Store) {
	r.Use(middleware.Sessions(sessions, db))

	// Auth
	r.POST("/signup", handlers.SignupHandler(db, sessions))
	r.POST("/login", handlers.LoginHandler(db, sessions))
	r.DELETE("/logout", handlers.LogoutHandler(sessions))
	r.GET("/check_session", handlers.CheckSessionHandler(db))

	// Public reads
	r.GET("/restaurants", handlers.ListRestaurantsHandler(db))
	r.GET("/restaurants/:id", handlers.GetRestaurantHandler(db))
	r.GET("/restaurant/:id/menu", handlers.GetMenuHandler(db))
	r.GET("/restaurant/:id/order", handlers.RestaurantOrdersHandler(db))

	// Restaurant owner
	owner := r.Group("/")
	owner.Use(middleware.RoleRequired(models.RoleOwner))
	{
		owner.POST("/restaurants", handlers.CreateRestaurantHandler(db))
		owner.PATCH("/restaurants/:id", handlers.UpdateRestaurantHandler(db))
		owner.DELETE("/restaurants/:id", handlers.DeleteRestaurantHandler(db))
		owner.POST("/restaurant/:id/menu", handlers.CreateMenuItemHandler(db))
		owner.PATCH("/menu/item/:id", handlers.UpdateMenuItemHandler(db))
		owner.DELETE("/menu/item/:id", handlers.DeleteMenuItemHandler(db))
		owner.PATCH("/orders/:id/status", handlers.UpdateOrderStatusHandler(db))
	}

	// Caller's own orders
	r.GET("/user/orders", middleware.AuthRequired(), handlers.UserOrdersHandler(db))
	r.POST("/user/orders", middleware.RoleRequired(models.RoleClient), handlers.PlaceOrderHandler(db))

	// Admin
	admin := r.Group("/admin")
	admin.Use(middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/users", handlers.AdminListUsersHandler(db))
		admin.DELETE("/user/:id", handlers.AdminDeleteUserHandler(db))
	}
}
