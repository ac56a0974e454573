package handlers

import (
	"net/http"

	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AdminDeleteUserHandler removes a user account together with its orders
// and their items. Admin only.
func AdminDeleteUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := models.DeleteUser(db, id); err != nil {
			fail(c, err)
			return
		}
		logrus.WithField("user_id", id).Info("user deleted by admin")
		c.Status(http.StatusNoContent)
	}
}

// AdminListUsersHandler returns all user profiles. Admin only.
func AdminListUsersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		query := db
		if role := c.Query("role"); role != "" {
			query = query.Where("role = ?", role)
		}
		if err := query.Find(&users).Error; err != nil {
			fail(c, err)
			return
		}
		profiles := make([]models.UserProfile, 0, len(users))
		for _, u := range users {
			profiles = append(profiles, u.Profile())
		}
		c.JSON(http.StatusOK, gin.H{"count": len(profiles), "users": profiles})
	}
}
