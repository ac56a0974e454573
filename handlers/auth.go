package handlers

import (
	"net/http"

	"food-ordering-api/auth"
	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SignupRequest struct {
	Name               string      `json:"name" binding:"required"`
	Email              string      `json:"email" binding:"required"`
	Password           string      `json:"password" binding:"required"`
	Role               models.Role `json:"role" binding:"required"`
	Address            string      `json:"address"`
	PhoneNumber        string      `json:"phone_number"`
	PaymentInformation string      `json:"payment_information"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// setSession attaches the session cookie to the response. The token is
// also returned in the body for clients that prefer a bearer header.
func setSession(c *gin.Context, token string) {
	c.SetCookie(middleware.SessionCookie, token, 0, "/", "", false, true)
}

// SignupHandler creates a user account and establishes a session for it.
func SignupHandler(db *gorm.DB, sessions auth.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Missing inputs required"})
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			fail(c, err)
			return
		}
		user := models.User{
			Name:               req.Name,
			Email:              req.Email,
			PasswordHash:       hash,
			Address:            req.Address,
			PhoneNumber:        req.PhoneNumber,
			PaymentInformation: req.PaymentInformation,
			Role:               req.Role,
		}
		if err := models.CreateUser(db, &user); err != nil {
			fail(c, err)
			return
		}

		token, err := sessions.Establish(c.Request.Context(), user.ID)
		if err != nil {
			fail(c, err)
			return
		}
		setSession(c, token)
		logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("user signed up")

		c.JSON(http.StatusCreated, gin.H{"user": user.Profile(), "token": token})
	}
}

// LoginHandler authenticates by email and password.
func LoginHandler(db *gorm.DB, sessions auth.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Missing required fields"})
			return
		}

		user, err := models.FindUserByEmail(db, req.Email)
		if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email or password incorrect"})
			return
		}

		token, err := sessions.Establish(c.Request.Context(), user.ID)
		if err != nil {
			fail(c, err)
			return
		}
		setSession(c, token)
		logrus.WithField("user_id", user.ID).Info("user logged in")

		c.JSON(http.StatusOK, gin.H{"user": user.Profile(), "token": token})
	}
}

// LogoutHandler revokes the session. Revoking an already-invalid token is
// a no-op, so logout always succeeds.
func LogoutHandler(sessions auth.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := middleware.SessionToken(c); token != "" {
			if err := sessions.Revoke(c.Request.Context(), token); err != nil {
				fail(c, err)
				return
			}
		}
		c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
		c.Status(http.StatusNoContent)
	}
}

// CheckSessionHandler returns the current user's profile, or 401 when no
// valid session is attached.
func CheckSessionHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := middleware.CurrentPrincipal(c)
		if p == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "You are not logged in"})
			return
		}
		user, err := models.FindUser(db, p.UserID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, user.Profile())
	}
}
