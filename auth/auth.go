package auth

import (
	"net/http"

	"coffeeshop/controller"
	"coffeeshop/service"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required"`
	Name     string `form:"name" json:"name" binding:"required"`
}

type loginRequest struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

func Register(accounts *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "A valid email, password and name are required",
				"code":    "VALIDATION_ERROR",
			})
			return
		}

		user, err := accounts.Register(c.Request.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			controller.RespondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "User registered successfully",
			"data": gin.H{
				"user_id": user.ID,
				"email":   user.Email,
				"name":    user.Name,
			},
		})
	}
}

func Login(accounts *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Email and password are required",
				"code":    "VALIDATION_ERROR",
			})
			return
		}

		session, err := accounts.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			controller.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Logged in successfully",
			"data": gin.H{
				"user_id":       session.User.ID,
				"name":          session.User.Name,
				"email":         session.User.Email,
				"token":         "Bearer " + session.AccessToken,
				"access_token":  session.AccessToken,
				"refresh_token": session.RefreshToken,
			},
		})
	}
}

func RefreshToken(accounts *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RefreshToken string `form:"refresh_token" json:"refresh_token" binding:"required"`
		}
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Refresh token is required",
				"code":    "UNAUTHORIZED",
			})
			return
		}

		access, refresh, err := accounts.Refresh(req.RefreshToken)
		if err != nil {
			controller.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"access_token":  access,
			"refresh_token": refresh,
		})
	}
}
