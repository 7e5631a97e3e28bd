package authcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killjoy47/MniseCosmetics/middleware"
	"github.com/killjoy47/MniseCosmetics/models"
	"github.com/killjoy47/MniseCosmetics/store"
)

type loginRequest struct {
	Role     string `json:"role" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type resetRequest struct {
	MasterKey    string `json:"masterKey" binding:"required"`
	NewAdminPwd  string `json:"newAdminPwd"`
	NewSellerPwd string `json:"newSellerPwd"`
}

// Login checks the role's password and hands out a session token.
func Login(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "role et password sont requis"})
			return
		}

		if err := st.Authenticate(req.Role, req.Password); err != nil {
			if errors.Is(err, models.ErrForbidden) {
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Mot de passe incorrect"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur Serveur"})
			return
		}

		token, err := middleware.SignedToken(req.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur Serveur"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "role": req.Role, "token": token})
	}
}

// ResetPassword overwrites the admin and/or seller passwords, gated by the
// master key. A wrong key leaves both untouched.
func ResetPassword(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req resetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "masterKey est requis"})
			return
		}

		if err := st.ResetCredentials(req.MasterKey, req.NewAdminPwd, req.NewSellerPwd); err != nil {
			if errors.Is(err, models.ErrForbidden) {
				c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Code Master incorrect"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur Serveur"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Mots de passe mis à jour"})
	}
}
