package assistantcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killjoy47/MniseCosmetics/assistant"
	"github.com/killjoy47/MniseCosmetics/middleware"
)

type askRequest struct {
	Query string `json:"query" binding:"required"`
}

// Ask routes a free-text question to the assistant with the caller's role.
func Ask(engine *assistant.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req askRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "query est requis"})
			return
		}

		answer := engine.Answer(req.Query, middleware.Role(c))
		c.JSON(http.StatusOK, gin.H{"answer": answer})
	}
}
