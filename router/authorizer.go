package router

import (
	"net/http"

	"streampass/controllers"
	"streampass/models"

	"github.com/gin-gonic/gin"
)

// Authorizer bloqueia operadores bloqueados nas rotas protegidas.
func Authorizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := controllers.GetUserLogged(c)
		if !ok {
			controllers.RespondError(c, "unauthorized", http.StatusUnauthorized)
			c.Abort()
			return
		}

		if user.Status == models.USER_STATUS_BLOCKED {
			controllers.RespondError(c, "sem acesso ao painel", http.StatusForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}
