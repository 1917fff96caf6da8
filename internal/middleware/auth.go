package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/medagenda/internal/auth"
	"github.com/BruksfildServices01/medagenda/internal/domain/access"
	"github.com/BruksfildServices01/medagenda/internal/domain/account"
	"github.com/BruksfildServices01/medagenda/internal/httperr"
)

const ContextActor = "actor"

func AuthMiddleware(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Credenciais não informadas.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Cabeçalho de autorização inválido.")
			c.Abort()
			return
		}

		claims, err := issuer.Parse(strings.TrimSpace(parts[1]), auth.TypeAccess)
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Token inválido ou expirado.")
			c.Abort()
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			httperr.Unauthorized(c, "invalid_token_payload", "Token inválido.")
			c.Abort()
			return
		}

		role, err := account.ParseRole(claims.Role)
		if err != nil {
			httperr.Unauthorized(c, "invalid_token_payload", "Token inválido.")
			c.Abort()
			return
		}

		c.Set(ContextActor, access.Actor{UserID: userID, Role: role})
		c.Next()
	}
}

// ActorFrom returns the caller set by AuthMiddleware.
func ActorFrom(c *gin.Context) access.Actor {
	if v, ok := c.Get(ContextActor); ok {
		if a, ok := v.(access.Actor); ok {
			return a
		}
	}
	return access.Actor{}
}
