package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ecodrive/apperror"
	"ecodrive/handlers"
	"ecodrive/utils"
)

const requestIDHeader = "X-Request-ID"

// RequestID propagates the caller's request id or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// Logger writes one access log line per request.
func Logger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString("request_id")),
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("request", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

// Recovery turns a panic into a 500 response.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString("request_id")),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message": apperror.Internal(nil).Message,
			"details": "uri=" + c.Request.URL.Path,
		})
	})
}

// ErrorHandler renders the last error attached by a handler.
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		appErr := apperror.As(c.Errors.Last().Err)
		uri := "uri=" + c.Request.URL.Path

		switch appErr.Kind {
		case apperror.KindNotFound:
			c.JSON(http.StatusNotFound, gin.H{"message": appErr.Message, "details": uri})
		case apperror.KindValidation:
			c.JSON(http.StatusBadRequest, appErr.Fields)
		case apperror.KindInvalidRequest:
			body := gin.H{"message": appErr.Message}
			if appErr.Details != "" {
				body["details"] = appErr.Details
			}
			c.JSON(http.StatusBadRequest, body)
		case apperror.KindConflict:
			c.JSON(http.StatusConflict, gin.H{"message": appErr.Message, "details": appErr.Details})
		case apperror.KindUnauthorized:
			c.JSON(http.StatusUnauthorized, gin.H{"message": appErr.Message})
		default:
			log.Error("unhandled error",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetString("request_id")),
				zap.Error(appErr),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"message": appErr.Message, "details": uri})
		}
	}
}

// AuthMiddleware checks the bearer token and stores the usuario id in the context.
func AuthMiddleware(tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			_ = c.Error(apperror.Unauthorized("Cabeçalho Authorization ausente."))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			_ = c.Error(apperror.Unauthorized("O cabeçalho Authorization deve ter o formato 'Bearer <token>'."))
			c.Abort()
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			_ = c.Error(apperror.Unauthorized("Token de acesso inválido ou expirado."))
			c.Abort()
			return
		}

		c.Set(handlers.ContextUserID, claims.UsuarioID)
		c.Next()
	}
}
