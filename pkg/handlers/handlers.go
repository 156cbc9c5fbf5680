package handlers

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/panpaya/siteme-api-go/pkg/auth"
	"github.com/panpaya/siteme-api-go/pkg/database"
	"github.com/panpaya/siteme-api-go/pkg/models"
	"github.com/panpaya/siteme-api-go/pkg/repository"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	DB   *gorm.DB
	Repo *repository.Repository
	Log  *zap.Logger

	// genMu serializes schedule generation. Two overlapping windows
	// regenerating concurrently would race delete against insert.
	genMu sync.Mutex
}

// New wires a Handler from its dependencies.
func New(db *gorm.DB, log *zap.Logger) *Handler {
	return &Handler{
		DB:   db,
		Repo: repository.New(db),
		Log:  log,
	}
}

// AuthMiddleware verifies the JWT token for mutating routes
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Strip "Bearer " if present
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		claims, err := auth.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

// Login handles admin login
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user database.MasterUser
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.CreateToken(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// pagination reads skip/limit query params with the defaults the frontend
// expects.
func pagination(c *gin.Context) (int, int) {
	skip := intQuery(c, "skip", 0)
	limit := intQuery(c, "limit", 100)
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	return skip, limit
}

func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// parseDate validates a YYYY-MM-DD query or body value.
func parseDate(raw string) (time.Time, error) {
	return time.Parse(models.DateLayout, raw)
}
