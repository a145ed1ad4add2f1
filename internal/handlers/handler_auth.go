package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/pranavkm07/finance_plan_app/internal/dto"
	"github.com/pranavkm07/finance_plan_app/internal/middleware"
	"github.com/pranavkm07/finance_plan_app/internal/platform/config"
	"github.com/pranavkm07/finance_plan_app/internal/utils"
)

// ErrorResponse is the generic error body returned by handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// authHandler authenticates the single configured user and issues JWTs.
type authHandler struct {
	username     string
	passwordHash string
	jwtSecret    string
	jwtDuration  time.Duration
	jwtIssuer    string
}

func newAuthHandler(cfg *config.Config) *authHandler {
	return &authHandler{
		username:     cfg.AuthUsername,
		passwordHash: cfg.AuthPasswordHash,
		jwtSecret:    cfg.JWTSecret,
		jwtDuration:  cfg.JWTExpiryDuration,
		jwtIssuer:    cfg.JWTIssuer,
	}
}

// registerAuthRoutes sets up the login route, rate limited per client IP.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config) {
	h := newAuthHandler(cfg)

	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)

	auth := r.Group("/api/v1/auth")
	auth.POST("/login", middleware.RateLimit(ipLimiter), h.login)
}

// login authenticates the configured user and returns a signed token.
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	usernameMatch := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.username)) == 1
	if !usernameMatch || !utils.CheckPasswordHash(req.Password, h.passwordHash) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
		return
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    h.jwtIssuer,
		Subject:   h.username,
		ExpiresAt: jwt.NewNumericDate(now.Add(h.jwtDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: signed})
}
