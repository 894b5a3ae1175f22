package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/fintrack-app/fintrack/internal/models"
	"github.com/fintrack-app/fintrack/internal/service"
	"github.com/fintrack-app/fintrack/internal/validation"
)

// Handler holds the API handlers and their dependencies
type Handler struct {
	svc    service.Service
	logger zerolog.Logger
}

// NewHandler creates a new API handler
func NewHandler(svc service.Service, logger zerolog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger,
	}
}

// SetupRoutes registers all API routes on the router
func (h *Handler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/register", h.Register)
		api.POST("/login", h.Login)

		authenticated := api.Group("")
		authenticated.Use(AuthMiddleware())
		{
			authenticated.GET("/verify-token", h.VerifyToken)
			authenticated.DELETE("/users", h.DeleteUser)

			authenticated.GET("/transactions", h.ListTransactions)
			authenticated.POST("/transactions", h.AddTransaction)
			authenticated.PUT("/transactions", h.UpdateTransaction)
			authenticated.DELETE("/transactions", h.DeleteTransaction)
			authenticated.GET("/transactions/analytics", h.Analytics)
		}
	}
}

// Register handles POST /api/register
func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body."})
		return
	}

	if !validation.ValidUsername(req.Username) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid username format."})
		return
	}
	if !validation.ValidPassword(req.Password) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid password format."})
		return
	}

	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "User with such username already exists!"})
			return
		}
		h.storageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /api/login
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body."})
		return
	}

	if !validation.ValidUsername(req.Username) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid username format."})
		return
	}
	if !validation.ValidPassword(req.Password) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid password format."})
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "User with provided username is not found!"})
			return
		}
		if errors.Is(err, service.ErrWrongPassword) {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Invalid password!"})
			return
		}
		h.storageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// VerifyToken handles GET /api/verify-token. Reaching the handler means the
// middleware already accepted the token.
func (h *Handler) VerifyToken(c *gin.Context) {
	c.Status(http.StatusOK)
}

// DeleteUser handles DELETE /api/users
func (h *Handler) DeleteUser(c *gin.Context) {
	user := currentUser(c)

	if err := h.svc.DeleteUser(c.Request.Context(), user.UserID); err != nil {
		if errors.Is(err, service.ErrNothingDeleted) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "User wasn't deleted."})
			return
		}
		h.storageError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

// ListTransactions handles GET /api/transactions
func (h *Handler) ListTransactions(c *gin.Context) {
	user := currentUser(c)

	transactions, err := h.svc.ListTransactions(c.Request.Context(), user.UserID)
	if err != nil {
		h.storageError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// AddTransaction handles POST /api/transactions
func (h *Handler) AddTransaction(c *gin.Context) {
	user := currentUser(c)

	var req models.AddTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid transaction format!"})
		return
	}

	if !validation.ValidTransaction(req.Date, req.Amount, req.Tags) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid transaction format!"})
		return
	}

	transaction, err := h.svc.AddTransaction(c.Request.Context(), user.UserID, req)
	if err != nil {
		h.storageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// UpdateTransaction handles PUT /api/transactions
func (h *Handler) UpdateTransaction(c *gin.Context) {
	user := currentUser(c)

	var req models.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid transaction format!"})
		return
	}

	if !validation.ValidTransaction(req.Date, req.Amount, req.Tags) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid transaction format!"})
		return
	}

	if err := h.svc.UpdateTransaction(c.Request.Context(), user.UserID, req); err != nil {
		h.storageError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

// DeleteTransaction handles DELETE /api/transactions
func (h *Handler) DeleteTransaction(c *gin.Context) {
	user := currentUser(c)

	var req models.DeleteTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body."})
		return
	}

	if err := h.svc.DeleteTransaction(c.Request.Context(), user.UserID, req.TransactionID); err != nil {
		if errors.Is(err, service.ErrNothingDeleted) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Nothing was deleted."})
			return
		}
		h.storageError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

// Analytics handles GET /api/transactions/analytics
func (h *Handler) Analytics(c *gin.Context) {
	user := currentUser(c)

	var q models.AnalyticsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid analytics query."})
		return
	}

	if !validation.ValidDate(q.StartDate) || !validation.ValidDate(q.EndDate) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid date format!"})
		return
	}
	if !validation.ValidTags(q.Tags) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid tags format!"})
		return
	}

	resp, err := h.svc.Analytics(c.Request.Context(), user.UserID, q)
	if err != nil {
		h.storageError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// storageError logs the underlying failure and answers with an opaque 500.
func (h *Handler) storageError(c *gin.Context, err error) {
	h.logger.Error().
		Err(err).
		Str("path", c.Request.URL.Path).
		Msg("storage error")
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Probably database error."})
}
