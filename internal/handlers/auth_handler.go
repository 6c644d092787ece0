package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "budgetboard/internal/errors"
	"budgetboard/internal/middleware"
	"budgetboard/internal/services"
)

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService services.UserServicer, auditService services.AuditServicer) *AuthHandler {
	return &AuthHandler{userService: userService, auditService: auditService}
}

// RegisterRequest represents the registration request payload.
type RegisterRequest struct {
	UserID   string `json:"userid" binding:"required,userid"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Email    string `json:"email" binding:"omitempty,email,max=255"`
	FullName string `json:"full_name" binding:"max=100"`
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	UserID   string `json:"userid" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the authentication response with token.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Register handles user registration. The new user gets a credential record
// and a pre-populated twelve-month ledger.
// @Summary     Register a new user
// @Description Register a new user with userid and password
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "User registration data"
// @Success     200 {object} AuthResponse "User registered"
// @Failure     400 {object} ErrorResponse "Invalid input or userid taken"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req.UserID, req.Password, req.Email, req.FullName)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.auditService.Log(user.UserID, "REGISTER", "user", c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{
		"message": "User registered successfully",
		"token":   token,
	})
}

// Login handles user login.
// @Summary     Login user
// @Description Authenticate a user and get a token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User login credentials"
// @Success     200 {object} AuthResponse "User authenticated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.AttemptLogin(c.Request.Context(), req.UserID, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
	})
}
