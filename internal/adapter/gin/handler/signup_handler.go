package handler

import (
	"errors"
	"net/http"

	"signup-service/internal/usecase/user"
	pkgerrors "signup-service/pkg/errors"
	"signup-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response texts of the sign-up endpoints
const (
	MsgFieldsRequired    = "All fields are required!"
	MsgSignedUp          = "You have successfully signed up!"
	MsgNotifyFailed      = "Sign-up successful, but failed to notify admin."
	MsgTestEmailSent     = "Test email sent successfully!"
	MsgTestEmailFailed   = "Failed to send test email."
	internalErrorMessage = "An internal error occurred"
)

// SignUpHandler handles HTTP requests for sign-up operations
type SignUpHandler struct {
	uc  user.UserUsecase
	log *zap.Logger
}

// NewSignUpHandler creates a new SignUpHandler instance
func NewSignUpHandler(uc user.UserUsecase, log *zap.Logger) *SignUpHandler {
	return &SignUpHandler{
		uc:  uc,
		log: log,
	}
}

// SignUpRequest represents the HTTP request body for signing up, JSON or form encoded
type SignUpRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// UserResponse represents a stored user in the admin listing
type UserResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SignUp handles POST /signup
func (h *SignUpHandler) SignUp(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)

	var req SignUpRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Warn("Invalid sign-up request", zap.Error(err))
		c.String(http.StatusBadRequest, MsgFieldsRequired)
		return
	}

	resp, err := h.uc.SignUp(c.Request.Context(), user.SignUpRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	if !resp.Notified {
		c.String(http.StatusInternalServerError, MsgNotifyFailed)
		return
	}

	c.String(http.StatusOK, MsgSignedUp)
}

// ListUsers handles GET /admin/users
func (h *SignUpHandler) ListUsers(c *gin.Context) {
	resp, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = UserResponse{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			Password: u.Password,
		}
	}

	c.JSON(http.StatusOK, users)
}

// TestEmail handles GET /test-email
func (h *SignUpHandler) TestEmail(c *gin.Context) {
	if err := h.uc.SendTestEmail(c.Request.Context()); err != nil {
		h.handleError(c, err)
		return
	}

	c.String(http.StatusOK, MsgTestEmailSent)
}

// handleError converts usecase errors to HTTP responses
func (h *SignUpHandler) handleError(c *gin.Context, err error) {
	var (
		validationErr *pkgerrors.ValidationError
		deliveryErr   *pkgerrors.DeliveryError
	)

	switch {
	case errors.As(err, &validationErr):
		c.String(http.StatusBadRequest, MsgFieldsRequired)
	case errors.As(err, &deliveryErr):
		c.String(http.StatusInternalServerError, MsgTestEmailFailed)
	default:
		logger.WithContext(c.Request.Context(), h.log).Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: internalErrorMessage,
		})
	}
}
