package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SR-Exam/scheduler-service/internal/services"
	"github.com/SR-Exam/scheduler-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	service services.AuthService
}

func NewAuthHandler(service services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Login signs an operator in
// @Summary Login
// @Description Authenticate by student number or initial and install the session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.LoginRequest true "Credentials"
// @Success 200 {object} services.LoginResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 401 {object} ErrorResponse "Unknown identifier or wrong password"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Login attempt", "identifier", req.Identifier)

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		h.RespondWithError(c, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me returns the signed-in operator.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := h.service.CurrentUser()
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// ChangePassword updates the signed-in operator's password
// @Summary Change password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.ChangePasswordRequest true "Old and new password"
// @Success 204 "Password changed"
// @Failure 400 {object} ErrorResponse "Empty new password"
// @Failure 401 {object} ErrorResponse "No session or wrong old password"
// @Router /auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req services.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Password change requested")

	if err := h.service.ChangePassword(c.Request.Context(), &req); err != nil {
		h.RespondWithError(c, err, "Password change failed")
		return
	}

	c.Status(http.StatusNoContent)
}

// EditRole reassigns a user's role.
func (h *AuthHandler) EditRole(c *gin.Context) {
	bnNumber := c.Param("bn_number")

	var req services.EditRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Role edit requested", "bn_number", bnNumber, "role", req.Role)

	if err := h.service.EditRole(c.Request.Context(), bnNumber, &req); err != nil {
		h.RespondWithError(c, err, "Role edit failed")
		return
	}

	c.Status(http.StatusNoContent)
}

// RemotePassword relays the remote credential lookup used when provisioning a
// first-time account.
func (h *AuthHandler) RemotePassword(c *gin.Context) {
	nim := c.Param("nim")

	password, err := h.service.GetPasswordByNIM(c.Request.Context(), nim)
	if err != nil {
		h.RespondWithError(c, err, "Remote password lookup failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"nim": nim, "password": password})
}
