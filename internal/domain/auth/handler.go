package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homekeeper/internal/pkg/response"
)

// Handler manages account creation and sign-in
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Signup creates an account.
// @Summary		Sign up
// @Description	Creates an identity and initializes default preferences.
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		body	body	SignupRequest	true	"payload"
// @Success		200	{object}	SignupResponse
// @Router		/signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, err := h.service.Signup(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, "Failed to create user")
		return
	}

	c.JSON(http.StatusOK, SignupResponse{Success: true, UserID: userID})
}

// Login exchanges credentials for a bearer token.
// @Summary		Log in
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		body	body	LoginRequest	true	"payload"
// @Success		200	{object}	LoginResponse
// @Router		/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, resp)
}
