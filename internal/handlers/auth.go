package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-backoffice/internal/auth"
	"rental-backoffice/internal/middleware"
	"rental-backoffice/internal/models"
	"rental-backoffice/internal/store"
)

// AuthHandler serves registration, login and profile lookup.
type AuthHandler struct {
	users *store.UserStore
	jwt   *auth.Manager
}

func NewAuthHandler(users *store.UserStore, jwt *auth.Manager) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwt}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid registration payload")
		return
	}

	existing, err := h.users.FindByPhone(c.Request.Context(), req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, apiResponse{Success: false, Message: "User already exists with this phone"})
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	user := &models.User{
		Name:     req.Name,
		Phone:    req.Phone,
		Password: hashed,
		Role:     models.RoleOwner,
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, "User registered successfully", user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid login payload")
		return
	}

	user, err := h.users.FindByPhone(c.Request.Context(), req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil || !auth.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, apiResponse{Success: false, Message: "Invalid credentials"})
		return
	}

	token, err := h.jwt.GenerateJWT(user.ID, string(user.Role))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "Login successful", loginResponse{User: user, Token: token})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apiResponse{Success: false, Message: "Missing claims"})
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "Profile retrieved successfully", user)
}
