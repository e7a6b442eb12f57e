package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yourusername/leaselog/config"
	"github.com/yourusername/leaselog/middleware"
	"github.com/yourusername/leaselog/models"
)

type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		DB:  db,
		Cfg: cfg,
	}
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CompanyName string `json:"company_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Register creates a landlord account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "Failed to hash password")
		return
	}

	user := models.User{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		CompanyName:  req.CompanyName,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email is already registered")
		return
	}

	respondOK(c, http.StatusCreated, user)
}

// Login verifies credentials and issues access and refresh tokens.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}

	if !user.IsActive {
		respondError(c, http.StatusForbidden, "ACCOUNT_INACTIVE", "Account is inactive")
		return
	}

	h.issueTokens(c, &user)
}

// Refresh exchanges a valid refresh token for a fresh token pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	claims := &middleware.Claims{}
	token, err := jwt.ParseWithClaims(req.RefreshToken, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.Cfg.JWTRefreshSecret), nil
	})
	if err != nil || !token.Valid {
		respondError(c, http.StatusUnauthorized, "InvalidToken", "Invalid or expired refresh token")
		return
	}

	var user models.User
	if err := h.DB.First(&user, claims.UserID).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "InvalidToken", "User not found")
		return
	}
	if !user.IsActive {
		respondError(c, http.StatusForbidden, "ACCOUNT_INACTIVE", "Account is inactive")
		return
	}

	h.issueTokens(c, &user)
}

func (h *AuthHandler) issueTokens(c *gin.Context, user *models.User) {
	accessToken, err := middleware.GenerateToken(user.ID, user.Email, h.Cfg.JWTSecret, 15*time.Minute)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "Failed to generate access token")
		return
	}

	refreshToken, err := middleware.GenerateToken(user.ID, user.Email, h.Cfg.JWTRefreshSecret, 7*24*time.Hour)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "Failed to generate refresh token")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          user,
	})
}
