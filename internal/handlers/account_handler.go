package handler

import (
	"net/http"

	"arthavidhi-backend/internal/middleware"
	service "arthavidhi-backend/internal/services/account"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	service *service.Service
}

func NewAccountHandler(s *service.Service) *AccountHandler {
	return &AccountHandler{service: s}
}

func (h *AccountHandler) Register(c *gin.Context) {
	var payload service.RegisterInput
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	user, err := h.service.Register(c.Request.Context(), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": "User created successfully!", "data": user})
}

func (h *AccountHandler) Login(c *gin.Context) {
	var payload service.LoginInput
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	token, user, err := h.service.Login(c.Request.Context(), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "Login successful!", "token": token, "data": user})
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	details, err := h.service.GetAccountDetails(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": details})
}

func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var payload service.ProfileInput
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := h.service.UpdateProfile(c.Request.Context(), middleware.SessionFrom(c), payload); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "Profile updated successfully!"})
}

func (h *AccountHandler) UpdatePassword(c *gin.Context) {
	var payload service.PasswordInput
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := h.service.UpdatePassword(c.Request.Context(), middleware.SessionFrom(c), payload); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "Password updated successfully!"})
}

func (h *AccountHandler) GetCompany(c *gin.Context) {
	company := h.service.GetCompanyDetails(c.Request.Context(), middleware.SessionFrom(c))
	c.JSON(http.StatusOK, gin.H{"success": true, "data": company})
}

func (h *AccountHandler) UpsertCompany(c *gin.Context) {
	var payload service.CompanyInput
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := h.service.UpsertCompany(c.Request.Context(), middleware.SessionFrom(c), payload); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "Company details saved successfully!"})
}
