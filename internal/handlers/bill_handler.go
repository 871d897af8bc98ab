package handler

import (
	"net/http"
	"strconv"

	"arthavidhi-backend/internal/middleware"
	"arthavidhi-backend/internal/models"
	service "arthavidhi-backend/internal/services/bills"

	"github.com/gin-gonic/gin"
)

type BillHandler struct {
	service *service.Service
}

func NewBillHandler(s *service.Service) *BillHandler {
	return &BillHandler{service: s}
}

func (h *BillHandler) Create(c *gin.Context) {
	var payload service.CreateBillInput
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	details, err := h.service.CreateBill(c.Request.Context(), middleware.SessionFrom(c), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": "Bill saved successfully!", "data": details})
}

func (h *BillHandler) List(c *gin.Context) {
	rows, err := h.service.ListBills(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rows})
}

func (h *BillHandler) Get(c *gin.Context) {
	billID, err := billIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bill ID"})
		return
	}

	details, err := h.service.GetBillDetails(c.Request.Context(), middleware.SessionFrom(c), billID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": details})
}

func (h *BillHandler) Update(c *gin.Context) {
	billID, err := billIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bill ID"})
		return
	}

	var payload service.UpdateBillInput
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	details, err := h.service.UpdateBill(c.Request.Context(), middleware.SessionFrom(c), billID, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "Bill updated successfully!", "data": details})
}

func (h *BillHandler) UpdateStatus(c *gin.Context) {
	billID, err := billIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bill ID"})
		return
	}

	var payload struct {
		Status models.BillStatus `json:"status"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := h.service.UpdateBillStatus(c.Request.Context(), billID, payload.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "Bill status updated successfully!"})
}

func (h *BillHandler) Delete(c *gin.Context) {
	billID, err := billIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bill ID"})
		return
	}

	if err := h.service.DeleteBill(c.Request.Context(), billID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "Bill deleted successfully!"})
}

func (h *BillHandler) Dashboard(c *gin.Context) {
	summary, err := h.service.GetDashboardSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"stats":       summary.Stats,
		"recentBills": summary.RecentBills,
	})
}

func billIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("billId"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
