package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mishimakazuya625-eng/as-erp-report/internal/scm/repository"
	"github.com/mishimakazuya625-eng/as-erp-report/internal/scm/service"
)

type MasterHandler struct {
	svc *service.MasterService
}

func NewMasterHandler(svc *service.MasterService) *MasterHandler {
	return &MasterHandler{svc: svc}
}

// FilterOptions 分析过滤项：客户、基地、可选订单状态
func (h *MasterHandler) FilterOptions(c *gin.Context) {
	customers, err := h.svc.ListCustomers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": err.Error()})
		return
	}
	sites, err := h.svc.ListPlantSites()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{
		"customers": customers,
		"sites":     sites,
		"statuses":  h.svc.AnalysisStatuses(),
	}})
}

func (h *MasterHandler) ListProducts(c *gin.Context) {
	products, err := h.svc.ListProducts(c.QueryArray("customer"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": products})
}

func (h *MasterHandler) ListPlantSites(c *gin.Context) {
	sites, err := h.svc.ListPlantSites()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": sites})
}

func (h *MasterHandler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	orders, total, err := h.svc.ListOrders(repository.OrderListParams{
		Status:  c.Query("status"),
		PN:      c.Query("pn"),
		Keyword: c.Query("keyword"),
		Page:    page,
		Size:    size,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"items": orders, "total": total, "page": page, "size": size}})
}
