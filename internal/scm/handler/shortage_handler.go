package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mishimakazuya625-eng/as-erp-report/internal/scm/service"
)

type ShortageHandler struct {
	svc    *service.ShortageService
	export *service.ExportService
}

func NewShortageHandler(svc *service.ShortageService, export *service.ExportService) *ShortageHandler {
	return &ShortageHandler{svc: svc, export: export}
}

type runRequest struct {
	Customers      []string `json:"customers"`
	Statuses       []string `json:"statuses" binding:"required"`
	IncludeBlocked bool     `json:"include_blocked"`
}

// Run 执行缺料分析。计算是同步阻塞的，大数据集下可能需要数分钟
func (h *ShortageHandler) Run(c *gin.Context) {
	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	userID := c.GetString("user_id")

	run, result, err := h.svc.Run(c.Request.Context(),
		service.Filters{Customers: req.Customers, Statuses: req.Statuses},
		service.Options{IncludeBlocked: req.IncludeBlocked},
		userID,
	)
	if err != nil {
		if errors.Is(err, service.ErrNoStatusFilter) {
			c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"run": run, "result": result}})
}

func (h *ShortageHandler) GetRun(c *gin.Context) {
	run, err := h.svc.GetRun(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "analysis run not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": run})
}

func (h *ShortageHandler) ListRuns(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	runs, total, err := h.svc.ListRuns(page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"items": runs, "total": total, "page": page, "size": size}})
}

// GetReport 取报表，id 为 latest 时取最近一次运行
func (h *ShortageHandler) GetReport(c *gin.Context) {
	runID := c.Param("id")
	if runID == "latest" {
		run, err := h.svc.GetLatestRun()
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "no analysis run yet"})
			return
		}
		runID = run.ID
	}
	result, err := h.svc.GetReport(c.Request.Context(), runID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": result})
}

// ExportWorkbook 导出三张报表的xlsx工作簿
func (h *ShortageHandler) ExportWorkbook(c *gin.Context) {
	result, err := h.svc.GetReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": err.Error()})
		return
	}
	f, filename, err := h.export.Workbook(result)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

// ExportCSV 单张报表CSV导出，report=r1|r2|r3，encoding=euckr 时输出EUC-KR
func (h *ShortageHandler) ExportCSV(c *gin.Context) {
	result, err := h.svc.GetReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": err.Error()})
		return
	}
	report := c.DefaultQuery("report", "r1")
	eucKR := c.Query("encoding") == "euckr"
	data, filename, err := h.export.CSV(result, report, eucKR)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// Archive 工作簿归档到对象存储
func (h *ShortageHandler) Archive(c *gin.Context) {
	objectName, err := h.export.Archive(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"object": objectName}})
}
