package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"pos/config"
	"pos/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	svc *service.ReportService
}

func NewReportController(svc *service.ReportService) *ReportController {
	return &ReportController{svc: svc}
}

func (ctl *ReportController) X(c *gin.Context) {
	r, err := ctl.svc.XReport(c.Request.Context())
	if err != nil {
		respondError(c, "XReport", err)
		return
	}
	respondOK(c, "X-Report generated", r)
}

func (ctl *ReportController) ZStatus(c *gin.Context) {
	st, err := ctl.svc.ZStatus(c.Request.Context())
	if err != nil {
		respondError(c, "ZStatus", err)
		return
	}
	respondOK(c, "Z-Report status retrieved", st)
}

func (ctl *ReportController) RunZ(c *gin.Context) {
	r, err := ctl.svc.RunZReport(c.Request.Context())
	if err != nil {
		respondError(c, "RunZReport", err)
		return
	}
	respondOK(c, "Z-Report generated", r)
}

func (ctl *ReportController) ClearZ(c *gin.Context) {
	cleared, err := ctl.svc.ClearZReport(c.Request.Context())
	if err != nil {
		respondError(c, "ClearZReport", err)
		return
	}
	respondOK(c, "Z-Report cleared", gin.H{"cleared": cleared})
}

func (ctl *ReportController) Sales(c *gin.Context) {
	start, end, err := ctl.svc.Window(c.Query("start"), c.Query("end"))
	if err != nil {
		respondError(c, "SalesReport", err)
		return
	}
	r, err := ctl.svc.Sales(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, "SalesReport", err)
		return
	}
	respondOK(c, "Sales report generated", r)
}

func (ctl *ReportController) ExportSales(c *gin.Context) {
	start, end, err := ctl.svc.Window(c.Query("start"), c.Query("end"))
	if err != nil {
		respondError(c, "ExportSales", err)
		return
	}
	r, err := ctl.svc.Sales(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, "ExportSales", err)
		return
	}
	wb, err := service.SalesWorkbook(r)
	if err != nil {
		respondError(c, "ExportSales", err)
		return
	}
	defer wb.Close()

	name := fmt.Sprintf("sales_%s_%s.xlsx", start.Format("20060102"), end.Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := wb.Write(c.Writer); err != nil {
		config.LogError(config.GetLogger(), "controller", "ExportSales", "write workbook",
			gin.H{"request_id": c.GetString("request_id")}, err)
	}
}

func (ctl *ReportController) ProductUsage(c *gin.Context) {
	start, end, err := ctl.svc.Window(c.Query("start"), c.Query("end"))
	if err != nil {
		respondError(c, "ProductUsage", err)
		return
	}
	rows, err := ctl.svc.ProductUsage(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, "ProductUsage", err)
		return
	}
	respondOK(c, "Product usage generated", rows)
}

func (ctl *ReportController) Daily(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, err := ctl.svc.DailyHistory(c.Request.Context(), limit)
	if err != nil {
		respondError(c, "DailyHistory", err)
		return
	}
	respondOK(c, "Daily reports retrieved", rows)
}
