package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyReport holds one row per local calendar date (YYYY-MM-DD).
type DailyReport struct {
	ReportDate       string          `json:"report_date" gorm:"primaryKey;size:10"`
	ZReportRun       bool            `json:"z_report_run" gorm:"not null"`
	ZReportTimestamp *time.Time      `json:"z_report_timestamp"`
	TotalOrders      int64           `json:"total_orders"`
	TotalSales       decimal.Decimal `json:"total_sales" gorm:"type:decimal(12,2);not null"`
}
