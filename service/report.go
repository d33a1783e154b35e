package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pos/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	usageTopN      = 10
	maxReportRange = 92 * 24 * time.Hour
)

type ReportService struct {
	db    *gorm.DB
	clock Clock
}

func NewReportService(db *gorm.DB, clock Clock) *ReportService {
	return &ReportService{db: db, clock: clock}
}

type HourlyBucket struct {
	Hour  string          `json:"hour"`
	Sales decimal.Decimal `json:"sales"`
}

type XReport struct {
	Date   string          `json:"date"`
	Closed bool            `json:"closed"`
	Total  decimal.Decimal `json:"total"`
	Hourly []HourlyBucket  `json:"hourly"`
}

type ZReport struct {
	Date             string          `json:"date"`
	TotalOrders      int64           `json:"total_orders"`
	TotalSales       decimal.Decimal `json:"total_sales"`
	ZReportTimestamp time.Time       `json:"z_report_timestamp"`
	Hourly           []HourlyBucket  `json:"hourly"`
}

type ZStatus struct {
	Date             string          `json:"date"`
	ZReportRun       bool            `json:"z_report_run"`
	ZReportTimestamp *time.Time      `json:"z_report_timestamp"`
	TotalOrders      int64           `json:"total_orders"`
	TotalSales       decimal.Decimal `json:"total_sales"`
}

type SalesReport struct {
	Start      time.Time       `json:"start"`
	End        time.Time       `json:"end"`
	Orders     int64           `json:"orders"`
	TotalSales decimal.Decimal `json:"total_sales"`
	Series     []HourlyBucket  `json:"series"`
}

type UsageRow struct {
	InventoryID uint   `json:"inventory_id"`
	Name        string `json:"name"`
	Used        int64  `json:"used"`
}

func ordersBetween(db *gorm.DB, start, end time.Time) ([]model.Order, error) {
	var orders []model.Order
	err := db.Where("placed_at >= ? AND placed_at < ?", start.UTC(), end.UTC()).
		Order("placed_at, id").
		Find(&orders).Error
	return orders, err
}

// hourlyToday sums order cost into 24 buckets by local hour of day.
func (s *ReportService) hourlyToday(orders []model.Order) ([]HourlyBucket, decimal.Decimal) {
	sums := make([]decimal.Decimal, 24)
	total := decimal.Zero
	for _, o := range orders {
		h := o.PlacedAt.In(s.clock.loc()).Hour()
		sums[h] = sums[h].Add(o.Cost)
		total = total.Add(o.Cost)
	}
	buckets := make([]HourlyBucket, 24)
	for h := range buckets {
		buckets[h] = HourlyBucket{Hour: fmt.Sprintf("%02d:00", h), Sales: sums[h]}
	}
	return buckets, total
}

func (s *ReportService) dailyReport(db *gorm.DB, date string) (*model.DailyReport, error) {
	var rows []model.DailyReport
	if err := db.Where("report_date = ?", date).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// HourlySales returns today's live sales per hour, ignoring the Z-Report flag.
func (s *ReportService) HourlySales(ctx context.Context) ([]HourlyBucket, error) {
	_, start, end := s.clock.Today()
	orders, err := ordersBetween(s.db.WithContext(ctx), start, end)
	if err != nil {
		return nil, err
	}
	buckets, _ := s.hourlyToday(orders)
	return buckets, nil
}

// XReport is the running day total. Once today's Z-Report has run it reports a closed,
// all-zero day.
func (s *ReportService) XReport(ctx context.Context) (*XReport, error) {
	date, start, end := s.clock.Today()
	db := s.db.WithContext(ctx)

	daily, err := s.dailyReport(db, date)
	if err != nil {
		return nil, err
	}
	if daily != nil && daily.ZReportRun {
		zero, _ := s.hourlyToday(nil)
		return &XReport{Date: date, Closed: true, Total: decimal.Zero, Hourly: zero}, nil
	}

	orders, err := ordersBetween(db, start, end)
	if err != nil {
		return nil, err
	}
	hourly, total := s.hourlyToday(orders)
	return &XReport{Date: date, Closed: false, Total: total, Hourly: hourly}, nil
}

// RunZReport closes the day. Everything happens in one transaction; a second run on the
// same date fails with ErrConflict, including when two runs race.
func (s *ReportService) RunZReport(ctx context.Context) (*ZReport, error) {
	date, start, end := s.clock.Today()
	now := s.clock.now().UTC()

	var report ZReport
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		daily, err := s.dailyReport(tx, date)
		if err != nil {
			return err
		}
		if daily != nil && daily.ZReportRun {
			return fmt.Errorf("%w: z-report already run today (%s)", ErrConflict, date)
		}

		orders, err := ordersBetween(tx, start, end)
		if err != nil {
			return err
		}
		hourly, total := s.hourlyToday(orders)

		row := model.DailyReport{
			ReportDate:       date,
			ZReportRun:       true,
			ZReportTimestamp: &now,
			TotalOrders:      int64(len(orders)),
			TotalSales:       total,
		}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "report_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"z_report_run", "z_report_timestamp", "total_orders", "total_sales"}),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Eq{Column: clause.Column{Table: "daily_reports", Name: "z_report_run"}, Value: false},
			}},
		}).Create(&row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: z-report already run today (%s)", ErrConflict, date)
		}

		report = ZReport{
			Date:             date,
			TotalOrders:      row.TotalOrders,
			TotalSales:       total,
			ZReportTimestamp: now,
			Hourly:           hourly,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *ReportService) ZStatus(ctx context.Context) (*ZStatus, error) {
	date, _, _ := s.clock.Today()
	daily, err := s.dailyReport(s.db.WithContext(ctx), date)
	if err != nil {
		return nil, err
	}
	status := &ZStatus{Date: date, TotalSales: decimal.Zero}
	if daily != nil {
		status.ZReportRun = daily.ZReportRun
		status.ZReportTimestamp = daily.ZReportTimestamp
		status.TotalOrders = daily.TotalOrders
		status.TotalSales = daily.TotalSales
	}
	return status, nil
}

// ClearZReport deletes today's daily report row, reopening the day. It reports whether a
// row was removed.
func (s *ReportService) ClearZReport(ctx context.Context) (bool, error) {
	date, _, _ := s.clock.Today()
	res := s.db.WithContext(ctx).Where("report_date = ?", date).Delete(&model.DailyReport{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *ReportService) DailyHistory(ctx context.Context, limit int) ([]model.DailyReport, error) {
	if limit <= 0 || limit > 366 {
		limit = 30
	}
	var rows []model.DailyReport
	err := s.db.WithContext(ctx).Order("report_date DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

var reportLayouts = []struct {
	layout string
	unit   func(time.Time) time.Time
}{
	{"2006-01-02T15:04:05", func(t time.Time) time.Time { return t.Add(time.Second) }},
	{"2006-01-02 15:04:05", func(t time.Time) time.Time { return t.Add(time.Second) }},
	{"2006-01-02T15:04", func(t time.Time) time.Time { return t.Add(time.Minute) }},
	{"2006-01-02 15:04", func(t time.Time) time.Time { return t.Add(time.Minute) }},
	{dateLayout, func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }},
}

// Window resolves optional start/end strings into a half-open [start, end) range in the
// restaurant timezone. Empty values default to today. An end value is inclusive at its
// own precision, so "2024-03-01" covers that whole day.
func (s *ReportService) Window(startRaw, endRaw string) (time.Time, time.Time, error) {
	_, dayStart, dayEnd := s.clock.Today()
	start, end := dayStart, dayEnd

	if v := strings.TrimSpace(startRaw); v != "" {
		t, _, err := s.parseReportTime(v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = t
		if strings.TrimSpace(endRaw) == "" {
			_, end = s.clock.DayBounds(t)
		}
	}
	if v := strings.TrimSpace(endRaw); v != "" {
		t, next, err := s.parseReportTime(v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = next(t)
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, validationf("start must be before end")
	}
	if end.Sub(start) > maxReportRange {
		return time.Time{}, time.Time{}, validationf("report range is limited to %d days", int(maxReportRange.Hours()/24))
	}
	return start, end, nil
}

func (s *ReportService) parseReportTime(v string) (time.Time, func(time.Time) time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.In(s.clock.loc()), func(t time.Time) time.Time { return t.Add(time.Second) }, nil
	}
	for _, l := range reportLayouts {
		if t, err := time.ParseInLocation(l.layout, v, s.clock.loc()); err == nil {
			return t, l.unit, nil
		}
	}
	return time.Time{}, nil, validationf("unrecognized time %q", v)
}

// Sales totals orders in [start, end) and buckets them per local clock hour.
func (s *ReportService) Sales(ctx context.Context, start, end time.Time) (*SalesReport, error) {
	orders, err := ordersBetween(s.db.WithContext(ctx), start, end)
	if err != nil {
		return nil, err
	}

	loc := s.clock.loc()
	first := start.In(loc)
	hour := time.Date(first.Year(), first.Month(), first.Day(), first.Hour(), 0, 0, 0, loc)

	var series []HourlyBucket
	index := make(map[string]int)
	for h := hour; h.Before(end); h = h.Add(time.Hour) {
		label := h.Format("2006-01-02 15:00")
		if _, dup := index[label]; dup {
			continue
		}
		index[label] = len(series)
		series = append(series, HourlyBucket{Hour: label, Sales: decimal.Zero})
	}

	total := decimal.Zero
	for _, o := range orders {
		label := o.PlacedAt.In(loc).Format("2006-01-02 15:00")
		if i, ok := index[label]; ok {
			series[i].Sales = series[i].Sales.Add(o.Cost)
		}
		total = total.Add(o.Cost)
	}

	return &SalesReport{
		Start:      start,
		End:        end,
		Orders:     int64(len(orders)),
		TotalSales: total,
		Series:     series,
	}, nil
}

// ProductUsage sums serving sizes of every ordered entree/side per inventory item over
// [start, end) and returns the ten largest consumers.
func (s *ReportService) ProductUsage(ctx context.Context, start, end time.Time) ([]UsageRow, error) {
	var rows []UsageRow
	// Selections name their food directly, so size_to_food is not joined here.
	err := s.db.WithContext(ctx).Table("order_food_selections AS ofs").
		Select("inv.id AS inventory_id, inv.name AS name, SUM(fi.serving_size) AS used").
		Joins("JOIN orders o ON o.id = ofs.order_id").
		Joins("JOIN food_to_inventory fi ON fi.food_id = ofs.food_id").
		Joins("JOIN inventory_items inv ON inv.id = fi.inventory_id").
		Where("o.placed_at >= ? AND o.placed_at < ?", start.UTC(), end.UTC()).
		Group("inv.id, inv.name").
		Order("used DESC, inv.name").
		Limit(usageTopN).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
