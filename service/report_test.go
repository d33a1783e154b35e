package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pos/model"

	"gorm.io/gorm"
)

func placeOrder(t *testing.T, db *gorm.DB, when time.Time, cost string) model.Order {
	t.Helper()
	o := model.Order{PlacedAt: when.UTC(), Cost: dec(cost)}
	if err := db.Create(&o).Error; err != nil {
		t.Fatal(err)
	}
	return o
}

func newReportFixture(t *testing.T) (*ReportService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	placeOrder(t, db, at(9, 15), "10.00")
	placeOrder(t, db, at(9, 45), "5.50")
	placeOrder(t, db, at(14, 0), "20.00")
	placeOrder(t, db, at(12, 0).AddDate(0, 0, -1), "100.00")
	return NewReportService(db, newFakeClock(at(16, 0)).clock()), db
}

func TestXReportBucketsTodayByHour(t *testing.T) {
	svc, _ := newReportFixture(t)

	x, err := svc.XReport(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if x.Date != "2024-03-01" || x.Closed {
		t.Errorf("x = %+v", x)
	}
	if !x.Total.Equal(dec("35.50")) {
		t.Errorf("total = %s, want 35.50", x.Total)
	}
	if len(x.Hourly) != 24 {
		t.Fatalf("buckets = %d", len(x.Hourly))
	}
	if x.Hourly[9].Hour != "09:00" || !x.Hourly[9].Sales.Equal(dec("15.50")) {
		t.Errorf("09:00 bucket = %+v", x.Hourly[9])
	}
	if !x.Hourly[14].Sales.Equal(dec("20")) || !x.Hourly[12].Sales.IsZero() {
		t.Errorf("14:00 = %s, 12:00 = %s", x.Hourly[14].Sales, x.Hourly[12].Sales)
	}
}

func TestZReportRunsOncePerDay(t *testing.T) {
	ctx := context.Background()
	svc, _ := newReportFixture(t)

	z, err := svc.RunZReport(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if z.TotalOrders != 3 || !z.TotalSales.Equal(dec("35.50")) {
		t.Errorf("z = %+v", z)
	}

	if _, err := svc.RunZReport(ctx); !errors.Is(err, ErrConflict) {
		t.Errorf("second run err = %v, want ErrConflict", err)
	}

	x, err := svc.XReport(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !x.Closed || !x.Total.IsZero() {
		t.Errorf("x after z = %+v", x)
	}

	hourly, err := svc.HourlySales(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !hourly[9].Sales.Equal(dec("15.50")) {
		t.Errorf("live hourly ignores z flag, got %s", hourly[9].Sales)
	}

	st, err := svc.ZStatus(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !st.ZReportRun || st.ZReportTimestamp == nil || st.TotalOrders != 3 {
		t.Errorf("status = %+v", st)
	}

	cleared, err := svc.ClearZReport(ctx)
	if err != nil || !cleared {
		t.Fatalf("clear: cleared=%v err=%v", cleared, err)
	}
	cleared, err = svc.ClearZReport(ctx)
	if err != nil || cleared {
		t.Errorf("second clear: cleared=%v err=%v", cleared, err)
	}

	x, _ = svc.XReport(ctx)
	if x.Closed || !x.Total.Equal(dec("35.50")) {
		t.Errorf("x after clear = %+v", x)
	}
	if _, err := svc.RunZReport(ctx); err != nil {
		t.Errorf("rerun after clear: %v", err)
	}

	history, err := svc.DailyHistory(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].ReportDate != "2024-03-01" {
		t.Errorf("history = %+v", history)
	}
}

func TestWindow(t *testing.T) {
	svc := NewReportService(newTestDB(t), newFakeClock(at(16, 0)).clock())

	tests := []struct {
		name      string
		start     string
		end       string
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{"defaults to today", "", "", at(0, 0), at(0, 0).AddDate(0, 0, 1), false},
		{"date range is end inclusive", "2024-02-01", "2024-02-29", time.Date(2024, 2, 1, 0, 0, 0, 0, testLoc), at(0, 0), false},
		{"start only covers its day", "2024-02-10", "", time.Date(2024, 2, 10, 0, 0, 0, 0, testLoc), time.Date(2024, 2, 11, 0, 0, 0, 0, testLoc), false},
		{"minute precision", "2024-03-01 09:00", "2024-03-01T10:00", at(9, 0), at(10, 1), false},
		{"reversed", "2024-03-02", "2024-03-01", time.Time{}, time.Time{}, true},
		{"too long", "2024-01-01", "2024-06-01", time.Time{}, time.Time{}, true},
		{"garbage", "yesterday", "", time.Time{}, time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := svc.Window(tt.start, tt.end)
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Errorf("err = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !start.Equal(tt.wantStart) || !end.Equal(tt.wantEnd) {
				t.Errorf("window = [%s, %s), want [%s, %s)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestSalesSeries(t *testing.T) {
	svc, _ := newReportFixture(t)

	r, err := svc.Sales(context.Background(), at(9, 0), at(15, 0))
	if err != nil {
		t.Fatal(err)
	}
	if r.Orders != 3 || !r.TotalSales.Equal(dec("35.50")) {
		t.Errorf("report = %+v", r)
	}
	if len(r.Series) != 6 {
		t.Fatalf("series = %d buckets, want 6", len(r.Series))
	}
	if r.Series[0].Hour != "2024-03-01 09:00" || !r.Series[0].Sales.Equal(dec("15.50")) {
		t.Errorf("first bucket = %+v", r.Series[0])
	}
	if !r.Series[5].Sales.Equal(dec("20")) {
		t.Errorf("last bucket = %+v", r.Series[5])
	}
}

func TestProductUsageRanksInventory(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seedCatalog(t, db)
	fc := newFakeClock(at(11, 0))

	inv := NewInventoryService(db)
	for _, l := range []struct {
		food, item string
		serving    int
	}{
		{"Orange Chicken", "Chicken", 2},
		{"Fried Rice", "Rice", 1},
		{"Fried Rice", "Oil", 1},
		{"Chow Mein", "Oil", 1},
	} {
		if _, _, err := inv.GetOrCreate(ctx, l.item, nil); err != nil {
			t.Fatal(err)
		}
		if _, err := inv.Link(ctx, l.food, l.item, l.serving); err != nil {
			t.Fatal(err)
		}
	}

	orders := NewOrderService(db, fc.clock(), dec("0"))
	submit := func(in OrderInput) {
		t.Helper()
		if _, err := orders.Submit(ctx, in); err != nil {
			t.Fatal(err)
		}
	}
	submit(OrderInput{Combos: []ComboInput{{Size: "Bowl", Items: []string{"Orange Chicken"}, Sides: []string{"Fried Rice"}}}, TotalPrice: dec("8.30")})
	submit(OrderInput{Combos: []ComboInput{{Size: "Plate", Items: []string{"Orange Chicken", "Orange Chicken"}, Sides: []string{"Chow Mein"}}}, TotalPrice: dec("9.80")})
	fc.now = at(11, 0).AddDate(0, 0, -1)
	submit(OrderInput{Combos: []ComboInput{{Size: "Bowl", Items: []string{"Orange Chicken"}}}, TotalPrice: dec("8.30")})

	svc := NewReportService(db, fc.clock())
	rows, err := svc.ProductUsage(ctx, at(0, 0), at(0, 0).AddDate(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}

	want := []struct {
		name string
		used int64
	}{{"Chicken", 6}, {"Oil", 2}, {"Rice", 1}}
	if len(rows) != len(want) {
		t.Fatalf("rows = %+v", rows)
	}
	for i, w := range want {
		if rows[i].Name != w.name || rows[i].Used != w.used {
			t.Errorf("row %d = %+v, want %s %d", i, rows[i], w.name, w.used)
		}
	}
}
