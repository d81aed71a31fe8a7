package core_test

import (
	"math"
	"testing"

	"warehouse-backend/internal/core"
)

func TestComputeForecast(t *testing.T) {
	tests := []struct {
		name           string
		points         []core.ForecastPoint
		avgDailyUsage  float64
		daysToStockout int
	}{
		{
			name:           "no activity",
			points:         nil,
			avgDailyUsage:  0,
			daysToStockout: 999,
		},
		{
			name: "steady usage",
			points: []core.ForecastPoint{
				{Date: "2026-08-01", DailyUsage: 5},
				{Date: "2026-08-02", DailyUsage: 5},
				{Date: "2026-08-03", DailyUsage: 5},
			},
			avgDailyUsage:  5,
			daysToStockout: 6, // floor(30 / 5)
		},
		{
			name: "average only counts active days",
			points: []core.ForecastPoint{
				{Date: "2026-08-01", DailyUsage: 10},
				{Date: "2026-08-15", DailyUsage: 2},
			},
			avgDailyUsage:  6,
			daysToStockout: 5,
		},
		{
			name: "fractional average truncates stockout days",
			points: []core.ForecastPoint{
				{Date: "2026-08-01", DailyUsage: 4},
				{Date: "2026-08-02", DailyUsage: 3},
			},
			avgDailyUsage:  3.5,
			daysToStockout: 8, // 30 / 3.5 = 8.57 → 8
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.ComputeForecast(tt.points)
			if math.Abs(got.AvgDailyUsage-tt.avgDailyUsage) > 1e-9 {
				t.Errorf("avg daily usage: expected %v, got %v", tt.avgDailyUsage, got.AvgDailyUsage)
			}
			if got.DaysToStockout != tt.daysToStockout {
				t.Errorf("days to stockout: expected %d, got %d", tt.daysToStockout, got.DaysToStockout)
			}
			if len(got.HistoricalData) != len(tt.points) {
				t.Errorf("expected %d historical points, got %d", len(tt.points), len(got.HistoricalData))
			}
		})
	}
}
