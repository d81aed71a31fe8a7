package core

import "context"

// LowStockAlert is a product at or below its configured reorder point
// (default 10 when no settings row exists), with supplier context for the
// restock decision.
type LowStockAlert struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	ReorderPoint int     `json:"reorder_point"`
	MaxStock     int     `json:"max_stock"`
	SupplierName *string `json:"supplier_name"`
}

// ForecastPoint is one day of summed order quantity within the trailing
// window. Days with no orders produce no point.
type ForecastPoint struct {
	Date       string `json:"date"`
	DailyUsage int    `json:"daily_usage"`
}

// Forecast is the naive usage projection for one product.
type Forecast struct {
	AvgDailyUsage  float64         `json:"avgDailyUsage"`
	DaysToStockout int             `json:"daysToStockout"`
	HistoricalData []ForecastPoint `json:"historicalData"`
}

// forecastWindowDays is both the trailing window length and the fictitious
// "days of current stock" baseline the stockout estimate divides into.
const forecastWindowDays = 30

// noUsageStockoutDays is returned when the product shows no order activity.
const noUsageStockoutDays = 999

// ComputeForecast averages daily usage across days that had activity (zero
// days are not counted, which inflates the average) and estimates
// days-to-stockout as floor(30 / average). This is a placeholder heuristic,
// kept bit-for-bit rather than replaced with a real projection.
func ComputeForecast(points []ForecastPoint) Forecast {
	f := Forecast{DaysToStockout: noUsageStockoutDays, HistoricalData: points}
	if len(points) == 0 {
		return f
	}

	sum := 0
	for _, p := range points {
		sum += p.DailyUsage
	}
	f.AvgDailyUsage = float64(sum) / float64(len(points))
	if f.AvgDailyUsage > 0 {
		f.DaysToStockout = int(float64(forecastWindowDays) / f.AvgDailyUsage)
	}
	return f
}

// ReportingService computes the read-only derived views. Every call
// recomputes from scratch; nothing is cached.
type ReportingService interface {
	// LowStockAlerts returns products where quantity <= COALESCE(reorder_point, 10).
	LowStockAlerts(ctx context.Context) ([]LowStockAlert, error)

	// UsageForecast builds the trailing-30-day forecast for one product.
	UsageForecast(ctx context.Context, productID int) (*Forecast, error)

	// Categories returns distinct non-null categories from product settings.
	Categories(ctx context.Context) ([]string, error)
}
