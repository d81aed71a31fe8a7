package core

import "context"

// Location is a flat per-site record. Its inventory counts live in
// inventory_by_location and are never reconciled against products.quantity;
// the two quantity sources are independent.
type Location struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address"`
	Type    string  `json:"type"`
}

// LocationStock is one per-location count row with display names joined in.
type LocationStock struct {
	ID           int    `json:"id"`
	ProductID    int    `json:"product_id"`
	LocationID   int    `json:"location_id"`
	Quantity     int    `json:"quantity"`
	ProductName  string `json:"product_name"`
	LocationName string `json:"location_name"`
}

type LocationService interface {
	List(ctx context.Context) ([]Location, error)
	Create(ctx context.Context, name string, address *string, locType string) (*Location, error)

	// StockByLocation returns every per-location count row.
	StockByLocation(ctx context.Context) ([]LocationStock, error)

	// SetStock upserts the count for one (product, location) pair.
	SetStock(ctx context.Context, productID, locationID, quantity int) error
}
