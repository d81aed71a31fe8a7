// Package assistant implements the scripted chat responder: lowercased input
// is routed by substring match to one of a fixed set of report templates
// rendered from live data. There is no model behind it and no state between
// messages.
package assistant

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"warehouse-backend/internal/core"
)

// lowStockReplyQty is the assistant's own low-stock cutoff. Like the email
// trigger, it ignores per-product reorder points.
const lowStockReplyQty = 10

// Greeting is the canned opening message shown by clients on a fresh chat.
const Greeting = `Hello! I'm your AI Warehouse Assistant. I can help you with inventory management, orders, analytics, and more. Try asking me: "Show low stock items" or "Create order for customer ABC"`

var searchTermStrip = regexp.MustCompile(`find|search|product|item`)

// Responder answers chat messages from current store contents.
type Responder struct {
	products  core.ProductService
	orders    core.OrderService
	customers core.CustomerService
	suppliers core.SupplierService
}

func NewResponder(products core.ProductService, orders core.OrderService,
	customers core.CustomerService, suppliers core.SupplierService) *Responder {
	return &Responder{products: products, orders: orders, customers: customers, suppliers: suppliers}
}

// Respond routes one message. Patterns are checked in a fixed order; the
// first match wins and unmatched input gets the fixed fallback.
func (r *Responder) Respond(ctx context.Context, userInput string) (string, error) {
	input := strings.ToLower(strings.TrimSpace(userInput))

	switch {
	case contains(input, "low stock", "restock"):
		return r.lowStockReply(ctx)
	case contains(input, "inventory", "stock summary"):
		return r.inventorySummaryReply(ctx)
	case contains(input, "recent orders", "today orders"):
		return r.recentOrdersReply(ctx)
	case contains(input, "customers", "customer list"):
		return r.customersReply(ctx)
	case contains(input, "suppliers", "supplier list"):
		return r.suppliersReply(ctx)
	case contains(input, "find", "search"):
		if reply, ok, err := r.searchReply(ctx, input); err != nil || ok {
			return reply, err
		}
		// An empty search term falls through to the remaining patterns.
	}

	switch {
	case contains(input, "analytics", "insights", "stats"):
		return r.analyticsReply(ctx)
	case contains(input, "help", "commands"):
		return helpReply, nil
	}

	return fmt.Sprintf("I understand you said: %q\n\nI can help you with:\n• Inventory management\n• Order tracking\n• Customer/supplier information\n• Stock analytics\n\nTry asking: \"Show low stock items\" or \"Recent orders\" or type \"help\" for more commands.", userInput), nil
}

func (r *Responder) lowStockReply(ctx context.Context) (string, error) {
	products, err := r.products.List(ctx)
	if err != nil {
		return "", err
	}
	var low []core.Product
	for _, p := range products {
		if p.Quantity < lowStockReplyQty {
			low = append(low, p)
		}
	}
	if len(low) == 0 {
		return "Great news! No items are currently low in stock.", nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d items with low stock:", len(low))
	for _, p := range low {
		fmt.Fprintf(&b, "\n• %s: %d units remaining", p.Name, p.Quantity)
	}
	return b.String(), nil
}

func (r *Responder) inventorySummaryReply(ctx context.Context) (string, error) {
	products, err := r.products.List(ctx)
	if err != nil {
		return "", err
	}
	totalQuantity, lowCount := 0, 0
	for _, p := range products {
		totalQuantity += p.Quantity
		if p.Quantity < lowStockReplyQty {
			lowCount++
		}
	}
	return fmt.Sprintf("📦 Inventory Summary:\n• Total Items: %d\n• Total Quantity: %d units\n• Low Stock Items: %d",
		len(products), totalQuantity, lowCount), nil
}

func (r *Responder) recentOrdersReply(ctx context.Context) (string, error) {
	orders, err := r.orders.List(ctx)
	if err != nil {
		return "", err
	}
	if len(orders) == 0 {
		return "No recent orders found.", nil
	}
	products, err := r.products.List(ctx)
	if err != nil {
		return "", err
	}
	names := make(map[int]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	recent := orders
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	var b strings.Builder
	b.WriteString("📋 Recent Orders:")
	for _, o := range recent {
		name, ok := names[o.ProductID]
		if !ok {
			name = "Unknown Product"
		}
		fmt.Fprintf(&b, "\n• Order #%d: %d units of %s", o.ID, o.Quantity, name)
	}
	return b.String(), nil
}

func (r *Responder) customersReply(ctx context.Context) (string, error) {
	customers, err := r.customers.List(ctx)
	if err != nil {
		return "", err
	}
	if len(customers) == 0 {
		return "No customers found in the system.", nil
	}
	recent := customers
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "👥 Customer Summary:\n• Total Customers: %d\n• Recent customers:", len(customers))
	for _, c := range recent {
		fmt.Fprintf(&b, "\n• %s (%s)", c.Name, strOrEmpty(c.Email))
	}
	return b.String(), nil
}

func (r *Responder) suppliersReply(ctx context.Context) (string, error) {
	suppliers, err := r.suppliers.List(ctx)
	if err != nil {
		return "", err
	}
	if len(suppliers) == 0 {
		return "No suppliers found in the system.", nil
	}
	recent := suppliers
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🏪 Supplier Summary:\n• Total Suppliers: %d\n• Active suppliers:", len(suppliers))
	for _, s := range recent {
		fmt.Fprintf(&b, "\n• %s (%s)", s.Name, strOrEmpty(s.ContactEmail))
	}
	return b.String(), nil
}

// searchReply returns ok=false when the stripped search term is empty.
func (r *Responder) searchReply(ctx context.Context, input string) (string, bool, error) {
	term := strings.TrimSpace(searchTermStrip.ReplaceAllString(input, ""))
	if term == "" {
		return "", false, nil
	}
	products, err := r.products.List(ctx)
	if err != nil {
		return "", true, err
	}
	var found []core.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) {
			found = append(found, p)
		}
	}
	if len(found) == 0 {
		return fmt.Sprintf("No products found matching %q.", term), true, nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🔍 Found %d product(s) matching %q:", len(found), term)
	for _, p := range found {
		fmt.Fprintf(&b, "\n• %s: %d units in stock", p.Name, p.Quantity)
	}
	return b.String(), true, nil
}

func (r *Responder) analyticsReply(ctx context.Context) (string, error) {
	products, err := r.products.List(ctx)
	if err != nil {
		return "", err
	}
	orders, err := r.orders.List(ctx)
	if err != nil {
		return "", err
	}
	customers, err := r.customers.List(ctx)
	if err != nil {
		return "", err
	}
	suppliers, err := r.suppliers.List(ctx)
	if err != nil {
		return "", err
	}

	avgOrderQty := 0
	if len(orders) > 0 {
		sum := 0
		for _, o := range orders {
			sum += o.Quantity
		}
		avgOrderQty = int(math.Round(float64(sum) / float64(len(orders))))
	}
	return fmt.Sprintf("📊 Analytics Dashboard:\n• Total Orders: %d\n• Total Customers: %d\n• Total Suppliers: %d\n• Average Order Quantity: %d units\n• Products in Stock: %d",
		len(orders), len(customers), len(suppliers), avgOrderQty, len(products)), nil
}

const helpReply = `🤖 Available Commands:
• "Show low stock items" - View items needing restock
• "Inventory summary" - Get stock overview
• "Recent orders" - View latest orders
• "Show customers" - List customer information
• "Show suppliers" - List supplier information
• "Find [product name]" - Search for specific products
• "Analytics" - View business insights
• "Help" - Show this command list`

func contains(input string, patterns ...string) bool {
	for _, p := range patterns {
		if strings.Contains(input, p) {
			return true
		}
	}
	return false
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
