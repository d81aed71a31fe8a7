package web

import (
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"warehouse-backend/internal/app"
	"warehouse-backend/internal/core"
)

// CSV transfer uses the fixed column layouts the dashboard produces:
// products are id,name,quantity and orders are id,product_id,quantity,created_at.

const importMaxMemory = 10 << 20 // 10 MB

func (h *Handler) exportProductsCSV(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="products.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "name", "quantity"})
	for _, p := range products {
		_ = cw.Write([]string{strconv.Itoa(p.ID), p.Name, strconv.Itoa(p.Quantity)})
	}
	cw.Flush()
}

func (h *Handler) exportOrdersCSV(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListOrders(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "product_id", "quantity", "created_at"})
	for _, o := range orders {
		_ = cw.Write([]string{
			strconv.Itoa(o.ID),
			strconv.Itoa(o.ProductID),
			strconv.Itoa(o.Quantity),
			o.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	cw.Flush()
}

// exportProductsXLSX writes the product list, with each product's settings
// row joined in when one exists, as a spreadsheet.
func (h *Handler) exportProductsXLSX(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	_ = f.SetSheetRow(sheet, "A1", &[]any{
		"ID", "Name", "Quantity", "SKU", "Category", "Reorder Point", "Max Stock", "Cost Price", "Selling Price",
	})
	for i, p := range products {
		row := []any{p.ID, p.Name, p.Quantity, "", "", "", "", "", ""}
		settings, err := h.svc.GetProductSettings(r.Context(), p.ID)
		if err == nil {
			if settings.SKU != nil {
				row[3] = *settings.SKU
			}
			if settings.Category != nil {
				row[4] = *settings.Category
			}
			row[5] = settings.ReorderPoint
			row[6] = settings.MaxStock
			if settings.CostPrice != nil {
				row[7] = settings.CostPrice.String()
			}
			if settings.SellingPrice != nil {
				row[8] = settings.SellingPrice.String()
			}
		} else if !errors.Is(err, core.ErrNotFound) {
			writeServiceError(w, r, err)
			return
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = f.SetSheetRow(sheet, cell, &row)
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="products.xlsx"`)
	if err := f.Write(w); err != nil {
		h.log.WithError(err).Warn("xlsx export write failed")
	}
}

func (h *Handler) importProductsCSV(w http.ResponseWriter, r *http.Request) {
	records, ok := h.readCSVUpload(w, r)
	if !ok {
		return
	}

	rows := make([]app.ProductImportRow, 0, len(records))
	for i, rec := range records {
		if i == 0 && rec[0] == "id" {
			continue // header row
		}
		// Malformed rows are skipped, not fatal: the valid remainder of the
		// file still imports.
		if len(rec) < 3 {
			h.log.WithField("row", i+1).Warn("product import: short row skipped")
			continue
		}
		qty, err := strconv.Atoi(rec[2])
		if err != nil {
			h.log.WithFields(logrus.Fields{"row": i + 1, "quantity": rec[2]}).Warn("product import: bad quantity skipped")
			continue
		}
		id, _ := strconv.Atoi(rec[0])
		rows = append(rows, app.ProductImportRow{ID: id, Name: rec[1], Quantity: qty})
	}

	if err := h.svc.ImportProducts(r.Context(), rows); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w)
}

func (h *Handler) importOrdersCSV(w http.ResponseWriter, r *http.Request) {
	records, ok := h.readCSVUpload(w, r)
	if !ok {
		return
	}

	rows := make([]app.OrderImportRow, 0, len(records))
	for i, rec := range records {
		if i == 0 && rec[0] == "id" {
			continue
		}
		if len(rec) < 4 {
			h.log.WithField("row", i+1).Warn("order import: short row skipped")
			continue
		}
		productID, err := strconv.Atoi(rec[1])
		if err != nil {
			h.log.WithFields(logrus.Fields{"row": i + 1, "product_id": rec[1]}).Warn("order import: bad product_id skipped")
			continue
		}
		qty, err := strconv.Atoi(rec[2])
		if err != nil {
			h.log.WithFields(logrus.Fields{"row": i + 1, "quantity": rec[2]}).Warn("order import: bad quantity skipped")
			continue
		}
		id, _ := strconv.Atoi(rec[0])
		createdAt, err := time.Parse(time.RFC3339, rec[3])
		if err != nil {
			createdAt = time.Now().UTC()
		}
		rows = append(rows, app.OrderImportRow{ID: id, ProductID: productID, Quantity: qty, CreatedAt: createdAt})
	}

	if err := h.svc.ImportOrders(r.Context(), rows); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w)
}

// readCSVUpload pulls the "file" part out of a multipart form and parses it.
// Returns ok=false after writing the error response.
func (h *Handler) readCSVUpload(w http.ResponseWriter, r *http.Request) ([][]string, bool) {
	if err := r.ParseMultipartForm(importMaxMemory); err != nil {
		writeError(w, r, "invalid multipart form: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return nil, false
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, "missing file upload", "BAD_REQUEST", http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		writeError(w, r, "invalid CSV: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return nil, false
	}
	if len(records) == 0 {
		writeError(w, r, "empty CSV file", "BAD_REQUEST", http.StatusBadRequest)
		return nil, false
	}
	return records, true
}
