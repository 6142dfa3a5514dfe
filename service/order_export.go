package service

import (
	"context"
	"io"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Orders"

var exportHeader = []interface{}{
	"Order", "Reference", "Date", "Delivery address", "Coffee", "Size",
	"Unit price", "Quantity", "Line total", "Delivery fee", "Order total",
}

// ExportHistory writes the user's order history as an .xlsx workbook with
// one row per order item.
func (s *OrderService) ExportHistory(ctx context.Context, userID uint, w io.Writer) error {
	orders, err := s.store.Orders.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return err
	}

	row := 2
	for _, o := range orders {
		for _, it := range o.Items {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			values := []interface{}{
				o.ID,
				o.Reference,
				o.OrderDate.Format("2006-01-02 15:04:05"),
				o.DeliveryAddress,
				it.CoffeeName,
				it.SelectedSize,
				it.UnitPrice.StringFixed(2),
				it.Quantity,
				it.TotalPrice.StringFixed(2),
				o.DeliveryFee.StringFixed(2),
				o.TotalAmount.StringFixed(2),
			}
			if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
				return err
			}
			row++
		}
	}

	return f.Write(w)
}
