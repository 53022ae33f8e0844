package item

import (
	"encoding/csv"
	"io"
	"sort"
)

var csvHeader = []string{"Name", "Category", "Room", "Purchase Date", "Price", "Warranty Expiry", "Next Maintenance"}

// WriteCSV writes the inventory export, one row per item ordered by name.
func WriteCSV(w io.Writer, items []Item) error {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].ID < sorted[j].ID
	})

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, it := range sorted {
		row := []string{
			it.Name,
			it.Category,
			it.Room,
			it.PurchaseDate.String(),
			string(it.Currency) + " " + it.Price.String(),
			it.WarrantyExpiry.String(),
			it.NextMaintenance.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
