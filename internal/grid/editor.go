package grid

import (
	"fmt"
	"strconv"
	"strings"

	"listing-builder-service/internal/models"
)

// region binds a current-location name to its currency triple columns.
type region struct {
	Name     string
	UsdKey   string
	RateKey  string
	LocalKey string
}

var regions = []region{
	{Name: "Hong Kong", UsdKey: "hkUsd", RateKey: "hkXe", LocalKey: "hkHkd"},
	{Name: "Dubai", UsdKey: "dxbUsd", RateKey: "dxbXe", LocalKey: "dxbAed"},
}

// UpdateCell sets one field on one row, then runs the field-specific derived
// recomputation: currency cross-calculation for the edited triple, and the
// delivery-location pass over all rows whenever a location or currency field
// changed.
func UpdateCell(rows []models.ListingRow, index int, field, value string) error {
	if index < 0 || index >= len(rows) {
		return fmt.Errorf("row index %d out of range", index)
	}
	col, ok := models.ColumnByKey(field)
	if !ok {
		return fmt.Errorf("unknown column %q", field)
	}
	if col.Identity && rows[index].IdentityLocked {
		return fmt.Errorf("column %q is derived from the variant descriptor and cannot be edited", field)
	}

	rows[index].SetCell(field, value)

	for _, reg := range regions {
		if field == reg.UsdKey || field == reg.RateKey || field == reg.LocalKey {
			completeTriple(&rows[index], reg)
		}
	}
	if affectsDeliveryLocation(field) {
		RecomputeDeliveryLocations(rows)
	}
	return nil
}

// completeTriple fills the single missing value of a currency triple. It only
// fires when exactly one of the three is missing: once the operator has all
// three filled, edits never auto-overwrite a sibling field. Division against a
// zero denominator is skipped rather than computed.
func completeTriple(row *models.ListingRow, reg region) {
	usd := strings.TrimSpace(row.Cell(reg.UsdKey))
	rate := strings.TrimSpace(row.Cell(reg.RateKey))
	local := strings.TrimSpace(row.Cell(reg.LocalKey))

	missing := 0
	for _, v := range []string{usd, rate, local} {
		if v == "" {
			missing++
		}
	}
	if missing != 1 {
		return
	}

	switch {
	case local == "":
		row.SetCell(reg.LocalKey, formatAmount(parseNum(usd)*parseNum(rate)))
	case usd == "":
		if r := parseNum(rate); r != 0 {
			row.SetCell(reg.UsdKey, formatAmount(parseNum(local)/r))
		}
	case rate == "":
		if u := parseNum(usd); u != 0 {
			row.SetCell(reg.RateKey, formatRate(parseNum(local)/u))
		}
	}
}

// RecomputeDeliveryLocations rebuilds the derived delivery-location string of
// every row. A region is listed when it is the selected current location or
// any of its currency fields is non-empty. This is a pass over all rows, not
// just the edited one.
func RecomputeDeliveryLocations(rows []models.ListingRow) {
	for i := range rows {
		locations := make([]string, 0, len(regions))
		for _, reg := range regions {
			if rows[i].CurrentLocation == reg.Name ||
				rows[i].Cell(reg.UsdKey) != "" ||
				rows[i].Cell(reg.RateKey) != "" ||
				rows[i].Cell(reg.LocalKey) != "" {
				locations = append(locations, reg.Name)
			}
		}
		rows[i].DeliveryLocation = strings.Join(locations, ", ")
	}
}

func affectsDeliveryLocation(field string) bool {
	if field == "currentLocation" {
		return true
	}
	for _, reg := range regions {
		if field == reg.UsdKey || field == reg.RateKey || field == reg.LocalKey {
			return true
		}
	}
	return false
}

// AddRow appends one blank row at the end of the grid.
func AddRow(rows []models.ListingRow) []models.ListingRow {
	return append(rows, newRow(len(rows)+1))
}

// RemoveRow deletes a row. At least one row must always exist, so removing
// the last remaining row is a no-op; the second return reports whether a row
// was removed.
func RemoveRow(rows []models.ListingRow, index int) ([]models.ListingRow, bool) {
	if len(rows) <= 1 || index < 0 || index >= len(rows) {
		return rows, false
	}
	out := append(rows[:index:index], rows[index+1:]...)
	return out, true
}

// DuplicateRow appends a copy of a row at the last position. The two fields
// that must be unique per listing are cleared so a duplicate cannot silently
// collide with its source.
func DuplicateRow(rows []models.ListingRow, index int) ([]models.ListingRow, error) {
	if index < 0 || index >= len(rows) {
		return rows, fmt.Errorf("row index %d out of range", index)
	}
	dup := rows[index]
	dup.Sequence = len(rows) + 1
	dup.UniqueListingNo = ""
	dup.SupplierListingNumber = ""
	return append(rows, dup), nil
}

// FillDown copies one cell's value into the immediately following row only.
// No-op on the last row or when the target row's column is locked.
func FillDown(rows []models.ListingRow, rowIndex int, columnKey string) {
	if rowIndex < 0 || rowIndex >= len(rows)-1 {
		return
	}
	fillInto(rows, rowIndex+1, columnKey, rows[rowIndex].Cell(columnKey))
}

// FillAllBelow copies one cell's value into every row strictly below it,
// unconditionally overwriting existing values in that column.
func FillAllBelow(rows []models.ListingRow, rowIndex int, columnKey string) {
	if rowIndex < 0 || rowIndex >= len(rows) {
		return
	}
	value := rows[rowIndex].Cell(columnKey)
	for i := rowIndex + 1; i < len(rows); i++ {
		fillInto(rows, i, columnKey, value)
	}
}

// fillInto writes a propagated value through the same derivation path as a
// hand edit. Locked identity cells are skipped silently: propagation is a
// convenience, not an override.
func fillInto(rows []models.ListingRow, index int, columnKey, value string) {
	col, ok := models.ColumnByKey(columnKey)
	if !ok {
		return
	}
	if col.Identity && rows[index].IdentityLocked {
		return
	}
	_ = UpdateCell(rows, index, columnKey, value)
}

// parseNum parses a cell as a number. Malformed input parses to 0: bad input
// degrades the derived value instead of blocking the keystroke.
func parseNum(value string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return v
}

// formatAmount renders a monetary amount to 2 decimal places.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatRate renders an exchange rate to 6 decimal places.
func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
