// Package grid implements the spreadsheet-like bulk editor over draft listing
// rows: materialization from variant descriptors, cell edits with derived
// recomputation, row lifecycle operations, column propagation and the final
// submit sweep. Every operation is a synchronous transformation of the row
// slice so it can be unit tested without an HTTP harness.
package grid

import (
	"listing-builder-service/internal/models"
)

// Materialize produces the draft row set for a variant type. Re-running it
// fully replaces the prior rows: partial edits to a row whose identity changed
// underneath it cannot be meaningfully preserved, so the reset discards all
// prior edits.
//
// single: exactly one blank, fully editable row with sequence 1.
// multi:  one row per descriptor, identity fields pre-filled and locked.
func Materialize(variantType models.VariantType, descriptors []models.VariantDescriptor) []models.ListingRow {
	if variantType != models.VariantTypeMulti {
		return []models.ListingRow{newRow(1)}
	}

	rows := make([]models.ListingRow, 0, len(descriptors))
	for i, d := range descriptors {
		row := newRow(i + 1)
		row.SkuFamilyID = d.FamilyID
		row.SubFamilyID = d.SubFamilyID
		row.ModelName = d.ModelName
		row.Storage = d.Storage
		row.Color = d.Color
		row.RAM = d.RAM
		row.IdentityLocked = true
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		rows = append(rows, newRow(1))
	}
	return rows
}

// newRow returns a blank draft row. All cells default to empty; the operator
// fills them in the grid.
func newRow(sequence int) models.ListingRow {
	return models.ListingRow{Sequence: sequence}
}
