package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"listing-builder-service/internal/grid"
	"listing-builder-service/internal/models"
	"listing-builder-service/internal/session"
)

const sheetName = "Listings"

// SheetHandler round-trips the draft grid through a spreadsheet: operators
// fill large grids in Excel, then re-import the edited sheet into the session.
type SheetHandler struct {
	sessions *SessionsHandler
	store    session.Store
	logger   *logrus.Entry
}

func NewSheetHandler(sessions *SessionsHandler, store session.Store, logger *logrus.Logger) *SheetHandler {
	return &SheetHandler{
		sessions: sessions,
		store:    store,
		logger:   logger.WithField("component", "sheet"),
	}
}

// ExportGrid downloads the session's draft rows as XLSX or CSV.
// GET /api/v1/sessions/:id/export?format=xlsx|csv
func (h *SheetHandler) ExportGrid(c *gin.Context) {
	sess, ok := h.sessions.loadSession(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", "xlsx")
	switch format {
	case "csv":
		h.writeCSV(c, sess.Rows)
	case "xlsx":
		h.writeXLSX(c, sess.Rows)
	default:
		badRequest(c, "INVALID_FORMAT", "Only CSV and XLSX formats are supported")
	}
}

// ImportGrid re-imports an edited sheet into the session rows. Cells are
// applied by position; identity cells of locked rows and the derived delivery
// location are never overwritten by the sheet.
// POST /api/v1/sessions/:id/import
func (h *SheetHandler) ImportGrid(c *gin.Context) {
	sess, ok := h.sessions.loadSession(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		badRequest(c, "FILE_REQUIRED", "Please upload a CSV or Excel file")
		return
	}
	defer file.Close()

	var sheetRows []map[string]string
	filename := strings.ToLower(header.Filename)
	switch {
	case strings.HasSuffix(filename, ".csv"):
		sheetRows, err = parseCSVSheet(file)
	case strings.HasSuffix(filename, ".xlsx"):
		sheetRows, err = parseXLSXSheet(file)
	default:
		badRequest(c, "INVALID_FORMAT", "Only CSV and XLSX files are supported")
		return
	}
	if err != nil {
		badRequest(c, "PARSE_ERROR", err.Error())
		return
	}
	if len(sheetRows) == 0 {
		badRequest(c, "EMPTY_FILE", "The file contains no data rows")
		return
	}

	sess.Rows = applySheetRows(sess.Rows, sheetRows)

	if err := h.store.Put(c.Request.Context(), sess); err != nil {
		h.logger.WithError(err).Error("Failed to persist imported rows")
		internalError(c, "SESSION_SAVE_FAILED", "Failed to save session")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: sess.Rows})
}

// GetTemplate downloads an empty grid template.
// GET /api/v1/sessions/template?format=xlsx|csv
func (h *SheetHandler) GetTemplate(c *gin.Context) {
	format := c.DefaultQuery("format", "xlsx")
	switch format {
	case "csv":
		h.writeCSV(c, nil)
	case "xlsx":
		h.writeXLSX(c, nil)
	default:
		badRequest(c, "INVALID_FORMAT", "Only CSV and XLSX formats are supported")
	}
}

func (h *SheetHandler) writeCSV(c *gin.Context, rows []models.ListingRow) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=listings_grid.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	headers := make([]string, len(models.ListingColumns))
	for i, col := range models.ListingColumns {
		headers[i] = col.Key
	}
	writer.Write(headers)

	for i := range rows {
		record := make([]string, len(models.ListingColumns))
		for j, col := range models.ListingColumns {
			record[j] = rows[i].Cell(col.Key)
		}
		writer.Write(record)
	}
}

func (h *SheetHandler) writeXLSX(c *gin.Context, rows []models.ListingRow) {
	f := buildWorkbook(rows)
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=listings_grid.xlsx")
	f.Write(c.Writer)
}

// buildWorkbook renders the grid into a styled workbook: required columns get
// a distinct header fill, keys stay in the header for a lossless round-trip.
func buildWorkbook(rows []models.ListingRow) *excelize.File {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	requiredStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C65911"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, col := range models.ListingColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col.Key)
		if col.Required {
			f.SetCellStyle(sheetName, cell, cell, requiredStyle)
		} else {
			f.SetCellStyle(sheetName, cell, cell, headerStyle)
		}
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 18)
	}

	for rowIdx := range rows {
		for colIdx, col := range models.ListingColumns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, rows[rowIdx].Cell(col.Key))
		}
	}
	return f
}

// parseCSVSheet parses a CSV sheet into keyed rows.
func parseCSVSheet(file io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(file)

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	normalizeHeaders(headers)

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV row: %w", err)
		}
		rows = append(rows, keyedRow(headers, record))
	}
	return rows, nil
}

// parseXLSXSheet parses an Excel sheet into keyed rows.
func parseXLSXSheet(file io.Reader) ([]map[string]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}
	name := sheets[0]
	for _, s := range sheets {
		if strings.EqualFold(s, sheetName) {
			name = s
			break
		}
	}

	excelRows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(excelRows) < 2 {
		return nil, fmt.Errorf("file must have a header row and at least one data row")
	}

	headers := excelRows[0]
	normalizeHeaders(headers)

	var rows []map[string]string
	for _, excelRow := range excelRows[1:] {
		rows = append(rows, keyedRow(headers, excelRow))
	}
	return rows, nil
}

func normalizeHeaders(headers []string) {
	for i := range headers {
		headers[i] = strings.TrimSuffix(strings.TrimSpace(headers[i]), " *")
	}
}

func keyedRow(headers, record []string) map[string]string {
	row := make(map[string]string, len(headers))
	for i, value := range record {
		if i < len(headers) {
			row[headers[i]] = strings.TrimSpace(value)
		}
	}
	return row
}

// applySheetRows merges keyed sheet rows into the grid by position. Sheet rows
// beyond the current grid append new rows. Locked identity cells and the
// derived delivery location keep their grid values; derived fields are
// recomputed once at the end.
func applySheetRows(rows []models.ListingRow, sheetRows []map[string]string) []models.ListingRow {
	for i, sheetRow := range sheetRows {
		if i >= len(rows) {
			rows = grid.AddRow(rows)
		}
		for _, col := range models.ListingColumns {
			value, present := sheetRow[col.Key]
			if !present || col.Key == "deliveryLocation" {
				continue
			}
			if col.Identity && rows[i].IdentityLocked {
				continue
			}
			rows[i].SetCell(col.Key, value)
		}
	}
	grid.RecomputeDeliveryLocations(rows)
	return rows
}
