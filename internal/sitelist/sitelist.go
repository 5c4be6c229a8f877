// Package sitelist parses site address lists from CSV and XLSX files.
package sitelist

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/heliowatt/feasibility-cli/internal/model"
)

// Columns: address, system_size, panel_count, inverter, estimated_cost.
// Only address is required; a header row is skipped when its first cell
// reads "address".

// Load reads sites from the given file, dispatching on extension.
func Load(path string) ([]model.Site, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrap(err, "sitelist: open file")
		}
		defer f.Close()
		return ReadCSV(f)
	case ".xlsx":
		return ReadXLSX(path)
	default:
		return nil, eris.Errorf("sitelist: unsupported file type %q (want .csv or .xlsx)", filepath.Ext(path))
	}
}

// ReadCSV parses sites from CSV data.
func ReadCSV(r io.Reader) ([]model.Site, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable fields
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "sitelist: read csv row")
		}
		rows = append(rows, record)
	}

	return rowsToSites(rows)
}

// ReadXLSX parses sites from the first sheet of an XLSX file.
func ReadXLSX(path string) ([]model.Site, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "sitelist: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("sitelist: xlsx file has no sheets")
	}

	var rows [][]string
	for _, row := range f.Sheets[0].Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}

	return rowsToSites(rows)
}

func rowsToSites(rows [][]string) ([]model.Site, error) {
	var sites []model.Site
	for i, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "address") {
			continue
		}

		site := model.Site{Address: strings.TrimSpace(row[0])}
		if len(row) > 1 {
			site.System.SystemSizeKW = strings.TrimSpace(row[1])
		}
		if len(row) > 2 {
			n, err := strconv.Atoi(strings.TrimSpace(row[2]))
			if err != nil {
				return nil, eris.Wrapf(err, "sitelist: row %d: panel_count", i+1)
			}
			site.System.PanelCount = n
		}
		if len(row) > 3 {
			site.System.InverterType = strings.TrimSpace(row[3])
		}
		if len(row) > 4 {
			site.System.EstimatedCost = strings.TrimSpace(row[4])
		}
		sites = append(sites, site)
	}

	if len(sites) == 0 {
		return nil, eris.New("sitelist: no sites found")
	}
	return sites, nil
}
