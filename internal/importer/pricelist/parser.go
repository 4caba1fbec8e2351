package pricelist

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/bakdaulet/kassa/internal/api"
	enc "github.com/bakdaulet/kassa/internal/encoding"
)

// Parser reads delimited price lists and produces product create params.
// It auto-detects the column layout by matching headers against known
// profiles, and the delimiter by retrying with a comma when semicolons
// yield no match.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]api.ProductCreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	for _, comma := range []rune{';', ','} {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = comma
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true

		rows, err := reader.ReadAll()
		if err != nil {
			continue
		}

		profile, colMap, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		return parseRows(profile, colMap, rows[headerIdx+1:], headerIdx+1)
	}

	return nil, fmt.Errorf("no known price list format found: expected barcode, name and price columns")
}

// colIndex maps normalized column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts products from data rows using the matched profile.
// headerRowNum is the 0-based index of the header in the original file
// (for error messages).
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]api.ProductCreateParams, error) {
	barcodeIdx := cols[p.BarcodeCol]
	nameIdx := cols[p.NameCol]
	priceIdx := cols[p.PriceCol]

	var products []api.ProductCreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 1 // 1-based file line

		barcode := cellValue(row, barcodeIdx)
		if barcode == "" || !strings.ContainsFunc(barcode, unicode.IsDigit) {
			// Footer, totals or blank spacer row.
			continue
		}

		name := cellValue(row, nameIdx)
		if name == "" {
			return nil, fmt.Errorf("row %d: missing product name", rowNum)
		}

		priceCents, err := parsePriceCents(cellValue(row, priceIdx))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad price: %w", rowNum, err)
		}

		product := api.ProductCreateParams{
			Barcode:    barcode,
			Name:       name,
			PriceCents: priceCents,
		}

		if p.StockCol != "" {
			if idx, ok := cols[p.StockCol]; ok {
				if stock, err := strconv.Atoi(cellValue(row, idx)); err == nil {
					product.Stock = stock
				}
			}
		}

		if p.DescCol != "" {
			if idx, ok := cols[p.DescCol]; ok {
				product.Description = cellValue(row, idx)
			}
		}

		products = append(products, product)
	}

	return products, nil
}

// cellValue returns the trimmed cell at idx, or empty when the row is
// too short.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

// parsePriceCents parses a price into cents. Both decimal marks are
// accepted: "1 234,56" -> 123456, "1,234.56" -> 123456, "450" -> 45000.
func parsePriceCents(s string) (int64, error) {
	clean := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\u00a0' {
			return -1
		}

		return r
	}, s)

	switch {
	case strings.Contains(clean, ",") && strings.Contains(clean, "."):
		// The rightmost mark is the decimal separator.
		if strings.LastIndex(clean, ",") > strings.LastIndex(clean, ".") {
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.ReplaceAll(clean, ",", ".")
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case strings.Contains(clean, ","):
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	val, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, err
	}

	if val < 0 {
		return 0, fmt.Errorf("negative price %q", s)
	}

	return int64(val*100 + 0.5), nil
}
