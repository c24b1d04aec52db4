package feed

import (
	"log/slog"
	"strings"

	"github.com/cnkcrm/crm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PlaceholderStockID is the synthetic stock id carried by the single line of
// every ledger-sourced invoice; the feed reports totals, not stock detail.
const PlaceholderStockID = "CSV_ITEM"

// Columns names the feed's header columns. The export is produced in the ERP
// operator's locale, so these are configuration rather than literals baked
// into the parsing logic.
type Columns struct {
	InvoiceType     string
	Cancelled       string
	CustomerCode    string
	CommercialTitle string
	District        string
	City            string
	Country         string
	InvoiceNo       string
	InvoiceDate     string
	GrandTotal      string
	Description     string
	TaxOffice       string
	TaxNumber       string
	Quantity        string
}

// Config carries the locale-specific column names and row-filter literals of
// the feed.
type Config struct {
	Columns         Columns
	PurchaseLiteral string // invoice-type value that qualifies a row
	YesLiteral      string // cancellation value that disqualifies a row
	CurrencyGlyphs  []string
}

// DefaultConfig returns the column names and literals of the reference
// Turkish ERP export.
func DefaultConfig() Config {
	return Config{
		Columns: Columns{
			InvoiceType:     "Fatura Türü",
			Cancelled:       "İptal",
			CustomerCode:    "Cari Kodu",
			CommercialTitle: "Ticari Unvanı",
			District:        "İlçesi",
			City:            "İli",
			Country:         "Ülkesi",
			InvoiceNo:       "Fatura No",
			InvoiceDate:     "Fatura Tarihi",
			GrandTotal:      "Genel Toplam",
			Description:     "Açıklama",
			TaxOffice:       "Vergi Dairesi",
			TaxNumber:       "Vergi No",
			Quantity:        "Miktar 1 Toplam",
		},
		PurchaseLiteral: "Alış Faturası",
		YesLiteral:      "Evet",
		CurrencyGlyphs:  []string{"₺", "$", "€"},
	}
}

// Parse normalizes a raw feed blob into ledger records. Rows that are not
// purchase invoices, are cancelled, are malformed (fewer cells than the
// header) or lack a customer code are excluded from both the invoice list and
// customer discovery. The first qualifying row for a customer code seeds its
// LedgerCustomer; later rows for the same code never update it within one
// parse.
func Parse(raw string, cfg Config, logger *slog.Logger) *domain.ParsedFeed {
	result := &domain.ParsedFeed{
		Customers: make(map[string]domain.LedgerCustomer),
		Invoices:  []domain.LedgerInvoice{},
		Offers:    CatalogOffers(),
	}

	lines := splitLines(raw)
	if len(lines) == 0 {
		return result
	}

	header := strings.TrimPrefix(lines[0], "\ufeff")
	headers := strings.Split(header, ";")
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}
	dataRows := lines[1:]

	col := func(name string) int {
		for i, h := range headers {
			if h == name {
				return i
			}
		}
		return -1
	}
	totalIdx := resolveGrandTotalColumn(headers, dataRows, cfg)

	typeIdx := col(cfg.Columns.InvoiceType)
	cancelIdx := col(cfg.Columns.Cancelled)
	codeIdx := col(cfg.Columns.CustomerCode)
	titleIdx := col(cfg.Columns.CommercialTitle)
	districtIdx := col(cfg.Columns.District)
	cityIdx := col(cfg.Columns.City)
	countryIdx := col(cfg.Columns.Country)
	invoiceNoIdx := col(cfg.Columns.InvoiceNo)
	dateIdx := col(cfg.Columns.InvoiceDate)
	descriptionIdx := col(cfg.Columns.Description)
	taxOfficeIdx := col(cfg.Columns.TaxOffice)
	taxNumberIdx := col(cfg.Columns.TaxNumber)
	quantityIdx := col(cfg.Columns.Quantity)

	for _, line := range dataRows {
		cells := strings.Split(line, ";")
		if len(cells) < len(headers) {
			logger.Warn("Skipping malformed feed row", slog.Int("cells", len(cells)), slog.Int("columns", len(headers)))
			continue
		}
		if cell(cells, typeIdx) != cfg.PurchaseLiteral || cell(cells, cancelIdx) == cfg.YesLiteral {
			continue
		}
		code := cell(cells, codeIdx)
		if code == "" {
			continue
		}

		if _, seen := result.Customers[code]; !seen {
			result.Customers[code] = domain.LedgerCustomer{
				CurrentCode:     code,
				Name:            cell(cells, titleIdx),
				CommercialTitle: cell(cells, titleIdx),
				City:            cell(cells, cityIdx),
				District:        cell(cells, districtIdx),
				Country:         cell(cells, countryIdx),
				TaxOffice:       cell(cells, taxOfficeIdx),
				TaxNumber:       cell(cells, taxNumberIdx),
			}
		}

		totalAmount := ParseCurrency(cell(cells, totalIdx), cfg.CurrencyGlyphs...)
		quantity := ParseQuantity(cell(cells, quantityIdx))
		date, ok := ParseDate(cell(cells, dateIdx))
		if !ok {
			logger.Warn("Unparseable invoice date, falling back to now",
				slog.String("invoice_no", cell(cells, invoiceNoIdx)),
				slog.String("raw_date", cell(cells, dateIdx)))
		}

		result.Invoices = append(result.Invoices, domain.LedgerInvoice{
			InvoiceID:    cell(cells, invoiceNoIdx),
			CustomerCode: code,
			Date:         date,
			TotalAmount:  totalAmount,
			Description:  cell(cells, descriptionIdx),
			Items:        []domain.InvoiceItem{syntheticItem(totalAmount, quantity)},
		})
	}

	return result
}

// resolveGrandTotalColumn disambiguates duplicate grand-total headers by
// inspecting the first data row and picking the occurrence whose cell carries
// a currency glyph. The choice is made once per parse and applied to every
// row; when no occurrence matches, the first column by that name wins.
func resolveGrandTotalColumn(headers []string, dataRows []string, cfg Config) int {
	var candidates []int
	for i, h := range headers {
		if h == cfg.Columns.GrandTotal {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) > 1 && len(dataRows) > 0 {
		firstRow := strings.Split(dataRows[0], ";")
		for _, idx := range candidates {
			if idx >= len(firstRow) {
				continue
			}
			for _, glyph := range cfg.CurrencyGlyphs {
				if strings.Contains(firstRow[idx], glyph) {
					return idx
				}
			}
		}
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return -1
}

// syntheticItem builds the single placeholder line of a ledger invoice. A
// zero reported quantity defaults to one, and the unit price is back-computed
// from the grand total.
func syntheticItem(total decimal.Decimal, quantity int) domain.InvoiceItem {
	item := domain.InvoiceItem{StockID: PlaceholderStockID, Quantity: quantity, UnitPrice: total}
	if quantity > 0 {
		item.UnitPrice = total.Div(decimal.NewFromInt(int64(quantity)))
	} else {
		item.Quantity = 1
	}
	return item
}

// cell returns the trimmed value at idx, or "" when the column is absent from
// the header.
func cell(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

func splitLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
