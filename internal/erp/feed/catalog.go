package feed

import (
	"time"

	"github.com/cnkcrm/crm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// catalogEntries is the static offer catalog served alongside the feed. The
// ERP export carries no offer rows, so offers are generated deterministically
// from this catalog rather than parsed; totals are computed on the way out.
var catalogEntries = []domain.LedgerOffer{
	{
		CustomerCode: "CR01332",
		OfferNo:      "TEK-584210",
		ContactName:  "Satın Alma",
		ContactPhone: "0312 394 43 63",
		ContactEmail: "satinalma@eurofer.example",
		PaymentTerm:  "120 gün",
		OfferDate:    time.Date(2025, time.July, 18, 0, 0, 0, 0, time.UTC),
		Notes:        "Fiyatlara KDV dahil değildir.",
		Items: []domain.OfferItem{
			{ItemID: "1", Description: "SDMT120412 Karbür Uç", Quantity: 50, Unit: "adet", UnitPrice: decimal.NewFromInt(240), Amount: decimal.NewFromInt(12000), DeliveryTime: "1 hafta"},
			{ItemID: "2", Description: "CG35692 Pens", Quantity: 3, Unit: "adet", UnitPrice: decimal.NewFromInt(480), Amount: decimal.NewFromInt(1440), DeliveryTime: "Stoktan"},
		},
	},
	{
		CustomerCode: "CR00980",
		OfferNo:      "TEK-584211",
		ContactName:  "METİN YALÇINDERE",
		ContactPhone: "0312 395 71 12",
		ContactEmail: "info@cutron.example",
		PaymentTerm:  "90 gün",
		OfferDate:    time.Date(2025, time.July, 21, 0, 0, 0, 0, time.UTC),
		Notes:        "",
		Items: []domain.OfferItem{
			{ItemID: "1", Description: "Ø6,00 Karbür Freze", Quantity: 20, Unit: "adet", UnitPrice: decimal.NewFromFloat(678.31), Amount: decimal.NewFromFloat(13566.20), DeliveryTime: "2 hafta"},
		},
	},
	{
		CustomerCode: "CR01629",
		OfferNo:      "TEK-584212",
		ContactName:  "MURAT AKSUNGUR",
		ContactPhone: "0312 396 02 45",
		ContactEmail: "murat@muratteknik.example",
		PaymentTerm:  "60 gün",
		OfferDate:    time.Date(2025, time.July, 25, 0, 0, 0, 0, time.UTC),
		Notes:        "Teslimat kargo ile yapılacaktır.",
		Items: []domain.OfferItem{
			{ItemID: "1", Description: "WELLCUT 3X9 Matkap", Quantity: 10, Unit: "adet", UnitPrice: decimal.NewFromFloat(665.40), Amount: decimal.NewFromInt(6654), DeliveryTime: "Stoktan"},
		},
	},
}

// CatalogOffers returns the synthetic offers with subtotal, 20% tax and grand
// total computed from the item amounts. Generation is deterministic and has
// no row filtering.
func CatalogOffers() []domain.LedgerOffer {
	offers := make([]domain.LedgerOffer, len(catalogEntries))
	for i, entry := range catalogEntries {
		subtotal := decimal.Zero
		for _, item := range entry.Items {
			subtotal = subtotal.Add(item.Amount)
		}
		entry.Subtotal = subtotal
		entry.Tax = subtotal.Mul(domain.OfferTaxRate)
		entry.GrandTotal = subtotal.Add(entry.Tax)
		offers[i] = entry
	}
	return offers
}
