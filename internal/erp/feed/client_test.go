package feed_test

import (
	"context"
	"testing"

	"github.com/cnkcrm/crm_backend/internal/apperrors"
	"github.com/cnkcrm/crm_backend/internal/erp/feed"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource records how many times the raw feed was read.
type countingSource struct {
	raw     string
	fetches int
}

func (s *countingSource) Fetch(ctx context.Context) (string, error) {
	s.fetches++
	return s.raw, nil
}

func newTestClient(rows ...string) (*feed.Client, *countingSource) {
	source := &countingSource{raw: testFeed(rows...)}
	return feed.NewClient(source, feed.DefaultConfig(), discardLogger()), source
}

func TestClient_ParsedUsesCache(t *testing.T) {
	ctx := context.Background()
	client, source := newTestClient(
		"Alış Faturası;Hayır;CR01332;EUROFER;Ostim;Ankara;Türkiye;BSF2025000000001;15.7.2025;1.234,56;₺1.234,56;Alım;Ostim VD;1234567890;1",
	)

	first, err := client.Parsed(ctx)
	require.NoError(t, err)
	second, err := client.Parsed(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, source.fetches)
}

func TestClient_FetchInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	client, source := newTestClient(
		"Alış Faturası;Hayır;CR01332;EUROFER;Ostim;Ankara;Türkiye;BSF2025000000001;15.7.2025;1.234,56;₺1.234,56;Alım;Ostim VD;1234567890;1",
	)

	_, err := client.Parsed(ctx)
	require.NoError(t, err)
	_, err = client.Fetch(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, source.fetches)
}

func TestClient_InvoicesForPeriod(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(
		"Alış Faturası;Hayır;CR01332;EUROFER;Ostim;Ankara;Türkiye;BSF2025000000001;15.7.2025;1.000,00;₺1.000,00;Temmuz;Ostim VD;1234567890;1",
		"Alış Faturası;Hayır;CR01332;EUROFER;Ostim;Ankara;Türkiye;BSF2025000000002;31.7.2025;500,00;₺500,00;Temmuz sonu;Ostim VD;1234567890;1",
		"Alış Faturası;Hayır;CR01332;EUROFER;Ostim;Ankara;Türkiye;BSF2025000000003;1.8.2025;200,00;₺200,00;Ağustos;Ostim VD;1234567890;1",
		"Alış Faturası;Hayır;CR00980;CUTRON;Yenimahalle;Ankara;Türkiye;BSF2025000000004;20.7.2025;300,00;₺300,00;Temmuz;Yenimahalle VD;9876543210;1",
	)

	invoices, err := client.InvoicesForPeriod(ctx, "CR01332", "2025-07")

	require.NoError(t, err)
	require.Len(t, invoices, 2)
	// Other codes and neighboring months are excluded; month boundaries are
	// inclusive.
	total := decimal.Zero
	for _, inv := range invoices {
		total = total.Add(inv.TotalAmount)
	}
	assert.True(t, total.Equal(decimal.NewFromInt(1500)), "got %s", total)
	assert.Empty(t, invoices[0].CustomerID)
}

func TestClient_InvoicesForPeriod_NoMatches(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(
		"Alış Faturası;Hayır;CR01332;EUROFER;Ostim;Ankara;Türkiye;BSF2025000000001;15.7.2025;1.000,00;₺1.000,00;Temmuz;Ostim VD;1234567890;1",
	)

	invoices, err := client.InvoicesForPeriod(ctx, "CR01332", "2024-01")

	require.NoError(t, err)
	assert.NotNil(t, invoices)
	assert.Empty(t, invoices)
}

func TestClient_InvoicesForPeriod_BadPeriod(t *testing.T) {
	ctx := context.Background()
	client, source := newTestClient()

	_, err := client.InvoicesForPeriod(ctx, "CR01332", "Temmuz 2025")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, 0, source.fetches)
}
