package dashboard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"descuentosgo/dealworker/internal/extract"
	"descuentosgo/dealworker/internal/process"
)

func TestWriteReport(t *testing.T) {
	stats := process.ComputeStatistics([]extract.Product{
		{Store: "falabella", Category: "tecnologia", CurrentPrice: 9990, DiscountPercentage: 72},
		{Store: "paris", Category: "hogar", CurrentPrice: 59990, DiscountPercentage: 91},
	})

	path := filepath.Join(t.TempDir(), "reports", "ofertas.html")
	assert.NoError(t, WriteReport(stats, path))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)

	html := string(data)
	assert.Contains(t, html, "Ofertas por tienda")
	assert.Contains(t, html, "Rangos de descuento")
	assert.Contains(t, html, "Rangos de precio")
	assert.Contains(t, html, "falabella")
}
