package dashboard

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"descuentosgo/dealworker/internal/process"
)

// WriteReport renders the batch statistics as a static HTML report:
// products per store, discount buckets and price buckets.
func WriteReport(stats process.Statistics, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("dashboard: create report dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dashboard: create report file: %w", err)
	}
	defer f.Close()

	if err := storeBar(stats).Render(f); err != nil {
		return fmt.Errorf("dashboard: render store chart: %w", err)
	}
	if err := discountPie(stats).Render(f); err != nil {
		return fmt.Errorf("dashboard: render discount chart: %w", err)
	}
	if err := priceBar(stats).Render(f); err != nil {
		return fmt.Errorf("dashboard: render price chart: %w", err)
	}
	return nil
}

func storeBar(stats process.Statistics) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Ofertas por tienda"}),
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
	)

	stores := sortedKeys(stats.Stores)
	var values []opts.BarData
	for _, store := range stores {
		values = append(values, opts.BarData{Value: stats.Stores[store]})
	}
	bar.SetXAxis(stores).AddSeries("Productos", values)
	return bar
}

func discountPie(stats process.Statistics) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Rangos de descuento"}))

	var items []opts.PieData
	for _, bucket := range []string{process.BucketDiscount70, process.BucketDiscount80, process.BucketDiscount90} {
		items = append(items, opts.PieData{Name: bucket, Value: stats.DiscountRanges[bucket]})
	}
	pie.AddSeries("Descuentos", items)
	return pie
}

func priceBar(stats process.Statistics) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Rangos de precio"}))

	buckets := []string{process.BucketPriceLow, process.BucketPriceMid, process.BucketPriceHigh}
	var values []opts.BarData
	for _, bucket := range buckets {
		values = append(values, opts.BarData{Value: stats.PriceRanges[bucket]})
	}
	bar.SetXAxis(buckets).AddSeries("Productos", values)
	return bar
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
