package report

import (
	"slices"
	"time"
)

// BuildProductReport validates the snapshot, joins sales to products,
// aggregates per product and decorates the result. Rows are ordered by
// total sales descending, then product key.
func BuildProductReport(sales []SalesLine, products []Product, evalDate time.Time, opts Options) ([]ProductReportRow, error) {
	if err := mergeErrors(ValidateSales(sales), ValidateProducts(products)); err != nil {
		return nil, err
	}
	lines := JoinProducts(sales, products)
	metrics := Aggregate(lines, ByProduct, evalDate, opts.Workers)
	return DecorateProducts(metrics), nil
}

// DecorateProducts derives KPIs, segments and ranks for product metrics.
// The input slice is not modified.
func DecorateProducts(metrics []EntityMetrics) []ProductReportRow {
	ms := slices.Clone(metrics)
	sortByRevenue(ms)

	sales := make([]int, len(ms))
	orders := make([]int, len(ms))
	categories := make([]string, len(ms))
	for i := range ms {
		sales[i] = ms[i].TotalSales
		orders[i] = ms[i].TotalOrders
		if ms[i].Product != nil {
			categories[i] = ms[i].Product.Category
		}
	}
	revenueRank := DenseRank(sales)
	orderRank := DenseRank(orders)
	categoryRank := PartitionedDenseRank(sales, categories)
	categoryTotals := PartitionTotals(sales, categories)
	total := sum(sales)

	rows := make([]ProductReportRow, len(ms))
	for i := range ms {
		m := &ms[i]
		cost := costOf(m)
		lifespan := float64(m.LifespanMonths)
		row := ProductReportRow{
			ProductKey:              m.Key,
			Cost:                    cost,
			CostRange:               CostRanges.Evaluate(m),
			PerformanceSegment:      ProductPerformance.Evaluate(m),
			RecencyStatus:           ProductRecency.Evaluate(m),
			HealthScore:             ProductHealth.Evaluate(m),
			FirstSaleDate:           formatDate(m.FirstActivity),
			LastSaleDate:            formatDate(m.LastActivity),
			LifespanMonths:          m.LifespanMonths,
			RecencyMonths:           m.RecencyMonths,
			RecencyDays:             m.RecencyDays,
			TotalOrders:             m.TotalOrders,
			TotalSales:              m.TotalSales,
			TotalQuantity:           m.TotalQuantity,
			TotalCustomers:          m.TotalCounterparts,
			AvgOrderRevenue:         Ratio(m.TotalSales, m.TotalOrders),
			AvgMonthlyRevenue:       SafeDivide(float64(m.TotalSales), &lifespan),
			AvgOrdersPerMonth:       SafeDivide(float64(m.TotalOrders), &lifespan),
			AvgItemsPerOrder:        Ratio(m.TotalQuantity, m.TotalOrders),
			DiversityScore:          Ratio(m.TotalCounterparts, m.TotalOrders),
			MinPrice:                m.MinPrice,
			MaxPrice:                m.MaxPrice,
			AvgSellingPrice:         m.AvgSellingPrice,
			ProfitMargin:            ProfitMargin(m.AvgSellingPrice, cost),
			ProfitMarginPct:         ProfitMarginPct(m.AvgSellingPrice, cost),
			RevenueRank:             revenueRank[i],
			OrderFrequencyRank:      orderRank[i],
			CategoryRevenueRank:     categoryRank[i],
			RevenueDecile:           NTile(i, len(ms), 10),
			RevenueQuartile:         NTile(i, len(ms), 4),
			SalesContributionPct:    ContributionPct(m.TotalSales, total),
			CategoryContributionPct: ContributionPct(m.TotalSales, categoryTotals[categories[i]]),
		}
		if p := m.Product; p != nil {
			row.ProductNumber = p.ProductNumber
			row.ProductName = p.ProductName
			row.Category = p.Category
			row.Subcategory = p.Subcategory
			row.ProductLine = p.ProductLine
		}
		rows[i] = row
	}
	return rows
}
