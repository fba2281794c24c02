package report

import (
	"slices"
	"time"
)

// Options tunes a report build.
type Options struct {
	// Workers is the number of aggregation workers (0 = one per CPU).
	Workers int
}

// BuildCustomerReport validates the snapshot, joins sales to customers,
// aggregates per customer and decorates the result. Rows are ordered by
// total sales descending, then customer key.
func BuildCustomerReport(sales []SalesLine, customers []Customer, evalDate time.Time, opts Options) ([]CustomerReportRow, error) {
	if err := mergeErrors(ValidateSales(sales), ValidateCustomers(customers)); err != nil {
		return nil, err
	}
	lines := JoinCustomers(sales, customers, evalDate)
	metrics := Aggregate(lines, ByCustomer, evalDate, opts.Workers)
	return DecorateCustomers(metrics), nil
}

// DecorateCustomers derives KPIs, segments and ranks for customer metrics.
// The input slice is not modified.
func DecorateCustomers(metrics []EntityMetrics) []CustomerReportRow {
	ms := slices.Clone(metrics)
	sortByRevenue(ms)

	sales := make([]int, len(ms))
	orders := make([]int, len(ms))
	countries := make([]string, len(ms))
	for i := range ms {
		sales[i] = ms[i].TotalSales
		orders[i] = ms[i].TotalOrders
		if ms[i].Customer != nil {
			countries[i] = ms[i].Customer.Country
		}
	}
	revenueRank := DenseRank(sales)
	orderRank := DenseRank(orders)
	countryRank := PartitionedDenseRank(sales, countries)
	total := sum(sales)

	rows := make([]CustomerReportRow, len(ms))
	for i := range ms {
		m := &ms[i]
		lifespan := float64(m.LifespanMonths)
		row := CustomerReportRow{
			CustomerKey:              m.Key,
			Age:                      m.Age,
			AgeGroup:                 AgeGroups.Evaluate(m),
			CustomerSegment:          CustomerLifecycle.Evaluate(m),
			EngagementStatus:         Engagement.Evaluate(m),
			ValueTier:                ValueTiers.Evaluate(m),
			PurchaseFrequencySegment: PurchaseFrequency.Evaluate(m),
			HealthScore:              CustomerHealth.Evaluate(m),
			FirstOrderDate:           formatDate(m.FirstActivity),
			LastOrderDate:            formatDate(m.LastActivity),
			LifespanMonths:           m.LifespanMonths,
			RecencyMonths:            m.RecencyMonths,
			RecencyDays:              m.RecencyDays,
			TotalOrders:              m.TotalOrders,
			TotalSales:               m.TotalSales,
			TotalQuantity:            m.TotalQuantity,
			TotalProducts:            m.TotalCounterparts,
			AvgOrderValue:            Ratio(m.TotalSales, m.TotalOrders),
			AvgMonthlySpend:          SafeDivide(float64(m.TotalSales), &lifespan),
			AvgOrdersPerMonth:        SafeDivide(float64(m.TotalOrders), &lifespan),
			AvgItemsPerOrder:         Ratio(m.TotalQuantity, m.TotalOrders),
			DiversityScore:           Ratio(m.TotalCounterparts, m.TotalOrders),
			AvgTransactionValue:      m.AvgTransactionValue,
			MinPrice:                 m.MinPrice,
			MaxPrice:                 m.MaxPrice,
			AvgSellingPrice:          m.AvgSellingPrice,
			RevenueRank:              revenueRank[i],
			OrderFrequencyRank:       orderRank[i],
			CountryRevenueRank:       countryRank[i],
			RevenueDecile:            NTile(i, len(ms), 10),
			RevenueQuartile:          NTile(i, len(ms), 4),
			SalesContributionPct:     ContributionPct(m.TotalSales, total),
		}
		if c := m.Customer; c != nil {
			row.CustomerNumber = c.CustomerNumber
			row.CustomerName = c.FullName()
			row.Country = c.Country
			row.Gender = c.Gender
			row.MaritalStatus = c.MaritalStatus
		}
		rows[i] = row
	}
	return rows
}
