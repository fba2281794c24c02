package export

import (
	"strconv"

	"github.com/pgEdge/pgedge-salesreport/internal/report"
)

type customerRow = report.CustomerReportRow
type productRow = report.ProductReportRow

var customerColumns = []column[customerRow]{
	{"customer_key", true, false, func(r *customerRow) string { return itoa(r.CustomerKey) }},
	{"customer_number", false, false, func(r *customerRow) string { return r.CustomerNumber }},
	{"customer_name", true, false, func(r *customerRow) string { return r.CustomerName }},
	{"country", true, false, func(r *customerRow) string { return r.Country }},
	{"gender", false, false, func(r *customerRow) string { return r.Gender }},
	{"marital_status", false, false, func(r *customerRow) string { return r.MaritalStatus }},
	{"age", false, false, func(r *customerRow) string { return intp(r.Age) }},
	{"age_group", true, true, func(r *customerRow) string { return r.AgeGroup }},
	{"customer_segment", true, true, func(r *customerRow) string { return r.CustomerSegment }},
	{"engagement_status", true, true, func(r *customerRow) string { return r.EngagementStatus }},
	{"value_tier", true, true, func(r *customerRow) string { return r.ValueTier }},
	{"purchase_frequency_segment", false, true, func(r *customerRow) string { return r.PurchaseFrequencySegment }},
	{"health_score", true, true, func(r *customerRow) string { return r.HealthScore }},
	{"first_order_date", false, false, func(r *customerRow) string { return r.FirstOrderDate }},
	{"last_order_date", false, false, func(r *customerRow) string { return r.LastOrderDate }},
	{"lifespan_months", false, false, func(r *customerRow) string { return itoa(r.LifespanMonths) }},
	{"recency_months", false, false, func(r *customerRow) string { return itoa(r.RecencyMonths) }},
	{"recency_days", false, false, func(r *customerRow) string { return itoa(r.RecencyDays) }},
	{"total_orders", true, false, func(r *customerRow) string { return itoa(r.TotalOrders) }},
	{"total_sales", true, false, func(r *customerRow) string { return itoa(r.TotalSales) }},
	{"total_quantity", false, false, func(r *customerRow) string { return itoa(r.TotalQuantity) }},
	{"total_products", false, false, func(r *customerRow) string { return itoa(r.TotalProducts) }},
	{"avg_order_value", true, false, func(r *customerRow) string { return floatp(r.AvgOrderValue) }},
	{"avg_monthly_spend", false, false, func(r *customerRow) string { return floatp(r.AvgMonthlySpend) }},
	{"avg_orders_per_month", false, false, func(r *customerRow) string { return floatp(r.AvgOrdersPerMonth) }},
	{"avg_items_per_order", false, false, func(r *customerRow) string { return floatp(r.AvgItemsPerOrder) }},
	{"diversity_score", false, false, func(r *customerRow) string { return floatp(r.DiversityScore) }},
	{"avg_transaction_value", false, false, func(r *customerRow) string { return floatp(r.AvgTransactionValue) }},
	{"min_price", false, false, func(r *customerRow) string { return intp(r.MinPrice) }},
	{"max_price", false, false, func(r *customerRow) string { return intp(r.MaxPrice) }},
	{"avg_selling_price", false, false, func(r *customerRow) string { return floatp(r.AvgSellingPrice) }},
	{"revenue_rank", true, false, func(r *customerRow) string { return itoa(r.RevenueRank) }},
	{"order_frequency_rank", false, false, func(r *customerRow) string { return itoa(r.OrderFrequencyRank) }},
	{"country_revenue_rank", false, false, func(r *customerRow) string { return itoa(r.CountryRevenueRank) }},
	{"revenue_decile", false, false, func(r *customerRow) string { return itoa(r.RevenueDecile) }},
	{"revenue_quartile", false, false, func(r *customerRow) string { return itoa(r.RevenueQuartile) }},
	{"sales_contribution_pct", true, false, func(r *customerRow) string { return ftoa(r.SalesContributionPct) }},
}

var productColumns = []column[productRow]{
	{"product_key", true, false, func(r *productRow) string { return itoa(r.ProductKey) }},
	{"product_number", false, false, func(r *productRow) string { return r.ProductNumber }},
	{"product_name", true, false, func(r *productRow) string { return r.ProductName }},
	{"category", true, false, func(r *productRow) string { return r.Category }},
	{"subcategory", false, false, func(r *productRow) string { return r.Subcategory }},
	{"product_line", false, false, func(r *productRow) string { return r.ProductLine }},
	{"cost", false, false, func(r *productRow) string { return intp(r.Cost) }},
	{"cost_range", true, true, func(r *productRow) string { return r.CostRange }},
	{"performance_segment", true, true, func(r *productRow) string { return r.PerformanceSegment }},
	{"recency_status", true, true, func(r *productRow) string { return r.RecencyStatus }},
	{"product_health_score", true, true, func(r *productRow) string { return r.HealthScore }},
	{"first_sale_date", false, false, func(r *productRow) string { return r.FirstSaleDate }},
	{"last_sale_date", false, false, func(r *productRow) string { return r.LastSaleDate }},
	{"lifespan_months", false, false, func(r *productRow) string { return itoa(r.LifespanMonths) }},
	{"recency_months", false, false, func(r *productRow) string { return itoa(r.RecencyMonths) }},
	{"recency_days", false, false, func(r *productRow) string { return itoa(r.RecencyDays) }},
	{"total_orders", true, false, func(r *productRow) string { return itoa(r.TotalOrders) }},
	{"total_sales", true, false, func(r *productRow) string { return itoa(r.TotalSales) }},
	{"total_quantity", false, false, func(r *productRow) string { return itoa(r.TotalQuantity) }},
	{"total_customers", true, false, func(r *productRow) string { return itoa(r.TotalCustomers) }},
	{"avg_order_revenue", false, false, func(r *productRow) string { return floatp(r.AvgOrderRevenue) }},
	{"avg_monthly_revenue", false, false, func(r *productRow) string { return floatp(r.AvgMonthlyRevenue) }},
	{"avg_orders_per_month", false, false, func(r *productRow) string { return floatp(r.AvgOrdersPerMonth) }},
	{"avg_items_per_order", false, false, func(r *productRow) string { return floatp(r.AvgItemsPerOrder) }},
	{"diversity_score", false, false, func(r *productRow) string { return floatp(r.DiversityScore) }},
	{"min_price", false, false, func(r *productRow) string { return intp(r.MinPrice) }},
	{"max_price", false, false, func(r *productRow) string { return intp(r.MaxPrice) }},
	{"avg_selling_price", false, false, func(r *productRow) string { return floatp(r.AvgSellingPrice) }},
	{"profit_margin", false, false, func(r *productRow) string { return floatp(r.ProfitMargin) }},
	{"profit_margin_pct", true, false, func(r *productRow) string { return floatp(r.ProfitMarginPct) }},
	{"revenue_rank", true, false, func(r *productRow) string { return itoa(r.RevenueRank) }},
	{"order_frequency_rank", false, false, func(r *productRow) string { return itoa(r.OrderFrequencyRank) }},
	{"category_revenue_rank", false, false, func(r *productRow) string { return itoa(r.CategoryRevenueRank) }},
	{"revenue_decile", false, false, func(r *productRow) string { return itoa(r.RevenueDecile) }},
	{"revenue_quartile", false, false, func(r *productRow) string { return itoa(r.RevenueQuartile) }},
	{"sales_contribution_pct", true, false, func(r *productRow) string { return ftoa(r.SalesContributionPct) }},
	{"category_contribution_pct", false, false, func(r *productRow) string { return ftoa(r.CategoryContributionPct) }},
}

// CustomerTable renders the customer report.
func CustomerTable(rows []report.CustomerReportRow) *Table {
	if rows == nil {
		rows = []report.CustomerReportRow{}
	}
	return newTable("customers", "Customer Report", customerColumns, rows)
}

// ProductTable renders the product report.
func ProductTable(rows []report.ProductReportRow) *Table {
	if rows == nil {
		rows = []report.ProductReportRow{}
	}
	return newTable("products", "Product Report", productColumns, rows)
}

func itoa(n int) string { return strconv.Itoa(n) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) }

// intp and floatp render NULL as an empty cell.
func intp(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatp(v *float64) string {
	if v == nil {
		return ""
	}
	return ftoa(*v)
}
