//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package report implements the customer and product analytics engine.
//
// A report run joins sales facts to a dimension, reduces the joined lines to
// per-entity metrics and decorates the metrics with KPIs, segment labels,
// ranks and percentile buckets. Every stage is a pure function of its input
// and the injected evaluation date.
package report

import "time"

// SalesLine is one row of the sales fact table.
// A zero OrderDate means the order date is unknown.
type SalesLine struct {
	OrderNumber  string    `json:"order_number"`
	ProductKey   int       `json:"product_key"`
	CustomerKey  int       `json:"customer_key"`
	OrderDate    time.Time `json:"order_date"`
	ShippingDate time.Time `json:"shipping_date"`
	DueDate      time.Time `json:"due_date"`
	SalesAmount  int       `json:"sales_amount"`
	Quantity     int       `json:"quantity"`
	Price        int       `json:"price"`
}

// Customer is a row of the customer dimension.
type Customer struct {
	CustomerKey    int       `json:"customer_key"`
	CustomerID     int       `json:"customer_id"`
	CustomerNumber string    `json:"customer_number"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Country        string    `json:"country"`
	MaritalStatus  string    `json:"marital_status"`
	Gender         string    `json:"gender"`
	Birthdate      time.Time `json:"birthdate"`
	CreateDate     time.Time `json:"create_date"`
}

// FullName returns "first last", trimmed when either part is missing.
func (c *Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// Product is a row of the product dimension. Cost is nil when unknown.
type Product struct {
	ProductKey    int       `json:"product_key"`
	ProductID     int       `json:"product_id"`
	ProductNumber string    `json:"product_number"`
	ProductName   string    `json:"product_name"`
	CategoryID    string    `json:"category_id"`
	Category      string    `json:"category"`
	Subcategory   string    `json:"subcategory"`
	Maintenance   string    `json:"maintenance"`
	Cost          *int      `json:"cost"`
	ProductLine   string    `json:"product_line"`
	StartDate     time.Time `json:"start_date"`
}

// EnrichedLine is a sales line joined to its dimension row.
// Exactly one of Customer or Product is consulted depending on the join;
// either may be nil when the fact references a key the dimension lacks.
type EnrichedLine struct {
	SalesLine
	Customer *Customer
	Product  *Product

	// Age is the customer's age at the evaluation date, nil when unknown.
	Age *int
}

// GroupKey selects the entity an aggregation groups by.
type GroupKey int

const (
	// ByCustomer groups lines by customer key.
	ByCustomer GroupKey = iota
	// ByProduct groups lines by product key.
	ByProduct
)

// String returns the group key name.
func (k GroupKey) String() string {
	if k == ByProduct {
		return "product"
	}
	return "customer"
}

// EntityMetrics is the reduction of all lines sharing one entity key.
type EntityMetrics struct {
	Key      int
	Customer *Customer
	Product  *Product
	Age      *int

	TotalOrders         int
	TotalSales          int
	TotalQuantity       int
	TotalCounterparts   int
	AvgTransactionValue *float64

	FirstActivity  time.Time
	LastActivity   time.Time
	LifespanMonths int
	RecencyMonths  int
	RecencyDays    int

	MinPrice        *int
	MaxPrice        *int
	AvgSellingPrice *float64
}

// CustomerReportRow is one decorated row of the customer report.
type CustomerReportRow struct {
	CustomerKey    int    `json:"customer_key" yaml:"customer_key"`
	CustomerNumber string `json:"customer_number" yaml:"customer_number"`
	CustomerName   string `json:"customer_name" yaml:"customer_name"`
	Country        string `json:"country" yaml:"country"`
	Gender         string `json:"gender" yaml:"gender"`
	MaritalStatus  string `json:"marital_status" yaml:"marital_status"`
	Age            *int   `json:"age" yaml:"age"`
	AgeGroup       string `json:"age_group" yaml:"age_group"`

	CustomerSegment          string `json:"customer_segment" yaml:"customer_segment"`
	EngagementStatus         string `json:"engagement_status" yaml:"engagement_status"`
	ValueTier                string `json:"value_tier" yaml:"value_tier"`
	PurchaseFrequencySegment string `json:"purchase_frequency_segment" yaml:"purchase_frequency_segment"`
	HealthScore              string `json:"health_score" yaml:"health_score"`

	FirstOrderDate string `json:"first_order_date" yaml:"first_order_date"`
	LastOrderDate  string `json:"last_order_date" yaml:"last_order_date"`
	LifespanMonths int    `json:"lifespan_months" yaml:"lifespan_months"`
	RecencyMonths  int    `json:"recency_months" yaml:"recency_months"`
	RecencyDays    int    `json:"recency_days" yaml:"recency_days"`

	TotalOrders   int `json:"total_orders" yaml:"total_orders"`
	TotalSales    int `json:"total_sales" yaml:"total_sales"`
	TotalQuantity int `json:"total_quantity" yaml:"total_quantity"`
	TotalProducts int `json:"total_products" yaml:"total_products"`

	AvgOrderValue       *float64 `json:"avg_order_value" yaml:"avg_order_value"`
	AvgMonthlySpend     *float64 `json:"avg_monthly_spend" yaml:"avg_monthly_spend"`
	AvgOrdersPerMonth   *float64 `json:"avg_orders_per_month" yaml:"avg_orders_per_month"`
	AvgItemsPerOrder    *float64 `json:"avg_items_per_order" yaml:"avg_items_per_order"`
	DiversityScore      *float64 `json:"diversity_score" yaml:"diversity_score"`
	AvgTransactionValue *float64 `json:"avg_transaction_value" yaml:"avg_transaction_value"`

	MinPrice        *int     `json:"min_price" yaml:"min_price"`
	MaxPrice        *int     `json:"max_price" yaml:"max_price"`
	AvgSellingPrice *float64 `json:"avg_selling_price" yaml:"avg_selling_price"`

	RevenueRank          int     `json:"revenue_rank" yaml:"revenue_rank"`
	OrderFrequencyRank   int     `json:"order_frequency_rank" yaml:"order_frequency_rank"`
	CountryRevenueRank   int     `json:"country_revenue_rank" yaml:"country_revenue_rank"`
	RevenueDecile        int     `json:"revenue_decile" yaml:"revenue_decile"`
	RevenueQuartile      int     `json:"revenue_quartile" yaml:"revenue_quartile"`
	SalesContributionPct float64 `json:"sales_contribution_pct" yaml:"sales_contribution_pct"`
}

// ProductReportRow is one decorated row of the product report.
type ProductReportRow struct {
	ProductKey    int    `json:"product_key" yaml:"product_key"`
	ProductNumber string `json:"product_number" yaml:"product_number"`
	ProductName   string `json:"product_name" yaml:"product_name"`
	Category      string `json:"category" yaml:"category"`
	Subcategory   string `json:"subcategory" yaml:"subcategory"`
	ProductLine   string `json:"product_line" yaml:"product_line"`
	Cost          *int   `json:"cost" yaml:"cost"`
	CostRange     string `json:"cost_range" yaml:"cost_range"`

	PerformanceSegment string `json:"performance_segment" yaml:"performance_segment"`
	RecencyStatus      string `json:"recency_status" yaml:"recency_status"`
	HealthScore        string `json:"product_health_score" yaml:"product_health_score"`

	FirstSaleDate  string `json:"first_sale_date" yaml:"first_sale_date"`
	LastSaleDate   string `json:"last_sale_date" yaml:"last_sale_date"`
	LifespanMonths int    `json:"lifespan_months" yaml:"lifespan_months"`
	RecencyMonths  int    `json:"recency_months" yaml:"recency_months"`
	RecencyDays    int    `json:"recency_days" yaml:"recency_days"`

	TotalOrders    int `json:"total_orders" yaml:"total_orders"`
	TotalSales     int `json:"total_sales" yaml:"total_sales"`
	TotalQuantity  int `json:"total_quantity" yaml:"total_quantity"`
	TotalCustomers int `json:"total_customers" yaml:"total_customers"`

	AvgOrderRevenue   *float64 `json:"avg_order_revenue" yaml:"avg_order_revenue"`
	AvgMonthlyRevenue *float64 `json:"avg_monthly_revenue" yaml:"avg_monthly_revenue"`
	AvgOrdersPerMonth *float64 `json:"avg_orders_per_month" yaml:"avg_orders_per_month"`
	AvgItemsPerOrder  *float64 `json:"avg_items_per_order" yaml:"avg_items_per_order"`
	DiversityScore    *float64 `json:"diversity_score" yaml:"diversity_score"`

	MinPrice        *int     `json:"min_price" yaml:"min_price"`
	MaxPrice        *int     `json:"max_price" yaml:"max_price"`
	AvgSellingPrice *float64 `json:"avg_selling_price" yaml:"avg_selling_price"`
	ProfitMargin    *float64 `json:"profit_margin" yaml:"profit_margin"`
	ProfitMarginPct *float64 `json:"profit_margin_pct" yaml:"profit_margin_pct"`

	RevenueRank             int     `json:"revenue_rank" yaml:"revenue_rank"`
	OrderFrequencyRank      int     `json:"order_frequency_rank" yaml:"order_frequency_rank"`
	CategoryRevenueRank     int     `json:"category_revenue_rank" yaml:"category_revenue_rank"`
	RevenueDecile           int     `json:"revenue_decile" yaml:"revenue_decile"`
	RevenueQuartile         int     `json:"revenue_quartile" yaml:"revenue_quartile"`
	SalesContributionPct    float64 `json:"sales_contribution_pct" yaml:"sales_contribution_pct"`
	CategoryContributionPct float64 `json:"category_contribution_pct" yaml:"category_contribution_pct"`
}
