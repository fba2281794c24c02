package report

// Rule pairs a predicate over entity metrics with the label it assigns.
type Rule struct {
	Label     string
	Condition string
	Match     func(m *EntityMetrics) bool
}

// RuleSet is an ordered list of rules evaluated top to bottom; the first
// matching rule wins and Default is assigned when none match.
type RuleSet struct {
	Name    string
	Rules   []Rule
	Default string
}

// Evaluate returns the label of the first rule matching m.
func (rs *RuleSet) Evaluate(m *EntityMetrics) string {
	for _, r := range rs.Rules {
		if r.Match(m) {
			return r.Label
		}
	}
	return rs.Default
}

// Labels returns every label the rule set can produce, in rule order.
func (rs *RuleSet) Labels() []string {
	labels := make([]string, 0, len(rs.Rules)+1)
	for _, r := range rs.Rules {
		labels = append(labels, r.Label)
	}
	return append(labels, rs.Default)
}

// lt and le compare a nullable value; a nil value never matches.
func lt(v *int, bound int) bool { return v != nil && *v < bound }
func le(v *int, bound int) bool { return v != nil && *v <= bound }

func costOf(m *EntityMetrics) *int {
	if m.Product == nil {
		return nil
	}
	return m.Product.Cost
}

// AgeGroups buckets customers by age. A missing birthdate is reported as
// "Unknown" rather than falling into the oldest bucket.
var AgeGroups = RuleSet{
	Name: "age_group",
	Rules: []Rule{
		{"Unknown", "age is null", func(m *EntityMetrics) bool { return m.Age == nil }},
		{"Under 20", "age < 20", func(m *EntityMetrics) bool { return lt(m.Age, 20) }},
		{"20-29", "age < 30", func(m *EntityMetrics) bool { return lt(m.Age, 30) }},
		{"30-39", "age < 40", func(m *EntityMetrics) bool { return lt(m.Age, 40) }},
		{"40-49", "age < 50", func(m *EntityMetrics) bool { return lt(m.Age, 50) }},
	},
	Default: "50+",
}

// CustomerLifecycle separates long-standing customers by spend.
var CustomerLifecycle = RuleSet{
	Name: "customer_segment",
	Rules: []Rule{
		{"VIP", "lifespan >= 12 months and sales > 5000", func(m *EntityMetrics) bool {
			return m.LifespanMonths >= 12 && m.TotalSales > 5000
		}},
		{"Regular", "lifespan >= 12 months and sales <= 5000", func(m *EntityMetrics) bool {
			return m.LifespanMonths >= 12 && m.TotalSales <= 5000
		}},
	},
	Default: "New",
}

// Engagement classifies customers by months since their last order.
var Engagement = RuleSet{
	Name: "engagement_status",
	Rules: []Rule{
		{"Active", "recency <= 3 months", func(m *EntityMetrics) bool { return m.RecencyMonths <= 3 }},
		{"At Risk", "recency <= 6 months", func(m *EntityMetrics) bool { return m.RecencyMonths <= 6 }},
		{"Dormant", "recency <= 12 months", func(m *EntityMetrics) bool { return m.RecencyMonths <= 12 }},
	},
	Default: "Churned",
}

// ValueTiers classifies customers by lifetime sales.
var ValueTiers = RuleSet{
	Name: "value_tier",
	Rules: []Rule{
		{"High Value", "sales >= 10000", func(m *EntityMetrics) bool { return m.TotalSales >= 10000 }},
		{"Medium Value", "sales >= 5000", func(m *EntityMetrics) bool { return m.TotalSales >= 5000 }},
		{"Low Value", "sales >= 1000", func(m *EntityMetrics) bool { return m.TotalSales >= 1000 }},
	},
	Default: "Entry Level",
}

// PurchaseFrequency classifies customers by distinct order count.
var PurchaseFrequency = RuleSet{
	Name: "purchase_frequency_segment",
	Rules: []Rule{
		{"Frequent", "orders >= 10", func(m *EntityMetrics) bool { return m.TotalOrders >= 10 }},
		{"Regular", "orders >= 5", func(m *EntityMetrics) bool { return m.TotalOrders >= 5 }},
		{"Occasional", "orders >= 2", func(m *EntityMetrics) bool { return m.TotalOrders >= 2 }},
	},
	Default: "One-Time",
}

// CustomerHealth combines spend, recency and frequency.
var CustomerHealth = RuleSet{
	Name: "health_score",
	Rules: []Rule{
		{"Excellent", "sales >= 5000 and recency <= 3 and orders >= 5", func(m *EntityMetrics) bool {
			return m.TotalSales >= 5000 && m.RecencyMonths <= 3 && m.TotalOrders >= 5
		}},
		{"Good", "sales >= 2000 and recency <= 6", func(m *EntityMetrics) bool {
			return m.TotalSales >= 2000 && m.RecencyMonths <= 6
		}},
		{"Fair", "sales >= 1000 or recency <= 6", func(m *EntityMetrics) bool {
			return m.TotalSales >= 1000 || m.RecencyMonths <= 6
		}},
	},
	Default: "Poor",
}

// ProductPerformance classifies products by lifetime sales.
var ProductPerformance = RuleSet{
	Name: "performance_segment",
	Rules: []Rule{
		{"Low Performance", "sales < 200000", func(m *EntityMetrics) bool { return m.TotalSales < 200000 }},
		{"Mid Performance", "sales < 750000", func(m *EntityMetrics) bool { return m.TotalSales < 750000 }},
	},
	Default: "High Performance",
}

// ProductRecency classifies products by months since their last sale.
var ProductRecency = RuleSet{
	Name: "recency_status",
	Rules: []Rule{
		{"Active", "recency <= 3 months", func(m *EntityMetrics) bool { return m.RecencyMonths <= 3 }},
		{"At Risk", "recency <= 6 months", func(m *EntityMetrics) bool { return m.RecencyMonths <= 6 }},
		{"Dormant", "recency <= 12 months", func(m *EntityMetrics) bool { return m.RecencyMonths <= 12 }},
	},
	Default: "Inactive",
}

// ProductHealth combines product sales and recency.
var ProductHealth = RuleSet{
	Name: "product_health_score",
	Rules: []Rule{
		{"Excellent", "sales >= 750000 and recency <= 3", func(m *EntityMetrics) bool {
			return m.TotalSales >= 750000 && m.RecencyMonths <= 3
		}},
		{"Good", "sales >= 200000 and recency <= 6", func(m *EntityMetrics) bool {
			return m.TotalSales >= 200000 && m.RecencyMonths <= 6
		}},
		{"Fair", "sales >= 200000 or recency <= 6", func(m *EntityMetrics) bool {
			return m.TotalSales >= 200000 || m.RecencyMonths <= 6
		}},
	},
	Default: "Poor",
}

// CostRanges buckets products by unit cost. Unknown cost falls through to
// the last bucket.
var CostRanges = RuleSet{
	Name: "cost_range",
	Rules: []Rule{
		{"Below 100", "cost < 100", func(m *EntityMetrics) bool { return lt(costOf(m), 100) }},
		{"100-500", "cost < 500", func(m *EntityMetrics) bool { return lt(costOf(m), 500) }},
		{"500-1000", "cost <= 1000", func(m *EntityMetrics) bool { return le(costOf(m), 1000) }},
	},
	Default: "Above 1000",
}

// CustomerRuleSets lists the rule sets applied to the customer report.
func CustomerRuleSets() []*RuleSet {
	return []*RuleSet{&AgeGroups, &CustomerLifecycle, &Engagement, &ValueTiers, &PurchaseFrequency, &CustomerHealth}
}

// ProductRuleSets lists the rule sets applied to the product report.
func ProductRuleSets() []*RuleSet {
	return []*RuleSet{&ProductPerformance, &ProductRecency, &ProductHealth, &CostRanges}
}
