package report

import (
	"slices"
	"testing"
)

func TestAgeGroups(t *testing.T) {
	tests := []struct {
		name string
		age  *int
		want string
	}{
		{"unknown", nil, "Unknown"},
		{"teen", intPtr(19), "Under 20"},
		{"lower bound of twenties", intPtr(20), "20-29"},
		{"upper bound of twenties", intPtr(29), "20-29"},
		{"thirties", intPtr(35), "30-39"},
		{"forties", intPtr(49), "40-49"},
		{"fifty", intPtr(50), "50+"},
		{"old", intPtr(88), "50+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &EntityMetrics{Age: tt.age}
			if got := AgeGroups.Evaluate(m); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCustomerLifecycle(t *testing.T) {
	tests := []struct {
		lifespan, sales int
		want            string
	}{
		{12, 5001, "VIP"},
		{12, 5000, "Regular"},
		{30, 100, "Regular"},
		{11, 100000, "New"},
		{0, 0, "New"},
	}

	for _, tt := range tests {
		m := &EntityMetrics{LifespanMonths: tt.lifespan, TotalSales: tt.sales}
		if got := CustomerLifecycle.Evaluate(m); got != tt.want {
			t.Errorf("lifespan=%d sales=%d: expected %q, got %q", tt.lifespan, tt.sales, tt.want, got)
		}
	}
}

func TestRecencyRuleSets(t *testing.T) {
	tests := []struct {
		recency     int
		engagement  string
		productStat string
	}{
		{0, "Active", "Active"},
		{3, "Active", "Active"},
		{4, "At Risk", "At Risk"},
		{6, "At Risk", "At Risk"},
		{7, "Dormant", "Dormant"},
		{12, "Dormant", "Dormant"},
		{13, "Churned", "Inactive"},
	}

	for _, tt := range tests {
		m := &EntityMetrics{RecencyMonths: tt.recency}
		if got := Engagement.Evaluate(m); got != tt.engagement {
			t.Errorf("recency=%d: expected engagement %q, got %q", tt.recency, tt.engagement, got)
		}
		if got := ProductRecency.Evaluate(m); got != tt.productStat {
			t.Errorf("recency=%d: expected product status %q, got %q", tt.recency, tt.productStat, got)
		}
	}
}

func TestValueTiersAndFrequency(t *testing.T) {
	tiers := map[int]string{
		10000: "High Value",
		9999:  "Medium Value",
		5000:  "Medium Value",
		4999:  "Low Value",
		1000:  "Low Value",
		999:   "Entry Level",
		0:     "Entry Level",
	}
	for sales, want := range tiers {
		if got := ValueTiers.Evaluate(&EntityMetrics{TotalSales: sales}); got != want {
			t.Errorf("sales=%d: expected %q, got %q", sales, want, got)
		}
	}

	freq := map[int]string{
		10: "Frequent",
		9:  "Regular",
		5:  "Regular",
		4:  "Occasional",
		2:  "Occasional",
		1:  "One-Time",
	}
	for orders, want := range freq {
		if got := PurchaseFrequency.Evaluate(&EntityMetrics{TotalOrders: orders}); got != want {
			t.Errorf("orders=%d: expected %q, got %q", orders, want, got)
		}
	}
}

func TestCustomerHealth(t *testing.T) {
	tests := []struct {
		name                   string
		sales, recency, orders int
		want                   string
	}{
		{"excellent", 5000, 3, 5, "Excellent"},
		{"too few orders for excellent", 5000, 3, 4, "Good"},
		{"good", 2000, 6, 1, "Good"},
		{"fair by sales", 1000, 24, 1, "Fair"},
		{"fair by recency", 10, 6, 1, "Fair"},
		{"poor", 999, 7, 9, "Poor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &EntityMetrics{TotalSales: tt.sales, RecencyMonths: tt.recency, TotalOrders: tt.orders}
			if got := CustomerHealth.Evaluate(m); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestProductRuleSets(t *testing.T) {
	tests := []struct {
		sales, recency int
		perf, health   string
	}{
		{199999, 1, "Low Performance", "Fair"},
		{200000, 6, "Mid Performance", "Good"},
		{749999, 12, "Mid Performance", "Fair"},
		{750000, 3, "High Performance", "Excellent"},
		{750000, 4, "High Performance", "Good"},
		{100, 20, "Low Performance", "Poor"},
	}

	for _, tt := range tests {
		m := &EntityMetrics{TotalSales: tt.sales, RecencyMonths: tt.recency}
		if got := ProductPerformance.Evaluate(m); got != tt.perf {
			t.Errorf("sales=%d: expected %q, got %q", tt.sales, tt.perf, got)
		}
		if got := ProductHealth.Evaluate(m); got != tt.health {
			t.Errorf("sales=%d recency=%d: expected %q, got %q", tt.sales, tt.recency, tt.health, got)
		}
	}
}

func TestCostRanges(t *testing.T) {
	tests := []struct {
		name    string
		product *Product
		want    string
	}{
		{"no product", nil, "Above 1000"},
		{"unknown cost", &Product{}, "Above 1000"},
		{"cheap", &Product{Cost: intPtr(99)}, "Below 100"},
		{"hundred", &Product{Cost: intPtr(100)}, "100-500"},
		{"five hundred", &Product{Cost: intPtr(500)}, "500-1000"},
		{"thousand", &Product{Cost: intPtr(1000)}, "500-1000"},
		{"expensive", &Product{Cost: intPtr(1001)}, "Above 1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CostRanges.Evaluate(&EntityMetrics{Product: tt.product}); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRuleSetLabels(t *testing.T) {
	want := []string{"Unknown", "Under 20", "20-29", "30-39", "40-49", "50+"}
	if got := AgeGroups.Labels(); !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if n := len(CustomerRuleSets()); n != 6 {
		t.Errorf("Expected 6 customer rule sets, got %d", n)
	}
	if n := len(ProductRuleSets()); n != 4 {
		t.Errorf("Expected 4 product rule sets, got %d", n)
	}
}
