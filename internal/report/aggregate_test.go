package report

import (
	"slices"
	"testing"
	"time"
)

func TestJoinCustomers(t *testing.T) {
	customers := []Customer{
		{CustomerKey: 1, FirstName: "Ada", Birthdate: date(1990, 8, 15)},
		{CustomerKey: 2, FirstName: "Bo"},
	}
	facts := []SalesLine{
		{OrderNumber: "SO1", CustomerKey: 1, OrderDate: date(2024, 1, 1)},
		{OrderNumber: "SO2", CustomerKey: 2, OrderDate: date(2024, 1, 1)},
		{OrderNumber: "SO3", CustomerKey: 99, OrderDate: date(2024, 1, 1)},
		{OrderNumber: "SO4", CustomerKey: 1},
	}

	lines := JoinCustomers(facts, customers, date(2024, 7, 1))
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines (undated fact dropped), got %d", len(lines))
	}
	if lines[0].Customer == nil || lines[0].Age == nil || *lines[0].Age != 33 {
		t.Errorf("Expected matched customer aged 33, got %+v", lines[0])
	}
	if lines[1].Customer == nil || lines[1].Age != nil {
		t.Error("Expected matched customer without birthdate to have nil age")
	}
	if lines[2].Customer != nil {
		t.Error("Expected unmatched fact to keep a nil customer")
	}
}

func TestJoinProducts(t *testing.T) {
	products := []Product{{ProductKey: 7, ProductName: "Road Bike"}}
	facts := []SalesLine{
		{OrderNumber: "SO1", ProductKey: 7, OrderDate: date(2024, 1, 1)},
		{OrderNumber: "SO2", ProductKey: 8, OrderDate: date(2024, 1, 1)},
	}

	lines := JoinProducts(facts, products)
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if lines[0].Product == nil || lines[1].Product != nil {
		t.Error("Expected left-join semantics on product key")
	}
}

func TestAggregateCustomer(t *testing.T) {
	lines := []EnrichedLine{
		{SalesLine: SalesLine{OrderNumber: "SO1", CustomerKey: 1, ProductKey: 10, OrderDate: date(2024, 1, 20), SalesAmount: 100, Quantity: 1, Price: 100}},
		{SalesLine: SalesLine{OrderNumber: "SO1", CustomerKey: 1, ProductKey: 11, OrderDate: date(2024, 1, 20), SalesAmount: 60, Quantity: 3, Price: 20}},
		{SalesLine: SalesLine{OrderNumber: "SO2", CustomerKey: 1, ProductKey: 10, OrderDate: date(2024, 5, 2), SalesAmount: 200, Quantity: 2, Price: 100}},
		{SalesLine: SalesLine{OrderNumber: "SO3", CustomerKey: 2, ProductKey: 10, OrderDate: date(2024, 6, 1), SalesAmount: 0, Quantity: 0, Price: 100}},
	}

	metrics := Aggregate(lines, ByCustomer, date(2024, 7, 10), 3)
	if len(metrics) != 2 {
		t.Fatalf("Expected 2 entities, got %d", len(metrics))
	}
	slices.SortFunc(metrics, func(a, b EntityMetrics) int { return a.Key - b.Key })

	m := metrics[0]
	if m.TotalOrders != 2 {
		t.Errorf("Expected 2 distinct orders, got %d", m.TotalOrders)
	}
	if m.TotalSales != 360 || m.TotalQuantity != 6 {
		t.Errorf("Expected sales 360 and quantity 6, got %d and %d", m.TotalSales, m.TotalQuantity)
	}
	if m.TotalCounterparts != 2 {
		t.Errorf("Expected 2 distinct products, got %d", m.TotalCounterparts)
	}
	if m.LifespanMonths != 4 {
		t.Errorf("Expected lifespan 4 months, got %d", m.LifespanMonths)
	}
	if m.RecencyMonths != 2 || m.RecencyDays != 69 {
		t.Errorf("Expected recency 2 months / 69 days, got %d / %d", m.RecencyMonths, m.RecencyDays)
	}
	if *m.MinPrice != 20 || *m.MaxPrice != 100 {
		t.Errorf("Expected price range 20..100, got %d..%d", *m.MinPrice, *m.MaxPrice)
	}
	// Per-line mean of 100/1, 60/3, 200/2, not 360/6.
	if m.AvgSellingPrice == nil || *m.AvgSellingPrice != 220.0/3 {
		t.Errorf("Expected per-line average selling price %v, got %v", 220.0/3, m.AvgSellingPrice)
	}
	if m.AvgTransactionValue == nil || *m.AvgTransactionValue != 120 {
		t.Errorf("Expected average transaction value 120, got %v", m.AvgTransactionValue)
	}

	// Zero-quantity lines contribute no selling price.
	if metrics[1].AvgSellingPrice != nil {
		t.Errorf("Expected nil selling price for zero quantity, got %v", *metrics[1].AvgSellingPrice)
	}
}

func TestAggregateRecencyClamped(t *testing.T) {
	lines := []EnrichedLine{
		{SalesLine: SalesLine{OrderNumber: "SO1", CustomerKey: 1, OrderDate: date(2024, 9, 1), SalesAmount: 10, Quantity: 1}},
	}
	m := Aggregate(lines, ByCustomer, date(2024, 7, 1), 1)[0]
	if m.RecencyMonths != 0 || m.RecencyDays != 0 {
		t.Errorf("Expected recency clamped to 0, got %d months / %d days", m.RecencyMonths, m.RecencyDays)
	}
}

func TestAggregateWorkerCountIndependent(t *testing.T) {
	var lines []EnrichedLine
	for i := 0; i < 200; i++ {
		lines = append(lines, EnrichedLine{SalesLine: SalesLine{
			OrderNumber: "SO" + string(rune('A'+i%26)),
			CustomerKey: i % 17,
			ProductKey:  i % 5,
			OrderDate:   date(2023, time.Month(1+i%12), 1),
			SalesAmount: i,
			Quantity:    1 + i%3,
			Price:       i % 50,
		}})
	}

	byKey := func(ms []EntityMetrics) map[int]EntityMetrics {
		out := make(map[int]EntityMetrics)
		for _, m := range ms {
			out[m.Key] = m
		}
		return out
	}
	single := byKey(Aggregate(lines, ByProduct, date(2024, 1, 1), 1))
	many := byKey(Aggregate(lines, ByProduct, date(2024, 1, 1), 8))
	if len(single) != 5 || len(many) != 5 {
		t.Fatalf("Expected 5 products, got %d and %d", len(single), len(many))
	}
	for k, a := range single {
		b := many[k]
		if a.TotalSales != b.TotalSales || a.TotalOrders != b.TotalOrders || a.TotalCounterparts != b.TotalCounterparts {
			t.Errorf("product %d differs between worker counts: %+v vs %+v", k, a, b)
		}
	}
}
