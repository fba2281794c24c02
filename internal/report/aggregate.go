package report

import (
	"runtime"
	"sync"
	"time"
)

// accumulator collects the running reduction for one entity.
type accumulator struct {
	key      int
	customer *Customer
	product  *Product
	age      *int

	orders       map[string]struct{}
	counterparts map[int]struct{}
	lines        int
	sales        int
	quantity     int

	first time.Time
	last  time.Time

	minPrice   int
	maxPrice   int
	priceSum   float64
	priceCount int
}

func newAccumulator(key int, line *EnrichedLine) *accumulator {
	return &accumulator{
		key:          key,
		customer:     line.Customer,
		product:      line.Product,
		age:          line.Age,
		orders:       make(map[string]struct{}),
		counterparts: make(map[int]struct{}),
		first:        line.OrderDate,
		last:         line.OrderDate,
		minPrice:     line.Price,
		maxPrice:     line.Price,
	}
}

func (a *accumulator) add(line *EnrichedLine, counterpart int) {
	a.orders[line.OrderNumber] = struct{}{}
	a.counterparts[counterpart] = struct{}{}
	a.lines++
	a.sales += line.SalesAmount
	a.quantity += line.Quantity

	if line.OrderDate.Before(a.first) {
		a.first = line.OrderDate
	}
	if line.OrderDate.After(a.last) {
		a.last = line.OrderDate
	}

	a.minPrice = min(a.minPrice, line.Price)
	a.maxPrice = max(a.maxPrice, line.Price)
	if line.Quantity > 0 {
		a.priceSum += float64(line.SalesAmount) / float64(line.Quantity)
		a.priceCount++
	}
}

func (a *accumulator) metrics(evalDate time.Time) EntityMetrics {
	m := EntityMetrics{
		Key:               a.key,
		Customer:          a.customer,
		Product:           a.product,
		Age:               a.age,
		TotalOrders:       len(a.orders),
		TotalSales:        a.sales,
		TotalQuantity:     a.quantity,
		TotalCounterparts: len(a.counterparts),
		FirstActivity:     a.first,
		LastActivity:      a.last,
		LifespanMonths:    max(0, MonthsBetween(a.first, a.last)),
		RecencyMonths:     max(0, MonthsBetween(a.last, evalDate)),
		RecencyDays:       max(0, DaysBetween(a.last, evalDate)),
	}
	m.AvgTransactionValue = Ratio(a.sales, a.lines)

	minPrice, maxPrice := a.minPrice, a.maxPrice
	m.MinPrice = &minPrice
	m.MaxPrice = &maxPrice
	if a.priceCount > 0 {
		d := float64(a.priceCount)
		m.AvgSellingPrice = SafeDivide(a.priceSum, &d)
	}
	return m
}

// Aggregate groups lines by the given key and reduces each group to its
// EntityMetrics. Groups are spread across workers by key so that each worker
// owns a disjoint set of entities; workers <= 0 means one per CPU.
// The order of the returned slice is unspecified.
func Aggregate(lines []EnrichedLine, key GroupKey, evalDate time.Time, workers int) []EntityMetrics {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	evalDate = Truncate(evalDate)

	// Partition line indexes by owning worker.
	parts := make([][]int, workers)
	for i := range lines {
		w := owner(entityKey(&lines[i], key), workers)
		parts[w] = append(parts[w], i)
	}

	results := make([][]EntityMetrics, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		if len(parts[w]) == 0 {
			continue
		}
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			results[workerID] = reduce(lines, parts[workerID], key, evalDate)
		}(w)
	}
	wg.Wait()

	var total int
	for _, r := range results {
		total += len(r)
	}
	out := make([]EntityMetrics, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

func reduce(lines []EnrichedLine, idx []int, key GroupKey, evalDate time.Time) []EntityMetrics {
	groups := make(map[int]*accumulator)
	for _, i := range idx {
		line := &lines[i]
		k := entityKey(line, key)
		acc, ok := groups[k]
		if !ok {
			acc = newAccumulator(k, line)
			groups[k] = acc
		}
		acc.add(line, counterpartKey(line, key))
	}

	out := make([]EntityMetrics, 0, len(groups))
	for _, acc := range groups {
		out = append(out, acc.metrics(evalDate))
	}
	return out
}

func entityKey(line *EnrichedLine, key GroupKey) int {
	if key == ByProduct {
		return line.ProductKey
	}
	return line.CustomerKey
}

func counterpartKey(line *EnrichedLine, key GroupKey) int {
	if key == ByProduct {
		return line.CustomerKey
	}
	return line.ProductKey
}

func owner(key, workers int) int {
	w := key % workers
	if w < 0 {
		w += workers
	}
	return w
}
