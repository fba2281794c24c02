package report

import "time"

// JoinCustomers left-joins facts to the customer dimension and computes each
// line's customer age at evalDate. Facts without an order date are dropped;
// facts referencing an unknown customer keep a nil Customer.
func JoinCustomers(facts []SalesLine, customers []Customer, evalDate time.Time) []EnrichedLine {
	index := make(map[int]*Customer, len(customers))
	for i := range customers {
		index[customers[i].CustomerKey] = &customers[i]
	}

	out := make([]EnrichedLine, 0, len(facts))
	for _, f := range facts {
		if f.OrderDate.IsZero() {
			continue
		}
		line := EnrichedLine{SalesLine: f, Customer: index[f.CustomerKey]}
		if line.Customer != nil && !line.Customer.Birthdate.IsZero() {
			age := YearsBetween(line.Customer.Birthdate, evalDate)
			line.Age = &age
		}
		out = append(out, line)
	}
	return out
}

// JoinProducts left-joins facts to the product dimension.
func JoinProducts(facts []SalesLine, products []Product) []EnrichedLine {
	index := make(map[int]*Product, len(products))
	for i := range products {
		index[products[i].ProductKey] = &products[i]
	}

	out := make([]EnrichedLine, 0, len(facts))
	for _, f := range facts {
		if f.OrderDate.IsZero() {
			continue
		}
		out = append(out, EnrichedLine{SalesLine: f, Product: index[f.ProductKey]})
	}
	return out
}
