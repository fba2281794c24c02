//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"fmt"
	"time"

	"github.com/pgEdge/pgedge-salesreport/internal/datagen"
	"github.com/pgEdge/pgedge-salesreport/internal/datagen/demand"
	"github.com/pgEdge/pgedge-salesreport/internal/logging"
	"github.com/pgEdge/pgedge-salesreport/internal/report"
)

// Reference data
var countries = []string{"United States", "Australia", "United Kingdom", "Germany", "France", "Canada", "n/a"}
var countryWeights = []int{30, 20, 12, 12, 12, 12, 2}
var maritalStatuses = []string{"Married", "Single"}
var productLines = []string{"Mountain", "Road", "Touring", "Other Sales"}

type categoryInfo struct {
	id            string
	name          string
	subcategories []string
	costMin       int
	costMax       int
	maintenance   string
}

var categories = []categoryInfo{
	{"BI", "Bikes", []string{"Mountain Bikes", "Road Bikes", "Touring Bikes"}, 300, 2200, "Yes"},
	{"CO", "Components", []string{"Handlebars", "Wheels", "Pedals", "Chains", "Forks"}, 20, 800, "Yes"},
	{"CL", "Clothing", []string{"Jerseys", "Caps", "Gloves", "Socks", "Shorts"}, 2, 45, "No"},
	{"AC", "Accessories", []string{"Helmets", "Bottles and Cages", "Tires and Tubes", "Lights"}, 1, 60, "No"},
}
var categoryWeights = []int{25, 30, 20, 25}

// GeneratorConfig sizes a generated warehouse.
type GeneratorConfig struct {
	Customers int
	Products  int
	Orders    int

	// Seed makes the output reproducible (0 = random).
	Seed uint64

	// Orders are dated within [Start, End].
	Start time.Time
	End   time.Time

	// Pattern shapes order volume over the calendar (nil = flat).
	Pattern demand.Pattern
}

// Generator produces a synthetic warehouse snapshot.
type Generator struct {
	faker *datagen.Faker
	cfg   GeneratorConfig
}

// NewGenerator creates a generator; a zero End defaults to today and a zero
// Start to four years before End.
func NewGenerator(cfg GeneratorConfig) *Generator {
	if cfg.End.IsZero() {
		cfg.End = report.Truncate(time.Now().UTC())
	}
	if cfg.Start.IsZero() {
		cfg.Start = cfg.End.AddDate(-4, 0, 0)
	}
	if cfg.Pattern == nil {
		cfg.Pattern = demand.NewFlat()
	}
	return &Generator{
		faker: datagen.NewFakerFor(cfg.Seed),
		cfg:   cfg,
	}
}

// Generate builds customers, products and orders.
func (g *Generator) Generate() *Snapshot {
	logging.Info().
		Int("customers", g.cfg.Customers).
		Int("products", g.cfg.Products).
		Int("orders", g.cfg.Orders).
		Str("from", g.cfg.Start.Format(report.DateLayout)).
		Str("to", g.cfg.End.Format(report.DateLayout)).
		Str("pattern", g.cfg.Pattern.Name()).
		Msg("Generating warehouse data")

	snap := &Snapshot{
		Customers: g.generateCustomers(),
		Products:  g.generateProducts(),
	}
	snap.Sales = g.generateSales(snap.Products)
	return snap
}

func (g *Generator) generateCustomers() []report.Customer {
	customers := make([]report.Customer, 0, g.cfg.Customers)
	oldest := time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC)
	youngest := g.cfg.End.AddDate(-18, 0, 0)

	for key := 1; key <= g.cfg.Customers; key++ {
		c := report.Customer{
			CustomerKey:    key,
			CustomerID:     11000 + key - 1,
			CustomerNumber: fmt.Sprintf("AW%08d", 11000+key-1),
			FirstName:      g.faker.FirstName(),
			LastName:       g.faker.LastName(),
			Country:        datagen.ChooseWeighted(g.faker, countries, countryWeights),
			MaritalStatus:  datagen.Choose(g.faker, maritalStatuses),
			Gender:         g.faker.Gender(),
			CreateDate:     g.faker.DateRange(g.cfg.Start, g.cfg.End),
		}
		// A few customers never provided a birthdate.
		if !g.faker.Chance(0.03) {
			c.Birthdate = g.faker.DateRange(oldest, youngest)
		}
		customers = append(customers, c)
	}
	return customers
}

func (g *Generator) generateProducts() []report.Product {
	products := make([]report.Product, 0, g.cfg.Products)
	for key := 1; key <= g.cfg.Products; key++ {
		cat := datagen.ChooseWeighted(g.faker, categories, categoryWeights)
		sub := datagen.Choose(g.faker, cat.subcategories)
		p := report.Product{
			ProductKey:    key,
			ProductID:     200 + key,
			ProductNumber: fmt.Sprintf("%s-%s", cat.id, g.faker.Digits(4)),
			ProductName:   g.faker.ProductName(),
			CategoryID:    fmt.Sprintf("%s_%s", cat.id, sub[:2]),
			Category:      cat.name,
			Subcategory:   sub,
			Maintenance:   cat.maintenance,
			ProductLine:   datagen.Choose(g.faker, productLines),
			StartDate:     g.faker.DateRange(g.cfg.Start.AddDate(-2, 0, 0), g.cfg.Start),
		}
		if !g.faker.Chance(0.02) {
			cost := g.faker.Int(cat.costMin, cat.costMax)
			p.Cost = &cost
		}
		products = append(products, p)
	}
	return products
}

func (g *Generator) generateSales(products []report.Product) []report.SalesLine {
	if len(products) == 0 || g.cfg.Customers == 0 {
		return nil
	}
	sales := make([]report.SalesLine, 0, g.cfg.Orders*2)
	progress := datagen.NewProgressReporter("orders", int64(g.cfg.Orders), false)

	for i := 0; i < g.cfg.Orders; i++ {
		orderNumber := fmt.Sprintf("SO%d", 43697+i)
		customer := g.faker.Int(1, g.cfg.Customers)
		orderDate := g.orderDate()
		if g.faker.Chance(0.005) {
			orderDate = time.Time{}
		}

		lines := datagen.ChooseWeighted(g.faker, []int{1, 2, 3, 4}, []int{55, 25, 12, 8})
		seen := make(map[int]bool, lines)
		for j := 0; j < lines; j++ {
			p := &products[g.faker.Int(0, len(products)-1)]
			if seen[p.ProductKey] {
				continue
			}
			seen[p.ProductKey] = true

			price := listPrice(g.faker, p)
			qty := datagen.ChooseWeighted(g.faker, []int{1, 2, 3}, []int{85, 10, 5})
			line := report.SalesLine{
				OrderNumber: orderNumber,
				ProductKey:  p.ProductKey,
				CustomerKey: customer,
				OrderDate:   orderDate,
				SalesAmount: price * qty,
				Quantity:    qty,
				Price:       price,
			}
			if !orderDate.IsZero() {
				line.ShippingDate = orderDate.AddDate(0, 0, 7)
				line.DueDate = orderDate.AddDate(0, 0, 12)
			}
			sales = append(sales, line)
		}
		progress.Update(1)
	}
	progress.Done()
	return sales
}

// orderDate draws a date in the window, accepting it with the probability
// the demand pattern assigns to that day.
func (g *Generator) orderDate() time.Time {
	for range 100 {
		d := g.faker.DateRange(g.cfg.Start, g.cfg.End)
		if g.faker.Chance(g.cfg.Pattern.Level(d)) {
			return d
		}
	}
	return g.faker.DateRange(g.cfg.Start, g.cfg.End)
}

// listPrice marks cost up by 30-100%; products without a cost sell for 5-100.
func listPrice(f *datagen.Faker, p *report.Product) int {
	if p.Cost == nil {
		return f.Int(5, 100)
	}
	return max(1, *p.Cost*f.Int(130, 200)/100)
}
