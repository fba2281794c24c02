package report

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput marks input collections that violate the warehouse schema.
var ErrInvalidInput = errors.New("invalid input")

// maxReportedIssues bounds the number of violations listed in one error.
const maxReportedIssues = 20

// ValidationError lists every schema violation found in a snapshot.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	shown := e.Issues
	suffix := ""
	if len(shown) > maxReportedIssues {
		suffix = fmt.Sprintf("; and %d more", len(shown)-maxReportedIssues)
		shown = shown[:maxReportedIssues]
	}
	return fmt.Sprintf("%s: %s%s", ErrInvalidInput, strings.Join(shown, "; "), suffix)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// ValidateSales checks fact rows for shape violations.
func ValidateSales(sales []SalesLine) error {
	var issues []string
	for i, s := range sales {
		if s.OrderNumber == "" {
			issues = append(issues, fmt.Sprintf("sales[%d]: empty order number", i))
		}
		if s.SalesAmount < 0 {
			issues = append(issues, fmt.Sprintf("sales[%d] %s: negative sales amount %d", i, s.OrderNumber, s.SalesAmount))
		}
		if s.Quantity < 0 || s.Quantity > 255 {
			issues = append(issues, fmt.Sprintf("sales[%d] %s: quantity %d outside 0..255", i, s.OrderNumber, s.Quantity))
		}
	}
	return asError(issues)
}

// ValidateCustomers checks the customer dimension for duplicate keys.
func ValidateCustomers(customers []Customer) error {
	var issues []string
	seen := make(map[int]struct{}, len(customers))
	for i, c := range customers {
		if _, ok := seen[c.CustomerKey]; ok {
			issues = append(issues, fmt.Sprintf("customers[%d]: duplicate customer key %d", i, c.CustomerKey))
		}
		seen[c.CustomerKey] = struct{}{}
	}
	return asError(issues)
}

// ValidateProducts checks the product dimension for duplicate keys and
// negative costs.
func ValidateProducts(products []Product) error {
	var issues []string
	seen := make(map[int]struct{}, len(products))
	for i, p := range products {
		if _, ok := seen[p.ProductKey]; ok {
			issues = append(issues, fmt.Sprintf("products[%d]: duplicate product key %d", i, p.ProductKey))
		}
		seen[p.ProductKey] = struct{}{}
		if p.Cost != nil && *p.Cost < 0 {
			issues = append(issues, fmt.Sprintf("products[%d]: negative cost %d", i, *p.Cost))
		}
	}
	return asError(issues)
}

func asError(issues []string) error {
	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: issues}
}

func mergeErrors(errs ...error) error {
	var issues []string
	for _, err := range errs {
		var ve *ValidationError
		if errors.As(err, &ve) {
			issues = append(issues, ve.Issues...)
		}
	}
	return asError(issues)
}
