package finance

import "fmt"

// InstallmentCount is the number of monthly installments of a financing,
// always at least 1. A count of 1 means cash settlement.
type InstallmentCount struct {
	count int
}

// NewInstallmentCount validates and creates an InstallmentCount.
func NewInstallmentCount(count int) (InstallmentCount, error) {
	if count < 1 {
		return InstallmentCount{}, fmt.Errorf("installment count must be at least 1, got %d", count)
	}
	return InstallmentCount{count: count}, nil
}

// Value returns the number of installments.
func (c InstallmentCount) Value() int {
	return c.count
}

// IsCash reports whether the financing settles in a single payment.
func (c InstallmentCount) IsCash() bool {
	return c.count == 1
}

// PeriodDescription returns a human description of the repayment period:
// "à vista" for a single installment, plain months under a year, and
// years plus months otherwise.
func (c InstallmentCount) PeriodDescription() string {
	if c.count == 1 {
		return "à vista"
	}
	if c.count < 12 {
		return fmt.Sprintf("%d meses", c.count)
	}

	years := c.count / 12
	months := c.count % 12

	yearPart := fmt.Sprintf("%d anos", years)
	if years == 1 {
		yearPart = "1 ano"
	}
	if months == 0 {
		return yearPart
	}
	if months == 1 {
		return yearPart + " e 1 mês"
	}
	return fmt.Sprintf("%s e %d meses", yearPart, months)
}
