package finance

import (
	"fmt"
	"math"
	"sort"

	"github.com/credmatch/backend/pkg/money"
)

// LoanTerms groups the inputs of an amortization computation.
type LoanTerms struct {
	Principal    money.Money
	Rate         InterestRate
	Installments InstallmentCount
}

// ScheduleEntry is one row of an amortization schedule.
type ScheduleEntry struct {
	Month            int         `json:"month"`
	Payment          money.Money `json:"payment"`
	Principal        money.Money `json:"principal"`
	Interest         money.Money `json:"interest"`
	RemainingBalance money.Money `json:"remainingBalance"`
}

// MonthlyPayment computes the fixed monthly payment of a financing using the
// Price (French) amortization system: constant payments, declining interest.
// A single installment settles the full principal regardless of rate.
func MonthlyPayment(principal money.Money, rate InterestRate, installments InstallmentCount) (money.Money, error) {
	n := installments.Value()
	if n == 1 {
		return principal, nil
	}
	if rate.IsZero() {
		return principal.Div(float64(n))
	}

	r := rate.Monthly()
	factor := math.Pow(1+r, float64(n))
	payment := principal.Float() * r * factor / (factor - 1)

	return money.NewFromFloat(payment)
}

// TotalAmount computes the total repaid over the life of the financing.
func TotalAmount(principal money.Money, rate InterestRate, installments InstallmentCount) (money.Money, error) {
	payment, err := MonthlyPayment(principal, rate, installments)
	if err != nil {
		return money.Zero, err
	}
	return payment.MulInt(int64(installments.Value()))
}

// TotalInterest computes the interest cost: total repaid minus principal.
// Clamped to zero for the degenerate cases where cent rounding of a zero-rate
// payment lands a cent below the principal.
func TotalInterest(principal money.Money, rate InterestRate, installments InstallmentCount) (money.Money, error) {
	total, err := TotalAmount(principal, rate, installments)
	if err != nil {
		return money.Zero, err
	}
	if total.LessThan(principal) {
		return money.Zero, nil
	}
	return total.Sub(principal)
}

// EffectiveRate returns the realized cost of the financing as a fraction of
// principal: (total - principal) / principal. Defined as 0 for zero principal.
func EffectiveRate(principal money.Money, rate InterestRate, installments InstallmentCount) (float64, error) {
	if principal.IsZero() {
		return 0, nil
	}
	total, err := TotalAmount(principal, rate, installments)
	if err != nil {
		return 0, err
	}
	return float64(total.Cents()-principal.Cents()) / float64(principal.Cents()), nil
}

// Schedule produces the month-by-month amortization table. Interest accrues
// on the declining balance; the final installment is adjusted so its principal
// portion consumes the remaining balance exactly, absorbing accumulated
// rounding there. The reported balance after the last row is always zero.
func Schedule(principal money.Money, rate InterestRate, installments InstallmentCount) ([]ScheduleEntry, error) {
	payment, err := MonthlyPayment(principal, rate, installments)
	if err != nil {
		return nil, err
	}

	n := installments.Value()
	entries := make([]ScheduleEntry, 0, n)
	balance := principal

	for month := 1; month <= n; month++ {
		interest, err := balance.Mul(rate.Monthly())
		if err != nil {
			return nil, err
		}

		var principalPortion money.Money
		if month == n {
			principalPortion = balance
		} else {
			principalPortion, err = payment.Sub(interest)
			if err != nil {
				// Payment below accrued interest only happens on degenerate
				// inputs; amortize nothing that month.
				principalPortion = money.Zero
			}
			if principalPortion.GreaterThan(balance) {
				principalPortion = balance
			}
		}

		balance, err = balance.Sub(principalPortion)
		if err != nil {
			return nil, err
		}

		rowPayment := principalPortion.Add(interest)
		if month < n {
			rowPayment = payment
		}

		entries = append(entries, ScheduleEntry{
			Month:            month,
			Payment:          rowPayment,
			Principal:        principalPortion,
			Interest:         interest,
			RemainingBalance: balance,
		})
	}

	return entries, nil
}

// MaxAffordableAmount inverts the payment formula: given a monthly income and
// the fraction of it that may service debt, it returns the largest principal
// whose payment fits the budget. The ratio must be in (0, 1].
func MaxAffordableAmount(monthlyIncome money.Money, debtToIncomeRatio float64, rate InterestRate, installments InstallmentCount) (money.Money, error) {
	if debtToIncomeRatio <= 0 || debtToIncomeRatio > 1 {
		return money.Zero, fmt.Errorf("debt-to-income ratio must be in (0, 1], got %f", debtToIncomeRatio)
	}

	budget, err := monthlyIncome.Mul(debtToIncomeRatio)
	if err != nil {
		return money.Zero, err
	}

	n := installments.Value()
	if n == 1 {
		return budget, nil
	}
	if rate.IsZero() {
		return budget.MulInt(int64(n))
	}

	r := rate.Monthly()
	factor := math.Pow(1+r, float64(n))
	principal := budget.Float() * (factor - 1) / (r * factor)

	return money.NewFromFloat(principal)
}

// SortByEffectiveRate orders loan terms ascending by effective rate. The sort
// is stable so equally priced terms keep their prior relative order.
func SortByEffectiveRate(terms []LoanTerms) {
	sort.SliceStable(terms, func(i, j int) bool {
		ri, erri := EffectiveRate(terms[i].Principal, terms[i].Rate, terms[i].Installments)
		rj, errj := EffectiveRate(terms[j].Principal, terms[j].Rate, terms[j].Installments)
		if erri != nil || errj != nil {
			return false
		}
		return ri < rj
	})
}
