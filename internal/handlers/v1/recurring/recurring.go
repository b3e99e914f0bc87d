package recurring

import (
	"time"

	"github.com/carson-networks/finance-server/internal/storage/recurring"
)

// Expense is the API response model for a recurring expense template.
type Expense struct {
	ID            string            `json:"id" doc:"Template UUID"`
	Description   string            `json:"description" doc:"Description"`
	Category      string            `json:"category" doc:"Category string"`
	Amount        string            `json:"amount" doc:"Base amount, 0 means not set"`
	DueDay        int               `json:"dueDay" doc:"Nominal due day of month, 1-31"`
	PaymentMethod string            `json:"paymentMethod" doc:"Payment method"`
	RepeatMonths  int               `json:"repeatMonths" doc:"Number of months the expense repeats, 0 means indefinitely"`
	MonthlyValues map[string]string `json:"monthlyValues" doc:"Per-month override amounts keyed by YYYY-MM"`
	PaidMonths    []string          `json:"paidMonths" doc:"YYYY-MM keys of months marked paid"`
	CreatedAt     string            `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromStorage(expense *recurring.Expense) Expense {
	monthlyValues := make(map[string]string, len(expense.MonthlyValues))
	for month, amount := range expense.MonthlyValues {
		monthlyValues[month] = amount.String()
	}
	paidMonths := make([]string, len(expense.PaidMonths))
	copy(paidMonths, expense.PaidMonths)

	return Expense{
		ID:            expense.ID.String(),
		Description:   expense.Description,
		Category:      expense.Category,
		Amount:        expense.Amount.String(),
		DueDay:        expense.DueDay,
		PaymentMethod: expense.PaymentMethod,
		RepeatMonths:  expense.RepeatMonths,
		MonthlyValues: monthlyValues,
		PaidMonths:    paidMonths,
		CreatedAt:     expense.CreatedAt.Format(time.RFC3339),
	}
}
