package transaction

import (
	"time"

	"github.com/carson-networks/finance-server/internal/storage/ledger"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID                       string `json:"id" doc:"Transaction UUID"`
	TransactionDate          string `json:"transactionDate" doc:"RFC3339 transaction date"`
	Description              string `json:"description" doc:"Description"`
	Category                 string `json:"category" doc:"Category string, custom categories keep their prefix"`
	Amount                   string `json:"amount" doc:"Decimal amount"`
	Type                     int    `json:"type" doc:"Transaction type: 0=Income, 1=Expense"`
	PaymentMethod            string `json:"paymentMethod" doc:"Payment method"`
	IsRecurringPayment       bool   `json:"isRecurringPayment" doc:"Created by the recurring paid toggle"`
	IsGoalContribution       bool   `json:"isGoalContribution" doc:"Created by a goal contribution"`
	IsInvestmentContribution bool   `json:"isInvestmentContribution" doc:"Created by an investment contribution"`
	RecurringExpenseID       string `json:"recurringExpenseID,omitempty" doc:"Linked recurring expense UUID"`
	GoalID                   string `json:"goalID,omitempty" doc:"Linked goal UUID"`
	InvestmentID             string `json:"investmentID,omitempty" doc:"Linked investment UUID"`
	CreatedAt                string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromLedger(tx *ledger.Transaction) Transaction {
	out := Transaction{
		ID:                       tx.ID.String(),
		TransactionDate:          tx.TransactionDate.Format(time.RFC3339),
		Description:              tx.Description,
		Category:                 tx.Category,
		Amount:                   tx.Amount.String(),
		Type:                     int(tx.Type),
		PaymentMethod:            tx.PaymentMethod,
		IsRecurringPayment:       tx.IsRecurringPayment,
		IsGoalContribution:       tx.IsGoalContribution,
		IsInvestmentContribution: tx.IsInvestmentContribution,
		CreatedAt:                tx.CreatedAt.Format(time.RFC3339),
	}
	if tx.RecurringExpenseID.Valid {
		out.RecurringExpenseID = tx.RecurringExpenseID.UUID.String()
	}
	if tx.GoalID.Valid {
		out.GoalID = tx.GoalID.UUID.String()
	}
	if tx.InvestmentID.Valid {
		out.InvestmentID = tx.InvestmentID.UUID.String()
	}
	return out
}
