package investment

import (
	"time"

	"github.com/carson-networks/finance-server/internal/storage/investment"
)

// Investment is the API response model for an investment.
type Investment struct {
	ID               string `json:"id" doc:"Investment UUID"`
	Name             string `json:"name" doc:"Name"`
	Type             string `json:"type" doc:"Asset type"`
	Value            string `json:"value" doc:"Total decimal value"`
	Installments     int    `json:"installments" doc:"Total number of installments"`
	InstallmentValue string `json:"installmentValue" doc:"Decimal value per installment"`
	StartDate        string `json:"startDate" doc:"RFC3339 start date"`
	PaidInstallments int    `json:"paidInstallments" doc:"Installments marked paid so far"`
	Description      string `json:"description" doc:"Description"`
	CreatedAt        string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromStorage(inv *investment.Investment) Investment {
	return Investment{
		ID:               inv.ID.String(),
		Name:             inv.Name,
		Type:             inv.Type,
		Value:            inv.Value.String(),
		Installments:     inv.Installments,
		InstallmentValue: inv.InstallmentValue.String(),
		StartDate:        inv.StartDate.Format(time.RFC3339),
		PaidInstallments: inv.PaidInstallments,
		Description:      inv.Description,
		CreatedAt:        inv.CreatedAt.Format(time.RFC3339),
	}
}
