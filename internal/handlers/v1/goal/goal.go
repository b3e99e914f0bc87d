package goal

import (
	"time"

	"github.com/carson-networks/finance-server/internal/storage/goal"
)

// Goal is the API response model for a savings goal.
type Goal struct {
	ID             string `json:"id" doc:"Goal UUID"`
	Name           string `json:"name" doc:"Name"`
	TargetAmount   string `json:"targetAmount" doc:"Target decimal amount"`
	CurrentAmount  string `json:"currentAmount" doc:"Accumulated decimal amount"`
	TargetDate     string `json:"targetDate" doc:"RFC3339 target date"`
	SavingLocation string `json:"savingLocation" doc:"Where the savings are held"`
	CreatedAt      string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromStorage(g *goal.Goal) Goal {
	return Goal{
		ID:             g.ID.String(),
		Name:           g.Name,
		TargetAmount:   g.TargetAmount.String(),
		CurrentAmount:  g.CurrentAmount.String(),
		TargetDate:     g.TargetDate.Format(time.RFC3339),
		SavingLocation: g.SavingLocation,
		CreatedAt:      g.CreatedAt.Format(time.RFC3339),
	}
}
