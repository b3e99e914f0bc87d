package category

import (
	"time"

	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage/category"
)

// Category is the API response model for a custom category.
type Category struct {
	ID          string `json:"id" doc:"Category UUID"`
	Name        string `json:"name" doc:"Stored name, including the custom prefix"`
	DisplayName string `json:"displayName" doc:"Name without the custom prefix, for rendering"`
	Type        int    `json:"type" doc:"Transaction type: 0=Income, 1=Expense"`
	CreatedAt   string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromStorage(c *category.Category) Category {
	return Category{
		ID:          c.ID.String(),
		Name:        c.Name,
		DisplayName: service.CategoryDisplayName(c.Name),
		Type:        int(c.Type),
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}
}
