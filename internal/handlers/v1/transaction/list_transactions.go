package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage/ledger"
)

// ListTransactionsCursor represents a pagination cursor in request and response bodies.
// It bundles position, limit, and maxCreationTime so subsequent pages use consistent parameters.
type ListTransactionsCursor struct {
	Position        int    `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit           int    `json:"limit" minimum:"1" maximum:"100" doc:"Page size used for this cursor"`
	MaxCreationTime string `json:"maxCreationTime" format:"date-time" doc:"Upper bound on created_at locked in from the first page"`
}

// ListTransactionsBody is the request body for listing transactions. Filter
// fields must stay the same across pages of one listing; the cursor does not
// carry them.
type ListTransactionsBody struct {
	Category *string                 `json:"category,omitempty" doc:"Exact category string to filter by"`
	Type     *int                    `json:"type,omitempty" minimum:"0" maximum:"1" doc:"Transaction type: 0=Income, 1=Expense"`
	From     *string                 `json:"from,omitempty" format:"date-time" doc:"Inclusive lower bound on transactionDate"`
	To       *string                 `json:"to,omitempty" format:"date-time" doc:"Exclusive upper bound on transactionDate"`
	Cursor   *ListTransactionsCursor `json:"cursor,omitempty" doc:"Cursor from a previous response to fetch the next page"`
}

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	Body    ListTransactionsBody
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction           `json:"transactions" doc:"Page of transactions"`
	NextCursor   *ListTransactionsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	ListTransactions(ctx context.Context, ownerID uuid.UUID, query *service.TransactionQuery, cursor *service.TransactionCursor) ([]*ledger.Transaction, *service.TransactionCursor, error)
}

// ListTransactionsHandler handles POST /v1/transaction/list.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/list",
		Summary:     "List transactions",
		Description: "Returns a paginated list of transactions using cursor-based pagination.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseListTransactionsInput parses and validates the API input.
// When a cursor is provided, limit and maxCreationTime come from it.
// Without a cursor, the service uses its default limit.
func parseListTransactionsInput(input *ListTransactionsInput) (ownerID uuid.UUID, query *service.TransactionQuery, cursor *service.TransactionCursor, err error) {
	ownerID, err = uuid.FromString(input.OwnerID)
	if err != nil {
		return uuid.Nil, nil, nil, huma.NewError(http.StatusBadRequest, "invalid X-Owner-ID", err)
	}

	if input.Body.Category != nil || input.Body.Type != nil || input.Body.From != nil || input.Body.To != nil {
		query = &service.TransactionQuery{Category: input.Body.Category}
		if input.Body.Type != nil {
			txType := ledger.TransactionType(*input.Body.Type)
			query.Type = &txType
		}
		if input.Body.From != nil {
			from, parseErr := time.Parse(time.RFC3339, *input.Body.From)
			if parseErr != nil {
				return uuid.Nil, nil, nil, huma.NewError(http.StatusBadRequest, "invalid from", parseErr)
			}
			query.From = &from
		}
		if input.Body.To != nil {
			to, parseErr := time.Parse(time.RFC3339, *input.Body.To)
			if parseErr != nil {
				return uuid.Nil, nil, nil, huma.NewError(http.StatusBadRequest, "invalid to", parseErr)
			}
			query.To = &to
		}
	}

	if input.Body.Cursor == nil {
		return ownerID, query, nil, nil
	}

	if input.Body.Cursor.Position < 0 {
		return uuid.Nil, nil, nil, huma.NewError(http.StatusBadRequest, "cursor position must be non-negative")
	}

	maxCreationTime, parseErr := time.Parse(time.RFC3339, input.Body.Cursor.MaxCreationTime)
	if parseErr != nil {
		return uuid.Nil, nil, nil, huma.NewError(http.StatusBadRequest, "invalid cursor maxCreationTime", parseErr)
	}

	return ownerID, query, &service.TransactionCursor{
		Position:        input.Body.Cursor.Position,
		Limit:           input.Body.Cursor.Limit,
		MaxCreationTime: maxCreationTime,
	}, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)
	ownerID, query, requestCursor, err := parseListTransactionsInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listTransactionsMs")
	}
	transactions, nextCursor, err := h.TransactionService.ListTransactions(ctx, ownerID, query, requestCursor)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromService(err, "failed to list transactions")
	}

	if logData != nil {
		logData.AddData("transactionCount", len(transactions))
	}

	resp := ListTransactionsResponseBody{
		Transactions: make([]Transaction, len(transactions)),
	}

	for i, tx := range transactions {
		resp.Transactions[i] = fromLedger(tx)
	}

	if nextCursor != nil {
		resp.NextCursor = &ListTransactionsCursor{
			Position:        nextCursor.Position,
			Limit:           nextCursor.Limit,
			MaxCreationTime: nextCursor.MaxCreationTime.Format(time.RFC3339),
		}
	}

	return &ListTransactionsOutput{Body: resp}, nil
}
