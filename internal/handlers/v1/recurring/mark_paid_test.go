package recurring

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-server/internal/service"
)

// mockRecurringService is a mock for paidMarker.
type mockRecurringService struct {
	mock.Mock
}

func (m *mockRecurringService) MarkPaid(ctx context.Context, ownerID, id uuid.UUID, month string, paid bool) error {
	args := m.Called(ctx, ownerID, id, month, paid)
	return args.Error(0)
}

func newMarkPaidTestAPI(t *testing.T, svc paidMarker) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewMarkPaidHandler(svc).Register(api)
	return api
}

func TestHTTP_MarkPaid_Success(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())

	mockSvc := new(mockRecurringService)
	mockSvc.On("MarkPaid", mock.Anything, ownerID, id, "2026-08", true).Return(nil)

	resp := newMarkPaidTestAPI(t, mockSvc).Put("/v1/recurring-expense/"+id.String()+"/paid",
		"X-Owner-ID: "+ownerID.String(),
		MarkPaidBody{Month: "2026-08", Paid: true})

	assert.Equal(t, http.StatusNoContent, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_MarkPaid_InvalidMonthFormat(t *testing.T) {
	mockSvc := new(mockRecurringService)

	// The month pattern is enforced by Huma before the handler runs.
	resp := newMarkPaidTestAPI(t, mockSvc).Put(
		"/v1/recurring-expense/"+uuid.Must(uuid.NewV4()).String()+"/paid",
		"X-Owner-ID: "+uuid.Must(uuid.NewV4()).String(),
		MarkPaidBody{Month: "08-2026", Paid: true})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "MarkPaid")
}

func TestHTTP_MarkPaid_AmountNotSet(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())

	mockSvc := new(mockRecurringService)
	mockSvc.On("MarkPaid", mock.Anything, ownerID, id, "2026-08", true).
		Return(service.ErrAmountNotSet)

	resp := newMarkPaidTestAPI(t, mockSvc).Put("/v1/recurring-expense/"+id.String()+"/paid",
		"X-Owner-ID: "+ownerID.String(),
		MarkPaidBody{Month: "2026-08", Paid: true})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_MarkPaid_UnknownExpense(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())

	mockSvc := new(mockRecurringService)
	mockSvc.On("MarkPaid", mock.Anything, ownerID, id, "2026-08", true).
		Return(service.ErrNotFound)

	resp := newMarkPaidTestAPI(t, mockSvc).Put("/v1/recurring-expense/"+id.String()+"/paid",
		"X-Owner-ID: "+ownerID.String(),
		MarkPaidBody{Month: "2026-08", Paid: true})

	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockSvc.AssertExpectations(t)
}
