package transaction

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/harborline/transactions-server/internal/operator/actions"
	storagetx "github.com/harborline/transactions-server/internal/storage/transaction"
)

func newDeleteTestAPI(t *testing.T, op actionProcessor) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewDeleteTransactionHandler(op).Register(api)
	return api
}

func TestHTTP_DeleteTransaction_Success(t *testing.T) {
	mockOp := new(mockOperator)
	mockOp.On("Process", mock.Anything, mock.MatchedBy(func(a actions.IAction) bool {
		del, ok := a.(*actions.DeleteTransaction)
		return ok && del.ID == 7
	})).Return(nil)

	resp := newDeleteTestAPI(t, mockOp).Delete("/v1/transaction/7")

	assert.Equal(t, http.StatusNoContent, resp.Code)
	mockOp.AssertExpectations(t)
}

func TestHTTP_DeleteTransaction_NotFound(t *testing.T) {
	mockOp := new(mockOperator)
	mockOp.On("Process", mock.Anything, mock.Anything).
		Return(fmt.Errorf("delete: %w", storagetx.ErrNotFound))

	resp := newDeleteTestAPI(t, mockOp).Delete("/v1/transaction/99")

	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockOp.AssertExpectations(t)
}

func TestHTTP_DeleteTransaction_InvalidID(t *testing.T) {
	mockOp := new(mockOperator)

	resp := newDeleteTestAPI(t, mockOp).Delete("/v1/transaction/not-a-number")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockOp.AssertNotCalled(t, "Process")
}

func TestHTTP_DeleteTransaction_OperatorError(t *testing.T) {
	mockOp := new(mockOperator)
	mockOp.On("Process", mock.Anything, mock.Anything).
		Return(errors.New("database unavailable"))

	resp := newDeleteTestAPI(t, mockOp).Delete("/v1/transaction/7")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockOp.AssertExpectations(t)
}
