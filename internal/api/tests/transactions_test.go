package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fintrack-app/fintrack/internal/api/testutils"
	"github.com/fintrack-app/fintrack/internal/models"
)

func addTransaction(t *testing.T, testCtx *testutils.TestContext, date, amount, tags string) models.Transaction {
	t.Helper()

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/transactions",
		models.AddTransactionRequest{Date: date, Amount: amount, Tags: tags},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	var transaction models.Transaction
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &transaction))
	return transaction
}

func listTransactions(t *testing.T, testCtx *testutils.TestContext) []models.Transaction {
	t.Helper()

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/transactions",
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var transactions []models.Transaction
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &transactions))
	return transactions
}

func TestAddAndListRoundTrip(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	added := addTransaction(t, testCtx, "07-01-2025", "-46.00", "#water #food")
	assert.Equal(t, 1, added.TransactionID)

	transactions := listTransactions(t, testCtx)
	assert.Len(t, transactions, 1)

	// Identical date/amount, tag order preserved as entered (not alphabetical)
	assert.Equal(t, "07-01-2025", transactions[0].Date)
	assert.Equal(t, "-46.00", transactions[0].Amount)
	assert.Equal(t, "#water #food", transactions[0].Tags)
}

func TestTransactionIDsAreSequentialPerUser(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	first := addTransaction(t, testCtx, "01-01-2025", "-10", "")
	second := addTransaction(t, testCtx, "02-01-2025", "-20", "")
	third := addTransaction(t, testCtx, "03-01-2025", "-30", "")

	assert.Equal(t, 1, first.TransactionID)
	assert.Equal(t, 2, second.TransactionID)
	assert.Equal(t, 3, third.TransactionID)
}

func TestListSortedChronologically(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	// 05-02 sorts before 10-01 lexically on the wire form but after it
	// chronologically; the listing must use chronological order.
	addTransaction(t, testCtx, "05-02-2025", "-10", "")
	addTransaction(t, testCtx, "10-01-2025", "-20", "")
	addTransaction(t, testCtx, "10-01-2025", "-30", "")

	transactions := listTransactions(t, testCtx)
	assert.Len(t, transactions, 3)

	assert.Equal(t, "10-01-2025", transactions[0].Date)
	assert.Equal(t, "10-01-2025", transactions[1].Date)
	assert.Equal(t, "05-02-2025", transactions[2].Date)

	// Equal dates: lower transaction id first
	assert.Less(t, transactions[0].TransactionID, transactions[1].TransactionID)
}

func TestUpdateTransaction(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	added := addTransaction(t, testCtx, "01-01-2025", "-100", "#food")

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		"/api/transactions",
		models.UpdateTransactionRequest{
			TransactionID: added.TransactionID,
			Date:          "15-01-2025",
			Amount:        "-250.50",
			Tags:          "#rent #living-place",
		},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	transactions := listTransactions(t, testCtx)
	assert.Len(t, transactions, 1)
	assert.Equal(t, "15-01-2025", transactions[0].Date)
	assert.Equal(t, "-250.50", transactions[0].Amount)
	assert.Equal(t, "#rent #living-place", transactions[0].Tags)

	// Invalid body is rejected before anything is touched
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		"/api/transactions",
		models.UpdateTransactionRequest{
			TransactionID: added.TransactionID,
			Date:          "2025-01-15",
			Amount:        "-1",
			Tags:          "",
		},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteTransaction(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	added := addTransaction(t, testCtx, "01-01-2025", "-100", "#food")

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		"/api/transactions",
		models.DeleteTransactionRequest{TransactionID: added.TransactionID},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	assert.Empty(t, listTransactions(t, testCtx))

	// Deleting a transaction that no longer exists is a benign client error
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		"/api/transactions",
		models.DeleteTransactionRequest{TransactionID: added.TransactionID},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Same for an id that never existed
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		"/api/transactions",
		models.DeleteTransactionRequest{TransactionID: 9999},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransactionsRequireAuth(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/transactions",
		nil,
		nil,
	)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/transactions",
		models.AddTransactionRequest{Date: "01-01-2025", Amount: "-1", Tags: ""},
		testutils.AuthHeaders("invalid-token"),
	)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAddTransactionValidation(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	cases := []models.AddTransactionRequest{
		{Date: "2025-01-01", Amount: "-100", Tags: ""}, // wrong date form
		{Date: "01-01-2025", Amount: "100", Tags: ""},  // missing sign
		{Date: "01-01-2025", Amount: "-100", Tags: "food"}, // missing #
		{Date: "32-01-2025", Amount: "-100", Tags: ""}, // day out of range
	}

	for _, req := range cases {
		w := testutils.PerformRequest(
			testCtx.Router,
			http.MethodPost,
			"/api/transactions",
			req,
			testutils.AuthHeaders(testCtx.TestUserJWT),
		)
		assert.Equal(t, http.StatusBadRequest, w.Code, "request %+v", req)
	}

	assert.Empty(t, listTransactions(t, testCtx))
}
