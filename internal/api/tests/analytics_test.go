package api_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fintrack-app/fintrack/internal/api/testutils"
	"github.com/fintrack-app/fintrack/internal/models"
)

func getAnalytics(t *testing.T, testCtx *testutils.TestContext, startDate, endDate, tags string) (models.AnalyticsResponse, int) {
	t.Helper()

	query := url.Values{}
	query.Set("startDate", startDate)
	query.Set("endDate", endDate)
	query.Set("tags", tags)

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/transactions/analytics?"+query.Encode(),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	var resp models.AnalyticsResponse
	if w.Code == http.StatusOK {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return resp, w.Code
}

func TestAnalyticsTagFilterScenario(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	addTransaction(t, testCtx, "01-01-2025", "-100", "#food")
	addTransaction(t, testCtx, "15-01-2025", "+500", "")

	// No filter: both sides of the ledger over the month
	resp, code := getAnalytics(t, testCtx, "01-01-2025", "31-01-2025", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "-100", resp.Spendings)
	assert.Equal(t, "500", resp.Income)

	// With #food only the tagged spending qualifies; the untagged income
	// is excluded, leaving income zero rather than null
	resp, code = getAnalytics(t, testCtx, "01-01-2025", "31-01-2025", "#food")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "-100", resp.Spendings)
	assert.Equal(t, "0", resp.Income)
}

func TestAnalyticsRequiresAllFilterTags(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	addTransaction(t, testCtx, "07-01-2025", "-46.00", "#food #water")
	addTransaction(t, testCtx, "08-01-2025", "-185.00", "#food")

	// Single tag matches both
	resp, code := getAnalytics(t, testCtx, "01-01-2025", "31-01-2025", "#food")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "-231", resp.Spendings)

	// Both tags required: the transaction missing #water is excluded
	resp, code = getAnalytics(t, testCtx, "01-01-2025", "31-01-2025", "#food #water")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "-46", resp.Spendings)
}

func TestAnalyticsRangeBoundsInclusive(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	addTransaction(t, testCtx, "10-01-2025", "-10", "")
	addTransaction(t, testCtx, "20-01-2025", "-20", "")
	addTransaction(t, testCtx, "09-01-2025", "-999", "") // just outside
	addTransaction(t, testCtx, "21-01-2025", "-999", "") // just outside

	resp, code := getAnalytics(t, testCtx, "10-01-2025", "20-01-2025", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "-30", resp.Spendings)
}

func TestAnalyticsCrossesMonthBoundaryChronologically(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	// 25-01 is lexically after 05-02 on the wire form; chronologically the
	// range [25-01, 05-02] must still contain both
	addTransaction(t, testCtx, "25-01-2025", "-10", "")
	addTransaction(t, testCtx, "05-02-2025", "-20", "")

	resp, code := getAnalytics(t, testCtx, "25-01-2025", "05-02-2025", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "-30", resp.Spendings)
}

func TestAnalyticsEmptyResultIsZero(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	resp, code := getAnalytics(t, testCtx, "01-01-2025", "31-01-2025", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "0", resp.Spendings)
	assert.Equal(t, "0", resp.Income)
}

func TestAnalyticsRounding(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	// The exact sum is -0.00045; half away from zero at 4 places
	addTransaction(t, testCtx, "10-01-2025", "-0.0002", "")
	addTransaction(t, testCtx, "11-01-2025", "-0.00025", "")

	resp, code := getAnalytics(t, testCtx, "01-01-2025", "31-01-2025", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "-0.0005", resp.Spendings)
}

func TestAnalyticsValidation(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	_, code := getAnalytics(t, testCtx, "2025-01-01", "31-01-2025", "")
	assert.Equal(t, http.StatusBadRequest, code)

	_, code = getAnalytics(t, testCtx, "01-01-2025", "31-01-2025", "food")
	assert.Equal(t, http.StatusBadRequest, code)

	// Missing token short-circuits before validation or storage
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/transactions/analytics?startDate=01-01-2025&endDate=31-01-2025&tags=",
		nil,
		nil,
	)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
