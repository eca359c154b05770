package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/internal/core"
	"finsight/internal/report"
	"finsight/internal/store"
	"finsight/internal/store/memory"
)

func newService() (*TransactionService, *memory.Store) {
	st := memory.New()
	return NewTransactionService(st), st
}

func TestCreateStampsRecord(t *testing.T) {
	svc, st := newService()

	created, err := svc.Create(context.Background(), "alice", CreateTransactionRequest{
		Date:     "2024-01-05",
		Amount:   "100.00",
		Category: "revenue",
		Status:   "paid",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "alice", created.Owner)
	assert.Equal(t, core.Revenue, created.Category)
	assert.Equal(t, core.Paid, created.Status)
	assert.Equal(t, int64(10000), created.Amount.Cents)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	rows, err := st.FindByOwner(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, created.ID, rows[0].ID)
}

func TestAdminWritesStayInAdminView(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, core.AdminIdentity, CreateTransactionRequest{
		Date:     "2024-01-05",
		Amount:   "100.00",
		Category: "revenue",
		Status:   "paid",
	})
	require.NoError(t, err)
	assert.Equal(t, core.SentinelOwner, created.Owner)

	// The record the admin just wrote must come back on the admin's reads.
	page, err := svc.List(ctx, core.AdminIdentity, core.Query{})
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, created.ID, page.Rows[0].ID)

	status := "pending"
	updated, err := svc.Update(ctx, core.AdminIdentity, created.ID, UpdateTransactionRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, core.Pending, updated.Status)

	require.NoError(t, svc.Delete(ctx, core.AdminIdentity, created.ID))

	page, err = svc.List(ctx, core.AdminIdentity, core.Query{})
	require.NoError(t, err)
	assert.Empty(t, page.Rows)
}

func TestCreateNamesEveryBadField(t *testing.T) {
	svc, st := newService()

	_, err := svc.Create(context.Background(), "alice", CreateTransactionRequest{
		Date:     "not-a-date",
		Amount:   "-5",
		Category: "salary",
		Status:   "done",
	})

	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"date", "amount", "category", "status"}, verr.Fields)

	rows, _ := st.FindByOwner(context.Background(), "alice")
	assert.Empty(t, rows, "failed create must have no partial effect")
}

func TestCreateRejectsFailedStatus(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), "alice", CreateTransactionRequest{
		Date:     "2024-01-05",
		Amount:   "10",
		Category: "expense",
		Status:   "failed",
	})

	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"status"}, verr.Fields)
}

func TestCreateMissingFieldsUseJSONNames(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), "alice", CreateTransactionRequest{})

	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "date")
	assert.Contains(t, verr.Fields, "amount")
}

func TestUpdatePatchesFields(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", CreateTransactionRequest{
		Date: "2024-01-05", Amount: "100", Category: "revenue", Status: "paid",
	})
	require.NoError(t, err)

	amount := "250.50"
	status := "pending"
	updated, err := svc.Update(ctx, "alice", created.ID, UpdateTransactionRequest{
		Amount: &amount,
		Status: &status,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(25050), updated.Amount.Cents)
	assert.Equal(t, core.Pending, updated.Status)
	assert.Equal(t, core.Revenue, updated.Category, "untouched field survives")
}

func TestUpdateForeignOwnerIsNotFound(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", CreateTransactionRequest{
		Date: "2024-01-05", Amount: "100", Category: "revenue", Status: "paid",
	})
	require.NoError(t, err)

	amount := "1"
	_, err = svc.Update(ctx, "mallory", created.ID, UpdateTransactionRequest{Amount: &amount})
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestUpdateEmptyPatchRejected(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Update(context.Background(), "alice", "some-id", UpdateTransactionRequest{})

	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestDeleteScopedByOwner(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", CreateTransactionRequest{
		Date: "2024-01-05", Amount: "100", Category: "revenue", Status: "paid",
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, "mallory", created.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))

	require.NoError(t, svc.Delete(ctx, "alice", created.ID))
	err = svc.Delete(ctx, "alice", created.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func seedTrio(t *testing.T, svc *TransactionService) {
	t.Helper()
	ctx := context.Background()
	for _, req := range []CreateTransactionRequest{
		{Date: "2024-01-05", Amount: "100", Category: "revenue", Status: "paid"},
		{Date: "2024-01-10", Amount: "40", Category: "expense", Status: "pending"},
		{Date: "2024-02-01", Amount: "20", Category: "expense", Status: "paid"},
	} {
		_, err := svc.Create(ctx, "alice", req)
		require.NoError(t, err)
	}
}

func TestListRunsQueryPipeline(t *testing.T) {
	svc, _ := newService()
	seedTrio(t, svc)

	page, err := svc.List(context.Background(), "alice", core.Query{Category: "expense"})
	require.NoError(t, err)

	assert.Equal(t, 2, page.TotalCount)
	require.Len(t, page.Rows, 2)
	// Default order is date descending.
	assert.True(t, page.Rows[0].Date.After(page.Rows[1].Date))
}

func TestSummaryUsesFullOwnerSet(t *testing.T) {
	svc, _ := newService()
	seedTrio(t, svc)

	sum, err := svc.Summary(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, int64(8000), sum.Balance.Cents)
	assert.Equal(t, int64(10000), sum.TotalRevenue.Cents)
	assert.Equal(t, int64(6000), sum.TotalExpenses.Cents)
	assert.Equal(t, int64(4000), sum.Savings.Cents)
}

func TestAdminIdentityReadsSentinelOwner(t *testing.T) {
	svc, st := newService()
	st.Seed([]core.Transaction{{
		ID:       "agg-1",
		Date:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Amount:   core.Money{Cents: 5000},
		Category: core.Revenue,
		Status:   core.Paid,
		Owner:    core.SentinelOwner,
	}})

	page, err := svc.List(context.Background(), core.AdminIdentity, core.Query{})
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "agg-1", page.Rows[0].ID)
}

func TestMonthlyChartAligned(t *testing.T) {
	svc, _ := newService()
	seedTrio(t, svc)

	series, err := svc.MonthlyChart(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, []string{"Jan 2024", "Feb 2024"}, series.Labels)
	assert.Equal(t, []float64{100, 0}, series.Revenue)
	assert.Equal(t, []float64{40, 20}, series.Expense)
}

func TestDailyChartCoversWholeMonth(t *testing.T) {
	svc, _ := newService()
	seedTrio(t, svc)

	series, err := svc.DailyChart(context.Background(), "alice", 2024, time.January)
	require.NoError(t, err)

	require.Len(t, series.Labels, 31)
	assert.Equal(t, float64(100), series.Revenue[4], "Jan 5 revenue")
	assert.Equal(t, float64(40), series.Expense[9], "Jan 10 expense")
}

func TestExportEmptyResult(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Export(context.Background(), "alice", report.Request{
		Columns: []string{"date", "amount"},
		Format:  report.FormatCSV,
	})
	assert.True(t, errors.Is(err, report.ErrNoData))
}

func TestExportCSV(t *testing.T) {
	svc, _ := newService()
	seedTrio(t, svc)

	export, err := svc.Export(context.Background(), "alice", report.Request{
		Columns: []string{"date", "amount", "category"},
		Format:  report.FormatCSV,
	})
	require.NoError(t, err)

	assert.Equal(t, "text/csv", export.MediaType)
	assert.Equal(t, "transaction-report.csv", export.Filename)
	assert.Contains(t, string(export.Data), "Date,Amount (in $),Category")
}
