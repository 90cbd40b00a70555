package parish

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgip/internal/domain"
	dErrors "sgip/pkg/domain-errors"
)

func TestAddTransaction_Validation(t *testing.T) {
	svc, admin := initializedService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   TransactionInput
	}{
		{"zero amount", TransactionInput{Type: domain.TransactionIncome, Category: domain.CategoryCollection, Amount: 0}},
		{"negative amount", TransactionInput{Type: domain.TransactionIncome, Category: domain.CategoryCollection, Amount: -50}},
		{"unknown type", TransactionInput{Type: "Virement", Category: domain.CategoryCollection, Amount: 100}},
		{"unknown category", TransactionInput{Type: domain.TransactionIncome, Category: "Loterie", Amount: 100}},
		{"dangling cev reference", TransactionInput{Type: domain.TransactionIncome, Category: domain.CategoryCollection, Amount: 100, CEVReference: "cev-nope"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddTransaction(ctx, admin, tc.in)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})
	}
	require.Empty(t, svc.Transactions())
}

func TestProjectCurrentAmount_MatchesSignedSum(t *testing.T) {
	svc, admin := initializedService(t)
	ctx := context.Background()

	project, err := svc.AddProject(ctx, admin, ProjectInput{Title: "Toiture", TargetAmount: 500000})
	require.NoError(t, err)
	other, err := svc.AddProject(ctx, admin, ProjectInput{Title: "Clocher", TargetAmount: 200000})
	require.NoError(t, err)

	seq := []struct {
		txType    domain.TransactionType
		amount    int64
		projectID string
	}{
		{domain.TransactionIncome, 10000, project.ID},
		{domain.TransactionExpense, 3000, project.ID},
		{domain.TransactionIncome, 7000, ""},          // untagged
		{domain.TransactionIncome, 2500, other.ID},    // different project
		{domain.TransactionIncome, 500, "PROJ-ghost"}, // unknown: recorded, no adjust
		{domain.TransactionExpense, 1500, project.ID},
	}
	var want int64
	for _, step := range seq {
		tx, err := svc.AddTransaction(ctx, admin, TransactionInput{
			Date: "2024-03-01", Type: step.txType, Category: domain.CategoryProject,
			Amount: step.amount, ProjectID: step.projectID,
		})
		require.NoError(t, err)
		if step.projectID == project.ID {
			want += tx.Signed()
		}
	}

	var got int64 = -1
	for _, p := range svc.Projects() {
		if p.ID == project.ID {
			got = p.CurrentAmount
		}
	}
	assert.Equal(t, want, got)
	assert.Equal(t, int64(10000-3000-1500), got)

	// The unknown tag still produced a ledger line.
	assert.Len(t, svc.Transactions(), len(seq))

	// The sibling project only saw its own line.
	for _, p := range svc.Projects() {
		if p.ID == other.ID {
			assert.Equal(t, int64(2500), p.CurrentAmount)
		}
	}
}

func TestBalance_OrderIndependent(t *testing.T) {
	ctx := context.Background()
	lines := []struct {
		txType domain.TransactionType
		amount int64
	}{
		{domain.TransactionIncome, 5000},
		{domain.TransactionExpense, 1200},
		{domain.TransactionIncome, 300},
		{domain.TransactionExpense, 4100},
		{domain.TransactionIncome, 9000},
	}

	record := func(order []int) int64 {
		svc, admin := initializedService(t)
		for _, i := range order {
			_, err := svc.AddTransaction(ctx, admin, TransactionInput{
				Date: "2024-03-01", Type: lines[i].txType, Category: domain.CategoryOther, Amount: lines[i].amount,
			})
			require.NoError(t, err)
		}
		return svc.Balance()
	}

	forward := record([]int{0, 1, 2, 3, 4})
	reverse := record([]int{4, 3, 2, 1, 0})
	shuffled := record([]int{2, 0, 4, 1, 3})

	assert.Equal(t, int64(5000-1200+300-4100+9000), forward)
	assert.Equal(t, forward, reverse)
	assert.Equal(t, forward, shuffled)
}

func TestAddTransaction_RecordsNewestFirst(t *testing.T) {
	svc, admin := initializedService(t)
	ctx := context.Background()

	first, err := svc.AddTransaction(ctx, admin, TransactionInput{
		Date: "2024-03-01", Type: domain.TransactionIncome, Category: domain.CategoryTithe, Amount: 100,
	})
	require.NoError(t, err)
	second, err := svc.AddTransaction(ctx, admin, TransactionInput{
		Date: "2024-03-02", Type: domain.TransactionIncome, Category: domain.CategoryTithe, Amount: 200,
	})
	require.NoError(t, err)

	txs := svc.Transactions()
	require.Len(t, txs, 2)
	assert.Equal(t, second.ID, txs[0].ID)
	assert.Equal(t, first.ID, txs[1].ID)
	assert.Equal(t, admin.FullName, txs[0].RecordedBy)
}

func TestAddProject_Validation(t *testing.T) {
	svc, admin := initializedService(t)
	ctx := context.Background()

	_, err := svc.AddProject(ctx, admin, ProjectInput{Title: "", TargetAmount: 100})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = svc.AddProject(ctx, admin, ProjectInput{Title: "Puits", TargetAmount: 0})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	created, err := svc.AddProject(ctx, admin, ProjectInput{Title: "Puits", TargetAmount: 100})
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectOngoing, created.Status)
	assert.Zero(t, created.CurrentAmount)
}
