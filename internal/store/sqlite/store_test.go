package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgip/internal/domain"
	"sgip/internal/store"
)

func newStore(t *testing.T, path string) *Store {
	t.Helper()
	st, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestStore_FreshDatabaseLoadsEmpty(t *testing.T) {
	st := newStore(t, filepath.Join(t.TempDir(), "sgip.db"))

	snap, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Parishioners)
	assert.Empty(t, snap.CEVs)
	assert.Nil(t, snap.Settings)
}

func TestStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sgip.db")
	ctx := context.Background()

	st := newStore(t, path)
	saved := store.Snapshot{
		Parishioners: []domain.Parishioner{{
			ID: "FID-1234", FirstName: "Théophile", LastName: "Abena",
			Gender: "M", Phone: "699887766", Status: domain.MemberActive,
			CEVID:     domain.DefaultCEVID,
			CreatedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		}},
		CEVs: []domain.CEV{domain.DefaultCEV()},
		Transactions: []domain.FinanceTransaction{{
			ID: "T-1709283600000-000042", Date: "2024-03-01",
			Type: domain.TransactionIncome, Category: domain.CategoryCollection, Amount: 5000,
		}},
		AuditLogs: []domain.AuditLog{{
			ID: "log-1", Timestamp: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
			UserID: "admin-01", UserName: "Administrateur",
			Action: domain.AuditActionRecorded, Module: "SACREMENT", Details: "x", Origin: "Local",
		}},
		Settings: &domain.ParishSettings{Name: "Sainte Anne", Diocese: "Yaoundé"},
	}
	require.NoError(t, st.SaveAll(ctx, saved))
	require.NoError(t, st.Close())

	reopened := newStore(t, path)
	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.Parishioners, got.Parishioners)
	assert.Equal(t, saved.CEVs, got.CEVs)
	assert.Equal(t, saved.Transactions, got.Transactions)
	require.NotNil(t, got.Settings)
	assert.Equal(t, "Sainte Anne", got.Settings.Name)
	require.Len(t, got.AuditLogs, 1)
	assert.Equal(t, "SACREMENT", got.AuditLogs[0].Module)
}

func TestStore_SaveAllOverwritesBuckets(t *testing.T) {
	st := newStore(t, filepath.Join(t.TempDir(), "sgip.db"))
	ctx := context.Background()

	require.NoError(t, st.SaveAll(ctx, store.Snapshot{
		CEVs: []domain.CEV{{ID: "cev-1"}, {ID: "cev-2"}},
	}))
	require.NoError(t, st.SaveAll(ctx, store.Snapshot{
		CEVs: []domain.CEV{{ID: "cev-1"}},
	}))

	got, err := st.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.CEVs, 1)
}

func TestStore_SessionLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sgip.db")
	ctx := context.Background()

	st := newStore(t, path)
	_, ok, err := st.LoadSession(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.SaveSession(ctx, domain.User{ID: "u-1", Username: "admin", Token: "tok"}))
	require.NoError(t, st.Close())

	// The session record survives a restart.
	reopened := newStore(t, path)
	got, ok, err := reopened.LoadSession(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "admin", got.Username)
	assert.Equal(t, "tok", got.Token)

	require.NoError(t, reopened.DeleteSession(ctx))
	_, ok, err = reopened.LoadSession(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
