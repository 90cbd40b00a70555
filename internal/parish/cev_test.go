package parish

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgip/internal/domain"
	dErrors "sgip/pkg/domain-errors"
)

func TestAddParishioner_MaintainsCEVMemberCount(t *testing.T) {
	svc, admin := initializedService(t)
	ctx := context.Background()

	cev, err := svc.AddCEV(ctx, admin, CEVInput{Name: "Saint Kizito", District: "Nkol-Eton"})
	require.NoError(t, err)

	_, err = svc.AddParishioner(ctx, admin, ParishionerInput{
		FirstName: "A", LastName: "B", Gender: "M", Phone: "690000010", CEVID: cev.ID,
	})
	require.NoError(t, err)
	_, err = svc.AddParishioner(ctx, admin, ParishionerInput{
		FirstName: "C", LastName: "D", Gender: "F", Phone: "690000011", CEVID: cev.ID,
	})
	require.NoError(t, err)
	// Unassigned member affects no community.
	_, err = svc.AddParishioner(ctx, admin, ParishionerInput{
		FirstName: "E", LastName: "F", Gender: "F", Phone: "690000012",
	})
	require.NoError(t, err)

	for _, c := range svc.CEVs() {
		switch c.ID {
		case cev.ID:
			assert.Equal(t, 2, c.MemberCount)
		case domain.DefaultCEVID:
			assert.Zero(t, c.MemberCount)
		}
	}
}

func TestAddParishioner_RejectsDanglingCEV(t *testing.T) {
	svc, admin := initializedService(t)

	_, err := svc.AddParishioner(context.Background(), admin, ParishionerInput{
		FirstName: "A", LastName: "B", Gender: "M", Phone: "690000010", CEVID: "cev-ghost",
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestDeleteCEV(t *testing.T) {
	svc, admin := initializedService(t)
	ctx := context.Background()

	cev, err := svc.AddCEV(ctx, admin, CEVInput{Name: "Notre Dame de la Paix", District: "Bastos"})
	require.NoError(t, err)
	member, err := svc.AddParishioner(ctx, admin, ParishionerInput{
		FirstName: "Mary", LastName: "Eposi", Gender: "F", Phone: "699000004", CEVID: cev.ID,
	})
	require.NoError(t, err)

	t.Run("default cev is protected", func(t *testing.T) {
		err := svc.DeleteCEV(ctx, admin, domain.DefaultCEVID)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
	t.Run("unknown id is signaled", func(t *testing.T) {
		err := svc.DeleteCEV(ctx, admin, "cev-ghost")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
	t.Run("members are reassigned to the default cev", func(t *testing.T) {
		require.NoError(t, svc.DeleteCEV(ctx, admin, cev.ID))

		cevs := svc.CEVs()
		require.Len(t, cevs, 1)
		assert.Equal(t, domain.DefaultCEVID, cevs[0].ID)
		assert.Equal(t, 1, cevs[0].MemberCount)

		for _, p := range svc.Parishioners() {
			if p.ID == member.ID {
				assert.Equal(t, domain.DefaultCEVID, p.CEVID)
			}
		}
	})
}
