package parish

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgip/internal/domain"
	dErrors "sgip/pkg/domain-errors"
)

var verifKeyPattern = regexp.MustCompile(`^VERIF-[A-Z0-9]{6}$`)

func TestAddSacrament(t *testing.T) {
	svc, admin := initializedService(t)
	ctx := context.Background()

	member, err := svc.AddParishioner(ctx, admin, ParishionerInput{
		FirstName: "Christian", LastName: "Kamga", Gender: "M", Phone: "655443322",
	})
	require.NoError(t, err)

	rec, err := svc.AddSacrament(ctx, admin, SacramentInput{
		Type:          domain.SacramentBaptism,
		ParishionerID: member.ID,
		Date:          "2024-03-17",
		Minister:      "Abbé Essomba",
		GodFather:     "Théophile Abena",
		RegisterVolume: "III", RegisterPage: "42", RegisterNumber: "117",
	})
	require.NoError(t, err)

	t.Run("issues a well-formed verification key", func(t *testing.T) {
		assert.Regexp(t, verifKeyPattern, rec.VerificationKey)
	})
	t.Run("denormalizes the member name", func(t *testing.T) {
		assert.Equal(t, "Kamga Christian", rec.ParishionerName)
	})
	t.Run("audits the key issuance", func(t *testing.T) {
		logs := svc.AuditLogs()
		require.NotEmpty(t, logs)
		assert.Equal(t, domain.AuditActionRecorded, logs[0].Action)
		assert.Equal(t, "SACREMENT", logs[0].Module)
		assert.Contains(t, logs[0].Details, rec.VerificationKey)
		assert.Contains(t, logs[0].Details, rec.ParishionerName)
	})
	t.Run("sets the member's sacrament flag", func(t *testing.T) {
		for _, p := range svc.Parishioners() {
			if p.ID == member.ID {
				assert.True(t, p.Baptized)
				assert.False(t, p.Confirmed)
			}
		}
	})
}

func TestAddSacrament_KeysAreUnique(t *testing.T) {
	svc, admin := initializedService(t)
	ctx := context.Background()

	member, err := svc.AddParishioner(ctx, admin, ParishionerInput{
		FirstName: "Lucie", LastName: "Ngo", Gender: "F", Phone: "699000002",
	})
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		rec, err := svc.AddSacrament(ctx, admin, SacramentInput{
			Type: domain.SacramentConfirmation, ParishionerID: member.ID,
			Date: "2024-03-17", Minister: "Abbé Essomba",
		})
		require.NoError(t, err)
		assert.False(t, seen[rec.VerificationKey], "verification key reused")
		seen[rec.VerificationKey] = true
	}
}

func TestAddSacrament_Validation(t *testing.T) {
	svc, admin := initializedService(t)
	ctx := context.Background()

	t.Run("unknown parishioner", func(t *testing.T) {
		_, err := svc.AddSacrament(ctx, admin, SacramentInput{
			Type: domain.SacramentBaptism, ParishionerID: "FID-0000", Minister: "Abbé X",
		})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
	t.Run("unknown sacrament type", func(t *testing.T) {
		_, err := svc.AddSacrament(ctx, admin, SacramentInput{
			Type: "Ordination", ParishionerID: "FID-1234", Minister: "Abbé X",
		})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
	t.Run("missing minister", func(t *testing.T) {
		_, err := svc.AddSacrament(ctx, admin, SacramentInput{
			Type: domain.SacramentBaptism, ParishionerID: "FID-1234",
		})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
	assert.Empty(t, svc.Sacraments())
	assert.Empty(t, svc.AuditLogs(), "failed recordings must not audit")
}

func TestAddSacrament_FuneralLeavesFlagsAlone(t *testing.T) {
	svc, admin := initializedService(t)
	ctx := context.Background()

	member, err := svc.AddParishioner(ctx, admin, ParishionerInput{
		FirstName: "Paul", LastName: "Biyong", Gender: "M", Phone: "690000001",
	})
	require.NoError(t, err)

	_, err = svc.AddSacrament(ctx, admin, SacramentInput{
		Type: domain.SacramentFuneral, ParishionerID: member.ID, Minister: "Abbé Essomba",
	})
	require.NoError(t, err)

	for _, p := range svc.Parishioners() {
		if p.ID == member.ID {
			assert.False(t, p.Baptized)
			assert.False(t, p.Confirmed)
			assert.False(t, p.Married)
		}
	}
}
