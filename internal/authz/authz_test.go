package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCan_OverridePair(t *testing.T) {
	// Admin and Curé pass every check, even an empty allow-list.
	for _, actor := range []Role{RoleAdmin, RoleCure} {
		assert.True(t, Can(actor), "%s must pass an empty allow-list", actor)
		assert.True(t, Can(actor, RoleComptable))
	}
}

func TestCan_LiteralMembership(t *testing.T) {
	assert.True(t, Can(RoleSecretaire, RoleVicaire, RoleSecretaire))
	assert.False(t, Can(RoleSecretaire, RoleComptable))
	assert.False(t, Can(RoleFidel, RoleVicaire, RoleSecretaire, RoleComptable))
	assert.False(t, Can(RolePresidentConseil))
}

func TestCanAccess(t *testing.T) {
	cases := []struct {
		actor   Role
		feature Feature
		want    bool
	}{
		{RoleCure, FeatureAudit, true}, // override reaches gated features
		{RoleAdmin, FeatureFinance, true},
		{RoleSecretaire, FeatureParishioners, true},
		{RoleSecretaire, FeatureFinance, false},
		{RoleComptable, FeatureFinance, true},
		{RoleComptable, FeatureAdminUsers, false},
		{RoleVicaire, FeatureSacraments, true},
		{RoleFidel, FeatureAudit, false},
		{RoleFidel, Feature("dashboard"), true}, // ungated features are open
		{Role("Inconnu"), Feature("dashboard"), false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanAccess(tc.actor, tc.feature), "%s on %s", tc.actor, tc.feature)
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, Role("Curé").Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("Pape").Valid())
}
