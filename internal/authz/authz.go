// Package authz implements the flat role model. Two roles — the system
// administrator and the parish priest — override every check; everyone
// else must appear literally in a feature's allow-list.
package authz

// Role is a staff or member role. Values are the display strings the
// registry has always stored, so they survive round-trips unchanged.
type Role string

const (
	RoleAdmin            Role = "Super-Administrateur"
	RoleCure             Role = "Curé"
	RoleVicaire          Role = "Vicaire"
	RoleSecretaire       Role = "Secrétaire"
	RoleComptable        Role = "Comptable"
	RolePresidentConseil Role = "Président du Conseil"
	RoleFidel            Role = "Fidèle"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCure, RoleVicaire, RoleSecretaire,
		RoleComptable, RolePresidentConseil, RoleFidel:
		return true
	}
	return false
}

// Can reports whether the actor role passes a check gated on the allowed
// roles. Admin and Curé pass every check; the override pair is fixed, not
// data-driven.
func Can(actor Role, allowed ...Role) bool {
	if actor == RoleAdmin || actor == RoleCure {
		return true
	}
	for _, r := range allowed {
		if actor == r {
			return true
		}
	}
	return false
}

// Feature names a gated area of the system.
type Feature string

const (
	FeatureParishioners  Feature = "parishioners"
	FeatureSacraments    Feature = "sacraments"
	FeatureFinance       Feature = "finance"
	FeatureCommunication Feature = "communication"
	FeatureAdminUsers    Feature = "admin_users"
	FeatureAudit         Feature = "audit"
)

// featureRoles lists the roles allowed per feature, beyond the override
// pair. Features absent from the map are open to every authenticated role.
var featureRoles = map[Feature][]Role{
	FeatureParishioners:  {RoleVicaire, RoleSecretaire},
	FeatureSacraments:    {RoleVicaire, RoleSecretaire},
	FeatureFinance:       {RoleComptable},
	FeatureCommunication: {RoleSecretaire},
	FeatureAdminUsers:    {RoleAdmin},
	FeatureAudit:         {RoleAdmin},
}

// CanAccess reports whether the actor role may use the feature.
func CanAccess(actor Role, feature Feature) bool {
	allowed, gated := featureRoles[feature]
	if !gated {
		return actor.Valid()
	}
	return Can(actor, allowed...)
}
