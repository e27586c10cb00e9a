package routes

const (
	// Health
	Health = "/health"

	// Tenancy coordination
	TenanciesAssign   = "/api/v1/tenancies/assign"
	TenanciesUnassign = "/api/v1/tenancies/unassign"

	// Tenant endpoints
	TenantsBase  = "/api/v1/tenants"
	TenantsByID  = "/api/v1/tenants/{tenantId}"
	TenantsFacts = "/api/v1/tenants/facts"

	// Qualification and status projection
	TenantsQualificationEvaluate = "/api/v1/tenants/qualification/evaluate"
	TenantsStatusRecompute       = "/api/v1/tenants/status/recompute"
	TenantsStatusOverride        = "/api/v1/tenants/status/override"

	// Property endpoints
	PropertiesBase = "/api/v1/properties"
	PropertiesByID = "/api/v1/properties/{propertyId}"
)
