package model

// Roles carried in the token's role claim.
const (
	RoleAdmin    = "ADMIN"
	RoleEngineer = "ENGINEER"
	RoleAuditor  = "AUDITOR"
)

// Device lifecycle states.
const (
	StatusActive         = "ACTIVE"
	StatusObsolete       = "OBSOLETE"
	StatusMaintenance    = "MAINTENANCE"
	StatusDecommissioned = "DECOMMISSIONED"
)

// DeviceStatuses lists every valid device status.
var DeviceStatuses = []string{StatusActive, StatusObsolete, StatusMaintenance, StatusDecommissioned}

// License types.
const (
	TypePerDevice  = "PER_DEVICE"
	TypePerUser    = "PER_USER"
	TypeEnterprise = "ENTERPRISE"
)

// LicenseTypes lists every valid license type.
var LicenseTypes = []string{TypePerDevice, TypePerUser, TypeEnterprise}

// Audit entity types and actions.
const (
	EntityDevice     = "DEVICE"
	EntityLicense    = "LICENSE"
	EntityAssignment = "ASSIGNMENT"

	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
	ActionAssign = "ASSIGN"
)

// Device is a tracked inventory device. DeviceID is the natural key
// (XXX-XXX-### shape) and never changes after creation.
type Device struct {
	DeviceID  string `json:"deviceId"`
	Type      string `json:"type"`
	IPAddress string `json:"ipAddress"`
	Location  string `json:"location"`
	Model     string `json:"model"`
	Status    string `json:"status"`
}

// License is a software license record. LicenseKey is the natural key.
// ValidFrom/ValidTo travel as YYYY-MM-DD strings.
type License struct {
	LicenseKey   string `json:"licenseKey"`
	SoftwareName string `json:"softwareName"`
	VendorID     string `json:"vendorId"`
	ValidFrom    string `json:"validFrom"`
	ValidTo      string `json:"validTo"`
	LicenseType  string `json:"licenseType"`
	MaxUsage     int    `json:"maxUsage"`
}

// Assignment binds one license to one device. Unique per (deviceId,
// licenseKey) pair; the client rejects duplicates before submitting.
type Assignment struct {
	AssignmentID   int    `json:"assignmentId,omitempty"`
	DeviceID       string `json:"deviceId"`
	LicenseKey     string `json:"licenseKey"`
	AssignedOn     string `json:"assignedOn"`
	DeviceLocation string `json:"deviceLocation,omitempty"`
}

// Vendor is read-only reference data used to resolve license displays.
type Vendor struct {
	VendorID   string `json:"vendorId"`
	VendorName string `json:"vendorName"`
}

// AuditLogEntry is a backend audit trail record. Timestamp is RFC3339.
type AuditLogEntry struct {
	LogID      int    `json:"logId"`
	UserID     string `json:"userId"`
	Username   string `json:"username"`
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId"`
	Action     string `json:"action"`
	Timestamp  string `json:"timestamp"`
	Details    string `json:"details"`
}

// Identity is decoded client-side from the session token claims.
type Identity struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Page is the backend's paged list envelope. CurrentPage is zero-based on
// the wire.
type Page[T any] struct {
	Content     []T `json:"content"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// ExpiringLicense is a row of the dashboard's expiring-this-month table.
type ExpiringLicense struct {
	Software    string `json:"software"`
	Vendor      string `json:"vendor"`
	DevicesUsed int    `json:"devicesUsed"`
	ExpiryDate  string `json:"expiryDate"`
}

// DashboardOverview is the /dashboard/overview payload.
type DashboardOverview struct {
	TotalDevices     int               `json:"totalDevices"`
	TotalLicenses    int               `json:"totalLicenses"`
	DevicesAtRisk    int               `json:"devicesAtRisk"`
	LicensesExpiring int               `json:"licensesExpiring"`
	ExpiringLicenses []ExpiringLicense `json:"expiringLicenses"`
}
