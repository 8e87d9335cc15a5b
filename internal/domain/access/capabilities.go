package access

import "portfolio-admin/internal/domain/users"

const (
	CapEdit        = "edit"
	CapUpload      = "upload"
	CapCurate      = "curate"
	CapManageUsers = "manage_users"
)

// CapabilitiesFor lists what a role may do in the admin UI. Unknown roles get nothing.
func CapabilitiesFor(role string) []string {
	switch role {
	case users.RoleAdmin:
		return []string{CapEdit, CapUpload, CapCurate, CapManageUsers}
	case users.RoleEditor:
		return []string{CapEdit, CapUpload, CapCurate}
	default:
		return []string{}
	}
}
