package constants

// Role values stored on users.role
const (
	RoleStudent = "STUDENT"
	RoleAdvisor = "ADVISOR"
	RoleAdmin   = "ADMIN"
)

// Grouped role slices for route guards
var (
	AllRoles    = []string{RoleStudent, RoleAdvisor, RoleAdmin}
	StaffRoles  = []string{RoleAdvisor, RoleAdmin}
	AdminOnly   = []string{RoleAdmin}
	StudentOnly = []string{RoleStudent}
	AdvisorOnly = []string{RoleAdvisor}
)

func IsValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleAdvisor, RoleAdmin:
		return true
	}
	return false
}
