// Package authz defines the capability tags carried on user records and the
// checks built on them. Capabilities are flat strings, not roles: an account
// holds any combination, and each operation names the single capability it
// requires.
package authz

// Capability tags.
const (
	ManageCourse    = "course:manage"
	ManageAnyCourse = "course:manage-any"
	PublishCourse   = "course:publish"
	EnrollCourse    = "course:enroll"
	ManageMedia     = "media:manage"
	ManageSite      = "site:manage"
	ManageSettings  = "setting:manage"
	ManageUsers     = "user:manage"
	ManageCommunity = "community:manage"
)

// CriticalCapabilities are the capabilities a domain must never lose its
// last active holder of. Deleting an account that is the sole active holder
// of any of these is rejected.
var CriticalCapabilities = []string{
	ManageSite,
	ManageSettings,
	ManageUsers,
	ManageCourse,
	ManageAnyCourse,
	ManageCommunity,
	PublishCourse,
}

// Has reports whether the capability list contains want.
func Has(permissions []string, want string) bool {
	for _, p := range permissions {
		if p == want {
			return true
		}
	}
	return false
}
