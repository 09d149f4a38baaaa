package auth

import "strings"

// Roles
const (
	RoleAdmin  = "admin"
	RoleOffice = "office"
	RoleFocal  = "focal"
	RoleSchool = "school"
)

// placeholders the backend uses for "no section designated"
var unassignedSections = []string{"", "not specified", "null"}

// Credential is the authenticated identity of the caller, passed explicitly to every
// operation that talks to the backend.
type Credential struct {
	Token              string `json:"token"`
	UserID             string `json:"user_id"`
	Email              string `json:"email"`
	Name               string `json:"full_name"`
	Role               string `json:"role"`
	SectionDesignation string `json:"section_designation"`
}

// Anonymous is used when no one is logged in.
var Anonymous = Credential{}

func (c Credential) IsAuthenticated() bool { return c.Token != "" }

// BearerHeader is the value of the Authorization header, empty when unauthenticated.
func (c Credential) BearerHeader() string {
	if c.Token == "" {
		return ""
	}
	return "Bearer " + c.Token
}

func (c Credential) HasSection() bool {
	s := strings.ToLower(strings.TrimSpace(c.SectionDesignation))
	for _, u := range unassignedSections {
		if s == u {
			return false
		}
	}
	return true
}

// IsOfficeWithoutSection reports whether the caller is an office account not yet designated
// to a section by an administrator. Such accounts cannot view tasks.
func (c Credential) IsOfficeWithoutSection() bool {
	return strings.EqualFold(c.Role, RoleOffice) && !c.HasSection()
}
