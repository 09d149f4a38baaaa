package account

import (
	"sort"
	"strings"

	"github.com/volatiletech/null/v8"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core"
)

type Type string

const (
	TypeSchool Type = "School"
	TypeFocal  Type = "Focal"
	TypeAll    Type = "All" // filter only
)

func ParseType(s string) Type {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "school":
		return TypeSchool
	case "focal":
		return TypeFocal
	case "", "all":
		return TypeAll
	}
	return Type(s)
}

func (t Type) Valid() bool { return t == TypeSchool || t == TypeFocal }

// Tab is one of the account control pages.
type Tab string

const (
	TabVerification Tab = "verification" // pending registration requests
	TabTermination  Tab = "termination"  // verified accounts
	TabDesignation  Tab = "designation"  // verified focal accounts
)

var Tabs = []Tab{TabVerification, TabTermination, TabDesignation}

func ParseTab(s string) (Tab, bool) {
	tab := Tab(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range Tabs {
		if t == tab {
			return tab, true
		}
	}
	return tab, false
}

// Verified reports whether the tab lists verified accounts rather than pending requests.
func (t Tab) Verified() bool { return t != TabVerification }

const unknownUser = "Unknown User"

// Account is a school or focal person account, pending or verified.
type Account struct {
	UserID             core.FlexString `json:"user_id"`
	Type               Type            `json:"type"`
	Name               string          `json:"name,omitempty"`
	FirstName          string          `json:"first_name,omitempty"`
	MiddleName         string          `json:"middle_name,omitempty"`
	LastName           string          `json:"last_name,omitempty"`
	Email              string          `json:"email"`
	Phone              null.String     `json:"phone"`
	ContactNumber      null.String     `json:"contact_number,omitempty"`
	SchoolName         string          `json:"school_name,omitempty"`
	School             string          `json:"school,omitempty"`
	SchoolAddress      null.String     `json:"school_address"`
	Office             string          `json:"office,omitempty"`
	Department         string          `json:"department,omitempty"`
	Section            string          `json:"section,omitempty"`
	SectionDesignation null.String     `json:"section_designation"`
}

func (a Account) ID() string { return a.UserID.String() }

func (a Account) DisplayName() string {
	if name := core.CleanString(a.Name); name != "" {
		return name
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{a.FirstName, a.MiddleName, a.LastName} {
		if p = core.CleanString(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	return core.FirstNonEmpty(a.Email, unknownUser)
}

func (a Account) SchoolOrEmpty() string { return core.FirstNonEmpty(a.SchoolName, a.School) }
func (a Account) OfficeOrEmpty() string { return core.FirstNonEmpty(a.Office, a.Department) }

func (a Account) PhoneOrEmpty() string {
	if a.Phone.Valid && a.Phone.String != "" {
		return a.Phone.String
	}
	return a.ContactNumber.String
}

// Affiliation is what the account lists show next to the name.
func (a Account) Affiliation() string {
	if a.Type == TypeSchool {
		return core.FirstNonEmpty(a.SchoolOrEmpty(), "Unnamed School")
	}
	return core.FirstNonEmpty(a.OfficeOrEmpty(), "Focal Person")
}

// Designation is the section of a focal account, empty when not assigned yet.
func (a Account) Designation() string {
	return core.FirstNonEmpty(a.SectionDesignation.String, a.Section)
}

// School is a registered school and its verified accounts.
type School struct {
	Slug     string    `json:"slug"`
	Name     string    `json:"school_name"`
	Address  string    `json:"school_address"`
	Accounts []Account `json:"accounts"`
}

// GroupSchools groups school accounts by school name. Schools are sorted by name, accounts
// keep their order.
func GroupSchools(accounts []Account) []School {
	bySlug := make(map[string]*School)
	for _, acc := range accounts {
		name := acc.SchoolOrEmpty()
		if acc.Type != TypeSchool || name == "" {
			continue
		}
		slug := Slugify(name)
		sch, ok := bySlug[slug]
		if !ok {
			sch = &School{Slug: slug, Name: name, Accounts: []Account{}}
			bySlug[slug] = sch
		}
		if sch.Address == "" {
			sch.Address = core.CleanString(acc.SchoolAddress.String)
		}
		sch.Accounts = append(sch.Accounts, acc)
	}

	schools := make([]School, 0, len(bySlug))
	for _, sch := range bySlug {
		schools = append(schools, *sch)
	}
	sort.Slice(schools, func(i, j int) bool { return schools[i].Slug < schools[j].Slug })
	return schools
}

// Slugify lowers s and joins its alphanumeric runs with dashes.
func Slugify(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	return strings.Join(fields, "-")
}
