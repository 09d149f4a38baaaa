package task

import (
	"encoding/json"
	"strings"

	"github.com/volatiletech/null/v8"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core"
)

type Status string

const (
	StatusOngoing    Status = "ONGOING"
	StatusIncomplete Status = "INCOMPLETE"
	StatusComplete   Status = "COMPLETE"
)

// Remarks
const (
	RemarksPending = "PENDING"
	RemarksOnTime  = "TURNED IN ON TIME"
	RemarksLate    = "TURNED IN LATE"
)

// DefaultSection groups tasks the backend did not file under a section.
const DefaultSection = "General"

func (s Status) Normalize() Status {
	st := Status(strings.ToUpper(strings.TrimSpace(string(s))))
	if st == "" {
		return StatusOngoing
	}
	return st
}

// Assignment is the obligation of one school account to respond to one task.
type Assignment struct {
	TaskID          core.FlexString `json:"task_id,omitempty"`
	SchoolID        core.FlexString `json:"school_id,omitempty"`
	SchoolName      string          `json:"school_name"`
	AccountID       core.FlexString `json:"account_id,omitempty"`
	AccountName     string          `json:"account_name"`
	Status          Status          `json:"status"`
	StatusUpdatedAt Timestamp       `json:"status_updated_at"`
	Remarks         null.String     `json:"remarks"`
}

func (a Assignment) IsComplete() bool { return a.Status.Normalize() == StatusComplete }

// Aggregate holds what the assignments of a task tell about its completion.
type Aggregate struct {
	SchoolsRequired      []string     `json:"schools_required"`
	SchoolsSubmitted     []string     `json:"schools_submitted"`
	SchoolsNotSubmitted  []string     `json:"schools_not_submitted"`
	AccountsRequired     []Assignment `json:"accounts_required"`
	AccountsSubmitted    []Assignment `json:"accounts_submitted"`
	AccountsNotSubmitted []Assignment `json:"accounts_not_submitted"`
	CompletedTime        Timestamp    `json:"completedTime"`
	Remarks              string       `json:"remarks"`
}

// Links may be sent as a single string or as a list.
type Links []string

func (l *Links) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*l = compactLinks(list)
		return nil
	}
	var single string
	if err := json.Unmarshal(b, &single); err == nil {
		*l = compactLinks([]string{single})
		return nil
	}
	*l = nil
	return nil
}

func compactLinks(links []string) Links {
	out := make(Links, 0, len(links))
	for _, link := range links {
		if link = strings.TrimSpace(link); link != "" {
			out = append(out, link)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

type Task struct {
	ID                 core.FlexString `json:"task_id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"` // rich text (HTML)
	Section            string          `json:"section"`
	SectionDesignation string          `json:"section_designation,omitempty"`
	Office             string          `json:"office,omitempty"`
	CreatorID          core.FlexString `json:"creator_id,omitempty"`
	CreatorName        string          `json:"creator_name"`
	CreationDate       Timestamp       `json:"creation_date"`
	Deadline           Timestamp       `json:"deadline"`
	CompletionDate     Timestamp       `json:"completion_date"`
	ModifiedDate       Timestamp       `json:"modified_date"`
	Status             Status          `json:"task_status"`
	Links              Links           `json:"links,omitempty"`

	Aggregate
}

// Normalize fills the defaults of a task received from the backend.
func (t Task) Normalize() Task {
	t.Title = core.CleanString(t.Title)
	t.Section = core.FirstNonEmpty(t.Section, t.SectionDesignation, DefaultSection)
	t.Status = t.Status.Normalize()
	if t.SchoolsRequired == nil && t.AccountsRequired == nil && t.Remarks == "" {
		t.Aggregate = AggregateAssignments(nil)
	}
	return t
}

func (t Task) IsComplete() bool { return t.Status.Normalize() == StatusComplete }

type Completion struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Percent   int `json:"percent"`
}

// Completion counts schools, not accounts.
func (t Task) Completion() Completion {
	c := Completion{
		Total:     len(t.SchoolsRequired),
		Completed: len(t.SchoolsSubmitted),
	}
	if c.Total > 0 {
		c.Percent = c.Completed * 100 / c.Total
	}
	return c
}

// Scope narrows the task list requested from the backend. The zero Scope is every task.
type Scope struct {
	Section string
	FocalID string
}
