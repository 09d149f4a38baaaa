package inmemdb

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/account"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/auth"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/task"
)

const (
	DemoAdminEmail    = "admin@dtracs.local"
	DemoAdminPassword = "admin"
)

// Seed fills db with a small division: a few schools, focal persons and tasks in every
// state, dated around now.
func Seed(db *DB, now time.Time) {
	at := func(days int, hour int) task.Timestamp {
		d := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location()).AddDate(0, 0, days)
		return task.ParseTimestamp(d.Format("2006-01-02T15:04:05"))
	}

	db.AddUser(auth.Credential{
		Token:  "inmem-admin",
		UserID: "1",
		Email:  DemoAdminEmail,
		Name:   "Division Administrator",
		Role:   auth.RoleAdmin,
	}, DemoAdminPassword)
	db.AddUser(auth.Credential{
		Token:  "inmem-office",
		UserID: "2",
		Email:  "office@dtracs.local",
		Name:   "Office Staff",
		Role:   auth.RoleOffice,
	}, "office")

	schools := []account.Account{
		{UserID: "101", Type: account.TypeSchool, FirstName: "Maria", LastName: "Santos", Email: "msantos@rizal-es.test", SchoolName: "Rizal Elementary School", SchoolAddress: null.StringFrom("Poblacion")},
		{UserID: "102", Type: account.TypeSchool, FirstName: "Jose", LastName: "Reyes", Email: "jreyes@rizal-es.test", SchoolName: "Rizal Elementary School", SchoolAddress: null.StringFrom("Poblacion")},
		{UserID: "103", Type: account.TypeSchool, Name: "Liza Cruz", Email: "lcruz@bonifacio-hs.test", SchoolName: "Bonifacio High School", SchoolAddress: null.StringFrom("San Isidro")},
		{UserID: "104", Type: account.TypeSchool, Name: "Ramon Dela Cruz", Email: "rdelacruz@mabini-es.test", SchoolName: "Mabini Elementary School", Phone: null.StringFrom("0917 000 0000")},
	}
	for _, acc := range schools {
		db.AddAccount(acc, true)
	}
	db.AddAccount(account.Account{UserID: "201", Type: account.TypeFocal, Name: "Ana Lim", Email: "alim@sdo.test", Office: "SDO", SectionDesignation: null.StringFrom("Planning")}, true)
	db.AddAccount(account.Account{UserID: "202", Type: account.TypeFocal, Name: "Ben Tan", Email: "btan@sdo.test", Office: "SDO"}, true)

	db.AddAccount(account.Account{UserID: "105", Type: account.TypeSchool, FirstName: "Carla", LastName: "Gomez", Email: "cgomez@luna-es.test", SchoolName: "Luna Elementary School"}, false)
	db.AddAccount(account.Account{UserID: "203", Type: account.TypeFocal, Name: "Dan Uy", Email: "duy@sdo.test", Department: "Health"}, false)

	assign := func(taskID string, acc account.Account, status task.Status, updated task.Timestamp, remarks string) task.Assignment {
		a := task.Assignment{
			TaskID:          core.FlexString(taskID),
			SchoolID:        acc.UserID,
			SchoolName:      acc.SchoolName,
			AccountID:       acc.UserID,
			AccountName:     acc.DisplayName(),
			Status:          status,
			StatusUpdatedAt: updated,
		}
		if remarks != "" {
			a.Remarks = null.StringFrom(remarks)
		}
		return a
	}

	db.AddTask(task.Task{
		ID: "1", Title: "School Improvement Plan", Section: "Planning", Office: "SDO", CreatorID: "201", CreatorName: "Ana Lim",
		Description: "<p>Submit the updated SIP.</p>", CreationDate: at(-10, 8), Deadline: at(5, 17), Status: task.StatusOngoing,
		Links: task.Links{"https://drive.example/sip-template"},
	},
		assign("1", schools[0], task.StatusComplete, at(-2, 9), task.RemarksOnTime),
		assign("1", schools[1], task.StatusOngoing, task.Timestamp{}, ""),
		assign("1", schools[2], task.StatusOngoing, task.Timestamp{}, ""),
	)
	db.AddTask(task.Task{
		ID: "2", Title: "Oral Health Survey", Section: "Dental", Office: "Health", CreatorID: "202", CreatorName: "Ben Tan",
		CreationDate: at(-20, 8), Deadline: at(-3, 17), Status: task.StatusOngoing,
	},
		assign("2", schools[2], task.StatusOngoing, task.Timestamp{}, ""),
		assign("2", schools[3], task.StatusComplete, at(-4, 10), ""),
	)
	db.AddTask(task.Task{
		ID: "3", Title: "Feeding Program Liquidation", Section: "School-Based Feeding Program", Office: "SDO", CreatorID: "201", CreatorName: "Ana Lim",
		CreationDate: at(-40, 8), Deadline: at(-25, 17), CompletionDate: at(-24, 12), Status: task.StatusComplete,
	},
		assign("3", schools[0], task.StatusComplete, at(-26, 15), task.RemarksOnTime),
		assign("3", schools[3], task.StatusComplete, at(-24, 12), task.RemarksLate),
	)
	db.AddTask(task.Task{
		ID: "4", Title: "Learner Enrollment Census", Office: "SDO", CreatorName: "Division Administrator",
		CreationDate: at(-1, 8), Deadline: at(0, 23), Status: task.StatusIncomplete,
	})
}
