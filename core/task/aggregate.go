package task

// AggregateAssignments reduces the assignments of one task. Records without a school or an
// account name are skipped. When several completions share the latest timestamp, the last
// one in input order wins.
func AggregateAssignments(assignments []Assignment) Aggregate {
	agg := Aggregate{
		SchoolsRequired:      []string{},
		SchoolsSubmitted:     []string{},
		SchoolsNotSubmitted:  []string{},
		AccountsRequired:     []Assignment{},
		AccountsSubmitted:    []Assignment{},
		AccountsNotSubmitted: []Assignment{},
		Remarks:              RemarksPending,
	}

	required := make(map[string]bool)
	submitted := make(map[string]bool)
	var latest Timestamp

	for _, a := range assignments {
		if a.SchoolName == "" || a.AccountName == "" {
			continue
		}
		a.Status = a.Status.Normalize()

		if !required[a.SchoolName] {
			required[a.SchoolName] = true
			agg.SchoolsRequired = append(agg.SchoolsRequired, a.SchoolName)
		}
		agg.AccountsRequired = append(agg.AccountsRequired, a)

		if !a.IsComplete() {
			agg.AccountsNotSubmitted = append(agg.AccountsNotSubmitted, a)
			continue
		}
		if !submitted[a.SchoolName] {
			submitted[a.SchoolName] = true
			agg.SchoolsSubmitted = append(agg.SchoolsSubmitted, a.SchoolName)
		}
		agg.AccountsSubmitted = append(agg.AccountsSubmitted, a)

		switch {
		case a.StatusUpdatedAt.Valid():
			if !latest.Valid() || !a.StatusUpdatedAt.Time.Before(latest.Time) {
				latest = a.StatusUpdatedAt
				agg.Remarks = remarksOf(a)
			}
		case !latest.Valid():
			// undated completions only count until a dated one shows up
			agg.Remarks = remarksOf(a)
		}
	}

	for _, school := range agg.SchoolsRequired {
		if !submitted[school] {
			agg.SchoolsNotSubmitted = append(agg.SchoolsNotSubmitted, school)
		}
	}
	agg.CompletedTime = latest
	return agg
}

func remarksOf(a Assignment) string {
	if a.Remarks.Valid && a.Remarks.String != "" {
		return a.Remarks.String
	}
	return RemarksOnTime
}
