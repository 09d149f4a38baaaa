package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/task"
)

var (
	sortParam     = "sort"
	orderingParam = "ordering" // DRF-style alias: "-creation_date" | "creation_date"
)

// Sorting binds the board sort key from either `sort` or `ordering`. Boards are newest
// first unless one of them is given.
type Sorting struct {
	Key task.SortKey
}

func (s *Sorting) Bind(ctx echo.Context) {
	if val := ctx.QueryParam(sortParam); val != "" {
		s.Key = task.ParseSortKey(val)
		return
	}

	val := strings.TrimSpace(ctx.QueryParam(orderingParam))
	if val == "" {
		s.Key = task.SortNewest
		return
	}
	field := strings.SplitN(val, ",", 2)[0] // only the first field is honoured
	descending := strings.HasPrefix(field, "-")
	if descending {
		field = field[1:] // drop "-"
	}
	if field != "creation_date" && field != "created" {
		return
	}
	if descending {
		s.Key = task.SortNewest
	} else {
		s.Key = task.SortOldest
	}
}
