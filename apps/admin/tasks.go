package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/robfig/cron/v3"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/apps"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/task"
)

const defaultSchedule = "@every 30s"

// waitFunc blocks the watch command until it is interrupted. mockable
var waitFunc = func() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}

func (cli *commandLine) runTasks(cmd string, args []string) error {
	fs, email := cli.newFlagSet(cmd)
	section := fs.String("section", "", "Only the tasks of this section.")
	focal := fs.String("focal", "", "Only the tasks created by this focal person.")
	sortKey := fs.String("sort", string(task.SortNewest), "Order or filter: newest, oldest, today, week or month.")
	schedule := fs.String("schedule", defaultSchedule, "Cron schedule of the watch command.")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := task.BoardFilter{Sort: task.ParseSortKey(*sortKey), Section: *section, FocalID: *focal}
	if cmd == "watch" {
		sched, err := cron.ParseStandard(*schedule)
		if err != nil {
			return apps.NewArgumentError(fmt.Sprintf("invalid schedule %q: %v", *schedule, err))
		}
		sess, err := cli.login(*email)
		if err != nil {
			return err
		}
		return cli.watch(sess, filter, sched)
	}

	sess, err := cli.login(*email)
	if err != nil {
		return err
	}
	board, err := cli.taskSvc.Board(ctx(), sess.cred, filter)
	if err != nil {
		return err
	}
	cli.printBoard(board.View(board.Now))
	return nil
}

// watch prints the board summary right away then on every tick of sched, until interrupted.
func (cli *commandLine) watch(sess session, filter task.BoardFilter, sched cron.Schedule) error {
	c := cron.New()
	c.Schedule(sched, cron.FuncJob(func() { cli.printSummary(sess, filter) }))

	cli.printSummary(sess, filter)
	c.Start()
	waitFunc()
	<-c.Stop().Done()
	return nil
}

func (cli *commandLine) printSummary(sess session, filter task.BoardFilter) {
	board, err := cli.taskSvc.Board(ctx(), sess.cred, filter)
	if err != nil {
		fmt.Fprintf(cli.out, "%s  error: %v\n", cli.taskSvc.Now().Format("2006-01-02 15:04"), err)
		return
	}
	s := board.Summary
	fmt.Fprintf(cli.out, "%s  complete: %d  past due: %d  pending: %d\n",
		board.Now.Format("2006-01-02 15:04"), s.Complete, s.PastDue, s.Pending)
}

func (cli *commandLine) printBoard(board task.BoardView) {
	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	for _, bucket := range []struct {
		name  string
		views []task.View
	}{
		{"ONGOING", board.Ongoing},
		{"INCOMPLETE", board.Incomplete},
		{"HISTORY", board.History},
	} {
		fmt.Fprintf(w, "%s (%d)\n", bucket.name, len(bucket.views))
		if len(bucket.views) == 0 {
			continue
		}
		fmt.Fprintln(w, "ID\tTITLE\tSECTION\tDEADLINE\tSCHOOLS\tSTATUS")
		for _, v := range bucket.views {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d/%d (%d%%)\t%s\n",
				v.ID, v.Title, v.Section, orDash(v.Deadline.String()),
				v.Completion.Completed, v.Completion.Total, v.Completion.Percent,
				strings.ToUpper(strings.ReplaceAll(string(v.Indicator), "_", " ")))
		}
	}
	s := board.Summary
	fmt.Fprintf(w, "complete: %d  past due: %d  pending: %d\n", s.Complete, s.PastDue, s.Pending)
	_ = w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
