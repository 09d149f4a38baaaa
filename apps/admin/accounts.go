package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/apps"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/account"
)

func (cli *commandLine) runAccounts(cmd string, args []string) error {
	fs, email := cli.newFlagSet(cmd)
	tab := fs.String("tab", string(account.TabVerification), "The account page: verification, termination or designation.")
	typ := fs.String("type", "", "The account type: School or Focal. Every type when empty.")
	id := fs.String("id", "", "The account's user ID.")
	section := fs.String("section", "", "The section to designate the focal person to.")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var filter account.ListFilter
	if cmd == "accounts" {
		t, ok := account.ParseTab(*tab)
		if !ok {
			return apps.NewArgumentError(fmt.Sprintf("unknown tab %q", *tab))
		}
		filter = account.ListFilter{Tab: t, Type: account.Type(*typ)}
	}

	sess, err := cli.login(*email)
	if err != nil {
		return err
	}
	c := ctx()

	var acc account.Account
	switch cmd {
	case "accounts":
		accounts, err := cli.accountSvc.List(c, sess.cred, filter)
		if err != nil {
			return err
		}
		cli.printAccounts(accounts)
		return nil
	case "schools":
		schools, err := cli.accountSvc.Schools(c, sess.cred)
		if err != nil {
			return err
		}
		for _, sch := range schools {
			fmt.Fprintf(cli.out, "%s (%d accounts) %s\n", sch.Name, len(sch.Accounts), sch.Address)
		}
		return nil
	case "verify":
		acc, err = cli.accountSvc.Verify(c, sess.cred, account.Action{UserID: *id, Type: account.Type(*typ)})
	case "deny":
		acc, err = cli.accountSvc.Deny(c, sess.cred, account.Action{UserID: *id, Type: account.Type(*typ)})
	case "terminate":
		acc, err = cli.accountSvc.Terminate(c, sess.cred, account.TerminateAction{UserID: *id, Password: sess.password})
	case "designate":
		acc, err = cli.accountSvc.Designate(c, sess.cred, account.Designation{UserID: *id, Section: *section})
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s: %s (%s) %s\n", cmd, acc.DisplayName(), acc.ID(), acc.Designation())
	return nil
}

func (cli *commandLine) printAccounts(accounts []account.Account) {
	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tNAME\tEMAIL\tAFFILIATION\tSECTION")
	for _, acc := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			acc.ID(), acc.Type, acc.DisplayName(), acc.Email, acc.Affiliation(), orDash(acc.Designation()))
	}
	_ = w.Flush()
}

func (cli *commandLine) printSections() error {
	for _, s := range account.Sections {
		fmt.Fprintln(cli.out, s)
	}
	return nil
}
