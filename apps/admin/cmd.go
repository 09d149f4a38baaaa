package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/apps"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/account"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/auth"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/task"
)

const emailEnv = "DTRACS_EMAIL"

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	auth       auth.Authenticator
	taskSvc    task.ServiceInterface
	accountSvc account.ServiceInterface
	out        io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  tasks [-section S] [-focal ID] [-sort newest|oldest|today|week|month] - show the task board")
	fmt.Fprintln(cli.out, "  watch [-schedule SPEC] [-section S] [-focal ID] - print the board summary on a cron schedule")
	fmt.Fprintln(cli.out, "  accounts -tab verification|termination|designation [-type School|Focal] - list accounts")
	fmt.Fprintln(cli.out, "  verify -id USER_ID [-type School|Focal] - approve a registration request")
	fmt.Fprintln(cli.out, "  deny -id USER_ID -type School|Focal - decline a registration request")
	fmt.Fprintln(cli.out, "  terminate -id USER_ID - delete a verified account")
	fmt.Fprintln(cli.out, "  designate -id USER_ID -section SECTION - assign a focal person to a section")
	fmt.Fprintln(cli.out, "  schools - list the registered schools")
	fmt.Fprintln(cli.out, "  sections - list the sections")
	fmt.Fprintln(cli.out, "Commands talking to the backend take -email (default $"+emailEnv+"); the password is prompted.")
}

// session is the logged in administrator and the password they typed, kept to confirm
// terminations.
type session struct {
	cred     auth.Credential
	password string
}

func (cli *commandLine) newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	email := fs.String("email", os.Getenv(emailEnv), "The administrator's email. The password will be prompted next.")
	return fs, email
}

func (cli *commandLine) login(email string) (session, error) {
	email = core.CleanString(email, true /* lower */)
	if email == "" {
		return session{}, apps.NewArgumentError("-email is required (or set $" + emailEnv + ")")
	}

	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Fprintln(cli.out)
	if err != nil {
		return session{}, err
	}
	if len(pwd) == 0 {
		return session{}, apps.NewArgumentError("a password is required")
	}

	cred, err := cli.auth.Login(ctx(), email, string(pwd))
	if err != nil {
		return session{}, err
	}
	return session{cred: cred, password: string(pwd)}, nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	cmd := strings.ToLower(args[1])
	switch cmd {
	case "tasks", "watch":
		return cli.runTasks(cmd, args[2:])
	case "accounts", "verify", "deny", "terminate", "designate", "schools":
		return cli.runAccounts(cmd, args[2:])
	case "sections":
		return cli.printSections()
	default:
		cli.printUsage()
		return errHelp
	}
}

// ctx tags every backend call of a command with its own request ID.
func ctx() context.Context {
	return core.WithRequestID(context.Background(), uuid.New().String())
}
