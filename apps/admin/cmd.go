package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/flipspace/flipspace/core/user"
	"github.com/flipspace/flipspace/storage"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	store  *storage.Store
	db     *sql.DB // nil unless the postgres backend is active
	roster []user.User
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  seed                           - write fixture data into the store, overwriting any shadowed state")
	fmt.Println("  migrate COMMAND [args]         - run a goose migration command (postgres backend only)")
	fmt.Println("  checklogin -username USERNAME  - verify a roster login; the password will be prompted next")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	checkLoginCmd := flag.NewFlagSet("checklogin", flag.ExitOnError)
	checkLoginUname := checkLoginCmd.String("username", "", "The user's username. The password will be prompted next.")

	switch args[1] {
	case "seed":
		return cli.seed()
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "checklogin":
		if err := checkLoginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *checkLoginUname == "" {
			checkLoginCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			checkLoginCmd.Usage()
			return errHelp
		}
		return cli.checkLogin(*checkLoginUname, string(pwd))
	default:
		cli.printUsage()
		return errHelp
	}
}
