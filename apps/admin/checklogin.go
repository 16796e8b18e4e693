package main

import (
	"fmt"

	"github.com/flipspace/flipspace/core"
	"github.com/flipspace/flipspace/core/user"
)

// checkLogin verifies a credential pair against the fixture roster without
// touching the persisted session.
func (cli *commandLine) checkLogin(uname, pwd string) error {
	uname = core.CleanString(uname, true /* lower */)
	for _, usr := range cli.roster {
		if usr.Username == uname && usr.Password == pwd {
			fmt.Printf("login ok: %s (%s)\n", usr.Username, usr.Role)
			return nil
		}
	}
	return user.ErrInvalidCredentials
}
