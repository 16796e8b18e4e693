package main

import (
	"errors"
	"path/filepath"

	"github.com/pressly/goose"

	"github.com/flipspace/flipspace/core"
)

var gooseRunFunc = goose.Run // mockable

var errNoDB = errors.New("migrate requires the postgres storage backend")

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return errNoDB
	}

	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	dir := filepath.Join(core.Getwd(), "migrations")
	return gooseRunFunc(args[0], cli.db, dir, arguments...)
}
