package main

import (
	"log"
	"os"

	"github.com/flipspace/flipspace/core"
	"github.com/flipspace/flipspace/fixtures"
	"github.com/flipspace/flipspace/storage"
	"github.com/flipspace/flipspace/storage/kv"
	"github.com/flipspace/flipspace/storage/kv/filekv"
	"github.com/flipspace/flipspace/storage/kv/memkv"
	"github.com/flipspace/flipspace/storage/kv/sqlkv"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf := core.NewConfig()

	backend, closeBackend, err := openBackend(conf)
	errAndDie(err)
	defer closeBackend()

	cli := commandLine{
		store:  storage.New(backend),
		roster: fixtures.Users(),
	}
	if sqlBackend, ok := backend.(*sqlkv.Backend); ok {
		cli.db = sqlBackend.DB()
	}

	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func openBackend(conf *core.Config) (kv.Backend, func(), error) {
	switch conf.StorageBackend {
	case core.StoragePostgres:
		backend, err := sqlkv.Open(conf.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return backend, func() { _ = backend.Close() }, nil
	case core.StorageMemory:
		return memkv.Open(), func() {}, nil
	default:
		backend, err := filekv.Open(conf.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return backend, func() {}, nil
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
