package main

import (
	"fmt"

	"github.com/flipspace/flipspace/fixtures"
)

// seed force-writes the fixture collections into the store. Any state a
// previous run had shadowed over the fixtures is lost.
func (cli *commandLine) seed() error {
	resources := fixtures.Resources()
	if err := cli.store.SetResources(resources); err != nil {
		return err
	}
	quizzes := fixtures.Quizzes()
	if err := cli.store.SetQuizzes(quizzes); err != nil {
		return err
	}
	threads := fixtures.Discussions()
	if err := cli.store.SetThreads(threads); err != nil {
		return err
	}
	conversations := fixtures.Conversations()
	if err := cli.store.SetConversations(conversations); err != nil {
		return err
	}

	fmt.Printf(
		"seeded %d resources, %d quizzes, %d discussion threads, %d conversations\n",
		len(resources), len(quizzes), len(threads), len(conversations),
	)
	return nil
}
