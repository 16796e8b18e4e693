// Package fixtures bundles the static seed data every collection defaults to
// until its first runtime write. Fixtures are the sole source of truth for
// user credentials; everything else is starter content.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/flipspace/flipspace/core/chat"
	"github.com/flipspace/flipspace/core/forum"
	"github.com/flipspace/flipspace/core/quiz"
	"github.com/flipspace/flipspace/core/resource"
	"github.com/flipspace/flipspace/core/user"
)

//go:embed data/*.json
var dataFS embed.FS

// Users returns the immutable roster, plaintext passwords included; callers
// redact before handing profiles out.
func Users() []user.User {
	var users []user.User
	mustLoad("data/users.json", &users)
	return users
}

func Resources() []resource.Resource {
	var resources []resource.Resource
	mustLoad("data/resources.json", &resources)
	return resources
}

func Quizzes() []quiz.Quiz {
	var quizzes []quiz.Quiz
	mustLoad("data/quizzes.json", &quizzes)
	return quizzes
}

func Discussions() []forum.Thread {
	var threads []forum.Thread
	mustLoad("data/discussions.json", &threads)
	return threads
}

func Conversations() []chat.Conversation {
	var conversations []chat.Conversation
	mustLoad("data/conversations.json", &conversations)
	return conversations
}

// mustLoad panics on malformed embedded data: a bad fixture is a build
// defect, not a runtime condition.
func mustLoad(name string, dst interface{}) {
	doc, err := dataFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("fixtures: reading %s: %v", name, err))
	}
	if err := json.Unmarshal(doc, dst); err != nil {
		panic(fmt.Sprintf("fixtures: decoding %s: %v", name, err))
	}
}
