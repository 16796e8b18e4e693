package forum_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flipspace/flipspace/core"
	"github.com/flipspace/flipspace/core/forum"
	"github.com/flipspace/flipspace/storage"
	"github.com/flipspace/flipspace/storage/kv/memkv"
)

func seedThreads() []forum.Thread {
	return []forum.Thread{
		{
			ID:       "t1",
			LessonID: "r1",
			Title:    "Stuck on problem 3",
			Posts: []forum.Post{
				{ID: "p1", Author: "u3", AuthorName: "Alex Johnson", Text: "How do I isolate x?", Replies: []forum.Reply{}},
			},
		},
	}
}

func setup(t *testing.T) *forum.Service {
	t.Helper()
	store := storage.New(memkv.Open())
	return forum.NewService(store, seedThreads(), core.NewTestConfig())
}

func TestService_CreateThread(t *testing.T) {
	svc := setup(t)

	thread, err := svc.CreateThread("r2", "  Mitochondria questions ")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(thread.ID, "t-"))
	assert.Equal(t, "Mitochondria questions", thread.Title)
	assert.Equal(t, "r2", thread.LessonID)
	assert.Empty(t, thread.Posts)

	threads, err := svc.Fetch()
	require.NoError(t, err)
	require.Len(t, threads, 2)
	assert.Equal(t, thread.ID, threads[1].ID)
}

func TestService_CreatePost(t *testing.T) {
	svc := setup(t)

	thread, err := svc.CreatePost("t1", "u1", "Sarah Mitchell", "Move the constant to the other side first.")
	require.NoError(t, err)
	require.Len(t, thread.Posts, 2)

	post := thread.Posts[1]
	assert.True(t, strings.HasPrefix(post.ID, "p-"))
	assert.Equal(t, "u1", post.Author)
	assert.Equal(t, "Sarah Mitchell", post.AuthorName)
	assert.False(t, post.CreatedAt.IsZero())
	assert.Empty(t, post.Replies)

	_, err = svc.CreatePost("nope", "u1", "Sarah Mitchell", "hi")
	assert.Equal(t, forum.ErrThreadNotFound, err)
}

func TestService_CreateReply(t *testing.T) {
	svc := setup(t)

	thread, err := svc.CreateReply("t1", "p1", "u1", "Sarah Mitchell", "Subtract 5 from both sides.")
	require.NoError(t, err)
	require.Len(t, thread.Posts[0].Replies, 1)

	reply := thread.Posts[0].Replies[0]
	assert.True(t, strings.HasPrefix(reply.ID, "re-"))
	assert.Equal(t, "Sarah Mitchell", reply.AuthorName)

	_, err = svc.CreateReply("nope", "p1", "u1", "Sarah Mitchell", "hi")
	assert.Equal(t, forum.ErrThreadNotFound, err)
	_, err = svc.CreateReply("t1", "nope", "u1", "Sarah Mitchell", "hi")
	assert.Equal(t, forum.ErrPostNotFound, err)
}

func TestService_writesShadowSeed(t *testing.T) {
	svc := setup(t)

	_, err := svc.CreatePost("t1", "u1", "Sarah Mitchell", "First write.")
	require.NoError(t, err)

	// the stored copy, not the seed, backs later reads
	threads, err := svc.Fetch()
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Len(t, threads[0].Posts, 2)
}
