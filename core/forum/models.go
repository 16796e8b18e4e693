package forum

import "time"

type (
	// Thread groups posts under a lesson. Posts and replies are append-only;
	// there is no edit or delete.
	Thread struct {
		ID       string `json:"id"`
		LessonID string `json:"lessonId"`
		Title    string `json:"title"`
		Posts    []Post `json:"posts"`
	}

	Post struct {
		ID         string    `json:"id"`
		Author     string    `json:"author"`
		AuthorName string    `json:"authorName"` // denormalized snapshot
		Text       string    `json:"text"`
		CreatedAt  time.Time `json:"createdAt"`
		Replies    []Reply   `json:"replies"`
	}

	Reply struct {
		ID         string    `json:"id"`
		Author     string    `json:"author"`
		AuthorName string    `json:"authorName"`
		Text       string    `json:"text"`
		CreatedAt  time.Time `json:"createdAt"`
	}
)
