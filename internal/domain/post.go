package domain

import "time"

// Post is a message on the notice or community board.
// AuthorName is snapshotted from the author's profile at creation time;
// later profile changes do not rewrite history.
type Post struct {
	ID         int64
	Title      string
	Content    string
	Category   PostCategory
	AuthorID   int64
	AuthorName string
	ViewCount  int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
