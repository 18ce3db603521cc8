package models

import "time"

// Post is a blog post. AuthorID is set once at creation from the
// authenticated creator and is the only field ownership checks look at.
// AuthorName is a display-name snapshot taken at creation time.
type Post struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}
