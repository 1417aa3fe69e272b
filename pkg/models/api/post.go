package api

import "time"

type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type PostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
