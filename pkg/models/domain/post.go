package domain

import "time"

type Post struct {
	ID        int64
	Title     string
	Body      string
	CreatedAt time.Time
}
