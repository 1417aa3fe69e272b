package post

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/tenant-atlas/pkg/models/store"
	"github.com/de-tools/tenant-atlas/pkg/store/sqldb"
	"github.com/rs/zerolog"
)

// Tokyo is the zone post timestamps are reported in.
var Tokyo = time.FixedZone("JST", 9*60*60)

type Store interface {
	List(ctx context.Context) ([]store.Post, error)
	Get(ctx context.Context, id int64) (store.Post, error)
	Create(ctx context.Context, title, body string) (store.Post, error)
	Update(ctx context.Context, id int64, title, body string) (store.Post, error)
	Delete(ctx context.Context, id int64) error
}

type defaultStore struct {
	db  *sqldb.DB
	now func() time.Time
}

func NewStore(db *sqldb.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{db: db, now: time.Now}, nil
}

func (s *defaultStore) List(ctx context.Context) ([]store.Post, error) {
	rows, err := s.db.Conn(ctx).QueryContext(ctx,
		`SELECT id, title, body, created_at FROM posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("posts query failed: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close posts query rows")
		}
	}(rows)

	posts := []store.Post{}
	for rows.Next() {
		var p store.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Body, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.CreatedAt = p.CreatedAt.In(Tokyo)
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *defaultStore) Get(ctx context.Context, id int64) (store.Post, error) {
	var p store.Post
	err := s.db.Conn(ctx).QueryRowContext(ctx,
		s.db.Rebind(`SELECT id, title, body, created_at FROM posts WHERE id = ?`), id).
		Scan(&p.ID, &p.Title, &p.Body, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Post{}, fmt.Errorf("post %d: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return store.Post{}, fmt.Errorf("post query failed: %w", err)
	}
	p.CreatedAt = p.CreatedAt.In(Tokyo)
	return p, nil
}

func (s *defaultStore) Create(ctx context.Context, title, body string) (store.Post, error) {
	createdAt := s.now().UTC().Truncate(time.Second)

	var id int64
	err := s.db.Conn(ctx).QueryRowContext(ctx,
		s.db.Rebind(`INSERT INTO posts (title, body, created_at) VALUES (?, ?, ?) RETURNING id`),
		title, body, createdAt).Scan(&id)
	if err != nil {
		return store.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	return store.Post{ID: id, Title: title, Body: body, CreatedAt: createdAt.In(Tokyo)}, nil
}

func (s *defaultStore) Update(ctx context.Context, id int64, title, body string) (store.Post, error) {
	var updated store.Post
	err := s.db.InTx(ctx, func(ctx context.Context) error {
		res, err := s.db.Conn(ctx).ExecContext(ctx,
			s.db.Rebind(`UPDATE posts SET title = ?, body = ? WHERE id = ?`), title, body, id)
		if err != nil {
			return fmt.Errorf("failed to update post %d: %w", id, err)
		}
		if err := requireAffected(res, id); err != nil {
			return err
		}
		updated, err = s.Get(ctx, id)
		return err
	})
	return updated, err
}

func (s *defaultStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.Conn(ctx).ExecContext(ctx, s.db.Rebind(`DELETE FROM posts WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete post %d: %w", id, err)
	}
	return requireAffected(res, id)
}

func requireAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("post %d: %w", id, store.ErrNotFound)
	}
	return nil
}
