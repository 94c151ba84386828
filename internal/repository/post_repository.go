package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/maheshrc27/postdeck/internal/models"
	"github.com/maheshrc27/postdeck/internal/transfer"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const postColumns = `id, image_url, content, status, facebook_post_id, original_filename, created_at, posted_at, metadata`

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) (string, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context, status string) ([]*models.Post, error)
	Update(ctx context.Context, id string, upd *transfer.PostUpdate) (*models.Post, error)
	Remove(ctx context.Context, id string) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		slog.Error(err.Error())
		return "", err
	}

	query := `
		INSERT INTO posts (id, image_url, content, status, original_filename, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err = r.db.QueryRowContext(ctx, query,
		id, post.ImageURL, post.Content, post.Status, post.OriginalFilename, post.Metadata,
	).Scan(&post.CreatedAt)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	post.ID = id
	return id, nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	post, err := scanPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return post, nil
}

func (r *postRepository) List(ctx context.Context, status string) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`
	args := []any{}
	if status != "" {
		query = `SELECT ` + postColumns + ` FROM posts WHERE status = $1 ORDER BY created_at DESC`
		args = append(args, status)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// Update writes only the fields set on upd. Metadata replaces the stored
// column; merging onto the previous value is the caller's job.
func (r *postRepository) Update(ctx context.Context, id string, upd *transfer.PostUpdate) (*models.Post, error) {
	var (
		sets []string
		args []any
	)

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.FacebookPostID != nil {
		add("facebook_post_id", *upd.FacebookPostID)
	}
	if upd.PostedAt != nil {
		add("posted_at", *upd.PostedAt)
	}
	if upd.Metadata != nil {
		add("metadata", upd.Metadata)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE posts SET %s WHERE id = $%d RETURNING `+postColumns,
		strings.Join(sets, ", "), len(args),
	)

	post, err := scanPost(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return post, nil
}

func (r *postRepository) Remove(ctx context.Context, id string) error {
	query := `DELETE FROM posts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var (
		post       models.Post
		fbPostID   sql.NullString
		origName   sql.NullString
		postedAt   sql.NullTime
	)

	err := row.Scan(&post.ID, &post.ImageURL, &post.Content, &post.Status,
		&fbPostID, &origName, &post.CreatedAt, &postedAt, &post.Metadata)
	if err != nil {
		return nil, err
	}

	post.FacebookPostID = fbPostID.String
	post.OriginalFilename = origName.String
	if postedAt.Valid {
		t := postedAt.Time
		post.PostedAt = &t
	}

	return &post, nil
}
