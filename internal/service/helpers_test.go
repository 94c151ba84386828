package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/maheshrc27/postdeck/internal/models"
	"github.com/maheshrc27/postdeck/internal/transfer"
)

// fakePostRepository is an in-memory PostRepository for service tests.
type fakePostRepository struct {
	posts       map[string]*models.Post
	nextID      int
	createErr   error
	removeErr   error
	updateCalls int
}

func newFakePostRepository() *fakePostRepository {
	return &fakePostRepository{posts: make(map[string]*models.Post)}
}

func (f *fakePostRepository) Create(ctx context.Context, post *models.Post) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.nextID++
	post.ID = fmt.Sprintf("post-%d", f.nextID)
	post.CreatedAt = time.Now().UTC()
	cp := *post
	f.posts[post.ID] = &cp
	return post.ID, nil
}

func (f *fakePostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *post
	return &cp, nil
}

func (f *fakePostRepository) List(ctx context.Context, status string) ([]*models.Post, error) {
	var posts []*models.Post
	for _, post := range f.posts {
		if status != "" && post.Status != status {
			continue
		}
		cp := *post
		posts = append(posts, &cp)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (f *fakePostRepository) Update(ctx context.Context, id string, upd *transfer.PostUpdate) (*models.Post, error) {
	f.updateCalls++
	post, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	if upd.Status != nil {
		post.Status = *upd.Status
	}
	if upd.FacebookPostID != nil {
		post.FacebookPostID = *upd.FacebookPostID
	}
	if upd.PostedAt != nil {
		t := *upd.PostedAt
		post.PostedAt = &t
	}
	if upd.Metadata != nil {
		post.Metadata = upd.Metadata
	}
	cp := *post
	return &cp, nil
}

func (f *fakePostRepository) Remove(ctx context.Context, id string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	delete(f.posts, id)
	return nil
}

// fakeStorage is an in-memory Storage for service tests.
type fakeStorage struct {
	objects   map[string][]byte
	uploadErr error
	deleteErr error
	deleted   []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(ctx context.Context, key string, file []byte, filetype string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	if _, exists := f.objects[key]; exists {
		return ErrObjectExists
	}
	f.objects[key] = file
	return nil
}

func (f *fakeStorage) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, key)
	return nil
}
