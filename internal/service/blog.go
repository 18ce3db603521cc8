package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Haitham314s/blog-api/internal/models"
	"github.com/Haitham314s/blog-api/internal/repo"
)

// DefaultListLimit is the post count returned when the caller asks for none.
const DefaultListLimit = 10

// BlogService handles blog post CRUD. Reads are public; mutations require an
// authenticated actor (resolved upstream by the auth middleware) and pass
// through AuthorizeMutation.
type BlogService struct {
	posts *repo.PostRepo
}

func NewBlogService(posts *repo.PostRepo) *BlogService {
	return &BlogService{posts: posts}
}

// CreatePost stores a new post owned by actor. The author ID and display-name
// snapshot are taken from the actor and never change afterwards.
func (s *BlogService) CreatePost(ctx context.Context, actor *models.User, title, content string) (*models.Post, error) {
	post, err := s.posts.Create(ctx, title, content, actor.ID, actor.Name)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func (s *BlogService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load post: %w", err)
	}
	return post, nil
}

func (s *BlogService) ListPosts(ctx context.Context, limit int) ([]models.Post, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	posts, err := s.posts.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// AuthorizeMutation loads the post and checks that actor owns it. Existence
// is checked before ownership, so a missing post is ErrNotFound and a post
// owned by someone else is ErrForbidden; the order must not change because
// clients depend on the 404 vs 403 split. Authentication has already happened
// upstream — an unresolved actor never reaches this point.
func (s *BlogService) AuthorizeMutation(ctx context.Context, postID string, actor *models.User) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load post: %w", err)
	}

	if !CanMutate(post.AuthorID, actor.ID) {
		return nil, ErrForbidden
	}
	return post, nil
}

// UpdatePost replaces title and content of a post owned by actor.
func (s *BlogService) UpdatePost(ctx context.Context, actor *models.User, postID, title, content string) (*models.Post, error) {
	if _, err := s.AuthorizeMutation(ctx, postID, actor); err != nil {
		return nil, err
	}

	post, err := s.posts.Update(ctx, postID, title, content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// DeletePost removes a post owned by actor.
func (s *BlogService) DeletePost(ctx context.Context, actor *models.User, postID string) error {
	if _, err := s.AuthorizeMutation(ctx, postID, actor); err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
