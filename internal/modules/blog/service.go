package blog

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"tutorhub/internal/domain"
	"tutorhub/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	posts PostRepository
}

func NewService(posts PostRepository) *Service {
	return &Service{posts: posts}
}

// Create publishes a post under a slug derived from its title. Two
// posts may not share a slug; the second attempt fails rather than
// silently shadowing the first.
func (s *Service) Create(ctx context.Context, req PostRequest) (*domain.Post, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, ErrValidation
	}

	p := &domain.Post{
		Title:     req.Title,
		Slug:      Slugify(req.Title),
		Category:  req.Category,
		Summary:   req.Summary,
		Content:   req.Content,
		ImageIcon: req.ImageIcon,
	}
	if err := s.posts.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id int64, req PostRequest) (*domain.Post, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, ErrValidation
	}

	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	p.Title = req.Title
	p.Slug = Slugify(req.Title)
	p.Category = req.Category
	p.Summary = req.Summary
	p.Content = req.Content
	p.ImageIcon = req.ImageIcon

	if err := s.posts.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.posts.Delete(ctx, id)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	p, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Post, error) {
	return s.posts.ListNewest(ctx)
}

// Slugify lowercases the title and folds every run of non-alphanumeric
// characters into a single hyphen.
func Slugify(title string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			hyphen = false
		case !hyphen && b.Len() > 0:
			b.WriteByte('-')
			hyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
