// Package seed loads sample data into the blog database for development and
// demos. It is never run by the test suite against a shared database.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions controls how much generated data is written on top of the
// sample fixtures.
type SeedOptions struct {
	FakeUsers int
	FakePosts int
	// FastHash hashes passwords with bcrypt.MinCost.
	FastHash bool
	// DryRun builds rows and assigns synthetic IDs without writing.
	DryRun bool
	// MaxDays bounds how far back generated posts are dated.
	MaxDays int
	// RandSeed makes generated content reproducible; 0 picks a random seed.
	RandSeed int64
}

// Factory builds blog entities and persists them through a gorm handle.
type Factory struct {
	db    *gorm.DB
	opts  SeedOptions
	faker *gofakeit.Faker

	passwordHash string
	// synthetic ID counter when running in DryRun mode
	nextID uint
	seq    int
}

// NewFactory creates a Factory bound to db.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Factory{db: db, opts: opts, faker: gofakeit.New(seed), nextID: 1000}
}

func (f *Factory) hashedPassword() (string, error) {
	if f.passwordHash != "" {
		return f.passwordHash, nil
	}
	cost := bcrypt.DefaultCost
	if f.opts.FastHash {
		cost = bcrypt.MinCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(SamplePassword), cost)
	if err != nil {
		return "", fmt.Errorf("hash sample password: %w", err)
	}
	f.passwordHash = string(hash)
	return f.passwordHash, nil
}

func (f *Factory) create(ctx context.Context, value interface{}, assignID func(uint), what string) error {
	if f.opts.DryRun {
		f.nextID++
		assignID(f.nextID)
		middleware.Logger.Debug("dry-run create", "entity", what, "id", f.nextID)
		return nil
	}
	if err := f.db.WithContext(ctx).Create(value).Error; err != nil {
		return fmt.Errorf("create %s: %w", what, err)
	}
	return nil
}

// CreateUser persists a generated user whose password is SamplePassword.
// Overrides run before saving.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.User)) (*models.User, error) {
	hash, err := f.hashedPassword()
	if err != nil {
		return nil, err
	}

	f.seq++
	base := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, strings.ToLower(f.faker.Username()))
	if len(base) > 20 {
		base = base[:20]
	}
	username := fmt.Sprintf("%s_%d%d", base, f.faker.Number(100, 999), f.seq)
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		FullName:     f.faker.Name(),
		PasswordHash: hash,
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.create(ctx, user, func(id uint) { user.ID = id }, "user"); err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a published post for user without persisting it.
func (f *Factory) BuildPost(user *models.User, overrides ...func(*models.Post)) *models.Post {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	createdAt := time.Now().Add(
		-time.Duration(f.faker.Number(0, maxDays-1))*24*time.Hour -
			time.Duration(f.faker.Number(0, 23))*time.Hour -
			time.Duration(f.faker.Number(0, 59))*time.Minute)

	title := strings.TrimSuffix(f.faker.Sentence(6), ".")
	if len(title) > 200 {
		title = title[:200]
	}
	post := &models.Post{
		Title:     title,
		Content:   f.faker.Paragraph(2, 4, 12, "\n\n"),
		UserID:    user.ID,
		Status:    models.PostStatusPublished,
		CreatedAt: createdAt,
	}
	for _, override := range overrides {
		override(post)
	}
	if post.Status == models.PostStatusPublished && post.PublishedAt == nil {
		publishedAt := post.CreatedAt
		if publishedAt.IsZero() {
			publishedAt = time.Now()
		}
		post.PublishedAt = &publishedAt
	}
	return post
}

// CreatePost builds and persists a post for user.
func (f *Factory) CreatePost(ctx context.Context, user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(user, overrides...)
	if err := f.create(ctx, post, func(id uint) { post.ID = id }, "post"); err != nil {
		return nil, err
	}
	return post, nil
}

// TagPost attaches tags to post through the post_tags join table.
func (f *Factory) TagPost(ctx context.Context, post *models.Post, tags ...models.Tag) error {
	if len(tags) == 0 || f.opts.DryRun {
		return nil
	}
	rows := make([]models.PostTag, 0, len(tags))
	for _, tag := range tags {
		rows = append(rows, models.PostTag{PostID: post.ID, TagID: tag.ID})
	}
	if err := f.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("tag post %d: %w", post.ID, err)
	}
	return nil
}

// CreateComment persists an approved comment by user on post.
func (f *Factory) CreateComment(ctx context.Context, user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content:    f.faker.Sentence(10),
		UserID:     user.ID,
		PostID:     post.ID,
		IsApproved: true,
	}
	for _, override := range overrides {
		override(comment)
	}

	if err := f.create(ctx, comment, func(id uint) { comment.ID = id }, "comment"); err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from user on post.
func (f *Factory) CreateLike(ctx context.Context, user *models.User, post *models.Post) error {
	like := &models.Like{UserID: user.ID, PostID: post.ID}
	return f.create(ctx, like, func(id uint) { like.ID = id }, "like")
}

// pick returns n distinct indexes below size in random order.
func (f *Factory) pick(size, n int) []int {
	if n > size {
		n = size
	}
	idx := make([]int, size)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < n; i++ {
		j := f.faker.Number(i, size-1)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:n]
}
