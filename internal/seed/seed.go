package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// ErrNoAuthors is returned when fake posts are requested but no user exists.
var ErrNoAuthors = errors.New("seed: no users to author posts")

// Seed loads the sample fixtures when the database has no users, then adds
// the generated users and posts requested by opts. Everything is written in
// one transaction.
func Seed(ctx context.Context, db *gorm.DB, opts SeedOptions) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := seedSample(ctx, tx, opts); err != nil {
			return err
		}
		return seedFake(ctx, tx, opts)
	})
}

// SeedSample loads the sample fixtures. It reports false and writes nothing
// when any user already exists.
func SeedSample(ctx context.Context, db *gorm.DB, opts SeedOptions) (bool, error) {
	var loaded bool
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		loaded, err = seedSample(ctx, tx, opts)
		return err
	})
	return loaded, err
}

// SeedFake adds opts.FakeUsers users and opts.FakePosts posts, with comments
// and likes, on top of whatever the database already holds.
func SeedFake(ctx context.Context, db *gorm.DB, opts SeedOptions) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return seedFake(ctx, tx, opts)
	})
}

func seedSample(ctx context.Context, tx *gorm.DB, opts SeedOptions) (bool, error) {
	var existing int64
	if err := tx.Model(&models.User{}).Count(&existing).Error; err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if existing > 0 {
		middleware.Logger.Info("database already has users, skipping sample data", "users", existing)
		return false, nil
	}

	fx, err := LoadFixtures()
	if err != nil {
		return false, err
	}
	f := NewFactory(tx, opts)

	users := make(map[string]*models.User, len(fx.Users))
	for _, u := range fx.Users {
		u := u
		user, err := f.CreateUser(ctx, func(m *models.User) {
			m.Username = u.Username
			m.Email = u.Email
			m.FullName = u.FullName
		})
		if err != nil {
			return false, err
		}
		users[u.Username] = user
	}

	categories := make(map[string]*models.Category, len(fx.Categories))
	for _, c := range fx.Categories {
		category := &models.Category{Name: c.Name, Slug: c.Slug, Description: c.Description}
		if err := f.create(ctx, category, func(id uint) { category.ID = id }, "category"); err != nil {
			return false, err
		}
		categories[c.Slug] = category
	}

	tags := make(map[string]models.Tag, len(fx.Tags))
	for _, t := range fx.Tags {
		tag := &models.Tag{Name: t.Name, Slug: t.Slug}
		if err := f.create(ctx, tag, func(id uint) { tag.ID = id }, "tag"); err != nil {
			return false, err
		}
		tags[t.Slug] = *tag
	}

	posts := make(map[string]*models.Post, len(fx.Posts))
	for _, p := range fx.Posts {
		p := p
		post, err := f.CreatePost(ctx, users[p.Author], func(m *models.Post) {
			m.Title = p.Title
			m.Content = p.Content
			m.Status = p.Status
			m.CreatedAt = time.Now()
			if c, ok := categories[p.Category]; ok {
				m.CategoryID = &c.ID
			}
		})
		if err != nil {
			return false, err
		}
		postTags := make([]models.Tag, 0, len(p.Tags))
		for _, slug := range p.Tags {
			postTags = append(postTags, tags[slug])
		}
		if err := f.TagPost(ctx, post, postTags...); err != nil {
			return false, err
		}
		posts[p.Key] = post
	}

	for _, c := range fx.Comments {
		content := c.Content
		if _, err := f.CreateComment(ctx, users[c.Author], posts[c.Post], func(m *models.Comment) {
			m.Content = content
		}); err != nil {
			return false, err
		}
	}

	for _, l := range fx.Likes {
		if err := f.CreateLike(ctx, users[l.User], posts[l.Post]); err != nil {
			return false, err
		}
	}

	middleware.Logger.Info("sample data loaded",
		"users", len(users),
		"categories", len(categories),
		"tags", len(tags),
		"posts", len(posts),
	)
	return true, nil
}

func seedFake(ctx context.Context, tx *gorm.DB, opts SeedOptions) error {
	if opts.FakeUsers <= 0 && opts.FakePosts <= 0 {
		return nil
	}
	f := NewFactory(tx, opts)

	var users []models.User
	if err := tx.Order("id").Find(&users).Error; err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	for i := 0; i < opts.FakeUsers; i++ {
		user, err := f.CreateUser(ctx)
		if err != nil {
			return err
		}
		users = append(users, *user)
	}
	if opts.FakePosts <= 0 {
		middleware.Logger.Info("fake users created", "users", opts.FakeUsers)
		return nil
	}
	if len(users) == 0 {
		return ErrNoAuthors
	}

	var categories []models.Category
	if err := tx.Order("id").Find(&categories).Error; err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	var tags []models.Tag
	if err := tx.Order("id").Find(&tags).Error; err != nil {
		return fmt.Errorf("load tags: %w", err)
	}

	for i := 0; i < opts.FakePosts; i++ {
		author := &users[f.faker.Number(0, len(users)-1)]
		post, err := f.CreatePost(ctx, author, func(m *models.Post) {
			if f.faker.Number(1, 10) > 8 {
				m.Status = models.PostStatusDraft
			}
			if len(categories) > 0 && f.faker.Bool() {
				m.CategoryID = &categories[f.faker.Number(0, len(categories)-1)].ID
			}
		})
		if err != nil {
			return err
		}

		var postTags []models.Tag
		for _, j := range f.pick(len(tags), f.faker.Number(0, 2)) {
			postTags = append(postTags, tags[j])
		}
		if err := f.TagPost(ctx, post, postTags...); err != nil {
			return err
		}

		for _, j := range f.pick(len(users), f.faker.Number(0, 3)) {
			if _, err := f.CreateComment(ctx, &users[j], post); err != nil {
				return err
			}
		}
		for _, j := range f.pick(len(users), f.faker.Number(0, 3)) {
			if err := f.CreateLike(ctx, &users[j], post); err != nil {
				return err
			}
		}
	}

	middleware.Logger.Info("fake data created", "users", opts.FakeUsers, "posts", opts.FakePosts)
	return nil
}
