package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yml
var fixturesYAML []byte

// SamplePassword is the password of every fixture and fake user.
const SamplePassword = "password123"

// Fixtures is the sample data set. Posts, comments and likes refer to other
// rows by username, slug or post key.
type Fixtures struct {
	Users []struct {
		Username string `yaml:"username"`
		Email    string `yaml:"email"`
		FullName string `yaml:"full_name"`
	} `yaml:"users"`
	Categories []struct {
		Name        string `yaml:"name"`
		Slug        string `yaml:"slug"`
		Description string `yaml:"description"`
	} `yaml:"categories"`
	Tags []struct {
		Name string `yaml:"name"`
		Slug string `yaml:"slug"`
	} `yaml:"tags"`
	Posts []struct {
		Key      string   `yaml:"key"`
		Title    string   `yaml:"title"`
		Content  string   `yaml:"content"`
		Author   string   `yaml:"author"`
		Category string   `yaml:"category"`
		Status   string   `yaml:"status"`
		Tags     []string `yaml:"tags"`
	} `yaml:"posts"`
	Comments []struct {
		Post    string `yaml:"post"`
		Author  string `yaml:"author"`
		Content string `yaml:"content"`
	} `yaml:"comments"`
	Likes []struct {
		User string `yaml:"user"`
		Post string `yaml:"post"`
	} `yaml:"likes"`
}

// LoadFixtures decodes the embedded fixtures.yml.
func LoadFixtures() (*Fixtures, error) {
	return parseFixtures(fixturesYAML)
}

func parseFixtures(raw []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	if err := f.validateRefs(); err != nil {
		return nil, err
	}
	return &f, nil
}

// validateRefs checks that every reference names a row defined in the file.
func (f *Fixtures) validateRefs() error {
	users := map[string]bool{}
	for _, u := range f.Users {
		users[u.Username] = true
	}
	categories := map[string]bool{}
	for _, c := range f.Categories {
		categories[c.Slug] = true
	}
	tags := map[string]bool{}
	for _, t := range f.Tags {
		tags[t.Slug] = true
	}
	posts := map[string]bool{}
	for _, p := range f.Posts {
		if !users[p.Author] {
			return fmt.Errorf("post %q: unknown author %q", p.Key, p.Author)
		}
		if p.Category != "" && !categories[p.Category] {
			return fmt.Errorf("post %q: unknown category %q", p.Key, p.Category)
		}
		for _, slug := range p.Tags {
			if !tags[slug] {
				return fmt.Errorf("post %q: unknown tag %q", p.Key, slug)
			}
		}
		posts[p.Key] = true
	}
	for _, c := range f.Comments {
		if !posts[c.Post] || !users[c.Author] {
			return fmt.Errorf("comment on %q by %q: unknown reference", c.Post, c.Author)
		}
	}
	for _, l := range f.Likes {
		if !posts[l.Post] || !users[l.User] {
			return fmt.Errorf("like of %q by %q: unknown reference", l.Post, l.User)
		}
	}
	return nil
}
