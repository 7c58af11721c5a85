package service

import (
	"fmt"
	"sort"
	"strings"

	"portfolio-api/internal/domain"
)

const (
	FallbackDescription = "No description available"
	FallbackTechnology  = "Other"
	FallbackHighlight   = "Open source project"
	maxHighlightTopics  = 3
)

// NewProject derives the presentation fields of repo
func NewProject(repo domain.Repository, description string, technologies []string) domain.Project {
	demo := repo.HTMLURL
	if repo.Homepage != nil && *repo.Homepage != "" {
		demo = *repo.Homepage
	}

	topics := repo.Topics
	if topics == nil {
		topics = []string{}
	}

	return domain.Project{
		Title:        FormatTitle(repo.Name),
		Description:  description,
		Image:        ImageURL(repo.FullName),
		Technologies: technologies,
		GitHub:       repo.HTMLURL,
		Demo:         demo,
		Highlights:   BuildHighlights(repo),
		Stars:        repo.StargazersCount,
		Forks:        repo.ForksCount,
		Language:     repo.Language,
		Topics:       topics,
		CreatedAt:    repo.CreatedAt,
		UpdatedAt:    repo.UpdatedAt,
	}
}

// FormatTitle turns "my-cool-app" into "My Cool App". Letters are upper-cased
// at the start of every run of [A-Za-z0-9_].
func FormatTitle(name string) string {
	b := []byte(strings.ReplaceAll(name, "-", " "))
	for i, c := range b {
		if c < 'a' || c > 'z' {
			continue
		}
		if i == 0 || !isWordChar(b[i-1]) {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

func isWordChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// ImageURL returns the social preview image of a repository
func ImageURL(fullName string) string {
	return "https://opengraph.githubassets.com/1/" + fullName
}

// BuildHighlights lists star, fork, pages and topic facts in that order
func BuildHighlights(repo domain.Repository) []string {
	var highlights []string

	if repo.StargazersCount > 0 {
		highlights = append(highlights, fmt.Sprintf("%d GitHub %s", repo.StargazersCount, pluralize(repo.StargazersCount, "star")))
	}
	if repo.ForksCount > 0 {
		highlights = append(highlights, fmt.Sprintf("%d %s", repo.ForksCount, pluralize(repo.ForksCount, "fork")))
	}
	if repo.HasPages && repo.Homepage != nil && *repo.Homepage != "" {
		highlights = append(highlights, "GitHub Pages deployed")
	}
	if len(repo.Topics) > 0 {
		topics := repo.Topics
		if len(topics) > maxHighlightTopics {
			topics = topics[:maxHighlightTopics]
		}
		highlights = append(highlights, "Topics: "+strings.Join(topics, ", "))
	}

	if len(highlights) == 0 {
		return []string{FallbackHighlight}
	}
	return highlights
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}

// SortedLanguages returns language names by byte count, largest first
func SortedLanguages(languages domain.LanguageStats) []string {
	names := make([]string, 0, len(languages))
	for name := range languages {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		if languages[names[i]] != languages[names[j]] {
			return languages[names[i]] > languages[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
