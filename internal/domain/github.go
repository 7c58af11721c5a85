package domain

import "time"

// Repository is a repository as returned by the source-hosting API.
type Repository struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Description     *string   `json:"description"`
	HTMLURL         string    `json:"html_url"`
	Homepage        *string   `json:"homepage"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	Topics          []string  `json:"topics"`
	Language        *string   `json:"language"`
	HasPages        bool      `json:"has_pages"`
	Fork            bool      `json:"fork"`
	Private         bool      `json:"private"`
	Archived        bool      `json:"archived"`
	Disabled        bool      `json:"disabled"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsShowcase reports whether the repository is original, public and active.
func (r *Repository) IsShowcase() bool {
	return !r.Fork && !r.Private && !r.Archived && !r.Disabled
}

// LanguageStats maps a language name to the number of bytes written in it.
type LanguageStats map[string]int64
