package domain

import "time"

// Project is the portfolio presentation of a Repository
type Project struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	Technologies []string  `json:"technologies"`
	GitHub       string    `json:"github"`
	Demo         string    `json:"demo"`
	Highlights   []string  `json:"highlights"`
	Stars        int       `json:"stars"`
	Forks        int       `json:"forks"`
	Language     *string   `json:"language"`
	Topics       []string  `json:"topics"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProjectsResponse is the body of GET /api/github
type ProjectsResponse struct {
	Projects []Project `json:"projects"`
}
