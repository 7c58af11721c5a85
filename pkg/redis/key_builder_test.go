package redis

import (
	"testing"
)

func TestKeyBuilder_Environment_Prefixes(t *testing.T) {
	tests := []struct {
		name           string
		environment    string
		expectedPrefix string
	}{
		{
			name:           "Production environment should use prod prefix",
			environment:    "production",
			expectedPrefix: "prod",
		},
		{
			name:           "Development environment should use staging prefix",
			environment:    "development",
			expectedPrefix: "staging",
		},
		{
			name:           "Staging environment should use staging prefix",
			environment:    "staging",
			expectedPrefix: "staging",
		},
		{
			name:           "Unknown environment should default to prod prefix",
			environment:    "unknown",
			expectedPrefix: "prod",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := NewKeyBuilder(tt.environment)
			if kb.GetPrefix() != tt.expectedPrefix {
				t.Errorf("NewKeyBuilder(%s).GetPrefix() = %s, want %s",
					tt.environment, kb.GetPrefix(), tt.expectedPrefix)
			}
		})
	}
}

func TestKeyBuilder_KeyProjects(t *testing.T) {
	tests := []struct {
		environment string
		username    string
		expected    string
	}{
		{"production", "octocat", "prod:github:projects:octocat"},
		{"production", "OctoCat", "prod:github:projects:octocat"},
		{"development", "torvalds", "staging:github:projects:torvalds"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			kb := NewKeyBuilder(tt.environment)
			if got := kb.KeyProjects(tt.username); got != tt.expected {
				t.Errorf("KeyProjects(%s) = %s, want %s", tt.username, got, tt.expected)
			}
		})
	}
}
