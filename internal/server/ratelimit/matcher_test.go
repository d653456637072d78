package ratelimit

import (
	"testing"
	"time"
)

func TestMatchEndpoint_Exact(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/sessions", Method: "POST", Limit: 30, Window: time.Minute},
	}

	match := MatchEndpoint("/sessions", "POST", configs)
	if match == nil || match.Limit != 30 {
		t.Errorf("Expected exact match with limit 30, got %+v", match)
	}

	if MatchEndpoint("/sessions", "GET", configs) != nil {
		t.Error("Expected no match for different method")
	}
}

func TestMatchEndpoint_Suffix(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "*/rewrite", Method: "POST", Limit: 30, Window: time.Hour},
		{Path: "*/skills/suggest", Method: "POST", Limit: 30, Window: time.Hour},
	}

	match := MatchEndpoint("/sessions/abc/profile/rewrite", "POST", configs)
	if match == nil || match.Path != "*/rewrite" {
		t.Errorf("Expected suffix match for profile rewrite, got %+v", match)
	}

	match = MatchEndpoint("/sessions/abc/experience/def/rewrite", "POST", configs)
	if match == nil || match.Path != "*/rewrite" {
		t.Errorf("Expected suffix match for experience rewrite, got %+v", match)
	}

	match = MatchEndpoint("/sessions/abc/skills/suggest", "POST", configs)
	if match == nil || match.Path != "*/skills/suggest" {
		t.Errorf("Expected suffix match for skill suggestions, got %+v", match)
	}

	if MatchEndpoint("/sessions/abc/skills", "POST", configs) != nil {
		t.Error("Expected no match for plain skills endpoint")
	}
}

func TestMatchEndpoint_Prefix(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/sessions/", Method: "DELETE", Limit: 100, Window: time.Minute},
	}

	match := MatchEndpoint("/sessions/abc", "DELETE", configs)
	if match == nil || match.Limit != 100 {
		t.Errorf("Expected prefix match with limit 100, got %+v", match)
	}
}

func TestMatchEndpoint_HealthUnlimited(t *testing.T) {
	match := MatchEndpoint("/health", "GET", DefaultEndpointConfigs())
	if match == nil || match.Limit != 0 {
		t.Errorf("Expected unlimited health check, got %+v", match)
	}
}

func TestDefaultEndpointConfigs_CoverAICalls(t *testing.T) {
	configs := DefaultEndpointConfigs()

	for _, path := range []string{
		"/sessions/abc/profile/rewrite",
		"/sessions/abc/experience/def/rewrite",
		"/sessions/abc/skills/suggest",
		"/sessions/abc/export",
	} {
		match := MatchEndpoint(path, "POST", configs)
		if match == nil {
			t.Errorf("Expected a rate limit tier for %s", path)
			continue
		}
		if match.Window != time.Hour {
			t.Errorf("Expected hourly window for %s, got %v", path, match.Window)
		}
	}
}
