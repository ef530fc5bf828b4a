package repository

import (
	"strings"
	"testing"

	domrepo "AgriPulse/internal/domain/repository"
)

func TestBuildConditions(t *testing.T) {
	where, args := buildConditions(domrepo.PriceFilter{
		Commodity: "cotton",
		Market:    "Rajkot",
		States:    []string{"Gujarat", "Maharashtra"},
	})
	clause := strings.Join(where, " AND ")
	if !strings.Contains(clause, "positionCaseInsensitive(commodity, ?) > 0") {
		t.Fatalf("missing commodity substring clause: %s", clause)
	}
	if !strings.Contains(clause, "market = ?") {
		t.Fatalf("missing market clause: %s", clause)
	}
	if !strings.Contains(clause, "state IN (?,?)") {
		t.Fatalf("missing states IN clause: %s", clause)
	}
	if len(args) != 4 {
		t.Fatalf("args len = %d, want 4", len(args))
	}
}

func TestBuildConditionsEmpty(t *testing.T) {
	where, args := buildConditions(domrepo.PriceFilter{})
	if len(where) != 1 || where[0] != "1 = 1" {
		t.Fatalf("empty filter clause = %v", where)
	}
	if len(args) != 0 {
		t.Fatalf("args len = %d, want 0", len(args))
	}
}

func TestPlaceholders(t *testing.T) {
	if got := placeholders(1); got != "?" {
		t.Fatalf("placeholders(1) = %q", got)
	}
	if got := placeholders(3); got != "?,?,?" {
		t.Fatalf("placeholders(3) = %q", got)
	}
}
