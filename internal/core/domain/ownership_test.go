package domain

import (
	"errors"
	"testing"
)

func TestCheckOwnership(t *testing.T) {
	bootcamp := &Bootcamp{ID: "b1", User: "alice"}
	course := &Course{ID: "c1", User: "alice"}
	orphan := &Review{ID: "r1"}

	tests := []struct {
		name     string
		resource Owned
		who      Identity
		want     Decision
	}{
		{"owner publisher", bootcamp, Identity{ID: "alice", Role: RolePublisher}, Allow},
		{"owner user", course, Identity{ID: "alice", Role: RoleUser}, Allow},
		{"stranger publisher", bootcamp, Identity{ID: "carol", Role: RolePublisher}, Deny},
		{"stranger user", course, Identity{ID: "carol", Role: RoleUser}, Deny},
		{"admin on foreign resource", bootcamp, Identity{ID: "root", Role: RoleAdmin}, Allow},
		{"admin on orphan", orphan, Identity{ID: "root", Role: RoleAdmin}, Allow},
		{"empty owner never matches empty id", orphan, Identity{Role: RoleUser}, Deny},
		{"nil resource", (*Course)(nil), Identity{ID: "alice", Role: RoleUser}, Deny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckOwnership(tt.resource, tt.who); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDecision_Err(t *testing.T) {
	if err := Allow.Err(); err != nil {
		t.Fatalf("allow must not error, got %v", err)
	}
	if err := Deny.Err(); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if Allow.String() != "allow" || Deny.String() != "deny" {
		t.Fatalf("unexpected names %q %q", Allow.String(), Deny.String())
	}
}

func TestIdentity_OwnerScope(t *testing.T) {
	if got := (Identity{ID: "root", Role: RoleAdmin}).OwnerScope(); got != "" {
		t.Fatalf("admin scope should be empty, got %q", got)
	}
	if got := (Identity{ID: "alice", Role: RolePublisher}).OwnerScope(); got != "alice" {
		t.Fatalf("expected alice, got %q", got)
	}
}
