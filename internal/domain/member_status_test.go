package domain

import "testing"

func TestValidMemberStatus(t *testing.T) {
	for _, s := range MemberStatusValues() {
		if !ValidMemberStatus(s) {
			t.Fatalf("ValidMemberStatus(%q): expected true", s)
		}
	}
	for _, s := range []string{"", "Pending", "waitlisted", "APPROVED", "pending "} {
		if ValidMemberStatus(s) {
			t.Fatalf("ValidMemberStatus(%q): expected false", s)
		}
	}
}

func TestMemberStatusValues(t *testing.T) {
	vals := MemberStatusValues()
	if len(vals) != 9 {
		t.Fatalf("expected 9 statuses, got %d", len(vals))
	}
	if vals[0] != string(StatusPending) {
		t.Fatalf("expected pending first, got %q", vals[0])
	}
	seen := map[string]bool{}
	for _, v := range vals {
		if seen[v] {
			t.Fatalf("duplicate status %q", v)
		}
		seen[v] = true
	}
}
