package domain

import "testing"

func TestValidInteractionAction(t *testing.T) {
	for _, a := range InteractionActionValues() {
		if !ValidInteractionAction(a) {
			t.Fatalf("ValidInteractionAction(%q): expected true", a)
		}
	}
	for _, a := range []string{"", "call", "Follow_Up_Call", "custom "} {
		if ValidInteractionAction(a) {
			t.Fatalf("ValidInteractionAction(%q): expected false", a)
		}
	}
}

func TestInteractionActionLabel(t *testing.T) {
	cases := map[InteractionAction]string{
		ActionFollowUpCall: "Follow Up Call",
		ActionCheckIn:      "Check In",
		ActionCustom:       "Custom",
	}
	for action, want := range cases {
		if got := action.Label(); got != want {
			t.Fatalf("Label(%q): got %q, want %q", action, got, want)
		}
	}
}
