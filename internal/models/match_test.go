package models

import (
	"testing"
	"time"
)

func testMatch() *Match {
	return &Match{
		ID:          "m1",
		Slug:        "alpha-vs-bravo",
		TeamAName:   "Alpha",
		TeamBName:   "Bravo",
		TeamAToken:  "token-a",
		TeamBToken:  "token-b",
		MapPool:     []string{"AWOKEN", "BLOOD RUN", "INSOMNIA"},
		Bans:        []Ban{},
		CurrentTurn: TeamA,
		State:       StateCreated,
	}
}

func TestPoolMapCaseInsensitive(t *testing.T) {
	m := testMatch()

	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{input: "awoken", want: "AWOKEN", ok: true},
		{input: "AWOKEN", want: "AWOKEN", ok: true},
		{input: "Blood Run", want: "BLOOD RUN", ok: true},
		{input: "nightmare", ok: false},
	}

	for _, tt := range tests {
		got, ok := m.PoolMap(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("PoolMap(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBannedCaseInsensitive(t *testing.T) {
	m := testMatch()
	m.Bans = []Ban{{Map: "AWOKEN", By: TeamA, At: time.Now()}}

	if !m.Banned("awoken") {
		t.Fatal("expected lowercase lookup to find the ban")
	}
	if m.Banned("INSOMNIA") {
		t.Fatal("INSOMNIA should not be banned")
	}
}

func TestRemainingPreservesPoolOrder(t *testing.T) {
	m := testMatch()
	m.Bans = []Ban{{Map: "BLOOD RUN", By: TeamA, At: time.Now()}}

	remaining := m.Remaining()
	want := []string{"AWOKEN", "INSOMNIA"}
	if len(remaining) != len(want) {
		t.Fatalf("expected %d remaining, got %d", len(want), len(remaining))
	}
	for i := range want {
		if remaining[i] != want[i] {
			t.Fatalf("remaining[%d] = %q, want %q", i, remaining[i], want[i])
		}
	}
}

func TestFinalMap(t *testing.T) {
	m := testMatch()
	if m.FinalMap() != "" {
		t.Fatalf("no final map expected with 3 remaining, got %q", m.FinalMap())
	}

	m.Bans = []Ban{
		{Map: "AWOKEN", By: TeamA},
		{Map: "BLOOD RUN", By: TeamB},
	}
	if got := m.FinalMap(); got != "INSOMNIA" {
		t.Fatalf("expected final map INSOMNIA, got %q", got)
	}
}

func TestTeamForToken(t *testing.T) {
	m := testMatch()

	if team, ok := m.TeamForToken("token-a"); !ok || team != TeamA {
		t.Fatalf("token-a resolved to (%q, %v)", team, ok)
	}
	if team, ok := m.TeamForToken("token-b"); !ok || team != TeamB {
		t.Fatalf("token-b resolved to (%q, %v)", team, ok)
	}
	if _, ok := m.TeamForToken("nope"); ok {
		t.Fatal("unknown token should not resolve")
	}
}

func TestStateValid(t *testing.T) {
	for _, s := range []State{StateCreated, StateInProgress, StateFinished} {
		if !s.Valid() {
			t.Fatalf("state %q should be valid", s)
		}
	}
	if State("paused").Valid() {
		t.Fatal("unknown state should be invalid")
	}
	if StateCreated.Terminal() || StateInProgress.Terminal() {
		t.Fatal("only finished is terminal")
	}
	if !StateFinished.Terminal() {
		t.Fatal("finished must be terminal")
	}
}

func TestOpponent(t *testing.T) {
	if Opponent(TeamA) != TeamB || Opponent(TeamB) != TeamA {
		t.Fatal("opponent mapping is wrong")
	}
}
