package votes

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Direction
		ok   bool
	}{
		{"up", Up, true},
		{"down", Down, true},
		{"", None, false},
		{"sideways", None, false},
		{"UP", None, false},
	}
	for _, c := range cases {
		got, ok := Parse(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("Parse(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestNextToggleAndSwitch(t *testing.T) {
	cases := []struct {
		prev, requested, want Direction
	}{
		{None, Up, Up},
		{None, Down, Down},
		{Up, Up, None},
		{Down, Down, None},
		{Up, Down, Down},
		{Down, Up, Up},
	}
	for _, c := range cases {
		if got := Next(c.prev, c.requested); got != c.want {
			t.Fatalf("Next(%q, %q) = %q, want %q", c.prev, c.requested, got, c.want)
		}
	}
}

func TestAdjustCountsTransitionTable(t *testing.T) {
	cases := []struct {
		name                     string
		prev, next               Direction
		support, dispute         int
		wantSupport, wantDispute int
	}{
		{"fresh up", None, Up, 0, 0, 1, 0},
		{"fresh down", None, Down, 0, 0, 0, 1},
		{"retract up", Up, None, 1, 0, 0, 0},
		{"retract down", Down, None, 0, 1, 0, 0},
		{"switch up to down", Up, Down, 1, 0, 0, 1},
		{"switch down to up", Down, Up, 0, 1, 1, 0},
		{"no change", None, None, 3, 2, 3, 2},
	}
	for _, c := range cases {
		s, d := AdjustCounts(c.prev, c.next, c.support, c.dispute)
		if s != c.wantSupport || d != c.wantDispute {
			t.Fatalf("%s: AdjustCounts = (%d, %d), want (%d, %d)", c.name, s, d, c.wantSupport, c.wantDispute)
		}
	}
}

// Applying the same direction twice returns the entry to its original counts.
func TestToggleLaw(t *testing.T) {
	support, dispute := 0, 0
	state := None

	next := Next(state, Up)
	support, dispute = AdjustCounts(state, next, support, dispute)
	state = next
	if support != 1 || dispute != 0 || state != Up {
		t.Fatalf("after first up: (%d, %d, %q)", support, dispute, state)
	}

	next = Next(state, Up)
	support, dispute = AdjustCounts(state, next, support, dispute)
	state = next
	if support != 0 || dispute != 0 || state != None {
		t.Fatalf("after second up: (%d, %d, %q)", support, dispute, state)
	}
}

// Switching moves exactly one unit; none is lost or duplicated.
func TestSwitchLaw(t *testing.T) {
	support, dispute := 1, 0
	state := Up

	next := Next(state, Down)
	support, dispute = AdjustCounts(state, next, support, dispute)
	if next != Down || support != 0 || dispute != 1 {
		t.Fatalf("switch up->down: (%d, %d, %q)", support, dispute, next)
	}
}

// fakeEntry replays the same sequence the repository runs inside its
// transaction: read the voter's previous direction, compute the next state,
// adjust the counters, store the new direction.
type fakeEntry struct {
	support, dispute int
	userVotes        map[string]Direction
}

func (e *fakeEntry) vote(userID string, requested Direction) {
	prev := e.userVotes[userID]
	next := Next(prev, requested)
	e.support, e.dispute = AdjustCounts(prev, next, e.support, e.dispute)
	if next == None {
		delete(e.userVotes, userID)
	} else {
		e.userVotes[userID] = next
	}
}

// Two voters interleaving votes, retractions and switches converge on counts
// that match the per-voter directions.
func TestTwoVotersInterleaved(t *testing.T) {
	entry := &fakeEntry{userVotes: map[string]Direction{}}

	entry.vote("alice", Up)
	entry.vote("bob", Down)
	entry.vote("bob", Up)   // switch
	entry.vote("alice", Up) // retract
	entry.vote("alice", Up) // vote again

	if entry.support != 2 || entry.dispute != 0 {
		t.Fatalf("counts = (%d, %d), want (2, 0)", entry.support, entry.dispute)
	}
	if entry.userVotes["alice"] != Up || entry.userVotes["bob"] != Up {
		t.Fatalf("userVotes = %v, want both up", entry.userVotes)
	}
}

// Counters already at zero never go negative, even from drifted state.
func TestCountsFloorAtZero(t *testing.T) {
	s, d := AdjustCounts(Up, None, 0, 0)
	if s != 0 || d != 0 {
		t.Fatalf("retract from zero: (%d, %d)", s, d)
	}
	s, d = AdjustCounts(Down, Up, 0, 0)
	if s != 1 || d != 0 {
		t.Fatalf("switch from drifted zero: (%d, %d)", s, d)
	}
}
