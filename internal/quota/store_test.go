package quota

import (
	"testing"
	"time"
)

func TestCurrentPeriod(t *testing.T) {
	at := time.Date(2026, time.September, 14, 22, 5, 0, 0, time.UTC)
	if got := CurrentPeriod(at); got != "2026-09" {
		t.Errorf("expected 2026-09, got %q", got)
	}
}

func TestPeriodResetTime_YearRollover(t *testing.T) {
	at := time.Date(2026, time.December, 31, 23, 59, 0, 0, time.UTC)
	want := time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC)
	if got := PeriodResetTime(at); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestMemoryStore_CountAndIncrement(t *testing.T) {
	store := NewMemoryStore()

	if got := store.Count("2026-09", "1.2.3.4"); got != 0 {
		t.Errorf("fresh store should count 0, got %d", got)
	}
	if got := store.Increment("2026-09", "1.2.3.4"); got != 1 {
		t.Errorf("first increment should return 1, got %d", got)
	}
	if got := store.Increment("2026-09", "1.2.3.4"); got != 2 {
		t.Errorf("second increment should return 2, got %d", got)
	}

	// Other keys and other periods stay independent.
	if got := store.Count("2026-09", "5.6.7.8"); got != 0 {
		t.Errorf("other key should count 0, got %d", got)
	}
	if got := store.Count("2026-10", "1.2.3.4"); got != 0 {
		t.Errorf("other period should count 0, got %d", got)
	}
}

func TestMemoryStore_Prune(t *testing.T) {
	store := NewMemoryStore()
	store.Increment("2026-05", "a")
	store.Increment("2026-06", "a")
	store.Increment("2026-07", "a")

	store.Prune("2026-06")

	if got := store.Count("2026-05", "a"); got != 0 {
		t.Errorf("2026-05 should have been pruned, got %d", got)
	}
	if got := store.Count("2026-06", "a"); got != 1 {
		t.Errorf("2026-06 should survive, got %d", got)
	}
	if got := store.Count("2026-07", "a"); got != 1 {
		t.Errorf("2026-07 should survive, got %d", got)
	}
}

func TestMemoryMemberStore(t *testing.T) {
	store := NewMemoryMemberStore()

	if store.IsMember("1.2.3.4") {
		t.Error("fresh store should have no members")
	}
	store.Activate("1.2.3.4")
	if !store.IsMember("1.2.3.4") {
		t.Error("activated key should be a member")
	}
	if store.IsMember("5.6.7.8") {
		t.Error("other keys stay non-members")
	}
}
