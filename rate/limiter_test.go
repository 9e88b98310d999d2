package rate

import (
	"testing"
	"time"
)

func TestLimiter(t *testing.T) {
	burst := 1

	interval := 10 * time.Millisecond
	lim := Every(interval)
	r := NewLimiter(burst, time.Hour, lim)

	tooshort := 1 * time.Millisecond

	client := "203.0.113.7"
	expected := []bool{true, false, true, true, false, false}
	waits := []time.Duration{tooshort, interval, interval, tooshort, tooshort, tooshort}
	for i, exp := range expected {
		if got := r.Check(client); got != exp {
			t.Fatalf("iteration %d: expected %v, but got %v", i, exp, got)
		}
		time.Sleep(waits[i])
	}
}

func TestLimiterWithBurst(t *testing.T) {
	client := "203.0.113.7"
	burst := 10

	interval := 100 * time.Millisecond
	lim := Every(interval)

	tooshort := 10 * time.Millisecond

	shortest := 1 * time.Millisecond

	expected := []bool{true, true, true, true, true, true, true, true, true, true}
	waits := []time.Duration{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}

	expected = append(expected, false, true, true, false, false, false)
	waits = append(waits, interval, interval, tooshort, tooshort, shortest, shortest)

	rr := NewLimiter(burst, time.Hour, lim)
	for i, exp := range expected {
		if got := rr.Check(client); got != exp {
			t.Fatalf("iteration %d: expected %v, but got %v", i, exp, got)
		}
		time.Sleep(waits[i])
	}
}

func TestLimiterTracksClientsSeparately(t *testing.T) {
	lim := Every(time.Minute)
	r := NewLimiter(1, time.Hour, lim)

	if got := r.Check("198.51.100.1"); !got {
		t.Fatal("first client should be allowed")
	}
	if got := r.Check("198.51.100.2"); !got {
		t.Fatal("second client should have its own bucket")
	}
	if got := r.Check("198.51.100.1"); got {
		t.Fatal("first client should be throttled on the second hit")
	}
}
