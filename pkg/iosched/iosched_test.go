package iosched

import "testing"

func drainOrder(t *testing.T, s Scheduler, head int) []int {
	t.Helper()
	var order []int
	for s.Len() > 0 {
		r, ok := s.Next(head)
		if !ok {
			t.Fatal("Next reported empty while Len() > 0")
		}
		order = append(order, r.Track)
	}
	return order
}

func TestFIFOOrder(t *testing.T) {
	s, err := New('n')
	if err != nil {
		t.Fatalf("New(n): %v", err)
	}
	for _, track := range []int{50, 10, 90, 20} {
		s.Add(Request{Track: track})
	}
	got := drainOrder(t, s, 0)
	want := []int{50, 10, 90, 20}
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSSTFOrder(t *testing.T) {
	s, err := New('s')
	if err != nil {
		t.Fatalf("New(s): %v", err)
	}
	for _, track := range []int{50, 10, 90, 20} {
		s.Add(Request{Track: track})
	}
	got := drainOrder(t, s, 0)
	want := []int{10, 20, 50, 90}
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestLOOKOrder(t *testing.T) {
	s, err := New('l')
	if err != nil {
		t.Fatalf("New(l): %v", err)
	}
	for _, track := range []int{80, 30, 60, 10} {
		s.Add(Request{Track: track})
	}
	got := drainOrder(t, s, 40)
	want := []int{60, 80, 30, 10}
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCLOOKOrder(t *testing.T) {
	s, err := New('c')
	if err != nil {
		t.Fatalf("New(c): %v", err)
	}
	for _, track := range []int{80, 30, 60, 10} {
		s.Add(Request{Track: track})
	}
	got := drainOrder(t, s, 40)
	want := []int{60, 80, 10, 30}
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestUnknownScheduler(t *testing.T) {
	if _, err := New('z'); err != ErrUnknownScheduler {
		t.Fatalf("got %v, want ErrUnknownScheduler", err)
	}
}

func equal(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
