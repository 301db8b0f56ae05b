package param

import (
	"errors"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(
		New("size", "Room size", 0.5, LinearRange(0, 1), WithSmoothing(LinearSmoothing(1))),
		New("pre_delay", "Pre delay", 0, IntRange(0, 100), WithUnit(" ms"), NonAutomatable()),
	)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestStoreLookup(t *testing.T) {
	s := testStore(t)
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
	if p, ok := s.Get("pre_delay"); !ok || p.Unit() != " ms" {
		t.Fatalf("Get(pre_delay) = %v, %v", p, ok)
	}
	if _, ok := s.Get("missing"); ok {
		t.Fatal("Get(missing) succeeded")
	}
	if s.Params()[0].ID() != "size" {
		t.Fatal("registration order not kept")
	}
}

func TestStoreDuplicateID(t *testing.T) {
	_, err := NewStore(New("a", "A", 0, LinearRange(0, 1)), New("a", "A2", 0, LinearRange(0, 1)))
	if !errors.Is(err, ErrDuplicateParam) {
		t.Fatalf("err = %v, want ErrDuplicateParam", err)
	}
}

func TestStoreSetters(t *testing.T) {
	s := testStore(t)
	if err := s.SetPlain("pre_delay", 30); err != nil {
		t.Fatalf("SetPlain: %v", err)
	}
	if err := s.SetString("size", "0.25"); err != nil {
		t.Fatalf("SetString: %v", err)
	}
	if err := s.SetNormalized("nope", 1); !errors.Is(err, ErrUnknownParam) {
		t.Fatalf("err = %v, want ErrUnknownParam", err)
	}
	if err := s.SetPlain("nope", 1); !errors.Is(err, ErrUnknownParam) {
		t.Fatalf("err = %v, want ErrUnknownParam", err)
	}
	if err := s.SetString("nope", "1"); !errors.Is(err, ErrUnknownParam) {
		t.Fatalf("err = %v, want ErrUnknownParam", err)
	}

	s.SetSampleRate(10000)
	s.Advance(5)

	pre, _ := s.Get("pre_delay")
	size, _ := s.Get("size")
	if pre.Value() != 30 {
		t.Fatalf("pre_delay = %v, want 30", pre.Value())
	}
	if !size.IsSmoothing() {
		t.Fatal("size should still be smoothing after half the window")
	}

	s.Reset()
	if size.Value() != 0.25 || size.IsSmoothing() {
		t.Fatalf("size after reset = %v", size.Value())
	}
	if err := s.SetNormalized("size", 1); err != nil {
		t.Fatalf("SetNormalized: %v", err)
	}
}
