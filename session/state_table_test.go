package session

import (
	"testing"

	"github.com/tlsext/engine/catalog"
)

func TestSetLiveThenGetLive(t *testing.T) {
	st := NewStateTable(4)
	if err := st.SetLive(1, "hello", nil); err != nil {
		t.Fatal(err)
	}
	v, ok := st.GetLive(1)
	if !ok || v != "hello" {
		t.Fatalf("expected hello, got %v %v", v, ok)
	}
}

func TestSetLiveDeinitsPriorValue(t *testing.T) {
	st := NewStateTable(4)
	var deinited []interface{}
	deinit := func(v interface{}) { deinited = append(deinited, v) }

	if err := st.SetLive(1, "first", deinit); err != nil {
		t.Fatal(err)
	}
	if err := st.SetLive(1, "second", deinit); err != nil {
		t.Fatal(err)
	}
	if len(deinited) != 1 || deinited[0] != "first" {
		t.Fatalf("expected first value deinited once, got %v", deinited)
	}
	v, _ := st.GetLive(1)
	if v != "second" {
		t.Fatalf("expected second, got %v", v)
	}
}

func TestLiveAndResumedCoexistForSameID(t *testing.T) {
	st := NewStateTable(4)
	if err := st.SetLive(7, "live", nil); err != nil {
		t.Fatal(err)
	}
	if err := st.SetResumed(7, "resumed", nil); err != nil {
		t.Fatal(err)
	}
	lv, ok := st.GetLive(7)
	if !ok || lv != "live" {
		t.Fatalf("expected live value, got %v %v", lv, ok)
	}
	rv, ok := st.GetResumed(7)
	if !ok || rv != "resumed" {
		t.Fatalf("expected resumed value, got %v %v", rv, ok)
	}
}

func TestStateTableFullReturnsInternalError(t *testing.T) {
	st := NewStateTable(1)
	if err := st.SetLive(1, "a", nil); err != nil {
		t.Fatal(err)
	}
	if err := st.SetLive(2, "b", nil); err != ErrInternalError {
		t.Fatalf("expected ErrInternalError, got %v", err)
	}
}

func TestUnsetLiveInvokesDeinit(t *testing.T) {
	st := NewStateTable(4)
	var got interface{}
	if err := st.SetLive(3, "x", nil); err != nil {
		t.Fatal(err)
	}
	st.UnsetLive(3, func(v interface{}) { got = v })
	if got != "x" {
		t.Fatalf("expected deinit called with x, got %v", got)
	}
	if _, ok := st.GetLive(3); ok {
		t.Fatal("expected live slot cleared")
	}
}

func TestFreeAllDeinitsEveryPopulatedSlot(t *testing.T) {
	st := NewStateTable(4)
	st.SetLive(1, "a", nil)
	st.SetResumed(1, "a-resumed", nil)
	st.SetLive(2, "b", nil)

	var got []interface{}
	st.FreeAll(func(id catalog.InternalID) func(interface{}) {
		return func(v interface{}) { got = append(got, v) }
	})
	if len(got) != 3 {
		t.Fatalf("expected 3 deinit calls, got %d: %v", len(got), got)
	}
	if _, ok := st.GetLive(1); ok {
		t.Fatal("expected slots cleared after FreeAll")
	}
}
