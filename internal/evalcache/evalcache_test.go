package evalcache

import (
	"sync"
	"testing"
)

func intp(v int) *int { return &v }

func TestCache_PutGet(t *testing.T) {
	c := New()

	if !c.Put("fp1", Record{Score: intp(35), BestMove: "e2e4"}) {
		t.Error("first Put() = false, want true")
	}

	r, ok := c.Get("fp1")
	if !ok {
		t.Fatal("Get() ok = false after Put")
	}
	if *r.Score != 35 || r.BestMove != "e2e4" {
		t.Errorf("Get() = %+v, want score 35 and e2e4", r)
	}
}

func TestCache_WriteOnce(t *testing.T) {
	c := New()

	c.Put("fp1", Record{Score: intp(35)})
	if c.Put("fp1", Record{Score: intp(-100)}) {
		t.Error("second Put() = true, want false")
	}

	r, _ := c.Get("fp1")
	if *r.Score != 35 {
		t.Errorf("Get() score = %d, first write must win", *r.Score)
	}
}

func TestCache_MissingKey(t *testing.T) {
	c := New()

	r, ok := c.Get("absent")
	if ok {
		t.Error("Get() ok = true for a missing key")
	}
	if r.Available() {
		t.Error("zero Record reports Available()")
	}
}

func TestRecord_Available(t *testing.T) {
	if (Record{}).Available() {
		t.Error("empty record reports Available()")
	}
	if !(Record{Score: intp(0)}).Available() {
		t.Error("record with a zero score should be available")
	}
}

func TestCache_ConcurrentPut(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			c.Put("shared", Record{Score: intp(v)})
		}(i)
	}
	wg.Wait()

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if r, ok := c.Get("shared"); !ok || r.Score == nil {
		t.Error("Get() lost the winning write")
	}
}
