package ring

import "testing"

func newTestBuffer(t *testing.T, size, block int) *Buffer {
	t.Helper()

	b, err := New(size, block)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", size, block, err)
	}

	for i := range b.data {
		b.data[i] = int16(i)
	}

	return b
}

func TestNewValidation(t *testing.T) {
	if _, err := New(0, 4); err != ErrBadSize {
		t.Errorf("New(0, 4) err = %v, want ErrBadSize", err)
	}

	if _, err := New(16, 0); err != ErrBadBlock {
		t.Errorf("New(16, 0) err = %v, want ErrBadBlock", err)
	}

	if _, err := New(16, 4); err != nil {
		t.Errorf("New(16, 4) err = %v", err)
	}
}

func TestExtractInvalidBuffer(t *testing.T) {
	var b *Buffer

	if _, err := b.Extract(Window{End: 4, Block: 4}); err != ErrInvalidBuffer {
		t.Errorf("nil buffer err = %v, want ErrInvalidBuffer", err)
	}
}

func TestExtractEmptyRange(t *testing.T) {
	b := newTestBuffer(t, 16, 4)

	// threshold = min(15, End); End <= Start means nothing in range
	for _, w := range []Window{
		{Start: 8, End: 8, Block: 4},
		{Start: 8, End: 3, Block: 4},
		{Start: 15, End: 200, Block: 4},
	} {
		res, err := b.Extract(w)
		if err != nil {
			t.Fatalf("Extract(%+v): %v", w, err)
		}

		if res.OK || res.Count != 0 || len(res.Samples) != 0 {
			t.Errorf("Extract(%+v) = %+v, want empty not-OK result", w, res)
		}
	}
}

func TestExtractLinear(t *testing.T) {
	b := newTestBuffer(t, 16, 4)

	res, err := b.Extract(Window{Start: 2, End: 10, Block: 4})
	if err != nil {
		t.Fatal(err)
	}

	if !res.OK || res.Count != 4 {
		t.Fatalf("got %+v, want 4 samples", res)
	}

	for i, want := range []int16{2, 3, 4, 5} {
		if res.Samples[i] != want {
			t.Errorf("sample %d = %d, want %d", i, res.Samples[i], want)
		}
	}
}

func TestExtractWrapped(t *testing.T) {
	b := newTestBuffer(t, 16, 8)

	// window runs past the end of the store; End >= size signals the wrap
	res, err := b.Extract(Window{Start: 12, End: 20, Block: 8})
	if err != nil {
		t.Fatal(err)
	}

	if res.Count != 8 {
		t.Fatalf("count = %d, want 8", res.Count)
	}

	// threshold = 15: offsets 12..14 read directly, 15.. wrap
	want := []int16{12, 13, 14, 15, 0, 1, 2, 3}
	for i := range want {
		if res.Samples[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, res.Samples[i], want[i])
		}
	}
}

func TestExtractOffsetSlides(t *testing.T) {
	b := newTestBuffer(t, 16, 4)

	// Offset moves the read cursor but not the wrap threshold
	res, err := b.Extract(Window{Start: 4, End: 20, Block: 4, Offset: 10})
	if err != nil {
		t.Fatal(err)
	}

	// start = 14, threshold = 15: first read direct, rest wrapped
	want := []int16{14, 15, 0, 1}
	for i := range want {
		if res.Samples[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, res.Samples[i], want[i])
		}
	}
}

func TestExtractBlockBudget(t *testing.T) {
	b := newTestBuffer(t, 16, 4)

	res, err := b.Extract(Window{Start: 0, End: 16, Block: 64})
	if err != nil {
		t.Fatal(err)
	}

	if res.Count != 64 || len(res.Samples) != 64 {
		t.Fatalf("count = %d, want the full requested block", res.Count)
	}

	// everything past the threshold keeps wrapping modulo size
	for i, s := range res.Samples {
		want := b.data[i%16]
		if i < 15 {
			want = b.data[i]
		}

		if s != want {
			t.Errorf("sample %d = %d, want %d", i, s, want)
		}
	}

	// zero block falls back to the buffer's own
	res, err = b.Extract(Window{Start: 0, End: 16})
	if err != nil {
		t.Fatal(err)
	}

	if res.Count != b.Block() {
		t.Errorf("count = %d, want default block %d", res.Count, b.Block())
	}
}

func TestPushTail(t *testing.T) {
	b, err := New(8, 4)
	if err != nil {
		t.Fatal(err)
	}

	b.Push([]int16{10, 20, 30, 40, 50, 60})

	res, err := b.Extract(b.Tail(4))
	if err != nil {
		t.Fatal(err)
	}

	for i, want := range []int16{30, 40, 50, 60} {
		if res.Samples[i] != want {
			t.Errorf("tail sample %d = %d, want %d", i, res.Samples[i], want)
		}
	}

	// push over the wrap point and read the window spanning it
	b.Push([]int16{70, 80, 90, 100})

	res, err = b.Extract(b.Tail(4))
	if err != nil {
		t.Fatal(err)
	}

	for i, want := range []int16{70, 80, 90, 100} {
		if res.Samples[i] != want {
			t.Errorf("wrapped tail sample %d = %d, want %d", i, res.Samples[i], want)
		}
	}

	if b.Head() != 2 {
		t.Errorf("head = %d, want 2", b.Head())
	}
}

func BenchmarkExtract(b *testing.B) {
	buf, err := New(8192, 1024)
	if err != nil {
		b.Fatal(err)
	}

	w := Window{Start: 7000, End: 8192, Block: 1024}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := buf.Extract(w); err != nil {
			b.Fatal(err)
		}
	}
}
