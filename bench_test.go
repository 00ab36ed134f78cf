package elastichash

import "testing"

func BenchmarkPut(b *testing.B) {
	N := 10000
	delta := 0.1
	tb, err := New[int, int](N, delta)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if tb.Len() >= tb.Capacity() {
			b.StopTimer()
			tb, err = New[int, int](N, delta)
			if err != nil {
				b.Fatal(err)
			}
			b.StartTimer()
		}
		if _, _, err := tb.Put(i, i); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGet(b *testing.B) {
	N := 10000
	delta := 0.1
	tb, err := New[int, int](N, delta)
	if err != nil {
		b.Fatal(err)
	}

	targetSize := tb.Capacity() / 2
	for i := 0; i < targetSize; i++ {
		if _, _, err := tb.Put(i, i); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := i % (targetSize * 2)
		if _, _, err := tb.Get(key); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRemove(b *testing.B) {
	N := 10000
	delta := 0.1

	b.StopTimer()
	tb, err := New[int, int](N, delta)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < N/2; i++ {
		if _, _, err := tb.Put(i, i); err != nil {
			b.Fatal(err)
		}
	}
	b.StartTimer()

	for i := 0; i < b.N; i++ {
		key := i % (N / 2)
		if _, _, err := tb.Remove(key); err != nil {
			b.Fatal(err)
		}
		b.StopTimer()
		if _, _, err := tb.Put(key, key); err != nil {
			b.Fatal(err)
		}
		b.StartTimer()
	}
}

func BenchmarkResize(b *testing.B) {
	N := 4096
	delta := 0.125

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		tb, err := New[int, int](N, delta)
		if err != nil {
			b.Fatal(err)
		}
		for k := 0; k < N/2; k++ {
			if _, _, err := tb.Put(k, k); err != nil {
				b.Fatal(err)
			}
		}
		b.StartTimer()

		if err := tb.Resize(2 * tb.Capacity()); err != nil {
			b.Fatal(err)
		}
	}
}
