package random_test

import (
	"testing"

	"kiosk/internal/platform/random"
)

func TestSeededIsReproducible(t *testing.T) {
	t.Parallel()
	a := random.NewSeeded(99)
	b := random.NewSeeded(99)
	for i := 0; i < 64; i++ {
		x, y := a.Intn(1000), b.Intn(1000)
		if x != y {
			t.Fatalf("draw %d diverged: %d != %d", i, x, y)
		}
	}
}

func TestDrawsStayInRange(t *testing.T) {
	t.Parallel()
	sources := map[string]random.Source{"system": random.System{}, "seeded": random.NewSeeded(1)}
	for name, src := range sources {
		for i := 0; i < 200; i++ {
			if v := src.Intn(3); v < 0 || v >= 3 {
				t.Fatalf("%s: draw %d out of range", name, v)
			}
		}
	}
}
