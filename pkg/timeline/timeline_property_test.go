//go:build property
// +build property

package timeline

import (
	"math"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestAllocatorProperties checks the invariants of automatic track
// allocation under arbitrary explicit placements.
func TestAllocatorProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	type window struct {
		Start, Dur float64
	}

	genWindows := gen.SliceOfN(12, gen.Struct(reflect.TypeOf(window{}), map[string]gopter.Gen{
		"Start": gen.Float64Range(0, 100),
		"Dur":   gen.Float64Range(0.1, 20),
	}))

	// Property: no forbid track ever holds two overlapping clips,
	// however the inputs collide.
	properties.Property("forbid tracks stay conflict-free", prop.ForAll(
		func(windows []window) bool {
			b := NewBuilder()
			for _, w := range windows {
				b.AddImageAt("clip.png", w.Start, WithDuration(w.Dur))
			}
			if b.Err() != nil {
				return false
			}
			for _, tr := range b.Timeline().AllTracks() {
				for i := range tr.Clips {
					for j := i + 1; j < len(tr.Clips); j++ {
						if tr.Clips[i].Overlaps(tr.Clips[j]) {
							return false
						}
					}
				}
			}
			return true
		},
		genWindows,
	))

	// Property: N copies of the same window land on N distinct layers,
	// one clip each.
	properties.Property("simultaneous duplicates fan out one per layer", prop.ForAll(
		func(n int, start, dur float64) bool {
			b := NewBuilder()
			for i := 0; i < n; i++ {
				b.AddImageAt("clip.png", start, WithDuration(dur))
			}
			if b.Err() != nil {
				return false
			}
			tracks := b.Timeline().Tracks(GroupVideo)
			if len(tracks) != n {
				return false
			}
			for _, tr := range tracks {
				if len(tr.Clips) != 1 {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 8),
		gen.Float64Range(0, 50),
		gen.Float64Range(0.1, 10),
	))

	properties.TestingRun(t)
}

// TestSequentialProperties checks cursor behavior under arbitrary
// sequential durations.
func TestSequentialProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	genDurations := gen.SliceOfN(10, gen.Float64Range(0.1, 30))

	// Property: sequential visual clips are contiguous and the cursor
	// lands on the summed duration.
	properties.Property("sequential clips tile the story", prop.ForAll(
		func(durations []float64) bool {
			b := NewBuilder()
			sum := 0.0
			for _, d := range durations {
				b.AddImage("clip.png", WithDuration(d))
				sum += d
			}
			if b.Err() != nil {
				return false
			}
			if math.Abs(b.Cursor(GroupVideo)-sum) > 1e-6 {
				return false
			}
			clips := b.Timeline().Tracks(GroupVideo)[0].Clips
			prev := 0.0
			for _, c := range clips {
				if math.Abs(c.Start-prev) > 1e-6 {
					return false
				}
				prev = c.End()
			}
			return true
		},
		genDurations,
	))

	// Property: explicit placement never moves any cursor.
	properties.Property("explicit adds leave cursors untouched", prop.ForAll(
		func(start, dur float64) bool {
			b := NewBuilder().AddImage("base.png", WithDuration(5))
			before := make(map[Group]float64)
			for _, g := range Groups() {
				before[g] = b.Cursor(g)
			}
			b.AddVoiceAt("v.mp3", start, WithDuration(dur))
			if b.Err() != nil {
				return false
			}
			for _, g := range Groups() {
				if b.Cursor(g) != before[g] {
					return false
				}
			}
			return true
		},
		gen.Float64Range(0, 100),
		gen.Float64Range(0.1, 10),
	))

	properties.TestingRun(t)
}

// TestBuildProperties checks that building is a pure projection.
func TestBuildProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	genDurations := gen.SliceOfN(6, gen.Float64Range(0.5, 10))

	properties.Property("repeated builds are identical", prop.ForAll(
		func(durations []float64) bool {
			b := NewBuilder()
			for i, d := range durations {
				if i%2 == 0 {
					b.AddImage("clip.png", WithDuration(d))
				} else {
					b.AddVoice("voice.mp3", WithDuration(d))
				}
			}
			s1, err1 := b.Build()
			s2, err2 := b.Build()
			if err1 != nil || err2 != nil {
				return false
			}
			return reflect.DeepEqual(s1, s2)
		},
		genDurations,
	))

	properties.Property("spec round trip is lossless", prop.ForAll(
		func(durations []float64) bool {
			b := NewBuilder()
			for _, d := range durations {
				b.AddImage("clip.png", WithDuration(d))
			}
			s1, err := b.Build()
			if err != nil {
				return false
			}
			restored, err := FromSpec(s1)
			if err != nil {
				return false
			}
			s2, err := restored.Build()
			if err != nil {
				return false
			}
			return reflect.DeepEqual(s1, s2)
		},
		genDurations,
	))

	properties.TestingRun(t)
}
