package timeline_test

import (
	"fmt"

	"github.com/reelkit/reelkit/pkg/timeline"
)

func ExampleBuilder_sequential() {
	// A simple narrated slideshow: clips chain automatically.
	b := timeline.NewBuilder().
		AddImage("intro.png", timeline.WithDuration(10)).
		AddText("Hello World", timeline.WithDuration(3))

	tl := b.Timeline()
	caption := tl.Tracks(timeline.GroupText)[0].Clips[0]
	fmt.Println("Caption starts at:", caption.Start)
	fmt.Println("Total duration:", tl.TotalDuration())
	// Output:
	// Caption starts at: 10
	// Total duration: 13
}

func ExampleBuilder_layers() {
	// Overlapping visuals fan out onto layers automatically.
	b := timeline.NewBuilder().
		AddImageAt("background.png", 0, timeline.WithDuration(10)).
		AddImageAt("sticker.png", 2, timeline.WithDuration(4))

	for _, tr := range b.Timeline().Tracks(timeline.GroupVideo) {
		fmt.Printf("%s z=%d clips=%d\n", tr.Name, tr.Z, len(tr.Clips))
	}
	// Output:
	// video_0 z=0 clips=1
	// video_1 z=1 clips=1
}

func ExampleBuilder_Build() {
	s, err := timeline.NewBuilder().
		AddImage("a.png", timeline.WithDuration(5)).
		AddTransition("fade", 1).
		Build()
	if err != nil {
		fmt.Println("build failed:", err)
		return
	}
	fmt.Println("Version:", s.Version)
	fmt.Println("Clips:", s.ClipCount())
	fmt.Println("Transitions:", len(s.Transitions))
	// Output:
	// Version: 1.0
	// Clips: 1
	// Transitions: 1
}
