// Package timeline composes multi-track video timelines through a fluent
// builder and projects them into serializable spec snapshots.
//
// Placement is dual-mode. Sequential calls (AddImage, AddVoice, ...)
// append at a per-group cursor so simple narratives need no arithmetic;
// explicit calls (AddImageAt, AddVoiceAt, ...) take literal start times
// and never move any cursor. Visual media placed sequentially define the
// story tail, pulling lagging overlay and audio cursors forward so a
// caption added after an image starts when that image starts showing.
//
// Tracks are allocated automatically. Each medium group keeps an ordered
// list of tracks; a clip lands on the first track that can host it
// without overlap, and a new layer is created when none can. OnTrack pins
// a clip to a named track, bypassing the allocator.
//
// Build validates the model (unless validation is disabled) and returns
// an immutable spec.Spec. Building is a pure projection: it can be
// repeated, and the builder stays usable afterwards.
package timeline
