// Package pkg provides the core libraries for Reelkit timeline composition.
//
// # Overview
//
// Reelkit turns a fluent sequence of clip placements into an immutable,
// serializable timeline spec that renderers and AI agents can consume.
// The pkg directory is organized into four main areas:
//
//  1. [timeline] - The composition engine (placement, track allocation, build)
//  2. [spec] - The frozen output format with JSON and YAML codecs
//  3. [registry] - The effect, transition, and animation catalog with plugin discovery
//  4. [store], [cache], [config], [diagram] - Infrastructure around compositions
//
// # Architecture
//
// The typical data flow through Reelkit:
//
//	Fluent builder calls (AddVideo, AddText, ...)
//	         ↓
//	    [timeline] package (timing resolution + track allocation)
//	         ↓
//	    [spec] package (immutable snapshot, JSON/YAML)
//	         ↓
//	    [store] / [diagram] / HTTP API consumers
//
// # Quick Start
//
//	b := timeline.NewBuilder()
//	s, err := b.
//		AddVideo("intro.mp4", timeline.WithDuration(5)).
//		AddText("Hello", timeline.WithDuration(3)).
//		AddMusic("bed.mp3").
//		Build()
//
// Cross-cutting concerns live in [errors] (coded errors and validation)
// and [observability] (pluggable hooks for placement, discovery, and
// storage events).
package pkg
