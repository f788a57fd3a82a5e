// Package animate connects sort functions to an animation engine.
//
// [Schedule] issues one [Engine.Animate] request per timed element, each with
// the element's own delay and a shared [ChangeFunc], and reports a single
// aggregate completion once every element has finished. [Container] is the
// usual entry point: it flattens a container, runs a sort function over it
// and schedules the result.
//
// The engine is supplied by the host. This package also ships a
// manual-clock [Player] that implements Engine by tweening [scene.Props],
// a real-time driver ([Run]) for it, and the stock fade, slide, spin, expand
// and contract animations together with their prepare functions.
package animate
