package animate

import (
	"time"

	"github.com/matzehuels/cascade/pkg/scene"
)

// ChangeFunc applies the final state of an animation to an element.
type ChangeFunc func(scene.Node)

// Completion receives whether an animation ran to the end. It is false when
// the animation was interrupted.
type Completion func(finished bool)

// Engine plays one animation on one element after a delay and reports the
// outcome through done.
type Engine interface {
	Animate(el scene.Node, delay time.Duration, change ChangeFunc, done Completion)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(el scene.Node, delay time.Duration, change ChangeFunc, done Completion)

// Animate implements Engine.
func (f EngineFunc) Animate(el scene.Node, delay time.Duration, change ChangeFunc, done Completion) {
	f(el, delay, change, done)
}

// Immediate applies every change synchronously, ignores the delay and
// reports completion at once.
var Immediate Engine = EngineFunc(func(el scene.Node, _ time.Duration, change ChangeFunc, done Completion) {
	if change != nil {
		change(el)
	}
	if done != nil {
		done(true)
	}
})

// Animatable is implemented by nodes that expose mutable visual properties.
// [scene.Box] implements it.
type Animatable interface {
	scene.Node
	Props() *scene.Props
}

func propsOf(n scene.Node) *scene.Props {
	if a, ok := n.(Animatable); ok {
		return a.Props()
	}
	return nil
}
