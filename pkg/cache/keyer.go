package cache

import "fmt"

// Keyer derives cache keys.
type Keyer interface {
	// TimelineKey identifies the timed schedule of a scene under a sort
	// function configuration.
	TimelineKey(sceneHash string, opts TimelineKeyOpts) string
	// ArtifactKey identifies a rendered output of a timeline.
	ArtifactKey(timelineHash string, opts ArtifactKeyOpts) string
}

// TimelineKeyOpts lists every input that changes a computed timeline.
type TimelineKeyOpts struct {
	Sort     string `json:"sort"`
	Depth    int    `json:"depth"`
	Delay    int64  `json:"delay"`
	Duration int64  `json:"duration"`
	Reversed bool   `json:"reversed"`
	Anchor   string `json:"anchor"`
	Weights  string `json:"weights,omitempty"`
	Seed     uint64 `json:"seed,omitempty"`
}

// ArtifactKeyOpts lists every input that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string   `json:"format"`
	Animations []string `json:"animations,omitempty"`
	Easing     string   `json:"easing,omitempty"`
	Duration   int64    `json:"duration"`
	Labels     bool     `json:"labels,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"`
	Horizontal bool     `json:"horizontal,omitempty"`
}

// DefaultKeyer produces keys of the form "<kind>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// TimelineKey implements Keyer.
func (DefaultKeyer) TimelineKey(sceneHash string, opts TimelineKeyOpts) string {
	return hashKey("timeline", sceneHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(timelineHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", timelineHash, opts)
}

// ScopedKeyer prefixes every key of an inner keyer. The HTTP server uses
// it to keep API results apart from CLI results in a shared backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// TimelineKey implements Keyer.
func (k *ScopedKeyer) TimelineKey(sceneHash string, opts TimelineKeyOpts) string {
	return k.prefix + k.inner.TimelineKey(sceneHash, opts)
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(timelineHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(timelineHash, opts)
}

func (k *ScopedKeyer) String() string { return fmt.Sprintf("scoped(%q)", k.prefix) }
