package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnScheduleStart(ctx, "linear(top-to-bottom, delay=50ms)", 12)
	p.OnScheduleComplete(ctx, "linear", 12, time.Millisecond, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "timeline")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	s := NoopServerHooks{}
	s.OnRequest(ctx, "POST", "/v1/schedule")
	s.OnResponse(ctx, "POST", "/v1/schedule", 200, time.Millisecond)
}

type countingCache struct {
	mu   sync.Mutex
	hits int
}

func (c *countingCache) OnCacheHit(context.Context, string) {
	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
}
func (c *countingCache) OnCacheMiss(context.Context, string)     {}
func (c *countingCache) OnCacheSet(context.Context, string, int) {}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should return NoopServerHooks by default")
	}

	custom := &countingCache{}
	SetCacheHooks(custom)
	Cache().OnCacheHit(context.Background(), "timeline")
	if custom.hits != 1 {
		t.Errorf("hits = %d", custom.hits)
	}

	SetCacheHooks(nil)
	if Cache() != CacheHooks(custom) {
		t.Error("nil should not replace registered hooks")
	}

	Reset()
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset should restore no-op hooks")
	}
}

func TestLogHooks(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	NewLogHooks(logger).Register()

	ctx := context.Background()
	Pipeline().OnScheduleComplete(ctx, "radial", 3, time.Millisecond, nil)
	Pipeline().OnRenderComplete(ctx, []string{"svg"}, 0, errors.New("boom"))
	Cache().OnCacheMiss(ctx, "timeline")
	Server().OnResponse(ctx, "GET", "/healthz", 200, 0)

	out := buf.String()
	for _, want := range []string{"schedule done", "render failed", "boom", "cache miss", "/healthz"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
