package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

type recordingHooks struct {
	NoopPipelineHooks
	events []string
	errs   []error
}

func (r *recordingHooks) OnLayoutStart(_ context.Context, total int, mode string) {
	r.events = append(r.events, "layout-start:"+mode)
}

func (r *recordingHooks) OnLayoutComplete(_ context.Context, mode string, _ time.Duration, err error) {
	r.events = append(r.events, "layout-done:"+mode)
	r.errs = append(r.errs, err)
}

func (r *recordingHooks) OnRenderStart(_ context.Context, formats []string) {
	r.events = append(r.events, "render-start")
}

func (r *recordingHooks) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, err error) {
	r.events = append(r.events, "render-done")
	r.errs = append(r.errs, err)
}

type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}

	// No-op hooks accept every event.
	ctx := context.Background()
	TimeLayout(ctx, 5, "half")(nil)
	TimeRender(ctx, []string{"svg"})(errors.New("boom"))
	Cache().OnCacheSet(ctx, "artifact", 10)
	HTTP().OnResponse(ctx, "GET", "/stars.{format}", 200, time.Millisecond)
}

func TestSetAndReset(t *testing.T) {
	t.Cleanup(Reset)

	p, c, h := &recordingHooks{}, &testCacheHooks{}, &testHTTPHooks{}
	SetPipelineHooks(p)
	SetCacheHooks(c)
	SetHTTPHooks(h)

	if Pipeline() != PipelineHooks(p) || Cache() != CacheHooks(c) || HTTP() != HTTPHooks(h) {
		t.Fatal("registered hooks not returned")
	}

	SetPipelineHooks(nil)
	if Pipeline() != PipelineHooks(p) {
		t.Error("SetPipelineHooks(nil) replaced the registered hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() did not restore the no-op pipeline hooks")
	}
}

func TestTimers(t *testing.T) {
	t.Cleanup(Reset)
	rec := &recordingHooks{}
	SetPipelineHooks(rec)

	ctx := context.Background()
	done := TimeLayout(ctx, 5, "precise")
	if d := done(nil); d < 0 {
		t.Errorf("layout duration = %v", d)
	}
	renderErr := errors.New("png failed")
	TimeRender(ctx, []string{"png"})(renderErr)

	want := []string{"layout-start:precise", "layout-done:precise", "render-start", "render-done"}
	if len(rec.events) != len(want) {
		t.Fatalf("events = %v, want %v", rec.events, want)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, rec.events[i], want[i])
		}
	}
	if rec.errs[0] != nil || rec.errs[1] != renderErr {
		t.Errorf("errors = %v", rec.errs)
	}
}
