package server

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

// fakeClock 睡眠只推进时间
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

func newTestPacer(interval time.Duration) (*Pacer, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	var iv atomic.Int64
	iv.Store(int64(interval))
	p := &Pacer{interval: &iv, now: clock.Now, sleep: clock.Sleep}
	p.next = clock.now
	return p, clock
}

func TestPacerFirstSendImmediate(t *testing.T) {
	p, clock := newTestPacer(100 * time.Millisecond)
	slept, err := p.Wait(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if slept != 0 || len(clock.sleeps) != 0 {
		t.Errorf("first wait slept %v", slept)
	}
	if got := p.Deadline().Sub(clock.now); got != 100*time.Millisecond {
		t.Errorf("next deadline in %v, want 100ms", got)
	}
}

func TestPacerDeadlineAdvancesFromPreviousDeadline(t *testing.T) {
	p, clock := newTestPacer(100 * time.Millisecond)
	start := clock.now
	ctx := context.Background()

	p.Wait(ctx)
	clock.now = clock.now.Add(30 * time.Millisecond) // 处理耗时 30ms
	slept, _ := p.Wait(ctx)
	if slept != 70*time.Millisecond {
		t.Errorf("slept %v, want 70ms", slept)
	}

	// 一次慢帧（150ms）：立即发送，不追赶也不重新以 now 为基准
	clock.now = clock.now.Add(150 * time.Millisecond)
	slept, _ = p.Wait(ctx)
	if slept != 0 {
		t.Errorf("slow frame slept %v, want 0", slept)
	}
	if want := start.Add(300 * time.Millisecond); !p.Deadline().Equal(want) {
		t.Errorf("deadline %v, want %v", p.Deadline().Sub(start), want.Sub(start))
	}

	// 下一帧被部分吸收：只需再等 50ms
	slept, _ = p.Wait(ctx)
	if slept != 50*time.Millisecond {
		t.Errorf("slept %v, want 50ms", slept)
	}
}

func TestPacerIntervalHotUpdate(t *testing.T) {
	p, clock := newTestPacer(100 * time.Millisecond)
	ctx := context.Background()
	p.Wait(ctx)
	p.interval.Store(int64(10 * time.Millisecond))
	p.Wait(ctx) // 仍按旧截止时间等待 100ms，然后推进 10ms
	slept, _ := p.Wait(ctx)
	if slept != 10*time.Millisecond {
		t.Errorf("slept %v, want 10ms", slept)
	}
	if len(clock.sleeps) != 2 {
		t.Errorf("sleeps: %v", clock.sleeps)
	}
}

func TestPacerCanceled(t *testing.T) {
	var iv atomic.Int64
	iv.Store(int64(time.Hour))
	p := NewPacer(&iv)
	ctx, cancel := context.WithCancel(context.Background())
	if _, err := p.Wait(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()
	if _, err := p.Wait(ctx); err == nil {
		t.Error("expected cancellation error")
	}
}
