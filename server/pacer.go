package server

import (
	"context"
	"sync/atomic"
	"time"
)

// Pacer 固定节奏的发送节拍器。
// 下一次截止时间总是 上一次截止时间 + interval，而不是 now + interval，
// 偶发的慢帧会被部分吸收；持续慢帧时立即发送，不会跳帧追赶。
type Pacer struct {
	next     time.Time
	interval *atomic.Int64 // 纳秒，管理端口可热更新

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPacer 第一次 Wait 不会等待
func NewPacer(interval *atomic.Int64) *Pacer {
	p := &Pacer{
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}
	p.next = p.now()
	return p
}

// Wait 睡眠到当前截止时间，然后把截止时间推进一个 interval。
// 返回实际睡眠时长；ctx 取消时返回其错误。
func (p *Pacer) Wait(ctx context.Context) (time.Duration, error) {
	var slept time.Duration
	if d := p.next.Sub(p.now()); d > 0 {
		if err := p.sleep(ctx, d); err != nil {
			return 0, err
		}
		slept = d
	}
	p.next = p.next.Add(time.Duration(p.interval.Load()))
	return slept, nil
}

// Deadline 下一次允许发送的时间
func (p *Pacer) Deadline() time.Time { return p.next }

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
