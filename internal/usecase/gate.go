package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/wvsbeta/dumpkeeper/internal/domain"
)

// ShouldUpload reports whether now, in UTC, falls on exactly hour:minute.
// It is true for one minute a day, so whoever triggers the run has to fire
// inside that minute for an upload to ever happen.
func ShouldUpload(now time.Time, hour, minute int) bool {
	now = now.UTC()
	return now.Hour() == hour && now.Minute() == minute
}

// ClockGate is the wall-clock upload gate.
type ClockGate struct {
	Hour   int
	Minute int
}

func NewClockGate(hour, minute int) *ClockGate {
	return &ClockGate{Hour: hour, Minute: minute}
}

func (g *ClockGate) Due(ctx context.Context, now time.Time) (bool, error) {
	return ShouldUpload(now, g.Hour, g.Minute), nil
}

func (g *ClockGate) Record(ctx context.Context, at time.Time, remoteName string) error {
	return nil
}

// IntervalGate is due when no upload has been recorded yet or the last
// successful upload is at least interval old. Both times are truncated to the
// minute, so a daily trigger firing a few seconds early is still due.
type IntervalGate struct {
	store    domain.StateStore
	interval time.Duration
}

func NewIntervalGate(store domain.StateStore, interval time.Duration) *IntervalGate {
	return &IntervalGate{store: store, interval: interval}
}

func (g *IntervalGate) Due(ctx context.Context, now time.Time) (bool, error) {
	st, ok, err := g.store.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load upload state: %w", err)
	}
	if !ok {
		return true, nil
	}
	elapsed := now.Truncate(time.Minute).Sub(st.LastUpload.Truncate(time.Minute))
	return elapsed >= g.interval, nil
}

func (g *IntervalGate) Record(ctx context.Context, at time.Time, remoteName string) error {
	if err := g.store.Save(ctx, domain.UploadState{LastUpload: at.UTC(), LastFile: remoteName}); err != nil {
		return fmt.Errorf("save upload state: %w", err)
	}
	return nil
}
