package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cryosure/internal/client"
	"cryosure/internal/dashboard"
	"cryosure/internal/logger"
)

func TestMonitoringService_SwitchView(t *testing.T) {
	t.Parallel()

	store := dashboard.NewStore()
	f := &fakeFetcher{fn: func(ctx context.Context, n int) (client.Batch, error) {
		return batchOf(5, 70), nil
	}}
	p := NewSensorPoller(store, f, time.Hour, logger.Nop())
	svc := NewMonitoringService(store, p)
	defer p.Shutdown()
	ctx := context.Background()

	st, err := svc.SwitchView(ctx, dashboard.ViewMonitoring)
	if err != nil || st.View != dashboard.ViewMonitoring || !p.Active() {
		t.Fatalf("expected active monitoring, view=%q active=%v err=%v", st.View, p.Active(), err)
	}
	waitFor(t, func() bool { return svc.GetState(ctx).LastDataFetch != nil })

	st, err = svc.SwitchView(ctx, dashboard.ViewConfig)
	if err != nil || st.View != dashboard.ViewConfig || p.Active() {
		t.Fatalf("expected inactive config view, view=%q active=%v err=%v", st.View, p.Active(), err)
	}
	if st.LoadingLiveData {
		t.Fatal("loading flag must be cleared when leaving monitoring")
	}

	if _, err := svc.SwitchView(ctx, "bogus"); !errors.Is(err, dashboard.ErrUnknownView) {
		t.Fatalf("expected ErrUnknownView, got %v", err)
	}
	if p.Active() {
		t.Fatal("unknown view must not start polling")
	}
}

func TestMonitoringService_Refresh(t *testing.T) {
	t.Parallel()

	store := dashboard.NewStore()
	f := &fakeFetcher{fn: func(ctx context.Context, n int) (client.Batch, error) {
		return batchOf(12, 50), nil
	}}
	svc := NewMonitoringService(store, NewSensorPoller(store, f, time.Hour, logger.Nop()))

	st, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if st.Snapshot == nil || st.Snapshot.Status != "critical" {
		t.Fatalf("unexpected snapshot %+v", st.Snapshot)
	}

	updates, cancel := svc.Subscribe()
	defer cancel()
	if _, err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	select {
	case <-updates:
	case <-time.After(time.Second):
		t.Fatal("subscriber not notified")
	}
}
