package cli

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/ideaboard/internal/client/client"
	"github.com/dmitrijs2005/ideaboard/internal/client/models"
	"github.com/stretchr/testify/assert"
)

type pingClient struct {
	client.Client
	down  atomic.Bool
	pings atomic.Int32
}

func (p *pingClient) Ping(context.Context) error {
	p.pings.Add(1)
	if p.down.Load() {
		return client.ErrUnavailable
	}
	return nil
}

func (p *pingClient) Close() error { return nil }

func TestApp_CheckOnlineSwitchesMode(t *testing.T) {
	remote := &pingClient{}
	a, _ := newTestApp(&fakeAccounts{}, nil, nil)
	a.remote = remote
	ctx := context.Background()

	a.checkOnline(ctx)
	assert.Equal(t, ModeOnline, a.Mode())

	remote.down.Store(true)
	a.checkOnline(ctx)
	assert.Equal(t, ModeOffline, a.Mode())
}

func TestApp_GetStatus(t *testing.T) {
	acc := &fakeAccounts{}
	a, _ := newTestApp(acc, nil, nil)
	ctx := context.Background()

	assert.Equal(t, "", a.getStatus(ctx))

	a.setMode(ctx, ModeOffline)
	assert.Equal(t, "(offline)", a.getStatus(ctx))

	acc.session = &models.User{Email: "ann@example.com"}
	a.setMode(ctx, ModeOnline)
	assert.Equal(t, "(ann@example.com online)", a.getStatus(ctx))
}

func TestApp_StartOnlineStatusWatcher(t *testing.T) {
	remote := &pingClient{}
	a, _ := newTestApp(&fakeAccounts{}, nil, nil)
	a.remote = remote

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return remote.pings.Load() >= 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, ModeOnline, a.Mode())

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestApp_StartOnlineStatusWatcher_DisabledInterval(t *testing.T) {
	a, _ := newTestApp(&fakeAccounts{}, nil, nil)
	a.StartOnlineStatusWatcher(context.Background(), 0)
	assert.Equal(t, Mode(""), a.Mode())
}
