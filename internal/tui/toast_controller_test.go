package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/minutes/internal/core/notify"
)

func TestToastController_Push(t *testing.T) {
	c := NewToastController(0)

	c.Push(notify.Notification{Level: notify.LevelInfo, Message: "hello"})

	assert.True(t, c.HasToasts())
	assert.Len(t, c.Toasts(), 1)
	assert.Equal(t, "hello", c.Toasts()[0].notification.Message)
	assert.Equal(t, defaultToastTTL, c.Toasts()[0].remaining)
}

func TestToastController_CustomTTL(t *testing.T) {
	c := NewToastController(time.Second)
	c.Push(notify.Notification{Message: "short"})

	c.Tick(900 * time.Millisecond)
	assert.True(t, c.HasToasts())

	c.Tick(toastTickInterval)
	assert.False(t, c.HasToasts())
}

func TestToastController_Push_evicts_oldest_at_max(t *testing.T) {
	c := NewToastController(0)

	for i := range defaultMaxToasts + 2 {
		c.Push(notify.Notification{
			Level:   notify.LevelInfo,
			Message: time.Duration(i).String(),
		})
	}

	assert.Len(t, c.Toasts(), defaultMaxToasts)
	assert.Equal(t, "2ns", c.Toasts()[0].notification.Message)
}

func TestToastController_Tick_removes_expired(t *testing.T) {
	c := NewToastController(0)
	c.Push(notify.Notification{Level: notify.LevelInfo, Message: "expires"})
	c.Push(notify.Notification{Level: notify.LevelInfo, Message: "survives"})

	c.toasts[0].remaining = 50 * time.Millisecond
	c.Tick(100 * time.Millisecond)

	assert.Len(t, c.Toasts(), 1)
	assert.Equal(t, "survives", c.Toasts()[0].notification.Message)
}

func TestToastController_Dismiss(t *testing.T) {
	c := NewToastController(0)
	c.Dismiss()
	assert.False(t, c.HasToasts())

	c.Push(notify.Notification{Level: notify.LevelInfo, Message: "first"})
	c.Push(notify.Notification{Level: notify.LevelInfo, Message: "second"})
	c.Dismiss()

	assert.Len(t, c.Toasts(), 1)
	assert.Equal(t, "first", c.Toasts()[0].notification.Message)
}

func TestToastUpdateLoop_tick_chain_expires_at_TTL(t *testing.T) {
	d := newDriver(t)
	d.m.toasts.Push(notify.Notification{Level: notify.LevelInfo, Message: "test"})
	d.m.toasts.SetTicking(true)

	ticks := 0
	for {
		model, cmd := d.m.Update(toastTickMsg(time.Time{}))
		d.m = model.(Model)
		ticks++
		if cmd == nil {
			break
		}
		if ticks > 100 {
			t.Fatal("tick chain ran for >100 ticks without expiring")
		}
	}

	assert.Equal(t, int(time.Second/toastTickInterval), ticks)
	assert.False(t, d.m.toasts.HasToasts())
	assert.False(t, d.m.toasts.Ticking())
}

func TestToastView_RendersLevels(t *testing.T) {
	c := NewToastController(0)
	v := NewToastView(c)
	assert.Empty(t, v.View())

	c.Push(notify.Notification{Level: notify.LevelError, Message: "boom"})
	c.Push(notify.Notification{Level: notify.LevelInfo, Message: "saved"})

	out := v.View()
	assert.Contains(t, out, "✗ boom")
	assert.Contains(t, out, "✓ saved")

	bg := "background"
	assert.NotEqual(t, bg, v.Overlay(bg, 80, 24))
}
