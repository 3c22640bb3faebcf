package hotkey

import (
	"testing"
	"time"
)

func TestWatchInvokesOnEveryPress(t *testing.T) {
	fake := NewFake()
	stop := make(chan struct{})
	defer close(stop)

	fired := make(chan struct{}, 4)
	go Watch(fake, stop, func() { fired <- struct{}{} })

	for i := 0; i < 3; i++ {
		fake.SimKeydown()
		select {
		case <-fired:
		case <-time.After(time.Second):
			t.Fatalf("press %d not delivered", i)
		}
		fake.SimKeyup()
	}
}

func TestWatchStops(t *testing.T) {
	fake := NewFake()
	stop := make(chan struct{})

	done := make(chan struct{})
	go func() {
		Watch(fake, stop, func() {})
		close(done)
	}()

	close(stop)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not exit after stop")
	}
}
