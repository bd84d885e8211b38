package core

import (
	"reflect"
	"sync"
)

// ListenerID identifies a connection made with Connect.
type ListenerID uint64

type listener struct {
	id ListenerID
	fn func(any)
}

// Bus dispatches typed messages to the listeners connected for that type.
// Listeners run synchronously on the broadcasting goroutine, in connection order.
type Bus struct {
	mu        sync.Mutex
	next      ListenerID
	listeners map[reflect.Type][]listener
}

func NewBus() *Bus {
	return &Bus{listeners: make(map[reflect.Type][]listener)}
}

// Connect registers fn for messages of type M.
func Connect[M any](b *Bus, fn func(M)) ListenerID {
	key := reflect.TypeFor[M]()
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	b.listeners[key] = append(b.listeners[key], listener{
		id: b.next,
		fn: func(m any) { fn(m.(M)) },
	})
	return b.next
}

// Disconnect removes a listener. It reports whether the id was connected.
func (b *Bus) Disconnect(id ListenerID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for key, ls := range b.listeners {
		for i, l := range ls {
			if l.id == id {
				b.listeners[key] = append(ls[:i:i], ls[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Broadcast delivers msg to every listener of its type.
func Broadcast[M any](b *Bus, msg M) {
	b.mu.Lock()
	ls := b.listeners[reflect.TypeFor[M]()]
	b.mu.Unlock()
	for _, l := range ls {
		l.fn(msg)
	}
}

// Listeners reports how many listeners are connected for M.
func Listeners[M any](b *Bus) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners[reflect.TypeFor[M]()])
}
