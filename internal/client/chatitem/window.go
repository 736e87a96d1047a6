package chatitem

import "sync"

const KeyEscape = "Escape"

// Window fans key presses out to every mounted item, like a window-level keydown listener.
type Window struct {
	mu   sync.RWMutex
	next int
	subs map[int]func(key string)
}

func NewWindow() *Window {
	return &Window{subs: make(map[int]func(string))}
}

// Subscribe registers fn and returns the function that removes it.
func (w *Window) Subscribe(fn func(key string)) func() {
	w.mu.Lock()
	id := w.next
	w.next++
	w.subs[id] = fn
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.subs, id)
			w.mu.Unlock()
		})
	}
}

func (w *Window) Press(key string) {
	w.mu.RLock()
	subs := make([]func(string), 0, len(w.subs))
	for _, fn := range w.subs {
		subs = append(subs, fn)
	}
	w.mu.RUnlock()

	for _, fn := range subs {
		fn(key)
	}
}

func (w *Window) Listeners() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.subs)
}
