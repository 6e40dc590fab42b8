package web

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

type listHub struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func newListHub() *listHub {
	return &listHub{subs: map[chan struct{}]struct{}{}}
}

func (h *listHub) subscribe() (ch chan struct{}, cancel func()) {
	ch = make(chan struct{}, 8)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
		close(ch)
	}
}

func (h *listHub) broadcast() {
	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	h.mu.Unlock()
}

// listBroadcaster fans out change notifications to SSE subscribers, one hub
// per normalized list name. Mutations made through this server notify their
// hub directly; the watch loop additionally polls the database files so
// writes from the CLI or TUI refresh open browsers too.
type listBroadcaster struct {
	dir string

	mu   sync.Mutex
	hubs map[string]*listHub
	fp   string

	stopOnce sync.Once
	stopCh   chan struct{}
}

func newListBroadcaster(dir string) *listBroadcaster {
	return &listBroadcaster{
		dir:    filepath.Clean(strings.TrimSpace(dir)),
		hubs:   map[string]*listHub{},
		stopCh: make(chan struct{}),
	}
}

func (b *listBroadcaster) Stop() {
	if b == nil {
		return
	}
	b.stopOnce.Do(func() {
		close(b.stopCh)
	})
}

func (b *listBroadcaster) hubFor(listName string) *listHub {
	k := strings.TrimSpace(listName)
	if k == "" {
		k = "Today"
	}
	b.mu.Lock()
	h := b.hubs[k]
	if h == nil {
		h = newListHub()
		b.hubs[k] = h
	}
	b.mu.Unlock()
	return h
}

func (b *listBroadcaster) notify(listName string) {
	b.hubFor(listName).broadcast()
}

func (b *listBroadcaster) notifyAll() {
	b.mu.Lock()
	hubs := make([]*listHub, 0, len(b.hubs))
	for _, h := range b.hubs {
		hubs = append(hubs, h)
	}
	b.mu.Unlock()
	for _, h := range hubs {
		h.broadcast()
	}
}

// fingerprint stats the sqlite file and its WAL sidecar. Keep this cheap:
// mtime + size is enough to notice an external write.
func (b *listBroadcaster) fingerprint() string {
	var modNano, size int64
	for _, name := range []string{"listkeep.sqlite", "listkeep.sqlite-wal"} {
		st, err := os.Stat(filepath.Join(b.dir, name))
		if err != nil {
			continue
		}
		if st.ModTime().UnixNano() > modNano {
			modNano = st.ModTime().UnixNano()
		}
		size += st.Size()
	}
	if modNano == 0 && size == 0 {
		return ""
	}
	return strconv.FormatInt(modNano, 10) + ":" + strconv.FormatInt(size, 10)
}

func (b *listBroadcaster) watchLoop() {
	tick := time.NewTicker(1 * time.Second)
	defer tick.Stop()

	for {
		select {
		case <-b.stopCh:
			return
		case <-tick.C:
			fp := b.fingerprint()
			b.mu.Lock()
			changed := fp != "" && fp != b.fp
			b.fp = fp
			b.mu.Unlock()
			if changed {
				b.notifyAll()
			}
		}
	}
}
