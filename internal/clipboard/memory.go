package clipboard

import (
	"errors"
	"sort"
	"sync"
)

var ErrSessionClosed = errors.New("clipboard session closed")

// MemoryPort is a process-local clipboard. It backs the test suites and acts
// as the fallback port on platforms without a system adapter.
//
// mu provides session exclusivity and guards the format data; meta guards
// everything safe to read while a session is open (context strings,
// registered names, watchers).
type MemoryPort struct {
	mu   sync.Mutex
	data map[uint32][]byte

	meta     sync.Mutex
	names    map[uint32]string
	owner    string
	title    string
	watchers []chan struct{}
}

func NewMemoryPort() *MemoryPort {
	return &MemoryPort{
		data:  make(map[uint32][]byte),
		names: make(map[uint32]string),
	}
}

// SetContext sets the owner process name and foreground window title
// reported for subsequent captures.
func (p *MemoryPort) SetContext(owner, title string) {
	p.meta.Lock()
	defer p.meta.Unlock()
	p.owner, p.title = owner, title
}

// RegisterName attaches an OS-registered format name to an id, mimicking
// custom formats like "HTML Format".
func (p *MemoryPort) RegisterName(id uint32, name string) {
	p.meta.Lock()
	defer p.meta.Unlock()
	p.names[id] = name
}

func (p *MemoryPort) OwnerProcessName() string {
	p.meta.Lock()
	defer p.meta.Unlock()
	return p.owner
}

func (p *MemoryPort) ForegroundWindowTitle() string {
	p.meta.Lock()
	defer p.meta.Unlock()
	return p.title
}

// OpenExclusive locks the port until the session is closed.
func (p *MemoryPort) OpenExclusive() (Session, error) {
	p.mu.Lock()
	return &memorySession{port: p}, nil
}

func (p *MemoryPort) Changes(buf int) (<-chan struct{}, func()) {
	ch := make(chan struct{}, buf)
	p.meta.Lock()
	p.watchers = append(p.watchers, ch)
	p.meta.Unlock()

	return ch, func() {
		p.meta.Lock()
		defer p.meta.Unlock()
		for i, w := range p.watchers {
			if w == ch {
				p.watchers = append(p.watchers[:i], p.watchers[i+1:]...)
				break
			}
		}
	}
}

// notify signals every watcher. Slow watchers miss notifications instead of
// blocking the clipboard.
func (p *MemoryPort) notify() {
	p.meta.Lock()
	defer p.meta.Unlock()
	for _, w := range p.watchers {
		select {
		case w <- struct{}{}:
		default:
		}
	}
}

type memorySession struct {
	port   *MemoryPort
	closed bool
	dirty  bool
}

func (s *memorySession) Formats() []uint32 {
	ids := make([]uint32, 0, len(s.port.data))
	for id := range s.port.data {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *memorySession) Read(id uint32) ([]byte, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	data, ok := s.port.data[id]
	if !ok {
		return nil, errors.New("format not available")
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *memorySession) Write(id uint32, data []byte) error {
	if s.closed {
		return ErrSessionClosed
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.port.data[id] = cp
	s.dirty = true
	return nil
}

func (s *memorySession) Clear() error {
	if s.closed {
		return ErrSessionClosed
	}
	s.port.data = make(map[uint32][]byte)
	s.dirty = true
	return nil
}

func (s *memorySession) FormatName(id uint32) string {
	s.port.meta.Lock()
	defer s.port.meta.Unlock()
	return s.port.names[id]
}

func (s *memorySession) Close() error {
	if s.closed {
		return ErrSessionClosed
	}
	s.closed = true
	s.port.mu.Unlock()
	if s.dirty {
		s.port.notify()
	}
	return nil
}
