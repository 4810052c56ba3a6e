// Package netmon provides network reachability monitoring for the
// session client. Reachability means "a usable network path to the
// remote API exists", observed by probing the API itself rather than
// trusting interface state.
package netmon

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Probe polls the remote API and notifies subscribers on every
// online/offline transition. It implements service.Reachability.
type Probe struct {
	url        string
	interval   time.Duration
	httpClient *http.Client

	mu     sync.Mutex
	online bool
	subs   map[int]func(online bool)
	nextID int
	stop   chan struct{}
	done   chan struct{}
}

// ProbeOption configures a Probe.
type ProbeOption func(*Probe)

// WithInterval overrides the default 15s polling interval.
func WithInterval(d time.Duration) ProbeOption {
	return func(p *Probe) {
		p.interval = d
	}
}

// WithProbeHTTPClient overrides the HTTP client used for probes.
func WithProbeHTTPClient(hc *http.Client) ProbeOption {
	return func(p *Probe) {
		p.httpClient = hc
	}
}

// NewProbe creates a probe against baseURL's health endpoint. The
// first probe runs synchronously so callers observe a real state
// immediately; subsequent probes run on the polling interval until
// Stop.
func NewProbe(baseURL string, opts ...ProbeOption) *Probe {
	p := &Probe{
		url:      baseURL + "/api/health",
		interval: 15 * time.Second,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		subs: make(map[int]func(online bool)),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.online = p.check()
	go p.run()
	return p
}

// Online returns the last-observed reachability state.
func (p *Probe) Online() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.online
}

// Subscribe registers fn for transition notifications.
func (p *Probe) Subscribe(fn func(online bool)) (cancel func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

// Stop ends the polling loop.
func (p *Probe) Stop() {
	close(p.stop)
	<-p.done
}

func (p *Probe) run() {
	defer close(p.done)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			p.observe(p.check())
		}
	}
}

// check performs one reachability probe. Any HTTP response counts as
// online; only a transport failure counts as offline.
func (p *Probe) check() bool {
	ctx, cancel := context.WithTimeout(context.Background(), p.httpClient.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return false
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return true
}

// observe updates state and fans out on transitions only.
func (p *Probe) observe(online bool) {
	p.mu.Lock()
	if online == p.online {
		p.mu.Unlock()
		return
	}
	p.online = online
	fns := make([]func(bool), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(online)
	}
}

// Static is a fixed-state Reachability for tests and for one-shot CLI
// invocations where a background poller is pointless.
type Static struct {
	mu     sync.Mutex
	online bool
	subs   map[int]func(online bool)
	nextID int
}

// NewStatic creates a Static reporting the given state.
func NewStatic(online bool) *Static {
	return &Static{online: online, subs: make(map[int]func(online bool))}
}

// Online returns the configured state.
func (s *Static) Online() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

// Subscribe registers fn; it fires only when SetOnline changes state.
func (s *Static) Subscribe(fn func(online bool)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// SetOnline flips the state, notifying subscribers on change.
func (s *Static) SetOnline(online bool) {
	s.mu.Lock()
	if online == s.online {
		s.mu.Unlock()
		return
	}
	s.online = online
	fns := make([]func(bool), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(online)
	}
}
