package scenario

import (
	"sync"

	"github.com/philipparndt/arfocus/pkg/tracking"
)

// Player replays a scenario as a tracking session, one frame at a time
type Player struct {
	mu     sync.RWMutex
	frames []*tracking.Frame
	index  int
}

// NewPlayer converts the scenario's frames and positions the player on the
// first one
func NewPlayer(s *Scenario) (*Player, error) {
	frames, err := s.TrackingFrames()
	if err != nil {
		return nil, err
	}
	return &Player{frames: frames}, nil
}

// CurrentFrame implements tracking.Session
func (p *Player) CurrentFrame() (*tracking.Frame, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.index >= len(p.frames) {
		return nil, false
	}
	return p.frames[p.index].Clone(), true
}

// Index returns the current frame index
func (p *Player) Index() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.index
}

// Len returns the number of frames
func (p *Player) Len() int {
	return len(p.frames)
}

// Next moves to the following frame. It reports false once the recording
// is exhausted.
func (p *Player) Next() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.index < len(p.frames) {
		p.index++
	}
	return p.index < len(p.frames)
}

// Seek jumps to frame i. It reports false when i is out of range.
func (p *Player) Seek(i int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if i < 0 || i >= len(p.frames) {
		return false
	}
	p.index = i
	return true
}
