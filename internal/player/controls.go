package player

import (
	"time"
)

type seekRequest struct {
	gen      uint64
	position time.Duration
}

// Play starts or resumes playback. Before the stream is ready this only
// records the intent; after the end of the stream it restarts from 0.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.gen == 0 {
		return
	}
	p.state = Playing
	if p.ready {
		if p.ended {
			p.restartLocked(0)
		}
		p.setPausedLocked(false)
		p.startTickerLocked()
	}
	p.emitLocked(EventStateChanged)
}

// Pause pauses playback.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.gen == 0 {
		return
	}
	if p.state == Playing {
		p.state = Paused
	}
	if p.ready {
		p.setPausedLocked(true)
	}
	p.stopTickerLocked()
	p.emitLocked(EventStateChanged)
}

func (p *Player) setPausedLocked(paused bool) {
	if p.ctrl == nil {
		return
	}
	p.out.Lock()
	p.ctrl.Paused = paused
	p.out.Unlock()
}

// restartLocked replays a stream whose output sequence already finished.
func (p *Player) restartLocked(position time.Duration) {
	if err := p.stream.Seek(p.clampSamples(position)); err != nil {
		p.log.Warn().Err(err).Msg("rewind")
	}
	p.ended = false
	if p.state == Stopped {
		p.state = Paused
	}
	p.startOutputLocked(p.gen)
}

// Seek moves to an absolute position. Non-blocking: the request is handed
// to the seek goroutine, replacing one that is still pending. Seeks issued
// while loading are applied once the stream is ready.
func (p *Player) Seek(position time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.gen == 0 {
		return
	}
	position = max(position, 0)
	if !p.ready {
		p.position = position
		p.pending = true
		p.emitLocked(EventTimeUpdate)
		return
	}
	if p.duration > 0 {
		position = min(position, p.duration)
	}

	req := seekRequest{gen: p.gen, position: position}
	select {
	case p.seekChan <- req:
	default:
		select {
		case <-p.seekChan:
		default:
		}
		select {
		case p.seekChan <- req:
		default:
		}
	}
}

// seekLoop processes seek requests sequentially until Close.
func (p *Player) seekLoop() {
	for req := range p.seekChan {
		p.doSeek(req)
	}
}

func (p *Player) doSeek(req seekRequest) {
	p.mu.Lock()
	if req.gen != p.gen || !p.ready {
		p.mu.Unlock()
		return
	}

	if p.ended {
		p.restartLocked(req.position)
	} else {
		// Mute, seek, then unmute to avoid audio artifacts.
		p.out.Lock()
		p.volume.Silent = true
		err := p.stream.Seek(p.clampSamples(req.position))
		p.out.Unlock()
		if err != nil {
			p.log.Warn().Err(err).Dur("position", req.position).Msg("seek")
		}
	}
	p.emitLocked(EventTimeUpdate)
	settle := p.seekSettle
	p.mu.Unlock()

	// Let the output buffer drain before unmuting.
	time.Sleep(settle)

	p.mu.Lock()
	defer p.mu.Unlock()
	if req.gen != p.gen || p.volume == nil {
		return
	}
	p.out.Lock()
	p.volume.Silent = p.muted
	p.out.Unlock()
}

// clampSamples converts a position to a sample index within the stream.
func (p *Player) clampSamples(position time.Duration) int {
	n := p.format.SampleRate.N(position)
	if l := p.stream.Len(); l > 0 {
		n = min(n, l)
	}
	return max(n, 0)
}

func (p *Player) startTickerLocked() {
	if p.tickStop != nil {
		return
	}
	stop := make(chan struct{})
	p.tickStop = stop
	go p.tickLoop(p.gen, stop)
}

func (p *Player) stopTickerLocked() {
	if p.tickStop != nil {
		close(p.tickStop)
		p.tickStop = nil
	}
}

// tickLoop emits time updates while playing.
func (p *Player) tickLoop(gen uint64, stop <-chan struct{}) {
	ticker := time.NewTicker(p.tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.mu.Lock()
			if gen == p.gen && p.state == Playing && p.ready {
				p.emitLocked(EventTimeUpdate)
			}
			p.mu.Unlock()
		}
	}
}
