package memengine

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"artbind/internal/domain"
	"artbind/internal/ports"
)

// Timeline animates one numeric or color property of the bound ViewModel.
// The starting value is whatever the property holds on the first Advance.
type Timeline struct {
	Path     string
	To       any
	Duration float64
	Ease     string
	Loop     bool
}

var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inquad":     ease.InQuad,
	"outquad":    ease.OutQuad,
	"inoutquad":  ease.InOutQuad,
	"incubic":    ease.InCubic,
	"outcubic":   ease.OutCubic,
	"inoutcubic": ease.InOutCubic,
	"insine":     ease.InSine,
	"outsine":    ease.OutSine,
	"inoutsine":  ease.InOutSine,
	"inexpo":     ease.InExpo,
	"outexpo":    ease.OutExpo,
	"outback":    ease.OutBack,
	"outbounce":  ease.OutBounce,
	"outelastic": ease.OutElastic,
}

// ParseEase returns the easing function for name. Case, '-' and '_' are
// ignored; an empty name is linear.
func ParseEase(name string) (ease.TweenFunc, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(name))
	if key == "" {
		return ease.Linear, nil
	}
	fn, ok := easings[key]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return fn, nil
}

// Artboard advances the timelines of an animation
type Artboard struct {
	name string
	vm   *ViewModel
	log  *slog.Logger

	mu      sync.Mutex
	pending []Timeline
	running []*tweenGroup
	elapsed float64
}

var _ ports.Artboard = (*Artboard)(nil)

// NewArtboard creates an artboard driving timelines over vm. vm may be nil
// for an artboard without data binding.
func NewArtboard(name string, vm *ViewModel, timelines ...Timeline) *Artboard {
	return &Artboard{name: name, vm: vm, log: slog.Default(), pending: timelines}
}

// SetLogger replaces the logger used to report timelines that cannot run
func (a *Artboard) SetLogger(log *slog.Logger) {
	if log != nil {
		a.log = log
	}
}

func (a *Artboard) Name() string { return a.name }

// Elapsed returns the total advanced time in seconds
func (a *Artboard) Elapsed() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.elapsed
}

// Advance moves every timeline forward by dt seconds and writes the eased
// values to their properties. It reports whether a timeline is still
// running; looping timelines always are.
func (a *Artboard) Advance(dt float64) bool {
	a.mu.Lock()
	if dt > 0 {
		a.elapsed += dt
	}
	a.start()
	groups := a.running
	a.mu.Unlock()

	active := false
	var live []*tweenGroup
	for _, g := range groups {
		done, err := g.update(float32(dt))
		if err != nil {
			a.log.Warn("stopping timeline", "artboard", a.name, "path", g.path, "error", err)
			continue
		}
		if !done {
			active = true
			live = append(live, g)
		}
	}

	a.mu.Lock()
	a.running = live
	a.mu.Unlock()
	return active
}

// start turns pending timelines into tween groups. Caller holds a.mu.
func (a *Artboard) start() {
	if len(a.pending) == 0 || a.vm == nil {
		return
	}
	for _, tl := range a.pending {
		g, err := newTweenGroup(a.vm, tl)
		if err != nil {
			a.log.Warn("skipping timeline", "artboard", a.name, "path", tl.Path, "error", err)
			continue
		}
		a.running = append(a.running, g)
	}
	a.pending = nil
}

// tweenGroup animates up to four channels of one property
type tweenGroup struct {
	path   string
	tweens []*gween.Tween
	loop   bool
	write  func(vals []float32) error
}

func newTweenGroup(vm *ViewModel, tl Timeline) (*tweenGroup, error) {
	fn, err := ParseEase(tl.Ease)
	if err != nil {
		return nil, err
	}
	p, err := vm.resolve(tl.Path)
	if err != nil {
		return nil, err
	}
	d := float32(tl.Duration)
	g := &tweenGroup{path: tl.Path, loop: tl.Loop}

	switch h := p.handle.(type) {
	case *valueProp[float64]:
		to, ok := domain.ToFloat(tl.To)
		if !ok {
			return nil, fmt.Errorf("%s: target %v is not a number", tl.Path, tl.To)
		}
		g.tweens = []*gween.Tween{gween.New(float32(h.Value()), float32(to), d, fn)}
		round := p.kind != domain.KindNumber
		g.write = func(vals []float32) error {
			v := float64(vals[0])
			if round {
				v = math.Round(v)
			}
			return h.SetValue(v)
		}

	case *valueProp[domain.Color]:
		to, err := domain.ParseColor(tl.To)
		if err != nil {
			return nil, err
		}
		from := h.Value()
		g.tweens = []*gween.Tween{
			gween.New(float32(from.R), float32(to.R), d, fn),
			gween.New(float32(from.G), float32(to.G), d, fn),
			gween.New(float32(from.B), float32(to.B), d, fn),
			gween.New(float32(from.A), float32(to.A), d, fn),
		}
		g.write = func(vals []float32) error {
			return h.SetValue(domain.Color{
				R: channel(vals[0]),
				G: channel(vals[1]),
				B: channel(vals[2]),
				A: channel(vals[3]),
			})
		}

	default:
		return nil, fmt.Errorf("%s: %s properties cannot be animated", tl.Path, p.kind)
	}
	return g, nil
}

// update advances the group and reports whether it finished. A failed
// property write is returned and ends the group.
func (g *tweenGroup) update(dt float32) (bool, error) {
	vals := make([]float32, len(g.tweens))
	done := true
	for i, t := range g.tweens {
		v, finished := t.Update(dt)
		vals[i] = v
		if !finished {
			done = false
		}
	}
	if err := g.write(vals); err != nil {
		return true, err
	}

	if done && g.loop {
		for _, t := range g.tweens {
			t.Reset()
		}
		return false, nil
	}
	return done, nil
}

func channel(v float32) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(float64(v)))))
}
