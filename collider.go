// Package collider is a library for continuous 2D collision detection,
// for use with game development.
//
// Most game engines follow the approach of periodically updating the
// positions of all shapes and checking for collisions at a frozen
// snapshot in time. Continuous collision detection, on the other hand,
// means the time of collision is determined precisely, and the caller
// is not restricted to a fixed time-stepping method. There are two
// kinds of shapes supported: circles and axis-aligned rectangles. The
// caller specifies the positions and velocities of these shapes, which
// can be updated at any time, and Collider solves for the precise
// times of collision and separation.
//
// This avoids the "tunneling" problem in which a fast, small object
// passes through a thin wall (or another fast, small object) between
// two discrete simulation steps without either ever overlapping at a
// sampled instant.
//
// Example:
//
//	c := collider.New[hitbox.BasicProfile](4.0, 0.01)
//
//	hb := hitbox.NewMoving(vec2.NewSquare(2.0).Place(vec2.New(-10, 0)), vec2.New(1, 0))
//	c.AddHitbox(hitbox.BasicProfile{IDValue: 0}, hb)
//
//	hb = hitbox.NewMoving(vec2.NewSquare(2.0).Place(vec2.New(10, 0)), vec2.New(-1, 0))
//	c.AddHitbox(hitbox.BasicProfile{IDValue: 1}, hb)
//
//	for c.Time() < 20.0 {
//	    t := math.Min(c.NextTime(), 20.0)
//	    c.SetTime(t)
//	    if ev, p1, p2, ok := c.Next(); ok {
//	        if ev == collider.Collide {
//	            // halve velocity of both hitboxes
//	        }
//	    }
//	}
//
// Errors:
//
//	ErrHitboxNotFound - a referenced HbId is not currently tracked.
//	ErrDuplicateHitboxID - AddHitbox was called with an already-tracked id.
package collider

import (
	"errors"

	"github.com/vekarion/chronocollide/event"
	"github.com/vekarion/chronocollide/grid"
	"github.com/vekarion/chronocollide/hitbox"
	"github.com/vekarion/chronocollide/solve"
	"github.com/vekarion/chronocollide/vec2"
)

// Sentinel errors backing panics raised by contract violations: a
// misused Collider is a programming error, not a recoverable runtime
// condition, so these are panicked rather than returned, matching the
// fatal-misuse taxonomy used throughout this module.
var (
	// ErrHitboxNotFound indicates an operation referenced an untracked HbId.
	ErrHitboxNotFound = errors.New("collider: hitbox id not found")

	// ErrDuplicateHitboxID indicates AddHitbox was called with an id already tracked.
	ErrDuplicateHitboxID = errors.New("collider: duplicate hitbox id")

	// ErrRewindTime indicates SetTime was called with a time before the current time.
	ErrRewindTime = errors.New("collider: cannot rewind time")

	// ErrTimeBeyondNext indicates SetTime was called with a time past NextTime().
	ErrTimeBeyondNext = errors.New("collider: time must not exceed NextTime()")

	// ErrTimeBeyondHorizon indicates SetTime was called at or beyond HighTime.
	ErrTimeBeyondHorizon = errors.New("collider: time must not reach the scheduling horizon")

	// ErrBadCellWidth indicates New was called with cellWidth <= padding.
	ErrBadCellWidth = errors.New("collider: cellWidth must exceed padding")

	// ErrBadPadding indicates New was called with padding <= 0.
	ErrBadPadding = errors.New("collider: padding must be positive")
)

// HighTime is the scheduling horizon: no event is ever queued at or
// beyond this time, and SetTime refuses to advance to or past it.
const HighTime = event.HighTime

// HbEvent is the kind of event Next reports.
type HbEvent int

const (
	// Collide occurs when two tracked hitboxes start overlapping.
	Collide HbEvent = iota
	// Separate occurs when two tracked, overlapping hitboxes stop
	// overlapping. A second Collide between the same pair cannot occur
	// before a Separate.
	Separate
)

// Option configures a Collider at construction time.
type Option func(*config)

type config struct {
	debug bool
}

// WithDebugChecks enables the debug-build panics from the original
// engine (hitbox shrank below minimum size without an update; a
// hitbox's end time passed without an update). Off by default,
// matching a release build of the original: then no event at all is
// queued for those conditions.
func WithDebugChecks() Option {
	return func(c *config) { c.debug = true }
}

// Collider tracks a set of moving hitboxes and reports the precise
// times at which tracked pairs start (Collide) or stop (Separate)
// overlapping. Time only ever moves forward, driven by the caller via
// SetTime; Collider never advances time on its own.
type Collider[P hitbox.HbProfile] struct {
	hitboxes map[hitbox.HbId]*hitboxInfo[P]
	time     float64
	grid     *grid.Grid
	padding  float64
	events   *event.Queue
	cfg      config
}

// New builds a Collider. cellWidth is the width of the cells used in
// the internal spatial grid; a good default is a width slightly
// larger than most tracked hitboxes. padding is the minimum separation
// distance after a collision before a Separate is reported, guarding
// against false separation events caused by numerical error; hitboxes
// may not have a width or height smaller than padding.
func New[P hitbox.HbProfile](cellWidth, padding float64, opts ...Option) *Collider[P] {
	if cellWidth <= padding {
		panic(ErrBadCellWidth.Error())
	}
	if padding <= 0 {
		panic(ErrBadPadding.Error())
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Collider[P]{
		hitboxes: make(map[hitbox.HbId]*hitboxInfo[P]),
		grid:     grid.New(cellWidth),
		padding:  padding,
		events:   event.New(),
		cfg:      cfg,
	}
}

// Time returns the current simulation time.
func (c *Collider[P]) Time() float64 { return c.time }

// NextTime returns the time at which Next must be called again to
// keep the simulation consistent. Even if NextTime() == Time(), Next
// may still return ok=false, having only processed internal
// bookkeeping. This is a fast, constant-time operation; the result may
// be +Inf.
func (c *Collider[P]) NextTime() float64 { return c.events.PeekTime() }

// SetTime advances the simulation time, implicitly moving every
// tracked hitbox along its velocity. Panics if time precedes Time(),
// exceeds NextTime(), or reaches the scheduling horizon.
func (c *Collider[P]) SetTime(time float64) {
	if time < c.time {
		panic(ErrRewindTime.Error())
	}
	if time > c.NextTime() {
		panic(ErrTimeBeyondNext.Error())
	}
	if time >= HighTime {
		panic(ErrTimeBeyondHorizon.Error())
	}
	c.time = time
}

func (c *Collider[P]) keySetFor(id hitbox.HbId) event.KeySet {
	info, ok := c.hitboxes[id]
	if !ok {
		panic(ErrHitboxNotFound.Error())
	}

	return info.eventKeys
}

// Next processes and returns the next Collide or Separate event, or
// ok=false if no more events occurred exactly at Time() (an internal
// bookkeeping event may still have been processed even when ok is
// false). Always returns ok=false if NextTime() > Time().
func (c *Collider[P]) Next() (ev HbEvent, p1, p2 P, ok bool) {
	for {
		internal, got := c.events.Next(c.time, c.keySetFor)
		if !got {
			var zero P
			return 0, zero, zero, false
		}
		if hbEvent, id1, id2, handled := c.processEvent(internal); handled {
			return hbEvent, c.hitboxes[id1].profile, c.hitboxes[id2].profile, true
		}
	}
}

func (c *Collider[P]) processEvent(ev event.Event) (HbEvent, hitbox.HbId, hitbox.HbId, bool) {
	switch ev.Kind {
	case event.Collide:
		info1 := c.hitboxes[ev.A]
		info2 := c.hitboxes[ev.B]
		c.processCollision(ev.A, info1, ev.B, info2)

		return newHbEvent(Collide, ev.A, ev.B)
	case event.Separate:
		info1 := c.hitboxes[ev.A]
		info2 := c.hitboxes[ev.B]
		if !removeOverlap(info1, ev.B) || !removeOverlap(info2, ev.A) {
			panic("collider: separating pair was not marked as overlapping")
		}
		delay := solve.CollideTime(info1.hitboxAtTime(c.time), info2.hitboxAtTime(c.time))
		c.events.AddPair(c.time+delay, event.Event{Kind: event.Collide, A: ev.A, B: ev.B}, info1.eventKeys, info2.eventKeys)

		return newHbEvent(Separate, ev.A, ev.B)
	case event.Reiterate:
		c.internalUpdateHitbox(ev.A, nil)
		return 0, 0, 0, false
	case event.PanicSmallHitbox:
		panic("collider: hitbox became too small")
	case event.PanicDurationPassed:
		panic("collider: hitbox was not updated before its end time passed")
	default:
		panic("collider: unrecognized internal event")
	}
}

func removeOverlap[P hitbox.HbProfile](info *hitboxInfo[P], id hitbox.HbId) bool {
	if _, ok := info.overlaps[id]; !ok {
		return false
	}
	delete(info.overlaps, id)

	return true
}

func (c *Collider[P]) processCollision(id1 hitbox.HbId, info1 *hitboxInfo[P], id2 hitbox.HbId, info2 *hitboxInfo[P]) {
	info1.overlaps[id2] = struct{}{}
	info2.overlaps[id1] = struct{}{}
	delay := solve.SeparateTime(info1.hitboxAtTime(c.time), info2.hitboxAtTime(c.time), c.padding)
	c.events.AddPair(c.time+delay, event.Event{Kind: event.Separate, A: id1, B: id2}, info1.eventKeys, info2.eventKeys)
}

func newHbEvent(ev HbEvent, id1, id2 hitbox.HbId) (HbEvent, hitbox.HbId, hitbox.HbId, bool) {
	if id1 == id2 {
		panic("collider: ids must be different")
	}
	if id1 > id2 {
		id1, id2 = id2, id1
	}

	return ev, id1, id2, true
}

// GetHitbox returns the current state of the tracked hitbox with the
// given id. Panics if id is not tracked.
func (c *Collider[P]) GetHitbox(id hitbox.HbId) hitbox.Hitbox {
	info, ok := c.hitboxes[id]
	if !ok {
		panic(ErrHitboxNotFound.Error())
	}

	return info.pubHitboxAtTime(c.time)
}

// AddHitbox starts tracking hb under profile. Panics if profile.ID()
// is already tracked. Returns the profiles of any hitboxes hb
// immediately overlapped as it was added; no Collide event is reported
// for those overlaps -- they begin already-overlapping, and a Separate
// event is queued for each so the separation is still reported.
func (c *Collider[P]) AddHitbox(profile P, hb hitbox.Hitbox) []P {
	hb.Validate(c.padding, c.time)
	id := profile.ID()
	if _, exists := c.hitboxes[id]; exists {
		panic(ErrDuplicateHitboxID.Error())
	}

	_, hasGroup := profile.Group()
	info := newHitboxInfo(hb, profile, c.time)
	c.solitaireEventCheck(id, info, hasGroup)
	c.hitboxes[id] = info
	durHb := info.hitbox.ToDurHitbox(c.time)

	return c.updateHitboxTracking(id, info, nil, durHb)
}

// SetHitboxVel changes the velocity of the tracked hitbox with the
// given id, re-deriving its current position/size first so the change
// takes effect from "now" rather than retroactively. A no-op if vel
// already matches the hitbox's current velocity.
func (c *Collider[P]) SetHitboxVel(id hitbox.HbId, vel hitbox.HbVel) {
	info, ok := c.hitboxes[id]
	if !ok {
		panic(ErrHitboxNotFound.Error())
	}
	current := info.hitbox.Vel
	current.EndTime = info.pubEndTime
	if current != vel {
		c.internalUpdateHitbox(id, &vel)
	}
}

func (c *Collider[P]) internalUpdateHitbox(id hitbox.HbId, vel *hitbox.HbVel) {
	info, ok := c.hitboxes[id]
	if !ok {
		panic(ErrHitboxNotFound.Error())
	}
	delete(c.hitboxes, id)

	oldHitbox := info.hitbox.ToDurHitbox(info.startTime)
	info.hitbox = info.pubHitboxAtTime(c.time)
	if vel != nil {
		info.hitbox.Vel = *vel
		info.hitbox.Validate(c.padding, c.time)
	}
	info.startTime = c.time

	_, hasGroup := info.profile.Group()
	c.events.ClearRelated(id, info.eventKeys, c.keySetFor)
	c.solitaireEventCheck(id, info, hasGroup)
	newHitbox := info.hitbox.ToDurHitbox(c.time)
	c.hitboxes[id] = info
	result := c.updateHitboxTracking(id, info, &oldHitbox, newHitbox)
	if len(result) != 0 {
		panic("collider: internal update unexpectedly reported new overlaps")
	}
}

// RemoveHitbox stops tracking the hitbox with the given id. Returns
// the profiles of all hitboxes it was overlapping at the time of
// removal; no Separate events are generated for those overlaps.
func (c *Collider[P]) RemoveHitbox(id hitbox.HbId) []P {
	info, ok := c.hitboxes[id]
	if !ok {
		panic(ErrHitboxNotFound.Error())
	}
	delete(c.hitboxes, id)

	c.events.ClearRelated(id, info.eventKeys, c.keySetFor)
	if group, hasGroup := info.profile.Group(); hasGroup {
		dur := info.hitbox.ToDurHitbox(info.startTime)
		c.grid.UpdateHitbox(id, group, &dur, nil, nil)
	}

	return c.clearOverlaps(id, info)
}

// GetOverlaps returns the profiles of every hitbox currently tracked
// as overlapping the hitbox with the given id. Panics if id is not tracked.
func (c *Collider[P]) GetOverlaps(id hitbox.HbId) []P {
	info, ok := c.hitboxes[id]
	if !ok {
		panic(ErrHitboxNotFound.Error())
	}
	result := make([]P, 0, len(info.overlaps))
	for otherID := range info.overlaps {
		result = append(result, c.hitboxes[otherID].profile)
	}

	return result
}

// IsOverlapping reports whether id1 and id2 are currently tracked as
// overlapping. Returns false (rather than panicking) if id1 is not tracked.
func (c *Collider[P]) IsOverlapping(id1, id2 hitbox.HbId) bool {
	info, ok := c.hitboxes[id1]
	if !ok {
		return false
	}
	_, overlapping := info.overlaps[id2]

	return overlapping
}

// QueryOverlaps returns the profiles of all tracked hitboxes that
// overlap shape and can interact with profile.
func (c *Collider[P]) QueryOverlaps(shape vec2.PlacedShape, profile P) []P {
	candidates := c.grid.ShapeCellmates(shape, profile.InteractGroups())
	result := make([]P, 0, len(candidates))
	for id := range candidates {
		info := c.hitboxes[id]
		if !info.profile.CanInteract(profile) {
			continue
		}
		if !info.pubHitboxAtTime(c.time).Value.Overlaps(shape) {
			continue
		}
		result = append(result, info.profile)
	}

	return result
}

func (c *Collider[P]) updateHitboxTracking(id hitbox.HbId, info *hitboxInfo[P], oldHitbox *solve.DurHitbox, newHitbox solve.DurHitbox) []P {
	var result []P
	if group, hasGroup := info.profile.Group(); hasGroup {
		for otherID := range cloneIDSet(info.overlaps) {
			otherInfo := c.hitboxes[otherID]
			delay := solve.SeparateTime(newHitbox, otherInfo.hitboxAtTime(c.time), c.padding)
			c.events.AddPair(c.time+delay, event.Event{Kind: event.Separate, A: id, B: otherID}, info.eventKeys, otherInfo.eventKeys)
		}

		testIDs := c.grid.UpdateHitbox(id, group, oldHitbox, &newHitbox, info.profile.InteractGroups())
		for otherID := range testIDs {
			if oldHitbox != nil {
				if _, already := info.overlaps[otherID]; already {
					continue
				}
			}
			otherInfo := c.hitboxes[otherID]
			if !info.profile.CanInteract(otherInfo.profile) {
				continue
			}
			delay := solve.CollideTime(newHitbox, otherInfo.hitboxAtTime(c.time))
			if oldHitbox == nil && delay == 0 {
				result = append(result, otherInfo.profile)
				c.processCollision(id, info, otherID, otherInfo)
			} else {
				c.events.AddPair(c.time+delay, event.Event{Kind: event.Collide, A: id, B: otherID}, info.eventKeys, otherInfo.eventKeys)
			}
		}
	}

	return result
}

func cloneIDSet(set map[hitbox.HbId]struct{}) map[hitbox.HbId]struct{} {
	clone := make(map[hitbox.HbId]struct{}, len(set))
	for id := range set {
		clone[id] = struct{}{}
	}

	return clone
}

func (c *Collider[P]) clearOverlaps(id hitbox.HbId, info *hitboxInfo[P]) []P {
	result := make([]P, 0, len(info.overlaps))
	for otherID := range info.overlaps {
		otherInfo := c.hitboxes[otherID]
		if _, ok := otherInfo.overlaps[id]; !ok {
			panic("collider: asymmetric overlap detected while clearing")
		}
		delete(otherInfo.overlaps, id)
		result = append(result, otherInfo.profile)
	}

	return result
}

func (c *Collider[P]) solitaireEventCheck(id hitbox.HbId, info *hitboxInfo[P], hasGroup bool) {
	info.pubEndTime = info.hitbox.Vel.EndTime

	resultTime := c.time + c.grid.CellPeriod(info.hitbox.Vel.MaxEdge(), hasGroup)
	resultEvent := event.Event{Kind: event.Reiterate, A: id}
	debugEvent := false

	if endTime := info.hitbox.Vel.EndTime; endTime < resultTime {
		resultTime, resultEvent, debugEvent = endTime, event.Event{Kind: event.PanicDurationPassed, A: id}, true
	}
	if endTime := c.time + info.hitbox.TimeUntilTooSmall(c.padding); endTime < resultTime {
		resultTime, resultEvent, debugEvent = endTime, event.Event{Kind: event.PanicSmallHitbox, A: id}, true
	}

	info.hitbox.Vel.EndTime = resultTime
	if debugEvent && !c.cfg.debug {
		return
	}
	c.events.AddSolitaire(resultTime, resultEvent, info.eventKeys)
}

// hitboxInfo is the per-hitbox tracking record: the caller's profile,
// the hitbox's current velocity snapshot, the time that snapshot was
// taken, the public end time preserved across internal clamping for
// the solitaire bookkeeping check, the event keys this hitbox owns,
// and the symmetric set of currently-overlapping peer ids.
type hitboxInfo[P hitbox.HbProfile] struct {
	profile    P
	hitbox     hitbox.Hitbox
	startTime  float64
	pubEndTime float64
	eventKeys  event.KeySet
	overlaps   map[hitbox.HbId]struct{}
}

func newHitboxInfo[P hitbox.HbProfile](hb hitbox.Hitbox, profile P, startTime float64) *hitboxInfo[P] {
	return &hitboxInfo[P]{
		profile:    profile,
		hitbox:     hb,
		startTime:  startTime,
		pubEndTime: hb.Vel.EndTime,
		eventKeys:  make(event.KeySet),
		overlaps:   make(map[hitbox.HbId]struct{}),
	}
}

// hitboxAtTime snapshots the hitbox's internal (duration-based) state
// at time, which must lie within [startTime, hitbox.Vel.EndTime] --
// the internal end time may have been clamped tighter than pubEndTime
// by solitaireEventCheck.
func (info *hitboxInfo[P]) hitboxAtTime(time float64) solve.DurHitbox {
	if time < info.startTime || time > info.hitbox.Vel.EndTime {
		panic("collider: time outside hitbox's valid internal range")
	}
	advanced := info.hitbox
	advanced.Value = advanced.AdvancedShape(time - info.startTime)

	return advanced.ToDurHitbox(time)
}

// pubHitboxAtTime returns the hitbox as the caller should see it at
// time, which must lie within [startTime, pubEndTime] -- the
// caller-visible end time, unaffected by the internal clamping
// hitboxAtTime is subject to.
func (info *hitboxInfo[P]) pubHitboxAtTime(time float64) hitbox.Hitbox {
	if time < info.startTime || time > info.pubEndTime {
		panic("collider: time outside hitbox's valid public range")
	}
	result := info.hitbox
	result.Vel.EndTime = info.pubEndTime
	result.Value = result.AdvancedShape(time - info.startTime)

	return result
}
