package optics

import "math"

// Result is the outcome of one trace pass.
type Result struct {
	PassID     string
	Rays       []*Ray // completed rays, in completion order
	Detections []Detection
	Iterations int
	CapReached bool
	Dropped    int // rays still queued when the cap stopped the pass
	Stats      Stats
}

// Readout sums the detector signal recorded for elementID.
func (r *Result) Readout(elementID string) Real { return readout(r.Detections, elementID) }

// BySource returns the completed rays emitted (directly or not) by sourceID.
func (r *Result) BySource(sourceID string) []*Ray {
	var out []*Ray
	for _, ray := range r.Rays {
		if ray.SourceID == sourceID {
			out = append(out, ray)
		}
	}
	return out
}

type culled struct {
	e      Element
	box    Rect
	always bool // no usable bounds
}

// tracer holds the per-pass working state.
type tracer struct {
	p        *Pass
	elements []culled
	diagonal Real
	queue    []*Ray
	done     []*Ray
	nextID   int
}

// Trace runs one pass: it seeds a FIFO queue from sources (every Source in
// elements when sources is nil), propagates until the queue drains or the
// iteration cap is hit, and returns the completed rays. Elements are queried
// in slice order and the first one wins ties on hit distance.
func Trace(elements []Element, sources []Source, cfg TraceConfig) *Result {
	p := NewPass(cfg)
	return p.Trace(elements, sources)
}

// Trace runs the pass p over elements. A Pass must not be reused.
func (p *Pass) Trace(elements []Element, sources []Source) *Result {
	if sources == nil {
		sources = Sources(elements)
	}
	t := &tracer{p: p, elements: make([]culled, 0, len(elements))}
	scene := emptyRect()
	for _, e := range elements {
		b := e.Bounds()
		t.elements = append(t.elements, culled{e: e, box: b.Expand(HitEpsilon), always: b.IsEmpty()})
		if b.IsEmpty() {
			DebugLogOnce("element %s (%s) has no bounds, tested against every ray", e.ID(), e.Kind())
		}
		scene = scene.Union(b)
	}
	for _, s := range sources {
		for _, r := range s.GenerateRays(p) {
			scene = scene.AddPoint(r.Origin())
			t.push(r)
		}
	}
	if p.Config.Bounds != nil {
		scene = *p.Config.Bounds
	}
	t.diagonal = math.Max(scene.Diagonal(), DefaultSceneDiagonal)
	return t.run()
}

func (t *tracer) push(r *Ray) {
	r.ID = t.nextID
	t.nextID++
	t.queue = append(t.queue, r)
}

func (t *tracer) complete(r *Ray) {
	t.done = append(t.done, r)
	t.p.Stats.complete(r)
}

func (t *tracer) run() *Result {
	cfg := t.p.Config
	it := 0
	for len(t.queue) > 0 && it < cfg.MaxIterations {
		it++
		r := t.queue[0]
		t.queue[0] = nil
		t.queue = t.queue[1:]
		if t.sanitize(r); r.Terminated() {
			t.complete(r)
			continue
		}
		e, h, ok := t.nearest(r)
		if !ok {
			r.AppendPoint(r.Origin().Add(r.Direction().Mul(2 * t.diagonal)))
			r.Terminate(ReasonNoIntersection)
			t.complete(r)
			continue
		}
		r.AppendPoint(h.Point)
		DebugLog("ray %d hits %s (%s) at %v, d=%.6g surface=%d", r.ID, e.ID(), e.Kind(), h.Point, h.Distance, h.SurfaceID)
		kids := e.Interact(r, h, t.p)
		if !r.Terminated() {
			t.p.Logger.Warn("element left its input ray live", "element", e.ID(), "kind", e.Kind(), "ray", r.ID)
			r.Terminate(ReasonInteracted)
		}
		for _, c := range kids {
			if c == nil || c == r {
				continue
			}
			t.p.Stats.Spawned++
			t.push(c)
		}
		t.complete(r)
	}
	res := &Result{
		PassID:     t.p.ID,
		Rays:       t.done,
		Detections: t.p.Detections,
		Iterations: it,
		Stats:      t.p.Stats,
	}
	if len(t.queue) > 0 {
		res.CapReached = true
		res.Dropped = len(t.queue)
		t.p.Logger.Warn("trace iteration cap reached", "iterations", it, "dropped", res.Dropped, "completed", len(t.done))
	}
	t.p.Logger.Debug("trace pass done", "iterations", it, "stats", t.p.Stats.String())
	return res
}

// sanitize terminates rays that must not propagate further.
func (t *tracer) sanitize(r *Ray) {
	if r.Terminated() {
		return
	}
	switch {
	case r.hasNaN():
		r.Terminate(ReasonNaN)
	case r.Bounces >= t.p.Config.MaxBounces:
		r.Terminate(ReasonMaxBounces)
	case t.p.faint(r, r.Intensity()):
		r.Terminate(ReasonLowIntensity)
	}
}

// nearest returns the closest hit over all elements. A later element only
// wins with a strictly smaller distance.
func (t *tracer) nearest(r *Ray) (Element, Hit, bool) {
	o, d := r.Origin(), r.Direction()
	rr := newRayRecips(d)
	var (
		best  Hit
		owner Element
		found bool
	)
	for _, c := range t.elements {
		if !c.always {
			reach, entry := rayRect(o, c.box, rr)
			if !reach || (found && entry > best.Distance) {
				continue
			}
		}
		h, ok := nearest(c.e.Intersect(o, d))
		if !ok {
			continue
		}
		if !found || h.Distance < best.Distance {
			best, owner, found = h, c.e, true
		}
	}
	return owner, best, found
}
