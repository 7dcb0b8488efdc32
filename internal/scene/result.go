package scene

import (
	"sort"

	"github.com/tryandaction/Interactive-Optics-Lab-sub001/internal/optics"
	"github.com/tryandaction/Interactive-Optics-Lab-sub001/internal/typeid"
)

type Point struct {
	X Real `json:"x"`
	Y Real `json:"y"`
}

type Ray struct {
	ID           int     `json:"id"`
	ParentID     int     `json:"parentId"`
	SourceID     string  `json:"sourceId"`
	WavelengthNM Real    `json:"wavelengthNm"`
	Intensity    Real    `json:"intensity"`
	Phase        Real    `json:"phase"`
	Polarization string  `json:"polarization"`
	Bounces      int     `json:"bounces"`
	Reason       string  `json:"reason"`
	Path         []Point `json:"path"`
}

type Detection struct {
	ElementID    string `json:"elementId"`
	RayID        int    `json:"rayId"`
	SourceID     string `json:"sourceId"`
	Point        Point  `json:"point"`
	Intensity    Real   `json:"intensity"`
	Signal       Real   `json:"signal"`
	WavelengthNM Real   `json:"wavelengthNm"`
}

// Result is the wire form of a trace pass.
type Result struct {
	PassID     string          `json:"passId"`
	Scene      string          `json:"scene,omitempty"`
	Iterations int             `json:"iterations"`
	CapReached bool            `json:"capReached"`
	Dropped    int             `json:"dropped"`
	Spawned    int             `json:"spawned"`
	Reasons    map[string]int  `json:"reasons"`
	Readouts   map[string]Real `json:"readouts,omitempty"`
	Rays       []Ray           `json:"rays"`
	Detections []Detection     `json:"detections,omitempty"`
}

// NewResult flattens a trace result. An unnamed scene gets a fresh scene id.
func NewResult(name string, r *optics.Result) Result {
	if name == "" {
		name = typeid.NewSceneID()
	}
	out := Result{
		PassID:     r.PassID,
		Scene:      name,
		Iterations: r.Iterations,
		CapReached: r.CapReached,
		Dropped:    r.Dropped,
		Spawned:    r.Stats.Spawned,
		Reasons:    make(map[string]int, len(r.Stats.Reasons)),
		Rays:       make([]Ray, 0, len(r.Rays)),
	}
	for reason, n := range r.Stats.Reasons {
		out.Reasons[string(reason)] = n
	}
	for _, ray := range r.Rays {
		h := ray.History()
		path := make([]Point, len(h))
		for i, p := range h {
			path[i] = Point{p.X, p.Y}
		}
		out.Rays = append(out.Rays, Ray{
			ID:           ray.ID,
			ParentID:     ray.ParentID,
			SourceID:     ray.SourceID,
			WavelengthNM: ray.WavelengthNM,
			Intensity:    ray.Intensity(),
			Phase:        ray.Phase(),
			Polarization: ray.Polarization().String(),
			Bounces:      ray.Bounces,
			Reason:       string(ray.Reason()),
			Path:         path,
		})
	}
	for _, d := range r.Detections {
		if out.Readouts == nil {
			out.Readouts = make(map[string]Real)
		}
		out.Readouts[d.ElementID] += d.Signal
		out.Detections = append(out.Detections, Detection{
			ElementID:    d.ElementID,
			RayID:        d.RayID,
			SourceID:     d.SourceID,
			Point:        Point{d.Point.X, d.Point.Y},
			Intensity:    d.Intensity,
			Signal:       d.Signal,
			WavelengthNM: d.WavelengthNM,
		})
	}
	return out
}

// detectorIDs lists the elements with readouts, sorted.
func (r Result) detectorIDs() []string {
	ids := make([]string, 0, len(r.Readouts))
	for id := range r.Readouts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
