// Package navigation drives a robot through an ordered list of waypoints,
// either through the move_base action or by republishing a simple goal
// until odometry reports arrival.
package navigation

import (
	"math"

	"github.com/pkg/errors"
)

// ErrEmptyRoute is returned for a route with no waypoints.
var ErrEmptyRoute = errors.New("route has no waypoints")

// DefaultFrameID is the frame every goal is expressed in.
const DefaultFrameID = "map"

type Waypoint struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
	Z float64 `yaml:"z" toml:"z"`
}

// Position is the planar part of the waypoint.
func (w Waypoint) Position() Position {
	return Position{X: w.X, Y: w.Y}
}

type Orientation struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
	Z float64 `yaml:"z" toml:"z"`
	W float64 `yaml:"w" toml:"w"`
}

// IdentityOrientation is the unit quaternion with no rotation.
var IdentityOrientation = Orientation{W: 1}

// Route is an ordered list of waypoints sharing one orientation and frame.
type Route struct {
	Waypoints   []Waypoint
	Orientation Orientation
	FrameID     string
}

// DefaultRoute is the lab tour: start corner, the area before the door,
// the hallway to the right, the hallway to the left and back to the start.
func DefaultRoute() Route {
	return Route{
		Waypoints: []Waypoint{
			{X: -1.45, Y: 0.582, Z: 0},
			{X: 5.01, Y: -0.847, Z: 0},
			{X: 5.75, Y: -7.92, Z: 0},
			{X: 9.71, Y: 2.44, Z: 0},
			{X: -1.45, Y: 0.582, Z: 0},
		},
		Orientation: IdentityOrientation,
		FrameID:     DefaultFrameID,
	}
}

func (r Route) Validate() error {
	if len(r.Waypoints) == 0 {
		return ErrEmptyRoute
	}
	if r.FrameID == "" {
		return errors.New("route has no frame id")
	}
	for i, wp := range r.Waypoints {
		if !finite(wp.X) || !finite(wp.Y) || !finite(wp.Z) {
			return errors.Errorf("waypoint %d is not finite: %+v", i, wp)
		}
	}
	o := r.Orientation
	if !finite(o.X) || !finite(o.Y) || !finite(o.Z) || !finite(o.W) {
		return errors.Errorf("orientation is not finite: %+v", o)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
