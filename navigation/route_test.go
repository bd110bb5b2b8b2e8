package navigation

import (
	"math"
	"testing"

	"github.com/rosenbergj/autonav/ros"
)

func TestDefaultRoute(t *testing.T) {
	route := DefaultRoute()
	if err := route.Validate(); err != nil {
		t.Fatal(err)
	}

	expected := []Waypoint{
		{-1.45, 0.582, 0},
		{5.01, -0.847, 0},
		{5.75, -7.92, 0},
		{9.71, 2.44, 0},
		{-1.45, 0.582, 0},
	}
	if len(route.Waypoints) != len(expected) {
		t.Fatalf("expected %d waypoints but %d", len(expected), len(route.Waypoints))
	}
	for i, wp := range route.Waypoints {
		if wp != expected[i] {
			t.Errorf("waypoint %d: expected %+v but %+v", i, expected[i], wp)
		}
	}
	if route.Orientation != (Orientation{W: 1}) || route.FrameID != "map" {
		t.Errorf("unexpected orientation %+v frame %q", route.Orientation, route.FrameID)
	}
}

func TestValidate(t *testing.T) {
	if err := (Route{FrameID: "map"}).Validate(); err != ErrEmptyRoute {
		t.Errorf("expected ErrEmptyRoute but %v", err)
	}
	if err := (Route{Waypoints: []Waypoint{{}}}).Validate(); err == nil {
		t.Error("expected error for a route without frame")
	}
	for _, wp := range []Waypoint{{X: math.NaN()}, {Y: math.Inf(1)}, {Z: math.Inf(-1)}} {
		route := Route{Waypoints: []Waypoint{{}, wp}, Orientation: IdentityOrientation, FrameID: "map"}
		if err := route.Validate(); err == nil {
			t.Errorf("expected error for waypoint %+v", wp)
		}
	}
	route := DefaultRoute()
	route.Orientation.W = math.NaN()
	if err := route.Validate(); err == nil {
		t.Error("expected error for a NaN orientation")
	}
}

func TestPoseStamped(t *testing.T) {
	route := DefaultRoute()
	stamp := ros.NewTime(100, 5)
	pose := route.PoseStamped(route.Waypoints[1], stamp)

	if pose.Header.FrameId != "map" || pose.Header.Stamp != stamp {
		t.Errorf("unexpected header %+v", pose.Header)
	}
	if pose.Pose.Position.X != 5.01 || pose.Pose.Position.Y != -0.847 || pose.Pose.Position.Z != 0 {
		t.Errorf("unexpected position %+v", pose.Pose.Position)
	}
	if pose.Pose.Orientation.W != 1 || pose.Pose.Orientation.X != 0 {
		t.Errorf("unexpected orientation %+v", pose.Pose.Orientation)
	}

	goal := route.MoveBaseGoal(route.Waypoints[1], stamp)
	if goal.TargetPose != *pose {
		t.Errorf("goal %+v differs from pose %+v", goal.TargetPose, *pose)
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(Position{0, 0}, Position{3, 4}); d != 5 {
		t.Errorf("expected 5 but %v", d)
	}
	if d := Distance(Position{-1.45, 0.582}, Position{-1.45, 0.582}); d != 0 {
		t.Errorf("expected 0 but %v", d)
	}
	if d := Distance(Position{1, 1}, Position{0, 0}); math.Abs(d-math.Sqrt2) > 1e-12 {
		t.Errorf("expected sqrt(2) but %v", d)
	}
}

func TestReached(t *testing.T) {
	target := Waypoint{X: 0, Y: 0, Z: 3}
	cases := []struct {
		pos      Position
		expected bool
	}{
		{Position{0, 0}, true},
		{Position{0.05, 0}, true},
		{Position{0, -0.05}, true},
		{Position{0.0500001, 0}, false},
		{Position{0.04, 0.04}, false},
		{Position{5, 5}, false},
	}
	for _, c := range cases {
		if got := Reached(c.pos, target, 0.05); got != c.expected {
			t.Errorf("Reached(%+v): expected %v", c.pos, c.expected)
		}
	}
}
