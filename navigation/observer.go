package navigation

// Observer is told about progress along a route. Index is the waypoint's
// position in the route.
type Observer interface {
	WaypointStarted(index int, wp Waypoint)
	WaypointReached(index int, wp Waypoint)
}

type nopObserver struct{}

func (nopObserver) WaypointStarted(int, Waypoint) {}
func (nopObserver) WaypointReached(int, Waypoint) {}

func observerOrNop(o Observer) Observer {
	if o == nil {
		return nopObserver{}
	}
	return o
}
