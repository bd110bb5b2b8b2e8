package navigation

import (
	"math"
	"sync"

	"github.com/rosenbergj/autonav/msgs/nav_msgs"
)

// Position is a planar robot position as reported by odometry.
type Position struct {
	X float64
	Y float64
}

// Distance is the straight line distance between a and b.
func Distance(a, b Position) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Reached reports whether pos is within threshold of target. Only x and y
// are compared.
func Reached(pos Position, target Waypoint, threshold float64) bool {
	return Distance(pos, target.Position()) <= threshold
}

// OdometrySource supplies the robot's last known position.
type OdometrySource interface {
	Load() Position
	// Updates is signalled after each new position.
	Updates() <-chan struct{}
}

// PositionCell holds the last position reported by odometry. It reads as
// the origin until the first update arrives.
type PositionCell struct {
	mutex   sync.RWMutex
	pos     Position
	seen    bool
	updates chan struct{}
}

func NewPositionCell() *PositionCell {
	return &PositionCell{updates: make(chan struct{}, 1)}
}

func (c *PositionCell) Store(pos Position) {
	c.mutex.Lock()
	c.pos = pos
	c.seen = true
	c.mutex.Unlock()

	select {
	case c.updates <- struct{}{}:
	default:
	}
}

func (c *PositionCell) Load() Position {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.pos
}

// Received reports whether any position has been stored.
func (c *PositionCell) Received() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.seen
}

func (c *PositionCell) Updates() <-chan struct{} {
	return c.updates
}

// OnOdometry is a subscriber callback for nav_msgs/Odometry.
func (c *PositionCell) OnOdometry(msg *nav_msgs.Odometry) {
	c.Store(Position{X: msg.Pose.Pose.Position.X, Y: msg.Pose.Pose.Position.Y})
}
