package navigation

import (
	"github.com/rosenbergj/autonav/msgs/geometry_msgs"
	"github.com/rosenbergj/autonav/msgs/move_base_msgs"
	"github.com/rosenbergj/autonav/ros"
)

// PoseStamped builds the target pose for wp in the route's frame.
func (r Route) PoseStamped(wp Waypoint, stamp ros.Time) *geometry_msgs.PoseStamped {
	pose := &geometry_msgs.PoseStamped{}
	pose.Header.FrameId = r.FrameID
	pose.Header.Stamp = stamp
	pose.Pose.Position = geometry_msgs.Point{X: wp.X, Y: wp.Y, Z: wp.Z}
	pose.Pose.Orientation = geometry_msgs.Quaternion{
		X: r.Orientation.X,
		Y: r.Orientation.Y,
		Z: r.Orientation.Z,
		W: r.Orientation.W,
	}
	return pose
}

func (r Route) MoveBaseGoal(wp Waypoint, stamp ros.Time) *move_base_msgs.MoveBaseGoal {
	return &move_base_msgs.MoveBaseGoal{TargetPose: *r.PoseStamped(wp, stamp)}
}
