package rosbridge

import (
	"github.com/buger/jsonparser"
	"github.com/rosenbergj/autonav/msgs/actionlib_msgs"
	"github.com/rosenbergj/autonav/msgs/geometry_msgs"
	"github.com/rosenbergj/autonav/msgs/move_base_msgs"
	"github.com/rosenbergj/autonav/msgs/std_msgs"
	"github.com/rosenbergj/autonav/ros"
)

// JSON encodings of the ROS messages, as rosbridge expects them.

type timeJSON struct {
	Secs  uint32 `json:"secs"`
	NSecs uint32 `json:"nsecs"`
}

type headerJSON struct {
	Seq     uint32   `json:"seq"`
	Stamp   timeJSON `json:"stamp"`
	FrameID string   `json:"frame_id"`
}

type pointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type quaternionJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

type poseJSON struct {
	Position    pointJSON      `json:"position"`
	Orientation quaternionJSON `json:"orientation"`
}

type poseStampedJSON struct {
	Header headerJSON `json:"header"`
	Pose   poseJSON   `json:"pose"`
}

type goalIDJSON struct {
	Stamp timeJSON `json:"stamp"`
	ID    string   `json:"id"`
}

type moveBaseGoalJSON struct {
	TargetPose poseStampedJSON `json:"target_pose"`
}

type moveBaseActionGoalJSON struct {
	Header headerJSON       `json:"header"`
	GoalID goalIDJSON       `json:"goal_id"`
	Goal   moveBaseGoalJSON `json:"goal"`
}

func toTimeJSON(t ros.Time) timeJSON {
	return timeJSON{Secs: t.Sec, NSecs: t.NSec}
}

func toHeaderJSON(h std_msgs.Header) headerJSON {
	return headerJSON{Seq: h.Seq, Stamp: toTimeJSON(h.Stamp), FrameID: h.FrameId}
}

func toPoseStampedJSON(p *geometry_msgs.PoseStamped) poseStampedJSON {
	return poseStampedJSON{
		Header: toHeaderJSON(p.Header),
		Pose: poseJSON{
			Position: pointJSON{
				X: p.Pose.Position.X,
				Y: p.Pose.Position.Y,
				Z: p.Pose.Position.Z,
			},
			Orientation: quaternionJSON{
				X: p.Pose.Orientation.X,
				Y: p.Pose.Orientation.Y,
				Z: p.Pose.Orientation.Z,
				W: p.Pose.Orientation.W,
			},
		},
	}
}

func toActionGoalJSON(id actionlib_msgs.GoalID, goal *move_base_msgs.MoveBaseGoal) moveBaseActionGoalJSON {
	return moveBaseActionGoalJSON{
		Header: headerJSON{Stamp: toTimeJSON(id.Stamp)},
		GoalID: goalIDJSON{Stamp: toTimeJSON(id.Stamp), ID: id.Id},
		Goal:   moveBaseGoalJSON{TargetPose: toPoseStampedJSON(&goal.TargetPose)},
	}
}

// parsePosition reads pose.pose.position of a nav_msgs/Odometry message.
func parsePosition(msg []byte) (x, y float64, err error) {
	if x, err = jsonparser.GetFloat(msg, "pose", "pose", "position", "x"); err != nil {
		return 0, 0, err
	}
	if y, err = jsonparser.GetFloat(msg, "pose", "pose", "position", "y"); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// parseGoalStatus reads an actionlib_msgs/GoalStatus object.
func parseGoalStatus(data []byte) (actionlib_msgs.GoalStatus, error) {
	var status actionlib_msgs.GoalStatus
	id, err := jsonparser.GetString(data, "goal_id", "id")
	if err != nil {
		return status, err
	}
	code, err := jsonparser.GetInt(data, "status")
	if err != nil {
		return status, err
	}
	text, _ := jsonparser.GetString(data, "text")

	status.GoalId.Id = id
	status.Status = uint8(code)
	status.Text = text
	return status, nil
}

// parseStatusList reads the status_list of an actionlib_msgs/GoalStatusArray.
func parseStatusList(msg []byte) ([]actionlib_msgs.GoalStatus, error) {
	var list []actionlib_msgs.GoalStatus
	var parseErr error
	_, err := jsonparser.ArrayEach(msg, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if parseErr != nil {
			return
		}
		status, err := parseGoalStatus(value)
		if err != nil {
			parseErr = err
			return
		}
		list = append(list, status)
	}, "status_list")
	if err != nil {
		return nil, err
	}
	return list, parseErr
}

// statusField returns the "status" object of an action result or feedback.
func statusField(msg []byte) []byte {
	value, _, _, err := jsonparser.Get(msg, "status")
	if err != nil {
		return nil
	}
	return value
}
