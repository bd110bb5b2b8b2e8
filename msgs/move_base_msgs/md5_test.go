package move_base_msgs

import (
	"crypto/md5"
	"encoding/hex"
	"testing"

	"github.com/rosenbergj/autonav/msgs/actionlib_msgs"
	"github.com/rosenbergj/autonav/msgs/geometry_msgs"
	"github.com/rosenbergj/autonav/msgs/nav_msgs"
	"github.com/rosenbergj/autonav/msgs/std_msgs"
	"github.com/rosenbergj/autonav/ros"
)

func md5Hex(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}

// The md5 text of a message lists constants, then fields with nested
// message types replaced by their md5 sums.
func TestMD5Sums(t *testing.T) {
	header := std_msgs.MsgHeader.MD5Sum()
	point := geometry_msgs.MsgPoint.MD5Sum()
	quaternion := geometry_msgs.MsgQuaternion.MD5Sum()
	pose := geometry_msgs.MsgPose.MD5Sum()
	poseStamped := geometry_msgs.MsgPoseStamped.MD5Sum()
	vector3 := geometry_msgs.MsgVector3.MD5Sum()
	twist := geometry_msgs.MsgTwist.MD5Sum()
	goalID := actionlib_msgs.MsgGoalID.MD5Sum()
	goalStatus := actionlib_msgs.MsgGoalStatus.MD5Sum()

	cases := []struct {
		msgType ros.MessageType
		md5Text string
	}{
		{std_msgs.MsgHeader, "uint32 seq\ntime stamp\nstring frame_id"},
		{geometry_msgs.MsgPoint, "float64 x\nfloat64 y\nfloat64 z"},
		{geometry_msgs.MsgVector3, "float64 x\nfloat64 y\nfloat64 z"},
		{geometry_msgs.MsgQuaternion, "float64 x\nfloat64 y\nfloat64 z\nfloat64 w"},
		{geometry_msgs.MsgPose, point + " position\n" + quaternion + " orientation"},
		{geometry_msgs.MsgPoseStamped, header + " header\n" + pose + " pose"},
		{geometry_msgs.MsgPoseWithCovariance, pose + " pose\nfloat64[36] covariance"},
		{geometry_msgs.MsgTwist, vector3 + " linear\n" + vector3 + " angular"},
		{geometry_msgs.MsgTwistWithCovariance, twist + " twist\nfloat64[36] covariance"},
		{nav_msgs.MsgOdometry, header + " header\nstring child_frame_id\n" +
			geometry_msgs.MsgPoseWithCovariance.MD5Sum() + " pose\n" +
			geometry_msgs.MsgTwistWithCovariance.MD5Sum() + " twist"},
		{actionlib_msgs.MsgGoalID, "time stamp\nstring id"},
		{actionlib_msgs.MsgGoalStatus, "uint8 PENDING=0\nuint8 ACTIVE=1\nuint8 PREEMPTED=2\n" +
			"uint8 SUCCEEDED=3\nuint8 ABORTED=4\nuint8 REJECTED=5\nuint8 PREEMPTING=6\n" +
			"uint8 RECALLING=7\nuint8 RECALLED=8\nuint8 LOST=9\n" +
			goalID + " goal_id\nuint8 status\nstring text"},
		{actionlib_msgs.MsgGoalStatusArray, header + " header\n" + goalStatus + " status_list"},
		{MsgMoveBaseGoal, poseStamped + " target_pose"},
		{MsgMoveBaseResult, ""},
		{MsgMoveBaseFeedback, poseStamped + " base_position"},
		{MsgMoveBaseActionGoal, header + " header\n" + goalID + " goal_id\n" + MsgMoveBaseGoal.MD5Sum() + " goal"},
		{MsgMoveBaseActionResult, header + " header\n" + goalStatus + " status\n" + MsgMoveBaseResult.MD5Sum() + " result"},
		{MsgMoveBaseActionFeedback, header + " header\n" + goalStatus + " status\n" + MsgMoveBaseFeedback.MD5Sum() + " feedback"},
	}
	for _, c := range cases {
		if expected := md5Hex(c.md5Text); c.msgType.MD5Sum() != expected {
			t.Errorf("%s: md5sum %s, computed %s", c.msgType.Name(), c.msgType.MD5Sum(), expected)
		}
	}

	action := md5Hex(MsgMoveBaseActionGoal.MD5Sum() + " action_goal\n" +
		MsgMoveBaseActionResult.MD5Sum() + " action_result\n" +
		MsgMoveBaseActionFeedback.MD5Sum() + " action_feedback")
	if ActionMoveBase.MD5Sum() != action {
		t.Errorf("%s: md5sum %s, computed %s", ActionMoveBase.Name(), ActionMoveBase.MD5Sum(), action)
	}
}
