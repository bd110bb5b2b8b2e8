package move_base_msgs

import (
	"bytes"
	"testing"

	"github.com/rosenbergj/autonav/actionlib"
	"github.com/rosenbergj/autonav/msgs/actionlib_msgs"
	"github.com/rosenbergj/autonav/ros"
)

var (
	_ actionlib.ActionType     = ActionMoveBase
	_ actionlib.ActionGoal     = &MoveBaseActionGoal{}
	_ actionlib.ActionResult   = &MoveBaseActionResult{}
	_ actionlib.ActionFeedback = &MoveBaseActionFeedback{}
)

func TestActionGoalAccessors(t *testing.T) {
	ag := ActionMoveBase.GoalType().NewMessage().(actionlib.ActionGoal)

	goal := &MoveBaseGoal{}
	goal.TargetPose.Header.FrameId = "map"
	goal.TargetPose.Pose.Position.X = 5.01
	goal.TargetPose.Pose.Orientation.W = 1
	ag.SetGoal(goal)
	ag.SetGoalId(actionlib_msgs.GoalID{Id: "/auto_navigation-1-10-20", Stamp: ros.NewTime(10, 20)})

	var buf bytes.Buffer
	if err := ag.Serialize(&buf); err != nil {
		t.Fatal(err)
	}
	decoded := new(MoveBaseActionGoal)
	if err := decoded.Deserialize(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatal(err)
	}
	if decoded.GoalId.Id != "/auto_navigation-1-10-20" {
		t.Error(decoded.GoalId.Id)
	}
	target := decoded.GetGoal().(*MoveBaseGoal).TargetPose
	if target.Header.FrameId != "map" || target.Pose.Position.X != 5.01 || target.Pose.Orientation.W != 1 {
		t.Errorf("unexpected target %+v", target)
	}
}

func TestActionResultDecode(t *testing.T) {
	result := &MoveBaseActionResult{}
	result.Status.GoalId.Id = "g1"
	result.Status.Status = actionlib_msgs.ABORTED
	result.Status.Text = "Failed to find a valid plan."

	var buf bytes.Buffer
	result.Serialize(&buf)

	decoded := ActionMoveBase.ResultType().NewMessage().(actionlib.ActionResult)
	if err := decoded.Deserialize(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatal(err)
	}
	status := decoded.GetStatus()
	if status.GoalId.Id != "g1" || status.Status != actionlib_msgs.ABORTED || status.Text != "Failed to find a valid plan." {
		t.Errorf("unexpected status %+v", status)
	}
	if _, ok := decoded.GetResult().(*MoveBaseResult); !ok {
		t.Errorf("result is %T", decoded.GetResult())
	}
}
