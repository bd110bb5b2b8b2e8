// Package move_base_msgs holds the MoveBase action messages.
package move_base_msgs

import (
	"bytes"

	"github.com/rosenbergj/autonav/msgs/geometry_msgs"
	"github.com/rosenbergj/autonav/ros"
)

type _MsgMoveBaseGoal struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgMoveBaseGoal) Text() string            { return t.text }
func (t *_MsgMoveBaseGoal) Name() string            { return t.name }
func (t *_MsgMoveBaseGoal) MD5Sum() string          { return t.md5sum }
func (t *_MsgMoveBaseGoal) NewMessage() ros.Message { return new(MoveBaseGoal) }

var (
	MsgMoveBaseGoal = &_MsgMoveBaseGoal{
		`# ====== DO NOT MODIFY! AUTOGENERATED FROM AN ACTION DEFINITION ======
geometry_msgs/PoseStamped target_pose
`,
		"move_base_msgs/MoveBaseGoal",
		"257d089627d7eb7136c24d3593d05a16",
	}
)

type MoveBaseGoal struct {
	TargetPose geometry_msgs.PoseStamped `rosmsg:"target_pose:PoseStamped"`
}

func (m *MoveBaseGoal) Type() ros.MessageType {
	return MsgMoveBaseGoal
}

func (m *MoveBaseGoal) Serialize(buf *bytes.Buffer) error {
	return m.TargetPose.Serialize(buf)
}

func (m *MoveBaseGoal) Deserialize(buf *bytes.Reader) error {
	return m.TargetPose.Deserialize(buf)
}

type _MsgMoveBaseResult struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgMoveBaseResult) Text() string            { return t.text }
func (t *_MsgMoveBaseResult) Name() string            { return t.name }
func (t *_MsgMoveBaseResult) MD5Sum() string          { return t.md5sum }
func (t *_MsgMoveBaseResult) NewMessage() ros.Message { return new(MoveBaseResult) }

var (
	MsgMoveBaseResult = &_MsgMoveBaseResult{
		`# ====== DO NOT MODIFY! AUTOGENERATED FROM AN ACTION DEFINITION ======
`,
		"move_base_msgs/MoveBaseResult",
		"d41d8cd98f00b204e9800998ecf8427e",
	}
)

// MoveBaseResult has no fields.
type MoveBaseResult struct{}

func (m *MoveBaseResult) Type() ros.MessageType {
	return MsgMoveBaseResult
}

func (m *MoveBaseResult) Serialize(buf *bytes.Buffer) error {
	return nil
}

func (m *MoveBaseResult) Deserialize(buf *bytes.Reader) error {
	return nil
}

type _MsgMoveBaseFeedback struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgMoveBaseFeedback) Text() string            { return t.text }
func (t *_MsgMoveBaseFeedback) Name() string            { return t.name }
func (t *_MsgMoveBaseFeedback) MD5Sum() string          { return t.md5sum }
func (t *_MsgMoveBaseFeedback) NewMessage() ros.Message { return new(MoveBaseFeedback) }

var (
	MsgMoveBaseFeedback = &_MsgMoveBaseFeedback{
		`# ====== DO NOT MODIFY! AUTOGENERATED FROM AN ACTION DEFINITION ======
geometry_msgs/PoseStamped base_position
`,
		"move_base_msgs/MoveBaseFeedback",
		"3fb824c456a757373a226f6d08071bf0",
	}
)

type MoveBaseFeedback struct {
	BasePosition geometry_msgs.PoseStamped `rosmsg:"base_position:PoseStamped"`
}

func (m *MoveBaseFeedback) Type() ros.MessageType {
	return MsgMoveBaseFeedback
}

func (m *MoveBaseFeedback) Serialize(buf *bytes.Buffer) error {
	return m.BasePosition.Serialize(buf)
}

func (m *MoveBaseFeedback) Deserialize(buf *bytes.Reader) error {
	return m.BasePosition.Deserialize(buf)
}
