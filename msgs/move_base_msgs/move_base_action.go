package move_base_msgs

import (
	"bytes"

	"github.com/rosenbergj/autonav/actionlib"
	"github.com/rosenbergj/autonav/msgs/actionlib_msgs"
	"github.com/rosenbergj/autonav/msgs/std_msgs"
	"github.com/rosenbergj/autonav/ros"
)

type _MsgMoveBaseActionGoal struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgMoveBaseActionGoal) Text() string            { return t.text }
func (t *_MsgMoveBaseActionGoal) Name() string            { return t.name }
func (t *_MsgMoveBaseActionGoal) MD5Sum() string          { return t.md5sum }
func (t *_MsgMoveBaseActionGoal) NewMessage() ros.Message { return new(MoveBaseActionGoal) }

var (
	MsgMoveBaseActionGoal = &_MsgMoveBaseActionGoal{
		`# ====== DO NOT MODIFY! AUTOGENERATED FROM AN ACTION DEFINITION ======

Header header
actionlib_msgs/GoalID goal_id
MoveBaseGoal goal
`,
		"move_base_msgs/MoveBaseActionGoal",
		"660d6895a1b9a16dce51fbdd9a64a56b",
	}
)

type MoveBaseActionGoal struct {
	Header std_msgs.Header       `rosmsg:"header:Header"`
	GoalId actionlib_msgs.GoalID `rosmsg:"goal_id:GoalID"`
	Goal   MoveBaseGoal          `rosmsg:"goal:MoveBaseGoal"`
}

func (m *MoveBaseActionGoal) Type() ros.MessageType {
	return MsgMoveBaseActionGoal
}

func (m *MoveBaseActionGoal) Serialize(buf *bytes.Buffer) error {
	if err := m.Header.Serialize(buf); err != nil {
		return err
	}
	if err := m.GoalId.Serialize(buf); err != nil {
		return err
	}
	return m.Goal.Serialize(buf)
}

func (m *MoveBaseActionGoal) Deserialize(buf *bytes.Reader) error {
	if err := m.Header.Deserialize(buf); err != nil {
		return err
	}
	if err := m.GoalId.Deserialize(buf); err != nil {
		return err
	}
	return m.Goal.Deserialize(buf)
}

func (m *MoveBaseActionGoal) GetHeader() std_msgs.Header         { return m.Header }
func (m *MoveBaseActionGoal) SetHeader(h std_msgs.Header)        { m.Header = h }
func (m *MoveBaseActionGoal) GetGoalId() actionlib_msgs.GoalID   { return m.GoalId }
func (m *MoveBaseActionGoal) SetGoalId(id actionlib_msgs.GoalID) { m.GoalId = id }
func (m *MoveBaseActionGoal) GetGoal() ros.Message               { return &m.Goal }
func (m *MoveBaseActionGoal) SetGoal(s ros.Message)              { m.Goal = *s.(*MoveBaseGoal) }

type _MsgMoveBaseActionResult struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgMoveBaseActionResult) Text() string            { return t.text }
func (t *_MsgMoveBaseActionResult) Name() string            { return t.name }
func (t *_MsgMoveBaseActionResult) MD5Sum() string          { return t.md5sum }
func (t *_MsgMoveBaseActionResult) NewMessage() ros.Message { return new(MoveBaseActionResult) }

var (
	MsgMoveBaseActionResult = &_MsgMoveBaseActionResult{
		`# ====== DO NOT MODIFY! AUTOGENERATED FROM AN ACTION DEFINITION ======

Header header
actionlib_msgs/GoalStatus status
MoveBaseResult result
`,
		"move_base_msgs/MoveBaseActionResult",
		"1eb06eeff08fa7ea874431638cb52332",
	}
)

type MoveBaseActionResult struct {
	Header std_msgs.Header           `rosmsg:"header:Header"`
	Status actionlib_msgs.GoalStatus `rosmsg:"status:GoalStatus"`
	Result MoveBaseResult            `rosmsg:"result:MoveBaseResult"`
}

func (m *MoveBaseActionResult) Type() ros.MessageType {
	return MsgMoveBaseActionResult
}

func (m *MoveBaseActionResult) Serialize(buf *bytes.Buffer) error {
	if err := m.Header.Serialize(buf); err != nil {
		return err
	}
	if err := m.Status.Serialize(buf); err != nil {
		return err
	}
	return m.Result.Serialize(buf)
}

func (m *MoveBaseActionResult) Deserialize(buf *bytes.Reader) error {
	if err := m.Header.Deserialize(buf); err != nil {
		return err
	}
	if err := m.Status.Deserialize(buf); err != nil {
		return err
	}
	return m.Result.Deserialize(buf)
}

func (m *MoveBaseActionResult) GetHeader() std_msgs.Header            { return m.Header }
func (m *MoveBaseActionResult) SetHeader(h std_msgs.Header)           { m.Header = h }
func (m *MoveBaseActionResult) GetStatus() actionlib_msgs.GoalStatus  { return m.Status }
func (m *MoveBaseActionResult) SetStatus(s actionlib_msgs.GoalStatus) { m.Status = s }
func (m *MoveBaseActionResult) GetResult() ros.Message                { return &m.Result }
func (m *MoveBaseActionResult) SetResult(s ros.Message)               { m.Result = *s.(*MoveBaseResult) }

type _MsgMoveBaseActionFeedback struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgMoveBaseActionFeedback) Text() string            { return t.text }
func (t *_MsgMoveBaseActionFeedback) Name() string            { return t.name }
func (t *_MsgMoveBaseActionFeedback) MD5Sum() string          { return t.md5sum }
func (t *_MsgMoveBaseActionFeedback) NewMessage() ros.Message { return new(MoveBaseActionFeedback) }

var (
	MsgMoveBaseActionFeedback = &_MsgMoveBaseActionFeedback{
		`# ====== DO NOT MODIFY! AUTOGENERATED FROM AN ACTION DEFINITION ======

Header header
actionlib_msgs/GoalStatus status
MoveBaseFeedback feedback
`,
		"move_base_msgs/MoveBaseActionFeedback",
		"7d1870ff6e0decea702b943b5af0b42e",
	}
)

type MoveBaseActionFeedback struct {
	Header   std_msgs.Header           `rosmsg:"header:Header"`
	Status   actionlib_msgs.GoalStatus `rosmsg:"status:GoalStatus"`
	Feedback MoveBaseFeedback          `rosmsg:"feedback:MoveBaseFeedback"`
}

func (m *MoveBaseActionFeedback) Type() ros.MessageType {
	return MsgMoveBaseActionFeedback
}

func (m *MoveBaseActionFeedback) Serialize(buf *bytes.Buffer) error {
	if err := m.Header.Serialize(buf); err != nil {
		return err
	}
	if err := m.Status.Serialize(buf); err != nil {
		return err
	}
	return m.Feedback.Serialize(buf)
}

func (m *MoveBaseActionFeedback) Deserialize(buf *bytes.Reader) error {
	if err := m.Header.Deserialize(buf); err != nil {
		return err
	}
	if err := m.Status.Deserialize(buf); err != nil {
		return err
	}
	return m.Feedback.Deserialize(buf)
}

func (m *MoveBaseActionFeedback) GetHeader() std_msgs.Header            { return m.Header }
func (m *MoveBaseActionFeedback) SetHeader(h std_msgs.Header)           { m.Header = h }
func (m *MoveBaseActionFeedback) GetStatus() actionlib_msgs.GoalStatus  { return m.Status }
func (m *MoveBaseActionFeedback) SetStatus(s actionlib_msgs.GoalStatus) { m.Status = s }
func (m *MoveBaseActionFeedback) GetFeedback() ros.Message              { return &m.Feedback }
func (m *MoveBaseActionFeedback) SetFeedback(s ros.Message)             { m.Feedback = *s.(*MoveBaseFeedback) }

type _ActionMoveBase struct {
	name   string
	md5sum string
}

func (t *_ActionMoveBase) Name() string                  { return t.name }
func (t *_ActionMoveBase) MD5Sum() string                { return t.md5sum }
func (t *_ActionMoveBase) GoalType() ros.MessageType     { return MsgMoveBaseActionGoal }
func (t *_ActionMoveBase) FeedbackType() ros.MessageType { return MsgMoveBaseActionFeedback }
func (t *_ActionMoveBase) ResultType() ros.MessageType   { return MsgMoveBaseActionResult }
func (t *_ActionMoveBase) NewAction() actionlib.Action   { return new(MoveBaseAction) }

var (
	ActionMoveBase = &_ActionMoveBase{
		"move_base_msgs/MoveBaseAction",
		"70b6aca7c7f7746d8d1609ad94c80bb8",
	}
)

type MoveBaseAction struct {
	ActionGoal     MoveBaseActionGoal     `rosmsg:"action_goal:MoveBaseActionGoal"`
	ActionResult   MoveBaseActionResult   `rosmsg:"action_result:MoveBaseActionResult"`
	ActionFeedback MoveBaseActionFeedback `rosmsg:"action_feedback:MoveBaseActionFeedback"`
}

func (a *MoveBaseAction) GetActionGoal() actionlib.ActionGoal         { return &a.ActionGoal }
func (a *MoveBaseAction) GetActionResult() actionlib.ActionResult     { return &a.ActionResult }
func (a *MoveBaseAction) GetActionFeedback() actionlib.ActionFeedback { return &a.ActionFeedback }
