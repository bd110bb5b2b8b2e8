package actionlib_msgs

import (
	"bytes"
	"encoding/binary"

	"github.com/rosenbergj/autonav/msgs/std_msgs"
	"github.com/rosenbergj/autonav/ros"
)

const (
	PENDING    uint8 = 0
	ACTIVE     uint8 = 1
	PREEMPTED  uint8 = 2
	SUCCEEDED  uint8 = 3
	ABORTED    uint8 = 4
	REJECTED   uint8 = 5
	PREEMPTING uint8 = 6
	RECALLING  uint8 = 7
	RECALLED   uint8 = 8
	LOST       uint8 = 9
)

var statusNames = [...]string{
	"PENDING", "ACTIVE", "PREEMPTED", "SUCCEEDED", "ABORTED",
	"REJECTED", "PREEMPTING", "RECALLING", "RECALLED", "LOST",
}

// StatusString names a goal status value.
func StatusString(status uint8) string {
	if int(status) < len(statusNames) {
		return statusNames[status]
	}
	return "UNKNOWN"
}

type _MsgGoalStatus struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgGoalStatus) Text() string            { return t.text }
func (t *_MsgGoalStatus) Name() string            { return t.name }
func (t *_MsgGoalStatus) MD5Sum() string          { return t.md5sum }
func (t *_MsgGoalStatus) NewMessage() ros.Message { return new(GoalStatus) }

var (
	MsgGoalStatus = &_MsgGoalStatus{
		`GoalID goal_id
uint8 status
uint8 PENDING         = 0   # The goal has yet to be processed by the action server
uint8 ACTIVE          = 1   # The goal is currently being processed by the action server
uint8 PREEMPTED       = 2   # The goal received a cancel request after it started executing
uint8 SUCCEEDED       = 3   # The goal was achieved successfully by the action server (Terminal State)
uint8 ABORTED         = 4   # The goal was aborted during execution by the action server due
uint8 REJECTED        = 5   # The goal was rejected by the action server without being processed
uint8 PREEMPTING      = 6   # The goal received a cancel request after it started executing
uint8 RECALLING       = 7   # The goal received a cancel request before it started executing
uint8 RECALLED        = 8   # The goal received a cancel request before it started executing
uint8 LOST            = 9   # An action client can determine that a goal is LOST. This should not be
string text
`,
		"actionlib_msgs/GoalStatus",
		"d388f9b87b3c471f784434d671988d4a",
	}
)

type GoalStatus struct {
	GoalId GoalID `rosmsg:"goal_id:GoalID"`
	Status uint8  `rosmsg:"status:uint8"`
	Text   string `rosmsg:"text:string"`
}

func (m *GoalStatus) Type() ros.MessageType {
	return MsgGoalStatus
}

func (m *GoalStatus) Serialize(buf *bytes.Buffer) error {
	if err := m.GoalId.Serialize(buf); err != nil {
		return err
	}
	buf.WriteByte(m.Status)
	std_msgs.WriteString(buf, m.Text)
	return nil
}

func (m *GoalStatus) Deserialize(buf *bytes.Reader) error {
	if err := m.GoalId.Deserialize(buf); err != nil {
		return err
	}
	if err := binary.Read(buf, binary.LittleEndian, &m.Status); err != nil {
		return err
	}
	var err error
	m.Text, err = std_msgs.ReadString(buf)
	return err
}

type _MsgGoalStatusArray struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgGoalStatusArray) Text() string            { return t.text }
func (t *_MsgGoalStatusArray) Name() string            { return t.name }
func (t *_MsgGoalStatusArray) MD5Sum() string          { return t.md5sum }
func (t *_MsgGoalStatusArray) NewMessage() ros.Message { return new(GoalStatusArray) }

var (
	MsgGoalStatusArray = &_MsgGoalStatusArray{
		`# Stores the statuses for goals that are currently being tracked
# by an action server
Header header
GoalStatus[] status_list
`,
		"actionlib_msgs/GoalStatusArray",
		"8b2b82f13216d0a8ea88bd3af735e619",
	}
)

type GoalStatusArray struct {
	Header     std_msgs.Header `rosmsg:"header:Header"`
	StatusList []GoalStatus    `rosmsg:"status_list:GoalStatus[]"`
}

func (m *GoalStatusArray) Type() ros.MessageType {
	return MsgGoalStatusArray
}

func (m *GoalStatusArray) Serialize(buf *bytes.Buffer) error {
	if err := m.Header.Serialize(buf); err != nil {
		return err
	}
	binary.Write(buf, binary.LittleEndian, uint32(len(m.StatusList)))
	for i := range m.StatusList {
		if err := m.StatusList[i].Serialize(buf); err != nil {
			return err
		}
	}
	return nil
}

func (m *GoalStatusArray) Deserialize(buf *bytes.Reader) error {
	if err := m.Header.Deserialize(buf); err != nil {
		return err
	}
	var size uint32
	if err := binary.Read(buf, binary.LittleEndian, &size); err != nil {
		return err
	}
	m.StatusList = make([]GoalStatus, 0, minInt(int(size), buf.Len()))
	for i := 0; i < int(size); i++ {
		var status GoalStatus
		if err := status.Deserialize(buf); err != nil {
			return err
		}
		m.StatusList = append(m.StatusList, status)
	}
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
