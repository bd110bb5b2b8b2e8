// Package actionlib_msgs holds the actionlib_msgs message types.
package actionlib_msgs

import (
	"bytes"
	"encoding/binary"

	"github.com/rosenbergj/autonav/msgs/std_msgs"
	"github.com/rosenbergj/autonav/ros"
)

type _MsgGoalID struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgGoalID) Text() string            { return t.text }
func (t *_MsgGoalID) Name() string            { return t.name }
func (t *_MsgGoalID) MD5Sum() string          { return t.md5sum }
func (t *_MsgGoalID) NewMessage() ros.Message { return new(GoalID) }

var (
	MsgGoalID = &_MsgGoalID{
		`# The stamp should store the time at which this goal was requested.
# It is used by an action server when it tries to preempt all
# goals that were requested before a certain time
time stamp

# The id provides a way to associate feedback and
# result message with specific goal requests. The id
# specified must be unique.
string id
`,
		"actionlib_msgs/GoalID",
		"302881f31927c1df708a2dbab0e80ee8",
	}
)

type GoalID struct {
	Stamp ros.Time `rosmsg:"stamp:time"`
	Id    string   `rosmsg:"id:string"`
}

func (m *GoalID) Type() ros.MessageType {
	return MsgGoalID
}

func (m *GoalID) Serialize(buf *bytes.Buffer) error {
	binary.Write(buf, binary.LittleEndian, m.Stamp.Sec)
	binary.Write(buf, binary.LittleEndian, m.Stamp.NSec)
	std_msgs.WriteString(buf, m.Id)
	return nil
}

func (m *GoalID) Deserialize(buf *bytes.Reader) error {
	if err := binary.Read(buf, binary.LittleEndian, &m.Stamp.Sec); err != nil {
		return err
	}
	if err := binary.Read(buf, binary.LittleEndian, &m.Stamp.NSec); err != nil {
		return err
	}
	var err error
	m.Id, err = std_msgs.ReadString(buf)
	return err
}
