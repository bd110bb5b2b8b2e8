package geometry_msgs

import (
	"bytes"
	"encoding/binary"

	"github.com/rosenbergj/autonav/msgs/std_msgs"
	"github.com/rosenbergj/autonav/ros"
)

type _MsgPose struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgPose) Text() string            { return t.text }
func (t *_MsgPose) Name() string            { return t.name }
func (t *_MsgPose) MD5Sum() string          { return t.md5sum }
func (t *_MsgPose) NewMessage() ros.Message { return new(Pose) }

var (
	MsgPose = &_MsgPose{
		`# A representation of pose in free space, composed of position and orientation.
Point position
Quaternion orientation
`,
		"geometry_msgs/Pose",
		"e45d45a5a1ce597b249e23fb30fc871f",
	}
)

type Pose struct {
	Position    Point      `rosmsg:"position:Point"`
	Orientation Quaternion `rosmsg:"orientation:Quaternion"`
}

func (m *Pose) Type() ros.MessageType {
	return MsgPose
}

func (m *Pose) Serialize(buf *bytes.Buffer) error {
	if err := m.Position.Serialize(buf); err != nil {
		return err
	}
	return m.Orientation.Serialize(buf)
}

func (m *Pose) Deserialize(buf *bytes.Reader) error {
	if err := m.Position.Deserialize(buf); err != nil {
		return err
	}
	return m.Orientation.Deserialize(buf)
}

type _MsgPoseStamped struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgPoseStamped) Text() string            { return t.text }
func (t *_MsgPoseStamped) Name() string            { return t.name }
func (t *_MsgPoseStamped) MD5Sum() string          { return t.md5sum }
func (t *_MsgPoseStamped) NewMessage() ros.Message { return new(PoseStamped) }

var (
	MsgPoseStamped = &_MsgPoseStamped{
		`# A Pose with reference coordinate frame and timestamp
Header header
Pose pose
`,
		"geometry_msgs/PoseStamped",
		"d3812c3cbc69362b77dc0b19b345f8f5",
	}
)

type PoseStamped struct {
	Header std_msgs.Header `rosmsg:"header:Header"`
	Pose   Pose            `rosmsg:"pose:Pose"`
}

func (m *PoseStamped) Type() ros.MessageType {
	return MsgPoseStamped
}

func (m *PoseStamped) Serialize(buf *bytes.Buffer) error {
	if err := m.Header.Serialize(buf); err != nil {
		return err
	}
	return m.Pose.Serialize(buf)
}

func (m *PoseStamped) Deserialize(buf *bytes.Reader) error {
	if err := m.Header.Deserialize(buf); err != nil {
		return err
	}
	return m.Pose.Deserialize(buf)
}

type _MsgPoseWithCovariance struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgPoseWithCovariance) Text() string            { return t.text }
func (t *_MsgPoseWithCovariance) Name() string            { return t.name }
func (t *_MsgPoseWithCovariance) MD5Sum() string          { return t.md5sum }
func (t *_MsgPoseWithCovariance) NewMessage() ros.Message { return new(PoseWithCovariance) }

var (
	MsgPoseWithCovariance = &_MsgPoseWithCovariance{
		`# This represents a pose in free space with uncertainty.
Pose pose
float64[36] covariance
`,
		"geometry_msgs/PoseWithCovariance",
		"c23e848cf1b7533a8d7c259073a97e6f",
	}
)

type PoseWithCovariance struct {
	Pose       Pose        `rosmsg:"pose:Pose"`
	Covariance [36]float64 `rosmsg:"covariance:float64[36]"`
}

func (m *PoseWithCovariance) Type() ros.MessageType {
	return MsgPoseWithCovariance
}

func (m *PoseWithCovariance) Serialize(buf *bytes.Buffer) error {
	if err := m.Pose.Serialize(buf); err != nil {
		return err
	}
	return binary.Write(buf, binary.LittleEndian, m.Covariance)
}

func (m *PoseWithCovariance) Deserialize(buf *bytes.Reader) error {
	if err := m.Pose.Deserialize(buf); err != nil {
		return err
	}
	return binary.Read(buf, binary.LittleEndian, &m.Covariance)
}
