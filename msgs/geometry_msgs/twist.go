package geometry_msgs

import (
	"bytes"
	"encoding/binary"

	"github.com/rosenbergj/autonav/ros"
)

type _MsgTwist struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgTwist) Text() string            { return t.text }
func (t *_MsgTwist) Name() string            { return t.name }
func (t *_MsgTwist) MD5Sum() string          { return t.md5sum }
func (t *_MsgTwist) NewMessage() ros.Message { return new(Twist) }

var (
	MsgTwist = &_MsgTwist{
		`# This expresses velocity in free space broken into its linear and angular parts.
Vector3  linear
Vector3  angular
`,
		"geometry_msgs/Twist",
		"9f195f881246fdfa2798d1d3eebca84a",
	}
)

type Twist struct {
	Linear  Vector3 `rosmsg:"linear:Vector3"`
	Angular Vector3 `rosmsg:"angular:Vector3"`
}

func (m *Twist) Type() ros.MessageType {
	return MsgTwist
}

func (m *Twist) Serialize(buf *bytes.Buffer) error {
	if err := m.Linear.Serialize(buf); err != nil {
		return err
	}
	return m.Angular.Serialize(buf)
}

func (m *Twist) Deserialize(buf *bytes.Reader) error {
	if err := m.Linear.Deserialize(buf); err != nil {
		return err
	}
	return m.Angular.Deserialize(buf)
}

type _MsgTwistWithCovariance struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgTwistWithCovariance) Text() string            { return t.text }
func (t *_MsgTwistWithCovariance) Name() string            { return t.name }
func (t *_MsgTwistWithCovariance) MD5Sum() string          { return t.md5sum }
func (t *_MsgTwistWithCovariance) NewMessage() ros.Message { return new(TwistWithCovariance) }

var (
	MsgTwistWithCovariance = &_MsgTwistWithCovariance{
		`# This expresses velocity in free space with uncertainty.
Twist twist
float64[36] covariance
`,
		"geometry_msgs/TwistWithCovariance",
		"1fe8a28e6890a4cc3ae4c3ca5c7d82e6",
	}
)

type TwistWithCovariance struct {
	Twist      Twist       `rosmsg:"twist:Twist"`
	Covariance [36]float64 `rosmsg:"covariance:float64[36]"`
}

func (m *TwistWithCovariance) Type() ros.MessageType {
	return MsgTwistWithCovariance
}

func (m *TwistWithCovariance) Serialize(buf *bytes.Buffer) error {
	if err := m.Twist.Serialize(buf); err != nil {
		return err
	}
	return binary.Write(buf, binary.LittleEndian, m.Covariance)
}

func (m *TwistWithCovariance) Deserialize(buf *bytes.Reader) error {
	if err := m.Twist.Deserialize(buf); err != nil {
		return err
	}
	return binary.Read(buf, binary.LittleEndian, &m.Covariance)
}
