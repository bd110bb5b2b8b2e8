// Package geometry_msgs holds the geometry_msgs message types used by autonav.
package geometry_msgs

import (
	"bytes"
	"encoding/binary"

	"github.com/rosenbergj/autonav/ros"
)

type _MsgPoint struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgPoint) Text() string            { return t.text }
func (t *_MsgPoint) Name() string            { return t.name }
func (t *_MsgPoint) MD5Sum() string          { return t.md5sum }
func (t *_MsgPoint) NewMessage() ros.Message { return new(Point) }

var (
	MsgPoint = &_MsgPoint{
		`# This contains the position of a point in free space
float64 x
float64 y
float64 z
`,
		"geometry_msgs/Point",
		"4a842b65f413084dc2b10fb484ea7f17",
	}
)

type Point struct {
	X float64 `rosmsg:"x:float64"`
	Y float64 `rosmsg:"y:float64"`
	Z float64 `rosmsg:"z:float64"`
}

func (m *Point) Type() ros.MessageType {
	return MsgPoint
}

func (m *Point) Serialize(buf *bytes.Buffer) error {
	return binary.Write(buf, binary.LittleEndian, [3]float64{m.X, m.Y, m.Z})
}

func (m *Point) Deserialize(buf *bytes.Reader) error {
	var v [3]float64
	if err := binary.Read(buf, binary.LittleEndian, &v); err != nil {
		return err
	}
	m.X, m.Y, m.Z = v[0], v[1], v[2]
	return nil
}

type _MsgVector3 struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgVector3) Text() string            { return t.text }
func (t *_MsgVector3) Name() string            { return t.name }
func (t *_MsgVector3) MD5Sum() string          { return t.md5sum }
func (t *_MsgVector3) NewMessage() ros.Message { return new(Vector3) }

var (
	MsgVector3 = &_MsgVector3{
		`# This represents a vector in free space.
float64 x
float64 y
float64 z
`,
		"geometry_msgs/Vector3",
		"4a842b65f413084dc2b10fb484ea7f17",
	}
)

type Vector3 struct {
	X float64 `rosmsg:"x:float64"`
	Y float64 `rosmsg:"y:float64"`
	Z float64 `rosmsg:"z:float64"`
}

func (m *Vector3) Type() ros.MessageType {
	return MsgVector3
}

func (m *Vector3) Serialize(buf *bytes.Buffer) error {
	return binary.Write(buf, binary.LittleEndian, [3]float64{m.X, m.Y, m.Z})
}

func (m *Vector3) Deserialize(buf *bytes.Reader) error {
	var v [3]float64
	if err := binary.Read(buf, binary.LittleEndian, &v); err != nil {
		return err
	}
	m.X, m.Y, m.Z = v[0], v[1], v[2]
	return nil
}

type _MsgQuaternion struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgQuaternion) Text() string            { return t.text }
func (t *_MsgQuaternion) Name() string            { return t.name }
func (t *_MsgQuaternion) MD5Sum() string          { return t.md5sum }
func (t *_MsgQuaternion) NewMessage() ros.Message { return new(Quaternion) }

var (
	MsgQuaternion = &_MsgQuaternion{
		`# This represents an orientation in free space in quaternion form.
float64 x
float64 y
float64 z
float64 w
`,
		"geometry_msgs/Quaternion",
		"a779879fadf0160734f906b8c19c7004",
	}
)

type Quaternion struct {
	X float64 `rosmsg:"x:float64"`
	Y float64 `rosmsg:"y:float64"`
	Z float64 `rosmsg:"z:float64"`
	W float64 `rosmsg:"w:float64"`
}

func (m *Quaternion) Type() ros.MessageType {
	return MsgQuaternion
}

func (m *Quaternion) Serialize(buf *bytes.Buffer) error {
	return binary.Write(buf, binary.LittleEndian, [4]float64{m.X, m.Y, m.Z, m.W})
}

func (m *Quaternion) Deserialize(buf *bytes.Reader) error {
	var v [4]float64
	if err := binary.Read(buf, binary.LittleEndian, &v); err != nil {
		return err
	}
	m.X, m.Y, m.Z, m.W = v[0], v[1], v[2], v[3]
	return nil
}
