// Package std_msgs holds the std_msgs message types used by autonav.
package std_msgs

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/rosenbergj/autonav/ros"
)

type _MsgHeader struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgHeader) Text() string {
	return t.text
}

func (t *_MsgHeader) Name() string {
	return t.name
}

func (t *_MsgHeader) MD5Sum() string {
	return t.md5sum
}

func (t *_MsgHeader) NewMessage() ros.Message {
	return new(Header)
}

var (
	MsgHeader = &_MsgHeader{
		`uint32 seq
time stamp
string frame_id
`,
		"std_msgs/Header",
		"2176decaecbce78abc3b96ef049fabed",
	}
)

type Header struct {
	Seq     uint32   `rosmsg:"seq:uint32"`
	Stamp   ros.Time `rosmsg:"stamp:time"`
	FrameId string   `rosmsg:"frame_id:string"`
}

func (m *Header) Type() ros.MessageType {
	return MsgHeader
}

func (m *Header) Serialize(buf *bytes.Buffer) error {
	binary.Write(buf, binary.LittleEndian, m.Seq)
	binary.Write(buf, binary.LittleEndian, m.Stamp.Sec)
	binary.Write(buf, binary.LittleEndian, m.Stamp.NSec)
	WriteString(buf, m.FrameId)
	return nil
}

func (m *Header) Deserialize(buf *bytes.Reader) error {
	if err := binary.Read(buf, binary.LittleEndian, &m.Seq); err != nil {
		return err
	}
	if err := binary.Read(buf, binary.LittleEndian, &m.Stamp.Sec); err != nil {
		return err
	}
	if err := binary.Read(buf, binary.LittleEndian, &m.Stamp.NSec); err != nil {
		return err
	}
	var err error
	m.FrameId, err = ReadString(buf)
	return err
}

// WriteString writes a length prefixed ROS string.
func WriteString(buf *bytes.Buffer, s string) {
	binary.Write(buf, binary.LittleEndian, uint32(len(s)))
	buf.WriteString(s)
}

// ReadString reads a length prefixed ROS string.
func ReadString(buf *bytes.Reader) (string, error) {
	var size uint32
	if err := binary.Read(buf, binary.LittleEndian, &size); err != nil {
		return "", err
	}
	if int64(size) > int64(buf.Len()) {
		return "", io.ErrUnexpectedEOF
	}
	data := make([]byte, int(size))
	if _, err := io.ReadFull(buf, data); err != nil {
		return "", err
	}
	return string(data), nil
}
