package std_msgs

import (
	"bytes"
	"testing"

	"github.com/rosenbergj/autonav/ros"
)

func TestHeaderWireFormat(t *testing.T) {
	h := Header{Seq: 7, Stamp: ros.NewTime(1, 2), FrameId: "map"}
	var buf bytes.Buffer
	if err := h.Serialize(&buf); err != nil {
		t.Fatal(err)
	}
	expected := []byte{
		7, 0, 0, 0,
		1, 0, 0, 0,
		2, 0, 0, 0,
		3, 0, 0, 0, 'm', 'a', 'p',
	}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("expected % x but % x", expected, buf.Bytes())
	}

	var decoded Header
	if err := decoded.Deserialize(bytes.NewReader(expected)); err != nil {
		t.Fatal(err)
	}
	if decoded != h {
		t.Errorf("decoded %+v", decoded)
	}
}

func TestReadStringTruncated(t *testing.T) {
	data := []byte{10, 0, 0, 0, 'm', 'a', 'p'}
	if _, err := ReadString(bytes.NewReader(data)); err == nil {
		t.Error("expected error for truncated string")
	}
}
