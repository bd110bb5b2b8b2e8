package ros

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestConnectionHeaderRoundTrip(t *testing.T) {
	headers := []header{
		{"topic", "/odom"},
		{"md5sum", "cd5e73d190d741a2f92e81eda573aca7"},
		{"type", "nav_msgs/Odometry"},
		{"callerid", "/auto_navigation"},
		{"message_definition", "a=b\nc"},
	}
	var buf bytes.Buffer
	if err := writeConnectionHeader(headers, &buf); err != nil {
		t.Fatal(err)
	}

	var total uint32
	binary.Read(bytes.NewReader(buf.Bytes()), binary.LittleEndian, &total)
	if int(total) != buf.Len()-4 {
		t.Errorf("length prefix %d, body %d", total, buf.Len()-4)
	}

	result, err := readConnectionHeader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(result) != len(headers) {
		t.Fatalf("expected %d fields but %d", len(headers), len(result))
	}
	for i := range headers {
		if result[i] != headers[i] {
			t.Errorf("field %d: expected %v but %v", i, headers[i], result[i])
		}
	}
	if m := headerMap(result); m["message_definition"] != "a=b\nc" {
		t.Error(m)
	}
}

func TestConnectionHeaderKnownBytes(t *testing.T) {
	var buf bytes.Buffer
	writeConnectionHeader([]header{{"a", "b"}}, &buf)
	expected := []byte{7, 0, 0, 0, 3, 0, 0, 0, 'a', '=', 'b'}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("expected % x but % x", expected, buf.Bytes())
	}
}

func TestConnectionHeaderMalformed(t *testing.T) {
	overrun := []byte{8, 0, 0, 0, 9, 0, 0, 0, 'a', '=', 'b', 'c'}
	if _, err := readConnectionHeader(bytes.NewReader(overrun)); err == nil {
		t.Error("expected overrun error")
	}

	noSeparator := []byte{7, 0, 0, 0, 3, 0, 0, 0, 'a', 'b', 'c'}
	if _, err := readConnectionHeader(bytes.NewReader(noSeparator)); err == nil {
		t.Error("expected missing '=' error")
	}

	truncated := []byte{20, 0, 0, 0, 3, 0}
	if _, err := readConnectionHeader(bytes.NewReader(truncated)); err == nil {
		t.Error("expected truncation error")
	}
}
