// Connection header
package ros

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

type header struct {
	key   string
	value string
}

// Upper bound on a header block, protects against garbage length prefixes.
const maxHeaderSize = 1 << 20

func readConnectionHeader(r io.Reader) ([]header, error) {
	var headerSize uint32
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, err
	}
	if headerSize > maxHeaderSize {
		return nil, errors.Errorf("connection header too large: %d bytes", headerSize)
	}
	buf := make([]byte, int(headerSize))
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}

	var headers []header
	reader := bytes.NewReader(buf)
	for reader.Len() > 0 {
		var size uint32
		if err := binary.Read(reader, binary.LittleEndian, &size); err != nil {
			return nil, errors.Wrap(err, "header field length")
		}
		if int(size) > reader.Len() {
			return nil, errors.New("header length overrun")
		}
		line := make([]byte, size)
		if _, err := io.ReadFull(reader, line); err != nil {
			return nil, err
		}
		sep := bytes.IndexByte(line, '=')
		if sep < 0 {
			return nil, errors.Errorf("header field %q has no '='", line)
		}
		headers = append(headers, header{string(line[:sep]), string(line[sep+1:])})
	}
	return headers, nil
}

func writeConnectionHeader(headers []header, w io.Writer) error {
	var body bytes.Buffer
	for _, h := range headers {
		size := uint32(len(h.key) + len(h.value) + 1)
		binary.Write(&body, binary.LittleEndian, size)
		body.WriteString(h.key)
		body.WriteByte('=')
		body.WriteString(h.value)
	}
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(body.Len()))
	buf.Write(body.Bytes())
	_, err := w.Write(buf.Bytes())
	return err
}

func headerMap(headers []header) map[string]string {
	m := make(map[string]string, len(headers))
	for _, h := range headers {
		m[h.key] = h.value
	}
	return m
}
