// Package xmlrpc is the small XML-RPC codec used for the ROS master and slave APIs.
package xmlrpc

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Fault is a <fault> response returned by a remote method.
type Fault struct {
	Code   int32
	String string
}

func (f *Fault) Error() string {
	return "xmlrpc fault " + strconv.Itoa(int(f.Code)) + ": " + f.String
}

func xmlEscape(s string) string {
	var buffer bytes.Buffer
	xml.EscapeText(&buffer, []byte(s))
	return buffer.String()
}

// emitValue writes the typed body of a <value> element. Nil emits nothing,
// which the decoder reads back as an empty string.
func emitValue(buf *bytes.Buffer, value interface{}) error {
	if bs, ok := value.([]byte); ok {
		buf.WriteString("<base64>")
		buf.WriteString(base64.StdEncoding.EncodeToString(bs))
		buf.WriteString("</base64>")
		return nil
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return nil
	}

	switch val.Kind() {
	case reflect.Bool:
		if val.Bool() {
			buf.WriteString("<boolean>1</boolean>")
		} else {
			buf.WriteString("<boolean>0</boolean>")
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		buf.WriteString("<int>")
		buf.WriteString(strconv.FormatInt(val.Int(), 10))
		buf.WriteString("</int>")
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		buf.WriteString("<int>")
		buf.WriteString(strconv.FormatUint(val.Uint(), 10))
		buf.WriteString("</int>")
	case reflect.Float32, reflect.Float64:
		buf.WriteString("<double>")
		buf.WriteString(strconv.FormatFloat(val.Float(), 'g', -1, 64))
		buf.WriteString("</double>")
	case reflect.String:
		buf.WriteString("<string>")
		buf.WriteString(xmlEscape(val.String()))
		buf.WriteString("</string>")
	case reflect.Array, reflect.Slice:
		buf.WriteString("<array><data>")
		for i := 0; i < val.Len(); i++ {
			buf.WriteString("<value>")
			if err := emitValue(buf, val.Index(i).Interface()); err != nil {
				return err
			}
			buf.WriteString("</value>")
		}
		buf.WriteString("</data></array>")
	case reflect.Map:
		if val.Type().Key().Kind() != reflect.String {
			return errors.New("map key must be string")
		}
		keys := make([]string, 0, val.Len())
		for _, k := range val.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		buf.WriteString("<struct>")
		for _, k := range keys {
			buf.WriteString("<member><name>")
			buf.WriteString(xmlEscape(k))
			buf.WriteString("</name><value>")
			v := val.MapIndex(reflect.ValueOf(k).Convert(val.Type().Key()))
			if err := emitValue(buf, v.Interface()); err != nil {
				return err
			}
			buf.WriteString("</value></member>")
		}
		buf.WriteString("</struct>")
	case reflect.Interface, reflect.Ptr:
		if val.IsNil() {
			return nil
		}
		return emitValue(buf, val.Elem().Interface())
	default:
		return errors.Errorf("unsupported kind %v", val.Kind())
	}
	return nil
}

func emitRequest(buf *bytes.Buffer, method string, args ...interface{}) error {
	buf.WriteString(xml.Header)
	buf.WriteString("<methodCall><methodName>")
	buf.WriteString(xmlEscape(method))
	buf.WriteString("</methodName><params>")
	for _, arg := range args {
		buf.WriteString("<param><value>")
		if err := emitValue(buf, arg); err != nil {
			return err
		}
		buf.WriteString("</value></param>")
	}
	buf.WriteString("</params></methodCall>")
	return nil
}

func emitResponse(buf *bytes.Buffer, value interface{}) error {
	buf.WriteString(xml.Header)
	buf.WriteString("<methodResponse><params><param><value>")
	if err := emitValue(buf, value); err != nil {
		return err
	}
	buf.WriteString("</value></param></params></methodResponse>")
	return nil
}

func emitFault(buf *bytes.Buffer, code int32, message string) error {
	buf.WriteString(xml.Header)
	buf.WriteString("<methodResponse><fault><value>")
	fault := map[string]interface{}{
		"faultCode":   code,
		"faultString": message,
	}
	if err := emitValue(buf, fault); err != nil {
		return err
	}
	buf.WriteString("</value></fault></methodResponse>")
	return nil
}

type decoder struct {
	*xml.Decoder
}

func newDecoder(r io.Reader) *decoder {
	return &decoder{xml.NewDecoder(r)}
}

// text collects character data up to the end of the current element.
func (d *decoder) text() (string, error) {
	var data []byte
	for {
		token, err := d.Token()
		if err != nil {
			return "", err
		}
		switch t := token.(type) {
		case xml.CharData:
			data = append(data, t...)
		case xml.EndElement:
			return string(data), nil
		case xml.StartElement:
			return "", errors.Errorf("unexpected element <%s> in scalar", t.Name.Local)
		}
	}
}

// value parses the content of a <value> element whose start tag has been read.
// On return the closing </value> has been consumed.
func (d *decoder) value() (interface{}, error) {
	var data []byte
	for {
		token, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := token.(type) {
		case xml.CharData:
			data = append(data, t...)
		case xml.StartElement:
			v, err := d.typed(t.Name.Local)
			if err != nil {
				return nil, err
			}
			return v, d.closeValue()
		case xml.EndElement:
			// Untyped content is a string.
			return string(data), nil
		}
	}
}

func (d *decoder) closeValue() error {
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}
		switch t := token.(type) {
		case xml.EndElement:
			if t.Name.Local == "value" {
				return nil
			}
		case xml.StartElement:
			return errors.Errorf("unexpected element <%s> after typed value", t.Name.Local)
		}
	}
}

func (d *decoder) typed(name string) (interface{}, error) {
	switch name {
	case "boolean":
		s, err := d.text()
		if err != nil {
			return nil, err
		}
		switch strings.TrimSpace(s) {
		case "0":
			return false, nil
		case "1":
			return true, nil
		}
		return nil, errors.Errorf("invalid boolean %q", s)
	case "i4", "int":
		s, err := d.text()
		if err != nil {
			return nil, err
		}
		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
		if err != nil {
			return nil, errors.Wrap(err, "int")
		}
		return int32(i), nil
	case "double":
		s, err := d.text()
		if err != nil {
			return nil, err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, errors.Wrap(err, "double")
		}
		return f, nil
	case "string":
		return d.text()
	case "base64":
		s, err := d.text()
		if err != nil {
			return nil, err
		}
		bs, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
		if err != nil {
			return nil, errors.Wrap(err, "base64")
		}
		return bs, nil
	case "array":
		return d.array()
	case "struct":
		return d.structure()
	case "nil":
		return nil, d.Skip()
	}
	return nil, errors.Errorf("unsupported value type <%s>", name)
}

func (d *decoder) array() ([]interface{}, error) {
	a := []interface{}{}
	for {
		token, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "value" {
				v, err := d.value()
				if err != nil {
					return nil, err
				}
				a = append(a, v)
			}
		case xml.EndElement:
			if t.Name.Local == "array" {
				return a, nil
			}
		}
	}
}

func (d *decoder) structure() (map[string]interface{}, error) {
	m := make(map[string]interface{})
	var name string
	var value interface{}
	for {
		token, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "name":
				if name, err = d.text(); err != nil {
					return nil, err
				}
			case "value":
				if value, err = d.value(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "member":
				m[name] = value
				name, value = "", nil
			case "struct":
				return m, nil
			}
		}
	}
}

func parseRequest(r io.Reader) (method string, args []interface{}, err error) {
	d := newDecoder(r)
	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", nil, err
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "methodName":
			if method, err = d.text(); err != nil {
				return "", nil, err
			}
			method = strings.TrimSpace(method)
		case "value":
			v, err := d.value()
			if err != nil {
				return "", nil, err
			}
			args = append(args, v)
		}
	}
	if method == "" {
		return "", nil, errors.New("missing methodName")
	}
	return method, args, nil
}

// parseResponse returns the single response value, and whether it came from a fault.
func parseResponse(r io.Reader) (result interface{}, fault bool, err error) {
	d := newDecoder(r)
	for {
		token, err := d.Token()
		if err == io.EOF {
			return nil, false, errors.New("missing response value")
		}
		if err != nil {
			return nil, false, err
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "fault":
			fault = true
		case "value":
			result, err = d.value()
			return result, fault, err
		}
	}
}

func faultFromValue(v interface{}) error {
	m, ok := v.(map[string]interface{})
	if !ok {
		return errors.New("malformed fault response")
	}
	code, ok := m["faultCode"].(int32)
	if !ok {
		return errors.New("malformed fault response: faultCode")
	}
	s, _ := m["faultString"].(string)
	return &Fault{Code: code, String: s}
}
