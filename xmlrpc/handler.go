package xmlrpc

import (
	"bytes"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"sync"
)

// Method is a func taking decoded XML-RPC arguments and returning (value, error).
type Method interface{}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Handler serves XML-RPC requests by dispatching on the method name.
type Handler struct {
	mapping map[string]Method
	wait    sync.WaitGroup
}

func NewHandler(mapping map[string]Method) *Handler {
	return &Handler{mapping: mapping}
}

// WaitForShutdown blocks until in-flight requests have been answered.
func (h *Handler) WaitForShutdown() {
	h.wait.Wait()
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h.wait.Add(1)
	defer h.wait.Done()

	var buffer bytes.Buffer
	name, args, err := parseRequest(req.Body)
	if err != nil {
		emitFault(&buffer, 1, "Invalid request.")
	} else if result, err := h.dispatch(name, args); err != nil {
		buffer.Reset()
		emitFault(&buffer, 1, err.Error())
	} else if err := emitResponse(&buffer, result); err != nil {
		buffer.Reset()
		emitFault(&buffer, 1, fmt.Sprintf("Method '%v' returned an invalid result type.", name))
	}

	w.Header().Set("Content-Type", "text/xml")
	w.Header().Set("Content-Length", strconv.Itoa(buffer.Len()))
	buffer.WriteTo(w)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *Handler) dispatch(name string, args []interface{}) (interface{}, error) {
	method, ok := h.mapping[name]
	if !ok {
		return nil, fmt.Errorf("No method named '%v'.", name)
	}

	fun := reflect.ValueOf(method)
	ft := fun.Type()
	if ft.NumIn() != len(args) || ft.NumOut() != 2 || !ft.Out(1).Implements(errorType) {
		return nil, fmt.Errorf("Method '%v' called with %d arguments.", name, len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		v := reflect.ValueOf(arg)
		if !v.IsValid() || !v.Type().AssignableTo(ft.In(i)) {
			return nil, fmt.Errorf("Method '%v' argument %d has the wrong type.", name, i)
		}
		in[i] = v
	}

	out := fun.Call(in)
	if errValue := out[1]; !errValue.IsNil() {
		return nil, fmt.Errorf("Method '%v' call failed: %v", name, errValue.Interface())
	}
	return out[0].Interface(), nil
}
