package ros

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rosenbergj/autonav/xmlrpc"
)

const (
	APIStatusError   int32 = -1
	APIStatusFailure int32 = 0
	APIStatusSuccess int32 = 1
)

// callRosAPI performs a master or slave API call and unpacks the
// [code, statusMessage, value] triplet every ROS API call returns.
func callRosAPI(ctx context.Context, calleeURI string, method string, args ...interface{}) (interface{}, error) {
	result, err := xmlrpc.Call(ctx, calleeURI, method, args...)
	if err != nil {
		return nil, err
	}

	xs, ok := result.([]interface{})
	if !ok {
		return nil, errors.New("malformed ROS API result")
	}
	if len(xs) != 3 {
		return nil, errors.Errorf("malformed ROS API result: length must be 3 but is %d", len(xs))
	}
	code, ok := xs[0].(int32)
	if !ok {
		return nil, errors.New("status code is not int")
	}
	message, ok := xs[1].(string)
	if !ok {
		return nil, errors.New("status message is not string")
	}
	if code != APIStatusSuccess {
		return nil, errors.Errorf("%s failed with code %d: %s", method, code, message)
	}
	return xs[2], nil
}

func buildRosAPIResult(code int32, message string, value interface{}) []interface{} {
	return []interface{}{code, message, value}
}
