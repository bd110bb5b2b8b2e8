package xmlrpc

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout bounds a call when the context carries no deadline.
const DefaultTimeout = 10 * time.Second

var httpClient = &http.Client{}

// Call invokes method on the XML-RPC server at url.
// A <fault> response is returned as a *Fault error.
func Call(ctx context.Context, url string, method string, args ...interface{}) (interface{}, error) {
	var buffer bytes.Buffer
	if err := emitRequest(&buffer, method, args...); err != nil {
		return nil, errors.Wrapf(err, "building %s request", method)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buffer)
	if err != nil {
		return nil, errors.Wrapf(err, "building %s request", method)
	}
	req.Header.Set("Content-Type", "text/xml")

	res, err := httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "sending %s request", method)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("%s: HTTP failed with %s", method, res.Status)
	}

	result, fault, err := parseResponse(res.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s response", method)
	}
	if fault {
		return nil, faultFromValue(result)
	}
	return result, nil
}
