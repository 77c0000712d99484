package errors

import (
	"errors"
	"fmt"
)

// statusCarrier is implemented by upstream API errors that know the HTTP
// status the marketplace API answered with.
type statusCarrier interface {
	HTTPStatus() int
}

// endpointCarrier is implemented by upstream API errors that know which
// endpoint failed.
type endpointCarrier interface {
	Endpoint() string
}

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	UpstreamStatus   int    `json:"upstream_status,omitempty"`
	UpstreamEndpoint string `json:"upstream_endpoint,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var withStatus statusCarrier
	if errors.As(err, &withStatus) {
		d.UpstreamStatus = withStatus.HTTPStatus()
	}

	var withEndpoint endpointCarrier
	if errors.As(err, &withEndpoint) {
		d.UpstreamEndpoint = withEndpoint.Endpoint()
	}

	return d
}
