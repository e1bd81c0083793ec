package response

// StatusCode is the closed set of statuses this server emits. Its value is
// the numeric code.
type StatusCode int

const (
	StatusOK                  StatusCode = 200
	StatusCreated             StatusCode = 201
	StatusAccepted            StatusCode = 202
	StatusNoContent           StatusCode = 204
	StatusMovedPermanently    StatusCode = 301
	StatusMovedTemporarily    StatusCode = 302
	StatusNotModified         StatusCode = 304
	StatusBadRequest          StatusCode = 400
	StatusUnauthorized        StatusCode = 401
	StatusForbidden           StatusCode = 403
	StatusNotFound            StatusCode = 404
	StatusInternalServerError StatusCode = 500
	StatusNotImplemented      StatusCode = 501
	StatusBadGateway          StatusCode = 502
	StatusServiceUnavailable  StatusCode = 503
)

var statusLines = map[StatusCode]string{
	StatusOK:                  "200 OK",
	StatusCreated:             "201 Created",
	StatusAccepted:            "202 Accepted",
	StatusNoContent:           "204 No Content",
	StatusMovedPermanently:    "301 Moved Permanently",
	StatusMovedTemporarily:    "302 Moved Temporarily",
	StatusNotModified:         "304 Not Modified",
	StatusBadRequest:          "400 Bad Request",
	StatusUnauthorized:        "401 Unauthorized",
	StatusForbidden:           "403 Forbidden",
	StatusNotFound:            "404 Not Found",
	StatusInternalServerError: "500 Internal Server Error",
	StatusNotImplemented:      "501 Not Implemented",
	StatusBadGateway:          "502 Bad Gateway",
	StatusServiceUnavailable:  "503 Service Unavailable",
}

// Line returns the "NNN Reason" text used on the status line.
func (s StatusCode) Line() string {
	return statusLines[s]
}

// Code returns the numeric status code.
func (s StatusCode) Code() int {
	return int(s)
}

// Valid reports whether s belongs to the supported set.
func (s StatusCode) Valid() bool {
	_, ok := statusLines[s]
	return ok
}

func (s StatusCode) String() string {
	return s.Line()
}
