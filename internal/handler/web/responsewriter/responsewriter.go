// Package responsewriter provides a wrapper around http.ResponseWriter
// that records the response status code and the number of bytes written.
package responsewriter

import "net/http"

// Recorder wraps an http.ResponseWriter and captures the status code
// and bytes written for logging and metrics.
type Recorder struct {
	http.ResponseWriter
	status int
	bytes  int
	wrote  bool
}

// Wrap returns a Recorder around w. The status defaults to 200
// until WriteHeader is called.
func Wrap(w http.ResponseWriter) *Recorder {
	return &Recorder{ResponseWriter: w, status: http.StatusOK}
}

func (r *Recorder) WriteHeader(code int) {
	if !r.wrote {
		r.status = code
		r.wrote = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *Recorder) Write(b []byte) (int, error) {
	r.wrote = true
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// StatusCode returns the recorded response status code.
func (r *Recorder) StatusCode() int { return r.status }

// BytesWritten returns the number of response body bytes written.
func (r *Recorder) BytesWritten() int { return r.bytes }
