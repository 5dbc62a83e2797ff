package grobid

import "net/http"

// Response is the raw answer of processFulltextDocument. Content holds the
// TEI XML on success.
type Response struct {
	StatusCode int
	Content    []byte
	Header     http.Header
}

// statusMessages are the error statuses GROBID documents for its REST API.
var statusMessages = map[int]string{
	203: "Content couldn't be extracted",
	400: "Wrong request, missing parameters, missing header",
	500: "Internal service error",
	503: "Service not available",
}

// CheckStatus returns an *APIError for documented GROBID error statuses.
// Every other status passes.
func (r *Response) CheckStatus() error {
	msg, ok := statusMessages[r.StatusCode]
	if !ok {
		return nil
	}
	return &APIError{StatusCode: r.StatusCode, Message: msg}
}
