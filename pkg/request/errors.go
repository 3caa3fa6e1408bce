package request

import (
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
)

const maxErrorBodyLen = 512

// HTTPError represents a non 2xx response
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e HTTPError) Error() string {
	return fmt.Sprintf("[%v](%v): %v", e.StatusCode, e.Status, e.Body)
}

// NewHTTPErrorFromResponse creates an HTTPError from a response,
// consuming at most maxErrorBodyLen bytes of its body
func NewHTTPErrorFromResponse(res *http.Response) error {
	body := ""
	if res.Body != nil {
		defer res.Body.Close()
		buffer, err := ioutil.ReadAll(io.LimitReader(res.Body, maxErrorBodyLen))
		if err == nil {
			body = string(buffer)
		}
	}
	return HTTPError{
		StatusCode: res.StatusCode,
		Status:     res.Status,
		Body:       body,
	}
}
