// Package code defines the API result codes and their HTTP status mapping.
package code

import (
	"fmt"
	"net/http"
)

type Code struct {
	code       int
	status     bool
	httpStatus int
	msg        string
	data       interface{}
	details    []string

	haveData    bool
	haveDetails bool
}

var codes = map[int]string{}

// NewError registers an error code. Duplicate registration is a programming
// mistake, so it panics at init time.
func NewError(code int, httpStatus int, msg string) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("code %d already exists, pick another one", code))
	}
	codes[code] = msg
	return &Code{code: code, status: false, httpStatus: httpStatus, msg: msg}
}

// NewSuss registers a success code.
func NewSuss(code int, httpStatus int, msg string) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("code %d already exists, pick another one", code))
	}
	codes[code] = msg
	return &Code{code: code, status: true, httpStatus: httpStatus, msg: msg}
}

// Clone creates a copy so that WithData/WithDetails never mutate the shared
// registered value.
func (e *Code) Clone() *Code {
	return &Code{
		code:       e.code,
		status:     e.status,
		httpStatus: e.httpStatus,
		msg:        e.msg,
	}
}

func (e *Code) Error() string {
	return e.msg
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

// StatusCode returns the HTTP status the code answers with.
func (e *Code) StatusCode() int {
	if e.httpStatus == 0 {
		return http.StatusOK
	}
	return e.httpStatus
}

func (e *Code) Msg() string {
	return e.msg
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) HaveData() bool {
	return e.haveData
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

func (e *Code) WithData(data interface{}) *Code {
	c := e.Clone()
	c.haveData = true
	c.data = data
	return c
}

func (e *Code) WithDetails(details ...string) *Code {
	c := e.Clone()
	c.haveDetails = true
	c.details = append(c.details, details...)
	return c
}
