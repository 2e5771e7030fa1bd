package code

import "net/http"

var (
	Success        = NewSuss(0, http.StatusOK, "success")
	SuccessCreated = NewSuss(1, http.StatusCreated, "created")

	ErrorInvalidParams  = NewError(10001, http.StatusBadRequest, "invalid note data")
	ErrorNoteNotFound   = NewError(10002, http.StatusNotFound, "note not found")
	ErrorServerInternal = NewError(10003, http.StatusInternalServerError, "internal server error")
	ErrorNotFoundAPI    = NewError(10004, http.StatusNotFound, "api not found")

	ErrorInvalidStorageType = NewError(10101, http.StatusInternalServerError, "invalid storage type")
	ErrorStorageNotExist    = NewError(10102, http.StatusNotFound, "remote object not found")
)
