package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"skylane/concourse/internal/common"
	"skylane/concourse/internal/constants"
	"skylane/concourse/internal/logging"
	"skylane/concourse/internal/models/dtos"
)

func respondWithSuccess[T any](w http.ResponseWriter, statusCode int, data *T) {
	resp := dtos.APIResponse[T]{
		Status:    "success",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

// respondWithAppError maps the stable error kind to its HTTP status.
// Internal causes are logged, never leaked.
func respondWithAppError(w http.ResponseWriter, err error) {
	kind := common.KindOf(err)
	message := "internal error"

	var ae *common.AppError
	if errors.As(err, &ae) && kind != constants.KindInternal {
		message = ae.Message
	}
	if kind == constants.KindInternal {
		logging.Error("Request failed", "error", err.Error())
	}

	resp := dtos.APIResponse[any]{
		Status:    "error",
		Timestamp: time.Now().UTC(),
		Error:     message,
		ErrorKind: kind.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(kind.HTTPStatus())

	_ = json.NewEncoder(w).Encode(resp)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	resp := dtos.APIResponse[any]{
		Status:    "error",
		Timestamp: time.Now().UTC(),
		Error:     message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(resp)
}
