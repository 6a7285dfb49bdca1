package handler

import (
	"encoding/json"
	"errors"
	"maps"
	"net/http"

	"github.com/SakerDakak/taxipay-dashboard/internal/adapter/terminal"
	t "github.com/SakerDakak/taxipay-dashboard/internal/domain/types"
	"github.com/SakerDakak/taxipay-dashboard/internal/service/activity"
)

type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return errors.New("failed to encode json")
	}

	js = append(js, '\n')

	maps.Copy(w.Header(), headers)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

// GetCode maps a service error to an HTTP status.
func GetCode(err error) int {
	var svcErr *activity.ServiceError
	switch {
	case IsOneOf(err, t.ErrInvalidLimit):
		return http.StatusUnprocessableEntity
	case IsOneOf(err, t.ErrInvalidSession):
		return http.StatusUnauthorized
	case IsOneOf(err, t.ErrNotAdmin, t.ErrUserInactive):
		return http.StatusForbidden
	case IsOneOf(err, t.ErrUserNotFound):
		return http.StatusNotFound
	case IsOneOf(err, terminal.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.As(err, &svcErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func IsOneOf(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
