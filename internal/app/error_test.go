package app

import (
	"errors"
	"io/fs"
	"net/http"
	"testing"
)

func TestServerResponseError(t *testing.T) {
	err := NewServerResponseError(fs.ErrPermission, "Forecast data is unavailable", http.StatusInternalServerError)

	status, msg := err.ServerErrorResponse()
	if status != http.StatusInternalServerError || msg != "Forecast data is unavailable" {
		t.Errorf("ServerErrorResponse() = (%d, %q)", status, msg)
	}

	if !errors.Is(err, fs.ErrPermission) {
		t.Error("ServerResponseError should unwrap to the wrapped error")
	}

	if err.Error() != fs.ErrPermission.Error() {
		t.Errorf("Error() = %q, want the wrapped message", err.Error())
	}
}
