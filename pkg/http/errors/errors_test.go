package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondStatusWritesEnvelope(t *testing.T) {
	cases := []struct {
		status  int
		message string
	}{
		{http.StatusBadRequest, MsgBadRequest},
		{http.StatusNotFound, MsgNotFound},
		{http.StatusUnprocessableEntity, MsgUnprocessable},
		{http.StatusInternalServerError, MsgInternalError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		RespondStatus(rec, tc.status)

		assert.Equal(t, tc.status, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
		assert.EqualValues(t, tc.status, body["error"])
		assert.Equal(t, tc.message, body["message"])
	}
}
