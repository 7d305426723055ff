package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/store-ratings/internal/api/httpx"
	"github.com/baharkarakas/store-ratings/internal/middleware"
)

// ID accepts both 5 and "5"; HTML form values arrive as strings.
type ID int64

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*id = 0
		return nil
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return errors.New("id must be an integer")
	}
	*id = ID(n)
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) { return json.Marshal(int64(id)) }

// decode writes a 400 and returns false when the body is not valid JSON.
func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := httpx.DecodeJSON(r, v); err != nil {
		httpx.WriteBadRequest(w)
		return false
	}
	return true
}

func pathID(r *http.Request, name string) (int64, bool) {
	n, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// caller returns the identity attached by the auth middleware. Its absence
// means a route was mounted without the middleware.
func caller(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.FromCtx(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return 0, false
	}
	return id.UserID, true
}
