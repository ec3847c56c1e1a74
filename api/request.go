package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/errs"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// decodeBody reads a JSON request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errs.NewBadRequestError("request body is empty")
		}
		return errs.NewInvalidJSONError(err)
	}
	return nil
}

// pathID returns the UUID path parameter name.
func pathID(r *http.Request, name string) (string, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return "", errs.NewBadRequestError("missing " + name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", errs.NewBadRequestError("invalid " + name)
	}
	return id.String(), nil
}

// pageParams reads the page and pageSize query parameters. Absent values are
// zero and get the repository default.
func pageParams(r *http.Request) (page, pageSize int, err error) {
	if page, err = queryInt(r, "page"); err != nil {
		return 0, 0, err
	}
	if pageSize, err = queryInt(r, "pageSize"); err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewInvalidFieldError(key, "must be an integer")
	}
	return v, nil
}

// queryBool returns nil when key is absent.
func queryBool(r *http.Request, key string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errs.NewInvalidFieldError(key, "must be true or false")
	}
	return &v, nil
}
