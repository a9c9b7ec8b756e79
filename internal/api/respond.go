package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MikeSquared-Agency/Allocator/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeFile(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// newValidator builds the request validator with the domain enum checks registered.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("discipline", func(fl validator.FieldLevel) bool {
		return isDiscipline(store.Discipline(fl.Field().String()))
	})
	_ = v.RegisterValidation("career_type", func(fl validator.FieldLevel) bool {
		ct := store.CareerType(fl.Field().String())
		for _, known := range store.CareerTypes {
			if ct == known {
				return true
			}
		}
		return false
	})
	_ = v.RegisterValidation("subject_type", func(fl validator.FieldLevel) bool {
		st := store.SubjectType(fl.Field().String())
		for _, known := range store.SubjectTypes {
			if st == known {
				return true
			}
		}
		return false
	})
	return v
}

func isDiscipline(d store.Discipline) bool {
	for _, known := range store.Disciplines {
		if d == known {
			return true
		}
	}
	return false
}

// statusError carries an HTTP status out of a store update callback.
type statusError struct {
	status int
	msg    string
}

func (e *statusError) Error() string { return e.msg }

func badRequest(msg string) error {
	return &statusError{status: http.StatusBadRequest, msg: msg}
}

func notFound(msg string) error {
	return &statusError{status: http.StatusNotFound, msg: msg}
}

// writeStatusError writes the status carried by err, or 500 for any other error.
func writeStatusError(w http.ResponseWriter, err error) {
	var se *statusError
	if errors.As(err, &se) {
		writeError(w, se.status, se.msg)
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	return data, true
}

// bindJSON decodes data into dst (which may carry defaults or current values) and runs the
// validator over it.
func bindJSON(v *validator.Validate, data []byte, dst interface{}) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return badRequest("invalid request body")
	}
	if err := v.Struct(dst); err != nil {
		return badRequest(validationMessage(err))
	}
	return nil
}

// decodeAndValidate reads and binds the request body. It writes the 400 response itself and
// reports false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.Validate, dst interface{}) bool {
	data, ok := readBody(w, r)
	if !ok {
		return false
	}
	if err := bindJSON(v, data, dst); err != nil {
		writeStatusError(w, err)
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// Drop the request type from the namespace: "CareerRequest.yearly_matrix[0].a".
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
