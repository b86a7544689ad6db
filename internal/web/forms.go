package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/akbarovz/gadgethub/internal/errorz"
)

// decodeForm maps a submitted form to a value of type IN.
func decodeForm[IN any](s *Server, r *http.Request) (IN, error) {
	var in IN
	err := r.ParseForm()
	if err != nil {
		return in, err
	}

	// Remove the CSRF token from the form, it won't need to be mapped
	// to any target types.
	r.PostForm.Del(csrfTokenField)

	err = s.decoder.Decode(&in, r.PostForm)
	return in, decodeError(err)
}

// decodeError converts schema decoding errors into errorz.InvalidInput.
func decodeError(err error) error {
	if err == nil {
		return nil
	}

	var multiErr schema.MultiError
	if errors.As(err, &multiErr) {
		var invalidInput errorz.InvalidInput
		for key, e := range multiErr {
			invalidInput = append(invalidInput, errorz.Keyed{
				Key: key,
				Err: e,
			})
		}

		return invalidInput
	}

	return err
}

// pathID parses the {id} path value of the request. A non-numeric or
// non-positive value means the URL was tampered with, it maps to a 404.
func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 {
		return 0, errorz.ErrNotFound
	}

	return id, nil
}

// invalidInputText renders an InvalidInput error as a human-readable
// notice.
func invalidInputText(invalid errorz.InvalidInput) string {
	text := "Please check the form:"
	for i, err := range invalid {
		if i > 0 {
			text += ","
		}
		text += " " + err.Error()
	}

	return text + "."
}
