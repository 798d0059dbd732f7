package httpserver

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// LegacyContentType is the exact header Essensys controllers expect on
// their endpoints, space included.
const LegacyContentType = "application/json ;charset=UTF-8"

const maxBodyBytes = 1 << 20

type ErrorResponse struct {
	Message string `json:"message,omitempty"`
}

func ReplyWithError(w http.ResponseWriter, statusCode int, errMsg string) {
	ReplyJSONResponse(w, statusCode, &ErrorResponse{Message: errMsg})
}

func ReplyJSONResponse(w http.ResponseWriter, statusCode int, output any) {
	ReplyJSONWithContentType(w, statusCode, "application/json", output)
}

func ReplyLegacyJSON(w http.ResponseWriter, statusCode int, output any) {
	ReplyJSONWithContentType(w, statusCode, LegacyContentType, output)
}

func ReplyJSONWithContentType(w http.ResponseWriter, statusCode int, contentType string, output any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)
	if output == nil {
		return
	}
	json.NewEncoder(w).Encode(output)
}

func ReadBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	return body, nil
}

func DecodeJSONBody(r *http.Request, placeholder any) error {
	reqBody, err := ReadBody(r)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(reqBody, placeholder); err != nil {
		return fmt.Errorf("unmarshaling json: %w", err)
	}

	return nil
}
