package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/kekirawacc/kccweb/internal/upload"
)

// maxUploadSize caps multipart form memory for admin image uploads.
const maxUploadSize = 10 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// formInt64Ptr converts an optional numeric form value; empty means nil.
func formInt64Ptr(v string) *int64 {
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// saveFormFile stores the named multipart file if one was submitted and
// returns its public path. No file at all is fine and returns "".
func saveFormFile(r *http.Request, saver *upload.Saver, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err == http.ErrNotMultipart {
		// Plain form post, nothing attached.
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()
	return saver.Save(file, header)
}
