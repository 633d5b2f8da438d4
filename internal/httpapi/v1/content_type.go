package v1

import (
    "mime"
    "net/http"
    "strings"
)

// requireJSON ensures the request has Content-Type application/json or a
// +json subtype, parameters allowed. Writes 415 and returns false otherwise.
func requireJSON(w http.ResponseWriter, r *http.Request) bool {
    mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
    if err != nil || (mt != "application/json" && !strings.HasSuffix(mt, "+json")) {
        writeErr(w, http.StatusUnsupportedMediaType, "content type must be application/json", "unsupported_media_type")
        return false
    }
    return true
}
