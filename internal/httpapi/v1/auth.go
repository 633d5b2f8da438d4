package v1

import (
    "bytes"
    "crypto/hmac"
    "crypto/sha256"
    "encoding/base64"
    "encoding/json"
    "errors"
    "net/http"
    "strings"
    "time"
)

var (
    errNoBearer      = errors.New("missing bearer token")
    errMalformed     = errors.New("malformed token")
    errAlgorithm     = errors.New("unsupported alg")
    errSignature     = errors.New("invalid signature")
    errNotYetValid   = errors.New("token not yet valid")
    errExpired       = errors.New("token expired")
    errWrongIssuer   = errors.New("unexpected issuer")
    errWrongAudience = errors.New("unexpected audience")
)

// audience accepts both the string and the array form of "aud".
type audience []string

func (a *audience) UnmarshalJSON(b []byte) error {
    if bytes.HasPrefix(bytes.TrimSpace(b), []byte("[")) {
        var many []string
        if err := json.Unmarshal(b, &many); err != nil { return err }
        *a = many
        return nil
    }
    var one string
    if err := json.Unmarshal(b, &one); err != nil { return err }
    *a = audience{one}
    return nil
}

func (a audience) has(want string) bool {
    for _, s := range a {
        if strings.EqualFold(s, want) { return true }
    }
    return false
}

type tokenClaims struct {
    Issuer    string   `json:"iss"`
    Audience  audience `json:"aud"`
    ExpiresAt int64    `json:"exp"`
    NotBefore int64    `json:"nbf"`
}

// tokenVerifier checks HS256 bearer tokens against wall-clock time.
type tokenVerifier struct {
    secret   []byte
    issuer   string
    audience string
    now      func() time.Time
}

func (v tokenVerifier) verify(r *http.Request) error {
    h := r.Header.Get("Authorization")
    scheme, tok, ok := strings.Cut(h, " ")
    if !ok || !strings.EqualFold(scheme, "bearer") { return errNoBearer }

    parts := strings.Split(strings.TrimSpace(tok), ".")
    if len(parts) != 3 { return errMalformed }
    raw := make([][]byte, 3)
    for i, p := range parts {
        b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(p, "="))
        if err != nil { return errMalformed }
        raw[i] = b
    }

    var hdr struct{ Alg string `json:"alg"` }
    if json.Unmarshal(raw[0], &hdr) != nil { return errMalformed }
    if !strings.EqualFold(hdr.Alg, "HS256") { return errAlgorithm }

    mac := hmac.New(sha256.New, v.secret)
    mac.Write([]byte(parts[0] + "." + parts[1]))
    if !hmac.Equal(raw[2], mac.Sum(nil)) { return errSignature }

    var c tokenClaims
    if json.Unmarshal(raw[1], &c) != nil { return errMalformed }
    unix := v.now().Unix()
    switch {
    case c.NotBefore != 0 && unix < c.NotBefore:
        return errNotYetValid
    case c.ExpiresAt != 0 && unix >= c.ExpiresAt:
        return errExpired
    case v.issuer != "" && !strings.EqualFold(c.Issuer, v.issuer):
        return errWrongIssuer
    case v.audience != "" && !c.Audience.has(v.audience):
        return errWrongAudience
    }
    return nil
}

// publicPath reports whether path is served without a token.
func publicPath(path string) bool {
    switch path {
    case "/healthz", "/readyz", "/metrics":
        return true
    }
    return strings.HasPrefix(path, "/v1/dictionary/")
}

// authJWT returns a middleware requiring a valid HS256 bearer token.
// A blank secret disables auth.
func authJWT(secret, issuer, aud string) func(http.Handler) http.Handler {
    if secret == "" { return nil }
    v := tokenVerifier{secret: []byte(secret), issuer: issuer, audience: aud, now: time.Now}
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            if !publicPath(r.URL.Path) {
                if err := v.verify(r); err != nil {
                    writeErr(w, http.StatusUnauthorized, err.Error(), "unauthorized")
                    return
                }
            }
            next.ServeHTTP(w, r)
        })
    }
}
