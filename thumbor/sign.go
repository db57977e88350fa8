package thumbor

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
)

// Sign returns the Thumbor signature of data: HMAC-SHA1 keyed with key and
// encoded as padded URL-safe base64 ('+' -> '-', '/' -> '_').
func Sign(key, data string) string {
	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(data))
	return base64.URLEncoding.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature is the valid signature of data under key
func Verify(key, signature, data string) bool {
	return hmac.Equal([]byte(Sign(key, data)), []byte(signature))
}
