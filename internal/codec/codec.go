// Package codec converts uploaded reference files into the transport
// encoding expected by multi-part model requests.
package codec

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// FileToTransportEncoding returns the file content as a base64 data URL.
// The MIME type comes from the file extension when recognized, otherwise
// from content sniffing.
func FileToTransportEncoding(name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("encode %s: empty file", name)
	}
	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	// Strip any charset parameter; data URLs carry the bare type here.
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
