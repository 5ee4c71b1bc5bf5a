package rendering

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/jonathan/resume-editor/internal/resume"
)

// Fingerprint identifies a render by its inputs. Equal documents and options
// give equal fingerprints, so it can key a cache of rendered output.
func Fingerprint(d resume.Document, opts Options) string {
	payload := struct {
		Document resume.Document `json:"document"`
		Options  Options         `json:"options"`
	}{resume.Normalize(d), opts}

	// Document and Options only hold strings, bools, and slices of them.
	data, _ := json.Marshal(payload)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
