package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex-encoded SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashInput hashes a pipeline input together with its mode. Formatting that
// does not change the parsed input does not change the hash: "align" JSON
// documents are compacted and "haplo" allele matrices are reduced to one
// single-spaced row per non-blank line. Other modes, and JSON that does not
// parse, are hashed byte for byte.
func HashInput(mode string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(mode))
	h.Write([]byte{0})
	h.Write(normalizeInput(mode, data))
	return hex.EncodeToString(h.Sum(nil))
}

func normalizeInput(mode string, data []byte) []byte {
	switch mode {
	case "align":
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err == nil {
			return buf.Bytes()
		}
	case "haplo":
		var buf bytes.Buffer
		for line := range bytes.Lines(data) {
			fields := bytes.Fields(line)
			if len(fields) == 0 {
				continue
			}
			buf.Write(bytes.Join(fields, []byte{' '}))
			buf.WriteByte('\n')
		}
		return buf.Bytes()
	}
	return data
}

// graphKey addresses a graph by input hash and build options.
func graphKey(inputHash string, opts GraphKeyOpts) string {
	data, _ := json.Marshal(struct {
		Input string `json:"input"`
		GraphKeyOpts
	}{inputHash, opts})
	return "graph:" + Hash(data)
}
