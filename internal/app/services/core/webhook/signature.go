package webhook

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"flexera-service/internal/pkg/constvars"
	"sort"
	"strconv"
)

// flattenPayload walks the decoded JSON payload and produces dot-separated
// leaf paths, e.g. {"order":{"id":7}} becomes {"order.id": 7}. Array elements
// are addressed by index. The signature field itself is excluded at the top
// level because it cannot cover its own value.
func flattenPayload(payload map[string]interface{}) map[string]interface{} {
	flat := make(map[string]interface{})
	for key, value := range payload {
		if key == constvars.PaymobSignatureField {
			continue
		}
		flattenInto(flat, key, value)
	}
	return flat
}

func flattenInto(flat map[string]interface{}, prefix string, value interface{}) {
	switch typed := value.(type) {
	case map[string]interface{}:
		for key, nested := range typed {
			flattenInto(flat, prefix+"."+key, nested)
		}
	case []interface{}:
		for i, nested := range typed {
			flattenInto(flat, prefix+"."+strconv.Itoa(i), nested)
		}
	default:
		flat[prefix] = value
	}
}

// stringifyLeaf renders a JSON leaf the way the provider does when computing
// its HMAC: numbers without exponent notation, booleans as true/false, null
// as the empty string.
func stringifyLeaf(value interface{}) string {
	switch typed := value.(type) {
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(typed)
	case nil:
		return ""
	default:
		return ""
	}
}

// computeSignature concatenates every flattened leaf value in lexicographic
// key order and returns the hex HMAC-SHA512 of the result.
func computeSignature(payload map[string]interface{}, secret string) string {
	flat := flattenPayload(payload)

	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	mac := hmac.New(sha512.New, []byte(secret))
	for _, key := range keys {
		mac.Write([]byte(stringifyLeaf(flat[key])))
	}
	return hex.EncodeToString(mac.Sum(nil))
}

// verifySignature checks the payload's embedded hmac field against the
// computed one in constant time.
func verifySignature(payload map[string]interface{}, secret string) bool {
	received, ok := payload[constvars.PaymobSignatureField].(string)
	if !ok || received == "" {
		return false
	}
	expected := computeSignature(payload, secret)
	return hmac.Equal([]byte(expected), []byte(received))
}
