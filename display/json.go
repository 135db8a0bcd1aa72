package display

import (
	"encoding/json"
	"os"
)

// CompactEnv switches JSON output to a single line when set to a non-empty value
const CompactEnv = "SYNBENCH_JSON_COMPACT"

// MarshalJSON marshals JSON with pretty formatting, or compact formatting
// when SYNBENCH_JSON_COMPACT is set
func MarshalJSON(v interface{}) ([]byte, error) {
	if os.Getenv(CompactEnv) != "" {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}
