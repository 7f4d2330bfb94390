package sim

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestIntentJSONRoundTrip(t *testing.T) {
	original := Intent{
		X:              -7.25,
		Y:              3.5,
		Radius:         2,
		MoveDirection:  1.5707,
		Moving:         true,
		ShootDirection: -0.25,
		Shooting:       true,
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded Intent
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded != original {
		t.Errorf("round trip changed the intent: %+v vs %+v", decoded, original)
	}
}

func TestIntentJSONKeys(t *testing.T) {
	data, err := json.Marshal(Intent{})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	// The wire names are the script-facing contract.
	for _, key := range []string{
		`"x"`, `"y"`, `"radius"`,
		`"moveDirection"`, `"moving"`, `"shootDirection"`, `"shooting"`,
	} {
		if !strings.Contains(string(data), key) {
			t.Errorf("serialized intent missing key %s: %s", key, data)
		}
	}
}
