package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runDecode(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newDecodeApp(strings.NewReader(stdin), &out).Command()
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDecodeCodesTable(t *testing.T) {
	out, err := runDecode(t, "", "--codes", "MDLS,RENA,BT85,PPSR,DV4W,PD01,X0")
	require.NoError(t, err)
	assert.Contains(t, out, "Model S")
	assert.Contains(t, out, "P85D")
	assert.Contains(t, out, "Signature Red")
	assert.Contains(t, out, "awd")
	assert.Contains(t, out, `Malformed`)
}

func TestDecodeCodesJSON(t *testing.T) {
	out, err := runDecode(t, "", "--codes", "MDLX,BTX4", "-o", "json")
	require.NoError(t, err)

	var sum map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, "MDLX", sum["model"].(map[string]any)["code"])
}

func TestDecodeSnapshotFromFileWithComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "climate.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(`{
		// captured from a parked car
		"inside_temp": 20,
		"outside_temp": 10,
		"is_climate_on": true,
	}`), 0o600))

	out, err := runDecode(t, "", "--category", "climate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "climate snapshot")
	assert.Contains(t, out, "inside_temp_f")
	assert.Contains(t, out, "68")
	assert.Contains(t, out, "is_climate_on")
}

func TestDecodeSnapshotFromStdin(t *testing.T) {
	out, err := runDecode(t, `{"charging_state": "Warp", "battery_level": 55}`, "--category", "charge")
	require.NoError(t, err)
	assert.Contains(t, out, "battery_level")
	assert.Contains(t, out, "unrecognized")
	assert.Contains(t, out, `charging_state="Warp"`)

	out, err = runDecode(t, `{"vin": "5YJ", "option_codes": "MDLS,BT85"}`, "--category", "description", "-o", "json")
	require.NoError(t, err)
	var d map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, "5YJ", d["vin"])
	assert.Contains(t, d, "options")
}

func TestDecodeErrors(t *testing.T) {
	_, err := runDecode(t, `{}`, "--category", "tyres")
	assert.Error(t, err)

	_, err = runDecode(t, `[1]`, "--category", "charge")
	assert.Error(t, err)

	_, err = runDecode(t, `{}`, "--category", "charge", "-o", "yaml")
	assert.Error(t, err)

	_, err = runDecode(t, "", "--category", "charge", "-f", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
