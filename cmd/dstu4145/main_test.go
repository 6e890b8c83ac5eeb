package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testdataDir = "../../pkg/dstu4145/testdata"
	pub163      = "057de7fde023ff929cb6ac785ce4b79cf64abdc2da"
	priv163     = "183f60fdf7951ff47d67193f8d073790c1c9b5a3e"
)

func params163(t *testing.T) string {
	t.Helper()
	der, err := os.ReadFile(filepath.Join(testdataDir, "params_163.der"))
	require.NoError(t, err)
	return hex.EncodeToString(der)
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(append([]string{"dstu4145"}, args...), &out)
	return out.String(), err
}

// outputField returns the value printed after "name: ".
func outputField(t *testing.T, out, name string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if v, ok := strings.CutPrefix(line, name+": "); ok {
			return v
		}
	}
	t.Fatalf("no %q in output:\n%s", name, out)
	return ""
}

func TestParamsEncode(t *testing.T) {
	out, err := runCLI(t, "params", "encode",
		"--m", "163", "--exponents", "3,6,7", "--a", "1",
		"--b", "5FF6108462A2DC8210AB403925E638A19C1455D21",
		"--n", "400000000000000000002BEC12BE2262D39BCF14D",
		"--gx", "72d867f93a93ac27df9ff01affe74885c8c540420",
		"--gy", "0224a9c3947852b97c5599d5f4ab81122adc3fd9b",
	)
	require.NoError(t, err)
	assert.Equal(t, params163(t), strings.TrimSpace(out))

	_, err = runCLI(t, "params", "encode",
		"--m", "163", "--exponents", "3,6",
		"--b", "1", "--n", "1", "--gx", "1", "--gy", "1",
	)
	assert.Error(t, err)
}

func TestParamsInspect(t *testing.T) {
	out, err := runCLI(t, "--params", params163(t), "params", "inspect")
	require.NoError(t, err)
	assert.Equal(t, "0", outputField(t, out, "version"))
	assert.Equal(t, "1", outputField(t, out, "a"))
	assert.Equal(t, "default", outputField(t, out, "dke"))
	assert.Equal(t, "072d867f93a93ac27df9ff01affe74885c8c540420", outputField(t, out, "bp"))
	assert.Equal(t, "72d867f93a93ac27df9ff01affe74885c8c540420", outputField(t, out, "gx"))
	assert.Equal(t, "x^163 + x^7 + x^6 + x^3 + 1", outputField(t, out, "polynomial"))

	named := "300f060d2a862402010101010301010200"
	out, err = runCLI(t, "--params", named, "params", "inspect")
	require.NoError(t, err)
	assert.Equal(t, "1.2.804.2.1.1.1.1.3.1.1.2.0", outputField(t, out, "named curve"))
	assert.Equal(t, "2e2f85f5dd74ce983a5c4237229daf8a3f35823be", outputField(t, out, "gx"))
	assert.Equal(t, "3826f008a8c51d7b95284d9d03ff0e00ce2cd723a", outputField(t, out, "gy"))

	_, err = runCLI(t, "params", "inspect")
	assert.ErrorContains(t, err, "need --params")

	_, err = runCLI(t, "--params", "3000", "params", "inspect")
	assert.Error(t, err)
}

func TestSignVerify(t *testing.T) {
	params := params163(t)
	digest := "09c9c44277910c9aaee486883a2eb95b7180166ddf73532eeb76edaef52247ff"

	out, err := runCLI(t, "--params", params, "sign", "--key", priv163, "--digest", digest)
	require.NoError(t, err)
	r, s := outputField(t, out, "r"), outputField(t, out, "s")

	out, err = runCLI(t, "--params", params, "verify",
		"--pub", pub163, "--digest", digest, "--r", r, "--s", s)
	require.NoError(t, err)
	assert.Equal(t, "valid\n", out)

	_, err = runCLI(t, "--params", params, "verify",
		"--pub", pub163, "--digest", "00"+digest[2:], "--r", r, "--s", s)
	assert.ErrorContains(t, err, "signature does not match")

	_, err = runCLI(t, "--params", params, "sign", "--key", "0", "--digest", digest)
	assert.Error(t, err)
}

func TestKeygen(t *testing.T) {
	params := params163(t)
	out, err := runCLI(t, "--params", params, "keygen")
	require.NoError(t, err)
	priv, pub := outputField(t, out, "private"), outputField(t, out, "public")
	assert.Len(t, pub, 42)

	out, err = runCLI(t, "--params", params, "sign", "--key", priv, "--digest", "abcdef")
	require.NoError(t, err)
	out, err = runCLI(t, "--params", params, "verify", "--pub", pub, "--digest", "abcdef",
		"--r", outputField(t, out, "r"), "--s", outputField(t, out, "s"))
	require.NoError(t, err)
	assert.Equal(t, "valid\n", out)
}

func TestVerifyBatch(t *testing.T) {
	params := params163(t)
	for _, format := range []string{"json", "csv"} {
		for _, workers := range []string{"0", "1"} {
			out, err := runCLI(t, "--params", params, "verify-batch",
				"--pub", pub163, "--format", format, "--workers", workers,
				filepath.Join(testdataDir, "signatures_163."+format))
			assert.ErrorContains(t, err, "3 of 8 records did not verify", "%s/%s", format, workers)
			assert.Contains(t, out, "valid: 5, failed: 1, malformed: 2, skipped: 0")
			assert.Contains(t, out, "record 5: signature does not match")
		}
	}

	out, err := runCLI(t, "--params", params, "verify-batch",
		"--pub", pub163, "--max-records", "5",
		filepath.Join(testdataDir, "signatures_163.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "valid: 5, failed: 0")

	_, err = runCLI(t, "--params", params, "verify-batch", "--pub", pub163, "--format", "xml", "x.xml")
	assert.ErrorContains(t, err, "unknown format")

	_, err = runCLI(t, "--params", params, "verify-batch", "--pub", pub163)
	assert.ErrorContains(t, err, "need to provide a signature file")
}

func TestPoint(t *testing.T) {
	params := params163(t)

	out, err := runCLI(t, "--params", params, "point", "decode", pub163)
	require.NoError(t, err)
	x, y := outputField(t, out, "x"), outputField(t, out, "y")

	out, err = runCLI(t, "--params", params, "point", "encode", "--x", x, "--y", y)
	require.NoError(t, err)
	assert.Equal(t, pub163, strings.TrimSpace(out))

	_, err = runCLI(t, "--params", params, "point", "encode", "--x", x, "--y", x)
	assert.Error(t, err)

	_, err = runCLI(t, "--params", params, "point", "decode", "0102")
	assert.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	_, err := runCLI(t, "--log-level", "debug", "--params", params163(t), "params", "inspect")
	assert.NoError(t, err)
	_, err = runCLI(t, "--log-level", "loud", "--params", params163(t), "params", "inspect")
	assert.NoError(t, err)
}
