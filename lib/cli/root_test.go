package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/nicolasacquaviva/cuerre-gen/lib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	config, err := lib.LoadConfig(lib.NewViper(), "")
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	code := Execute(config, args, &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestGenerate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out", "test.png")

	code, stdout, stderr := run(t, "-c", "HELLO", "-o", out)
	require.Equal(t, lib.ExitOK, code, stderr)

	abs, err := filepath.Abs(out)
	require.NoError(t, err)
	assert.Equal(t, "Saved QR to: "+abs+"\n", stdout)
	assert.Empty(t, stderr)

	got, err := lib.ReadQRFile(out)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", got)
}

func TestGenerateLongFlags(t *testing.T) {
	out := filepath.Join(t.TempDir(), "wifi.gif")

	code, _, stderr := run(t,
		"--content", "WIFI:T:WPA;S:home;P:secret;;",
		"--out", out,
		"--error", "Q",
		"--box-size", "6",
		"--border", "2",
		"--fill", "#003366",
		"--back", "ivory",
		"--version", "4",
		"--verify",
	)
	require.Equal(t, lib.ExitOK, code, stderr)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
}

func TestGenerateEngines(t *testing.T) {
	dir := t.TempDir()

	for _, engine := range lib.EngineNames() {
		out := filepath.Join(dir, engine+".png")

		code, _, stderr := run(t, "-c", "engine "+engine, "-o", out, "--engine", engine, "--verify")
		assert.Equal(t, lib.ExitOK, code, stderr)
	}
}

func TestGenerateExitCodes(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	cases := []struct {
		name string
		args []string
		code int
		msg  string
	}{
		{"empty content", []string{"-c", "   "}, lib.ExitValidation, "Error: Content is empty. Provide some text or a URL.\n"},
		{"bad level", []string{"-c", "x", "-e", "Z"}, lib.ExitValidation, "Error: Invalid error correction 'Z'. Use one of: L, M, Q, H\n"},
		{"missing content", []string{}, lib.ExitValidation, ""},
		{"bad flag value", []string{"-c", "x", "-s", "big"}, lib.ExitValidation, ""},
		{"unknown flag", []string{"-c", "x", "--nope"}, lib.ExitValidation, ""},
		{"explicit version zero", []string{"-c", "x", "-v", "0"}, lib.ExitValidation, ""},
		{"version too high", []string{"-c", "x", "-v", "41"}, lib.ExitValidation, ""},
		{"bad engine", []string{"-c", "x", "--engine", "nope"}, lib.ExitValidation, ""},
		{"too long for version", []string{"-c", strings.Repeat("x", 200), "-v", "1", "-o", filepath.Join(dir, "a.png")}, lib.ExitEncoding, ""},
		{"too long for yeqown version", []string{"-c", strings.Repeat("x", 200), "-v", "1", "--engine", "yeqown", "-o", filepath.Join(dir, "b.png")}, lib.ExitEncoding, ""},
		{"huge box size", []string{"-c", "HELLO", "-s", "2000000000"}, lib.ExitValidation, ""},
		{"huge border", []string{"-c", "HELLO", "-b", "2000000000"}, lib.ExitValidation, ""},
		{"extra argument", []string{"-c", "x", "stray"}, lib.ExitValidation, ""},
		{"unwritable", []string{"-c", "x", "-o", filepath.Join(blocker, "qr.png")}, lib.ExitFilesystem, ""},
	}

	for _, c := range cases {
		var code int
		var stdout, stderr string

		require.NotPanics(t, func() {
			code, stdout, stderr = run(t, c.args...)
		}, c.name)

		assert.Equal(t, c.code, code, c.name)
		assert.Empty(t, stdout, c.name)
		assert.True(t, strings.HasPrefix(stderr, "Error: "), c.name)
		assert.Equal(t, 1, strings.Count(stderr, "\n"), c.name)

		if c.msg != "" {
			assert.Equal(t, c.msg, stderr, c.name)
		}
	}
}

func TestGenerateDefaultsFromConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CUERRE_OUT", filepath.Join(dir, "configured.bmp"))
	t.Setenv("CUERRE_ENGINE", "rsc")

	code, stdout, stderr := run(t, "-c", "from env")
	require.Equal(t, lib.ExitOK, code, stderr)
	assert.Contains(t, stdout, "configured.bmp")

	got, err := lib.ReadQRFile(filepath.Join(dir, "configured.bmp"))
	require.NoError(t, err)
	assert.Equal(t, "from env", got)
}

func TestHelp(t *testing.T) {
	code, stdout, _ := run(t, "--help")
	assert.Equal(t, lib.ExitOK, code)

	for _, flag := range []string{"--content", "--out", "--error", "--box-size", "--border", "--fill", "--back", "--version", "serve"} {
		assert.Contains(t, stdout, flag)
	}
}
