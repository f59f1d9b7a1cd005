package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	knobSVG   = filepath.Join("..", "..", "svgdraw", "testdata", "knob.svg")
	darkTheme = filepath.Join("..", "..", "svgdraw", "testdata", "dark.json")
)

// run executes the command line and returns its standard output
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	stdout, stderr, err := runLogged(t, args...)
	t.Log(stderr)
	return stdout, err
}

// runLogged also returns the log output
func runLogged(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRenderPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "knob.png")
	stdout, err := run(t, "render", knobSVG, "--theme", darkTheme, "--out", out, "--scale", "2")
	require.NoError(t, err)
	assert.Equal(t, out+"\n", stdout)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 128, img.Bounds().Dy())
}

func TestRenderPDFWithConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "svgthemer.yaml")
	cfg := "render:\n  format: pdf\n  background: \"#ffffff\"\n  output_dir: " + filepath.Join(dir, "out") + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	stdout, err := run(t, "--config", cfgPath, "render", knobSVG)
	require.NoError(t, err)
	out := filepath.Join(dir, "out", "knob.pdf")
	assert.Equal(t, out+"\n", stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "render", filepath.Join(dir, "missing.svg"), "--out", filepath.Join(dir, "a.png"))
	assert.ErrorContains(t, err, "can't load image")

	_, err = run(t, "render", knobSVG, "--theme", filepath.Join(dir, "missing.json"), "--out", filepath.Join(dir, "b.png"))
	assert.ErrorContains(t, err, "can't load theme")

	_, err = run(t, "render", knobSVG, "--format", "gif", "--out", filepath.Join(dir, "c.gif"))
	assert.ErrorContains(t, err, "unsupported format")
	assert.NoFileExists(t, filepath.Join(dir, "c.gif"))

	_, err = run(t, "render")
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	broken := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"name": "Broken", "styles": {"a": {"fill": "red"}}}`), 0o644))

	stdout, err := run(t, "check", darkTheme)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"Dark", 2 id rules, 2 class rules`)

	stdout, err = run(t, "check", darkTheme, broken)
	assert.ErrorIs(t, err, errFailed)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], broken+": theme:"))
}

func TestLint(t *testing.T) {
	invalid := filepath.Join(t.TempDir(), "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"name": "", "styles": {"a": {"opacity": 2}}}`), 0o644))

	stdout, err := run(t, "lint", darkTheme)
	require.NoError(t, err)
	assert.Equal(t, darkTheme+": ok\n", stdout)

	stdout, err = run(t, "lint", invalid)
	assert.ErrorIs(t, err, errFailed)
	assert.GreaterOrEqual(t, strings.Count(stdout, invalid+": "), 2)
}

func TestShapes(t *testing.T) {
	stdout, err := run(t, "shapes", knobSVG)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 6) // header and five shapes
	assert.Equal(t, []string{"ID", "CLASS", "BOUNDS", "PATHS", "POINTS"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"ring", "track"}, strings.Fields(lines[1])[:2])

	stdout, err = run(t, "shapes", knobSVG, "--prefix", "mark")
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"mark", "min"}, strings.Fields(lines[1])[:2])
	assert.Equal(t, []string{"mark", "max"}, strings.Fields(lines[2])[:2])

	stdout, err = run(t, "shapes", knobSVG, "--match", "^(knob|pointer)$")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(stdout), "\n"), 3)

	_, err = run(t, "shapes", knobSVG, "--match", "(")
	assert.ErrorContains(t, err, "invalid --match")
}

func TestLoggingFromEnv(t *testing.T) {
	t.Setenv("SVGTHEME_LOG_LEVEL", "debug")
	t.Setenv("SVGTHEME_LOG_FORMAT", "json")

	_, stderr, err := runLogged(t, "check", darkTheme)
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"configuration loaded"`)

	// the flag wins over the environment
	_, stderr, err = runLogged(t, "--log-level", "error", "check", darkTheme)
	require.NoError(t, err)
	assert.NotContains(t, stderr, "configuration loaded")
}

func TestLoggingFromConfigFile(t *testing.T) {
	t.Setenv("SVGTHEME_LOG_LEVEL", "")
	cfgPath := filepath.Join(t.TempDir(), "svgthemer.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logging:\n  level: debug\n"), 0o644))

	_, stderr, err := runLogged(t, "--config", cfgPath, "check", darkTheme)
	require.NoError(t, err)
	assert.Contains(t, stderr, "DBG configuration loaded")
}
