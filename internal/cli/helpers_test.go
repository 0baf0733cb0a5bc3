package cli

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// runCLI executes the command tree against a throwaway vault and
// returns stdout. All end-to-end tests go through the real root
// command so that flag wiring and config resolution are covered too.
func runCLI(t *testing.T, vaultDir string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)

	full := append([]string{"--vault", vaultDir, "--owner", "tester", "--format", "json"}, args...)
	cmd.SetArgs(full)

	err := cmd.Execute()
	return buf.String(), err
}

// decodeResponse parses the JSON envelope and unmarshals its data
// payload into target (pass nil to skip).
func decodeResponse(t *testing.T, out string, target any) CLIResponse {
	t.Helper()

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "output: %s", out)
	if target != nil {
		raw, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, target))
	}
	return resp
}

// writeTestJPEG writes a decodable JPEG file and returns its path.
func writeTestJPEG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// writeJunkFile writes a file no decoder will accept.
func writeJunkFile(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("definitely not an image"), 0o644))
	return path
}

// mustCreateFolder creates a folder through the CLI and returns its id.
func mustCreateFolder(t *testing.T, vaultDir, name string) string {
	t.Helper()

	out, err := runCLI(t, vaultDir, "folders", "create", name)
	require.NoError(t, err)

	var f folderView
	decodeResponse(t, out, &f)
	require.NotEmpty(t, f.ID)
	return f.ID
}
