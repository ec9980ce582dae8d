package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/uiregistry/pkg/errors"
	"github.com/matzehuels/uiregistry/pkg/registry"
	"github.com/matzehuels/uiregistry/pkg/service"
)

const glassButton = `/**
 * A glassy button
 */
import { motion } from "motion/react";
import { cn } from "@/lib/utils";
export function GlassButton() { return <motion.button className={cn("x")} /> }
`

// workspace creates a project directory with components and chdirs into it.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "components", "ui")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "glass-button.tsx"), []byte(glassButton), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "spark.tsx"), []byte("export const Spark = () => null\n"), 0o644))
	t.Chdir(dir)
	return dir
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBuildThenInspect(t *testing.T) {
	dir := workspace(t)

	_, err := runCLI(t, "build")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "registry", "__generated__", "registry.ts"))
	require.NoError(t, err)
	reg, err := registry.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"glass-button", "spark"}, reg.Names())

	out, err := runCLI(t, "list", "--names")
	require.NoError(t, err)
	assert.Equal(t, "glass-button\nspark\n", out)

	out, err = runCLI(t, "show", "glass-button.json")
	require.NoError(t, err)
	var doc service.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "glass-button", doc.Name)
	assert.Equal(t, []string{"motion", "clsx", "tailwind-merge"}, doc.Dependencies)
	assert.Equal(t, "A glassy button", doc.Meta.Description)

	out, err = runCLI(t, "show", "spark", "--source-only")
	require.NoError(t, err)
	assert.Equal(t, "export const Spark = () => null\n", out)

	out, err = runCLI(t, "graph", "--packages")
	require.NoError(t, err)
	assert.Contains(t, out, `"glass-button" -> "npm:motion"`)

	out, err = runCLI(t, "graph", "--dependents-of", "motion")
	require.NoError(t, err)
	assert.Equal(t, "glass-button\nspark\n", out)
}

func TestShowFallsBackToSource(t *testing.T) {
	dir := workspace(t)
	_, err := runCLI(t, "build")
	require.NoError(t, err)

	// Added after the build, so only the fallback path can find it.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "components", "ui", "late-card.tsx"),
		[]byte("/** Documented */\nimport gsap from 'gsap'\n"), 0o644))

	out, err := runCLI(t, "show", "late-card")
	require.NoError(t, err)
	var doc service.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, []string{"gsap"}, doc.Dependencies)
	assert.Equal(t, "Late Card component", doc.Meta.Description)
}

func TestShowNotFound(t *testing.T) {
	workspace(t)
	_, err := runCLI(t, "show", "nope")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound), "err = %v", err)
}

func TestListWithoutArtifact(t *testing.T) {
	workspace(t)
	_, err := runCLI(t, "list")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound), "err = %v", err)
}

func TestBuildMissingSource(t *testing.T) {
	dir := workspace(t)
	_, err := runCLI(t, "build", "--source", "does/not/exist")
	assert.True(t, errors.Is(err, errors.ErrCodeBuildAbort), "err = %v", err)

	_, statErr := os.Stat(filepath.Join(dir, "registry", "__generated__", "registry.ts"))
	assert.True(t, os.IsNotExist(statErr), "artifact written after failed build")
}

func TestConfigFileAndFlagPrecedence(t *testing.T) {
	dir := workspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "uiregistry.toml"), []byte(`
[artifact]
url = "out/from-config.ts"
`), 0o644))

	_, err := runCLI(t, "build")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "out", "from-config.ts"))

	_, err = runCLI(t, "build", "--artifact", "out/from-flag.ts")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "out", "from-flag.ts"))

	alt := filepath.Join(dir, "alt.toml")
	require.NoError(t, os.WriteFile(alt, []byte("[detect]\nmode = \"nope\"\n"), 0o644))
	_, err = runCLI(t, "--config", alt, "build")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "err = %v", err)
}

func TestDetectCommand(t *testing.T) {
	dir := workspace(t)
	_, err := runCLI(t, "detect", "--mode", "imports", "--explain", filepath.Join(dir, "components", "ui", "glass-button.tsx"))
	require.NoError(t, err)

	_, err = runCLI(t, "detect", filepath.Join(dir, "missing.tsx"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "err = %v", err)
}

func TestGraphUnknownFormat(t *testing.T) {
	workspace(t)
	_, err := runCLI(t, "build")
	require.NoError(t, err)
	_, err = runCLI(t, "graph", "-f", "png")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "err = %v", err)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	svc := service.New(registry.Empty(), service.Config{})
	srv := &http.Server{Handler: svc.Handler(nil)}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- serve(ctx, srv, ln, newLogger(io.Discard, LogInfo)) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestDisplayAddr(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"[::]:8080", "localhost:8080"},
		{"0.0.0.0:3001", "localhost:3001"},
		{"127.0.0.1:9000", "127.0.0.1:9000"},
	}
	for _, tt := range tests {
		addr, err := net.ResolveTCPAddr("tcp", tt.addr)
		require.NoError(t, err)
		assert.Equal(t, tt.want, displayAddr(addr), tt.addr)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.True(t, strings.HasSuffix(truncate(strings.Repeat("é", 20), 5), "…"))
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := runCLI(t, "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "uiregistry")
		})
	}

	_, err := runCLI(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestVerboseEnablesDebug(t *testing.T) {
	workspace(t)

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--verbose", "build"})
	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Equal(t, LogDebug, c.Logger.GetLevel())
}
