package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aidanlsb/tablink/internal/config"
	"github.com/aidanlsb/tablink/internal/linkresolver"
	"github.com/aidanlsb/tablink/internal/logging"
)

var captureStdoutMu sync.Mutex

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	captureStdoutMu.Lock()
	defer captureStdoutMu.Unlock()

	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	outputCh := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		_ = r.Close()
		outputCh <- buf.String()
	}()

	fn()

	os.Stdout = orig
	_ = w.Close()
	return <-outputCh
}

// fakes for the resolver's external services

type fakeTabs struct{ tabs []linkresolver.Tab }

func (f fakeTabs) Available(context.Context) bool { return f.tabs != nil }

func (f fakeTabs) Tabs(context.Context) ([]linkresolver.Tab, error) { return f.tabs, nil }

type fakeApps struct{ app linkresolver.Application }

func (f fakeApps) Frontmost(context.Context) (linkresolver.Application, error) { return f.app, nil }

type fakeScripts struct{ out string }

func (f fakeScripts) Run(context.Context, string) (string, error) { return f.out, nil }

type fakeClipboard struct{ text string }

func (f fakeClipboard) ReadText() (string, error) { return f.text, nil }

// cliEnv configures the CLI against a temp config and fake OS services.
type cliEnv struct {
	deps     linkresolver.Dependencies
	platform string
}

func setupCLI(t *testing.T, configBody string, env *cliEnv) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	cfgPath := filepath.Join(dir, "config.toml")
	body := "scripts_file = \"" + filepath.ToSlash(filepath.Join(dir, "scripts.yaml")) + "\"\n" + configBody
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))

	prevResolver := newResolver
	prevWrite := writeClipboard
	t.Cleanup(func() {
		newResolver = prevResolver
		writeClipboard = prevWrite
		resetCLIState()
	})

	if env != nil {
		newResolver = func(c *config.Config, log *zap.Logger) (*linkresolver.Resolver, error) {
			reg, err := loadRegistry(c)
			if err != nil {
				return nil, err
			}
			return linkresolver.New(env.deps,
				linkresolver.WithPlatform(env.platform),
				linkresolver.WithRegistry(reg),
				linkresolver.WithClipboardFallback(c.Resolver.ClipboardFallback),
				linkresolver.WithLogger(log),
			), nil
		}
	}
	writeClipboard = func(string) error { return nil }

	resetCLIState()
	return cfgPath
}

func resetCLIState() {
	cfg = nil
	resolvedConfigPath = ""
	logger = logging.Nop()
	resetFlags(rootCmd)
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func runCLI(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	var err error
	out := captureStdout(t, func() {
		err = execute(context.Background(), append([]string{"--config", cfgPath}, args...))
	})
	return out, err
}

func decodeResponse(t *testing.T, out string) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "output: %s", out)
	return resp
}

func dataMap(t *testing.T, resp Response) map[string]interface{} {
	t.Helper()
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "expected object data, got %T", resp.Data)
	return data
}
