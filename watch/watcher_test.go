package watch

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giodamelio/edo"
)

const helloManifest = `name: greeting
template: "Hello, {name}!"
statics:
  name: World
`

const goodbyeManifest = `name: greeting
template: "Goodbye, {name}!"
statics:
  name: World
`

func writeManifest(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "greeting.yaml")
	writeManifest(t, path, helloManifest)

	w, err := New(path)
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, "greeting", w.Definition().Name)

	out, err := w.Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", out)
}

func TestNew_LoadFailure(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := New(filepath.Join(tmpDir, "absent.yaml"))
	assert.Error(t, err, "missing file should fail")

	path := filepath.Join(tmpDir, "broken.yaml")
	writeManifest(t, path, "name: broken")
	_, err = New(path)
	assert.Error(t, err, "invalid manifest should fail")
}

func TestNew_SetupFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "greeting.yaml")
	writeManifest(t, path, helloManifest)

	_, err := New(path, WithSetup(func(*edo.Template) error {
		return errors.New("boom")
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestWatcher_ReloadOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "greeting.yaml")
	writeManifest(t, path, helloManifest)

	w, err := New(path)
	require.NoError(t, err)
	defer w.Close()

	// Wait a bit for the watch to start
	time.Sleep(50 * time.Millisecond)

	writeManifest(t, path, goodbyeManifest)

	select {
	case tmpl := <-w.Updates():
		out, err := tmpl.Render(nil)
		require.NoError(t, err)
		assert.Equal(t, "Goodbye, World!", out)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for reload")
	}

	out, err := w.Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "Goodbye, World!", out)
}

func TestWatcher_KeepsLastGoodTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "greeting.yaml")
	writeManifest(t, path, helloManifest)

	w, err := New(path)
	require.NoError(t, err)
	defer w.Close()

	time.Sleep(50 * time.Millisecond)

	// A rewrite that fails to parse must not replace the template.
	writeManifest(t, path, "template: [oops")
	time.Sleep(200 * time.Millisecond)

	out, err := w.Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", out)

	// A later good rewrite recovers.
	writeManifest(t, path, goodbyeManifest)

	select {
	case <-w.Updates():
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for recovery reload")
	}

	out, err = w.Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "Goodbye, World!", out)
}

func TestWatcher_SetupAndValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	writeManifest(t, path, `name: report
template: "{upper(status)} for {user}"
vars:
  - name: user
    required: true
`)

	var setups atomic.Int32
	w, err := New(path,
		WithValues(map[string]string{"user": "ada"}),
		WithSetup(func(tmpl *edo.Template) error {
			setups.Add(1)
			tmpl.RegisterBuiltins()
			return nil
		}),
	)
	require.NoError(t, err)
	defer w.Close()

	out, err := w.Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "STATUS for ada", out)
	assert.EqualValues(t, 1, setups.Load())

	// Values and setup apply again on reload.
	time.Sleep(50 * time.Millisecond)
	writeManifest(t, path, `name: report
template: "{user}: {upper(done)}"
vars:
  - name: user
    required: true
`)

	select {
	case tmpl := <-w.Updates():
		out, err := tmpl.Render(nil)
		require.NoError(t, err)
		assert.Equal(t, "ada: DONE", out)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for reload")
	}
	assert.GreaterOrEqual(t, setups.Load(), int32(2))
}

func TestWatcher_Close(t *testing.T) {
	path := filepath.Join(t.TempDir(), "greeting.yaml")
	writeManifest(t, path, helloManifest)

	w, err := New(path)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	// Close is idempotent.
	require.NoError(t, w.Close())

	// The updates channel drains and closes.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-w.Updates():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("timeout waiting for updates channel to close")
		}
	}
}
