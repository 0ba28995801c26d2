package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/farag11/daheeh/internal/client/config"
	"github.com/farag11/daheeh/internal/logging"
)

func testConfig(dbPath string) *config.Config {
	return &config.Config{
		DatabasePath:  dbPath,
		Hasher:        "sha256",
		ToastTTL:      time.Minute,
		VisibleToasts: 3,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

func newTestApp(t *testing.T, dbPath string) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	a, err := newApp(context.Background(), testConfig(dbPath), logging.NewNop(), strings.NewReader(""), &out)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a, &out
}

// stubInputs answers text prompts from texts in order and every password
// prompt with password.
func stubInputs(t *testing.T, password string, texts ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		next := texts[0]
		texts = texts[1:]
		return next, nil
	}
	getPassword = func(_ *bufio.Reader, _ io.Writer) ([]byte, error) {
		return []byte(password), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}
