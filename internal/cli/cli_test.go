package cli

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/me/unishop/internal/config"
	"github.com/me/unishop/internal/logging"
	"github.com/me/unishop/internal/server"
)

// startTestServer starts the stub storefront and returns its URL.
func startTestServer(t *testing.T) string {
	t.Helper()
	srv := server.New(config.DevServerConfig{}, logging.Discard())
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts.URL
}

// runCLI executes the root command with a shared session cache and captures stdout.
func runCLI(t *testing.T, serverURL, dbPath string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()

	full := append([]string{"--server", serverURL, "--db", dbPath, "--log-level", "error"}, args...)
	root.SetArgs(full)

	var errBuf bytes.Buffer
	root.SetOut(&errBuf)
	root.SetErr(&errBuf)

	// Capture stdout (command output is printed, not logged).
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := root.Execute()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), err
}

func testDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "unishop.db")
}

func TestLoginWhoamiLogout(t *testing.T) {
	url := startTestServer(t)
	db := testDB(t)

	out, err := runCLI(t, url, db, "login", "--credential", "alice@uni.edu")
	if err != nil {
		t.Fatalf("login: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "Signed in as alice") {
		t.Errorf("login output: %s", out)
	}

	// The session survives across invocations via the local cache.
	out, err = runCLI(t, url, db, "whoami")
	if err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if !strings.Contains(out, "alice@uni.edu") {
		t.Errorf("whoami output: %s", out)
	}

	out, err = runCLI(t, url, db, "logout")
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	if !strings.Contains(out, "Signed out.") {
		t.Errorf("logout output: %s", out)
	}

	out, err = runCLI(t, url, db, "whoami")
	if err != nil {
		t.Fatalf("whoami after logout: %v", err)
	}
	if !strings.Contains(out, "Not signed in.") {
		t.Errorf("whoami after logout output: %s", out)
	}
}

func TestCartCommands(t *testing.T) {
	url := startTestServer(t)
	db := testDB(t)

	if out, err := runCLI(t, url, db, "login", "--credential", "bob@uni.edu"); err != nil {
		t.Fatalf("login: %v\noutput: %s", err, out)
	}

	out, err := runCLI(t, url, db, "cart", "add", "p_notebook", "2")
	if err != nil {
		t.Fatalf("cart add: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "Added 2 × Spiral Notebook A5") {
		t.Errorf("cart add output: %s", out)
	}

	out, err = runCLI(t, url, db, "cart", "list")
	if err != nil {
		t.Fatalf("cart list: %v", err)
	}
	if !strings.Contains(out, "p_notebook") || !strings.Contains(out, "2 item(s)") {
		t.Errorf("cart list output: %s", out)
	}

	out, err = runCLI(t, url, db, "cart", "update", "p_notebook", "5")
	if err != nil {
		t.Fatalf("cart update: %v", err)
	}
	if !strings.Contains(out, "5 item(s)") {
		t.Errorf("cart update output: %s", out)
	}

	out, err = runCLI(t, url, db, "cart", "clear")
	if err != nil {
		t.Fatalf("cart clear: %v", err)
	}

	out, err = runCLI(t, url, db, "cart", "list")
	if err != nil {
		t.Fatalf("cart list after clear: %v", err)
	}
	if !strings.Contains(out, "Cart is empty.") {
		t.Errorf("cart list after clear output: %s", out)
	}
}

func TestCartAdd_RequiresLogin(t *testing.T) {
	url := startTestServer(t)
	db := testDB(t)

	out, err := runCLI(t, url, db, "cart", "add", "p_notebook")
	if err == nil {
		t.Errorf("cart add without login should fail, output: %s", out)
	}
	if !strings.Contains(out, "sign in") {
		t.Errorf("expected sign-in hint, got: %s", out)
	}
}

func TestProductsCommand(t *testing.T) {
	url := startTestServer(t)
	db := testDB(t)

	out, err := runCLI(t, url, db, "products")
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	if !strings.Contains(out, "p_notebook") || !strings.Contains(out, "Campus Backpack 25L") {
		t.Errorf("products output: %s", out)
	}
}

func TestProfileCommand(t *testing.T) {
	url := startTestServer(t)
	db := testDB(t)

	if out, err := runCLI(t, url, db, "login", "--credential", "carol@uni.edu"); err != nil {
		t.Fatalf("login: %v\noutput: %s", err, out)
	}

	out, err := runCLI(t, url, db, "profile", "--university", "Example University")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if !strings.Contains(out, "Example University") {
		t.Errorf("profile output: %s", out)
	}
}
