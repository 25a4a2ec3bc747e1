package configuration

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnv_ReadsExistingFiles(t *testing.T) {
	tmp := t.TempDir()

	requireWriteFile(t, filepath.Join(tmp, ".env.local"), "ACCORD_HRMS_TEST_ENV_LOAD=ok\n")

	origWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	_ = os.Unsetenv("ACCORD_HRMS_TEST_ENV_LOAD")

	n, err := LoadEnv([]string{".env", ".env.local"})
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 env file loaded, got %d", n)
	}
	if got := os.Getenv("ACCORD_HRMS_TEST_ENV_LOAD"); got != "ok" {
		t.Fatalf("expected env var loaded from .env.local, got %q", got)
	}
}

func TestConfiguration_Load_Defaults(t *testing.T) {
	c := &Configuration{}
	if err := c.load(nil); err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Database.Name != "accord_hrms" {
		t.Fatalf("unexpected default db name %q", c.Database.Name)
	}
	if c.Hierarchy.DefaultPassword == "" {
		t.Fatal("expected default hierarchy password")
	}
	if c.Notifications.UnreadWindow.Hours() != 168 {
		t.Fatalf("unexpected unread window %s", c.Notifications.UnreadWindow)
	}
	if c.Logger() == nil {
		t.Fatal("expected logger to be initialized")
	}
}

func TestNotificationOptions_Validate(t *testing.T) {
	opts := NotificationOptions{UnreadWindow: 0, BadgePollInterval: 1, ListLimit: 1}
	if err := opts.Validate(); err == nil {
		t.Fatal("expected error for zero unread window")
	}
}

func requireWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
