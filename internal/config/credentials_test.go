package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/edgarhsanchez/gitlab-ops/internal/testutil"
)

func TestCredentialsValidate(t *testing.T) {
	tests := []struct {
		name    string
		creds   Credentials
		wantErr bool
	}{
		{"valid", Credentials{Token: testutil.FakeGitLabToken, Host: "gitlab.com"}, false},
		{"empty token", Credentials{Host: "gitlab.com"}, true},
		{"empty host", Credentials{Token: testutil.FakeGitLabToken}, true},
		{"whitespace token", Credentials{Token: "   ", Host: "gitlab.com"}, true},
		{"both empty", Credentials{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStaticCredentials(t *testing.T) {
	creds, err := StaticCredentials{Token: testutil.FakeGitLabToken, Host: "gitlab.com"}.Credentials()
	if err != nil {
		t.Fatalf("Credentials() failed: %v", err)
	}
	if creds.Token != testutil.FakeGitLabToken {
		t.Errorf("Token = %s", creds.Token)
	}

	if _, err := (StaticCredentials{Host: "gitlab.com"}).Credentials(); err == nil {
		t.Error("Credentials() should fail on empty token")
	}
}

func TestEnvSupplierFromEnvironment(t *testing.T) {
	t.Setenv(EnvToken, testutil.FakeGitLabToken)
	t.Setenv(EnvHost, "gitlab.example.com")

	s := &EnvSupplier{
		DotenvPath: filepath.Join(t.TempDir(), ".env"),
		In:         strings.NewReader(""),
	}
	creds, err := s.Credentials()
	if err != nil {
		t.Fatalf("Credentials() failed: %v", err)
	}
	if creds.Token != testutil.FakeGitLabToken {
		t.Errorf("Token = %s, want %s", creds.Token, testutil.FakeGitLabToken)
	}
	if creds.Host != "gitlab.example.com" {
		t.Errorf("Host = %s, want gitlab.example.com", creds.Host)
	}
}

func TestEnvSupplierFromDotenv(t *testing.T) {
	t.Setenv(EnvToken, "")
	t.Setenv(EnvHost, "")
	os.Unsetenv(EnvToken)
	os.Unsetenv(EnvHost)

	path := filepath.Join(t.TempDir(), ".env")
	content := EnvToken + "=" + testutil.FakeGitLabToken + "\n" + EnvHost + "=gitlab.example.com\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	s := &EnvSupplier{
		DotenvPath: path,
		In:         strings.NewReader(""),
	}
	creds, err := s.Credentials()
	if err != nil {
		t.Fatalf("Credentials() failed: %v", err)
	}
	if creds.Token != testutil.FakeGitLabToken {
		t.Errorf("Token = %s, want %s", creds.Token, testutil.FakeGitLabToken)
	}
	if creds.Host != "gitlab.example.com" {
		t.Errorf("Host = %s, want gitlab.example.com", creds.Host)
	}
}

func TestEnvSupplierPromptsAndPersists(t *testing.T) {
	t.Setenv(EnvToken, "")
	t.Setenv(EnvHost, "")
	os.Unsetenv(EnvToken)
	os.Unsetenv(EnvHost)

	path := filepath.Join(t.TempDir(), ".env")
	var out strings.Builder

	s := &EnvSupplier{
		DotenvPath: path,
		In:         strings.NewReader(testutil.FakeGitLabToken + "\ngitlab.example.com\n"),
		Out:        &out,
	}
	creds, err := s.Credentials()
	if err != nil {
		t.Fatalf("Credentials() failed: %v", err)
	}
	if creds.Token != testutil.FakeGitLabToken || creds.Host != "gitlab.example.com" {
		t.Errorf("creds = %+v", creds)
	}
	if !strings.Contains(out.String(), "GitLab token") {
		t.Error("expected a token prompt on the output writer")
	}

	// Both values should be persisted to .env for the next run.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read .env: %v", err)
	}
	if !strings.Contains(string(data), EnvToken+"="+testutil.FakeGitLabToken) {
		t.Errorf(".env missing token entry: %q", string(data))
	}
	if !strings.Contains(string(data), EnvHost+"=gitlab.example.com") {
		t.Errorf(".env missing host entry: %q", string(data))
	}
}

func TestEnvSupplierBlankPromptFails(t *testing.T) {
	t.Setenv(EnvToken, "")
	t.Setenv(EnvHost, "")
	os.Unsetenv(EnvToken)
	os.Unsetenv(EnvHost)

	s := &EnvSupplier{
		DotenvPath: filepath.Join(t.TempDir(), ".env"),
		In:         strings.NewReader("\n\n"),
		Out:        &strings.Builder{},
	}
	if _, err := s.Credentials(); err == nil {
		t.Error("Credentials() should fail when the user leaves the prompt blank")
	}
}
