package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/edgarhsanchez/gitlab-ops/internal/logging"
)

// Environment variables consulted for credentials.
const (
	EnvToken = "GITLAB_TOKEN"
	EnvHost  = "GITLAB_HOST"
)

// Credentials is a validated (token, host) pair for one GitLab instance.
type Credentials struct {
	Token string
	Host  string
}

// Validate rejects empty credentials before any network activity.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("GitLab token is required (set %s or add it to .env)", EnvToken)
	}
	if strings.TrimSpace(c.Host) == "" {
		return fmt.Errorf("GitLab host is required (set %s or add it to .env)", EnvHost)
	}
	return nil
}

// CredentialSupplier produces a validated (token, host) pair.
type CredentialSupplier interface {
	Credentials() (Credentials, error)
}

// StaticCredentials is a CredentialSupplier with fixed values, used in tests
// and when both values come from flags.
type StaticCredentials Credentials

// Credentials returns the fixed pair after validation.
func (s StaticCredentials) Credentials() (Credentials, error) {
	c := Credentials(s)
	if err := c.Validate(); err != nil {
		return Credentials{}, err
	}
	return c, nil
}

// EnvSupplier resolves credentials from a .env file and the process
// environment, prompting on the given reader/writer for anything still
// missing. Per field the order is Overrides (flags), environment, Defaults
// (config file), prompt. Values entered at the prompt are appended to .env
// so the next run does not ask again.
type EnvSupplier struct {
	DotenvPath string      // defaults to ".env"
	In         io.Reader   // defaults to os.Stdin
	Out        io.Writer   // defaults to os.Stdout
	Overrides  Credentials // flag values, win over everything
	Defaults   Credentials // config-file values, consulted before prompting
}

// NewEnvSupplier returns an EnvSupplier with the default sources.
func NewEnvSupplier() *EnvSupplier {
	return &EnvSupplier{
		DotenvPath: ".env",
		In:         os.Stdin,
		Out:        os.Stdout,
	}
}

// Credentials resolves the (token, host) pair.
func (s *EnvSupplier) Credentials() (Credentials, error) {
	path := s.DotenvPath
	if path == "" {
		path = ".env"
	}

	// Process environment wins over .env, matching godotenv semantics.
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		logging.Warn("failed to load .env", "path", path, "error", err)
	}

	token := firstNonEmpty(s.Overrides.Token, os.Getenv(EnvToken), s.Defaults.Token)
	host := firstNonEmpty(s.Overrides.Host, os.Getenv(EnvHost), s.Defaults.Host)

	reader := bufio.NewReader(s.in())

	if token == "" {
		var err error
		token, err = s.prompt(reader, "Enter your GitLab token (leave blank to exit): ")
		if err != nil {
			return Credentials{}, err
		}
		if token != "" {
			s.persist(path, EnvToken, token)
		}
	}

	if host == "" {
		var err error
		host, err = s.prompt(reader, "Enter your GitLab host (leave blank to exit): ")
		if err != nil {
			return Credentials{}, err
		}
		if host != "" {
			s.persist(path, EnvHost, host)
		}
	}

	creds := Credentials{Token: token, Host: host}
	if err := creds.Validate(); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// prompt writes the message and reads one trimmed line.
func (s *EnvSupplier) prompt(reader *bufio.Reader, message string) (string, error) {
	fmt.Fprint(s.out(), message)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// persist appends KEY=value to the .env file. Failure is a warning, not
// fatal; the value is still used for this run.
func (s *EnvSupplier) persist(path, key, value string) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		logging.Warn("failed to save credential to .env", "key", key, "error", err)
		return
	}
	defer func() { _ = f.Close() }()

	if _, err := fmt.Fprintf(f, "%s=%s\n", key, value); err != nil {
		logging.Warn("failed to save credential to .env", "key", key, "error", err)
	}
}

// firstNonEmpty returns the first value that is not blank after trimming.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func (s *EnvSupplier) in() io.Reader {
	if s.In != nil {
		return s.In
	}
	return os.Stdin
}

func (s *EnvSupplier) out() io.Writer {
	if s.Out != nil {
		return s.Out
	}
	return os.Stdout
}
