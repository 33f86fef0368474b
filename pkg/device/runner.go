// Package device is the transport boundary to routers and switches: the
// CommandRunner capability interface, its SSH implementation, platform
// command tables, and parsers for identity and inventory output.
package device

import (
	"fmt"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/MarkTegna/netwalker/pkg/util"
)

// CommandRunner is the single capability the collector needs from a device
// connection. The core never knows which transport produced the text.
type CommandRunner interface {
	SendCommand(command string) (string, error)
	Close() error
}

// SSHRunner runs commands over an SSH connection. Sessions are created
// per-call (stateless), so one runner can issue any number of commands.
type SSHRunner struct {
	host   string
	client *ssh.Client
}

// DialSSH connects to host:22 with password auth. Host keys are not
// verified — the collector runs inside the management network.
func DialSSH(host, user, pass string, timeout time.Duration) (*SSHRunner, error) {
	config := &ssh.ClientConfig{
		User: user,
		Auth: []ssh.AuthMethod{
			ssh.Password(pass),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}

	client, err := ssh.Dial("tcp", host+":22", config)
	if err != nil {
		return nil, fmt.Errorf("SSH dial %s: %w", host, err)
	}
	return &SSHRunner{host: host, client: client}, nil
}

// SendCommand runs a command on the device and returns the combined output.
// Failures are reported as CommandError so callers can match on
// ErrCommandFailed without parsing messages.
func (r *SSHRunner) SendCommand(cmd string) (string, error) {
	if r.client == nil {
		return "", fmt.Errorf("%w: %s", util.ErrNotConnected, r.host)
	}
	session, err := r.client.NewSession()
	if err != nil {
		return "", util.NewCommandError(r.host, cmd, err)
	}
	defer session.Close()

	output, err := session.CombinedOutput(cmd)
	if err != nil {
		return string(output), util.NewCommandError(r.host, cmd, err)
	}
	return string(output), nil
}

// Close closes the SSH connection. Closing an unconnected runner is a no-op.
func (r *SSHRunner) Close() error {
	if r.client == nil {
		return nil
	}
	err := r.client.Close()
	r.client = nil
	return err
}
