package device

import (
	"errors"
	"testing"

	"github.com/MarkTegna/netwalker/pkg/util"
)

var _ CommandRunner = (*SSHRunner)(nil)

func TestSendCommandNotConnected(t *testing.T) {
	r := &SSHRunner{host: "10.0.0.1"}

	_, err := r.SendCommand("show version")
	if err == nil {
		t.Fatal("SendCommand on unconnected runner should fail")
	}
	if !errors.Is(err, util.ErrNotConnected) {
		t.Errorf("error = %v, want ErrNotConnected", err)
	}
}

func TestCloseUnconnected(t *testing.T) {
	r := &SSHRunner{host: "10.0.0.1"}
	if err := r.Close(); err != nil {
		t.Errorf("Close on unconnected runner = %v, want nil", err)
	}
	// Idempotent: a second close is still a no-op.
	if err := r.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
}

func TestCloseReleasesRunner(t *testing.T) {
	r := &SSHRunner{host: "10.0.0.1"}
	_ = r.Close()

	_, err := r.SendCommand("show version")
	if !errors.Is(err, util.ErrNotConnected) {
		t.Errorf("SendCommand after Close = %v, want ErrNotConnected", err)
	}
}
