//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

const (
	scrollback = 1 << 20 // bytes of output kept per app
	termRows   = 40
	termCols   = 120
	pollEvery  = 25 * time.Millisecond
)

var binPath = "typeahead_e2e"

// Raw input sequences as a terminal sends them
const (
	KeyEnter  = "\r"
	KeyCtrlC  = "\x03"
	KeyCtrlO  = "\x0f"
	KeyEscape = "\x1b"
	KeyDown   = "\x1b[B"
	KeyUp     = "\x1b[A"
	KeyF1     = "\x1bOP"
	KeyPagerQ = "q"
)

// ansiRe strips CSI, OSC, charset and keypad sequences plus carriage returns
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?<>]*[ -/]*[@-~])|` +
		`(?:\x1b\][^\x07]*\x07)|` +
		`(?:\x1b[\(\)][A-Za-z])|` +
		`(?:\x1b=|\x1b>)|` +
		`\r`,
)

// ring keeps the most recent output of the app
type ring struct {
	mu   sync.Mutex
	buf  []byte
	head int
	full bool
}

func newRing(size int) *ring {
	return &ring{buf: make([]byte, size)}
}

func (r *ring) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range p {
		r.buf[r.head] = b
		r.head = (r.head + 1) % len(r.buf)
		if r.head == 0 {
			r.full = true
		}
	}
	return len(p), nil
}

func (r *ring) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.full {
		return string(r.buf[:r.head])
	}
	return string(r.buf[r.head:]) + string(r.buf[:r.head])
}

// TUITestFramework runs the binary in a PTY and records what it draws
type TUITestFramework struct {
	t         *testing.T
	pty       *os.File
	cmd       *exec.Cmd
	workspace string
	out       *ring
	copyDone  chan struct{}
}

// NewTUITest creates a new TUI test framework instance
func NewTUITest(t *testing.T) *TUITestFramework {
	return &TUITestFramework{t: t, out: newRing(scrollback)}
}

// StartApp launches the typeahead binary with args in a PTY
func (tf *TUITestFramework) StartApp(args ...string) error {
	if tf.workspace == "" {
		if _, err := tf.CreateTestWorkspace(); err != nil {
			return err
		}
	}

	tf.cmd = exec.Command(binPath, args...)
	tf.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+tf.workspace,
		"XDG_CONFIG_HOME="+filepath.Join(tf.workspace, ".config"),
		"TYPEAHEAD_E2E_TEST=1",
	)

	f, err := pty.StartWithSize(tf.cmd, &pty.Winsize{Rows: termRows, Cols: termCols})
	if err != nil {
		return fmt.Errorf("failed to start in pty: %w", err)
	}
	tf.pty = f

	tf.copyDone = make(chan struct{})
	go func() {
		defer close(tf.copyDone)
		buf := make([]byte, 8192)
		for {
			n, err := f.Read(buf)
			if n > 0 {
				_, _ = tf.out.Write(buf[:n])
			}
			if err != nil {
				return
			}
		}
	}()
	return nil
}

// SendKeys writes raw input to the app
func (tf *TUITestFramework) SendKeys(keys string) error {
	tf.t.Helper()
	_, err := tf.pty.Write([]byte(keys))
	return err
}

// SendCtrlC sends Ctrl+C
func (tf *TUITestFramework) SendCtrlC() error {
	return tf.SendKeys(KeyCtrlC)
}

// Type sends text one rune at a time like a typist would
func (tf *TUITestFramework) Type(text string) error {
	tf.t.Helper()
	for _, r := range text {
		if err := tf.SendKeys(string(r)); err != nil {
			return err
		}
		time.Sleep(10 * time.Millisecond)
	}
	return nil
}

func (tf *TUITestFramework) Down() error   { return tf.SendKeys(KeyDown) }
func (tf *TUITestFramework) Up() error     { return tf.SendKeys(KeyUp) }
func (tf *TUITestFramework) Enter() error  { return tf.SendKeys(KeyEnter) }
func (tf *TUITestFramework) Escape() error { return tf.SendKeys(KeyEscape) }
func (tf *TUITestFramework) Quit() error   { return tf.SendCtrlC() }

// Click sends an SGR left press and release at the 0-based cell x, y
func (tf *TUITestFramework) Click(x, y int) error {
	return tf.SendKeys(fmt.Sprintf("\x1b[<0;%d;%dM\x1b[<0;%d;%dm", x+1, y+1, x+1, y+1))
}

// MoveTo sends an SGR motion report to the 0-based cell x, y
func (tf *TUITestFramework) MoveTo(x, y int) error {
	return tf.SendKeys(fmt.Sprintf("\x1b[<35;%d;%dM", x+1, y+1))
}

// Ready waits for the readiness marker drawn in the title
func (tf *TUITestFramework) Ready() bool {
	tf.t.Helper()
	return tf.OutputContains("__READY__", 5*time.Second)
}

// SeePlain waits for text to appear in the ANSI-stripped output
func (tf *TUITestFramework) SeePlain(text string) bool {
	tf.t.Helper()
	return tf.OutputContainsPlain(text, 3*time.Second)
}

// OutputContains waits for text in the raw output
func (tf *TUITestFramework) OutputContains(text string, timeout time.Duration) bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool { return strings.Contains(s, text) }, timeout)
}

// OutputContainsPlain waits for text in the ANSI-stripped output
func (tf *TUITestFramework) OutputContainsPlain(text string, timeout time.Duration) bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool {
		return strings.Contains(ansiRe.ReplaceAllString(s, ""), text)
	}, timeout)
}

// WaitFor polls the raw output until pred holds or timeout passes
func (tf *TUITestFramework) WaitFor(pred func(string) bool, timeout time.Duration) bool {
	tf.t.Helper()
	return tf.WaitForE(pred, timeout, "") == nil
}

// WaitForE is WaitFor with the output tail attached to the error
func (tf *TUITestFramework) WaitForE(pred func(string) bool, timeout time.Duration, failMsg string) error {
	tf.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if pred(tf.Snapshot()) {
			return nil
		}
		if time.Now().After(deadline) {
			tail := tf.SnapshotPlain()
			if len(tail) > 4096 {
				tail = tail[len(tail)-4096:]
			}
			return fmt.Errorf("%s\n--- tail ---\n%s", failMsg, tail)
		}
		time.Sleep(pollEvery)
	}
}

// Snapshot returns everything recorded so far
func (tf *TUITestFramework) Snapshot() string {
	return tf.out.String()
}

// SnapshotPlain returns the recorded output without escape sequences
func (tf *TUITestFramework) SnapshotPlain() string {
	return ansiRe.ReplaceAllString(tf.Snapshot(), "")
}

// DumpTailOnFail saves the last n bytes of plain output for debugging
func (tf *TUITestFramework) DumpTailOnFail(t *testing.T, name string, n int) {
	s := tf.SnapshotPlain()
	if len(s) > n {
		s = s[len(s)-n:]
	}
	p := filepath.Join(t.TempDir(), name+".txt")
	_ = os.WriteFile(p, []byte(s), 0644)
	t.Logf("Saved tail to %s", p)
}

// Cleanup closes the PTY and kills the app if it is still running
func (tf *TUITestFramework) Cleanup() {
	if tf.pty != nil {
		_ = tf.pty.Close()
		tf.pty = nil
	}
	if tf.cmd != nil && tf.cmd.Process != nil {
		_ = tf.cmd.Process.Kill()
		_, _ = tf.cmd.Process.Wait()
		tf.cmd = nil
	}
	if tf.copyDone != nil {
		<-tf.copyDone
		tf.copyDone = nil
	}
}
