package input

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// KeyboardSource reads single keystrokes from a terminal in raw mode and
// queues them as intents. Arrow keys arrive as escape sequences and are
// decoded to "arrow_*" codes.
type KeyboardSource struct {
	*QueueSource

	fd       int
	oldState *term.State
	reader   *bufio.Reader
	done     chan struct{}
}

// NewKeyboardSource puts the terminal behind f into raw mode and starts
// reading keys on a background goroutine. Close restores the terminal.
func NewKeyboardSource(f *os.File) (*KeyboardSource, error) {
	fd := int(f.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("cannot set terminal to raw mode: %w", err)
	}

	k := newKeyboardSource(f)
	k.fd = fd
	k.oldState = oldState
	go k.readLoop()
	return k, nil
}

func newKeyboardSource(r io.Reader) *KeyboardSource {
	return &KeyboardSource{
		QueueSource: NewQueueSource(),
		fd:          -1,
		reader:      bufio.NewReader(r),
		done:        make(chan struct{}),
	}
}

// Close restores the terminal state
func (k *KeyboardSource) Close() error {
	if k.oldState == nil {
		return nil
	}
	err := term.Restore(k.fd, k.oldState)
	k.oldState = nil
	return err
}

// Done is closed once the reader hits an error or EOF
func (k *KeyboardSource) Done() <-chan struct{} {
	return k.done
}

func (k *KeyboardSource) readLoop() {
	defer close(k.done)
	for {
		code, err := k.readCode()
		if err != nil {
			return
		}
		if code != "" {
			k.PushCode(DeviceTerminal, code)
		}
	}
}

// readCode reads one key and returns its binding code, or "" for keys
// that have no code
func (k *KeyboardSource) readCode() (string, error) {
	b, err := k.reader.ReadByte()
	if err != nil {
		return "", err
	}

	switch {
	case b == 3:
		return "ctrl_c", nil
	case b == 0x1b:
		return k.readEscape()
	case b >= 'A' && b <= 'Z':
		return string(b + 'a' - 'A'), nil
	case b >= 32 && b < 127:
		return string(b), nil
	}
	return "", nil
}

// readEscape decodes the remainder of an escape sequence. A lone ESC is
// reported as "escape".
func (k *KeyboardSource) readEscape() (string, error) {
	if k.reader.Buffered() == 0 {
		return "escape", nil
	}

	b2, err := k.reader.ReadByte()
	if err != nil {
		return "", err
	}
	// Handle both CSI sequences (ESC [) and SS3 sequences (ESC O)
	if b2 != '[' && b2 != 'O' {
		return "escape", nil
	}

	b3, err := k.reader.ReadByte()
	if err != nil {
		return "", err
	}
	switch b3 {
	case 'A':
		return "arrow_up", nil
	case 'B':
		return "arrow_down", nil
	case 'C':
		return "arrow_right", nil
	case 'D':
		return "arrow_left", nil
	}
	// Unknown escape sequence - discard it
	return "", nil
}
