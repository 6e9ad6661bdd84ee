package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const instructionComment = `<!--
Flick: write the caption for your post below.

- SAVE and EXIT to keep the caption (e.g., :wq in vi).
- Leaving it empty keeps the previous caption.
-->

`

// EnvEditor edits captions in the user's editor: $VISUAL, then $EDITOR,
// then vi. It only prepares the process; callers run it with
// tea.ExecProcess so Bubble Tea releases the terminal first.
type EnvEditor struct{}

// NewEnvEditor creates an EnvEditor.
func NewEnvEditor() *EnvEditor {
	return &EnvEditor{}
}

// Session is one caption edit: the editor process and the temp file it
// works on.
type Session struct {
	Cmd *exec.Cmd

	path     string
	previous string
}

// Open writes caption under the instruction comment to a temp file and
// prepares the editor command for it.
func (e *EnvEditor) Open(caption string) (*Session, error) {
	argv := command()

	f, err := os.CreateTemp("", "flick-caption-*.md")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(instructionComment + caption); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("writing temp file: %w", err)
	}

	args := append(argv[1:], f.Name())
	return &Session{
		Cmd:      exec.Command(argv[0], args...),
		path:     f.Name(),
		previous: caption,
	}, nil
}

// command splits the configured editor so values like "code --wait" work.
func command() []string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if f := strings.Fields(os.Getenv(env)); len(f) > 0 {
			return f
		}
	}
	return []string{"vi"}
}

// Path returns the temp file being edited.
func (s *Session) Path() string {
	return s.path
}

// Caption reads the edited file and removes it. The instruction comment is
// dropped and whitespace folds to single spaces, since captions are one
// line. An empty result keeps the caption the session was opened with.
func (s *Session) Caption() (string, error) {
	defer os.Remove(s.path)

	data, err := os.ReadFile(s.path)
	if err != nil {
		return s.previous, fmt.Errorf("reading temp file: %w", err)
	}
	text := string(data)
	if _, after, ok := strings.Cut(text, "-->"); ok {
		text = after
	}
	if caption := strings.Join(strings.Fields(text), " "); caption != "" {
		return caption, nil
	}
	return s.previous, nil
}

// Discard removes the temp file without reading it.
func (s *Session) Discard() {
	os.Remove(s.path)
}
