package compose

import (
	"context"
	"image"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/flick/app"
	"github.com/CrestNiraj12/flick/domain"
	"github.com/CrestNiraj12/flick/infra/editor"
	"github.com/CrestNiraj12/flick/infra/imaging"
	"github.com/CrestNiraj12/flick/tui/common"
)

// Crop preview size in cells; two pixel rows per cell keeps it 4:5.
const (
	previewW = 24
	previewH = 15
)

// --- Messages ---

// DoneMsg is sent when the composer closes. Post is only set when the user
// submitted a valid post.
type DoneMsg struct {
	Post      domain.NewPost
	Cancelled bool
}

type sourceLoadedMsg struct {
	seq int
	img image.Image
	err error
}

type cropRenderedMsg struct {
	seq     int
	encoded string
	err     error
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	session *editor.Session
	err     error
}

// --- Model ---

// Deps are the services the composer drives.
type Deps struct {
	Loader   app.ImageLoader
	Renderer app.CropRenderer
	Editor   *editor.EnvEditor
}

// Model holds the state for the create-post dialog.
type Model struct {
	deps  Deps
	flow  app.CreateFlow
	keys  common.KeyMap
	theme common.Theme

	source  textinput.Model
	caption textinput.Model
	spinner spinner.Model

	selector  imaging.Selector
	preview   string
	rendering bool

	cancel context.CancelFunc
	err    error
}

// New creates a composer waiting for an image source.
func New(deps Deps, dark bool) Model {
	src := textinput.New()
	src.Placeholder = "path, URL or data URI"
	src.Prompt = "Image: "
	src.Focus()

	caption := textinput.New()
	caption.Placeholder = "Write a caption..."
	caption.Prompt = "Caption: "
	caption.CharLimit = 2200

	s := spinner.New()
	s.Spinner = spinner.Dot

	return Model{
		deps:    deps,
		keys:    common.DefaultKeyMap(),
		theme:   common.NewTheme(dark),
		source:  src,
		caption: caption,
		spinner: s,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// State returns the current step of the creation flow.
func (m Model) State() app.FlowState {
	return m.flow.State()
}

// Err returns the last error shown to the user.
func (m Model) Err() error {
	return m.err
}

// Selector exposes the crop box for rendering and tests.
func (m Model) Selector() imaging.Selector {
	return m.selector
}

// IsRendering reports whether a committed crop is being encoded.
func (m Model) IsRendering() bool {
	return m.rendering
}

// Encoded returns the rendered crop once the flow is Cropped.
func (m Model) Encoded() string {
	return m.flow.Encoded()
}
