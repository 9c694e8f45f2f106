package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type Mode int

const (
	ModeDesktop Mode = iota
	ModeCompose
	ModeAudio
	ModeSticker
	ModeFX
	ModeHelp
)

type clockTickMsg time.Time

type statusRevertMsg struct {
	seq int
}

const statusRevertDelay = 2 * time.Second

type model struct {
	width  int
	height int
	mode   Mode

	board   *Board
	cfg     *Config
	replier ReplyClient
	deck    *audioDeck
	clicks  *clickSynth
	loader  *imageLoader

	composer  textarea.Model
	pathInput textinput.Model

	drag       *dragSession
	selectedID string

	busy      bool
	revealGen int

	fxSource  image.Image
	fxPath    string
	fxBlock   int
	fxTint    int
	fxAnim    AnimKind
	fxOut     *image.RGBA
	fxPreview [][]color.RGBA

	phase     int
	now       time.Time
	status    string
	statusErr bool
	statusSeq int
}

func initialModel(cfg *Config, replier ReplyClient) model {
	ta := textarea.New()
	ta.Placeholder = "dear desk buddy..."
	ta.SetWidth(40)
	ta.SetHeight(6)
	ta.CharLimit = 500

	ti := textinput.New()
	ti.Placeholder = "/path/to/file"
	ti.CharLimit = 256
	ti.Width = 40

	return model{
		board:     NewBoard(),
		cfg:       cfg,
		replier:   replier,
		deck:      newAudioDeck(cfg.Player),
		clicks:    &clickSynth{enabled: cfg.Clicks},
		loader:    newImageLoader(),
		composer:  ta,
		pathInput: ti,
		fxBlock:   fxDefaultBlock,
		now:       time.Now(),
	}
}

func tickClock() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tickClock()
}

// setStatus shows a transient status line message and schedules its revert.
func (m *model) setStatus(text string, isErr bool) tea.Cmd {
	m.status = text
	m.statusErr = isErr
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusRevertDelay, func(time.Time) tea.Msg {
		return statusRevertMsg{seq: seq}
	})
}

func (m *model) toDesktop() {
	m.mode = ModeDesktop
	m.composer.Blur()
	m.pathInput.Blur()
}

// refreshFX re-runs the filter over the loaded source with the current
// parameters. Runs on every parameter change; the decode is already cached.
func (m *model) refreshFX() error {
	out, err := Pixelate(m.fxSource, fxMaxDim, m.fxBlock, tintPalette[m.fxTint].c)
	if err != nil {
		return err
	}
	m.fxOut = out
	m.fxPreview = thumbnailCells(out, 24, 12)
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := msg.Width - 12
		if w > 60 {
			w = 60
		}
		if w < 20 {
			w = 20
		}
		m.composer.SetWidth(w)
		return m, nil

	case clockTickMsg:
		m.now = time.Time(msg)
		m.phase++
		return m, tickClock()

	case statusRevertMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case revealStepMsg:
		return m.updateReveal(msg)

	case replyMsg:
		return m.updateReply(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		switch m.mode {
		case ModeDesktop:
			return m.updateDesktopKeys(msg)
		case ModeCompose:
			return m.updateComposeKeys(msg)
		case ModeAudio:
			return m.updateAudioKeys(msg)
		case ModeSticker:
			return m.updateStickerKeys(msg)
		case ModeFX:
			return m.updateFXKeys(msg)
		case ModeHelp:
			m.mode = ModeDesktop
			return m, nil
		}
	}

	// Everything else (cursor blink and friends) goes to whichever input is
	// on screen.
	var cmd tea.Cmd
	switch m.mode {
	case ModeCompose:
		m.composer, cmd = m.composer.Update(msg)
	case ModeAudio, ModeSticker, ModeFX:
		m.pathInput, cmd = m.pathInput.Update(msg)
	}
	return m, cmd
}

func (m model) updateDesktopKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.deck.Stop()
		m.clicks.Reset()
		return m, tea.Quit

	case "n":
		m.mode = ModeCompose
		m.composer.Reset()
		return m, m.composer.Focus()

	case "a":
		m.mode = ModeAudio
		m.pathInput.Reset()
		return m, m.pathInput.Focus()

	case "s":
		m.mode = ModeSticker
		m.pathInput.Reset()
		m.fxAnim = AnimNone
		return m, m.pathInput.Focus()

	case "f":
		m.mode = ModeFX
		m.fxSource = nil
		m.fxOut = nil
		m.fxPreview = nil
		m.fxBlock = fxDefaultBlock
		m.fxTint = 0
		m.fxAnim = AnimNone
		m.pathInput.Reset()
		return m, m.pathInput.Focus()

	case "x":
		n, ok := m.board.NoteByID(m.selectedID)
		if !ok {
			return m, m.setStatus("CLICK A NOTE FIRST", true)
		}
		path := m.cfg.GetSavePath(fmt.Sprintf("note-%.8s.png", n.ID))
		if err := exportNotePNG(n, path); err != nil {
			slog.Warn("note export failed", "error", err)
			return m, m.setStatus("EXPORT FAILED: "+err.Error(), true)
		}
		return m, m.setStatus("SAVED "+path, false)

	case "?":
		m.mode = ModeHelp
		return m, nil

	case "esc":
		m.selectedID = ""
		return m, nil
	}
	return m, nil
}

func (m model) updateComposeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.toDesktop()
		return m, nil

	case "ctrl+v":
		text, err := readClipboardText()
		if err != nil {
			return m, m.setStatus("CLIPBOARD UNAVAILABLE", true)
		}
		m.composer.InsertString(cleanClipboardText(text))
		return m, nil

	case "ctrl+s":
		text := strings.TrimSpace(m.composer.Value())
		if text == "" {
			return m, m.setStatus("NOTHING TO POST", true)
		}
		if m.busy {
			return m, m.setStatus("DESK BUDDY IS STILL THINKING", true)
		}
		m.toDesktop()
		m.busy = true
		m.revealGen++
		m.clicks.Reset()
		note := m.board.AddNote("ME "+m.now.Format("15:04"), "", NoteUser)
		return m, revealCmd(note.ID, []rune(text), 0, revealUser, m.revealGen)
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

func (m model) updateAudioKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.toDesktop()
		return m, nil

	case "enter":
		path := strings.TrimSpace(m.pathInput.Value())
		if path == "" {
			return m, nil
		}
		if err := m.deck.Load(path); err != nil {
			return m, m.setStatus(strings.ToUpper(err.Error()), true)
		}
		m.pathInput.Reset()
		return m, m.setStatus("LOADED "+m.deck.TrackName(), false)

	case "ctrl+p":
		err := m.deck.Play()
		if errors.Is(err, errNoTrack) {
			return m, m.setStatus("NO TRACK LOADED", true)
		}
		if err != nil {
			slog.Warn("playback failed", "error", err)
			return m, m.setStatus("PLAYBACK FAILED", true)
		}
		return m, nil

	case "ctrl+o":
		m.deck.Stop()
		return m, nil
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m model) updateStickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.toDesktop()
		return m, nil

	case "tab":
		m.fxAnim = (m.fxAnim + 1) % (AnimPulse + 1)
		return m, nil

	case "enter":
		path := strings.TrimSpace(m.pathInput.Value())
		if path == "" {
			return m, nil
		}
		img, err := m.loader.Load(path)
		if err != nil {
			slog.Warn("sticker load failed", "path", path, "error", err)
			return m, m.setStatus("CAN'T READ THAT IMAGE", true)
		}
		cells := thumbnailCells(img, stickerCols, stickerRows)
		m.board.AddSticker(path, img, cells, m.fxAnim)
		m.toDesktop()
		return m, m.setStatus("STICKER PINNED", false)
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m model) updateFXKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.fxSource == nil {
		switch msg.String() {
		case "esc":
			m.toDesktop()
			return m, nil

		case "enter":
			path := strings.TrimSpace(m.pathInput.Value())
			if path == "" {
				return m, nil
			}
			img, err := m.loader.Load(path)
			if err != nil {
				slog.Warn("fx source load failed", "path", path, "error", err)
				return m, m.setStatus("CAN'T READ THAT IMAGE", true)
			}
			m.fxSource = img
			m.fxPath = path
			if err := m.refreshFX(); err != nil {
				m.fxSource = nil
				return m, m.setStatus("FILTER FAILED: "+err.Error(), true)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.pathInput, cmd = m.pathInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		// Closing the studio discards the working state.
		m.fxSource = nil
		m.fxOut = nil
		m.fxPreview = nil
		m.toDesktop()
		return m, nil

	case "+", "=":
		if m.fxBlock*2 <= fxMaxBlock {
			m.fxBlock *= 2
			if err := m.refreshFX(); err != nil {
				return m, m.setStatus("FILTER FAILED: "+err.Error(), true)
			}
		}
		return m, nil

	case "-", "_":
		if m.fxBlock/2 >= fxMinBlock {
			m.fxBlock /= 2
			if err := m.refreshFX(); err != nil {
				return m, m.setStatus("FILTER FAILED: "+err.Error(), true)
			}
		}
		return m, nil

	case "t":
		m.fxTint = (m.fxTint + 1) % len(tintPalette)
		if err := m.refreshFX(); err != nil {
			return m, m.setStatus("FILTER FAILED: "+err.Error(), true)
		}
		return m, nil

	case "a":
		m.fxAnim = (m.fxAnim + 1) % (AnimPulse + 1)
		return m, nil

	case "enter":
		path := m.cfg.GetSavePath(fmt.Sprintf("fx-%.8s.png", uuid.NewString()))
		if err := savePNG(m.fxOut, path); err != nil {
			slog.Warn("fx save failed", "error", err)
			return m, m.setStatus("SAVE FAILED: "+err.Error(), true)
		}
		cells := thumbnailCells(m.fxOut, stickerCols, stickerRows)
		m.board.AddSticker(path, m.fxOut, cells, m.fxAnim)
		m.fxSource = nil
		m.fxOut = nil
		m.fxPreview = nil
		m.toDesktop()
		return m, m.setStatus("SAVED "+path, false)
	}
	return m, nil
}

func (m model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeDesktop {
		return m, nil
	}
	cols, rows := desktopSize(m.width, m.height)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.drag != nil {
			return m, nil
		}
		boxes := desktopHitboxes(m.board, cols, rows, m.phase)
		hit, ok := hitTest(boxes, msg.X, msg.Y)
		if !ok {
			m.selectedID = ""
			return m, nil
		}
		if hit.kind == kindNote && msg.X == hit.closeX && msg.Y == hit.closeY {
			m.board.RemoveNote(hit.id)
			if hit.id == m.selectedID {
				m.selectedID = ""
			}
			return m, nil
		}
		m.selectedID = hit.id
		var ox, oy float64
		if hit.kind == kindNote {
			n, _ := m.board.NoteByID(hit.id)
			ox, oy = n.X, n.Y
		} else {
			s, _ := m.board.StickerByID(hit.id)
			ox, oy = s.X, s.Y
		}
		m.drag = &dragSession{
			id:       hit.id,
			kind:     hit.kind,
			originX:  ox,
			originY:  oy,
			pointerX: msg.X,
			pointerY: msg.Y,
		}
		return m, nil

	case tea.MouseActionMotion:
		if m.drag == nil {
			return m, nil
		}
		x, y := m.drag.position(msg.X, msg.Y, cols, rows)
		if m.drag.kind == kindNote {
			m.board.MoveNote(m.drag.id, x, y)
		} else {
			m.board.MoveSticker(m.drag.id, x, y)
		}
		return m, nil

	case tea.MouseActionRelease:
		if m.drag == nil {
			return m, nil
		}
		if dropInTrash(msg.X, msg.Y, cols, rows) {
			if m.drag.kind == kindNote {
				m.board.RemoveNote(m.drag.id)
			} else {
				m.board.RemoveSticker(m.drag.id)
			}
			if m.drag.id == m.selectedID {
				m.selectedID = ""
			}
		} else {
			x, y := m.drag.position(msg.X, msg.Y, cols, rows)
			if m.drag.kind == kindNote {
				m.board.MoveNote(m.drag.id, x, y)
			} else {
				m.board.MoveSticker(m.drag.id, x, y)
			}
		}
		m.drag = nil
		return m, nil
	}
	return m, nil
}

func (m model) updateReveal(msg revealStepMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.revealGen {
		return m, nil
	}
	if _, ok := m.board.NoteByID(msg.noteID); !ok {
		// The note was trashed mid-reveal; the whole cycle dies with it.
		m.busy = false
		m.clicks.Reset()
		return m, nil
	}

	m.board.SetNoteText(msg.noteID, revealFrame(msg.text, msg.step))
	if clickAt(msg.profile, msg.text, msg.step) {
		if path := m.clicks.Prepare(); path != "" {
			m.deck.PlayClip(path)
		}
	}

	if msg.step+1 < stepCount(msg.text) {
		return m, revealCmd(msg.noteID, msg.text, msg.step+1, msg.profile, msg.gen)
	}

	if msg.profile == revealUser {
		return m, fetchReplyCmd(m.replier, string(msg.text), msg.gen)
	}
	m.busy = false
	m.clicks.Reset()
	return m, nil
}

func (m model) updateReply(msg replyMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.revealGen {
		return m, nil
	}
	text := msg.text
	kind := NoteReply
	if msg.err != nil {
		slog.Warn("reply failed", "error", msg.err)
		text = sentinelReplyText
		kind = NoteError
	}
	note := m.board.AddNote("DESK BUDDY", "", kind)
	return m, revealCmd(note.ID, []rune(text), 0, revealReply, msg.gen)
}
