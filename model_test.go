package main

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

var errStub = errors.New("provider down")

func testModel(replier ReplyClient) model {
	m := initialModel(&Config{GeminiModel: "test", Clicks: false}, replier)
	m.width = 80
	m.height = 24
	return m
}

// drive runs a command and feeds its message back through Update, the way the
// runtime would. Returns the updated model and the follow-up command.
func drive(t *testing.T, m model, cmd tea.Cmd) (model, tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return m, nil
	}
	mm, next := m.Update(cmd())
	return mm.(model), next
}

func TestSubmitCycle(t *testing.T) {
	stub := &stubReplier{reply: "OK"}
	m := testModel(stub)
	m.mode = ModeCompose
	m.composer.SetValue("HI")

	mm, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = mm.(model)

	if !m.busy {
		t.Fatal("submission did not set the busy flag")
	}
	if m.mode != ModeDesktop {
		t.Fatal("submission did not return to the desktop")
	}
	notes := m.board.Notes()
	if len(notes) != 1 || notes[0].Kind != NoteUser {
		t.Fatalf("notes after submit = %+v", notes)
	}

	// Walk the whole reveal chain: user note, then the fetched reply.
	for i := 0; i < 200 && cmd != nil; i++ {
		m, cmd = drive(t, m, cmd)
	}
	if cmd != nil {
		t.Fatal("reveal chain did not terminate")
	}

	notes = m.board.Notes()
	if len(notes) != 2 {
		t.Fatalf("want user note + reply, got %d notes", len(notes))
	}
	if notes[0].Text != "HI" {
		t.Errorf("user note text = %q, want the full string with no cursor", notes[0].Text)
	}
	if notes[1].Kind != NoteReply || notes[1].Text != "OK" {
		t.Errorf("reply note = %+v", notes[1])
	}
	if m.busy {
		t.Error("busy flag still set after the cycle finished")
	}
	if stub.calls != 1 {
		t.Errorf("reply client called %d times, want 1", stub.calls)
	}
}

func TestSubmitBlockedWhileBusy(t *testing.T) {
	m := testModel(&stubReplier{reply: "OK"})
	m.busy = true
	m.mode = ModeCompose
	m.composer.SetValue("SECOND")

	mm, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = mm.(model)

	if len(m.board.Notes()) != 0 {
		t.Error("busy board accepted a second submission")
	}
	if m.status == "" {
		t.Error("blocked submission left no status message")
	}
}

func TestFailedReplyProducesSentinel(t *testing.T) {
	m := testModel(nil)
	m.busy = true
	m.revealGen = 1

	mm, cmd := m.updateReply(replyMsg{err: errStub, gen: 1})
	m = mm.(model)

	notes := m.board.Notes()
	if len(notes) != 1 || notes[0].Kind != NoteError {
		t.Fatalf("notes after failed reply = %+v", notes)
	}
	if cmd == nil {
		t.Fatal("error note got no reveal chain")
	}

	// Jump to the final step instead of walking the full sentinel.
	text := []rune(sentinelReplyText)
	mm, _ = m.Update(revealStepMsg{
		noteID:  notes[0].ID,
		text:    text,
		step:    len(text),
		profile: revealReply,
		gen:     1,
	})
	m = mm.(model)

	n, _ := m.board.NoteByID(notes[0].ID)
	if n.Text != sentinelReplyText {
		t.Errorf("sentinel text = %q", n.Text)
	}
	if m.busy {
		t.Error("busy flag survived the error cycle")
	}
}

func TestStaleRevealStepDropped(t *testing.T) {
	m := testModel(nil)
	note := m.board.AddNote("T", "KEEP", NoteUser)
	m.revealGen = 5

	mm, cmd := m.Update(revealStepMsg{
		noteID: note.ID, text: []rune("NEW"), step: 1, profile: revealUser, gen: 4,
	})
	m = mm.(model)

	if cmd != nil {
		t.Error("stale step scheduled a follow-up")
	}
	if n, _ := m.board.NoteByID(note.ID); n.Text != "KEEP" {
		t.Errorf("stale step rewrote the note: %q", n.Text)
	}
}

func TestRevealOnTrashedNoteEndsCycle(t *testing.T) {
	m := testModel(nil)
	m.busy = true
	m.revealGen = 1

	mm, cmd := m.Update(revealStepMsg{
		noteID: "gone", text: []rune("HI"), step: 1, profile: revealUser, gen: 1,
	})
	m = mm.(model)

	if cmd != nil {
		t.Error("reveal continued for a trashed note")
	}
	if m.busy {
		t.Error("busy flag not released when the note vanished")
	}
}

func TestMouseDragMovesNote(t *testing.T) {
	m := testModel(nil)
	note := m.board.AddNote("T", "drag me", NoteUser)
	m.board.MoveNote(note.ID, 0, 0)

	cols, rows := desktopSize(m.width, m.height)
	boxes := desktopHitboxes(m.board, cols, rows, 0)
	r := boxes[0].box

	press := tea.MouseMsg{X: r.x + 1, Y: r.y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	mm, _ := m.Update(press)
	m = mm.(model)
	if m.drag == nil {
		t.Fatal("press on the note did not arm a drag")
	}
	if m.selectedID != note.ID {
		t.Error("press did not select the note")
	}

	mm, _ = m.Update(tea.MouseMsg{X: r.x + 20, Y: r.y + 5, Action: tea.MouseActionMotion})
	m = mm.(model)
	moved, _ := m.board.NoteByID(note.ID)
	if moved.X == 0 && moved.Y == 0 {
		t.Error("motion did not reposition the note")
	}

	mm, _ = m.Update(tea.MouseMsg{X: r.x + 20, Y: r.y + 5, Action: tea.MouseActionRelease})
	m = mm.(model)
	if m.drag != nil {
		t.Error("release did not end the drag session")
	}
	if _, ok := m.board.NoteByID(note.ID); !ok {
		t.Error("release outside the trash deleted the note")
	}
}

func TestMouseDropInTrashDeletes(t *testing.T) {
	m := testModel(nil)
	note := m.board.AddNote("T", "doomed", NoteUser)
	m.board.MoveNote(note.ID, 0, 0)

	cols, rows := desktopSize(m.width, m.height)
	boxes := desktopHitboxes(m.board, cols, rows, 0)
	r := boxes[0].box
	tr := trashRect(cols, rows)

	mm, _ := m.Update(tea.MouseMsg{X: r.x + 1, Y: r.y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = mm.(model)
	mm, _ = m.Update(tea.MouseMsg{X: tr.x + 1, Y: tr.y + 1, Action: tea.MouseActionRelease})
	m = mm.(model)

	if _, ok := m.board.NoteByID(note.ID); ok {
		t.Error("drop on the trash kept the note")
	}
	if m.drag != nil {
		t.Error("drag session survived the drop")
	}
}

func TestCloseGlyphRemovesWithoutDrag(t *testing.T) {
	m := testModel(nil)
	note := m.board.AddNote("T", "click the corner", NoteUser)

	cols, rows := desktopSize(m.width, m.height)
	boxes := desktopHitboxes(m.board, cols, rows, 0)
	hb := boxes[0]

	mm, _ := m.Update(tea.MouseMsg{X: hb.closeX, Y: hb.closeY, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = mm.(model)

	if _, ok := m.board.NoteByID(note.ID); ok {
		t.Error("close glyph press did not remove the note")
	}
	if m.drag != nil {
		t.Error("close glyph press armed a drag")
	}
}

func TestDesktopViewRendersFurniture(t *testing.T) {
	m := testModel(nil)
	m.board.AddNote("HELLO", "world", NoteUser)

	out := m.View()
	if !strings.Contains(out, "TRASH") {
		t.Error("desktop view lost the trash region")
	}
	if !strings.Contains(out, "HELLO") {
		t.Error("desktop view lost the note title")
	}
	if !strings.Contains(out, "world") {
		t.Error("desktop view lost the note body")
	}
	for _, k := range dockKeys {
		if !strings.Contains(out, ")"+k[1]) {
			t.Errorf("dock hint %s)%s missing", k[0], k[1])
		}
	}
}

func TestStatusRevert(t *testing.T) {
	m := testModel(nil)
	if cmd := m.setStatus("HELLO", false); cmd == nil {
		t.Fatal("setStatus scheduled no revert")
	}
	if m.status != "HELLO" {
		t.Fatalf("status = %q", m.status)
	}

	// A stale revert (an older message arrived late) must not clear it.
	mm, _ := m.Update(statusRevertMsg{seq: m.statusSeq - 1})
	m = mm.(model)
	if m.status != "HELLO" {
		t.Error("stale revert cleared the status")
	}

	mm, _ = m.Update(statusRevertMsg{seq: m.statusSeq})
	m = mm.(model)
	if m.status != "" {
		t.Errorf("status not reverted: %q", m.status)
	}
}
