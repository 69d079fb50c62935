// Package editor provides the rich-text article editor view. It edits
// the document model directly: block types, inline styles, list depth,
// and image blocks, with periodic local autosave.
package editor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui/keymap"
	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui/messages"
	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui/render"
	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui/styles"
	"github.com/article-avenue/avenue-cli/internal/core/domain"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driving"
)

// AutosaveInterval is how often the editing session is snapshotted to
// the local workspace.
const AutosaveInterval = 10 * time.Second

// Image sizing: new images start at defaultImageSize square and resize
// in aspect-locked steps, never below minImageSize on an edge.
const (
	defaultImageSize = 200.0
	minImageSize     = 50.0
	imageResizeStep  = 1.25
)

// focusedField identifies which input currently receives keys.
type focusedField int

const (
	focusTitle focusedField = iota
	focusBody
	focusDescription
	focusImagePath
	focusThumbnailPath
)

// blockCycle is the order ctrl+t steps the current block through.
var blockCycle = []domain.BlockType{
	domain.BlockUnstyled,
	domain.BlockHeaderOne,
	domain.BlockHeaderTwo,
	domain.BlockHeaderThree,
	domain.BlockBlockquote,
	domain.BlockUnorderedListItem,
	domain.BlockOrderedListItem,
	domain.BlockCodeBlock,
}

// View represents the editor view.
type View struct {
	styles    *styles.Styles
	keys      *keymap.EditorKeyMap
	articles  driving.ArticleService
	workspace driving.WorkspaceService

	draft    driving.Draft
	body     *domain.Document
	desc     *domain.Document
	title    textinput.Model
	pathIn   textinput.Model
	category int

	// cursor is the insertion point in the focused document.
	cursorBlock  int
	cursorOffset int

	// anchor* mark the selection start while extending with shift.
	anchorBlock  int
	anchorOffset int
	selecting    bool

	focus    focusedField
	bufferID string
	saving   bool
	status   string
	err      error

	width  int
	height int
}

// NewView creates a new editor view.
func NewView(s *styles.Styles, articles driving.ArticleService, workspace driving.WorkspaceService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 200

	pathIn := textinput.New()
	pathIn.CharLimit = 400

	v := &View{
		styles:    s,
		keys:      keymap.DefaultEditorKeyMap(),
		articles:  articles,
		workspace: workspace,
		title:     title,
		pathIn:    pathIn,
		width:     80,
		height:    24,
	}
	v.SetDraft(driving.Draft{})
	return v
}

// Init starts the autosave ticker and focuses the title.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.title.Focus(), autosaveTick())
}

func autosaveTick() tea.Cmd {
	return tea.Tick(AutosaveInterval, func(time.Time) tea.Msg {
		return messages.AutosaveTick{}
	})
}

// SetDraft loads an editing session into the editor.
func (v *View) SetDraft(d driving.Draft) {
	if d.Body == nil {
		d.Body = domain.NewDocument()
	}
	if d.Description == nil {
		d.Description = domain.NewDocument()
	}
	v.draft = d
	v.body = d.Body
	v.desc = d.Description
	v.title.SetValue(d.Title)
	v.category = categoryIndex(d.Category)
	v.cursorBlock = 0
	v.cursorOffset = 0
	v.selecting = false
	v.focus = focusTitle
	v.bufferID = ""
	v.status = ""
	v.err = nil
}

// SetBufferID attaches a recovered workspace buffer so further
// autosaves overwrite it.
func (v *View) SetBufferID(id string) {
	v.bufferID = id
}

// SetDimensions updates the terminal size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Draft returns the current editing session.
func (v *View) Draft() driving.Draft {
	d := v.draft
	d.Title = strings.TrimSpace(v.title.Value())
	d.Category = domain.Categories[v.category]
	d.Body = v.body
	d.Description = v.desc
	return d
}

// snapshot returns a copy of the session whose documents are detached
// from the live editing state. Commands run on their own goroutines,
// so they must never see v.body or v.desc directly.
func (v *View) snapshot() driving.Draft {
	d := v.Draft()
	d.Body = d.Body.Clone()
	d.Description = d.Description.Clone()
	return d
}

func categoryIndex(c domain.Category) int {
	for i, cat := range domain.Categories {
		if cat == c {
			return i
		}
	}
	return 0
}

// focusedDoc returns the document the cursor lives in.
func (v *View) focusedDoc() *domain.Document {
	if v.focus == focusDescription {
		return v.desc
	}
	return v.body
}

// selection returns the active range, or a collapsed cursor.
func (v *View) selection() domain.Selection {
	if !v.selecting {
		return domain.CursorAt(v.cursorBlock, v.cursorOffset)
	}
	sel := domain.Selection{
		StartBlock:  v.anchorBlock,
		StartOffset: v.anchorOffset,
		EndBlock:    v.cursorBlock,
		EndOffset:   v.cursorOffset,
	}
	if sel.EndBlock < sel.StartBlock ||
		(sel.EndBlock == sel.StartBlock && sel.EndOffset < sel.StartOffset) {
		sel.StartBlock, sel.EndBlock = sel.EndBlock, sel.StartBlock
		sel.StartOffset, sel.EndOffset = sel.EndOffset, sel.StartOffset
	}
	return sel
}

// Update handles messages for the editor view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.AutosaveTick:
		return v, tea.Batch(v.autosaveCmd(), autosaveTick())

	case messages.ThumbnailAttached:
		v.draft.Thumbnail = msg.Thumbnail
		v.status = "Attached thumbnail " + msg.Thumbnail.Filename
		return v, nil

	case messages.AutosaveCompleted:
		if msg.Err != nil {
			v.err = msg.Err
		} else if msg.BufferID != "" {
			v.bufferID = msg.BufferID
		}
		return v, nil

	case messages.SaveCompleted:
		v.saving = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.draft.ArticleID = msg.ID
		if v.draft.Kind == "" {
			v.draft.Kind = domain.KindDraft
		}
		v.status = fmt.Sprintf("Saved draft #%d", msg.ID)
		return v, v.discardBufferCmd()

	case messages.PublishCompleted:
		v.saving = false
		if msg.Err != nil {
			if msg.Token != "" {
				v.err = fmt.Errorf("publish interrupted; run 'avenue publish --resume %s': %w", msg.Token, msg.Err)
			} else {
				v.err = msg.Err
			}
			return v, nil
		}
		v.err = nil
		v.draft.ArticleID = msg.ID
		v.draft.Kind = domain.KindCompleted
		v.status = fmt.Sprintf("Published #%d", msg.ID)
		return v, v.discardBufferCmd()

	case tea.KeyMsg:
		return v.updateKeys(msg)
	}

	return v, nil
}

//nolint:gocognit,gocyclo // central key handler
func (v *View) updateKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Save):
		return v, v.saveCmd()
	case key.Matches(msg, v.keys.Publish):
		return v, v.publishCmd()
	case key.Matches(msg, v.keys.NextField):
		v.cycleFocus()
		return v, nil
	}

	switch v.focus {
	case focusTitle:
		if msg.String() == "ctrl+y" {
			v.category = (v.category + 1) % len(domain.Categories)
			return v, nil
		}
		var cmd tea.Cmd
		v.title, cmd = v.title.Update(msg)
		return v, cmd

	case focusImagePath, focusThumbnailPath:
		return v.updatePathPrompt(msg)

	default:
		return v.updateDocument(msg)
	}
}

func (v *View) cycleFocus() {
	switch v.focus {
	case focusTitle:
		v.focus = focusBody
		v.title.Blur()
	case focusBody:
		v.focus = focusDescription
	default:
		v.focus = focusTitle
		v.title.Focus()
	}
	v.cursorBlock = 0
	v.cursorOffset = 0
	v.selecting = false
}

func (v *View) updatePathPrompt(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.focus = focusBody
		v.pathIn.Blur()
		v.pathIn.SetValue("")
		return v, nil

	case "enter":
		path := strings.TrimSpace(v.pathIn.Value())
		target := v.focus
		v.focus = focusBody
		v.pathIn.Blur()
		v.pathIn.SetValue("")
		if path == "" {
			return v, nil
		}
		if target == focusThumbnailPath {
			return v, v.attachThumbnail(path)
		}
		v.insertImage(path)
		return v, nil
	}

	var cmd tea.Cmd
	v.pathIn, cmd = v.pathIn.Update(msg)
	return v, cmd
}

// insertImage adds an atomic image block after the cursor's block and
// moves the cursor onto it.
func (v *View) insertImage(src string) {
	sel := v.selection()
	w, h := defaultImageSize, defaultImageSize
	v.body.InsertAtomicBlock(sel, domain.ImageData{Src: src, Width: &w, Height: &h})
	at := sel.EndBlock + 1
	if at > len(v.body.Blocks)-1 {
		at = len(v.body.Blocks) - 1
	}
	v.cursorBlock = at
	v.cursorOffset = 0
	v.selecting = false
	v.status = "Inserted image " + src
}

// resizeImage scales the image under the cursor, aspect-locked, bounded
// below by minImageSize and above by the viewport width.
func (v *View) resizeImage(doc *domain.Document, grow bool) {
	if v.cursorBlock >= len(doc.Blocks) {
		return
	}
	b := doc.Blocks[v.cursorBlock]
	if b.Type != domain.BlockAtomic || len(b.EntityRanges) == 0 {
		return
	}
	key := b.EntityRanges[0].Key
	e, ok := doc.Entities[key]
	if !ok {
		return
	}

	w, h := defaultImageSize, defaultImageSize
	if e.Data.Width != nil {
		w = *e.Data.Width
	}
	if e.Data.Height != nil {
		h = *e.Data.Height
	}
	factor := imageResizeStep
	if !grow {
		factor = 1 / imageResizeStep
	}
	w *= factor
	h *= factor

	if small := math.Min(w, h); small < minImageSize {
		scale := minImageSize / small
		w *= scale
		h *= scale
	}
	if max := float64(v.width); max > minImageSize {
		if big := math.Max(w, h); big > max {
			scale := max / big
			w *= scale
			h *= scale
		}
	}

	if err := doc.UpdateEntityData(key, domain.ImagePatch{Width: &w, Height: &h}); err != nil {
		v.err = err
		return
	}
	v.status = fmt.Sprintf("Image %.0f x %.0f", w, h)
}

// attachThumbnail reads a local file as the article thumbnail. The
// read happens on the command goroutine; the result is applied to the
// view in Update.
func (v *View) attachThumbnail(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("read thumbnail: %w", err)}
		}
		return messages.ThumbnailAttached{
			Thumbnail: domain.Thumbnail{File: data, Filename: filepath.Base(path)},
		}
	}
}

//nolint:gocognit,gocyclo // document key handling covers many motions
func (v *View) updateDocument(msg tea.KeyMsg) (*View, tea.Cmd) {
	doc := v.focusedDoc()

	switch {
	case key.Matches(msg, v.keys.Bold):
		doc.ToggleInlineStyle(v.selection(), domain.StyleBold)
		return v, nil
	case key.Matches(msg, v.keys.Italic):
		doc.ToggleInlineStyle(v.selection(), domain.StyleItalic)
		return v, nil
	case key.Matches(msg, v.keys.Underline):
		doc.ToggleInlineStyle(v.selection(), domain.StyleUnderline)
		return v, nil
	case key.Matches(msg, v.keys.InlineCode):
		doc.ToggleInlineStyle(v.selection(), domain.StyleCode)
		return v, nil
	case key.Matches(msg, v.keys.CycleBlock):
		v.cycleBlockType(doc)
		return v, nil
	case key.Matches(msg, v.keys.Indent):
		doc.IndentListItem(v.cursorBlock, 1)
		return v, nil
	case key.Matches(msg, v.keys.Outdent):
		doc.IndentListItem(v.cursorBlock, -1)
		return v, nil
	}

	switch msg.String() {
	case "ctrl+g":
		if v.focus == focusBody {
			v.focus = focusImagePath
			v.pathIn.Placeholder = "image path or URL"
			return v, v.pathIn.Focus()
		}
		return v, nil

	case "ctrl+o":
		v.focus = focusThumbnailPath
		v.pathIn.Placeholder = "thumbnail file path"
		return v, v.pathIn.Focus()

	case "left":
		v.moveLeft(doc, false)
	case "right":
		v.moveRight(doc, false)
	case "shift+left":
		v.moveLeft(doc, true)
	case "shift+right":
		v.moveRight(doc, true)
	case "up":
		v.moveVertical(doc, -1)
	case "down":
		v.moveVertical(doc, 1)
	case "ctrl+up":
		v.resizeImage(doc, true)
	case "ctrl+down":
		v.resizeImage(doc, false)

	case "enter":
		doc.SplitBlock(v.cursorBlock, v.cursorOffset)
		v.cursorBlock++
		v.cursorOffset = 0
		v.selecting = false

	case "backspace":
		v.backspace(doc)

	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			text := string(msg.Runes)
			if msg.Type == tea.KeySpace {
				text = " "
			}
			doc.InsertText(v.cursorBlock, v.cursorOffset, text)
			v.cursorOffset += len([]rune(text))
			v.selecting = false
		}
	}

	return v, nil
}

func (v *View) cycleBlockType(doc *domain.Document) {
	if v.cursorBlock >= len(doc.Blocks) {
		return
	}
	current := doc.Blocks[v.cursorBlock].Type
	next := blockCycle[0]
	for i, t := range blockCycle {
		if t == current {
			next = blockCycle[(i+1)%len(blockCycle)]
			break
		}
	}
	sel := domain.CursorAt(v.cursorBlock, v.cursorOffset)
	doc.ToggleBlockType(sel, next)
}

func (v *View) moveLeft(doc *domain.Document, extend bool) {
	v.track(extend)
	if v.cursorOffset > 0 {
		v.cursorOffset--
		return
	}
	if v.cursorBlock > 0 {
		v.cursorBlock--
		v.cursorOffset = len([]rune(doc.Blocks[v.cursorBlock].Text))
	}
}

func (v *View) moveRight(doc *domain.Document, extend bool) {
	v.track(extend)
	if v.cursorOffset < len([]rune(doc.Blocks[v.cursorBlock].Text)) {
		v.cursorOffset++
		return
	}
	if v.cursorBlock < len(doc.Blocks)-1 {
		v.cursorBlock++
		v.cursorOffset = 0
	}
}

func (v *View) moveVertical(doc *domain.Document, delta int) {
	v.selecting = false
	next := v.cursorBlock + delta
	if next < 0 || next >= len(doc.Blocks) {
		return
	}
	v.cursorBlock = next
	if max := len([]rune(doc.Blocks[next].Text)); v.cursorOffset > max {
		v.cursorOffset = max
	}
}

// track starts or stops selection extension.
func (v *View) track(extend bool) {
	if !extend {
		v.selecting = false
		return
	}
	if !v.selecting {
		v.selecting = true
		v.anchorBlock = v.cursorBlock
		v.anchorOffset = v.cursorOffset
	}
}

func (v *View) backspace(doc *domain.Document) {
	if v.cursorOffset > 0 {
		doc.DeleteText(v.cursorBlock, v.cursorOffset-1, 1)
		v.cursorOffset--
		return
	}
	if v.cursorBlock == 0 {
		return
	}
	prev := v.cursorBlock - 1
	if doc.Blocks[prev].Type == domain.BlockAtomic {
		doc.RemoveBlock(prev)
		v.cursorBlock--
		return
	}
	newOffset := len([]rune(doc.Blocks[prev].Text))
	doc.MergeWithPrevious(v.cursorBlock)
	v.cursorBlock = prev
	v.cursorOffset = newOffset
}

func (v *View) saveCmd() tea.Cmd {
	if v.saving {
		return nil
	}
	v.saving = true
	v.status = "Saving..."
	draft := v.snapshot()
	return func() tea.Msg {
		id, err := v.articles.SaveDraft(context.Background(), draft)
		return messages.SaveCompleted{ID: id, Err: err}
	}
}

func (v *View) publishCmd() tea.Cmd {
	if v.saving {
		return nil
	}
	v.saving = true
	v.status = "Publishing..."
	draft := v.snapshot()
	return func() tea.Msg {
		id, err := v.articles.Publish(context.Background(), draft)
		if err != nil {
			var interrupted *driving.PublishInterruptedError
			if errors.As(err, &interrupted) {
				return messages.PublishCompleted{Token: interrupted.Token, Err: err}
			}
			return messages.PublishCompleted{Err: err}
		}
		return messages.PublishCompleted{ID: id}
	}
}

func (v *View) autosaveCmd() tea.Cmd {
	draft := v.snapshot()
	if (draft.Body == nil || draft.Body.IsEmpty()) &&
		(draft.Description == nil || draft.Description.IsEmpty()) &&
		draft.Title == "" {
		return nil
	}
	bufferID := v.bufferID
	return func() tea.Msg {
		id, err := v.workspace.Autosave(context.Background(), bufferID, draft)
		return messages.AutosaveCompleted{BufferID: id, Err: err}
	}
}

func (v *View) discardBufferCmd() tea.Cmd {
	id := v.bufferID
	v.bufferID = ""
	if id == "" {
		return nil
	}
	return func() tea.Msg {
		_ = v.workspace.Discard(context.Background(), id)
		return nil
	}
}

// View renders the editor.
func (v *View) View() string {
	var b strings.Builder

	header := "Compose"
	if v.draft.ArticleID != 0 {
		header = fmt.Sprintf("Edit #%d (%s)", v.draft.ArticleID, v.draft.Kind)
	}
	b.WriteString(v.styles.Title.Render(header))
	b.WriteString("\n\n")

	b.WriteString(v.fieldLabel("Title", focusTitle))
	b.WriteString(v.title.View())
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Category: "))
	b.WriteString(v.styles.Subtitle.Render(string(domain.Categories[v.category])))
	b.WriteString(v.styles.Help.Render("  (ctrl+y cycles while on title)"))
	b.WriteString("\n")
	if !v.draft.Thumbnail.IsZero() {
		b.WriteString(v.styles.Muted.Render("Thumbnail: " + v.draft.Thumbnail.Filename))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(v.fieldLabel("Body", focusBody))
	b.WriteString(v.renderDoc(v.body, v.focus == focusBody))
	b.WriteString("\n\n")
	b.WriteString(v.fieldLabel("Description", focusDescription))
	b.WriteString(v.renderDoc(v.desc, v.focus == focusDescription))
	b.WriteString("\n")

	if v.focus == focusImagePath || v.focus == focusThumbnailPath {
		b.WriteString("\n")
		b.WriteString(v.pathIn.View())
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(v.err.Error()))
	} else if v.status != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.status))
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render(
		"ctrl+s save · ctrl+p publish · ctrl+b/i/u/k style · ctrl+t block · ctrl+g image · ctrl+o thumbnail · ctrl+n field · esc exit"))

	return b.String()
}

func (v *View) fieldLabel(name string, f focusedField) string {
	if v.focus == f {
		return v.styles.Subtitle.Render("▸ "+name) + "\n"
	}
	return v.styles.Muted.Render("  "+name) + "\n"
}

// renderDoc shows the document with a cursor marker in the active one.
func (v *View) renderDoc(doc *domain.Document, active bool) string {
	r := render.New(v.styles, 0)
	if !active {
		out := r.Document(doc)
		if strings.TrimSpace(out) == "" {
			return v.styles.Muted.Render("  (empty)")
		}
		return out
	}

	var lines []string
	for i := range doc.Blocks {
		line := r.Document(&domain.Document{
			Blocks:   []domain.Block{doc.Blocks[i]},
			Entities: doc.Entities,
		})
		if i == v.cursorBlock {
			line = v.withCursor(doc.Blocks[i])
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// withCursor marks the cursor position in the raw text of the current
// block. Styled rendering is skipped for that block so the marker
// lands at the right rune.
func (v *View) withCursor(b domain.Block) string {
	runes := []rune(b.Text)
	offset := v.cursorOffset
	if offset > len(runes) {
		offset = len(runes)
	}
	return string(runes[:offset]) + v.styles.Selected.Render("│") + string(runes[offset:])
}

// PromptActive reports whether a path prompt is capturing input.
func (v *View) PromptActive() bool {
	return v.focus == focusImagePath || v.focus == focusThumbnailPath
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// BufferID returns the active autosave buffer id.
func (v *View) BufferID() string {
	return v.bufferID
}
