// Package chatitem is the headless controller behind one rendered chat message:
// the view/edit state machine, the control visibility policy and the two
// mutations it can start.
package chatitem

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"discord-backend/internal/app/member"
	"discord-backend/internal/client/modal"

	"go.uber.org/zap"
)

// DeletedPlaceholder is shown instead of the content of a deleted message.
const DeletedPlaceholder = "This message has been deleted."

type Mode int

const (
	ModeView Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "EDIT"
	}
	return "VIEW"
}

var (
	ErrEditNotAllowed   = errors.New("message cannot be edited by this member")
	ErrDeleteNotAllowed = errors.New("message cannot be deleted by this member")
	ErrNotEditing       = errors.New("message is not in edit mode")
	ErrEmptyContent     = errors.New("content must not be empty")
	ErrSubmitInProgress = errors.New("edit already being submitted")
)

type Author struct {
	ID       string
	Role     member.Role
	Name     string
	ImageURL string
}

type Viewer struct {
	ID   string
	Role member.Role
}

type Props struct {
	ID            string
	Content       string
	Member        Author
	Timestamp     string
	FileURL       string
	Deleted       bool
	CurrentMember Viewer
	IsUpdated     bool
	SocketURL     string
	SocketQuery   map[string]string
	// ServerID scopes the conversation route MemberClick navigates to.
	ServerID string
}

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Navigator interface {
	Push(path string)
}

type Refresher interface {
	Refresh()
}

type Deps struct {
	Client    Doer
	Token     string
	Window    *Window
	Navigator Navigator
	Refresher Refresher
	Modal     modal.Dispatcher
	Logger    *zap.Logger
}

// View is everything a renderer needs for one frame.
type View struct {
	Branch        Branch
	Mode          Mode
	Content       string
	Edited        bool
	Draft         string
	InputDisabled bool
	Visibility    Visibility
	AuthorName    string
	AuthorImage   string
	Badge         *RoleBadge
	RoleLabel     string
	Timestamp     string
	FileURL       string
}

type Item struct {
	mu         sync.Mutex
	props      Props
	mode       Mode
	draft      string
	submitting bool

	client      Doer
	token       string
	navigator   Navigator
	refresher   Refresher
	modal       modal.Dispatcher
	unsubscribe func()
	logger      *zap.SugaredLogger
}

func New(props Props, deps Deps) *Item {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	client := deps.Client
	if client == nil {
		client = http.DefaultClient
	}

	it := &Item{
		props:     props,
		mode:      ModeView,
		draft:     props.Content,
		client:    client,
		token:     deps.Token,
		navigator: deps.Navigator,
		refresher: deps.Refresher,
		modal:     deps.Modal,
		logger:    logger.Sugar().With("message_id", props.ID),
	}
	if deps.Window != nil {
		it.unsubscribe = deps.Window.Subscribe(it.HandleKey)
	}
	return it
}

// Close detaches the item from the window key listener.
func (it *Item) Close() {
	if it.unsubscribe != nil {
		it.unsubscribe()
	}
}

func (it *Item) View() View {
	it.mu.Lock()
	defer it.mu.Unlock()

	p := it.props
	v := View{
		Branch:        branchOf(p),
		Mode:          it.mode,
		Content:       p.Content,
		Edited:        p.IsUpdated,
		Draft:         it.draft,
		InputDisabled: it.submitting,
		Visibility:    Policy(p),
		AuthorName:    p.Member.Name,
		AuthorImage:   p.Member.ImageURL,
		Badge:         BadgeFor(p.Member.Role),
		RoleLabel:     string(p.Member.Role),
		Timestamp:     p.Timestamp,
		FileURL:       p.FileURL,
	}
	if v.Branch == BranchDeleted {
		v.Content = DeletedPlaceholder
		v.FileURL = ""
		v.Mode = ModeView
	}
	return v
}

func (it *Item) Mode() Mode {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.mode
}

func (it *Item) BeginEdit() error {
	it.mu.Lock()
	defer it.mu.Unlock()

	if !Policy(it.props).ShowEdit {
		return ErrEditNotAllowed
	}
	it.mode = ModeEdit
	return nil
}

// HandleKey cancels an edit on Escape and restores the last server content.
func (it *Item) HandleKey(key string) {
	if key != KeyEscape {
		return
	}
	it.mu.Lock()
	defer it.mu.Unlock()

	if it.mode != ModeEdit {
		return
	}
	it.mode = ModeView
	it.draft = it.props.Content
}

func (it *Item) SetDraft(draft string) {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.submitting {
		return
	}
	it.draft = draft
}

// SetProps replaces the server projection. A content change overwrites the
// draft even while editing.
func (it *Item) SetProps(p Props) {
	it.mu.Lock()
	defer it.mu.Unlock()

	if p.Content != it.props.Content {
		it.draft = p.Content
	}
	it.props = p
	if it.mode == ModeEdit && !Policy(p).ShowEdit {
		it.mode = ModeView
	}
}

// SubmitEdit sends the draft to the message endpoint. On failure the item stays
// in edit mode with the draft intact and the error is only logged and returned.
func (it *Item) SubmitEdit(ctx context.Context) error {
	it.mu.Lock()
	if it.mode != ModeEdit {
		it.mu.Unlock()
		return ErrNotEditing
	}
	if it.submitting {
		it.mu.Unlock()
		return ErrSubmitInProgress
	}
	if strings.TrimSpace(it.draft) == "" {
		it.mu.Unlock()
		return ErrEmptyContent
	}
	it.submitting = true
	content := it.draft
	base := it.messageURL()
	query := it.props.SocketQuery
	it.mu.Unlock()

	err := it.patch(ctx, base, query, content)

	it.mu.Lock()
	it.submitting = false
	if err != nil {
		it.mu.Unlock()
		it.logger.Errorw("Failed to update message", "error", err)
		return err
	}
	it.mode = ModeView
	it.draft = it.props.Content
	it.mu.Unlock()

	if it.refresher != nil {
		it.refresher.Refresh()
	}
	return nil
}

func (it *Item) patch(ctx context.Context, base string, query map[string]string, content string) error {
	target, err := modal.BuildURL(base, query)
	if err != nil {
		return err
	}
	body, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return fmt.Errorf("failed to encode edit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build edit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if it.token != "" {
		req.Header.Set("Authorization", "Bearer "+it.token)
	}

	resp, err := it.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send edit: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("edit rejected: %s", resp.Status)
	}
	return nil
}

// RequestDelete asks the confirmation dialog to delete the message. It never calls the endpoint itself.
func (it *Item) RequestDelete() error {
	it.mu.Lock()
	if !Policy(it.props).ShowDelete {
		it.mu.Unlock()
		return ErrDeleteNotAllowed
	}
	cmd := modal.Command{
		Kind:   modal.KindDeleteMessage,
		APIURL: it.messageURL(),
		Query:  copyQuery(it.props.SocketQuery),
	}
	it.mu.Unlock()

	if it.modal != nil {
		it.modal.Dispatch(cmd)
	}
	return nil
}

// MemberClick opens the direct conversation with the author unless it is the viewer.
func (it *Item) MemberClick() {
	it.mu.Lock()
	p := it.props
	it.mu.Unlock()

	if p.Member.ID == p.CurrentMember.ID || it.navigator == nil {
		return
	}
	it.navigator.Push(fmt.Sprintf("/servers/%s/conversations/%s", p.ServerID, p.Member.ID))
}

func (it *Item) messageURL() string {
	return strings.TrimSuffix(it.props.SocketURL, "/") + "/" + it.props.ID
}

func copyQuery(q map[string]string) map[string]string {
	out := make(map[string]string, len(q))
	for k, v := range q {
		out[k] = v
	}
	return out
}
