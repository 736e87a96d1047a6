package chatitem

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"discord-backend/internal/app/member"
	"discord-backend/internal/client/modal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingDoer struct {
	calls atomic.Int32
	resp  int
	err   error
	block chan struct{}
}

func (d *countingDoer) Do(req *http.Request) (*http.Response, error) {
	d.calls.Add(1)
	if d.block != nil {
		<-d.block
	}
	if d.err != nil {
		return nil, d.err
	}
	status := d.resp
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{StatusCode: status, Status: http.StatusText(status), Body: http.NoBody, Request: req}, nil
}

type navRecorder struct{ paths []string }

func (n *navRecorder) Push(path string) { n.paths = append(n.paths, path) }

type refreshCounter struct{ n int }

func (r *refreshCounter) Refresh() { r.n++ }

type dispatchRecorder struct{ cmds []modal.Command }

func (d *dispatchRecorder) Dispatch(cmd modal.Command) { d.cmds = append(d.cmds, cmd) }

func ownProps() Props {
	return Props{
		ID:            "m1",
		Content:       "hello there",
		Member:        Author{ID: "mem-1", Role: member.RoleGuest, Name: "Alice"},
		Timestamp:     "01 Jan 2025, 10:00",
		CurrentMember: Viewer{ID: "mem-1", Role: member.RoleGuest},
		SocketURL:     "/api/socket/messages",
		SocketQuery:   map[string]string{"serverId": "s1", "channelId": "c1"},
		ServerID:      "s1",
	}
}

func TestDeleteHiddenForOtherGuests(t *testing.T) {
	p := ownProps()
	p.CurrentMember = Viewer{ID: "mem-2", Role: member.RoleGuest}

	for _, role := range member.AllRoles {
		p.CurrentMember.Role = role
		vis := Policy(p)
		assert.Equal(t, role.CanModerate(), vis.ShowDelete, role)
		assert.False(t, vis.ShowEdit, role)
	}

	p.CurrentMember.Role = member.RoleGuest
	it := New(p, Deps{})
	assert.ErrorIs(t, it.RequestDelete(), ErrDeleteNotAllowed)
}

func TestDeletedMessageHidesControls(t *testing.T) {
	for _, role := range member.AllRoles {
		for _, owner := range []bool{true, false} {
			p := ownProps()
			p.Deleted = true
			p.Content = "secret"
			p.CurrentMember.Role = role
			if !owner {
				p.CurrentMember.ID = "someone-else"
			}

			it := New(p, Deps{})
			v := it.View()
			assert.Equal(t, BranchDeleted, v.Branch)
			assert.Equal(t, Visibility{}, v.Visibility)
			assert.Equal(t, DeletedPlaceholder, v.Content)
			assert.ErrorIs(t, it.BeginEdit(), ErrEditNotAllowed)
			assert.ErrorIs(t, it.RequestDelete(), ErrDeleteNotAllowed)
		}
	}
}

func TestAttachmentNeverRendersText(t *testing.T) {
	for _, url := range []string{"https://cdn/x.png", "https://cdn/x.pdf"} {
		for _, role := range member.AllRoles {
			for _, owner := range []bool{true, false} {
				p := ownProps()
				p.FileURL = url
				p.CurrentMember.Role = role
				if !owner {
					p.CurrentMember.ID = "someone-else"
				}

				it := New(p, Deps{})
				v := it.View()
				assert.NotEqual(t, BranchText, v.Branch)
				assert.False(t, v.Visibility.ShowEdit)
				assert.ErrorIs(t, it.BeginEdit(), ErrEditNotAllowed)
			}
		}
	}
}

func TestEmptyEditNeverHitsNetwork(t *testing.T) {
	doer := &countingDoer{}
	it := New(ownProps(), Deps{Client: doer})
	require.NoError(t, it.BeginEdit())

	for _, draft := range []string{"", "   "} {
		it.SetDraft(draft)
		assert.ErrorIs(t, it.SubmitEdit(context.Background()), ErrEmptyContent)
	}
	assert.Zero(t, doer.calls.Load())
	assert.Equal(t, ModeEdit, it.Mode())
}

func TestEscapeRestoresServerContent(t *testing.T) {
	w := NewWindow()
	it := New(ownProps(), Deps{Window: w})
	defer it.Close()

	require.NoError(t, it.BeginEdit())
	it.SetDraft("half typed")

	w.Press("Enter")
	assert.Equal(t, ModeEdit, it.Mode())

	w.Press(KeyEscape)
	v := it.View()
	assert.Equal(t, ModeView, v.Mode)
	assert.Equal(t, "hello there", v.Draft)
}

func TestCloseDetachesFromWindow(t *testing.T) {
	w := NewWindow()
	it := New(ownProps(), Deps{Window: w})
	assert.Equal(t, 1, w.Listeners())

	it.Close()
	it.Close()
	assert.Equal(t, 0, w.Listeners())
}

func TestOwnerEditScenario(t *testing.T) {
	var (
		mu       sync.Mutex
		method   string
		path     string
		rawQuery string
		body     map[string]string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		method, path, rawQuery = r.Method, r.URL.Path, r.URL.RawQuery
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := ownProps()
	p.SocketURL = srv.URL + "/api/socket/messages"
	refresher := &refreshCounter{}
	it := New(p, Deps{Client: srv.Client(), Refresher: refresher})

	v := it.View()
	assert.Equal(t, BranchText, v.Branch)
	assert.True(t, v.Visibility.ShowEdit)
	assert.True(t, v.Visibility.ShowDelete)

	require.NoError(t, it.BeginEdit())
	assert.Equal(t, ModeEdit, it.Mode())

	it.SetDraft("hello")
	require.NoError(t, it.SubmitEdit(context.Background()))

	mu.Lock()
	assert.Equal(t, http.MethodPatch, method)
	assert.Equal(t, "/api/socket/messages/m1", path)
	assert.Equal(t, "channelId=c1&serverId=s1", rawQuery)
	assert.Equal(t, map[string]string{"content": "hello"}, body)
	mu.Unlock()

	assert.Equal(t, ModeView, it.Mode())
	assert.Equal(t, 1, refresher.n)
	assert.Equal(t, "hello there", it.View().Draft)
}

func TestFailedEditStaysInEditMode(t *testing.T) {
	refresher := &refreshCounter{}
	for _, doer := range []*countingDoer{
		{err: errors.New("connection reset")},
		{resp: http.StatusForbidden},
	} {
		it := New(ownProps(), Deps{Client: doer, Refresher: refresher})
		require.NoError(t, it.BeginEdit())
		it.SetDraft("keep me")

		assert.Error(t, it.SubmitEdit(context.Background()))

		v := it.View()
		assert.Equal(t, ModeEdit, v.Mode)
		assert.Equal(t, "keep me", v.Draft)
		assert.False(t, v.InputDisabled)
	}
	assert.Zero(t, refresher.n)
}

func TestSecondSubmitWhileInFlight(t *testing.T) {
	doer := &countingDoer{block: make(chan struct{})}
	it := New(ownProps(), Deps{Client: doer})
	require.NoError(t, it.BeginEdit())
	it.SetDraft("first")

	done := make(chan error, 1)
	go func() { done <- it.SubmitEdit(context.Background()) }()

	require.Eventually(t, func() bool { return it.View().InputDisabled }, waitFor, tick)
	assert.ErrorIs(t, it.SubmitEdit(context.Background()), ErrSubmitInProgress)

	it.SetDraft("ignored while submitting")
	assert.Equal(t, "first", it.View().Draft)

	close(doer.block)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), doer.calls.Load())
}

func TestSetPropsOverwritesDraftMidEdit(t *testing.T) {
	it := New(ownProps(), Deps{})
	require.NoError(t, it.BeginEdit())
	it.SetDraft("my unsaved words")

	p := ownProps()
	p.Content = "server changed"
	it.SetProps(p)

	v := it.View()
	assert.Equal(t, ModeEdit, v.Mode)
	assert.Equal(t, "server changed", v.Draft)

	it.SetDraft("again")
	p.IsUpdated = true
	it.SetProps(p)
	assert.Equal(t, "again", it.View().Draft)
}

func TestSetPropsDeletedLeavesEdit(t *testing.T) {
	it := New(ownProps(), Deps{})
	require.NoError(t, it.BeginEdit())

	p := ownProps()
	p.Deleted = true
	it.SetProps(p)

	assert.Equal(t, ModeView, it.Mode())
}

func TestRequestDeleteDispatchesCommand(t *testing.T) {
	doer := &countingDoer{}
	dispatcher := &dispatchRecorder{}
	p := ownProps()
	p.CurrentMember = Viewer{ID: "mod", Role: member.RoleModerator}

	it := New(p, Deps{Client: doer, Modal: dispatcher})
	require.NoError(t, it.RequestDelete())

	require.Len(t, dispatcher.cmds, 1)
	assert.Equal(t, modal.KindDeleteMessage, dispatcher.cmds[0].Kind)
	assert.Equal(t, "/api/socket/messages/m1", dispatcher.cmds[0].APIURL)
	assert.Equal(t, p.SocketQuery, dispatcher.cmds[0].Query)
	assert.Zero(t, doer.calls.Load())
}

func TestMemberClick(t *testing.T) {
	nav := &navRecorder{}
	it := New(ownProps(), Deps{Navigator: nav})
	it.MemberClick()
	assert.Empty(t, nav.paths)

	p := ownProps()
	p.CurrentMember.ID = "mem-2"
	it = New(p, Deps{Navigator: nav})
	it.MemberClick()
	assert.Equal(t, []string{"/servers/s1/conversations/mem-1"}, nav.paths)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, BranchText, Classify(""))
	assert.Equal(t, BranchFile, Classify("https://cdn/files/report.pdf"))
	assert.Equal(t, BranchImage, Classify("https://cdn/files/cat.png"))
	assert.Equal(t, BranchImage, Classify("https://cdn/files/notes.docx"))
}

func TestBadgeTableCoversAllRoles(t *testing.T) {
	for _, role := range member.AllRoles {
		_, ok := roleBadges[role]
		assert.True(t, ok, role)
	}
	assert.Len(t, roleBadges, len(member.AllRoles))
	assert.Nil(t, BadgeFor(member.RoleGuest))
	assert.Equal(t, &RoleBadge{Icon: "shield-check", Color: "indigo"}, BadgeFor(member.RoleModerator))
	assert.Equal(t, &RoleBadge{Icon: "shield-alert", Color: "rose"}, BadgeFor(member.RoleAdmin))
	assert.Nil(t, BadgeFor(member.Role("OWNER")))
	assert.Nil(t, BadgeFor(""))
}

func TestViewWithUnknownRoleHasNoBadge(t *testing.T) {
	it := New(Props{ID: "msg-9", Content: "hi", Member: Author{ID: "mem-9"}}, Deps{})
	defer it.Close()

	var v View
	require.NotPanics(t, func() { v = it.View() })
	assert.Nil(t, v.Badge)
	assert.Equal(t, "hi", v.Content)
}

const (
	waitFor = 3 * time.Second
	tick    = 5 * time.Millisecond
)
