package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/paleotommytechy/portfolio/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRedirectsWithoutSession(t *testing.T) {
	f := newFixture(t)

	for _, sid := range []string{"", "unknown-session"} {
		rec := f.get("/admin/services", sid)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
		assert.NotContains(t, rec.Body.String(), "Admin Dashboard")
	}

	rec := f.postForm("/admin/services", "", url.Values{"title": {"x"}, "desc": {"y"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	all, err := f.db.Services().FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAdminDashboardRendersForSession(t *testing.T) {
	f := newFixture(t)
	sid := f.login(t)

	rec := f.get("/admin", sid)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Admin Dashboard")
	assert.Contains(t, rec.Body.String(), testEmail)
	assert.Contains(t, rec.Body.String(), `data-tab="testimonials"`)
}

func TestAdminCreatesService(t *testing.T) {
	f := newFixture(t)
	sid := f.login(t)

	rec := f.postForm("/admin/services", sid, url.Values{"title": {"Firmware"}, "desc": {"MCU work"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/services", rec.Header().Get("Location"))

	all, err := f.db.Services().FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Firmware", all[0].Title)

	assert.Contains(t, f.get("/admin/services", sid).Body.String(), "Firmware")
}

func TestAdminSubmitRequiresFields(t *testing.T) {
	f := newFixture(t)
	sid := f.login(t)

	rec := f.postForm("/admin/services", sid, url.Values{"title": {"Only a title"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Desc is required")
	assert.Contains(t, rec.Body.String(), "Only a title")
}

func TestAdminEditThenDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	first, err := f.db.Services().Add(ctx, models.Service{Title: "First", Desc: "one"})
	require.NoError(t, err)
	second, err := f.db.Services().Add(ctx, models.Service{Title: "Second", Desc: "two"})
	require.NoError(t, err)
	sid := f.login(t)

	rec := f.postForm(fmt.Sprintf("/admin/services/%d/edit", first.ID), sid, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, f.get("/admin/services", sid).Body.String(), `value="First"`)

	rec = f.postForm("/admin/services", sid, url.Values{"title": {"First, revised"}, "desc": {"one"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	got, err := f.db.Services().FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "First, revised", got.Title)

	rec = f.postForm(fmt.Sprintf("/admin/services/%d/delete", second.ID), sid, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	all, err := f.db.Services().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, first.ID, all[0].ID)
}

func TestAdminCancelLeavesEditMode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc, err := f.db.Services().Add(ctx, models.Service{Title: "Editable", Desc: "d"})
	require.NoError(t, err)
	sid := f.login(t)

	f.postForm(fmt.Sprintf("/admin/services/%d/edit", svc.ID), sid, nil)
	rec := f.postForm("/admin/services/cancel", sid, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	body := f.get("/admin/services", sid).Body.String()
	assert.NotContains(t, body, `value="Editable"`)
}

func TestAdminUnknownTabIsNotFound(t *testing.T) {
	f := newFixture(t)
	sid := f.login(t)

	rec := f.postForm("/admin/blog", sid, url.Values{"title": {"x"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminUploadsTestimonialAvatar(t *testing.T) {
	f := newFixture(t)
	sid := f.login(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("quote", "Great work"))
	require.NoError(t, mw.WriteField("author", "Tolu"))
	require.NoError(t, mw.WriteField("company", "Acme"))
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="avatar.png"`)
	h.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG fake"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/testimonials", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	withSession(req, sid)
	rec := f.do(req)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	all, err := f.db.Testimonials().FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, strings.HasPrefix(all[0].Avatar, "https://cdn.example.com/testimonials/"))
	assert.True(t, strings.HasSuffix(all[0].Avatar, "-avatar.png"))

	f.objects.mu.Lock()
	assert.Len(t, f.objects.objects, 1)
	f.objects.mu.Unlock()
}

func TestAdminWebsocketReportsSignOut(t *testing.T) {
	f := newFixture(t)
	sid := f.login(t)

	server := httptest.NewServer(f.handler)
	defer server.Close()

	header := http.Header{}
	header.Set("Cookie", (&http.Cookie{Name: "portfolio_session", Value: sid}).String())
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/admin/session/ws"

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer conn.Close()
	defer resp.Body.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev sessionEvent
	require.NoError(t, conn.ReadJSON(&ev))
	require.Equal(t, "watching", ev.Event)

	require.NoError(t, f.store.SignOut(context.Background(), sid))

	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "signed_out", ev.Event)
}
