package handlers

import (
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ysato/recallnote/auth"
	"github.com/ysato/recallnote/models"
	"github.com/ysato/recallnote/views"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Review{}, &models.Session{}))

	renderer, err := views.New()
	require.NoError(t, err)

	svc := auth.NewService(db, []byte("test-secret"))
	h := NewDBHandler(db, svc, renderer)
	server := httptest.NewServer(NewRouter(h, svc))
	t.Cleanup(server.Close)
	return server, db
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func postForm(t *testing.T, client *http.Client, url string, form url.Values) (int, string) {
	t.Helper()
	resp, err := client.PostForm(url, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func get(t *testing.T, client *http.Client, url string) (int, string) {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func registerUser(t *testing.T, client *http.Client, baseURL, username string) {
	t.Helper()
	status, body := postForm(t, client, baseURL+"/products/register", url.Values{
		"username": {username},
		"password": {"himitsu"},
	})
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "登録が完了しました")
}

func TestRegisterAndLoginFlow(t *testing.T) {
	server, _ := newTestServer(t)
	client := newClient(t)

	registerUser(t, client, server.URL, "taro")

	// Registration lands on the dashboard, already signed in
	status, body := get(t, client, server.URL+"/products")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "本日の復習内容")

	// Second registration with the same username is refused
	other := newClient(t)
	status, body = postForm(t, other, server.URL+"/products/register", url.Values{
		"username": {"taro"},
		"password": {"betsu"},
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "そのユーザー名はすでに使われています。")

	// The first user can still log in
	fresh := newClient(t)
	status, body = postForm(t, fresh, server.URL+"/products/login", url.Values{
		"username": {"taro"},
		"password": {"himitsu"},
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "ログインしました。")
}

func TestLogin_WrongPassword(t *testing.T) {
	server, _ := newTestServer(t)
	client := newClient(t)
	registerUser(t, client, server.URL, "taro")

	fresh := newClient(t)
	_, body := postForm(t, fresh, server.URL+"/products/login", url.Values{
		"username": {"taro"},
		"password": {"machigai"},
	})
	assert.Contains(t, body, "パスワードまたはユーザーネームが間違っています。")
}

func TestDashboard_RequiresLogin(t *testing.T) {
	server, _ := newTestServer(t)
	client := newClient(t)

	_, body := get(t, client, server.URL+"/products")
	assert.Contains(t, body, "ログインしてください")
	assert.Contains(t, body, "ログイン")
}

func TestReviewLifecycle_RememberedDeletes(t *testing.T) {
	server, db := newTestServer(t)
	client := newClient(t)
	registerUser(t, client, server.URL, "taro")

	status, body := postForm(t, client, server.URL+"/products", url.Values{
		"category": {"math"},
		"question": {"2+2"},
		"answer":   {"4"},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "学習内容を登録しました")
	assert.Contains(t, body, "2+2")

	var review models.Review
	require.NoError(t, db.First(&review, "question = ?", "2+2").Error)

	// Move the entry one day into the past so it shows up on the dashboard
	require.NoError(t, db.Model(&review).
		Update("time", time.Now().AddDate(0, 0, -1)).Error)
	_, body = get(t, client, server.URL+"/products")
	assert.Contains(t, body, "2+2")

	// "Remembered" deletes the entry
	status, _ = postForm(t, client, server.URL+fmt.Sprintf("/products/remembered/%d", review.ID), url.Values{
		"_method": {"DELETE"},
	})
	require.Equal(t, http.StatusOK, status)

	_, body = get(t, client, server.URL+"/products")
	assert.NotContains(t, body, "2+2")
	_, body = get(t, client, server.URL+"/products/show")
	assert.NotContains(t, body, "2+2")

	// Deleting again is a no-op, not an error
	status, _ = postForm(t, client, server.URL+fmt.Sprintf("/products/remembered/%d", review.ID), url.Values{
		"_method": {"DELETE"},
	})
	assert.Equal(t, http.StatusOK, status)
}

func TestNotRemembered_ResetsIntoToday(t *testing.T) {
	server, db := newTestServer(t)
	client := newClient(t)
	registerUser(t, client, server.URL, "taro")

	postForm(t, client, server.URL+"/products", url.Values{
		"category": {"math"},
		"question": {"2+2"},
		"answer":   {"4"},
	})

	var review models.Review
	require.NoError(t, db.First(&review, "question = ?", "2+2").Error)
	require.NoError(t, db.Model(&review).
		Update("time", time.Now().AddDate(0, 0, -7)).Error)

	before := time.Now()
	status, body := postForm(t, client, server.URL+fmt.Sprintf("/products/notRemembered/%d", review.ID), url.Values{
		"_method": {"PUT"},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "もう一回頑張りましょう")

	require.NoError(t, db.First(&review, review.ID).Error)
	assert.False(t, review.Time.Before(before.Truncate(time.Second)))

	// Back in today's list, gone from the 7-day bucket
	_, body = get(t, client, server.URL+"/products/show")
	assert.Contains(t, body, "2+2")
	_, body = get(t, client, server.URL+"/products")
	assert.NotContains(t, body, "2+2")
}

func TestEdit_OwnershipEnforced(t *testing.T) {
	server, db := newTestServer(t)

	owner := newClient(t)
	registerUser(t, owner, server.URL, "taro")
	postForm(t, owner, server.URL+"/products", url.Values{
		"category": {"math"},
		"question": {"2+2"},
		"answer":   {"4"},
	})

	var review models.Review
	require.NoError(t, db.First(&review, "question = ?", "2+2").Error)

	intruder := newClient(t)
	registerUser(t, intruder, server.URL, "hanako")

	// Editing another user's review is refused
	_, body := get(t, intruder, server.URL+fmt.Sprintf("/products/%d/edit", review.ID))
	assert.Contains(t, body, "アクセス権限がないかデータがありません")

	_, body = postForm(t, intruder, server.URL+fmt.Sprintf("/products/%d", review.ID), url.Values{
		"_method":  {"PUT"},
		"category": {"hacked"},
		"question": {"hacked"},
		"answer":   {"hacked"},
	})
	assert.Contains(t, body, "アクセス権限がありません")

	// The review is unchanged afterwards
	var after models.Review
	require.NoError(t, db.First(&after, review.ID).Error)
	assert.Equal(t, "2+2", after.Question)
	assert.Equal(t, "math", after.Category)

	// The owner can edit it
	_, _ = postForm(t, owner, server.URL+fmt.Sprintf("/products/%d", review.ID), url.Values{
		"_method":  {"PUT"},
		"category": {"math"},
		"question": {"3+3"},
		"answer":   {"6"},
	})
	require.NoError(t, db.First(&after, review.ID).Error)
	assert.Equal(t, "3+3", after.Question)
}

func TestSelectedDay(t *testing.T) {
	server, db := newTestServer(t)
	client := newClient(t)
	registerUser(t, client, server.URL, "taro")

	postForm(t, client, server.URL+"/products", url.Values{
		"category": {"math"},
		"question": {"2+2"},
		"answer":   {"4"},
	})

	var review models.Review
	require.NoError(t, db.First(&review, "question = ?", "2+2").Error)
	studied := time.Date(2026, 8, 15, 14, 0, 0, 0, time.Local)
	require.NoError(t, db.Model(&review).Update("time", studied).Error)

	_, body := postForm(t, client, server.URL+"/products/selectedDay", url.Values{
		"date": {"2026-08-15"},
	})
	assert.Contains(t, body, "2+2")
	assert.Contains(t, body, "2026-08-15")

	_, body = postForm(t, client, server.URL+"/products/selectedDay", url.Values{
		"date": {"2026-08-16"},
	})
	assert.NotContains(t, body, "2+2")

	// A missing date just returns to the calendar shell
	status, _ := postForm(t, client, server.URL+"/products/selectedDay", url.Values{})
	assert.Equal(t, http.StatusOK, status)
}

func TestLogout(t *testing.T) {
	server, _ := newTestServer(t)
	client := newClient(t)
	registerUser(t, client, server.URL, "taro")

	_, body := get(t, client, server.URL+"/products/logout")
	assert.Contains(t, body, "ログアウトしました。")

	_, body = get(t, client, server.URL+"/products")
	assert.Contains(t, body, "ログインしてください")
}

func TestUnmatchedRouteRenders404(t *testing.T) {
	server, _ := newTestServer(t)
	client := newClient(t)

	status, body := get(t, client, server.URL+"/nonexistent")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "ページが見つかりませんでした。")
}
