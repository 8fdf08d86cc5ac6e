package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func login(t *testing.T, env *testEnv, email, password string) *http.Response {
	t.Helper()
	body := strings.NewReader(`{"email":"` + email + `","password":"` + password + `"}`)
	req := httptest.NewRequest("POST", "/admin/login", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := env.app.Test(req)
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	return resp
}

func adminSID(t *testing.T, env *testEnv) string {
	t.Helper()
	resp := login(t, env, testAdminEmail, testAdminPassword)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on login, got %d", resp.StatusCode)
	}
	sid := cookieValue(resp, "sid")
	if sid == "" {
		t.Fatal("sid cookie missing")
	}
	return sid
}

func TestLoginBadCredentials(t *testing.T) {
	env := newTestApp(t)
	resp := login(t, env, testAdminEmail, "wrongpass")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if cookieValue(resp, "sid") != "" {
		t.Fatal("no session cookie on failed login")
	}
}

func TestLoginSetsHTTPOnlyLaxCookie(t *testing.T) {
	env := newTestApp(t)
	resp := login(t, env, testAdminEmail, testAdminPassword)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var sid *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "sid" {
			sid = c
		}
	}
	if sid == nil {
		t.Fatal("sid cookie missing")
	}
	if !sid.HttpOnly {
		t.Fatal("sid must be http-only")
	}
	if sid.SameSite != http.SameSiteLaxMode {
		t.Fatalf("sid must be lax same-site, got %v", sid.SameSite)
	}
}

func TestAdminGateRejectsWithoutSession(t *testing.T) {
	env := newTestApp(t)
	for _, rt := range [][2]string{
		{"POST", "/products"},
		{"PUT", "/products/x"},
		{"DELETE", "/products/x"},
		{"POST", "/upload"},
		{"POST", "/admin/change-password"},
		{"GET", "/admin/products"},
	} {
		req := httptest.NewRequest(rt[0], rt[1], nil)
		resp, err := env.app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", rt[0], rt[1], resp.StatusCode)
		}
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	env := newTestApp(t)
	sid := adminSID(t, env)

	req := httptest.NewRequest("POST", "/admin/logout", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	if _, err := env.app.Test(req); err != nil {
		t.Fatal(err)
	}

	req = httptest.NewRequest("GET", "/admin/products", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	resp, err := env.app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", resp.StatusCode)
	}
}

func changePassword(t *testing.T, env *testEnv, sid, current, next string) *http.Response {
	t.Helper()
	body := strings.NewReader(`{"currentPassword":"` + current + `","newPassword":"` + next + `"}`)
	req := httptest.NewRequest("POST", "/admin/change-password", body)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	resp, err := env.app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestChangePasswordLengthRule(t *testing.T) {
	env := newTestApp(t)
	sid := adminSID(t, env)

	// 3 characters: rejected before any write
	resp := changePassword(t, env, sid, testAdminPassword, "abc")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for short password, got %d", resp.StatusCode)
	}
	// old password still works
	if r := login(t, env, testAdminEmail, testAdminPassword); r.StatusCode != http.StatusOK {
		t.Fatalf("password must be unchanged, login got %d", r.StatusCode)
	}

	// 5 characters: accepted
	resp = changePassword(t, env, sid, testAdminPassword, "abcde")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for 5-char password, got %d", resp.StatusCode)
	}
	if r := login(t, env, testAdminEmail, "abcde"); r.StatusCode != http.StatusOK {
		t.Fatalf("new password must work, got %d", r.StatusCode)
	}
	if r := login(t, env, testAdminEmail, testAdminPassword); r.StatusCode != http.StatusUnauthorized {
		t.Fatalf("old password must stop working, got %d", r.StatusCode)
	}
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	env := newTestApp(t)
	sid := adminSID(t, env)
	resp := changePassword(t, env, sid, "notmypassword", "abcde")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong current password, got %d", resp.StatusCode)
	}
}
