// ABOUTME: Tests for the signup command
// ABOUTME: Registration persists a session; invalid roles fail locally

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"stayhub/internal/client"
	"stayhub/internal/session"
)

func fillSignupFlags(role string) {
	signupProfile = client.SignupProfile{
		Username: "asha",
		Email:    "asha@example.com",
		Password: "secret",
		Phone:    "555-0101",
		Address:  "2 Spice St",
	}
	signupRole = role
}

func resetSignupFlags() {
	signupProfile = client.SignupProfile{}
	signupRole = "customer"
}

func TestSignupCommand_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/register" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"accessToken":  "access",
				"refreshToken": "refresh",
				"user": map[string]string{
					"username": "asha",
					"role":     "vendor",
				},
			},
		})
	}))
	defer server.Close()

	seedSession(t, nil)
	apiURL = server.URL
	fillSignupFlags("vendor")
	defer func() {
		apiURL = ""
		resetSignupFlags()
	}()

	var buf bytes.Buffer
	exitCode := runSignup(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("Welcome to StayHub, asha")) {
		t.Errorf("expected welcome message, got %q", buf.String())
	}

	store := session.NewFileStore(session.DefaultConfigDir())
	sess, err := store.Get()
	if err != nil {
		t.Fatal(err)
	}
	if sess == nil || sess.Role != session.RoleVendor {
		t.Errorf("expected persisted vendor session, got %+v", sess)
	}
}

// Signing up as admin is rejected locally, before any request is made.
func TestSignupCommand_AdminRoleRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid signup must not reach the server")
	}))
	defer server.Close()

	seedSession(t, nil)
	apiURL = server.URL
	fillSignupFlags("admin")
	defer func() {
		apiURL = ""
		resetSignupFlags()
	}()

	var buf bytes.Buffer
	exitCode := runSignup(context.Background(), &buf)

	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("customer or vendor")) {
		t.Errorf("expected role hint in error, got %q", buf.String())
	}
}

func TestSignupCommand_DuplicateEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "email already registered"})
	}))
	defer server.Close()

	seedSession(t, nil)
	apiURL = server.URL
	fillSignupFlags("customer")
	defer func() {
		apiURL = ""
		resetSignupFlags()
	}()

	var buf bytes.Buffer
	exitCode := runSignup(context.Background(), &buf)

	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("email already registered")) {
		t.Error("expected server message in output")
	}
}
