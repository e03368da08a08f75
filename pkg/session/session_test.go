package session

import "testing"

func TestLifecycle(t *testing.T) {
	s := New()
	if s.Authenticated() {
		t.Fatal("fresh session must be signed out")
	}

	s.Init("tok")
	if !s.Authenticated() || s.Token() != "tok" {
		t.Fatalf("after init: auth=%v token=%q", s.Authenticated(), s.Token())
	}

	s.Teardown()
	s.Teardown()
	if s.Authenticated() || s.Token() != "" {
		t.Fatal("teardown must clear the session")
	}
}
