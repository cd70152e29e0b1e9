package federation

import (
	"errors"
	"testing"
)

func TestValidateActorURI(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		wantErr error
	}{
		{"valid actor", "https://remote.example/users/alice", nil},
		{"valid actor with deep path", "https://social.example.org/ap/actors/42", nil},
		{"http scheme rejected", "http://bad-scheme.example/actor", ErrInsecureScheme},
		{"relative url rejected", "/users/alice", ErrNotAbsolute},
		{"bare origin rejected", "https://remote.example", ErrBadPath},
		{"root path rejected", "https://remote.example/", ErrBadPath},
		{"short host rejected", "https://ab/actor", ErrBadHost},
		{"ftp scheme rejected", "ftp://remote.example/actor", ErrInsecureScheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateActorURI(tt.uri)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateActorURI(%q) = %v, want nil", tt.uri, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateActorURI(%q) = %v, want %v", tt.uri, err, tt.wantErr)
			}
		})
	}
}

func TestIsAbsoluteURL(t *testing.T) {
	if !IsAbsoluteURL("https://remote.example/users/alice") {
		t.Error("expected https URL to be absolute")
	}
	if !IsAbsoluteURL("http://remote.example/users/alice") {
		t.Error("expected http URL to be absolute")
	}
	if IsAbsoluteURL("not a url at all \x00") {
		t.Error("expected garbage to be rejected")
	}
	if IsAbsoluteURL("/users/alice") {
		t.Error("expected relative path to be rejected")
	}
}

func TestActorDocuments(t *testing.T) {
	wf := NewWebfingerResponse("social.example", "alice")
	if wf.Subject != "acct:alice@social.example" {
		t.Errorf("unexpected webfinger subject %q", wf.Subject)
	}
	if len(wf.Links) != 1 || wf.Links[0].Href != "https://social.example/users/alice/actor" {
		t.Errorf("unexpected webfinger links %+v", wf.Links)
	}

	doc := NewActorDocument("social.example", "alice", "Alice")
	if doc.ID != "https://social.example/users/alice/actor" {
		t.Errorf("unexpected actor id %q", doc.ID)
	}
	if doc.Inbox != "https://social.example/users/alice/inbox" {
		t.Errorf("unexpected inbox %q", doc.Inbox)
	}
	if err := ValidateActorURI(doc.ID); err != nil {
		t.Errorf("locally built actor id should validate, got %v", err)
	}
}
