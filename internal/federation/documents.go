package federation

import "fmt"

// WebfingerLink is one entry in a webfinger response
type WebfingerLink struct {
	Rel  string `json:"rel"`
	Type string `json:"type,omitempty"`
	Href string `json:"href,omitempty"`
}

// WebfingerResponse is the JRD document served at /.well-known/webfinger
type WebfingerResponse struct {
	Subject string          `json:"subject"`
	Links   []WebfingerLink `json:"links"`
}

// ActorDocument is the minimal ActivityPub actor served for local users
type ActorDocument struct {
	Context           []string `json:"@context"`
	ID                string   `json:"id"`
	Type              string   `json:"type"`
	PreferredUsername string   `json:"preferredUsername"`
	Name              string   `json:"name,omitempty"`
	Inbox             string   `json:"inbox"`
	Outbox            string   `json:"outbox"`
	Followers         string   `json:"followers"`
	Following         string   `json:"following"`
}

// ActorURI returns the canonical actor id for a local username.
func ActorURI(domain, username string) string {
	return fmt.Sprintf("https://%s/users/%s/actor", domain, username)
}

// NewWebfingerResponse builds the webfinger document for a local username.
func NewWebfingerResponse(domain, username string) *WebfingerResponse {
	return &WebfingerResponse{
		Subject: fmt.Sprintf("acct:%s@%s", username, domain),
		Links: []WebfingerLink{
			{
				Rel:  "self",
				Type: "application/activity+json",
				Href: ActorURI(domain, username),
			},
		},
	}
}

// NewActorDocument builds the actor document for a local user.
func NewActorDocument(domain, username, displayName string) *ActorDocument {
	actor := ActorURI(domain, username)
	return &ActorDocument{
		Context:           []string{"https://www.w3.org/ns/activitystreams"},
		ID:                actor,
		Type:              "Person",
		PreferredUsername: username,
		Name:              displayName,
		Inbox:             fmt.Sprintf("https://%s/users/%s/inbox", domain, username),
		Outbox:            fmt.Sprintf("https://%s/users/%s/outbox", domain, username),
		Followers:         fmt.Sprintf("https://%s/users/%s/followers", domain, username),
		Following:         fmt.Sprintf("https://%s/users/%s/following", domain, username),
	}
}
