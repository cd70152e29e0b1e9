package services

// FollowerIdentity identifies who is doing the following: either a local
// account by user id, or a remote federated actor by URI. Modeling the two
// cases explicitly keeps the dual-column lookup an implementation detail of
// the store rather than an overloaded string at the API boundary.
type FollowerIdentity struct {
	localID  string
	actorURI string
}

// LocalFollower identifies a local account by user id
func LocalFollower(id string) FollowerIdentity {
	return FollowerIdentity{localID: id}
}

// FederatedFollower identifies a remote ActivityPub actor by URI
func FederatedFollower(actorURI string) FollowerIdentity {
	return FollowerIdentity{actorURI: actorURI}
}

// IsFederated reports whether the identity is a remote actor
func (f FollowerIdentity) IsFederated() bool {
	return f.actorURI != ""
}

// ActorURI returns the remote actor URI, empty for local identities
func (f FollowerIdentity) ActorURI() string {
	return f.actorURI
}

// Key returns the identifier used for store lookups: the local user id, or
// for federated identities the actor URI (which by convention also populates
// the follower column).
func (f FollowerIdentity) Key() string {
	if f.actorURI != "" {
		return f.actorURI
	}
	return f.localID
}
