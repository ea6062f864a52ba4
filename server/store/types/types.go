// Package types holds the data model shared by the storage adapters and the
// pubsub business logic: nodes, entities, affiliations, subscriptions, items.
package types

import (
	"strings"
	"time"
)

// StoreError satisfies the error interface while allowing constant values for
// direct comparison.
type StoreError string

func (s StoreError) Error() string {
	return string(s)
}

const (
	// ErrNodeNotFound - node with the given identifier does not exist.
	ErrNodeNotFound = StoreError("node not found")
	// ErrNodeExists - attempt to create a node with an identifier already in use.
	ErrNodeExists = StoreError("node exists")
	// ErrNotAuthorized - requestor's affiliation does not permit the operation.
	ErrNotAuthorized = StoreError("not authorized")
	// ErrPayloadExpected - node delivers payloads but the item carries none.
	ErrPayloadExpected = StoreError("payload expected")
	// ErrNoPayloadAllowed - node does not deliver payloads but the item carries one.
	ErrNoPayloadAllowed = StoreError("no payload allowed")
	// ErrNoInstantNodes - auto-generated node identifiers are disabled by policy.
	ErrNoInstantNodes = StoreError("instant nodes not supported")
	// ErrSubscriptionExists - the (node, entity, resource) tuple is already subscribed.
	ErrSubscriptionExists = StoreError("subscription exists")
	// ErrSubscriptionNotFound - no subscription for the (node, entity, resource) tuple.
	ErrSubscriptionNotFound = StoreError("subscription not found")
	// ErrNotSubscribed - the entity holds no subscription to the node.
	ErrNotSubscribed = StoreError("not subscribed")
	// ErrUnsupported - the node type does not support the operation.
	ErrUnsupported = StoreError("unsupported node type")
	// ErrMalformed - the input value cannot be parsed.
	ErrMalformed = StoreError("malformed")
)

// JID is an addressable entity: a bare account identifier with an optional
// per-session resource suffix.
type JID struct {
	Bare     string
	Resource string
}

// ParseJID parses a string of the form "account" or "account/resource".
func ParseJID(s string) (JID, error) {
	bare, resource, _ := strings.Cut(s, "/")
	if bare == "" {
		return JID{}, ErrMalformed
	}
	return JID{Bare: bare, Resource: resource}, nil
}

// BareJID strips the resource suffix.
func (j JID) BareJID() JID {
	return JID{Bare: j.Bare}
}

// Full returns the fully qualified identity, "account/resource" or just
// "account" when no resource is set.
func (j JID) Full() string {
	if j.Resource == "" {
		return j.Bare
	}
	return j.Bare + "/" + j.Resource
}

func (j JID) String() string {
	return j.Full()
}

// IsZero reports whether the JID is unset.
func (j JID) IsZero() bool {
	return j.Bare == ""
}

// NodeType distinguishes leaf nodes from collections.
type NodeType string

const (
	// NodeLeaf is a node storing items directly.
	NodeLeaf NodeType = "leaf"
	// NodeCollection is a grouping node; item operations are not supported on it.
	NodeCollection NodeType = "collection"
)

// Recognized node configuration option keys.
const (
	ConfigPersistItems    = "persist_items"
	ConfigDeliverPayloads = "deliver_payloads"
)

// NodeConfig is the mutable per-node configuration.
type NodeConfig struct {
	PersistItems    bool `json:"persist_items"`
	DeliverPayloads bool `json:"deliver_payloads"`
}

// Merge applies recognized option keys and ignores everything else.
// Values of the wrong type are ignored as well.
func (c NodeConfig) Merge(options map[string]interface{}) NodeConfig {
	for key, val := range options {
		b, ok := val.(bool)
		if !ok {
			continue
		}
		switch key {
		case ConfigPersistItems:
			c.PersistItems = b
		case ConfigDeliverPayloads:
			c.DeliverPayloads = b
		}
	}
	return c
}

// DefaultLeafConfig returns the configuration assigned to newly created leaf nodes.
func DefaultLeafConfig() NodeConfig {
	return NodeConfig{PersistItems: true, DeliverPayloads: true}
}

// Node is a stored pub/sub topic.
type Node struct {
	ID        string
	Type      NodeType
	Config    NodeConfig
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InitTimes initializes the timestamps to current time if unset.
func (n *Node) InitTimes() {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = TimeNow()
	}
	n.UpdatedAt = n.CreatedAt
}

// Affiliation is an entity's administrative role on a node.
type Affiliation string

const (
	AffOwner     Affiliation = "owner"
	AffPublisher Affiliation = "publisher"
	AffOutcast   Affiliation = "outcast"
	AffNone      Affiliation = "none"
)

// IsNone reports whether the affiliation is absent.
func (a Affiliation) IsNone() bool {
	return a == "" || a == AffNone
}

// NodeAffiliation pairs a node with an entity's role on it.
type NodeAffiliation struct {
	Node        string
	Affiliation Affiliation
}

// SubState is the state of a subscription.
type SubState string

const (
	SubStateSubscribed   SubState = "subscribed"
	SubStatePending      SubState = "pending"
	SubStateUnconfigured SubState = "unconfigured"
	// SubStateNone indicates the absence of a subscription. Never stored.
	SubStateNone SubState = "none"
)

// Subscription is an entity's registration to receive notifications from a
// node, keyed by the (entity, resource) pair.
type Subscription struct {
	Node       string
	Subscriber JID
	State      SubState
	CreatedAt  time.Time
}

// InitTimes initializes the timestamp to current time if unset.
func (s *Subscription) InitTimes() {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = TimeNow()
	}
}

// Item is a single published payload, identified uniquely within its node.
type Item struct {
	ID        string
	Publisher JID
	Data      string
	CreatedAt time.Time
}

// TimeNow returns current wall time in UTC rounded to milliseconds.
func TimeNow() time.Time {
	return time.Now().UTC().Round(time.Millisecond)
}
