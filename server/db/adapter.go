// Package adapter contains the interfaces to be implemented by the database adapter
package adapter

import (
	"encoding/json"

	t "github.com/twonds/idavoll/server/store/types"
)

// Adapter is the interface that must be implemented by a storage backend.
// The current schema supports a single connection by backend type.
//
// Every node-scoped operation verifies that the node still exists within the
// same atomic unit as the operation itself and fails with ErrNodeNotFound if
// a concurrent deletion raced ahead of it.
type Adapter interface {
	// General

	// Open and configure the adapter
	Open(config json.RawMessage) error
	// Close the adapter
	Close() error
	// IsOpen checks if the adapter is ready for use
	IsOpen() bool
	// GetName returns the name of the adapter
	GetName() string
	// SetMaxResults configures how many results can be returned in a single call.
	SetMaxResults(val int) error
	// CreateDb creates the database optionally dropping an existing database first.
	CreateDb(reset bool) error
	// CheckDbVersion checks if the actual database version matches adapter version.
	CheckDbVersion() error
	// Version returns adapter version
	Version() int
	// Stats returns a connection stats object.
	Stats() interface{}

	// Node management

	// NodeCreate stores a new node and the owner affiliation in one atomic
	// unit. Fails with ErrNodeExists if the identifier is already in use.
	NodeCreate(node *t.Node, owner t.JID) error
	// NodeGet loads a single node by identifier.
	NodeGet(id string) (*t.Node, error)
	// NodeGetAll returns the identifiers of all nodes.
	NodeGetAll() ([]string, error)
	// NodeUpdate replaces the node configuration.
	NodeUpdate(id string, cfg t.NodeConfig) error
	// NodeDelete deletes the node and cascades to its affiliations,
	// subscriptions and items as a single atomic unit.
	NodeDelete(id string) error

	// Affiliations

	// AffiliationGet returns the entity's role on the node, AffNone if absent.
	AffiliationGet(node string, entity t.JID) (t.Affiliation, error)
	// AffiliationsForEntity returns (node, role) pairs for every node the
	// entity has a non-none affiliation with, ordered by node identifier.
	AffiliationsForEntity(entity t.JID) ([]t.NodeAffiliation, error)

	// Subscriptions

	// SubAdd stores a new subscription. Fails with ErrSubscriptionExists on
	// a duplicate (node, entity, resource) tuple.
	SubAdd(node string, sub *t.Subscription) error
	// SubGet returns the subscription state for the exact subscriber
	// identity, SubStateNone if absent.
	SubGet(node string, subscriber t.JID) (t.SubState, error)
	// SubDelete removes a subscription. Fails with ErrSubscriptionNotFound
	// if absent.
	SubDelete(node string, subscriber t.JID) error
	// SubsForEntity returns all subscriptions held by the bare entity across
	// all nodes, any resource.
	SubsForEntity(entity t.JID) ([]t.Subscription, error)
	// SubscribersForNode returns fully identified subscribers whose state is
	// subscribed.
	SubscribersForNode(node string) ([]t.JID, error)
	// IsSubscribed reports whether the bare entity holds a subscription in
	// state subscribed under any resource.
	IsSubscribed(node string, entity t.JID) (bool, error)

	// Items

	// ItemSave upserts the given items, all-or-nothing. A second item with
	// an identifier already stored on the node replaces the existing row.
	ItemSave(node string, items []*t.Item) error
	// ItemDeleteList deletes items by identifier and returns the subset
	// actually deleted. Missing identifiers are silently skipped.
	ItemDeleteList(node string, ids []string) ([]string, error)
	// ItemGetAll returns items most recent first, bounded by limit if
	// limit > 0.
	ItemGetAll(node string, limit int) ([]t.Item, error)
	// ItemGetByID returns the items found for the given identifiers; missing
	// ones are simply absent from the result.
	ItemGetByID(node string, ids []string) ([]t.Item, error)
	// ItemDeleteAll deletes all items of the node, leaving the node and its
	// subscriptions intact.
	ItemDeleteAll(node string) error
}
