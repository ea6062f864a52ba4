// Package pubsub implements the publish-subscribe service layer: stateless
// feature services layered over the store facade, composed by a Backend and
// wired to a notification Dispatcher.
package pubsub

import (
	"github.com/twonds/idavoll/server/store/types"
)

// NodeCreator creates nodes and manages node configuration.
type NodeCreator interface {
	// CreateNode creates a leaf node owned by owner. An empty id requests an
	// instant node with a generated identifier. Returns the node identifier.
	CreateNode(id string, owner types.JID, options map[string]interface{}) (string, error)
	// NodeConfig returns the node's current configuration.
	NodeConfig(node string) (types.NodeConfig, error)
	// SetNodeConfig merges recognized options into the node configuration.
	// Requires owner affiliation.
	SetNodeConfig(node string, requestor types.JID, options map[string]interface{}) error
}

// Publisher publishes items to leaf nodes.
type Publisher interface {
	// Publish stores the items if the node persists them and always emits a
	// published event. Requires owner or publisher affiliation.
	Publish(node string, requestor types.JID, items []*types.Item) error
}

// SubscriptionManager adds and removes subscriptions.
type SubscriptionManager interface {
	// Subscribe adds a subscription for subscriber and returns the resulting
	// state. Requestors may only subscribe themselves.
	Subscribe(node string, requestor, subscriber types.JID) (types.SubState, error)
	// Unsubscribe removes subscriber's subscription.
	Unsubscribe(node string, requestor, subscriber types.JID) error
}

// EntityAffiliation pairs a node with the entity's role and current
// subscription state on it.
type EntityAffiliation struct {
	Node         string
	Affiliation  types.Affiliation
	Subscription types.SubState
}

// AffiliationsReader reports an entity's roles across all nodes.
type AffiliationsReader interface {
	Affiliations(entity types.JID) ([]EntityAffiliation, error)
}

// Retractor removes items from leaf nodes.
type Retractor interface {
	// Retract deletes the given items and emits a retracted event for the
	// subset actually deleted. Requires owner affiliation.
	Retract(node string, requestor types.JID, ids []string) error
	// Purge deletes all items and emits a purged event. Requires owner
	// affiliation.
	Purge(node string, requestor types.JID) error
}

// ItemReader retrieves stored items.
type ItemReader interface {
	// Items returns items by explicit identifiers when ids is non-empty,
	// otherwise the most recent items bounded by max (all when max <= 0).
	Items(node string, requestor types.JID, max int, ids []string) ([]types.Item, error)
}

// NodeDeleter deletes nodes.
type NodeDeleter interface {
	// Delete removes the node and everything stored under it, then emits a
	// deleted event. Requires owner affiliation.
	Delete(node string, requestor types.JID) error
}

// Config carries deployment policy knobs.
type Config struct {
	// AllowInstantNodes permits node creation without a caller-supplied
	// identifier.
	AllowInstantNodes bool
	// OpenRetrieval permits item retrieval without a subscription or
	// affiliation on the node.
	OpenRetrieval bool
}

// DefaultConfig returns the default policy: instant nodes allowed, open
// retrieval.
func DefaultConfig() Config {
	return Config{AllowInstantNodes: true, OpenRetrieval: true}
}

// Backend is the composition root binding the feature services to one
// storage instance and one dispatcher. It routes; business logic lives in
// the services.
type Backend struct {
	creator    NodeCreator
	publisher  Publisher
	subs       SubscriptionManager
	affs       AffiliationsReader
	retractor  Retractor
	reader     ItemReader
	deleter    NodeDeleter
	dispatcher *Dispatcher
}

// NewBackend resolves the feature services against the given policy and a
// fresh dispatcher.
func NewBackend(config Config) *Backend {
	dispatcher := NewDispatcher()
	return &Backend{
		creator:    &createService{allowInstant: config.AllowInstantNodes},
		publisher:  &publishService{dispatcher: dispatcher},
		subs:       &subscribeService{},
		affs:       &affiliationsService{},
		retractor:  &retractService{dispatcher: dispatcher},
		reader:     &retrieveService{open: config.OpenRetrieval},
		deleter:    &deleteService{dispatcher: dispatcher},
		dispatcher: dispatcher,
	}
}

// RegisterListener subscribes the listener to all events.
func (b *Backend) RegisterListener(l Listener) {
	b.dispatcher.Register(l)
}

// CreateNode creates a leaf node owned by owner.
func (b *Backend) CreateNode(id string, owner types.JID, options map[string]interface{}) (string, error) {
	return b.creator.CreateNode(id, owner, options)
}

// NodeConfig returns the node's current configuration.
func (b *Backend) NodeConfig(node string) (types.NodeConfig, error) {
	return b.creator.NodeConfig(node)
}

// SetNodeConfig updates the node configuration.
func (b *Backend) SetNodeConfig(node string, requestor types.JID, options map[string]interface{}) error {
	return b.creator.SetNodeConfig(node, requestor, options)
}

// Publish publishes items to a leaf node.
func (b *Backend) Publish(node string, requestor types.JID, items []*types.Item) error {
	return b.publisher.Publish(node, requestor, items)
}

// Subscribe adds a subscription and returns the resulting state.
func (b *Backend) Subscribe(node string, requestor, subscriber types.JID) (types.SubState, error) {
	return b.subs.Subscribe(node, requestor, subscriber)
}

// Unsubscribe removes a subscription.
func (b *Backend) Unsubscribe(node string, requestor, subscriber types.JID) error {
	return b.subs.Unsubscribe(node, requestor, subscriber)
}

// Affiliations returns the entity's roles paired with subscription states.
func (b *Backend) Affiliations(entity types.JID) ([]EntityAffiliation, error) {
	return b.affs.Affiliations(entity)
}

// RetractItems deletes items from a leaf node.
func (b *Backend) RetractItems(node string, requestor types.JID, ids []string) error {
	return b.retractor.Retract(node, requestor, ids)
}

// PurgeNode deletes all items of a leaf node.
func (b *Backend) PurgeNode(node string, requestor types.JID) error {
	return b.retractor.Purge(node, requestor)
}

// RetrieveItems returns stored items.
func (b *Backend) RetrieveItems(node string, requestor types.JID, max int, ids []string) ([]types.Item, error) {
	return b.reader.Items(node, requestor, max, ids)
}

// DeleteNode removes a node and everything stored under it.
func (b *Backend) DeleteNode(node string, requestor types.JID) error {
	return b.deleter.Delete(node, requestor)
}
