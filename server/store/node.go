package store

import (
	"github.com/twonds/idavoll/server/store/types"
)

// Node is a request-scoped handle to a stored node, bound to a snapshot of
// the node's configuration and the active storage adapter. Subscriber lists
// are never cached on the handle.
type Node interface {
	// ID returns the node identifier.
	ID() string
	// Type returns the node type.
	Type() types.NodeType
	// Config returns the configuration snapshot the handle is bound to.
	Config() types.NodeConfig
	// SetConfig merges recognized option keys into the node configuration
	// and persists the result. Unrecognized keys are ignored.
	SetConfig(options map[string]interface{}) error
	// Affiliation returns the entity's role on the node, AffNone if absent.
	Affiliation(entity types.JID) (types.Affiliation, error)
	// Subscription returns the subscription state of the exact subscriber
	// identity, SubStateNone if absent.
	Subscription(subscriber types.JID) (types.SubState, error)
	// AddSubscription stores a new subscription in the given state.
	AddSubscription(subscriber types.JID, state types.SubState) error
	// RemoveSubscription deletes the subscriber's subscription.
	RemoveSubscription(subscriber types.JID) error
	// Subscribers returns fully identified subscribers in state subscribed.
	Subscribers() ([]types.JID, error)
	// IsSubscribed reports whether the bare entity is subscribed under any
	// resource.
	IsSubscribed(entity types.JID) (bool, error)
}

// LeafNode is a Node which stores items directly.
type LeafNode interface {
	Node

	// StoreItems upserts the items, all-or-nothing, recording the publisher.
	StoreItems(items []*types.Item, publisher types.JID) error
	// RemoveItems deletes items by identifier, returning the subset actually
	// deleted.
	RemoveItems(ids []string) ([]string, error)
	// Items returns stored items most recent first, all of them when max <= 0.
	Items(max int) ([]types.Item, error)
	// ItemsByID returns the items found for the given identifiers.
	ItemsByID(ids []string) ([]types.Item, error)
	// Purge deletes all items, leaving the node and its subscriptions intact.
	Purge() error
}

type nodeHandle struct {
	data types.Node
}

func (n *nodeHandle) ID() string {
	return n.data.ID
}

func (n *nodeHandle) Type() types.NodeType {
	return n.data.Type
}

func (n *nodeHandle) Config() types.NodeConfig {
	return n.data.Config
}

func (n *nodeHandle) SetConfig(options map[string]interface{}) error {
	merged := n.data.Config.Merge(options)
	if err := adp.NodeUpdate(n.data.ID, merged); err != nil {
		return err
	}
	n.data.Config = merged
	return nil
}

func (n *nodeHandle) Affiliation(entity types.JID) (types.Affiliation, error) {
	return adp.AffiliationGet(n.data.ID, entity.BareJID())
}

func (n *nodeHandle) Subscription(subscriber types.JID) (types.SubState, error) {
	return adp.SubGet(n.data.ID, subscriber)
}

func (n *nodeHandle) AddSubscription(subscriber types.JID, state types.SubState) error {
	sub := &types.Subscription{
		Node:       n.data.ID,
		Subscriber: subscriber,
		State:      state,
	}
	sub.InitTimes()
	return adp.SubAdd(n.data.ID, sub)
}

func (n *nodeHandle) RemoveSubscription(subscriber types.JID) error {
	return adp.SubDelete(n.data.ID, subscriber)
}

func (n *nodeHandle) Subscribers() ([]types.JID, error) {
	return adp.SubscribersForNode(n.data.ID)
}

func (n *nodeHandle) IsSubscribed(entity types.JID) (bool, error) {
	return adp.IsSubscribed(n.data.ID, entity.BareJID())
}

type leafNode struct {
	nodeHandle
}

func (n *leafNode) StoreItems(items []*types.Item, publisher types.JID) error {
	for _, item := range items {
		if item.Publisher.IsZero() {
			item.Publisher = publisher
		}
		if item.CreatedAt.IsZero() {
			item.CreatedAt = types.TimeNow()
		}
	}
	return adp.ItemSave(n.data.ID, items)
}

func (n *leafNode) RemoveItems(ids []string) ([]string, error) {
	return adp.ItemDeleteList(n.data.ID, ids)
}

func (n *leafNode) Items(max int) ([]types.Item, error) {
	return adp.ItemGetAll(n.data.ID, max)
}

func (n *leafNode) ItemsByID(ids []string) ([]types.Item, error) {
	return adp.ItemGetByID(n.data.ID, ids)
}

func (n *leafNode) Purge() error {
	return adp.ItemDeleteAll(n.data.ID)
}
