// Package memory is a process-local in-memory storage adapter.
// It is always compiled in and is the default backend for tests and small
// deployments. Conflicting mutations on the same node are serialized with a
// per-node mutex; the node table itself is guarded by a store-level RWMutex.
package memory

import (
	"encoding/json"
	"errors"
	"sort"
	"sync"

	"github.com/twonds/idavoll/server/store"
	t "github.com/twonds/idavoll/server/store/types"
)

// adapter holds the in-memory node table.
type adapter struct {
	mu         sync.RWMutex
	nodes      map[string]*node
	open       bool
	maxResults int
}

// node is a stored node with its affiliation, subscription and item state.
// Lock order: adapter.mu before node.mu, never the other way around.
type node struct {
	mu sync.Mutex
	// Set under mu when the node is removed from the table so that callers
	// which fetched the pointer before the deletion fail NodeNotFound.
	deleted bool

	data t.Node
	// bare JID -> role
	affiliations map[string]t.Affiliation
	// full JID -> subscription
	subs map[string]*t.Subscription
	items map[string]*t.Item
	// item ids in publication order, oldest first
	order []string
}

const (
	adapterName = "memory"

	adpVersion = 100

	defaultMaxResults = 1024
)

// Open initializes the adapter. The config is accepted for interface
// compatibility and may be nil.
func (a *adapter) Open(jsonconfig json.RawMessage) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.open {
		return errors.New("memory adapter is already open")
	}

	a.nodes = make(map[string]*node)
	if a.maxResults == 0 {
		a.maxResults = defaultMaxResults
	}
	a.open = true

	return nil
}

// Close discards all stored state.
func (a *adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.nodes = nil
	a.open = false

	return nil
}

// IsOpen returns true if the adapter is ready for use.
func (a *adapter) IsOpen() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.open
}

// GetName returns the name of the adapter.
func (a *adapter) GetName() string {
	return adapterName
}

// SetMaxResults configures how many results can be returned in a single call.
func (a *adapter) SetMaxResults(val int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if val <= 0 {
		a.maxResults = defaultMaxResults
	} else {
		a.maxResults = val
	}
	return nil
}

// CreateDb clears stored state when reset is requested. There is no schema
// to create.
func (a *adapter) CreateDb(reset bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if reset || a.nodes == nil {
		a.nodes = make(map[string]*node)
	}
	return nil
}

// CheckDbVersion is a no-op: state lives and dies with the process.
func (a *adapter) CheckDbVersion() error {
	return nil
}

// Version returns adapter version.
func (a *adapter) Version() int {
	return adpVersion
}

// Stats returns the number of stored nodes.
func (a *adapter) Stats() interface{} {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return map[string]interface{}{"NodeCount": len(a.nodes)}
}

// getNode fetches a node pointer and acquires its mutex. The deleted flag is
// re-checked under the node lock so that the existence check and the
// operation form one atomic unit.
func (a *adapter) getNode(id string) (*node, error) {
	a.mu.RLock()
	n := a.nodes[id]
	a.mu.RUnlock()

	if n == nil {
		return nil, t.ErrNodeNotFound
	}

	n.mu.Lock()
	if n.deleted {
		n.mu.Unlock()
		return nil, t.ErrNodeNotFound
	}
	return n, nil
}

// NodeCreate stores a new node with the owner affiliation.
func (a *adapter) NodeCreate(data *t.Node, owner t.JID) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.nodes[data.ID]; ok {
		return t.ErrNodeExists
	}

	a.nodes[data.ID] = &node{
		data:         *data,
		affiliations: map[string]t.Affiliation{owner.Bare: t.AffOwner},
		subs:         make(map[string]*t.Subscription),
		items:        make(map[string]*t.Item),
	}

	return nil
}

// NodeGet loads a single node by identifier.
func (a *adapter) NodeGet(id string) (*t.Node, error) {
	n, err := a.getNode(id)
	if err != nil {
		return nil, err
	}
	defer n.mu.Unlock()

	data := n.data
	return &data, nil
}

// NodeGetAll returns the identifiers of all nodes.
func (a *adapter) NodeGetAll() ([]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	ids := make([]string, 0, len(a.nodes))
	for id := range a.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids, nil
}

// NodeUpdate replaces the node configuration.
func (a *adapter) NodeUpdate(id string, cfg t.NodeConfig) error {
	n, err := a.getNode(id)
	if err != nil {
		return err
	}
	defer n.mu.Unlock()

	n.data.Config = cfg
	n.data.UpdatedAt = t.TimeNow()

	return nil
}

// NodeDelete removes the node with all its affiliations, subscriptions and
// items in one step.
func (a *adapter) NodeDelete(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := a.nodes[id]
	if n == nil {
		return t.ErrNodeNotFound
	}

	n.mu.Lock()
	n.deleted = true
	n.mu.Unlock()

	delete(a.nodes, id)

	return nil
}

// AffiliationGet returns the entity's role on the node, AffNone if absent.
func (a *adapter) AffiliationGet(nodeID string, entity t.JID) (t.Affiliation, error) {
	n, err := a.getNode(nodeID)
	if err != nil {
		return "", err
	}
	defer n.mu.Unlock()

	aff, ok := n.affiliations[entity.Bare]
	if !ok {
		return t.AffNone, nil
	}
	return aff, nil
}

// AffiliationsForEntity returns (node, role) pairs ordered by node identifier.
func (a *adapter) AffiliationsForEntity(entity t.JID) ([]t.NodeAffiliation, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var affs []t.NodeAffiliation
	for id, n := range a.nodes {
		n.mu.Lock()
		if aff, ok := n.affiliations[entity.Bare]; ok && !aff.IsNone() {
			affs = append(affs, t.NodeAffiliation{Node: id, Affiliation: aff})
		}
		n.mu.Unlock()
	}
	sort.Slice(affs, func(i, j int) bool { return affs[i].Node < affs[j].Node })

	return affs, nil
}

// SubAdd stores a new subscription.
func (a *adapter) SubAdd(nodeID string, sub *t.Subscription) error {
	n, err := a.getNode(nodeID)
	if err != nil {
		return err
	}
	defer n.mu.Unlock()

	key := sub.Subscriber.Full()
	if _, ok := n.subs[key]; ok {
		return t.ErrSubscriptionExists
	}

	stored := *sub
	n.subs[key] = &stored

	return nil
}

// SubGet returns the subscription state of the exact subscriber identity.
func (a *adapter) SubGet(nodeID string, subscriber t.JID) (t.SubState, error) {
	n, err := a.getNode(nodeID)
	if err != nil {
		return "", err
	}
	defer n.mu.Unlock()

	sub, ok := n.subs[subscriber.Full()]
	if !ok {
		return t.SubStateNone, nil
	}
	return sub.State, nil
}

// SubDelete removes a subscription.
func (a *adapter) SubDelete(nodeID string, subscriber t.JID) error {
	n, err := a.getNode(nodeID)
	if err != nil {
		return err
	}
	defer n.mu.Unlock()

	key := subscriber.Full()
	if _, ok := n.subs[key]; !ok {
		return t.ErrSubscriptionNotFound
	}
	delete(n.subs, key)

	return nil
}

// SubsForEntity returns all subscriptions held by the bare entity.
func (a *adapter) SubsForEntity(entity t.JID) ([]t.Subscription, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var subs []t.Subscription
	for _, n := range a.nodes {
		n.mu.Lock()
		for _, sub := range n.subs {
			if sub.Subscriber.Bare == entity.Bare {
				subs = append(subs, *sub)
			}
		}
		n.mu.Unlock()
	}
	sort.Slice(subs, func(i, j int) bool {
		if subs[i].Node != subs[j].Node {
			return subs[i].Node < subs[j].Node
		}
		return subs[i].Subscriber.Full() < subs[j].Subscriber.Full()
	})

	return subs, nil
}

// SubscribersForNode returns fully identified subscribers in state subscribed.
func (a *adapter) SubscribersForNode(nodeID string) ([]t.JID, error) {
	n, err := a.getNode(nodeID)
	if err != nil {
		return nil, err
	}
	defer n.mu.Unlock()

	var jids []t.JID
	for _, sub := range n.subs {
		if sub.State == t.SubStateSubscribed {
			jids = append(jids, sub.Subscriber)
		}
	}
	sort.Slice(jids, func(i, j int) bool { return jids[i].Full() < jids[j].Full() })

	return jids, nil
}

// IsSubscribed reports whether the bare entity is subscribed under any resource.
func (a *adapter) IsSubscribed(nodeID string, entity t.JID) (bool, error) {
	n, err := a.getNode(nodeID)
	if err != nil {
		return false, err
	}
	defer n.mu.Unlock()

	for _, sub := range n.subs {
		if sub.Subscriber.Bare == entity.Bare && sub.State == t.SubStateSubscribed {
			return true, nil
		}
	}
	return false, nil
}

// ItemSave upserts the given items. A replaced item moves to the end of the
// publication order.
func (a *adapter) ItemSave(nodeID string, items []*t.Item) error {
	n, err := a.getNode(nodeID)
	if err != nil {
		return err
	}
	defer n.mu.Unlock()

	for _, item := range items {
		if _, ok := n.items[item.ID]; ok {
			n.removeFromOrder(item.ID)
		}
		stored := *item
		n.items[item.ID] = &stored
		n.order = append(n.order, item.ID)
	}

	return nil
}

func (n *node) removeFromOrder(id string) {
	for i, stored := range n.order {
		if stored == id {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
}

// ItemDeleteList deletes items by identifier, returning the subset actually
// deleted.
func (a *adapter) ItemDeleteList(nodeID string, ids []string) ([]string, error) {
	n, err := a.getNode(nodeID)
	if err != nil {
		return nil, err
	}
	defer n.mu.Unlock()

	var deleted []string
	for _, id := range ids {
		if _, ok := n.items[id]; !ok {
			continue
		}
		n.removeFromOrder(id)
		delete(n.items, id)
		deleted = append(deleted, id)
	}

	return deleted, nil
}

// ItemGetAll returns items most recent first.
func (a *adapter) ItemGetAll(nodeID string, limit int) ([]t.Item, error) {
	n, err := a.getNode(nodeID)
	if err != nil {
		return nil, err
	}
	defer n.mu.Unlock()

	if limit <= 0 || limit > a.maxResults {
		limit = a.maxResults
	}

	var items []t.Item
	for i := len(n.order) - 1; i >= 0 && len(items) < limit; i-- {
		items = append(items, *n.items[n.order[i]])
	}

	return items, nil
}

// ItemGetByID returns the items found for the given identifiers.
func (a *adapter) ItemGetByID(nodeID string, ids []string) ([]t.Item, error) {
	n, err := a.getNode(nodeID)
	if err != nil {
		return nil, err
	}
	defer n.mu.Unlock()

	var items []t.Item
	for _, id := range ids {
		if item, ok := n.items[id]; ok {
			items = append(items, *item)
		}
	}

	return items, nil
}

// ItemDeleteAll deletes all items of the node.
func (a *adapter) ItemDeleteAll(nodeID string) error {
	n, err := a.getNode(nodeID)
	if err != nil {
		return err
	}
	defer n.mu.Unlock()

	n.items = make(map[string]*t.Item)
	n.order = nil

	return nil
}

func init() {
	store.RegisterAdapter(&adapter{})
}
