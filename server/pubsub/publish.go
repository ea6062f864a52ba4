package pubsub

import (
	"github.com/twonds/idavoll/server/store"
	"github.com/twonds/idavoll/server/store/types"
)

// publishService publishes items to leaf nodes.
type publishService struct {
	dispatcher *Dispatcher
}

var _ Publisher = (*publishService)(nil)

func (s *publishService) Publish(nodeID string, requestor types.JID, items []*types.Item) error {
	node, err := store.Nodes.Get(nodeID)
	if err != nil {
		return err
	}
	leaf, ok := node.(store.LeafNode)
	if !ok {
		return types.ErrUnsupported
	}

	aff, err := node.Affiliation(requestor)
	if err != nil {
		return err
	}
	if aff != types.AffOwner && aff != types.AffPublisher {
		return types.ErrNotAuthorized
	}

	cfg := node.Config()
	for _, item := range items {
		if cfg.DeliverPayloads && item.Data == "" {
			return types.ErrPayloadExpected
		}
		if !cfg.DeliverPayloads && item.Data != "" {
			return types.ErrNoPayloadAllowed
		}
	}

	// Items published without an identifier get a server-assigned one so
	// that notifications and later retractions can refer to them.
	for _, item := range items {
		if item.ID == "" {
			item.ID = store.Store.GetUidString()
		}
		if item.Publisher.IsZero() {
			item.Publisher = requestor
		}
		if item.CreatedAt.IsZero() {
			item.CreatedAt = types.TimeNow()
		}
	}

	if cfg.PersistItems {
		if err = leaf.StoreItems(items, requestor); err != nil {
			return err
		}
	}

	// Delivery to live subscribers is independent of storage policy.
	published := make([]types.Item, len(items))
	for i, item := range items {
		published[i] = *item
	}
	s.dispatcher.Dispatch(Event{Kind: EventPublished, Node: nodeID, Items: published})

	return nil
}
