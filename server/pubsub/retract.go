package pubsub

import (
	"github.com/twonds/idavoll/server/store"
	"github.com/twonds/idavoll/server/store/types"
)

// retractService removes items from leaf nodes.
type retractService struct {
	dispatcher *Dispatcher
}

var _ Retractor = (*retractService)(nil)

// ownedLeaf resolves the node, asserts it stores items and that the
// requestor owns it.
func ownedLeaf(nodeID string, requestor types.JID) (store.LeafNode, error) {
	node, err := store.Nodes.Get(nodeID)
	if err != nil {
		return nil, err
	}
	leaf, ok := node.(store.LeafNode)
	if !ok {
		return nil, types.ErrUnsupported
	}

	aff, err := node.Affiliation(requestor)
	if err != nil {
		return nil, err
	}
	if aff != types.AffOwner {
		return nil, types.ErrNotAuthorized
	}

	return leaf, nil
}

func (s *retractService) Retract(nodeID string, requestor types.JID, ids []string) error {
	leaf, err := ownedLeaf(nodeID, requestor)
	if err != nil {
		return err
	}

	deleted, err := leaf.RemoveItems(ids)
	if err != nil {
		return err
	}

	if len(deleted) > 0 {
		s.dispatcher.Dispatch(Event{Kind: EventRetracted, Node: nodeID, ItemIDs: deleted})
	}

	return nil
}

func (s *retractService) Purge(nodeID string, requestor types.JID) error {
	leaf, err := ownedLeaf(nodeID, requestor)
	if err != nil {
		return err
	}

	if err = leaf.Purge(); err != nil {
		return err
	}

	s.dispatcher.Dispatch(Event{Kind: EventPurged, Node: nodeID})

	return nil
}
