package pubsub

import (
	"github.com/twonds/idavoll/server/store"
	"github.com/twonds/idavoll/server/store/types"
)

// deleteService removes nodes.
type deleteService struct {
	dispatcher *Dispatcher
}

var _ NodeDeleter = (*deleteService)(nil)

func (s *deleteService) Delete(nodeID string, requestor types.JID) error {
	node, err := store.Nodes.Get(nodeID)
	if err != nil {
		return err
	}

	aff, err := node.Affiliation(requestor)
	if err != nil {
		return err
	}
	if aff != types.AffOwner {
		return types.ErrNotAuthorized
	}

	if err = store.Nodes.Delete(nodeID); err != nil {
		return err
	}

	s.dispatcher.Dispatch(Event{Kind: EventDeleted, Node: nodeID})

	return nil
}
