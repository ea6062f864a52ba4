package pubsub

import (
	"github.com/twonds/idavoll/server/store"
	"github.com/twonds/idavoll/server/store/types"
)

// retrieveService resolves item retrieval requests: an explicit identifier
// list, the most recent max items, or everything.
type retrieveService struct {
	open bool
}

var _ ItemReader = (*retrieveService)(nil)

func (s *retrieveService) Items(nodeID string, requestor types.JID, max int, ids []string) ([]types.Item, error) {
	node, err := store.Nodes.Get(nodeID)
	if err != nil {
		return nil, err
	}
	leaf, ok := node.(store.LeafNode)
	if !ok {
		return nil, types.ErrUnsupported
	}

	if !s.open {
		authorized, err := s.mayRetrieve(node, requestor)
		if err != nil {
			return nil, err
		}
		if !authorized {
			return nil, types.ErrNotSubscribed
		}
	}

	if len(ids) > 0 {
		return leaf.ItemsByID(ids)
	}
	return leaf.Items(max)
}

// mayRetrieve reports whether the requestor is subscribed to the node or
// holds any affiliation on it.
func (retrieveService) mayRetrieve(node store.Node, requestor types.JID) (bool, error) {
	subscribed, err := node.IsSubscribed(requestor)
	if err != nil {
		return false, err
	}
	if subscribed {
		return true, nil
	}

	aff, err := node.Affiliation(requestor)
	if err != nil {
		return false, err
	}
	return !aff.IsNone(), nil
}
