package pubsub

import (
	"github.com/twonds/idavoll/server/store"
	"github.com/twonds/idavoll/server/store/types"
)

// subscribeService adds and removes subscriptions. The default policy only
// lets a requestor manage its own subscriptions; approval workflows for the
// pending state are out of scope here.
type subscribeService struct{}

var _ SubscriptionManager = (*subscribeService)(nil)

func (subscribeService) Subscribe(nodeID string, requestor, subscriber types.JID) (types.SubState, error) {
	if requestor.Bare != subscriber.Bare {
		return "", types.ErrNotAuthorized
	}

	node, err := store.Nodes.Get(nodeID)
	if err != nil {
		return "", err
	}

	if err = node.AddSubscription(subscriber, types.SubStateSubscribed); err != nil {
		return "", err
	}

	return types.SubStateSubscribed, nil
}

func (subscribeService) Unsubscribe(nodeID string, requestor, subscriber types.JID) error {
	if requestor.Bare != subscriber.Bare {
		return types.ErrNotAuthorized
	}

	node, err := store.Nodes.Get(nodeID)
	if err != nil {
		return err
	}

	return node.RemoveSubscription(subscriber)
}
