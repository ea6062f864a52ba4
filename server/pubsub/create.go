package pubsub

import (
	"github.com/twonds/idavoll/server/store"
	"github.com/twonds/idavoll/server/store/types"
)

// createService creates leaf nodes and manages their configuration.
type createService struct {
	allowInstant bool
}

var _ NodeCreator = (*createService)(nil)

func (s *createService) CreateNode(id string, owner types.JID, options map[string]interface{}) (string, error) {
	if id == "" && !s.allowInstant {
		return "", types.ErrNoInstantNodes
	}

	cfg := types.DefaultLeafConfig().Merge(options)
	return store.Nodes.Create(id, owner, cfg)
}

func (s *createService) NodeConfig(nodeID string) (types.NodeConfig, error) {
	node, err := store.Nodes.Get(nodeID)
	if err != nil {
		return types.NodeConfig{}, err
	}
	return node.Config(), nil
}

func (s *createService) SetNodeConfig(nodeID string, requestor types.JID, options map[string]interface{}) error {
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

	return node.SetConfig(options)
}
