package pubsub

import (
	"github.com/twonds/idavoll/server/store"
	"github.com/twonds/idavoll/server/store/types"
)

// affiliationsService is a read-only projection joining an entity's roles
// with its subscription states.
type affiliationsService struct{}

var _ AffiliationsReader = (*affiliationsService)(nil)

func (affiliationsService) Affiliations(entity types.JID) ([]EntityAffiliation, error) {
	affs, err := store.Entities.GetAffiliations(entity)
	if err != nil {
		return nil, err
	}
	subs, err := store.Entities.GetSubscriptions(entity)
	if err != nil {
		return nil, err
	}

	// An entity may hold one subscription per resource on the same node.
	// Report the strongest state.
	states := make(map[string]types.SubState)
	for _, sub := range subs {
		if rankSubState(sub.State) > rankSubState(states[sub.Node]) {
			states[sub.Node] = sub.State
		}
	}

	result := make([]EntityAffiliation, 0, len(affs))
	for _, aff := range affs {
		state, ok := states[aff.Node]
		if !ok {
			state = types.SubStateNone
		}
		result = append(result, EntityAffiliation{
			Node:         aff.Node,
			Affiliation:  aff.Affiliation,
			Subscription: state,
		})
	}

	return result, nil
}

func rankSubState(state types.SubState) int {
	switch state {
	case types.SubStateSubscribed:
		return 3
	case types.SubStatePending:
		return 2
	case types.SubStateUnconfigured:
		return 1
	default:
		return 0
	}
}
