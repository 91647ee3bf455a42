package mcp

import (
	"testing"
)

// Drives a full duel by always answering the first available option, the way
// the tool handlers would on behalf of the agent.
func TestDuelSessionRunsToCompletion(t *testing.T) {
	sess, err := NewDuelSession("Infernal Onslaught", "Tidal Depths", 0)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 100000; i++ {
		resp, err := sess.waitForPending()
		if err != nil {
			t.Fatal(err)
		}
		if resp.GameOver {
			if resp.Winner < -1 || resp.Winner > 1 {
				t.Errorf("winner out of range: %d", resp.Winner)
			}
			return
		}
		if resp.Pending == nil {
			t.Fatal("no pending decision and game not over")
		}

		switch resp.Pending.Type {
		case DecisionChooseAction:
			sess.agentCtrl.responseCh <- ActionResponse{Index: 0}
		case DecisionChooseCards:
			indices := make([]int, 0, resp.Pending.Min)
			for j := 0; j < resp.Pending.Min && j < len(resp.Pending.Candidates); j++ {
				indices = append(indices, j)
			}
			sess.agentCtrl.responseCh <- CardsResponse{Indices: indices}
		case DecisionChooseYesNo:
			sess.agentCtrl.responseCh <- YesNoResponse{Answer: true}
		default:
			t.Fatalf("unexpected pending decision %q", resp.Pending.Type)
		}
	}
	t.Fatal("duel did not finish")
}
