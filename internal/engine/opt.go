package engine

// Once-per-turn bookkeeping. Each instance keeps a single ledger keyed by
// effect index, so one OPT effect's usage never leaks into a sibling
// effect's check. The ledger resets lazily: the first check or record that
// observes an advanced turn counter clears it.

// maybeResetOPT clears the ledger when the global turn counter has advanced
// past the turn it was last written for.
func maybeResetOPT(ci *CardInstance, currentTurn int) {
	if currentTurn > ci.OPTResetTurn {
		ci.EffectsUsed = nil
		ci.OPTResetTurn = currentTurn
	}
}

// CanActivateOPT reports whether the effect at effectIndex may still be used
// this turn.
func CanActivateOPT(ci *CardInstance, effectIndex, currentTurn int) bool {
	maybeResetOPT(ci, currentTurn)
	return !ci.EffectsUsed[effectIndex]
}

// RecordOPTUsage marks the effect at effectIndex as used for this turn.
// Call only after the effect executed successfully.
func RecordOPTUsage(ci *CardInstance, effectIndex, currentTurn int) {
	maybeResetOPT(ci, currentTurn)
	if ci.EffectsUsed == nil {
		ci.EffectsUsed = make(map[int]bool)
	}
	ci.EffectsUsed[effectIndex] = true
}
