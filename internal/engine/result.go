package engine

// EffectResult reports the outcome of a single effect execution. Legality
// violations (OPT spent, missing target, full board) come back as
// Success=false with a short player-facing message and no state mutation;
// they are ordinary game conditions, not errors.
type EffectResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func ok(msg string) EffectResult {
	return EffectResult{Success: true, Message: msg}
}

func denied(msg string) EffectResult {
	return EffectResult{Success: false, Message: msg}
}
