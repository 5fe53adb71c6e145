package program

// Normalize returns a copy of the state with reversed intervals swapped.
// A start after end (or min above max) is user input worth recovering from,
// not worth failing an interaction over.
func (fs FilterState) Normalize() FilterState {
	out := fs
	if out.From != nil && out.To != nil && out.From.After(*out.To) {
		out.From, out.To = out.To, out.From
	}
	if out.MinAmount != nil && out.MaxAmount != nil && *out.MinAmount > *out.MaxAmount {
		out.MinAmount, out.MaxAmount = out.MaxAmount, out.MinAmount
	}
	return out
}

// Unrestricted reports whether the state applies no restriction at all.
func (fs FilterState) Unrestricted() bool {
	return fs.From == nil && fs.To == nil &&
		len(fs.Programs) == 0 && len(fs.EquipmentTypes) == 0 &&
		len(fs.OldMakes) == 0 && len(fs.NewMakes) == 0 &&
		fs.MinAmount == nil && fs.MaxAmount == nil
}

// Apply returns the subset of table matching the state, order preserved.
// Pure: same inputs always yield the same subset. A record is included iff
// every dimension's predicate holds (AND across dimensions, OR within a
// categorical selection). Bounds are inclusive on both sides. Records with a
// null date or amount fail a restricted interval but pass an unrestricted
// one, which keeps the zero FilterState an identity.
func Apply(table Table, state FilterState) Table {
	state = state.Normalize()

	out := make(Table, 0, len(table))
	for _, rec := range table {
		if !matchDate(rec, state) {
			continue
		}
		if !matchCategory(rec.IncentiveProgram, state.Programs) {
			continue
		}
		if !matchCategory(rec.EquipmentType, state.EquipmentTypes) {
			continue
		}
		if !matchCategory(rec.OldEquipmentMake, state.OldMakes) {
			continue
		}
		if !matchCategory(rec.NewEquipmentMake, state.NewMakes) {
			continue
		}
		if !matchAmount(rec, state) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchDate(rec Record, state FilterState) bool {
	if state.From == nil && state.To == nil {
		return true
	}
	if rec.ProjectCompleted == nil {
		return false
	}
	d := *rec.ProjectCompleted
	if state.From != nil && d.Before(*state.From) {
		return false
	}
	if state.To != nil && d.After(*state.To) {
		return false
	}
	return true
}

func matchCategory(value string, selected []string) bool {
	if len(selected) == 0 {
		return true // empty selection = all
	}
	for _, s := range selected {
		if value == s {
			return true
		}
	}
	return false
}

func matchAmount(rec Record, state FilterState) bool {
	if state.MinAmount == nil && state.MaxAmount == nil {
		return true
	}
	if rec.IncentiveAmount == nil {
		return false
	}
	amt := *rec.IncentiveAmount
	if state.MinAmount != nil && amt < *state.MinAmount {
		return false
	}
	if state.MaxAmount != nil && amt > *state.MaxAmount {
		return false
	}
	return true
}
