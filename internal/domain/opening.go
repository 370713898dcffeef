package domain

// nextExpected returns the first position in openOrder whose card is still
// closed, or 0 when every ordered position is open.
func nextExpected(cards []SpreadCard, openOrder []int) int {
	byPos := make(map[int]*SpreadCard, len(cards))
	for i := range cards {
		byPos[cards[i].PositionID] = &cards[i]
	}
	for _, id := range openOrder {
		if c, ok := byPos[id]; ok && !c.IsOpen {
			return id
		}
	}
	return 0
}

// canOpen decides whether positionID may be revealed given the schema's
// opening rule and the current open state. When the open is disallowed the
// second return value names the position that must be opened instead.
func canOpen(schema SpreadSchema, cards []SpreadCard, forcedFree bool, positionID int) (bool, int) {
	if schema.OpeningRule == OpenAnyOrder || forcedFree {
		return true, 0
	}
	expected := nextExpected(cards, schema.OpenOrder)
	if expected == 0 || expected == positionID {
		return true, 0
	}
	return false, expected
}
