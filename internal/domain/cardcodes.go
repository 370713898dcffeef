package domain

import (
	"fmt"
	"strings"
)

// Card codes are the stable identifiers the readings service expects:
// "major_00".."major_21" for the trumps and "<suit>_01".."<suit>_14" for the
// minors, with 11..14 covering page, knight, queen and king.

var majorNames = []string{
	"The Fool",
	"The Magician",
	"The High Priestess",
	"The Empress",
	"The Emperor",
	"The Hierophant",
	"The Lovers",
	"The Chariot",
	"Strength",
	"The Hermit",
	"Wheel of Fortune",
	"Justice",
	"The Hanged Man",
	"Death",
	"Temperance",
	"The Devil",
	"The Tower",
	"The Star",
	"The Moon",
	"The Sun",
	"Judgement",
	"The World",
}

var minorRanks = []string{
	"Ace", "Two", "Three", "Four", "Five", "Six", "Seven",
	"Eight", "Nine", "Ten", "Page", "Knight", "Queen", "King",
}

var minorSuits = []string{"Wands", "Cups", "Swords", "Pentacles"}

var cardCodes = buildCardCodes()

func buildCardCodes() map[string]string {
	codes := make(map[string]string, 78)
	for i, name := range majorNames {
		codes[name] = fmt.Sprintf("major_%02d", i)
	}
	for _, suit := range minorSuits {
		for i, rank := range minorRanks {
			name := fmt.Sprintf("%s of %s", rank, suit)
			codes[name] = fmt.Sprintf("%s_%02d", strings.ToLower(suit), i+1)
		}
	}
	return codes
}

// CardCode resolves a card name to its wire code. It fails closed: an unknown
// name is ErrUnknownCard, never an empty code.
func CardCode(name string) (string, error) {
	code, ok := cardCodes[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCard, name)
	}
	return code, nil
}

// FullDeckNames returns the 78 Rider-Waite card names in canonical order,
// majors first. The slice is freshly allocated on each call.
func FullDeckNames() []string {
	names := make([]string, 0, 78)
	names = append(names, majorNames...)
	for _, suit := range minorSuits {
		for _, rank := range minorRanks {
			names = append(names, fmt.Sprintf("%s of %s", rank, suit))
		}
	}
	return names
}
