package game

import "fmt"

// Describe returns the user-facing title and message for a rejection.
// Unknown reasons yield empty strings.
func Describe(reason Reason, rootWord string) (title, message string) {
	switch reason {
	case DuplicateWord:
		return "Word used already", "Be more original"
	case ImpossibleWord:
		return "Word not possible", fmt.Sprintf("You can't spell that word from '%s'!", rootWord)
	case UnknownWord:
		return "Word not recognized", "You can't just make them up, you know!"
	case TooShort:
		return "Word too short", "Try with a longer word"
	}
	return "", ""
}
