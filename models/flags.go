package models

// BoolToInt converts a wire boolean to the 0/1 column representation.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func IntToBool(i int) bool {
	return i != 0
}
