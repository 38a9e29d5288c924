package normalize

// PartNumber is the single assignment point for manufacturer part numbers.
// It is the identity function: the string exits exactly as it entered, byte
// for byte.
//
// Part numbers read out of mixed Hebrew/English documents carry Latin runs
// inside right-to-left text, and extraction layers have mis-ordered them
// before ("VSBM25 SI" coming back as "SI 25VSBM"). No trimming, re-casing,
// or reordering happens here, and none may be added.
func PartNumber(raw string) string {
	return raw
}
