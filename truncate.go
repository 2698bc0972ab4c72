package html2md

// Truncate returns the first n characters (Unicode scalar values) of s.
// n == 0 or n beyond the character count returns s unchanged. The result
// shares memory with s.
func Truncate(s string, n uint) string {
	if n == 0 {
		return s
	}
	var count uint
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
