// Package canon provides the static 66-book canon order table used by the
// dataset builder to assign each book its rank and display names. It is
// constant data, not derived from any input file.
package canon

// Book describes one entry in the canonical ordering.
type Book struct {
	// Order is the 1-indexed canonical rank (Genesis=1 ... Revelation=66).
	Order int
	// Name is the full display name (e.g. "1 Chronicles").
	Name string
	// CommonName is the name used in user-facing contexts; it defaults to
	// Name when the source has no separate common name.
	CommonName string
}

// books is the static 66-book canon table, keyed by 3-letter book code.
var books = map[string]Book{
	"GEN": {1, "Genesis", "Genesis"},
	"EXO": {2, "Exodus", "Exodus"},
	"LEV": {3, "Leviticus", "Leviticus"},
	"NUM": {4, "Numbers", "Numbers"},
	"DEU": {5, "Deuteronomy", "Deuteronomy"},
	"JOS": {6, "Joshua", "Joshua"},
	"JDG": {7, "Judges", "Judges"},
	"RUT": {8, "Ruth", "Ruth"},
	"1SA": {9, "1 Samuel", "1 Samuel"},
	"2SA": {10, "2 Samuel", "2 Samuel"},
	"1KI": {11, "1 Kings", "1 Kings"},
	"2KI": {12, "2 Kings", "2 Kings"},
	"1CH": {13, "1 Chronicles", "1 Chronicles"},
	"2CH": {14, "2 Chronicles", "2 Chronicles"},
	"EZR": {15, "Ezra", "Ezra"},
	"NEH": {16, "Nehemiah", "Nehemiah"},
	"EST": {17, "Esther", "Esther"},
	"JOB": {18, "Job", "Job"},
	"PSA": {19, "Psalms", "Psalms"},
	"PRO": {20, "Proverbs", "Proverbs"},
	"ECC": {21, "Ecclesiastes", "Ecclesiastes"},
	"SNG": {22, "Song of Solomon", "Song of Solomon"},
	"ISA": {23, "Isaiah", "Isaiah"},
	"JER": {24, "Jeremiah", "Jeremiah"},
	"LAM": {25, "Lamentations", "Lamentations"},
	"EZK": {26, "Ezekiel", "Ezekiel"},
	"DAN": {27, "Daniel", "Daniel"},
	"HOS": {28, "Hosea", "Hosea"},
	"JOL": {29, "Joel", "Joel"},
	"AMO": {30, "Amos", "Amos"},
	"OBA": {31, "Obadiah", "Obadiah"},
	"JON": {32, "Jonah", "Jonah"},
	"MIC": {33, "Micah", "Micah"},
	"NAM": {34, "Nahum", "Nahum"},
	"HAB": {35, "Habakkuk", "Habakkuk"},
	"ZEP": {36, "Zephaniah", "Zephaniah"},
	"HAG": {37, "Haggai", "Haggai"},
	"ZEC": {38, "Zechariah", "Zechariah"},
	"MAL": {39, "Malachi", "Malachi"},
	"MAT": {40, "Matthew", "Matthew"},
	"MRK": {41, "Mark", "Mark"},
	"LUK": {42, "Luke", "Luke"},
	"JHN": {43, "John", "John"},
	"ACT": {44, "Acts", "Acts"},
	"ROM": {45, "Romans", "Romans"},
	"1CO": {46, "1 Corinthians", "1 Corinthians"},
	"2CO": {47, "2 Corinthians", "2 Corinthians"},
	"GAL": {48, "Galatians", "Galatians"},
	"EPH": {49, "Ephesians", "Ephesians"},
	"PHP": {50, "Philippians", "Philippians"},
	"COL": {51, "Colossians", "Colossians"},
	"1TH": {52, "1 Thessalonians", "1 Thessalonians"},
	"2TH": {53, "2 Thessalonians", "2 Thessalonians"},
	"1TI": {54, "1 Timothy", "1 Timothy"},
	"2TI": {55, "2 Timothy", "2 Timothy"},
	"TIT": {56, "Titus", "Titus"},
	"PHM": {57, "Philemon", "Philemon"},
	"HEB": {58, "Hebrews", "Hebrews"},
	"JAS": {59, "James", "James"},
	"1PE": {60, "1 Peter", "1 Peter"},
	"2PE": {61, "2 Peter", "2 Peter"},
	"1JN": {62, "1 John", "1 John"},
	"2JN": {63, "2 John", "2 John"},
	"3JN": {64, "3 John", "3 John"},
	"JUD": {65, "Jude", "Jude"},
	"REV": {66, "Revelation", "Revelation"},
}

// Lookup returns the canon entry for a 3-letter book code and whether it
// was found.
func Lookup(code string) (Book, bool) {
	b, ok := books[code]
	return b, ok
}

// Count returns the number of books in the canon table (always 66).
func Count() int {
	return len(books)
}
