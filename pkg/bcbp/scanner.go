package bcbp

// Leg block grammar, all widths in characters:
//
//	route     = origin(3) destination(3) carrier(2)   origin and destination uppercase letters,
//	            whitespace+                            carrier alphanumeric
//	flight    = [0-9A-Z]{1,5}
//	            whitespace+
//	details   = julian(3) cabin(1) seat(4) sequence(4) [reserved(1)]
//
// The route is the last eight characters before the whitespace, so it may run
// straight on from the record locator. A three character carrier is read only
// when no two character reading ends at the same whitespace, which in practice
// means a carrier starting with a digit.
//
// The details run may continue past 13 characters; the extra characters are
// kept in Extended so the time-of-day sub-field can be read from them.
const (
	airportLetters   = 6
	carrierLength    = 2
	maxCarrierLength = 3
	maxFlightLength  = 5
	minDetailsLength = 12
	maxDetailsLength = 13
)

// LegBlock is one leg's raw fields, in the order they were found in the payload.
type LegBlock struct {
	Origin       string
	Destination  string
	Carrier      string
	FlightNumber string
	// Details holds the first 12 or 13 characters of the details run.
	Details string
	// Extended is the whole details run.
	Extended string
	// Offset is the position of the block in the payload.
	Offset int
}

// ScanLegBlocks finds every leg block after the common header, left to right.
// The result is in encoding order, which is not necessarily travel order.
func ScanLegBlocks(raw string) []LegBlock {
	var blocks []LegBlock
	for i := MinHeaderLength; i < len(raw); {
		block, end, ok := matchLegBlock(raw, i)
		if !ok {
			i++
			continue
		}
		blocks = append(blocks, block)
		i = end
	}
	return blocks
}

// routeEnd returns the index just past the route starting at i, or -1.
func routeEnd(s string, i int) int {
	if readsRoute(s, i, carrierLength) {
		return i + airportLetters + carrierLength
	}
	// A longer carrier loses to a two character route starting one later.
	if readsRoute(s, i, maxCarrierLength) && !readsRoute(s, i+1, carrierLength) {
		return i + airportLetters + maxCarrierLength
	}
	return -1
}

// readsRoute reports whether s[i:] holds six uppercase letters, a carrier of
// n alphanumerics and then whitespace.
func readsRoute(s string, i, n int) bool {
	end := i + airportLetters + n
	if end >= len(s) || !isSpace(s[end]) {
		return false
	}
	for k := i; k < i+airportLetters; k++ {
		if !isUpper(s[k]) {
			return false
		}
	}
	return isAlnumRun(s[i+airportLetters : end])
}

// matchLegBlock tries the grammar at position i and returns the block and the
// index just past it.
func matchLegBlock(s string, i int) (LegBlock, int, bool) {
	carrierEnd := routeEnd(s, i)
	if carrierEnd < 0 {
		return LegBlock{}, 0, false
	}

	block := LegBlock{
		Origin:      s[i : i+3],
		Destination: s[i+3 : i+6],
		Carrier:     s[i+airportLetters : carrierEnd],
		Offset:      i,
	}
	if block.Origin == block.Destination {
		return LegBlock{}, 0, false
	}

	pos := skipSpace(s, carrierEnd)
	flightStart := pos
	pos = skipAlnum(s, pos)
	if n := pos - flightStart; n == 0 || n > maxFlightLength {
		return LegBlock{}, 0, false
	}
	if pos >= len(s) || !isSpace(s[pos]) {
		return LegBlock{}, 0, false
	}
	block.FlightNumber = s[flightStart:pos]

	pos = skipSpace(s, pos)
	detailsStart := pos
	pos = skipAlnum(s, pos)
	run := s[detailsStart:pos]
	if len(run) < minDetailsLength {
		return LegBlock{}, 0, false
	}
	block.Extended = run
	block.Details = run[:min(len(run), maxDetailsLength)]

	if !allDigits(block.Details[8:12]) {
		return LegBlock{}, 0, false
	}
	return block, pos, true
}

func skipSpace(s string, pos int) int {
	for pos < len(s) && isSpace(s[pos]) {
		pos++
	}
	return pos
}

func skipAlnum(s string, pos int) int {
	for pos < len(s) && isAlnum(s[pos]) {
		pos++
	}
	return pos
}

func isAlnumRun(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isAlnum(s[i]) {
			return false
		}
	}
	return true
}
