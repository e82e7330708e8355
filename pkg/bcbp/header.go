package bcbp

import (
	"fmt"
	"strings"

	"boardingpass-service/internal/domain/entity"
)

// Fixed offsets of the mandatory unique fields.
const (
	formatCodeOffset   = 0
	legCountOffset     = 1
	nameStart, nameEnd = 2, 22
	eticketOffset      = 22
	pnrStart, pnrEnd   = 23, 29

	// MinHeaderLength is the shortest payload that still carries a full header.
	MinHeaderLength = pnrEnd
)

// ParseHeader slices the common header out of raw by absolute offsets.
func ParseHeader(raw string) (entity.CommonHeader, error) {
	if len(raw) < MinHeaderLength {
		return entity.CommonHeader{}, fmt.Errorf("%w: payload is %d characters, need at least %d",
			ErrMalformedHeader, len(raw), MinHeaderLength)
	}

	legs := raw[legCountOffset]
	if !isDigit(legs) {
		return entity.CommonHeader{}, fmt.Errorf("%w: leg count %q is not numeric", ErrMalformedHeader, legs)
	}

	return entity.CommonHeader{
		FormatCode:       raw[formatCodeOffset : formatCodeOffset+1],
		DeclaredLegs:     int(legs - '0'),
		PassengerName:    strings.TrimSpace(raw[nameStart:nameEnd]),
		ETicketIndicator: raw[eticketOffset : eticketOffset+1],
		Confirmation:     strings.TrimSpace(raw[pnrStart:pnrEnd]),
	}, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isAlnum(c byte) bool { return isDigit(c) || isUpper(c) }

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
