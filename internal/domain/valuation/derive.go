package valuation

import (
	"math"
	"strconv"
	"strings"
)

// Record is one projection CSV row keyed by trimmed header.
type Record map[string]string

func (r Record) has(column string) bool {
	_, ok := r[column]
	return ok
}

func (r Record) text(column string) string {
	return strings.TrimSpace(r[column])
}

// num parses column, treating missing or unparseable cells as 0.
func (r Record) num(column string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(r[column]), 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return v
}

func (r Record) pos() (string, bool) {
	switch {
	case r.has("Pos"):
		return r.text("Pos"), true
	case r.has("POS"):
		return r.text("POS"), true
	default:
		return "", false
	}
}

// DeriveHitter maps a projection row onto the batting categories.
func DeriveHitter(r Record) Player {
	pos, _ := r.pos()
	h, doubles, triples, hr := r.num("H"), r.num("2B"), r.num("3B"), r.num("HR")

	k := r.num("K")
	if r.has("SO") {
		k = r.num("SO")
	}

	return Player{
		Name: r.text("Name"),
		Team: r.text("Team"),
		Pos:  pos,
		Stats: map[string]float64{
			"PA":  r.num("PA"),
			"R":   r.num("R"),
			"H":   h,
			"HR":  hr,
			"RBI": r.num("RBI"),
			"AVG": r.num("AVG"),
			"OBP": r.num("OBP"),
			"K":   k,
			"TB":  h + doubles + 2*triples + 3*hr,
			"XBH": doubles + triples + hr,
			"NSB": r.num("SB") - r.num("CS"),
		},
	}
}

// DerivePitcher maps a projection row onto the pitching categories. Without
// a position column, a pitcher starting more than half his games is an SP.
func DerivePitcher(r Record) Player {
	pos, ok := r.pos()
	if !ok {
		games := 1.0
		if r.has("G") {
			games = r.num("G")
		}
		pos = "RP"
		if r.num("GS") > games*0.5 {
			pos = "SP"
		}
	}

	k := r.num("SO")
	if r.has("K") {
		k = r.num("K")
	}

	era, ip := r.num("ERA"), r.num("IP")
	er := math.Round(era * ip / 9)
	if r.has("ER") {
		er = r.num("ER")
	}

	return Player{
		Name: r.text("Name"),
		Team: r.text("Team"),
		Pos:  pos,
		Stats: map[string]float64{
			"IP":   ip,
			"W":    r.num("W"),
			"K":    k,
			"HLD":  r.num("HLD"),
			"ERA":  era,
			"WHIP": r.num("WHIP"),
			"QS":   r.num("QS"),
			"NSV":  r.num("SV"),
			"L":    r.num("L"),
			"ER":   er,
		},
	}
}
