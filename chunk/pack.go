package chunk

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// unit is one indivisible piece (a sentence, a paragraph, a token) with its
// token-equivalent size already computed.
type unit struct {
	text   string
	tokens int
}

// packedUnit is one assembled chunk body, before trimming/conversion to a
// content.Chunk.
type packedUnit struct {
	text         string
	sizeExceeded bool
	headingPath  string
}

var (
	tiktokenOnce sync.Once
	tiktokenEnc  *tiktoken.Tiktoken
)

// cl100kEncoding lazily loads the cl100k_base encoding once per process. A
// load failure (no BPE ranks reachable) degrades to the density-only
// estimate rather than failing chunking.
func cl100kEncoding() *tiktoken.Tiktoken {
	tiktokenOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			tiktokenEnc = enc
		}
	})
	return tiktokenEnc
}

// unitTokens blends a model-accurate BPE token count (when the encoding is
// available) with the CJK-aware density estimate: the former is precise for
// the Latin-script text it was trained on, the latter is the only signal
// available once a run has no network access to the tokenizer's ranks file,
// and averaging keeps the combined estimate conservative either way.
func unitTokens(s string, density float64) int {
	densityEstimate := float64(len([]rune(s))) * density

	if enc := cl100kEncoding(); enc != nil {
		bpeCount := float64(len(enc.Encode(s, nil, nil)))
		n := int((bpeCount + densityEstimate) / 2)
		if n < 1 {
			n = 1
		}
		return n
	}

	n := int(densityEstimate)
	if n < 1 {
		n = 1
	}
	return n
}

func toUnits(texts []string, density float64) []unit {
	units := make([]unit, 0, len(texts))
	for _, t := range texts {
		if t == "" {
			continue
		}
		units = append(units, unit{text: t, tokens: unitTokens(t, density)})
	}
	return units
}

// packGreedy packs units into chunks, each joined by sep, never exceeding
// effMax token-equivalent units except when a single unit alone exceeds it
// (emitted whole, flagged sizeExceeded). Between chunks it carries the
// trailing units whose combined size is <= effOverlap as the start of the
// next chunk, so chunk n+1's overlap prefix equals chunk n's overlap
// suffix.
func packGreedy(units []unit, effMax, effOverlap int, sep string) []packedUnit {
	var out []packedUnit
	var cur []unit
	curTokens := 0

	flush := func() {
		if len(cur) == 0 {
			return
		}
		out = append(out, packedUnit{
			text:         joinUnits(cur, sep),
			sizeExceeded: len(cur) == 1 && cur[0].tokens > effMax,
		})
	}

	for _, u := range units {
		if len(cur) > 0 && curTokens+u.tokens > effMax {
			flush()
			cur = overlapTail(cur, effOverlap)
			curTokens = sumTokens(cur)
		}
		cur = append(cur, u)
		curTokens += u.tokens
	}
	flush()
	return out
}

func overlapTail(cur []unit, effOverlap int) []unit {
	if effOverlap <= 0 {
		return nil
	}
	var tail []unit
	sum := 0
	for i := len(cur) - 1; i >= 0; i-- {
		if sum+cur[i].tokens > effOverlap {
			break
		}
		tail = append([]unit{cur[i]}, tail...)
		sum += cur[i].tokens
	}
	return tail
}

func sumTokens(units []unit) int {
	total := 0
	for _, u := range units {
		total += u.tokens
	}
	return total
}

func joinUnits(units []unit, sep string) string {
	s := ""
	for i, u := range units {
		if i > 0 {
			s += sep
		}
		s += u.text
	}
	return s
}
