package router

import (
	"hash/fnv"
	"strings"

	"github.com/gabrielmiguelok/sitewizard/pkg/core"
)

// buildDiffPayload compares the slots of html with the previous render of
// s. Markup without any data-slot region is sent whole.
func buildDiffPayload(s *LiveSession, html string) *core.DiffPayload {
	payload := &core.DiffPayload{
		Version:   s.NextVersion(),
		Slots:     make(map[string]string),
		HTMLSlots: make(map[string]string),
	}

	textSlots, htmlSlots := extractSlots(html)
	if len(textSlots) == 0 && len(htmlSlots) == 0 {
		payload.Full = html
		s.SetSlotHashes(nil)
		return payload
	}

	prevHashes := s.GetSlotHashes()
	newHashes := make(map[string]uint64, len(textSlots)+len(htmlSlots))

	for id, content := range textSlots {
		hash := hashSlotContent(content)
		newHashes[id] = hash
		if prev, ok := prevHashes[id]; !ok || prev != hash {
			payload.Slots[id] = content
		}
	}
	for id, content := range htmlSlots {
		hash := hashSlotContent(content)
		newHashes[id] = hash
		if prev, ok := prevHashes[id]; !ok || prev != hash {
			payload.HTMLSlots[id] = content
		}
	}

	s.SetSlotHashes(newHashes)
	return payload
}

// hashSlots returns the content hash of every slot in html.
func hashSlots(html string) map[string]uint64 {
	textSlots, htmlSlots := extractSlots(html)
	if len(textSlots) == 0 && len(htmlSlots) == 0 {
		return nil
	}
	hashes := make(map[string]uint64, len(textSlots)+len(htmlSlots))
	for id, content := range textSlots {
		hashes[id] = hashSlotContent(content)
	}
	for id, content := range htmlSlots {
		hashes[id] = hashSlotContent(content)
	}
	return hashes
}

// extractSlots extracts the inner content of every element carrying a
// data-slot attribute in a single pass. Slots are not nested in each
// other; a slot inside another slot is reported as part of its parent.
func extractSlots(html string) (textSlots, htmlSlots map[string]string) {
	textSlots = make(map[string]string)
	htmlSlots = make(map[string]string)

	const marker = `data-slot="`
	markerLen := len(marker)
	htmlLen := len(html)
	pos := 0

	for pos < htmlLen {
		idx := strings.Index(html[pos:], marker)
		if idx == -1 {
			break
		}

		slotStart := pos + idx + markerLen
		slotEnd := strings.IndexByte(html[slotStart:], '"')
		if slotEnd == -1 {
			break
		}
		slotID := html[slotStart : slotStart+slotEnd]

		tagStart := pos + idx
		for tagStart > 0 && html[tagStart] != '<' {
			tagStart--
		}

		tagNameEnd := tagStart + 1
		for tagNameEnd < htmlLen && !isTagNameEnd(html[tagNameEnd]) {
			tagNameEnd++
		}
		tagName := html[tagStart+1 : tagNameEnd]

		closeAngle := strings.IndexByte(html[slotStart+slotEnd:], '>')
		if closeAngle == -1 {
			break
		}
		contentStart := slotStart + slotEnd + closeAngle + 1

		openTag := "<" + tagName
		closeTag := "</" + tagName + ">"
		depth := 1
		searchPos := contentStart
		contentEnd := -1

		for depth > 0 && searchPos < htmlLen {
			nextClose := strings.Index(html[searchPos:], closeTag)
			if nextClose == -1 {
				break
			}
			nextClose += searchPos

			nextOpen := strings.Index(html[searchPos:], openTag)
			if nextOpen != -1 {
				nextOpen += searchPos
			}

			if nextOpen != -1 && nextOpen < nextClose {
				after := nextOpen + len(openTag)
				if after < htmlLen && isTagNameEnd(html[after]) {
					depth++
				}
				searchPos = after
				continue
			}

			depth--
			if depth == 0 {
				contentEnd = nextClose
			}
			searchPos = nextClose + len(closeTag)
		}

		if contentEnd == -1 {
			pos = contentStart
			continue
		}

		content := strings.TrimSpace(html[contentStart:contentEnd])
		if strings.ContainsAny(content, "<>") {
			htmlSlots[slotID] = content
		} else {
			textSlots[slotID] = content
		}
		pos = searchPos
	}

	return textSlots, htmlSlots
}

func isTagNameEnd(c byte) bool {
	return c == ' ' || c == '>' || c == '/' || c == '\t' || c == '\n'
}

// hashSlotContent computes the FNV-64a hash of content.
func hashSlotContent(content string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(content))
	return h.Sum64()
}
