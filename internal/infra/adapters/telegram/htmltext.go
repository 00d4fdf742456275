package telegram

import (
	"html"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// entitiesToHTML renders a message text and its formatting entities as
// Telegram-flavoured HTML. Entity offsets count UTF-16 code units. Entities
// without an HTML form (mentions, hashtags, plain URLs...) are left as text.
func entitiesToHTML(text string, entities []tgbotapi.MessageEntity) string {
	units := utf16.Encode([]rune(text))

	spans := make([]htmlSpan, 0, len(entities))
	for _, e := range entities {
		open, closeTag, ok := entityTags(e)
		if !ok || e.Length <= 0 || e.Offset < 0 || e.Offset >= len(units) {
			continue
		}
		end := e.Offset + e.Length
		if end > len(units) {
			end = len(units)
		}
		spans = append(spans, htmlSpan{start: e.Offset, end: end, open: open, close: closeTag})
	}
	// outer spans first so they open before the spans they contain
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})

	var b strings.Builder
	var stack []htmlSpan
	next := 0
	pos := 0
	for pos <= len(units) {
		// close spans ending here; reopen any span cut in the process
		if n := countEnding(stack, pos); n > 0 {
			var reopen []htmlSpan
			for n > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				b.WriteString(top.close)
				if top.end == pos {
					n--
				} else {
					reopen = append(reopen, top)
				}
			}
			for i := len(reopen) - 1; i >= 0; i-- {
				b.WriteString(reopen[i].open)
				stack = append(stack, reopen[i])
			}
		}
		for next < len(spans) && spans[next].start == pos {
			b.WriteString(spans[next].open)
			stack = append(stack, spans[next])
			next++
		}
		if pos == len(units) {
			break
		}

		// plain run up to the next boundary
		stop := len(units)
		if next < len(spans) && spans[next].start < stop {
			stop = spans[next].start
		}
		for _, s := range stack {
			if s.end < stop {
				stop = s.end
			}
		}
		b.WriteString(html.EscapeString(string(utf16.Decode(units[pos:stop]))))
		pos = stop
	}
	return b.String()
}

type htmlSpan struct {
	start, end int
	open       string
	close      string
}

func countEnding(stack []htmlSpan, pos int) int {
	n := 0
	for _, s := range stack {
		if s.end == pos {
			n++
		}
	}
	return n
}

func entityTags(e tgbotapi.MessageEntity) (open, closeTag string, ok bool) {
	switch e.Type {
	case "bold":
		return "<b>", "</b>", true
	case "italic":
		return "<i>", "</i>", true
	case "underline":
		return "<u>", "</u>", true
	case "strikethrough":
		return "<s>", "</s>", true
	case "spoiler":
		return "<tg-spoiler>", "</tg-spoiler>", true
	case "code":
		return "<code>", "</code>", true
	case "pre":
		if e.Language != "" {
			return `<pre><code class="language-` + html.EscapeString(e.Language) + `">`, "</code></pre>", true
		}
		return "<pre>", "</pre>", true
	case "text_link":
		return `<a href="` + html.EscapeString(e.URL) + `">`, "</a>", true
	case "text_mention":
		if e.User == nil {
			return "", "", false
		}
		return `<a href="tg://user?id=` + strconv.FormatInt(e.User.ID, 10) + `">`, "</a>", true
	}
	return "", "", false
}
