package render

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/russross/blackfriday"
)

const (
	htmlFlags = blackfriday.HTML_SKIP_HTML |
		blackfriday.HTML_SKIP_STYLE |
		blackfriday.HTML_SKIP_IMAGES

	extensions = blackfriday.EXTENSION_NO_INTRA_EMPHASIS |
		blackfriday.EXTENSION_FENCED_CODE |
		blackfriday.EXTENSION_AUTOLINK |
		blackfriday.EXTENSION_STRIKETHROUGH |
		blackfriday.EXTENSION_SPACE_HEADERS
)

var (
	headerOpen  = regexp.MustCompile(`<h[1-6][^>]*>`)
	headerClose = regexp.MustCompile(`</h[1-6]>`)
	extraBreaks = regexp.MustCompile(`\n{3,}`)
	itemOpen    = regexp.MustCompile(`<li>`)
	orderedList = regexp.MustCompile(`(?s)<ol>\n?(.*?)</ol>\n?`)

	// tags Telegram does not accept in HTML parse mode
	unsupported = strings.NewReplacer(
		"<p>", "",
		"</p>", "\n",
		"<ul>\n", "",
		"</ul>\n", "",
		"<ul>", "",
		"</ul>", "",
		"<li>", "• ",
		"</li>", "",
		"<br>", "\n",
		"<br />", "\n",
		"<hr>", "",
		"<hr />", "",
		"<table>", "",
		"</table>", "",
		"<thead>", "",
		"</thead>", "",
		"<tbody>", "",
		"</tbody>", "",
		"<tr>", "",
		"</tr>", "",
		"<td>", "",
		"</td>", " ",
		"<th>", "",
		"</th>", " ",
	)
)

// ToHTML converts Markdown produced by a model into the HTML subset
// supported by Telegram messages.
func ToHTML(markdown string) string {
	out := string(blackfriday.Markdown(
		[]byte(markdown),
		blackfriday.HtmlRenderer(htmlFlags, "", ""),
		extensions,
	))

	out = numberOrderedLists(out)
	out = headerOpen.ReplaceAllString(out, "<b>")
	out = headerClose.ReplaceAllString(out, "</b>\n")
	out = unsupported.Replace(out)
	out = extraBreaks.ReplaceAllString(out, "\n\n")

	return strings.TrimSpace(out)
}

// numberOrderedLists keeps the item numbers of ordered lists, which Telegram
// cannot render itself.
func numberOrderedLists(html string) string {
	return orderedList.ReplaceAllStringFunc(html, func(list string) string {
		items := orderedList.FindStringSubmatch(list)[1]
		n := 0
		return itemOpen.ReplaceAllStringFunc(items, func(string) string {
			n++
			return strconv.Itoa(n) + ". "
		})
	})
}
