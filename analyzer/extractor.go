package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// videoHostMarkers maps iframe src substrings to the embed kind they
// identify.
var videoHostMarkers = map[string]string{
	"youtube.com":          "youtube",
	"youtube-nocookie.com": "youtube",
	"youtu.be":             "youtube",
	"vimeo.com":            "vimeo",
	"dailymotion.com":      "dailymotion",
}

var knownMetaNames = map[string]bool{
	"description": true,
	"keywords":    true,
	"author":      true,
	"robots":      true,
	"viewport":    true,
}

// ExtractContent walks the parsed document once and produces the
// structured content model. Each collection is built independently;
// a malformed node is skipped without affecting the rest.
func ExtractContent(doc *goquery.Document, baseURL string) StructuredContent {
	return StructuredContent{
		Meta:        extractMeta(doc),
		Paragraphs:  extractParagraphs(doc),
		Images:      extractImages(doc, baseURL),
		Links:       extractLinks(doc, baseURL),
		Headings:    extractHeadings(doc),
		Lists:       extractLists(doc),
		Tables:      extractTables(doc),
		Videos:      extractVideos(doc),
		Scripts:     extractScripts(doc),
		Stylesheets: extractStylesheets(doc),
	}
}

func extractMeta(doc *goquery.Document) MetaTags {
	meta := MetaTags{
		OpenGraph: map[string]string{},
		Twitter:   map[string]string{},
		Other:     map[string]string{},
	}

	meta.Title = strings.TrimSpace(doc.Find("title").First().Text())
	meta.Description = doc.Find(`meta[name="description"]`).AttrOr("content", "")
	meta.Keywords = doc.Find(`meta[name="keywords"]`).AttrOr("content", "")
	meta.Author = doc.Find(`meta[name="author"]`).AttrOr("content", "")
	meta.Robots = doc.Find(`meta[name="robots"]`).AttrOr("content", "")
	meta.Viewport = doc.Find(`meta[name="viewport"]`).AttrOr("content", "")
	meta.Charset = doc.Find("meta[charset]").AttrOr("charset", "")

	doc.Find(`meta[property^="og:"]`).Each(func(_ int, s *goquery.Selection) {
		prop, _ := s.Attr("property")
		content, _ := s.Attr("content")
		if prop != "" && content != "" {
			meta.OpenGraph[prop] = content
		}
	})

	doc.Find(`meta[name^="twitter:"]`).Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		content, _ := s.Attr("content")
		if name != "" && content != "" {
			meta.Twitter[name] = content
		}
	})

	doc.Find("meta[name]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		content, _ := s.Attr("content")
		if name == "" || content == "" || knownMetaNames[name] || strings.HasPrefix(name, "twitter:") {
			return
		}
		meta.Other[name] = content
	})

	return meta
}

func extractParagraphs(doc *goquery.Document) []Paragraph {
	var paragraphs []Paragraph
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		html, err := s.Html()
		if err != nil {
			html = ""
		}
		paragraphs = append(paragraphs, Paragraph{
			Text:    text,
			HTML:    html,
			Classes: classList(s),
			ID:      s.AttrOr("id", ""),
		})
	})
	return paragraphs
}

func extractImages(doc *goquery.Document, baseURL string) []Image {
	var images []Image
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src := Normalize(baseURL, s.AttrOr("src", ""))
		if src == "" || !IsValidImageURL(src) {
			return
		}
		images = append(images, Image{
			Src:     src,
			Alt:     s.AttrOr("alt", ""),
			Title:   s.AttrOr("title", ""),
			Width:   s.AttrOr("width", ""),
			Height:  s.AttrOr("height", ""),
			Classes: classList(s),
		})
	})
	return images
}

func extractLinks(doc *goquery.Document, baseURL string) []Link {
	var links []Link
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := Normalize(baseURL, s.AttrOr("href", ""))
		if href == "" {
			return
		}
		links = append(links, Link{
			Href:       href,
			Text:       strings.TrimSpace(s.Text()),
			Title:      s.AttrOr("title", ""),
			Rel:        s.AttrOr("rel", ""),
			Classes:    classList(s),
			IsExternal: IsExternal(href, baseURL),
		})
	})
	return links
}

func extractHeadings(doc *goquery.Document) []Heading {
	var headings []Heading
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		name := goquery.NodeName(s)
		if len(name) != 2 || name[0] != 'h' {
			return
		}
		level := int(name[1] - '0')
		if level < 1 || level > 6 {
			return
		}
		headings = append(headings, Heading{
			Level:   level,
			Text:    strings.TrimSpace(s.Text()),
			ID:      s.AttrOr("id", ""),
			Classes: classList(s),
		})
	})
	return headings
}

func extractLists(doc *goquery.Document) []List {
	var lists []List
	doc.Find("ul, ol").Each(func(_ int, s *goquery.Selection) {
		kind := "unordered"
		if goquery.NodeName(s) == "ol" {
			kind = "ordered"
		}
		var items []string
		s.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
			items = append(items, strings.TrimSpace(li.Text()))
		})
		lists = append(lists, List{Kind: kind, Items: items})
	})
	return lists
}

func extractTables(doc *goquery.Document) []Table {
	var tables []Table
	doc.Find("table").Each(func(_ int, s *goquery.Selection) {
		table := Table{}
		s.Find("th").Each(func(_ int, th *goquery.Selection) {
			table.Headers = append(table.Headers, strings.TrimSpace(th.Text()))
		})
		s.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var row []string
			tr.Find("td").Each(func(_ int, td *goquery.Selection) {
				row = append(row, strings.TrimSpace(td.Text()))
			})
			// Header-only rows carry no data cells and are dropped.
			if len(row) > 0 {
				table.Rows = append(table.Rows, row)
			}
		})
		tables = append(tables, table)
	})
	return tables
}

func extractVideos(doc *goquery.Document) []Video {
	var videos []Video

	doc.Find("video").Each(func(_ int, s *goquery.Selection) {
		src := s.AttrOr("src", "")
		if src == "" {
			src = s.Find("source").First().AttrOr("src", "")
		}
		embed, err := goquery.OuterHtml(s)
		if err != nil {
			embed = ""
		}
		videos = append(videos, Video{
			Kind:      "video",
			Src:       src,
			Title:     s.AttrOr("title", ""),
			Width:     s.AttrOr("width", ""),
			Height:    s.AttrOr("height", ""),
			EmbedHTML: embed,
		})
	})

	doc.Find("iframe[src]").Each(func(_ int, s *goquery.Selection) {
		src := s.AttrOr("src", "")
		host := videoHost(src)
		if host == "" {
			return
		}
		embed, err := goquery.OuterHtml(s)
		if err != nil {
			embed = ""
		}
		videos = append(videos, Video{
			Kind:      host,
			Src:       src,
			Title:     s.AttrOr("title", ""),
			Width:     s.AttrOr("width", ""),
			Height:    s.AttrOr("height", ""),
			EmbedHTML: embed,
		})
	})

	return videos
}

func videoHost(src string) string {
	for marker, kind := range videoHostMarkers {
		if strings.Contains(src, marker) {
			return kind
		}
	}
	return ""
}

func extractScripts(doc *goquery.Document) []Script {
	var scripts []Script
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		script := Script{
			Src:  s.AttrOr("src", ""),
			Kind: s.AttrOr("type", ""),
		}
		_, script.Async = s.Attr("async")
		_, script.Defer = s.Attr("defer")
		if script.Src == "" {
			script.InlineContent = strings.TrimSpace(s.Text())
		}
		scripts = append(scripts, script)
	})
	return scripts
}

func extractStylesheets(doc *goquery.Document) []Stylesheet {
	var sheets []Stylesheet
	doc.Find(`link[rel="stylesheet"]`).Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		if href == "" {
			return
		}
		sheets = append(sheets, Stylesheet{Kind: "external", Href: href})
	})
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		sheets = append(sheets, Stylesheet{Kind: "inline", Content: strings.TrimSpace(s.Text())})
	})
	return sheets
}

// VisibleText flattens the document body to the text a reader would
// see. It removes script, style and noscript nodes in place, so call
// it only after the structural pass is done with the document.
func VisibleText(doc *goquery.Document) string {
	doc.Find("script, style, noscript").Remove()
	return strings.TrimSpace(doc.Find("body").Text())
}

func classList(s *goquery.Selection) []string {
	class := s.AttrOr("class", "")
	if class == "" {
		return nil
	}
	return strings.Fields(class)
}
