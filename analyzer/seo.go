package analyzer

import (
	"fmt"
	"math"
)

// ScoreSEO evaluates the ten quality checks against the extracted
// content and derived metrics. The overall score is the unweighted
// mean of the check scores, rounded to the nearest integer. Every
// check below 100 contributes one recommendation, in check order.
func ScoreSEO(content StructuredContent, metrics TextMetrics, perf PerformanceMetrics) SeoAnalysis {
	analysis := SeoAnalysis{
		Title:       checkTitle(content.Meta),
		Description: checkDescription(content.Meta),
		Headings:    checkHeadings(content.Headings),
		Images:      checkImages(content.Images),
		Links:       checkLinks(content.Links),
		Meta:        checkMeta(content.Meta),
		Performance: checkPerformance(perf),
		Readability: checkReadability(metrics.Content.ReadabilityScore),
		Keywords:    checkKeywords(metrics.Content.TopKeywords),
		Mobile:      checkMobile(content.Meta),
	}

	checks := []SeoCheck{
		analysis.Title,
		analysis.Description,
		analysis.Headings,
		analysis.Images,
		analysis.Links,
		analysis.Meta,
		analysis.Performance,
		analysis.Readability,
		analysis.Keywords,
		analysis.Mobile,
	}

	sum := 0.0
	recommendations := []string{}
	for _, c := range checks {
		sum += c.Score
		if c.Score < 100 {
			recommendations = append(recommendations, c.Message)
		}
	}

	analysis.Score = int(math.Round(sum / float64(len(checks))))
	analysis.Recommendations = recommendations
	return analysis
}

func checkTitle(meta MetaTags) SeoCheck {
	length := len(meta.Title)
	if length >= 30 && length <= 60 {
		return SeoCheck{Score: 100, Message: "Title length is within the recommended 30-60 characters"}
	}
	return SeoCheck{
		Score:   50,
		Message: fmt.Sprintf("Title should be 30-60 characters long (currently %d)", length),
	}
}

func checkDescription(meta MetaTags) SeoCheck {
	length := len(meta.Description)
	if length >= 120 && length <= 160 {
		return SeoCheck{Score: 100, Message: "Meta description length is within the recommended 120-160 characters"}
	}
	if length == 0 {
		return SeoCheck{Score: 50, Message: "Add a meta description (120-160 characters)"}
	}
	return SeoCheck{
		Score:   50,
		Message: fmt.Sprintf("Meta description should be 120-160 characters long (currently %d)", length),
	}
}

// checkHeadings wants exactly one H1 and no level jumping up by more
// than one between consecutive headings. Dropping back down any number
// of levels is fine.
func checkHeadings(headings []Heading) SeoCheck {
	h1Count := 0
	for _, h := range headings {
		if h.Level == 1 {
			h1Count++
		}
	}

	skipped := false
	for i := 1; i < len(headings); i++ {
		if headings[i].Level > headings[i-1].Level+1 {
			skipped = true
			break
		}
	}

	if h1Count == 1 && !skipped {
		return SeoCheck{Score: 100, Message: "Heading structure is well organized"}
	}
	if h1Count != 1 {
		return SeoCheck{
			Score:   60,
			Message: fmt.Sprintf("Use exactly one H1 heading (found %d)", h1Count),
		}
	}
	return SeoCheck{Score: 60, Message: "Avoid skipping heading levels (e.g. H1 followed by H3)"}
}

func checkImages(images []Image) SeoCheck {
	if len(images) == 0 {
		return SeoCheck{Score: 100, Message: "No images found to evaluate"}
	}
	withAlt := 0
	for _, img := range images {
		if img.Alt != "" {
			withAlt++
		}
	}
	score := 100 * float64(withAlt) / float64(len(images))
	if withAlt == len(images) {
		return SeoCheck{Score: score, Message: "All images have alt text"}
	}
	return SeoCheck{
		Score:   score,
		Message: fmt.Sprintf("Add alt text to all images (%d of %d missing)", len(images)-withAlt, len(images)),
	}
}

func checkLinks(links []Link) SeoCheck {
	internal, external := 0, 0
	for _, l := range links {
		if l.IsExternal {
			external++
		} else {
			internal++
		}
	}
	if internal > 0 && external > 0 {
		return SeoCheck{Score: 100, Message: "Page has both internal and external links"}
	}
	if internal == 0 {
		return SeoCheck{Score: 70, Message: "Add internal links to improve site navigation"}
	}
	return SeoCheck{Score: 70, Message: "Add external links to authoritative sources"}
}

func checkMeta(meta MetaTags) SeoCheck {
	complete := meta.Description != "" &&
		meta.Viewport != "" &&
		meta.Robots != "" &&
		meta.OpenGraph["og:title"] != "" &&
		meta.OpenGraph["og:description"] != "" &&
		meta.Twitter["twitter:card"] != ""
	if complete {
		return SeoCheck{Score: 100, Message: "All essential meta tags are present"}
	}
	return SeoCheck{Score: 70, Message: "Add missing meta tags (description, viewport, robots, Open Graph, Twitter card)"}
}

func checkPerformance(perf PerformanceMetrics) SeoCheck {
	score := clamp(100-float64(perf.LoadTimeMs)/1000, 0, 100)
	if score >= 100 {
		return SeoCheck{Score: score, Message: "Page loaded quickly"}
	}
	return SeoCheck{
		Score:   score,
		Message: fmt.Sprintf("Improve page load time (currently %dms)", perf.LoadTimeMs),
	}
}

func checkReadability(readability float64) SeoCheck {
	if readability >= 60 {
		return SeoCheck{Score: readability, Message: "Content readability is good"}
	}
	return SeoCheck{Score: readability, Message: "Improve content readability with shorter sentences and simpler words"}
}

func checkKeywords(top []Keyword) SeoCheck {
	if len(top) > 0 {
		return SeoCheck{Score: 100, Message: "Page has identifiable keywords"}
	}
	return SeoCheck{Score: 50, Message: "Add more substantive content so keywords can be identified"}
}

// checkMobile passes on a viewport meta tag alone. An earlier variant
// also required an AMP link or format-detection tag; the viewport-only
// rule is the one kept.
func checkMobile(meta MetaTags) SeoCheck {
	if meta.Viewport != "" {
		return SeoCheck{Score: 100, Message: "Page declares a viewport for mobile devices"}
	}
	return SeoCheck{Score: 50, Message: "Add a viewport meta tag for mobile optimization"}
}
