package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SampleResources counts DOM-level resource indicators and records the
// raw payload size. LoadTimeMs is filled in by the orchestrator once
// the analysis pass is complete, so it covers fetch through analysis.
func SampleResources(doc *goquery.Document, payloadBytes int) PerformanceMetrics {
	m := PerformanceMetrics{
		TotalSizeBytes: payloadBytes,
		DomNodeCount:   doc.Find("*").Length(),
		ScriptCount:    doc.Find("script").Length(),
		ImageCount:     doc.Find("img").Length(),
	}

	styleLinks := doc.Find(`link[rel="stylesheet"]`)
	m.StyleCount = doc.Find("style").Length() + styleLinks.Length()

	m.FontCount = doc.Find(`link[rel="preload"][as="font"]`).Length()
	styleLinks.Each(func(_ int, s *goquery.Selection) {
		if strings.Contains(s.AttrOr("href", ""), "fonts") {
			m.FontCount++
		}
	})

	m.ResourceCount = m.ImageCount + m.ScriptCount + m.StyleCount
	return m
}
