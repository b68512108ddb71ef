package analyzer

// MetaTags holds the document-level metadata extracted from <head>.
type MetaTags struct {
	Title       string            `json:"title" bson:"title"`
	Description string            `json:"description,omitempty" bson:"description,omitempty"`
	Keywords    string            `json:"keywords,omitempty" bson:"keywords,omitempty"`
	Author      string            `json:"author,omitempty" bson:"author,omitempty"`
	Robots      string            `json:"robots,omitempty" bson:"robots,omitempty"`
	Viewport    string            `json:"viewport,omitempty" bson:"viewport,omitempty"`
	Charset     string            `json:"charset,omitempty" bson:"charset,omitempty"`
	OpenGraph   map[string]string `json:"openGraph,omitempty" bson:"open_graph,omitempty"`
	Twitter     map[string]string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	Other       map[string]string `json:"other,omitempty" bson:"other,omitempty"`
}

type Paragraph struct {
	Text    string   `json:"text" bson:"text"`
	HTML    string   `json:"html" bson:"html"`
	Classes []string `json:"classes,omitempty" bson:"classes,omitempty"`
	ID      string   `json:"id,omitempty" bson:"id,omitempty"`
}

// Image src is always an absolute URL; entries that cannot be resolved
// or fail the image-extension check are dropped at extraction time.
type Image struct {
	Src     string   `json:"src" bson:"src"`
	Alt     string   `json:"alt,omitempty" bson:"alt,omitempty"`
	Title   string   `json:"title,omitempty" bson:"title,omitempty"`
	Width   string   `json:"width,omitempty" bson:"width,omitempty"`
	Height  string   `json:"height,omitempty" bson:"height,omitempty"`
	Classes []string `json:"classes,omitempty" bson:"classes,omitempty"`
}

type Link struct {
	Href       string   `json:"href" bson:"href"`
	Text       string   `json:"text" bson:"text"`
	Title      string   `json:"title,omitempty" bson:"title,omitempty"`
	Rel        string   `json:"rel,omitempty" bson:"rel,omitempty"`
	Classes    []string `json:"classes,omitempty" bson:"classes,omitempty"`
	IsExternal bool     `json:"isExternal" bson:"is_external"`
}

// Heading level is always in [1,6].
type Heading struct {
	Level   int      `json:"level" bson:"level"`
	Text    string   `json:"text" bson:"text"`
	ID      string   `json:"id,omitempty" bson:"id,omitempty"`
	Classes []string `json:"classes,omitempty" bson:"classes,omitempty"`
}

type List struct {
	Kind  string   `json:"kind" bson:"kind"` // "ordered" or "unordered"
	Items []string `json:"items" bson:"items"`
}

type Table struct {
	Headers []string   `json:"headers" bson:"headers"`
	Rows    [][]string `json:"rows" bson:"rows"`
}

type Video struct {
	Kind      string `json:"kind" bson:"kind"`
	Src       string `json:"src" bson:"src"`
	Title     string `json:"title,omitempty" bson:"title,omitempty"`
	Width     string `json:"width,omitempty" bson:"width,omitempty"`
	Height    string `json:"height,omitempty" bson:"height,omitempty"`
	EmbedHTML string `json:"embedHtml" bson:"embed_html"`
}

type Script struct {
	Src           string `json:"src,omitempty" bson:"src,omitempty"`
	Kind          string `json:"kind,omitempty" bson:"kind,omitempty"`
	Async         bool   `json:"async" bson:"async"`
	Defer         bool   `json:"defer" bson:"defer"`
	InlineContent string `json:"inlineContent,omitempty" bson:"inline_content,omitempty"`
}

type Stylesheet struct {
	Kind    string `json:"kind" bson:"kind"` // "external" or "inline"
	Href    string `json:"href,omitempty" bson:"href,omitempty"`
	Content string `json:"content,omitempty" bson:"content,omitempty"`
}

// StructuredContent is the normalized content model produced by a
// single extraction pass over the parsed document.
type StructuredContent struct {
	Meta        MetaTags     `json:"meta" bson:"meta"`
	Paragraphs  []Paragraph  `json:"paragraphs" bson:"paragraphs"`
	Images      []Image      `json:"images" bson:"images"`
	Links       []Link       `json:"links" bson:"links"`
	Headings    []Heading    `json:"headings" bson:"headings"`
	Lists       []List       `json:"lists" bson:"lists"`
	Tables      []Table      `json:"tables" bson:"tables"`
	Videos      []Video      `json:"videos" bson:"videos"`
	Scripts     []Script     `json:"scripts" bson:"scripts"`
	Stylesheets []Stylesheet `json:"stylesheets" bson:"stylesheets"`
}

type Sentiment struct {
	Score         float64  `json:"score" bson:"score"`
	Comparative   float64  `json:"comparative" bson:"comparative"`
	PositiveWords []string `json:"positiveWords" bson:"positive_words"`
	NegativeWords []string `json:"negativeWords" bson:"negative_words"`
}

type Keyword struct {
	Word    string  `json:"word" bson:"word"`
	Count   int     `json:"count" bson:"count"`
	Density float64 `json:"density" bson:"density"`
}

type ContentAnalysis struct {
	KeywordDensity         map[string]float64 `json:"keywordDensity" bson:"keyword_density"`
	TopKeywords            []Keyword          `json:"topKeywords" bson:"top_keywords"`
	ReadabilityScore       float64            `json:"readabilityScore" bson:"readability_score"`
	SentenceCount          int                `json:"sentenceCount" bson:"sentence_count"`
	AverageSentenceLength  float64            `json:"averageSentenceLength" bson:"average_sentence_length"`
	ParagraphCount         int                `json:"paragraphCount" bson:"paragraph_count"`
	AverageParagraphLength float64            `json:"averageParagraphLength" bson:"average_paragraph_length"`
}

type TextMetrics struct {
	WordCount          int             `json:"wordCount" bson:"word_count"`
	ReadingTimeMinutes int             `json:"readingTimeMinutes" bson:"reading_time_minutes"`
	Sentiment          Sentiment       `json:"sentiment" bson:"sentiment"`
	Content            ContentAnalysis `json:"contentAnalysis" bson:"content_analysis"`
}

type PerformanceMetrics struct {
	LoadTimeMs     int64 `json:"loadTimeMs" bson:"load_time_ms"`
	ResourceCount  int   `json:"resourceCount" bson:"resource_count"`
	TotalSizeBytes int   `json:"totalSizeBytes" bson:"total_size_bytes"`
	DomNodeCount   int   `json:"domNodeCount" bson:"dom_node_count"`
	ScriptCount    int   `json:"scriptCount" bson:"script_count"`
	StyleCount     int   `json:"styleCount" bson:"style_count"`
	ImageCount     int   `json:"imageCount" bson:"image_count"`
	FontCount      int   `json:"fontCount" bson:"font_count"`
}

// SeoCheck is a single quality heuristic scored 0-100.
type SeoCheck struct {
	Score   float64 `json:"score" bson:"score"`
	Message string  `json:"message" bson:"message"`
}

type SeoAnalysis struct {
	Score           int      `json:"score" bson:"score"`
	Title           SeoCheck `json:"title" bson:"title"`
	Description     SeoCheck `json:"description" bson:"description"`
	Headings        SeoCheck `json:"headings" bson:"headings"`
	Images          SeoCheck `json:"images" bson:"images"`
	Links           SeoCheck `json:"links" bson:"links"`
	Meta            SeoCheck `json:"meta" bson:"meta"`
	Performance     SeoCheck `json:"performance" bson:"performance"`
	Readability     SeoCheck `json:"readability" bson:"readability"`
	Keywords        SeoCheck `json:"keywords" bson:"keywords"`
	Mobile          SeoCheck `json:"mobile" bson:"mobile"`
	Recommendations []string `json:"recommendations" bson:"recommendations"`
}

// ScrapedRecord is the assembled output of one analysis. It is never
// mutated after the pipeline produces it; a later scrape of the same
// URL supersedes it with a new record.
type ScrapedRecord struct {
	URL             string             `json:"url" bson:"url"`
	Title           string             `json:"title" bson:"title"`
	Description     string             `json:"description,omitempty" bson:"description,omitempty"`
	Content         StructuredContent  `json:"content" bson:"content"`
	Performance     PerformanceMetrics `json:"performance" bson:"performance"`
	ContentAnalysis TextMetrics        `json:"contentAnalysis" bson:"content_analysis"`
	Seo             SeoAnalysis        `json:"seo" bson:"seo"`
}

// Response is the caller-visible result shape for one analysis request.
type Response struct {
	Success         bool           `json:"success"`
	Data            *ScrapedRecord `json:"data,omitempty"`
	Error           string         `json:"error,omitempty"`
	SavedToDatabase bool           `json:"savedToDatabase"`
}
