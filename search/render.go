package search

import (
	"html/template"
	"strings"

	"github.com/fwojciec/csc"
)

var resultsTemplate = template.Must(template.New("results").Parse(`<div class="black red-text search-results-container" id="content-body">
<h6>Search found {{len .Results}} results for: {{.Query}}</h6>
<div class="container black-text">
{{- range .Results}}
  <div class="search-result-row row white col s12">
    <div class="prod-img col s3 m2">
      <img src="{{.Image}}" class="responsive-img" alt="{{.Name}}">
    </div>
    <div class="product-summary col s9 m10">
      <a href="{{.Link}}"><h6>{{.Name}}</h6></a>
      {{- with .Summary}}
      <p>{{.}}</p>
      {{- end}}
      <div class="valign-wrapper">
        <h6 class="right-align">{{.Cost}}</h6>
      </div>
    </div>
  </div>
{{- end}}
</div>
</div>`))

type resultsView struct {
	Query   string
	Results []result
}

// result is the template view of one search result.
type result struct {
	Name    string
	Image   string
	Link    string
	Summary template.HTML
	Cost    string
}

// Renderer renders ranked search results into the content region markup.
type Renderer struct {
	// BasePath prefixes product links.
	BasePath string

	// Placeholder is the thumbnail for results without an image.
	Placeholder string

	// Sanitizer cleans summaries before they are inserted as markup.
	// Without one, summaries are escaped as text.
	Sanitizer csc.Sanitizer
}

// NewRenderer creates a new Renderer.
func NewRenderer(basePath, placeholder string, sanitizer csc.Sanitizer) *Renderer {
	if placeholder == "" {
		placeholder = csc.DefaultPlaceholderImage
	}
	return &Renderer{
		BasePath:    strings.TrimSuffix(basePath, "/"),
		Placeholder: placeholder,
		Sanitizer:   sanitizer,
	}
}

// Render returns the search results markup for query. Costs use shortened
// unit labels. Results whose description has no summary get no summary
// paragraph.
func (r *Renderer) Render(query string, results []*csc.SearchResult) (string, error) {
	view := resultsView{Query: query, Results: make([]result, 0, len(results))}
	for _, res := range results {
		if res == nil {
			continue
		}

		image := res.Image
		if image == "" {
			image = r.Placeholder
		}

		view.Results = append(view.Results, result{
			Name:    res.Name,
			Image:   image,
			Link:    r.BasePath + "/products/" + res.SKU,
			Summary: r.summary(res.Description),
			Cost:    csc.FormatUnits(res.Cost, true),
		})
	}

	var b strings.Builder
	if err := resultsTemplate.Execute(&b, view); err != nil {
		return "", csc.Errorf(csc.EINTERNAL, "failed to render search results: %v", err)
	}
	return b.String(), nil
}

func (r *Renderer) summary(description string) template.HTML {
	s, ok := csc.ExtractSummary(description)
	if !ok || s == "" {
		return ""
	}
	if r.Sanitizer == nil {
		return template.HTML(template.HTMLEscapeString(s))
	}
	return template.HTML(r.Sanitizer.Sanitize(s))
}
