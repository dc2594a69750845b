package handlers

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/WadiaaTouhami/EngAccent-detection/internal/models"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/services"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/utils"
)

const webTemplateName = "index"

var webTemplate = template.Must(template.New(webTemplateName).
	Funcs(template.FuncMap{"percent": models.ConfidencePercentage}).
	Parse(webFormHTML))

// Template returns the parsed web-form template so the engine can register it.
func Template() *template.Template { return webTemplate }

type WebHandler struct {
	svc services.ProcessService
}

func NewWebHandler(svc services.ProcessService) *WebHandler {
	return &WebHandler{svc: svc}
}

// webView is the data the form template renders.
type webView struct {
	VideoURL string
	Result   *models.ProcessingResult
	Error    string
	Accents  []string
}

// Form renders the empty URL form.
func (h *WebHandler) Form(c *gin.Context) {
	c.HTML(http.StatusOK, webTemplateName, webView{Accents: models.AccentLabels})
}

// Analyze runs the pipeline for the submitted URL and re-renders the page
// with a result panel or an inline error box.
func (h *WebHandler) Analyze(c *gin.Context) {
	view := webView{
		VideoURL: strings.TrimSpace(c.PostForm("video_url")),
		Accents:  models.AccentLabels,
	}
	if view.VideoURL == "" {
		view.Error = "Please enter a video URL."
		c.HTML(http.StatusBadRequest, webTemplateName, view)
		return
	}

	result, err := h.svc.Process(c.Request.Context(), view.VideoURL)
	if err != nil {
		view.Error = utils.ErrMessage(err)
		// a mismatch still identified a language, keep it on the page
		if utils.IsCode(err, utils.CodeLanguageMismatch) {
			view.Result = result
		}
		c.HTML(utils.HTTPStatus(err), webTemplateName, view)
		return
	}

	view.Result = result
	c.HTML(http.StatusOK, webTemplateName, view)
}

const webFormHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Accent Detection</title>
<style>
  * { box-sizing: border-box; }
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f4f6f8; color: #1f2933; }
  main { max-width: 720px; margin: 3rem auto; padding: 0 1rem; }
  h1 { font-size: 1.6rem; margin-bottom: 0.25rem; }
  .tagline { color: #52606d; margin-top: 0; }
  form { display: flex; gap: 0.5rem; margin: 1.5rem 0; }
  input[type=url] { flex: 1; padding: 0.6rem 0.8rem; border: 1px solid #cbd2d9; border-radius: 6px; font-size: 1rem; }
  button { padding: 0.6rem 1.2rem; border: 0; border-radius: 6px; background: #2563eb; color: #fff; font-size: 1rem; cursor: pointer; }
  button:hover { background: #1d4ed8; }
  .panel { border-radius: 8px; padding: 1rem 1.25rem; margin: 1rem 0; }
  .panel.error { background: #fdecea; border: 1px solid #f5c6c0; color: #9b1c1c; }
  .panel.result { background: #fff; border: 1px solid #d9e2ec; }
  .metrics { display: flex; gap: 2rem; margin-bottom: 0.75rem; }
  .metric .label { display: block; font-size: 0.75rem; text-transform: uppercase; letter-spacing: 0.05em; color: #52606d; }
  .metric .value { font-size: 1.3rem; font-weight: 600; }
  .bar { height: 8px; background: #e4e7eb; border-radius: 4px; overflow: hidden; }
  .bar .fill { height: 100%; background: #16a34a; }
  .summary { margin-top: 0.75rem; }
  .detail { margin: 0.25rem 0 0; font-size: 0.9rem; }
  footer { margin-top: 2rem; font-size: 0.8rem; color: #7b8794; }
</style>
</head>
<body>
<main>
  <h1>English Accent Detection</h1>
  <p class="tagline">Paste a public video URL to identify the spoken English accent.</p>

  <form method="post" action="/analyze">
    <input type="url" name="video_url" placeholder="https://example.com/video.mp4" value="{{.VideoURL}}" required>
    <button type="submit">Analyze Accent</button>
  </form>

  {{if .Error}}
  <div class="panel error">
    <p>{{.Error}}</p>
    {{with .Result}}
    {{if .Language}}<p class="detail">Detected language: {{.Language}} ({{printf "%.1f" (percent .LanguageConfidence)}}% confidence)</p>{{end}}
    {{if .Summary}}<p class="detail">{{.Summary}}</p>{{end}}
    {{end}}
  </div>
  {{end}}

  {{with .Result}}{{if .Accent}}
  <div class="panel result">
    <div class="metrics">
      <div class="metric">
        <span class="label">Language</span>
        <span class="value">{{.Language}}</span>
      </div>
      <div class="metric">
        <span class="label">Accent</span>
        <span class="value">{{.Accent}}</span>
      </div>
      <div class="metric">
        <span class="label">Confidence</span>
        <span class="value">{{printf "%.1f" .AccentConfidencePercentage}}%</span>
      </div>
    </div>
    <div class="bar"><div class="fill" style="width: {{printf "%.1f" .AccentConfidencePercentage}}%"></div></div>
    <p class="summary">{{.Summary}}</p>
  </div>
  {{end}}{{end}}

  <footer>
    Supported accents:
    {{range $i, $a := .Accents}}{{if $i}}, {{end}}{{$a}}{{end}}
  </footer>
</main>
</body>
</html>
`
