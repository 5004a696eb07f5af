package web

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"time"

	"github.com/PumpMagic/WordClock/internal/status"
	"github.com/PumpMagic/WordClock/internal/words"
)

// faceWord is one cell of the rendered word grid.
type faceWord struct {
	Name string
	Lit  bool
}

// indexData is the template's view of a status snapshot.
type indexData struct {
	Snap status.Snapshot
	Face []faceWord
}

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="5">
<title>Word Clock</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; background: #111; color: #ccc; }
h1 { font-size: 1.4em; }
.face { margin: 1em 0; padding: 1em; background: #000; border-radius: 8px; line-height: 2; }
.word { margin-right: 0.8em; letter-spacing: 2px; color: #333; }
.word.lit { color: #ffd34d; text-shadow: 0 0 8px #ffd34d; }
.spelled { font-size: 1.2em; margin: 0.5em 0; color: #ffd34d; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #333; }
th { width: 40%; }
.connected { color: #6c6; }
.disconnected { color: #c66; }
.pending { color: orange; }
</style>
</head>
<body>
<h1>Word Clock</h1>
<div class="face">
{{- range .Face}}
<span class="word{{if .Lit}} lit{{end}}">{{.Name}}</span>
{{- end}}
</div>
<p class="spelled">{{.Snap.Face.String}} &mdash; {{.Snap.Time.String}}</p>
<table>
<tr><th>RTC write pending</th><td>{{if .Snap.PendingWrite}}<span class="pending">yes</span>{{else}}no{{end}}</td></tr>
<tr><th>MQTT</th><td>{{if .Snap.MQTTConnected}}<span class="connected">connected</span>{{else}}<span class="disconnected">disconnected</span>{{end}} ({{.Snap.Config.Broker}})</td></tr>
<tr><th>Uptime</th><td>{{uptime .Snap.Uptime}}</td></tr>
<tr><th>Hour edits</th><td>{{.Snap.Counts.HourAdvances}}</td></tr>
<tr><th>Minute edits</th><td>{{.Snap.Counts.MinuteAdvances}}</td></tr>
<tr><th>RTC reads / writes / errors</th><td>{{.Snap.Counts.RTCReads}} / {{.Snap.Counts.RTCWrites}} / {{.Snap.Counts.RTCErrors}}</td></tr>
<tr><th>Brightness</th><td>{{.Snap.Config.Brightness}}</td></tr>
</table>
<p><a href="/index.json">json</a> &middot; <a href="/metrics">metrics</a></p>
</body>
</html>
`

// renderHTML writes the status page for the snapshot.
func renderHTML(w io.Writer, snap status.Snapshot) {
	data := indexData{Snap: snap}
	for _, word := range words.All() {
		data.Face = append(data.Face, faceWord{
			Name: word.String(),
			Lit:  snap.Face.Has(word),
		})
	}
	if err := indexTmpl.Execute(w, data); err != nil {
		log.Printf("render status page: %v", err)
	}
}
