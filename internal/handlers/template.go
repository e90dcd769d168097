package handlers

import (
	"html/template"
	"io"
	"strconv"
	"time"

	"sanisip/internal/status"
)

var dashboardTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"fixed": func(v float64, prec int) string {
		return strconv.FormatFloat(v, 'f', prec, 64)
	},
	"clock": func(t time.Time) string {
		if t.IsZero() {
			return "never"
		}
		return t.Local().Format("15:04:05")
	},
}).Parse(dashboardHTML))

func renderDashboard(w io.Writer, snap status.Snapshot) error {
	return dashboardTmpl.Execute(w, snap)
}

const dashboardHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>SaniSip Water Quality</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 640px; margin: 1.5em auto; padding: 0 1em; color: #222; }
h1 { font-size: 1.3em; }
.card { border: 1px solid #ddd; border-radius: 8px; padding: 12px; margin: 12px 0; }
.banner { padding: 10px; border-radius: 6px; font-weight: bold; }
.banner.safe { background: #e3f6e8; color: #1b7a34; }
.banner.unsafe { background: #fde4e4; color: #b42318; }
.banner.danger { background: #fde4e4; color: #b42318; }
.banner.caution { background: #fff4d6; color: #8a5a00; }
.gauge { margin: 8px 0; }
.bar { height: 8px; background: #eee; border-radius: 4px; overflow: hidden; }
.bar > div { height: 100%; }
.t-warn { color: #b42318; } .t-neutral { color: #8a5a00; } .t-safe { color: #1b7a34; }
.b-warn { background: #e5484d; } .b-neutral { background: #f5a524; } .b-safe { background: #30a46c; }
.badge { display: inline-block; padding: 2px 8px; border-radius: 10px; font-size: 0.85em; }
.badge.ok { background: #e3f6e8; } .badge.caution { background: #fff4d6; } .badge.danger { background: #fde4e4; }
.dot { display: inline-block; width: 8px; height: 8px; border-radius: 50%; margin-right: 6px; }
.dot.on { background: #30a46c; } .dot.off { background: #e5484d; }
svg polyline { fill: none; stroke: #0b6bcb; stroke-width: 2; }
</style>
</head>
<body>
<h1>SaniSip Water Quality</h1>
<p><span class="dot {{if .Connected}}on{{else}}off{{end}}"></span>{{if .Connected}}Connected{{else}}Disconnected{{end}}
 &middot; last poll {{clock .LastPoll}}</p>

{{if .HasData}}
<div class="banner {{if .Drinkable}}safe{{else}}unsafe{{end}}">
{{if .Drinkable}}Safe to drink{{else}}Not safe to drink{{end}}
</div>
{{else}}
<div class="banner">Waiting for sensor data&hellip;</div>
{{end}}

<div class="card">
{{with .TDS}}<div class="gauge"><b>TDS</b> {{fixed .Value 0}} {{.Unit}} <span class="{{.Result.StyleClass}}">{{.Result.Tag}}</span>
<div class="bar"><div class="{{.Result.BarStyleClass}}" style="width: {{fixed .FillPercent 0}}%"></div></div></div>{{end}}
{{with .PH}}<div class="gauge"><b>pH</b> {{fixed .Value 1}} <span class="{{.Result.StyleClass}}">{{.Result.Tag}}</span>
<div class="bar"><div class="{{.Result.BarStyleClass}}" style="width: {{fixed .FillPercent 0}}%"></div></div></div>{{end}}
{{with .Turbidity}}<div class="gauge"><b>Turbidity</b> {{fixed .Value 2}} {{.Unit}} <span class="{{.Result.StyleClass}}">{{.Result.Tag}}</span>
<div class="bar"><div class="{{.Result.BarStyleClass}}" style="width: {{fixed .FillPercent 0}}%"></div></div></div>{{end}}
</div>

<div class="card">
<b>TDS trend</b>
<svg viewBox="0 0 300 56" width="100%" height="56"><polyline points="{{.Polyline}}"/></svg>
</div>

<div class="card">
{{with .Filter}}
<b>Filter</b> <span class="badge {{.Severity}}">{{.Badge}}</span>
{{if .Banner}}<div class="banner {{.Severity}}">{{.Banner}}</div>{{end}}
<p>Started: {{if .StartDate}}{{.StartDate}}{{else}}not set{{end}} &middot; {{.DaysUsed}} days used &middot; {{.DaysLeft}} days left ({{.Percent}}%)</p>
{{end}}
<form onsubmit="return setStart(event)">
<input type="date" id="start-date" required> <button type="submit">Set start date</button>
</form>
<button onclick="resetDays()">Reset days used</button>
<p id="filter-msg"></p>
</div>

<script>
function post(url, body) {
  return fetch(url, {method: "POST", headers: {"Content-Type": "application/json"}, body: JSON.stringify(body)})
    .then(function (r) { return r.json().then(function (j) { if (!r.ok) { throw new Error(j.error || r.status); } return j; }); });
}
function done(p) {
  var msg = document.getElementById("filter-msg");
  p.then(function () { location.reload(); }).catch(function (e) { msg.textContent = e.message; });
  return false;
}
function setStart(ev) {
  ev.preventDefault();
  return done(post("/api/v1/filter/start-date", {start_date: document.getElementById("start-date").value}));
}
function resetDays() {
  if (!confirm("Reset filter days used to 0?")) { return; }
  done(post("/api/v1/filter/reset", {confirm: true}));
}
(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws?interval=5s");
  var last = null;
  ws.onmessage = function (ev) {
    var m = JSON.parse(ev.data);
    if (m.type !== "snapshot") { return; }
    if (last !== null && m.data.version !== last) { location.reload(); }
    last = m.data.version;
  };
})();
</script>
</body>
</html>
`
